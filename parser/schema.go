package parser

import "encoding/xml"

// Wire-level view of the infNFe subtree. Every leaf stays a string here;
// typing, defaults and safe parsing happen in the mapping step.

type infNFeXML struct {
	ID      string      `xml:"Id,attr"`
	Versao  string      `xml:"versao,attr"`
	Ide     *ideXML     `xml:"ide"`
	Emit    *emitXML    `xml:"emit"`
	Dest    *destXML    `xml:"dest"`
	Det     []detXML    `xml:"det"`
	Total   *totalXML   `xml:"total"`
	Transp  *transpXML  `xml:"transp"`
	InfAdic *infAdicXML `xml:"infAdic"`
}

type ideXML struct {
	CUF      string `xml:"cUF"`
	CNF      string `xml:"cNF"`
	NatOp    string `xml:"natOp"`
	IndPag   string `xml:"indPag"`
	Mod      string `xml:"mod"`
	Serie    string `xml:"serie"`
	NNF      string `xml:"nNF"`
	DhEmi    string `xml:"dhEmi"`
	DhSaiEnt string `xml:"dhSaiEnt"`
	TpNF     string `xml:"tpNF"`
	CMunFG   string `xml:"cMunFG"`
	TpImp    string `xml:"tpImp"`
	TpEmis   string `xml:"tpEmis"`
	CDV      string `xml:"cDV"`
	TpAmb    string `xml:"tpAmb"`
	FinNFe   string `xml:"finNFe"`
	ProcEmi  string `xml:"procEmi"`
	VerProc  string `xml:"verProc"`
}

type emitXML struct {
	CNPJ      string       `xml:"CNPJ"`
	CPF       string       `xml:"CPF"`
	XNome     string       `xml:"xNome"`
	XFant     string       `xml:"xFant"`
	IE        string       `xml:"IE"`
	CRT       string       `xml:"CRT"`
	EnderEmit *enderecoXML `xml:"enderEmit"`
}

type destXML struct {
	CNPJ      string       `xml:"CNPJ"`
	CPF       string       `xml:"CPF"`
	XNome     string       `xml:"xNome"`
	Email     string       `xml:"email"`
	EnderDest *enderecoXML `xml:"enderDest"`
}

type enderecoXML struct {
	XLgr    string `xml:"xLgr"`
	Nro     string `xml:"nro"`
	XCpl    string `xml:"xCpl"`
	XBairro string `xml:"xBairro"`
	CMun    string `xml:"cMun"`
	XMun    string `xml:"xMun"`
	UF      string `xml:"UF"`
	CEP     string `xml:"CEP"`
	CPais   string `xml:"cPais"`
	XPais   string `xml:"xPais"`
	Fone    string `xml:"fone"`
}

type detXML struct {
	NItem   string      `xml:"nItem,attr"`
	Prod    *prodXML    `xml:"prod"`
	Imposto *impostoXML `xml:"imposto"`
}

type prodXML struct {
	CProd    string `xml:"cProd"`
	CEAN     string `xml:"cEAN"`
	XProd    string `xml:"xProd"`
	NCM      string `xml:"NCM"`
	CFOP     string `xml:"CFOP"`
	UCom     string `xml:"uCom"`
	QCom     string `xml:"qCom"`
	VUnCom   string `xml:"vUnCom"`
	VProd    string `xml:"vProd"`
	CEANTrib string `xml:"cEANTrib"`
	UTrib    string `xml:"uTrib"`
	QTrib    string `xml:"qTrib"`
	VUnTrib  string `xml:"vUnTrib"`
}

type impostoXML struct {
	ICMS   *icmsXML    `xml:"ICMS"`
	IPI    *ipiXML     `xml:"IPI"`
	PIS    *pisCofXML  `xml:"PIS"`
	COFINS *pisCofXML  `xml:"COFINS"`
}

// ICMS carries exactly one regime-specific child (ICMS00..ICMS90,
// ICMSSN101..ICMSSN900); ",any" collects whichever is present.
type icmsXML struct {
	Variantes []icmsVarianteXML `xml:",any"`
}

type icmsVarianteXML struct {
	XMLName     xml.Name
	Orig        string `xml:"orig"`
	CST         string `xml:"CST"`
	CSOSN       string `xml:"CSOSN"`
	ModBC       string `xml:"modBC"`
	VBC         string `xml:"vBC"`
	PICMS       string `xml:"pICMS"`
	VICMS       string `xml:"vICMS"`
	PRedBC      string `xml:"pRedBC"`
	PMVAST      string `xml:"pMVAST"`
	VBCST       string `xml:"vBCST"`
	PICMSST     string `xml:"pICMSST"`
	VICMSST     string `xml:"vICMSST"`
	PCredSN     string `xml:"pCredSN"`
	VCredICMSSN string `xml:"vCredICMSSN"`
}

type ipiXML struct {
	CEnq      string           `xml:"cEnq"`
	Variantes []ipiVarianteXML `xml:",any"`
}

type ipiVarianteXML struct {
	XMLName xml.Name
	CST     string `xml:"CST"`
}

// PIS and COFINS share the same variant shape; only the rate/value element
// names differ.
type pisCofXML struct {
	Variantes []pisCofVarianteXML `xml:",any"`
}

type pisCofVarianteXML struct {
	XMLName xml.Name
	CST     string `xml:"CST"`
	VBC     string `xml:"vBC"`
	PPIS    string `xml:"pPIS"`
	VPIS    string `xml:"vPIS"`
	PCOFINS string `xml:"pCOFINS"`
	VCOFINS string `xml:"vCOFINS"`
}

type totalXML struct {
	ICMSTot *icmsTotXML `xml:"ICMSTot"`
}

type icmsTotXML struct {
	VBC    string `xml:"vBC"`
	VICMS  string `xml:"vICMS"`
	VBCST  string `xml:"vBCST"`
	VST    string `xml:"vST"`
	VProd  string `xml:"vProd"`
	VFrete string `xml:"vFrete"`
	VSeg   string `xml:"vSeg"`
	VDesc  string `xml:"vDesc"`
	VII    string `xml:"vII"`
	VIPI   string `xml:"vIPI"`
	VPIS   string `xml:"vPIS"`
	VCOFINS string `xml:"vCOFINS"`
	VOutro string `xml:"vOutro"`
	VNF    string `xml:"vNF"`
}

type transpXML struct {
	ModFrete   string          `xml:"modFrete"`
	Transporta *transportaXML  `xml:"transporta"`
	VeicTransp *veicTranspXML  `xml:"veicTransp"`
	Vol        []volXML        `xml:"vol"`
}

type transportaXML struct {
	CNPJ   string `xml:"CNPJ"`
	CPF    string `xml:"CPF"`
	XNome  string `xml:"xNome"`
	IE     string `xml:"IE"`
	XEnder string `xml:"xEnder"`
	XMun   string `xml:"xMun"`
	UF     string `xml:"UF"`
}

type veicTranspXML struct {
	Placa string `xml:"placa"`
	UF    string `xml:"UF"`
	RNTC  string `xml:"RNTC"`
}

type volXML struct {
	QVol   string     `xml:"qVol"`
	Esp    string     `xml:"esp"`
	Marca  string     `xml:"marca"`
	NVol   string     `xml:"nVol"`
	PesoL  string     `xml:"pesoL"`
	PesoB  string     `xml:"pesoB"`
	Lacres []lacreXML `xml:"lacres"`
}

type lacreXML struct {
	NLacre string `xml:"nLacre"`
}

type infAdicXML struct {
	InfAdFisco string `xml:"infAdFisco"`
	InfCpl     string `xml:"infCpl"`
}
