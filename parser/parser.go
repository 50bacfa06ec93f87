package parser

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"watchman/models"
)

// NFeNamespace is the only XML namespace this parser supports (product
// invoices, model 55). Service invoices use a different layout and are
// rejected upstream.
const NFeNamespace = "http://www.portalfiscal.inf.br/nfe"

// ErrExtracao marks a definitive extraction failure: malformed XML or a
// document without the mandatory identification block. Callers must not
// attempt persistence when they see it.
var ErrExtracao = errors.New("NF-e extraction failed")

// Extractor turns raw NF-e XML into a fully-populated models.NotaFiscal.
// It never returns a partial document: either every branch that exists in
// the XML is mapped, or the whole extraction fails.
type Extractor struct {
	log *zap.Logger
}

func NewExtractor(log *zap.Logger) *Extractor {
	return &Extractor{log: log}
}

// Extract parses one document. Optional branches (addresses, transport,
// additional info, taxes) are independently optional; only an unparsable
// document or a missing ide block aborts.
func (e *Extractor) Extract(content []byte) (*models.NotaFiscal, error) {
	inf, err := decodeInfNFe(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtracao, err)
	}
	if inf.Ide == nil {
		return nil, fmt.Errorf("%w: mandatory ide block missing", ErrExtracao)
	}

	nf := &models.NotaFiscal{
		Versao:      inf.Versao,
		XMLOriginal: string(content),
	}
	// The Id attribute embeds the 44-digit access key behind a fixed
	// "NFe" prefix.
	if len(inf.ID) > 3 {
		nf.ChaveAcesso = inf.ID[3:]
	}

	e.mapIdentificacao(nf, inf.Ide)
	e.mapEmitente(nf, inf.Emit)
	e.mapDestinatario(nf, inf.Dest)
	e.mapItens(nf, inf.Det)
	e.mapTotais(nf, inf.Total)
	e.mapTransporte(nf, inf.Transp)

	if inf.InfAdic != nil {
		nf.InformacoesAdicionais = &models.InformacoesAdicionais{
			InfoContribuinte: optStr(inf.InfAdic.InfCpl),
			InfoFisco:        optStr(inf.InfAdic.InfAdFisco),
		}
	}

	return nf, nil
}

// decodeInfNFe walks the token stream until it reaches infNFe, so both
// <nfeProc> envelopes and bare <NFe> roots are accepted.
func decodeInfNFe(content []byte) (*infNFeXML, error) {
	dec := xml.NewDecoder(bytes.NewReader(content))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil, errors.New("infNFe element not found")
		}
		if err != nil {
			return nil, err
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "infNFe" {
			continue
		}
		var inf infNFeXML
		if err := dec.DecodeElement(&inf, &se); err != nil {
			return nil, err
		}
		return &inf, nil
	}
}

func (e *Extractor) mapIdentificacao(nf *models.NotaFiscal, ide *ideXML) {
	nf.CodigoUF = intOr(ide.CUF, 0)
	nf.CodigoNF = ide.CNF
	nf.NaturezaOperacao = ide.NatOp
	nf.IndicadorPagamento = intPtrOr(ide.IndPag, "9")
	nf.Modelo = intOr(ide.Mod, 0)
	nf.Serie = intOr(ide.Serie, 0)
	nf.Numero = intOr(ide.NNF, 0)
	nf.TipoNF = intOr(ide.TpNF, 0)
	nf.CodigoMunicipioFatoGerador = ide.CMunFG
	nf.TipoImpressao = intOr(ide.TpImp, 0)
	nf.TipoEmissao = intOr(ide.TpEmis, 0)
	nf.DigitoVerificador = intOr(ide.CDV, 0)
	nf.Ambiente = intOr(ide.TpAmb, 0)
	nf.FinalidadeNF = intOr(ide.FinNFe, 0)
	nf.ProcessoEmissao = intOr(ide.ProcEmi, 0)
	nf.VersaoProcesso = ide.VerProc

	nf.DataEmissao = somenteData(e.parseData(ide.DhEmi, "dhEmi"))
	nf.DataSaidaEntrada = somenteData(e.parseData(ide.DhSaiEnt, "dhSaiEnt"))
}

func (e *Extractor) parseData(s, campo string) *time.Time {
	t := ParseDataNFe(s)
	if t == nil && s != "" {
		e.log.Warn("unparsable date in NF-e document",
			zap.String("campo", campo), zap.String("valor", s))
	}
	return t
}

func (e *Extractor) mapEmitente(nf *models.NotaFiscal, emit *emitXML) {
	if emit == nil {
		return
	}
	nf.Emitente = &models.Pessoa{
		TipoPessoa:        models.TipoPessoaEmitente,
		CNPJ:              optStr(emit.CNPJ),
		CPF:               optStr(emit.CPF),
		Nome:              optStr(emit.XNome),
		NomeFantasia:      optStr(emit.XFant),
		InscricaoEstadual: optStr(emit.IE),
		RegimeTributario:  intPtrOr(emit.CRT, "0"),
	}
	nf.EmitenteEndereco = mapEndereco(emit.EnderEmit)
}

func (e *Extractor) mapDestinatario(nf *models.NotaFiscal, dest *destXML) {
	if dest == nil {
		return
	}
	nf.Destinatario = &models.Pessoa{
		TipoPessoa: models.TipoPessoaDestinatario,
		CNPJ:       optStr(dest.CNPJ),
		CPF:        optStr(dest.CPF),
		Nome:       optStr(dest.XNome),
		Email:      optStr(dest.Email),
	}
	nf.DestinatarioEndereco = mapEndereco(dest.EnderDest)
}

func mapEndereco(end *enderecoXML) *models.Endereco {
	if end == nil {
		return nil
	}
	return &models.Endereco{
		TipoEndereco:    models.TipoEnderecoPrincipal,
		Logradouro:      end.XLgr,
		Numero:          end.Nro,
		Complemento:     optStr(end.XCpl),
		Bairro:          end.XBairro,
		CodigoMunicipio: end.CMun,
		Municipio:       end.XMun,
		UF:              end.UF,
		CEP:             end.CEP,
		CodigoPais:      optStr(end.CPais),
		Pais:            optStr(end.XPais),
		Telefone:        optStr(end.Fone),
	}
}

func (e *Extractor) mapItens(nf *models.NotaFiscal, dets []detXML) {
	for i, det := range dets {
		item := models.ItemNFe{NumeroItem: i + 1}
		if n := SafeInt(det.NItem); n != nil {
			item.NumeroItem = int(*n)
		}

		if prod := det.Prod; prod != nil {
			item.CodigoProduto = prod.CProd
			item.GTIN = optStr(prod.CEAN)
			item.Descricao = prod.XProd
			item.NCM = optStr(prod.NCM)
			item.CFOP = prod.CFOP
			item.UnidadeComercial = prod.UCom
			item.QuantidadeComercial = decimalOr(prod.QCom)
			item.ValorUnitarioComercial = decimalOr(prod.VUnCom)
			item.ValorTotalBruto = decimalOr(prod.VProd)
			item.GTINTributavel = optStr(prod.CEANTrib)
			item.UnidadeTributavel = prod.UTrib
			item.QuantidadeTributavel = decimalOr(prod.QTrib)
			item.ValorUnitarioTributavel = decimalOr(prod.VUnTrib)
		}

		item.Impostos = mapImpostos(det.Imposto, &item)
		nf.Itens = append(nf.Itens, item)
	}
}

// mapImpostos inspects which tax containers exist and emits one flat record
// per kind. The ICMS record also feeds the item's origem_mercadoria.
func mapImpostos(imp *impostoXML, item *models.ItemNFe) []models.Imposto {
	if imp == nil {
		return nil
	}
	var out []models.Imposto

	if imp.ICMS != nil && len(imp.ICMS.Variantes) > 0 {
		v := imp.ICMS.Variantes[0]
		cst := v.CST
		if cst == "" {
			cst = v.CSOSN
		}
		item.OrigemMercadoria = SafeInt(v.Orig)
		out = append(out, models.Imposto{
			TipoImposto:                  models.TipoImpostoICMS,
			Origem:                       item.OrigemMercadoria,
			CST:                          optStr(cst),
			ModalidadeBaseCalculo:        SafeInt(v.ModBC),
			ValorBaseCalculo:             SafeDecimal(v.VBC),
			AliquotaPercentual:           SafeDecimal(v.PICMS),
			Valor:                        SafeDecimal(v.VICMS),
			PercentualReducaoBaseCalculo: SafeDecimal(v.PRedBC),
			PercentualMVAST:              SafeDecimal(v.PMVAST),
			ValorBaseCalculoST:           SafeDecimal(v.VBCST),
			AliquotaST:                   SafeDecimal(v.PICMSST),
			ValorST:                      SafeDecimal(v.VICMSST),
			PercentualCreditoSN:          SafeDecimal(v.PCredSN),
			ValorCreditoSN:               SafeDecimal(v.VCredICMSSN),
		})
	}

	if imp.IPI != nil {
		entrada := models.Imposto{
			TipoImposto:         models.TipoImpostoIPI,
			CodigoEnquadramento: optStr(imp.IPI.CEnq),
		}
		if len(imp.IPI.Variantes) > 0 {
			entrada.CST = optStr(imp.IPI.Variantes[0].CST)
		}
		out = append(out, entrada)
	}

	if imp.PIS != nil && len(imp.PIS.Variantes) > 0 {
		v := imp.PIS.Variantes[0]
		out = append(out, models.Imposto{
			TipoImposto:        models.TipoImpostoPIS,
			CST:                optStr(v.CST),
			ValorBaseCalculo:   SafeDecimal(v.VBC),
			AliquotaPercentual: SafeDecimal(v.PPIS),
			Valor:              SafeDecimal(v.VPIS),
		})
	}

	if imp.COFINS != nil && len(imp.COFINS.Variantes) > 0 {
		v := imp.COFINS.Variantes[0]
		out = append(out, models.Imposto{
			TipoImposto:        models.TipoImpostoCOFINS,
			CST:                optStr(v.CST),
			ValorBaseCalculo:   SafeDecimal(v.VBC),
			AliquotaPercentual: SafeDecimal(v.PCOFINS),
			Valor:              SafeDecimal(v.VCOFINS),
		})
	}

	return out
}

func (e *Extractor) mapTotais(nf *models.NotaFiscal, total *totalXML) {
	if total == nil || total.ICMSTot == nil {
		return
	}
	t := total.ICMSTot
	nf.Totais = &models.TotaisNFe{
		BaseCalculoICMS:   SafeDecimal(t.VBC),
		ValorICMS:         SafeDecimal(t.VICMS),
		BaseCalculoICMSST: SafeDecimal(t.VBCST),
		ValorICMSST:       SafeDecimal(t.VST),
		ValorProdutos:     SafeDecimal(t.VProd),
		ValorFrete:        SafeDecimal(t.VFrete),
		ValorSeguro:       SafeDecimal(t.VSeg),
		ValorDesconto:     SafeDecimal(t.VDesc),
		ValorII:           SafeDecimal(t.VII),
		ValorIPI:          SafeDecimal(t.VIPI),
		ValorPIS:          SafeDecimal(t.VPIS),
		ValorCOFINS:       SafeDecimal(t.VCOFINS),
		ValorOutros:       SafeDecimal(t.VOutro),
		ValorTotalNFe:     SafeDecimal(t.VNF),
	}
}

func (e *Extractor) mapTransporte(nf *models.NotaFiscal, transp *transpXML) {
	if transp == nil {
		return
	}
	nf.Transporte = &models.Transporte{
		ModalidadeFrete: intPtrOr(transp.ModFrete, "9"),
	}

	if t := transp.Transporta; t != nil {
		nf.Transportadora = &models.Pessoa{
			TipoPessoa:        models.TipoPessoaTransportadora,
			CNPJ:              optStr(t.CNPJ),
			CPF:               optStr(t.CPF),
			Nome:              optStr(t.XNome),
			InscricaoEstadual: optStr(t.IE),
		}
		// The carrier address in the XML is a loose line, not a
		// structured block; missing parts get fixed placeholders.
		e.log.Info("carrier address is unstructured, using placeholders")
		nf.TransportadoraEndereco = &models.Endereco{
			TipoEndereco:    models.TipoEnderecoPrincipal,
			Logradouro:      defaultStr(t.XEnder, "N/A"),
			Numero:          "S/N",
			Bairro:          "N/A",
			CodigoMunicipio: "0000000",
			Municipio:       defaultStr(t.XMun, "N/A"),
			UF:              defaultStr(t.UF, "NA"),
			CEP:             "00000000",
		}
	}

	for _, vol := range transp.Vol {
		item := models.TransporteItem{
			TipoItem:    models.TipoItemVolume,
			Quantidade:  SafeInt(vol.QVol),
			Especie:     optStr(vol.Esp),
			Marca:       optStr(vol.Marca),
			Numeracao:   optStr(vol.NVol),
			PesoLiquido: SafeDecimal(vol.PesoL),
			PesoBruto:   SafeDecimal(vol.PesoB),
		}
		for _, lacre := range vol.Lacres {
			if lacre.NLacre == "" {
				continue
			}
			item.Lacres = append(item.Lacres, models.TransporteItem{
				TipoItem:    models.TipoItemLacre,
				NumeroLacre: optStr(lacre.NLacre),
			})
		}
		nf.Transporte.Volumes = append(nf.Transporte.Volumes, item)
	}

	if v := transp.VeicTransp; v != nil {
		nf.Transporte.Veiculos = append(nf.Transporte.Veiculos, models.TransporteItem{
			TipoItem: models.TipoItemVeiculo,
			Placa:    optStr(v.Placa),
			UF:       optStr(v.UF),
			RNTC:     optStr(v.RNTC),
		})
	}
}

func defaultStr(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
