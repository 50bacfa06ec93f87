package models

// DANFEData feeds the DANFE HTML template.
type DANFEData struct {
	NFe          *NotaFiscal
	DataEmissao  string
	TotalExtenso string
	ItemCount    int
}
