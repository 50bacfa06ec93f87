package models

import "github.com/shopspring/decimal"

// ItemNFe is one <det> line of the invoice, ordered by NumeroItem.
type ItemNFe struct {
	ID                      int64               `json:"id" db:"id"`
	NFeID                   int64               `json:"nfe_id" db:"nfe_id"`
	NumeroItem              int                 `json:"numero_item" db:"numero_item"`
	CodigoProduto           string              `json:"codigo_produto" db:"codigo_produto"`
	GTIN                    *string             `json:"gtin,omitempty" db:"gtin"`
	Descricao               string              `json:"descricao" db:"descricao"`
	NCM                     *string             `json:"ncm,omitempty" db:"ncm"`
	CFOP                    string              `json:"cfop" db:"cfop"`
	UnidadeComercial        string              `json:"unidade_comercial" db:"unidade_comercial"`
	QuantidadeComercial     decimal.Decimal     `json:"quantidade_comercial" db:"quantidade_comercial"`
	ValorUnitarioComercial  decimal.Decimal     `json:"valor_unitario_comercial" db:"valor_unitario_comercial"`
	ValorTotalBruto         decimal.Decimal     `json:"valor_total_bruto" db:"valor_total_bruto"`
	GTINTributavel          *string             `json:"gtin_tributavel,omitempty" db:"gtin_tributavel"`
	UnidadeTributavel       string              `json:"unidade_tributavel" db:"unidade_tributavel"`
	QuantidadeTributavel    decimal.Decimal     `json:"quantidade_tributavel" db:"quantidade_tributavel"`
	ValorUnitarioTributavel decimal.Decimal     `json:"valor_unitario_tributavel" db:"valor_unitario_tributavel"`
	OrigemMercadoria        *int64              `json:"origem_mercadoria,omitempty" db:"origem_mercadoria"`

	Impostos []Imposto `json:"impostos"`
}
