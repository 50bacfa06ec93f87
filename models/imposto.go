package models

import "github.com/shopspring/decimal"

// Tax kinds. Each line item carries at most one entry per kind.
const (
	TipoImpostoICMS   = "ICMS"
	TipoImpostoIPI    = "IPI"
	TipoImpostoPIS    = "PIS"
	TipoImpostoCOFINS = "COFINS"
)

// Imposto is one tax entry of a line item. The record is flat: TipoImposto
// discriminates the kind and every other field is optional, populated only
// when the regime variant in the XML carries it (ICMS00..ICMS90, ICMSSN*,
// IPITrib/IPINT and so on).
type Imposto struct {
	ID        int64  `json:"id" db:"id"`
	ItemNFeID int64  `json:"item_nfe_id" db:"item_nfe_id"`
	TipoImposto string `json:"tipo_imposto" db:"tipo_imposto"`

	Origem                       *int64              `json:"origem,omitempty" db:"origem"`
	CST                          *string             `json:"cst,omitempty" db:"cst"`
	CodigoEnquadramento          *string             `json:"codigo_enquadramento,omitempty" db:"codigo_enquadramento"`
	ModalidadeBaseCalculo        *int64              `json:"modalidade_base_calculo,omitempty" db:"modalidade_base_calculo"`
	ValorBaseCalculo             decimal.NullDecimal `json:"valor_base_calculo,omitempty" db:"valor_base_calculo"`
	AliquotaPercentual           decimal.NullDecimal `json:"aliquota_percentual,omitempty" db:"aliquota_percentual"`
	Valor                        decimal.NullDecimal `json:"valor,omitempty" db:"valor"`
	PercentualReducaoBaseCalculo decimal.NullDecimal `json:"percentual_reducao_base_calculo,omitempty" db:"percentual_reducao_base_calculo"`

	// ICMS-ST (substituição tributária)
	PercentualMVAST    decimal.NullDecimal `json:"percentual_mva_st,omitempty" db:"percentual_mva_st"`
	ValorBaseCalculoST decimal.NullDecimal `json:"valor_base_calculo_st,omitempty" db:"valor_base_calculo_st"`
	AliquotaST         decimal.NullDecimal `json:"aliquota_st,omitempty" db:"aliquota_st"`
	ValorST            decimal.NullDecimal `json:"valor_st,omitempty" db:"valor_st"`

	// Simples Nacional credit
	PercentualCreditoSN decimal.NullDecimal `json:"percentual_credito_sn,omitempty" db:"percentual_credito_sn"`
	ValorCreditoSN      decimal.NullDecimal `json:"valor_credito_sn,omitempty" db:"valor_credito_sn"`
}
