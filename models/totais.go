package models

import "github.com/shopspring/decimal"

// TotaisNFe is the ICMSTot aggregate, one row per invoice. Every field is
// optional; an absent XML element stays NULL, never zero.
type TotaisNFe struct {
	ID                 int64               `json:"id" db:"id"`
	NFeID              int64               `json:"nfe_id" db:"nfe_id"`
	BaseCalculoICMS    decimal.NullDecimal `json:"base_calculo_icms,omitempty" db:"base_calculo_icms"`
	ValorICMS          decimal.NullDecimal `json:"valor_icms,omitempty" db:"valor_icms"`
	BaseCalculoICMSST  decimal.NullDecimal `json:"base_calculo_icms_st,omitempty" db:"base_calculo_icms_st"`
	ValorICMSST        decimal.NullDecimal `json:"valor_icms_st,omitempty" db:"valor_icms_st"`
	ValorProdutos      decimal.NullDecimal `json:"valor_produtos,omitempty" db:"valor_produtos"`
	ValorFrete         decimal.NullDecimal `json:"valor_frete,omitempty" db:"valor_frete"`
	ValorSeguro        decimal.NullDecimal `json:"valor_seguro,omitempty" db:"valor_seguro"`
	ValorDesconto      decimal.NullDecimal `json:"valor_desconto,omitempty" db:"valor_desconto"`
	ValorII            decimal.NullDecimal `json:"valor_ii,omitempty" db:"valor_ii"`
	ValorIPI           decimal.NullDecimal `json:"valor_ipi,omitempty" db:"valor_ipi"`
	ValorPIS           decimal.NullDecimal `json:"valor_pis,omitempty" db:"valor_pis"`
	ValorCOFINS        decimal.NullDecimal `json:"valor_cofins,omitempty" db:"valor_cofins"`
	ValorOutros        decimal.NullDecimal `json:"valor_outros,omitempty" db:"valor_outros"`
	ValorTotalNFe      decimal.NullDecimal `json:"valor_total_nfe,omitempty" db:"valor_total_nfe"`
}

// Vazio reports whether no total field was present in the source document,
// in which case no row is written.
func (t *TotaisNFe) Vazio() bool {
	for _, d := range []decimal.NullDecimal{
		t.BaseCalculoICMS, t.ValorICMS, t.BaseCalculoICMSST, t.ValorICMSST,
		t.ValorProdutos, t.ValorFrete, t.ValorSeguro, t.ValorDesconto,
		t.ValorII, t.ValorIPI, t.ValorPIS, t.ValorCOFINS, t.ValorOutros,
		t.ValorTotalNFe,
	} {
		if d.Valid {
			return false
		}
	}
	return true
}
