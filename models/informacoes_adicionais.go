package models

// InformacoesAdicionais holds the two free-text notes of the invoice.
type InformacoesAdicionais struct {
	ID               int64   `json:"id" db:"id"`
	NFeID            int64   `json:"nfe_id" db:"nfe_id"`
	InfoContribuinte *string `json:"info_contribuinte,omitempty" db:"info_contribuinte"`
	InfoFisco        *string `json:"info_fisco,omitempty" db:"info_fisco"`
}

// Vazia reports whether both texts are absent or empty.
func (i *InformacoesAdicionais) Vazia() bool {
	preenchido := func(s *string) bool { return s != nil && *s != "" }
	return !preenchido(i.InfoContribuinte) && !preenchido(i.InfoFisco)
}
