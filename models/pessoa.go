package models

// Party roles on an invoice.
const (
	TipoPessoaEmitente       = "EMITENTE"
	TipoPessoaDestinatario   = "DESTINATARIO"
	TipoPessoaTransportadora = "TRANSPORTADORA"
)

// Pessoa is an issuer, recipient or carrier. Deduplicated by CNPJ/CPF:
// the same company appearing on many invoices maps to one row.
type Pessoa struct {
	ID                int64   `json:"id" db:"id"`
	TipoPessoa        string  `json:"tipo_pessoa" db:"tipo_pessoa"`
	CNPJ              *string `json:"cnpj,omitempty" db:"cnpj"`
	CPF               *string `json:"cpf,omitempty" db:"cpf"`
	Nome              *string `json:"nome,omitempty" db:"nome"`
	NomeFantasia      *string `json:"nome_fantasia,omitempty" db:"nome_fantasia"`
	InscricaoEstadual *string `json:"inscricao_estadual,omitempty" db:"inscricao_estadual"`
	RegimeTributario  *int64  `json:"regime_tributario,omitempty" db:"regime_tributario"`
	Email             *string `json:"email,omitempty" db:"email"`
}

// TemDocumento reports whether the party carries a tax id the schema can
// deduplicate on.
func (p *Pessoa) TemDocumento() bool {
	return (p.CNPJ != nil && *p.CNPJ != "") || (p.CPF != nil && *p.CPF != "")
}
