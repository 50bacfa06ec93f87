package models

const TipoEnderecoPrincipal = "PRINCIPAL"

// Endereco is a full postal record owned by a Pessoa. NFeID exists for the
// specialized invoice-owned address types and stays null in the current flow.
type Endereco struct {
	ID              int64   `json:"id" db:"id"`
	PessoaID        int64   `json:"pessoa_id" db:"pessoa_id"`
	NFeID           *int64  `json:"nfe_id,omitempty" db:"nfe_id"`
	TipoEndereco    string  `json:"tipo_endereco" db:"tipo_endereco"`
	Logradouro      string  `json:"logradouro" db:"logradouro"`
	Numero          string  `json:"numero" db:"numero"`
	Complemento     *string `json:"complemento,omitempty" db:"complemento"`
	Bairro          string  `json:"bairro" db:"bairro"`
	CodigoMunicipio string  `json:"codigo_municipio" db:"codigo_municipio"`
	Municipio       string  `json:"municipio" db:"municipio"`
	UF              string  `json:"uf" db:"uf"`
	CEP             string  `json:"cep" db:"cep"`
	CodigoPais      *string `json:"codigo_pais,omitempty" db:"codigo_pais"`
	Pais            *string `json:"pais,omitempty" db:"pais"`
	Telefone        *string `json:"telefone,omitempty" db:"telefone"`
}

// Completo reports whether every required postal subfield is present.
// Incomplete addresses are skipped at persistence time instead of being
// stored malformed.
func (e *Endereco) Completo() bool {
	return e.Logradouro != "" && e.Numero != "" && e.Bairro != "" &&
		e.CodigoMunicipio != "" && e.Municipio != "" && e.UF != "" && e.CEP != ""
}
