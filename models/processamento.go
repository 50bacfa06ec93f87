package models

import "time"

// Processing outcomes recorded in processamento_nfe.
const (
	StatusSucesso       = "SUCESSO"
	StatusDuplicada     = "DUPLICADA"
	StatusFalhaExtracao = "FALHA_EXTRACAO"
	StatusFalhaDB       = "FALHA_DB"
	StatusErroCritico   = "ERRO_CRITICO"
)

// ProcessamentoNFe is one append-only audit row per processing attempt.
// Rows are inserted outside the document transaction so a rollback never
// erases the trail.
type ProcessamentoNFe struct {
	ID                int64     `json:"id" db:"id"`
	NFeID             *int64    `json:"nfe_id,omitempty" db:"nfe_id"`
	DataProcessamento time.Time `json:"data_processamento" db:"data_processamento"`
	Status            string    `json:"status" db:"status"`
	Mensagem          string    `json:"mensagem" db:"mensagem"`
	XMLOriginal       string    `json:"-" db:"xml_original"`
}
