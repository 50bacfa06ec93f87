package repository

import (
	"context"
	"errors"

	"watchman/models"
)

// ErrDuplicateChaveAcesso signals that the document's access key is already
// persisted. It is an idempotent no-op, not a failure: the caller must not
// retry, and must not record it as an error.
var ErrDuplicateChaveAcesso = errors.New("nfe: chave de acesso already persisted")

// ErrPessoaSemDocumento signals a party without CNPJ or CPF. The schema has
// nothing to deduplicate on, so the party cannot be inserted or linked.
var ErrPessoaSemDocumento = errors.New("nfe: pessoa has no CNPJ/CPF")

type NFeRepository interface {
	// Salvar persists the whole document in one transaction and returns
	// the new surrogate id, or ErrDuplicateChaveAcesso when the access
	// key was seen before.
	Salvar(ctx context.Context, nf *models.NotaFiscal) (int64, error)
	BuscarPorID(ctx context.Context, id int64) (*models.NotaFiscal, error)
	BuscarPorChaveAcesso(ctx context.Context, chave string) (*models.NotaFiscal, error)
	ListarResumos(ctx context.Context) ([]*models.NFeResumo, error)
}
