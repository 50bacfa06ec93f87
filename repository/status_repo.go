package repository

import (
	"context"

	"watchman/models"
)

// StatusRepository appends processing-status audit rows. Writes happen on
// the pool connection, outside any document transaction, so a rollback of
// the main work never erases the trail.
type StatusRepository interface {
	Registrar(ctx context.Context, p *models.ProcessamentoNFe) error
}
