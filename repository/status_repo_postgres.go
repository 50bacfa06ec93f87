package repository

import (
	"context"
	"database/sql"
	"time"

	"watchman/models"
)

type PostgresStatusRepo struct {
	DB *sql.DB
}

func NewPostgresStatusRepo(db *sql.DB) *PostgresStatusRepo {
	return &PostgresStatusRepo{DB: db}
}

// Registrar appends one audit row. It runs on the pool connection so it
// survives the rollback of whatever document transaction triggered it.
func (r *PostgresStatusRepo) Registrar(ctx context.Context, p *models.ProcessamentoNFe) error {
	if p.DataProcessamento.IsZero() {
		p.DataProcessamento = time.Now().UTC()
	}
	return r.DB.QueryRowContext(ctx, `
		INSERT INTO nfe.processamento_nfe (nfe_id, data_processamento, status, mensagem, xml_original)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, p.NFeID, p.DataProcessamento, p.Status, p.Mensagem, nullIfEmpty(p.XMLOriginal)).Scan(&p.ID)
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// UltimosPorNFe returns the audit trail for one document, newest first.
func (r *PostgresStatusRepo) UltimosPorNFe(ctx context.Context, nfeID int64) ([]*models.ProcessamentoNFe, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, nfe_id, data_processamento, status, mensagem
		FROM nfe.processamento_nfe
		WHERE nfe_id = $1
		ORDER BY data_processamento DESC
	`, nfeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*models.ProcessamentoNFe
	for rows.Next() {
		p := &models.ProcessamentoNFe{}
		if err := rows.Scan(&p.ID, &p.NFeID, &p.DataProcessamento, &p.Status, &p.Mensagem); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}
