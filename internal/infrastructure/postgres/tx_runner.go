package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/seller-crm/internal/application/crm"
	"github.com/jhoicas/seller-crm/internal/domain/repository"
)

var _ crm.IngestionTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunIngestion inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// La marca de reserva procesada, los contadores, el segmento y la bitácora se confirman juntos.
func (r *TxRunner) RunIngestion(ctx context.Context, fn func(
	relRepo repository.RelationshipRepository,
	commRepo repository.CommunicationRepository,
) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRelationshipRepository(tx), NewCommunicationRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
