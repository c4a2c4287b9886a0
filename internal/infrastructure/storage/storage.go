// Package storage elige el adaptador de persistencia según STORAGE_DRIVER.
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/seller-crm/internal/application/crm"
	"github.com/jhoicas/seller-crm/internal/domain/repository"
	"github.com/jhoicas/seller-crm/internal/infrastructure/memory"
	"github.com/jhoicas/seller-crm/internal/infrastructure/postgres"
	"github.com/jhoicas/seller-crm/pkg/config"
	"github.com/jhoicas/seller-crm/pkg/logger"
)

// Repositories puertos listos para inyectar en los casos de uso.
type Repositories struct {
	TxRunner       crm.IngestionTxRunner
	Businesses     repository.BusinessRepository
	Customers      repository.CustomerRepository
	Relationships  repository.RelationshipRepository
	Communications repository.CommunicationRepository
	Notes          repository.NoteRepository
	Bookings       repository.BookingRepository

	// Memory solo con el driver memory (fixtures y semillas locales).
	Memory *memory.Store

	closeFn func()
}

// Close libera el pool de conexiones si lo hay.
func (r *Repositories) Close() {
	if r.closeFn != nil {
		r.closeFn()
	}
}

// Open construye los repositorios del driver configurado.
// Con postgres aplica el schema embebido antes de devolver.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Repositories, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		return Memory(memory.NewStore()), nil

	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Int32("max_conns", pool.Config().MaxConns).Msg("PostgreSQL listo")
		return &Repositories{
			TxRunner:       postgres.NewTxRunner(pool),
			Businesses:     postgres.NewBusinessRepository(pool),
			Customers:      postgres.NewCustomerRepository(pool),
			Relationships:  postgres.NewRelationshipRepository(pool),
			Communications: postgres.NewCommunicationRepository(pool),
			Notes:          postgres.NewNoteRepository(pool),
			Bookings:       postgres.NewBookingRepository(pool),
			closeFn:        pool.Close,
		}, nil
	}
	return nil, fmt.Errorf("driver de almacenamiento desconocido: %q", cfg.Storage)
}

// Memory arma los repositorios sobre un almacén en memoria ya creado.
func Memory(store *memory.Store) *Repositories {
	return &Repositories{
		TxRunner:       memory.NewTxRunner(store),
		Businesses:     memory.NewBusinessRepository(store),
		Customers:      memory.NewCustomerRepository(store),
		Relationships:  memory.NewRelationshipRepository(store),
		Communications: memory.NewCommunicationRepository(store),
		Notes:          memory.NewNoteRepository(store),
		Bookings:       memory.NewBookingRepository(store),
		Memory:         store,
	}
}
