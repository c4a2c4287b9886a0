// Package crm contiene los casos de uso de relaciones con clientes: ingesta de reservas,
// segmentación, notas y analítica por vendedor.
package crm

import (
	"context"

	"github.com/jhoicas/seller-crm/internal/domain/repository"
)

// IngestionTxRunner ejecuta fn dentro de una transacción con repositorios atados a ella.
// Es independiente de la transacción de la reserva: un fallo aquí nunca la revierte.
type IngestionTxRunner interface {
	RunIngestion(ctx context.Context, fn func(
		relRepo repository.RelationshipRepository,
		commRepo repository.CommunicationRepository,
	) error) error
}
