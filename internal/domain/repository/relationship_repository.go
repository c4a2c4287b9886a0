package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/seller-crm/internal/domain/entity"
)

// BookingIngest datos de una reserva que se aplican a los contadores de la relación.
type BookingIngest struct {
	RelationshipID string // ID a usar si la relación se crea
	BookingID      string
	BusinessID     string
	CustomerID     string
	Amount         decimal.Decimal
	OccurredAt     time.Time
}

// RelationshipFilter filtros del listado de clientes.
type RelationshipFilter struct {
	BusinessID string
	Search     string // nombre, email o teléfono
	Segment    entity.Segment
	Status     entity.RelationshipStatus
	Limit      int
	Offset     int
}

// RelationshipTotals acumulados del negocio.
type RelationshipTotals struct {
	Count      int
	TotalSpent decimal.Decimal
}

// RelationshipRepository puerto del almacén de relaciones.
// Los métodos de lectura devuelven (nil, nil) cuando no hay registro.
type RelationshipRepository interface {
	// MarkBookingProcessed registra la reserva en el conjunto de procesadas.
	// Devuelve domain.ErrAlreadyIngested si ya estaba.
	MarkBookingProcessed(ctx context.Context, in BookingIngest) error

	// ApplyBooking crea la relación o incrementa sus contadores de forma atómica
	// (total_bookings + 1, total_spent + amount) y devuelve el registro resultante.
	ApplyBooking(ctx context.Context, in BookingIngest) (*entity.CustomerRelationship, error)

	// CompareAndSetSegment cambia el segmento solo si el valor actual es `from`.
	// Devuelve false si otro escritor lo cambió primero.
	CompareAndSetSegment(ctx context.Context, id string, from, to entity.Segment) (bool, error)

	// SetSegment override manual, sin condiciones.
	SetSegment(ctx context.Context, id string, segment entity.Segment) error

	// SetFollowUp programa un seguimiento (fecha y motivo).
	SetFollowUp(ctx context.Context, id string, at time.Time, reason string) error

	GetByID(ctx context.Context, id string) (*entity.CustomerRelationship, error)
	GetByBusinessAndCustomer(ctx context.Context, businessID, customerID string) (*entity.CustomerRelationship, error)

	// List filas paginadas (más recientes primero por última interacción) y total sin paginar.
	List(ctx context.Context, f RelationshipFilter) ([]entity.RelationshipRow, int, error)

	// ListByBusiness todas las relaciones del negocio (reducción en proceso para analítica).
	ListByBusiness(ctx context.Context, businessID string) ([]*entity.CustomerRelationship, error)

	CountBySegment(ctx context.Context, businessID string) (map[entity.Segment]int, error)
	Totals(ctx context.Context, businessID string) (RelationshipTotals, error)
}
