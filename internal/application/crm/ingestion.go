package crm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/seller-crm/internal/domain"
	"github.com/jhoicas/seller-crm/internal/domain/entity"
	"github.com/jhoicas/seller-crm/internal/domain/repository"
	"github.com/jhoicas/seller-crm/internal/domain/segmentation"
	"github.com/jhoicas/seller-crm/pkg/logger"
)

// Outcome resultado de procesar un evento de reserva.
type Outcome string

const (
	OutcomeApplied   Outcome = "applied"
	OutcomeDuplicate Outcome = "duplicate"
	OutcomeSkipped   Outcome = "skipped"  // negocio no resuelto
	OutcomeRejected  Outcome = "rejected" // evento inválido
	OutcomeFailed    Outcome = "failed"   // fallo de almacenamiento
)

// maxSegmentCAS reintentos del compare-and-swap de segmento.
const maxSegmentCAS = 3

// IngestionResult resultado de la ingesta.
type IngestionResult struct {
	Outcome         Outcome
	Relationship    *entity.CustomerRelationship
	PreviousSegment entity.Segment
	Upgraded        bool
}

// IngestionUseCase aplica reservas confirmadas a la relación (negocio, cliente):
// contadores atómicos, segmentación con trinquete y registro en la bitácora.
type IngestionUseCase struct {
	txRunner     IngestionTxRunner
	businessRepo repository.BusinessRepository
	rules        segmentation.Rules
	log          *logger.Logger
	now          func() time.Time
}

// NewIngestionUseCase construye el caso de uso.
func NewIngestionUseCase(
	txRunner IngestionTxRunner,
	businessRepo repository.BusinessRepository,
	rules segmentation.Rules,
	log *logger.Logger,
) *IngestionUseCase {
	return &IngestionUseCase{
		txRunner:     txRunner,
		businessRepo: businessRepo,
		rules:        rules,
		log:          log.Component("ingestion"),
		now:          time.Now,
	}
}

func validateEvent(evt entity.BookingCommitted) error {
	if evt.BookingID == "" || evt.BusinessID == "" || evt.CustomerID == "" {
		return domain.ErrInvalidInput
	}
	if evt.Amount.IsNegative() {
		return domain.ErrInvalidInput
	}
	return nil
}

// Ingest procesa el evento. Debe llamarse una vez por reserva confirmada; las repeticiones
// se detectan por BookingID y devuelven OutcomeDuplicate sin tocar contadores.
// Si el negocio no se puede resolver devuelve OutcomeSkipped sin error.
func (uc *IngestionUseCase) Ingest(ctx context.Context, evt entity.BookingCommitted) (*IngestionResult, error) {
	if err := validateEvent(evt); err != nil {
		return &IngestionResult{Outcome: OutcomeRejected}, err
	}

	business, err := uc.businessRepo.GetByID(ctx, evt.BusinessID)
	if err != nil {
		uc.log.Error().Err(err).
			Str("business_id", evt.BusinessID).
			Str("booking_id", evt.BookingID).
			Msg("consulta de negocio fallida, se omite la ingesta")
		return &IngestionResult{Outcome: OutcomeSkipped}, nil
	}
	if business == nil {
		uc.log.Warn().
			Str("business_id", evt.BusinessID).
			Str("booking_id", evt.BookingID).
			Msg("negocio no encontrado, se omite la ingesta")
		return &IngestionResult{Outcome: OutcomeSkipped}, nil
	}

	occurredAt := evt.CreatedAt
	if occurredAt.IsZero() {
		occurredAt = uc.now()
	}
	in := repository.BookingIngest{
		RelationshipID: uuid.New().String(),
		BookingID:      evt.BookingID,
		BusinessID:     business.ID,
		CustomerID:     evt.CustomerID,
		Amount:         evt.Amount,
		OccurredAt:     occurredAt,
	}

	result := &IngestionResult{Outcome: OutcomeApplied}
	err = uc.txRunner.RunIngestion(ctx, func(
		relRepo repository.RelationshipRepository,
		commRepo repository.CommunicationRepository,
	) error {
		if err := relRepo.MarkBookingProcessed(ctx, in); err != nil {
			return err
		}
		rel, err := relRepo.ApplyBooking(ctx, in)
		if err != nil {
			return err
		}
		result.PreviousSegment = rel.Segment
		if err := uc.upgradeSegment(ctx, relRepo, rel); err != nil {
			return err
		}
		result.Relationship = rel
		result.Upgraded = rel.Segment != result.PreviousSegment

		return commRepo.Append(ctx, &entity.CustomerCommunication{
			ID:             uuid.New().String(),
			RelationshipID: rel.ID,
			BusinessID:     rel.BusinessID,
			CustomerID:     rel.CustomerID,
			Type:           entity.CommunicationBooking,
			Subject:        bookingSubject(evt.Service),
			RelatedID:      evt.BookingID,
			RelatedModel:   "Booking",
			Status:         entity.CommunicationCompleted,
			Channel:        entity.ChannelApp,
			Priority:       entity.PriorityMedium,
			CreatedAt:      occurredAt,
		})
	})
	if errors.Is(err, domain.ErrAlreadyIngested) {
		uc.log.Info().
			Str("booking_id", evt.BookingID).
			Msg("reserva ya procesada, se ignora")
		return &IngestionResult{Outcome: OutcomeDuplicate}, nil
	}
	if err != nil {
		return &IngestionResult{Outcome: OutcomeFailed}, fmt.Errorf("ingestion: %w", err)
	}

	uc.log.Info().
		Str("business_id", business.ID).
		Str("customer_id", evt.CustomerID).
		Str("booking_id", evt.BookingID).
		Str("segment", string(result.Relationship.Segment)).
		Bool("upgraded", result.Upgraded).
		Int("total_bookings", result.Relationship.TotalBookings).
		Msg("reserva aplicada a la relación")
	return result, nil
}

// upgradeSegment evalúa la regla sobre los contadores ya incrementados y persiste solo subidas.
func (uc *IngestionUseCase) upgradeSegment(ctx context.Context, relRepo repository.RelationshipRepository, rel *entity.CustomerRelationship) error {
	for attempt := 0; attempt < maxSegmentCAS; attempt++ {
		next := uc.rules.Evaluate(rel.Segment, rel.TotalBookings, rel.TotalSpent)
		if next == rel.Segment {
			return nil
		}
		ok, err := relRepo.CompareAndSetSegment(ctx, rel.ID, rel.Segment, next)
		if err != nil {
			return err
		}
		if ok {
			rel.Segment = next
			return nil
		}
		fresh, err := relRepo.GetByID(ctx, rel.ID)
		if err != nil {
			return err
		}
		if fresh == nil {
			return domain.ErrRelationshipNotFound
		}
		*rel = *fresh
	}
	return fmt.Errorf("segmento de %s en conflicto tras %d intentos", rel.ID, maxSegmentCAS)
}

// OnBookingCommitted variante de mejor esfuerzo para el ciclo de reservas:
// registra cualquier error y nunca lo propaga.
func (uc *IngestionUseCase) OnBookingCommitted(ctx context.Context, evt entity.BookingCommitted) *IngestionResult {
	res, err := uc.Ingest(ctx, evt)
	if err != nil {
		uc.log.Error().Err(err).
			Str("booking_id", evt.BookingID).
			Str("business_id", evt.BusinessID).
			Str("outcome", string(res.Outcome)).
			Msg("ingesta de reserva fallida; los agregados pueden quedar incompletos")
	}
	return res
}

func bookingSubject(service string) string {
	if service == "" {
		return "Reserva confirmada"
	}
	return "Reserva confirmada: " + service
}
