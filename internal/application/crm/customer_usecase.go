package crm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/seller-crm/internal/application/dto"
	"github.com/jhoicas/seller-crm/internal/domain"
	"github.com/jhoicas/seller-crm/internal/domain/entity"
	"github.com/jhoicas/seller-crm/internal/domain/repository"
	"github.com/jhoicas/seller-crm/pkg/logger"
)

const (
	detailNotesLimit    = 20
	detailCommsLimit    = 20
	detailBookingsLimit = 5
	maxNoteLength       = 5000
)

// CustomerRepos repositorios que usa CustomerUseCase.
type CustomerRepos struct {
	Businesses     repository.BusinessRepository
	Customers      repository.CustomerRepository
	Relationships  repository.RelationshipRepository
	Notes          repository.NoteRepository
	Communications repository.CommunicationRepository
	Bookings       repository.BookingRepository
}

// CustomerUseCase listado, detalle, notas y override de segmento de los clientes de un vendedor.
type CustomerUseCase struct {
	repos CustomerRepos
	log   *logger.Logger
	now   func() time.Time
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repos CustomerRepos, log *logger.Logger) *CustomerUseCase {
	return &CustomerUseCase{repos: repos, log: log.Component("customers"), now: time.Now}
}

// List lista las relaciones del negocio con búsqueda libre y filtros de segmento y estado.
// Un vendedor sin negocio recibe una lista vacía.
func (uc *CustomerUseCase) List(ctx context.Context, scope Scope, q dto.CustomerListQuery) (*dto.CustomerList, error) {
	q.Normalize()
	segment := entity.Segment(strings.ToLower(strings.TrimSpace(q.Segment)))
	if segment != "" && !segment.Valid() {
		return nil, domain.ErrInvalidSegment
	}
	status := entity.RelationshipStatus(strings.ToLower(strings.TrimSpace(q.Status)))
	if status != "" && !status.Valid() {
		return nil, domain.ErrInvalidInput
	}

	business, err := resolveBusiness(ctx, uc.repos.Businesses, scope)
	if errors.Is(err, domain.ErrBusinessNotFound) {
		return &dto.CustomerList{Rows: []dto.CustomerRowDTO{}, Pagination: dto.NewPagination(q.PageRequest, 0)}, nil
	}
	if err != nil {
		return nil, err
	}

	rows, total, err := uc.repos.Relationships.List(ctx, repository.RelationshipFilter{
		BusinessID: business.ID,
		Search:     strings.TrimSpace(q.Search),
		Segment:    segment,
		Status:     status,
		Limit:      q.Limit,
		Offset:     q.Offset(),
	})
	if err != nil {
		return nil, fmt.Errorf("crm: listar clientes: %w", err)
	}

	now := uc.now()
	out := make([]dto.CustomerRowDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, toRowDTO(row, now))
	}
	return &dto.CustomerList{Rows: out, Pagination: dto.NewPagination(q.PageRequest, total)}, nil
}

// relationshipFor resuelve el negocio y la relación con el cliente o devuelve 404/403.
func (uc *CustomerUseCase) relationshipFor(ctx context.Context, scope Scope, customerID string) (*entity.CustomerRelationship, error) {
	if customerID == "" {
		return nil, domain.ErrInvalidInput
	}
	business, err := resolveBusiness(ctx, uc.repos.Businesses, scope)
	if err != nil {
		return nil, err
	}
	rel, err := uc.repos.Relationships.GetByBusinessAndCustomer(ctx, business.ID, customerID)
	if err != nil {
		return nil, fmt.Errorf("crm: relación: %w", err)
	}
	if rel == nil {
		return nil, domain.ErrRelationshipNotFound
	}
	return rel, nil
}

// Detail perfil, notas, comunicaciones y reservas recientes del cliente.
func (uc *CustomerUseCase) Detail(ctx context.Context, scope Scope, customerID string) (*dto.CustomerDetail, error) {
	rel, err := uc.relationshipFor(ctx, scope, customerID)
	if err != nil {
		return nil, err
	}
	customer, err := uc.repos.Customers.GetByID(ctx, rel.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("crm: perfil del cliente: %w", err)
	}
	notes, _, err := uc.repos.Notes.ListByRelationship(ctx, rel.ID, detailNotesLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("crm: notas: %w", err)
	}
	comms, err := uc.repos.Communications.ListByRelationship(ctx, rel.ID, detailCommsLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("crm: comunicaciones: %w", err)
	}
	bookings, err := uc.repos.Bookings.ListRecentByCustomer(ctx, rel.BusinessID, rel.CustomerID, detailBookingsLimit)
	if err != nil {
		return nil, fmt.Errorf("crm: reservas recientes: %w", err)
	}

	return &dto.CustomerDetail{
		Profile:        toProfileDTO(rel, customer, uc.now()),
		Notes:          toNoteDTOs(notes),
		Communications: toCommunicationDTOs(comms),
		RecentBookings: toBookingDTOs(bookings),
	}, nil
}

// ListNotes notas del cliente, más recientes primero y paginadas.
func (uc *CustomerUseCase) ListNotes(ctx context.Context, scope Scope, customerID string, page dto.PageRequest) (*dto.NoteList, error) {
	page.Normalize()
	rel, err := uc.relationshipFor(ctx, scope, customerID)
	if err != nil {
		return nil, err
	}
	notes, total, err := uc.repos.Notes.ListByRelationship(ctx, rel.ID, page.Limit, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("crm: notas: %w", err)
	}
	return &dto.NoteList{Notes: toNoteDTOs(notes), Pagination: dto.NewPagination(page, total)}, nil
}

// GetNote devuelve una nota del negocio del vendedor.
func (uc *CustomerUseCase) GetNote(ctx context.Context, scope Scope, customerID, noteID string) (*dto.NoteDTO, error) {
	rel, err := uc.relationshipFor(ctx, scope, customerID)
	if err != nil {
		return nil, err
	}
	n, err := uc.repos.Notes.GetByID(ctx, noteID)
	if err != nil {
		return nil, fmt.Errorf("crm: nota: %w", err)
	}
	if n == nil || n.RelationshipID != rel.ID {
		return nil, domain.ErrNoteNotFound
	}
	out := toNoteDTO(n)
	return &out, nil
}

// AddNote agrega una nota. Requiere relación existente con el cliente.
// Una nota follow-up con fecha programa además el seguimiento en la relación.
func (uc *CustomerUseCase) AddNote(ctx context.Context, scope Scope, customerID string, in dto.AddNoteRequest) (*dto.NoteDTO, error) {
	text := strings.TrimSpace(in.Note)
	if text == "" || len(text) > maxNoteLength {
		return nil, domain.ErrInvalidInput
	}
	noteType := entity.NoteType(strings.ToLower(in.Type))
	if noteType == "" {
		noteType = entity.NoteGeneral
	}
	if !noteType.Valid() {
		return nil, domain.ErrInvalidInput
	}
	priority := strings.ToLower(in.Priority)
	switch priority {
	case "":
		priority = entity.PriorityMedium
	case entity.PriorityLow, entity.PriorityMedium, entity.PriorityHigh:
	default:
		return nil, domain.ErrInvalidInput
	}

	rel, err := uc.relationshipFor(ctx, scope, customerID)
	if err != nil {
		return nil, err
	}

	note := &entity.SellerCustomerNote{
		ID:             uuid.New().String(),
		RelationshipID: rel.ID,
		BusinessID:     rel.BusinessID,
		CustomerID:     rel.CustomerID,
		Note:           text,
		Type:           noteType,
		Priority:       priority,
		IsPrivate:      in.IsPrivate,
		CreatedBy:      scope.SellerID,
		Tags:           nonNil(in.Tags),
		CreatedAt:      uc.now(),
	}
	// La nota solo se persiste si el seguimiento quedó programado.
	if noteType == entity.NoteFollowUp && in.FollowUpDate != nil {
		if err := uc.repos.Relationships.SetFollowUp(ctx, rel.ID, *in.FollowUpDate, text); err != nil {
			return nil, fmt.Errorf("crm: programar seguimiento: %w", err)
		}
	}
	if err := uc.repos.Notes.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("crm: crear nota: %w", err)
	}

	uc.log.Info().
		Str("relationship_id", rel.ID).
		Str("note_id", note.ID).
		Str("type", string(noteType)).
		Msg("nota agregada")
	out := toNoteDTO(note)
	return &out, nil
}

// UpdateSegment override manual: asigna cualquier segmento sin pasar por el trinquete.
func (uc *CustomerUseCase) UpdateSegment(ctx context.Context, scope Scope, customerID string, in dto.UpdateSegmentRequest) (*dto.CustomerProfileDTO, error) {
	segment := entity.Segment(strings.ToLower(strings.TrimSpace(in.Segment)))
	if !segment.Valid() {
		return nil, domain.ErrInvalidSegment
	}
	rel, err := uc.relationshipFor(ctx, scope, customerID)
	if err != nil {
		return nil, err
	}
	if err := uc.repos.Relationships.SetSegment(ctx, rel.ID, segment); err != nil {
		return nil, fmt.Errorf("crm: actualizar segmento: %w", err)
	}
	uc.log.Info().
		Str("relationship_id", rel.ID).
		Str("from", string(rel.Segment)).
		Str("to", string(segment)).
		Str("seller_id", scope.SellerID).
		Msg("segmento asignado manualmente")
	rel.Segment = segment

	customer, err := uc.repos.Customers.GetByID(ctx, rel.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("crm: perfil del cliente: %w", err)
	}
	out := toProfileDTO(rel, customer, uc.now())
	return &out, nil
}
