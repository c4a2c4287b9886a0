package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/seller-crm/internal/domain"
	"github.com/jhoicas/seller-crm/internal/domain/entity"
	"github.com/jhoicas/seller-crm/internal/domain/repository"
)

var _ repository.RelationshipRepository = (*RelationshipRepo)(nil)

// RelationshipRepo relaciones (negocio, cliente) en memoria.
type RelationshipRepo struct {
	store  *Store
	locked bool
}

// NewRelationshipRepository construye el repositorio fuera de una ingesta.
func NewRelationshipRepository(s *Store) *RelationshipRepo {
	return &RelationshipRepo{store: s}
}

func (r *RelationshipRepo) guard() guard { return guard{store: r.store, locked: r.locked} }

func (r *RelationshipRepo) MarkBookingProcessed(_ context.Context, in repository.BookingIngest) error {
	defer r.guard().write()()
	if _, ok := r.store.processed[in.BookingID]; ok {
		return domain.ErrAlreadyIngested
	}
	r.store.processed[in.BookingID] = struct{}{}
	return nil
}

func (r *RelationshipRepo) ApplyBooking(_ context.Context, in repository.BookingIngest) (*entity.CustomerRelationship, error) {
	defer r.guard().write()()
	at := in.OccurredAt
	key := pairKey{in.BusinessID, in.CustomerID}
	if id, ok := r.store.relByPair[key]; ok {
		rel := r.store.relationships[id]
		rel.TotalBookings++
		rel.TotalSpent = rel.TotalSpent.Add(in.Amount)
		if rel.LastBookingDate == nil || !at.Before(*rel.LastBookingDate) {
			rel.LastBookingID = in.BookingID
			rel.LastBookingDate = &at
		}
		if rel.LastInteractionDate == nil || at.After(*rel.LastInteractionDate) {
			rel.LastInteractionDate = &at
		}
		rel.UpdatedAt = time.Now()
		return cloneRelationship(rel), nil
	}

	now := time.Now()
	rel := &entity.CustomerRelationship{
		ID:                       in.RelationshipID,
		BusinessID:               in.BusinessID,
		CustomerID:               in.CustomerID,
		Segment:                  entity.SegmentNew,
		Status:                   entity.RelationshipActive,
		TotalBookings:            1,
		TotalSpent:               in.Amount,
		CommunicationPreferences: entity.DefaultCommunicationPreferences(),
		LastBookingID:            in.BookingID,
		LastBookingDate:          &at,
		LastInteractionDate:      &at,
		CreatedAt:                now,
		UpdatedAt:                now,
	}
	r.store.relationships[rel.ID] = rel
	r.store.relByPair[key] = rel.ID
	return cloneRelationship(rel), nil
}

func (r *RelationshipRepo) CompareAndSetSegment(_ context.Context, id string, from, to entity.Segment) (bool, error) {
	defer r.guard().write()()
	rel, ok := r.store.relationships[id]
	if !ok {
		return false, domain.ErrRelationshipNotFound
	}
	if rel.Segment != from {
		return false, nil
	}
	rel.Segment = to
	rel.UpdatedAt = time.Now()
	return true, nil
}

func (r *RelationshipRepo) SetSegment(_ context.Context, id string, segment entity.Segment) error {
	defer r.guard().write()()
	rel, ok := r.store.relationships[id]
	if !ok {
		return domain.ErrRelationshipNotFound
	}
	rel.Segment = segment
	rel.UpdatedAt = time.Now()
	return nil
}

func (r *RelationshipRepo) SetFollowUp(_ context.Context, id string, at time.Time, reason string) error {
	defer r.guard().write()()
	rel, ok := r.store.relationships[id]
	if !ok {
		return domain.ErrRelationshipNotFound
	}
	rel.FollowUpDate = &at
	rel.FollowUpReason = reason
	rel.UpdatedAt = time.Now()
	return nil
}

func (r *RelationshipRepo) GetByID(_ context.Context, id string) (*entity.CustomerRelationship, error) {
	defer r.guard().read()()
	if rel, ok := r.store.relationships[id]; ok {
		return cloneRelationship(rel), nil
	}
	return nil, nil
}

func (r *RelationshipRepo) GetByBusinessAndCustomer(_ context.Context, businessID, customerID string) (*entity.CustomerRelationship, error) {
	defer r.guard().read()()
	if id, ok := r.store.relByPair[pairKey{businessID, customerID}]; ok {
		return cloneRelationship(r.store.relationships[id]), nil
	}
	return nil, nil
}

func (r *RelationshipRepo) List(_ context.Context, f repository.RelationshipFilter) ([]entity.RelationshipRow, int, error) {
	defer r.guard().read()()
	search := strings.ToLower(strings.TrimSpace(f.Search))

	var rows []entity.RelationshipRow
	for _, rel := range r.store.relationships {
		if rel.BusinessID != f.BusinessID {
			continue
		}
		if f.Segment != "" && rel.Segment != f.Segment {
			continue
		}
		if f.Status != "" && rel.Status != f.Status {
			continue
		}
		var cust *entity.Customer
		if c, ok := r.store.customers[rel.CustomerID]; ok {
			cp := *c
			cust = &cp
		}
		if search != "" && !matchesCustomer(cust, search) {
			continue
		}
		rows = append(rows, entity.RelationshipRow{Relationship: cloneRelationship(rel), Customer: cust})
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i].Relationship.LastActivity(), rows[j].Relationship.LastActivity()
		switch {
		case a == nil && b == nil:
			return rows[i].Relationship.ID < rows[j].Relationship.ID
		case a == nil:
			return false
		case b == nil:
			return true
		case a.Equal(*b):
			return rows[i].Relationship.ID < rows[j].Relationship.ID
		}
		return a.After(*b)
	})

	return page(rows, f.Limit, f.Offset), len(rows), nil
}

func matchesCustomer(c *entity.Customer, search string) bool {
	if c == nil {
		return false
	}
	for _, field := range []string{c.Name, c.Email, c.Phone} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

func (r *RelationshipRepo) ListByBusiness(_ context.Context, businessID string) ([]*entity.CustomerRelationship, error) {
	defer r.guard().read()()
	var out []*entity.CustomerRelationship
	for _, rel := range r.store.relationships {
		if rel.BusinessID == businessID {
			out = append(out, cloneRelationship(rel))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *RelationshipRepo) CountBySegment(_ context.Context, businessID string) (map[entity.Segment]int, error) {
	defer r.guard().read()()
	counts := make(map[entity.Segment]int)
	for _, rel := range r.store.relationships {
		if rel.BusinessID == businessID {
			counts[rel.Segment]++
		}
	}
	return counts, nil
}

func (r *RelationshipRepo) Totals(_ context.Context, businessID string) (repository.RelationshipTotals, error) {
	defer r.guard().read()()
	t := repository.RelationshipTotals{TotalSpent: decimal.Zero}
	for _, rel := range r.store.relationships {
		if rel.BusinessID == businessID {
			t.Count++
			t.TotalSpent = t.TotalSpent.Add(rel.TotalSpent)
		}
	}
	return t, nil
}
