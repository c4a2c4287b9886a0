package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/seller-crm/internal/domain/entity"
	"github.com/jhoicas/seller-crm/internal/domain/repository"
)

var (
	_ repository.CommunicationRepository = (*CommunicationRepo)(nil)
	_ repository.NoteRepository          = (*NoteRepo)(nil)
)

// CommunicationRepo bitácora de comunicaciones en memoria.
type CommunicationRepo struct {
	store  *Store
	locked bool
}

// NewCommunicationRepository construye el repositorio fuera de una ingesta.
func NewCommunicationRepository(s *Store) *CommunicationRepo {
	return &CommunicationRepo{store: s}
}

func (r *CommunicationRepo) Append(_ context.Context, c *entity.CustomerCommunication) error {
	defer guard{store: r.store, locked: r.locked}.write()()
	cp := *c
	r.store.communications = append(r.store.communications, &cp)
	return nil
}

func (r *CommunicationRepo) ListByRelationship(_ context.Context, relationshipID string, limit, offset int) ([]*entity.CustomerCommunication, error) {
	defer guard{store: r.store, locked: r.locked}.read()()
	var out []*entity.CustomerCommunication
	for _, c := range r.store.communications {
		if c.RelationshipID == relationshipID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, limit, offset), nil
}

// NoteRepo notas del vendedor en memoria.
type NoteRepo struct{ store *Store }

// NewNoteRepository construye el repositorio.
func NewNoteRepository(s *Store) *NoteRepo { return &NoteRepo{store: s} }

func (r *NoteRepo) Create(_ context.Context, n *entity.SellerCustomerNote) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *n
	cp.Tags = append([]string(nil), n.Tags...)
	r.store.notes = append(r.store.notes, &cp)
	return nil
}

func (r *NoteRepo) GetByID(_ context.Context, id string) (*entity.SellerCustomerNote, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, n := range r.store.notes {
		if n.ID == id {
			cp := *n
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *NoteRepo) ListByRelationship(_ context.Context, relationshipID string, limit, offset int) ([]*entity.SellerCustomerNote, int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []*entity.SellerCustomerNote
	for _, n := range r.store.notes {
		if n.RelationshipID == relationshipID {
			cp := *n
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, limit, offset), len(out), nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && limit < end-offset {
		end = offset + limit
	}
	return items[offset:end]
}
