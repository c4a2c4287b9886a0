package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/seller-crm/internal/domain/entity"
	"github.com/jhoicas/seller-crm/internal/domain/repository"
)

var (
	_ repository.BusinessRepository = (*BusinessRepo)(nil)
	_ repository.CustomerRepository = (*CustomerRepo)(nil)
	_ repository.BookingRepository  = (*BookingRepo)(nil)
)

// BusinessRepo negocios en memoria.
type BusinessRepo struct{ store *Store }

// NewBusinessRepository construye el repositorio.
func NewBusinessRepository(s *Store) *BusinessRepo { return &BusinessRepo{store: s} }

func (r *BusinessRepo) GetByID(_ context.Context, id string) (*entity.Business, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	if b, ok := r.store.businesses[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, nil
}

func (r *BusinessRepo) GetByOwner(_ context.Context, sellerID string) (*entity.Business, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var found *entity.Business
	for _, b := range r.store.businesses {
		if b.OwnerID != sellerID {
			continue
		}
		// más antiguo primero, como el ORDER BY created_at de PostgreSQL
		if found == nil || b.CreatedAt.Before(found.CreatedAt) {
			found = b
		}
	}
	if found == nil {
		return nil, nil
	}
	cp := *found
	return &cp, nil
}

// CustomerRepo perfiles de clientes en memoria.
type CustomerRepo struct{ store *Store }

// NewCustomerRepository construye el repositorio.
func NewCustomerRepository(s *Store) *CustomerRepo { return &CustomerRepo{store: s} }

func (r *CustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	if c, ok := r.store.customers[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *CustomerRepo) ListAddressesByBusiness(_ context.Context, businessID string) ([]string, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []string
	for key := range r.store.relByPair {
		if key.businessID != businessID {
			continue
		}
		if c, ok := r.store.customers[key.customerID]; ok && c.Address != "" {
			out = append(out, c.Address)
		}
	}
	sort.Strings(out)
	return out, nil
}

// BookingRepo colección de reservas en memoria.
type BookingRepo struct{ store *Store }

// NewBookingRepository construye el repositorio.
func NewBookingRepository(s *Store) *BookingRepo { return &BookingRepo{store: s} }

func (r *BookingRepo) ListByBusinessSince(_ context.Context, businessID string, since time.Time) ([]*entity.Booking, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []*entity.Booking
	for _, b := range r.store.bookings {
		if b.BusinessID == businessID && !b.CreatedAt.Before(since) {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *BookingRepo) CountByBusiness(_ context.Context, businessID string) (repository.BookingCounts, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var c repository.BookingCounts
	for _, b := range r.store.bookings {
		if b.BusinessID != businessID {
			continue
		}
		c.Total++
		if b.Status == entity.BookingStatusCompleted {
			c.Completed++
		}
	}
	return c, nil
}

func (r *BookingRepo) ListLocations(_ context.Context, businessID string) ([]string, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []string
	for _, b := range r.store.bookings {
		if b.BusinessID == businessID && b.Location != "" {
			out = append(out, b.Location)
		}
	}
	return out, nil
}

func (r *BookingRepo) ListRecentByCustomer(_ context.Context, businessID, customerID string, limit int) ([]*entity.Booking, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []*entity.Booking
	for _, b := range r.store.bookings {
		if b.BusinessID == businessID && b.CustomerID == customerID {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
