// Package memory implementa los repositorios del CRM en memoria.
// Se usa con STORAGE_DRIVER=memory (desarrollo local) y en los tests de casos de uso.
// Un único mutex serializa todas las operaciones; las ingestas se aplican completas o no se aplican.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/seller-crm/internal/domain/entity"
	"github.com/jhoicas/seller-crm/internal/domain/repository"
)

// Store datos compartidos por todos los repositorios en memoria.
type Store struct {
	mu sync.RWMutex

	businesses     map[string]*entity.Business
	customers      map[string]*entity.Customer
	bookings       []*entity.Booking
	relationships  map[string]*entity.CustomerRelationship // por ID
	relByPair      map[pairKey]string                      // (negocio, cliente) → ID
	processed      map[string]struct{}                     // bookingIDs ya ingeridos
	communications []*entity.CustomerCommunication
	notes          []*entity.SellerCustomerNote
}

type pairKey struct {
	businessID string
	customerID string
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		businesses:    make(map[string]*entity.Business),
		customers:     make(map[string]*entity.Customer),
		relationships: make(map[string]*entity.CustomerRelationship),
		relByPair:     make(map[pairKey]string),
		processed:     make(map[string]struct{}),
	}
}

// PutBusiness registra un negocio (datos del módulo de listados).
func (s *Store) PutBusiness(b *entity.Business) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *b
	s.businesses[b.ID] = &cp
}

// PutCustomer registra un perfil de cliente.
func (s *Store) PutCustomer(c *entity.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *c
	s.customers[c.ID] = &cp
}

// PutBooking registra una reserva de la colección de reservas.
func (s *Store) PutBooking(b *entity.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *b
	s.bookings = append(s.bookings, &cp)
}

// PutRelationship inserta una relación tal cual (fixtures y datos semilla).
func (s *Store) PutRelationship(r *entity.CustomerRelationship) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := cloneRelationship(r)
	s.relationships[r.ID] = cp
	s.relByPair[pairKey{r.BusinessID, r.CustomerID}] = r.ID
}

// TxRunner ejecuta ingestas con el almacén bloqueado de principio a fin.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// RunIngestion toma el lock exclusivo, trabaja sobre una copia de las tablas mutables
// y solo la publica si fn termina sin error (commit); si no, se descarta (rollback).
func (r *TxRunner) RunIngestion(ctx context.Context, fn func(
	relRepo repository.RelationshipRepository,
	commRepo repository.CommunicationRepository,
) error) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.snapshot()
	if err := fn(&RelationshipRepo{store: tx, locked: true}, &CommunicationRepo{store: tx, locked: true}); err != nil {
		return err
	}
	s.relationships = tx.relationships
	s.relByPair = tx.relByPair
	s.processed = tx.processed
	s.communications = tx.communications
	return nil
}

// snapshot copia las tablas que puede tocar una ingesta. Llamar con el lock tomado.
func (s *Store) snapshot() *Store {
	tx := &Store{
		businesses:     s.businesses,
		customers:      s.customers,
		bookings:       s.bookings,
		notes:          s.notes,
		relationships:  make(map[string]*entity.CustomerRelationship, len(s.relationships)),
		relByPair:      make(map[pairKey]string, len(s.relByPair)),
		processed:      make(map[string]struct{}, len(s.processed)),
		communications: append([]*entity.CustomerCommunication(nil), s.communications...),
	}
	for id, r := range s.relationships {
		tx.relationships[id] = cloneRelationship(r)
	}
	for k, v := range s.relByPair {
		tx.relByPair[k] = v
	}
	for k := range s.processed {
		tx.processed[k] = struct{}{}
	}
	return tx
}

func cloneRelationship(r *entity.CustomerRelationship) *entity.CustomerRelationship {
	cp := *r
	cp.Preferences = append([]string(nil), r.Preferences...)
	cp.Tags = append([]string(nil), r.Tags...)
	return &cp
}
