package repository

import (
	"context"

	"github.com/jhoicas/seller-crm/internal/domain/entity"
)

// NoteRepository notas del vendedor (solo se agregan).
type NoteRepository interface {
	Create(ctx context.Context, n *entity.SellerCustomerNote) error
	GetByID(ctx context.Context, id string) (*entity.SellerCustomerNote, error)
	// ListByRelationship más recientes primero; devuelve también el total.
	ListByRelationship(ctx context.Context, relationshipID string, limit, offset int) ([]*entity.SellerCustomerNote, int, error)
}
