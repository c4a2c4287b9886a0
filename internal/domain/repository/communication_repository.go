package repository

import (
	"context"

	"github.com/jhoicas/seller-crm/internal/domain/entity"
)

// CommunicationRepository bitácora de comunicaciones (solo se agrega).
type CommunicationRepository interface {
	Append(ctx context.Context, c *entity.CustomerCommunication) error
	// ListByRelationship más recientes primero.
	ListByRelationship(ctx context.Context, relationshipID string, limit, offset int) ([]*entity.CustomerCommunication, error)
}
