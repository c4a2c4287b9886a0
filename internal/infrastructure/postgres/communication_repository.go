package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/seller-crm/internal/domain/entity"
	"github.com/jhoicas/seller-crm/internal/domain/repository"
)

var _ repository.CommunicationRepository = (*CommunicationRepo)(nil)

// CommunicationRepo bitácora de comunicaciones (usable con pool o tx).
type CommunicationRepo struct {
	q Querier
}

// NewCommunicationRepository construye el adaptador.
func NewCommunicationRepository(q Querier) *CommunicationRepo {
	return &CommunicationRepo{q: q}
}

// Append inserta una entrada; la bitácora nunca se actualiza.
func (r *CommunicationRepo) Append(ctx context.Context, c *entity.CustomerCommunication) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO customer_communications (
			id, relationship_id, business_id, customer_id, type, subject, content,
			related_id, related_model, status, channel, priority, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		c.ID, c.RelationshipID, c.BusinessID, c.CustomerID, c.Type, c.Subject, c.Content,
		nullIfEmpty(c.RelatedID), nullIfEmpty(c.RelatedModel), c.Status, c.Channel, c.Priority, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert communication: %w", err)
	}
	return nil
}

func (r *CommunicationRepo) ListByRelationship(ctx context.Context, relationshipID string, limit, offset int) ([]*entity.CustomerCommunication, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, relationship_id, business_id, customer_id, type, subject, content,
			COALESCE(related_id, ''), COALESCE(related_model, ''), status, channel, priority, created_at
		FROM customer_communications
		WHERE relationship_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, relationshipID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list communications: %w", err)
	}
	defer rows.Close()

	var list []*entity.CustomerCommunication
	for rows.Next() {
		var c entity.CustomerCommunication
		if err := rows.Scan(&c.ID, &c.RelationshipID, &c.BusinessID, &c.CustomerID, &c.Type, &c.Subject, &c.Content,
			&c.RelatedID, &c.RelatedModel, &c.Status, &c.Channel, &c.Priority, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan communication: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
