package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/seller-crm/internal/domain"
	"github.com/jhoicas/seller-crm/internal/domain/entity"
	"github.com/jhoicas/seller-crm/internal/domain/repository"
)

var _ repository.NoteRepository = (*NoteRepo)(nil)

// NoteRepo notas del vendedor.
type NoteRepo struct {
	q Querier
}

// NewNoteRepository construye el adaptador.
func NewNoteRepository(q Querier) *NoteRepo {
	return &NoteRepo{q: q}
}

const noteColumns = `id, relationship_id, business_id, customer_id, note, type, priority, is_private, created_by, tags, created_at`

func scanNote(row pgx.Row) (*entity.SellerCustomerNote, error) {
	var (
		n        entity.SellerCustomerNote
		noteType string
	)
	if err := row.Scan(&n.ID, &n.RelationshipID, &n.BusinessID, &n.CustomerID, &n.Note, &noteType,
		&n.Priority, &n.IsPrivate, &n.CreatedBy, &n.Tags, &n.CreatedAt); err != nil {
		return nil, err
	}
	n.Type = entity.NoteType(noteType)
	return &n, nil
}

func (r *NoteRepo) Create(ctx context.Context, n *entity.SellerCustomerNote) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO seller_customer_notes (`+noteColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		n.ID, n.RelationshipID, n.BusinessID, n.CustomerID, n.Note, string(n.Type),
		n.Priority, n.IsPrivate, n.CreatedBy, textArray(n.Tags), n.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

func (r *NoteRepo) GetByID(ctx context.Context, id string) (*entity.SellerCustomerNote, error) {
	n, err := scanNote(r.q.QueryRow(ctx, `SELECT `+noteColumns+` FROM seller_customer_notes WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get note: %w", err)
	}
	return n, nil
}

func (r *NoteRepo) ListByRelationship(ctx context.Context, relationshipID string, limit, offset int) ([]*entity.SellerCustomerNote, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM seller_customer_notes WHERE relationship_id = $1`,
		relationshipID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count notes: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT `+noteColumns+` FROM seller_customer_notes
		WHERE relationship_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, relationshipID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var list []*entity.SellerCustomerNote
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan note: %w", err)
		}
		list = append(list, n)
	}
	return list, total, rows.Err()
}
