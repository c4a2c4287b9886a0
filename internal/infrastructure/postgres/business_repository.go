package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/seller-crm/internal/domain/entity"
	"github.com/jhoicas/seller-crm/internal/domain/repository"
)

var _ repository.BusinessRepository = (*BusinessRepo)(nil)

// BusinessRepo lectura de negocios (la tabla la mantiene el módulo de listados).
type BusinessRepo struct {
	q Querier
}

// NewBusinessRepository construye el adaptador.
func NewBusinessRepository(q Querier) *BusinessRepo {
	return &BusinessRepo{q: q}
}

func (r *BusinessRepo) get(ctx context.Context, where string, arg string) (*entity.Business, error) {
	query := `
		SELECT id, owner_id, name, status, created_at, updated_at
		FROM businesses WHERE ` + where + `
		ORDER BY created_at LIMIT 1`
	var b entity.Business
	err := r.q.QueryRow(ctx, query, arg).Scan(&b.ID, &b.OwnerID, &b.Name, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get business: %w", err)
	}
	return &b, nil
}

// GetByID obtiene un negocio por ID.
func (r *BusinessRepo) GetByID(ctx context.Context, id string) (*entity.Business, error) {
	return r.get(ctx, "id = $1", id)
}

// GetByOwner primer negocio creado por el vendedor.
func (r *BusinessRepo) GetByOwner(ctx context.Context, sellerID string) (*entity.Business, error) {
	return r.get(ctx, "owner_id = $1", sellerID)
}
