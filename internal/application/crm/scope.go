package crm

import (
	"context"
	"fmt"

	"github.com/jhoicas/seller-crm/internal/domain"
	"github.com/jhoicas/seller-crm/internal/domain/entity"
	"github.com/jhoicas/seller-crm/internal/domain/repository"
)

// Scope identifica al vendedor que actúa y, opcionalmente, el negocio que consulta.
type Scope struct {
	SellerID   string
	BusinessID string // vacío = el negocio del vendedor
}

// resolveBusiness devuelve el negocio sobre el que opera el vendedor.
//   - Sin BusinessID: el negocio del vendedor o domain.ErrBusinessNotFound.
//   - Con BusinessID: domain.ErrBusinessNotFound si no existe, domain.ErrForbidden si no es suyo.
func resolveBusiness(ctx context.Context, repo repository.BusinessRepository, s Scope) (*entity.Business, error) {
	if s.SellerID == "" {
		return nil, domain.ErrUnauthorized
	}
	if s.BusinessID == "" {
		b, err := repo.GetByOwner(ctx, s.SellerID)
		if err != nil {
			return nil, fmt.Errorf("crm: negocio del vendedor: %w", err)
		}
		if b == nil {
			return nil, domain.ErrBusinessNotFound
		}
		return b, nil
	}
	b, err := repo.GetByID(ctx, s.BusinessID)
	if err != nil {
		return nil, fmt.Errorf("crm: negocio %s: %w", s.BusinessID, err)
	}
	if b == nil {
		return nil, domain.ErrBusinessNotFound
	}
	if !b.OwnedBy(s.SellerID) {
		return nil, domain.ErrForbidden
	}
	return b, nil
}
