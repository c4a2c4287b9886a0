package repository

import (
	"context"

	"github.com/jhoicas/seller-crm/internal/domain/entity"
)

// BusinessRepository lectura de negocios (los administra el módulo de listados).
// Devuelve (nil, nil) si no existe.
type BusinessRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Business, error)
	// GetByOwner devuelve el negocio del vendedor; se asume como máximo uno por vendedor.
	GetByOwner(ctx context.Context, sellerID string) (*entity.Business, error)
}
