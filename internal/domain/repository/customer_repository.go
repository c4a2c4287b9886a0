package repository

import (
	"context"

	"github.com/jhoicas/seller-crm/internal/domain/entity"
)

// CustomerRepository lectura de perfiles de clientes. Devuelve (nil, nil) si no existe.
type CustomerRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	// ListAddressesByBusiness direcciones no vacías de los clientes con relación en el negocio.
	ListAddressesByBusiness(ctx context.Context, businessID string) ([]string, error)
}
