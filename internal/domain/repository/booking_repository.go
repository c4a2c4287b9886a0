package repository

import (
	"context"
	"time"

	"github.com/jhoicas/seller-crm/internal/domain/entity"
)

// BookingCounts conteos globales de reservas del negocio.
type BookingCounts struct {
	Total     int
	Completed int
}

// BookingRepository lectura de la colección de reservas (propiedad del ciclo de reservas).
type BookingRepository interface {
	// ListByBusinessSince reservas creadas desde `since` (cero = todas), más antiguas primero.
	ListByBusinessSince(ctx context.Context, businessID string, since time.Time) ([]*entity.Booking, error)
	CountByBusiness(ctx context.Context, businessID string) (BookingCounts, error)
	// ListLocations ubicaciones no vacías de las reservas del negocio.
	ListLocations(ctx context.Context, businessID string) ([]string, error)
	// ListRecentByCustomer últimas `limit` reservas del cliente en el negocio.
	ListRecentByCustomer(ctx context.Context, businessID, customerID string, limit int) ([]*entity.Booking, error)
}
