package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/seller-crm/internal/domain/entity"
	"github.com/jhoicas/seller-crm/internal/domain/repository"
)

var _ repository.BookingRepository = (*BookingRepo)(nil)

// BookingRepo lectura de la tabla de reservas del ciclo de reservas.
type BookingRepo struct {
	q Querier
}

// NewBookingRepository construye el adaptador.
func NewBookingRepository(q Querier) *BookingRepo {
	return &BookingRepo{q: q}
}

const bookingColumns = `id, business_id, customer_id, service, amount, status, location, rating, created_at`

func collectBookings(rows pgx.Rows) ([]*entity.Booking, error) {
	defer rows.Close()
	var list []*entity.Booking
	for rows.Next() {
		var b entity.Booking
		if err := rows.Scan(&b.ID, &b.BusinessID, &b.CustomerID, &b.Service, &b.Amount,
			&b.Status, &b.Location, &b.Rating, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

func (r *BookingRepo) ListByBusinessSince(ctx context.Context, businessID string, since time.Time) ([]*entity.Booking, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+bookingColumns+` FROM bookings
		WHERE business_id = $1 AND created_at >= $2
		ORDER BY created_at`, businessID, since)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return collectBookings(rows)
}

func (r *BookingRepo) CountByBusiness(ctx context.Context, businessID string) (repository.BookingCounts, error) {
	var c repository.BookingCounts
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE status = $2)
		FROM bookings WHERE business_id = $1`,
		businessID, entity.BookingStatusCompleted,
	).Scan(&c.Total, &c.Completed)
	if err != nil {
		return repository.BookingCounts{}, fmt.Errorf("count bookings: %w", err)
	}
	return c, nil
}

func (r *BookingRepo) ListLocations(ctx context.Context, businessID string) ([]string, error) {
	rows, err := r.q.Query(ctx, `
		SELECT location FROM bookings
		WHERE business_id = $1 AND location <> ''`, businessID)
	if err != nil {
		return nil, fmt.Errorf("list booking locations: %w", err)
	}
	defer rows.Close()
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

func (r *BookingRepo) ListRecentByCustomer(ctx context.Context, businessID, customerID string, limit int) ([]*entity.Booking, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+bookingColumns+` FROM bookings
		WHERE business_id = $1 AND customer_id = $2
		ORDER BY created_at DESC
		LIMIT $3`, businessID, customerID, limit)
	if err != nil {
		return nil, fmt.Errorf("list customer bookings: %w", err)
	}
	return collectBookings(rows)
}
