package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una reserva.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

// Booking reserva confirmada en el ciclo de reservas. El CRM solo la lee.
type Booking struct {
	ID         string
	BusinessID string
	CustomerID string
	Service    string
	Amount     decimal.Decimal
	Status     string
	Location   string           // texto libre ingresado por el cliente
	Rating     *decimal.Decimal // calificación 1-5, nil si no hay reseña
	CreatedAt  time.Time
}

// BookingCommitted evento que publica el ciclo de reservas al confirmar una reserva.
type BookingCommitted struct {
	BookingID  string
	BusinessID string
	CustomerID string
	Amount     decimal.Decimal
	Service    string
	Status     string
	CreatedAt  time.Time
}
