package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerListQuery parámetros de GET /api/crm/customers.
type CustomerListQuery struct {
	PageRequest
	Search  string `query:"search"`
	Segment string `query:"segment"`
	Status  string `query:"status"`
}

// CustomerRowDTO fila del listado.
type CustomerRowDTO struct {
	RelationshipID  string          `json:"relationship_id"`
	CustomerID      string          `json:"customer_id"`
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	Segment         string          `json:"segment"`
	Status          string          `json:"status"`
	ActivityState   string          `json:"activity_state"`
	TotalBookings   int             `json:"total_bookings"`
	TotalSpent      decimal.Decimal `json:"total_spent"`
	LastBookingDate *time.Time      `json:"last_booking_date,omitempty"`
	Tags            []string        `json:"tags"`
}

// CustomerList listado paginado.
type CustomerList struct {
	Rows       []CustomerRowDTO `json:"rows"`
	Pagination Pagination       `json:"pagination"`
}

// CommunicationPreferencesDTO canales aceptados por el cliente.
type CommunicationPreferencesDTO struct {
	Email            bool   `json:"email"`
	SMS              bool   `json:"sms"`
	WhatsApp         bool   `json:"whatsapp"`
	Push             bool   `json:"push"`
	PreferredChannel string `json:"preferred_channel,omitempty"`
}

// CustomerProfileDTO relación completa más datos de contacto.
type CustomerProfileDTO struct {
	RelationshipID           string                      `json:"relationship_id"`
	BusinessID               string                      `json:"business_id"`
	CustomerID               string                      `json:"customer_id"`
	Name                     string                      `json:"name"`
	Email                    string                      `json:"email"`
	Phone                    string                      `json:"phone"`
	Address                  string                      `json:"address"`
	Segment                  string                      `json:"segment"`
	Status                   string                      `json:"status"`
	ActivityState            string                      `json:"activity_state"`
	TotalBookings            int                         `json:"total_bookings"`
	TotalSpent               decimal.Decimal             `json:"total_spent"`
	AverageRating            *decimal.Decimal            `json:"average_rating,omitempty"`
	Preferences              []string                    `json:"preferences"`
	Tags                     []string                    `json:"tags"`
	CommunicationPreferences CommunicationPreferencesDTO `json:"communication_preferences"`
	LastBookingDate          *time.Time                  `json:"last_booking_date,omitempty"`
	LastInteractionDate      *time.Time                  `json:"last_interaction_date,omitempty"`
	FollowUpDate             *time.Time                  `json:"follow_up_date,omitempty"`
	FollowUpReason           string                      `json:"follow_up_reason,omitempty"`
	CreatedAt                time.Time                   `json:"created_at"`
}

// NoteDTO nota del vendedor.
type NoteDTO struct {
	ID        string    `json:"id"`
	Note      string    `json:"note"`
	Type      string    `json:"type"`
	Priority  string    `json:"priority"`
	IsPrivate bool      `json:"is_private"`
	CreatedBy string    `json:"created_by"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
}

// NoteList notas paginadas, más recientes primero.
type NoteList struct {
	Notes      []NoteDTO  `json:"notes"`
	Pagination Pagination `json:"pagination"`
}

// CommunicationDTO entrada de la bitácora.
type CommunicationDTO struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	Subject      string    `json:"subject,omitempty"`
	Content      string    `json:"content,omitempty"`
	RelatedID    string    `json:"related_id,omitempty"`
	RelatedModel string    `json:"related_model,omitempty"`
	Status       string    `json:"status"`
	Channel      string    `json:"channel"`
	Priority     string    `json:"priority"`
	CreatedAt    time.Time `json:"created_at"`
}

// BookingDTO reserva reciente del cliente.
type BookingDTO struct {
	ID        string          `json:"id"`
	Service   string          `json:"service"`
	Amount    decimal.Decimal `json:"amount"`
	Status    string          `json:"status"`
	Location  string          `json:"location,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// CustomerDetail GET /api/crm/customers/:customerId.
type CustomerDetail struct {
	Profile        CustomerProfileDTO `json:"profile"`
	Notes          []NoteDTO          `json:"notes"`
	Communications []CommunicationDTO `json:"communications"`
	RecentBookings []BookingDTO       `json:"recent_bookings"`
}

// AddNoteRequest cuerpo de POST /api/crm/customers/:customerId/notes.
type AddNoteRequest struct {
	Note         string     `json:"note"`
	Type         string     `json:"type"`     // general|preference|follow-up|issue|feedback
	Priority     string     `json:"priority"` // low|medium|high
	IsPrivate    bool       `json:"is_private"`
	Tags         []string   `json:"tags"`
	FollowUpDate *time.Time `json:"follow_up_date,omitempty"` // solo para type=follow-up
}

// UpdateSegmentRequest cuerpo de PUT /api/crm/customers/:customerId/segment.
type UpdateSegmentRequest struct {
	Segment string `json:"segment"`
}

// BookingCommittedRequest cuerpo de POST /api/crm/events/booking-committed.
type BookingCommittedRequest struct {
	BookingID  string          `json:"booking_id"`
	BusinessID string          `json:"business_id"`
	CustomerID string          `json:"customer_id"`
	Amount     decimal.Decimal `json:"amount"`
	Service    string          `json:"service"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
}

// IngestionResponse resultado de procesar el evento.
type IngestionResponse struct {
	Outcome        string          `json:"outcome"` // applied|duplicate|skipped|rejected|failed
	RelationshipID string          `json:"relationship_id,omitempty"`
	Segment        string          `json:"segment,omitempty"`
	Upgraded       bool            `json:"upgraded"`
	TotalBookings  int             `json:"total_bookings,omitempty"`
	TotalSpent     decimal.Decimal `json:"total_spent"`
}
