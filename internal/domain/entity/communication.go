package entity

import "time"

// Tipos de comunicación.
const (
	CommunicationBooking  = "booking"
	CommunicationInquiry  = "inquiry"
	CommunicationReview   = "review"
	CommunicationSupport  = "support"
	CommunicationFollowUp = "follow-up"
	CommunicationMessage  = "message"
)

// Estados de una comunicación.
const (
	CommunicationPending    = "pending"
	CommunicationInProgress = "in-progress"
	CommunicationCompleted  = "completed"
	CommunicationResponded  = "responded"
	CommunicationClosed     = "closed"
)

// Canales y prioridades.
const (
	ChannelApp      = "app"
	ChannelEmail    = "email"
	ChannelSMS      = "sms"
	ChannelWhatsApp = "whatsapp"
	ChannelPhone    = "phone"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// CustomerCommunication entrada inmutable del historial de interacciones de una relación.
type CustomerCommunication struct {
	ID             string
	RelationshipID string
	BusinessID     string
	CustomerID     string
	Type           string
	Subject        string
	Content        string
	RelatedID      string // ej. ID de la reserva
	RelatedModel   string // ej. "Booking"
	Status         string
	Channel        string
	Priority       string
	CreatedAt      time.Time
}
