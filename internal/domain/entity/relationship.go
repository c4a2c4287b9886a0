package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Segment nivel (tier) persistido de la relación. Solo sube automáticamente.
type Segment string

const (
	SegmentNew      Segment = "new"
	SegmentRegular  Segment = "regular"
	SegmentVIP      Segment = "vip"
	SegmentInactive Segment = "inactive" // solo por override manual
)

// Segments devuelve todos los segmentos en orden de presentación.
func Segments() []Segment {
	return []Segment{SegmentNew, SegmentRegular, SegmentVIP, SegmentInactive}
}

// Valid indica si el valor es un segmento conocido.
func (s Segment) Valid() bool {
	switch s {
	case SegmentNew, SegmentRegular, SegmentVIP, SegmentInactive:
		return true
	}
	return false
}

// RelationshipStatus estado administrativo de la relación (borrado lógico).
type RelationshipStatus string

const (
	RelationshipActive   RelationshipStatus = "active"
	RelationshipInactive RelationshipStatus = "inactive"
	RelationshipBlocked  RelationshipStatus = "blocked"
)

// Valid indica si el valor es un estado conocido.
func (s RelationshipStatus) Valid() bool {
	switch s {
	case RelationshipActive, RelationshipInactive, RelationshipBlocked:
		return true
	}
	return false
}

// ActivityState etiqueta de recencia calculada al leer. Nunca se persiste.
type ActivityState string

const (
	ActivityActive  ActivityState = "active"
	ActivityCooling ActivityState = "cooling"
	ActivityLapsed  ActivityState = "lapsed"
)

// CommunicationPreferences canales aceptados por el cliente.
type CommunicationPreferences struct {
	Email            bool   `json:"email"`
	SMS              bool   `json:"sms"`
	WhatsApp         bool   `json:"whatsapp"`
	Push             bool   `json:"push"`
	PreferredChannel string `json:"preferred_channel,omitempty"`
}

// DefaultCommunicationPreferences valores con los que nace una relación.
func DefaultCommunicationPreferences() CommunicationPreferences {
	return CommunicationPreferences{Email: true, Push: true, PreferredChannel: "app"}
}

// CustomerRelationship agregado desnormalizado por par (negocio, cliente).
// Único por (BusinessID, CustomerID); se crea con la primera reserva y nunca se borra.
type CustomerRelationship struct {
	ID                       string
	BusinessID               string
	CustomerID               string
	Segment                  Segment
	Status                   RelationshipStatus
	TotalBookings            int
	TotalSpent               decimal.Decimal
	AverageRating            *decimal.Decimal
	Preferences              []string
	Tags                     []string
	CommunicationPreferences CommunicationPreferences
	LastBookingID            string
	LastBookingDate          *time.Time
	LastInteractionDate      *time.Time
	FollowUpDate             *time.Time
	FollowUpReason           string
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

// LastActivity fecha de la última interacción; si no hay, la de la última reserva.
func (r *CustomerRelationship) LastActivity() *time.Time {
	if r.LastInteractionDate != nil {
		return r.LastInteractionDate
	}
	return r.LastBookingDate
}

// RelationshipRow fila del listado: relación más datos de contacto del cliente.
type RelationshipRow struct {
	Relationship *CustomerRelationship
	Customer     *Customer // nil si el perfil ya no existe
}
