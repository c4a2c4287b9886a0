package entity

import "time"

// NoteType clasificación de la nota del vendedor.
type NoteType string

const (
	NoteGeneral    NoteType = "general"
	NotePreference NoteType = "preference"
	NoteFollowUp   NoteType = "follow-up"
	NoteIssue      NoteType = "issue"
	NoteFeedback   NoteType = "feedback"
)

// Valid indica si el tipo es conocido.
func (t NoteType) Valid() bool {
	switch t {
	case NoteGeneral, NotePreference, NoteFollowUp, NoteIssue, NoteFeedback:
		return true
	}
	return false
}

// SellerCustomerNote anotación del vendedor sobre un cliente. Solo se agrega; no se edita ni se borra.
type SellerCustomerNote struct {
	ID             string
	RelationshipID string
	BusinessID     string
	CustomerID     string
	Note           string
	Type           NoteType
	Priority       string // low, medium, high
	IsPrivate      bool
	CreatedBy      string
	Tags           []string
	CreatedAt      time.Time
}
