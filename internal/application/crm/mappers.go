package crm

import (
	"time"

	"github.com/jhoicas/seller-crm/internal/application/dto"
	"github.com/jhoicas/seller-crm/internal/domain/entity"
	"github.com/jhoicas/seller-crm/internal/domain/segmentation"
)

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func toRowDTO(row entity.RelationshipRow, now time.Time) dto.CustomerRowDTO {
	r := row.Relationship
	out := dto.CustomerRowDTO{
		RelationshipID:  r.ID,
		CustomerID:      r.CustomerID,
		Segment:         string(r.Segment),
		Status:          string(r.Status),
		ActivityState:   string(segmentation.Activity(r.LastActivity(), now)),
		TotalBookings:   r.TotalBookings,
		TotalSpent:      r.TotalSpent,
		LastBookingDate: r.LastBookingDate,
		Tags:            nonNil(r.Tags),
	}
	if c := row.Customer; c != nil {
		out.Name, out.Email, out.Phone = c.Name, c.Email, c.Phone
	}
	return out
}

func toProfileDTO(r *entity.CustomerRelationship, c *entity.Customer, now time.Time) dto.CustomerProfileDTO {
	out := dto.CustomerProfileDTO{
		RelationshipID: r.ID,
		BusinessID:     r.BusinessID,
		CustomerID:     r.CustomerID,
		Segment:        string(r.Segment),
		Status:         string(r.Status),
		ActivityState:  string(segmentation.Activity(r.LastActivity(), now)),
		TotalBookings:  r.TotalBookings,
		TotalSpent:     r.TotalSpent,
		AverageRating:  r.AverageRating,
		Preferences:    nonNil(r.Preferences),
		Tags:           nonNil(r.Tags),
		CommunicationPreferences: dto.CommunicationPreferencesDTO{
			Email:            r.CommunicationPreferences.Email,
			SMS:              r.CommunicationPreferences.SMS,
			WhatsApp:         r.CommunicationPreferences.WhatsApp,
			Push:             r.CommunicationPreferences.Push,
			PreferredChannel: r.CommunicationPreferences.PreferredChannel,
		},
		LastBookingDate:     r.LastBookingDate,
		LastInteractionDate: r.LastInteractionDate,
		FollowUpDate:        r.FollowUpDate,
		FollowUpReason:      r.FollowUpReason,
		CreatedAt:           r.CreatedAt,
	}
	if c != nil {
		out.Name, out.Email, out.Phone, out.Address = c.Name, c.Email, c.Phone, c.Address
	}
	return out
}

func toNoteDTO(n *entity.SellerCustomerNote) dto.NoteDTO {
	return dto.NoteDTO{
		ID:        n.ID,
		Note:      n.Note,
		Type:      string(n.Type),
		Priority:  n.Priority,
		IsPrivate: n.IsPrivate,
		CreatedBy: n.CreatedBy,
		Tags:      nonNil(n.Tags),
		CreatedAt: n.CreatedAt,
	}
}

func toNoteDTOs(list []*entity.SellerCustomerNote) []dto.NoteDTO {
	out := make([]dto.NoteDTO, 0, len(list))
	for _, n := range list {
		out = append(out, toNoteDTO(n))
	}
	return out
}

func toCommunicationDTOs(list []*entity.CustomerCommunication) []dto.CommunicationDTO {
	out := make([]dto.CommunicationDTO, 0, len(list))
	for _, c := range list {
		out = append(out, dto.CommunicationDTO{
			ID:           c.ID,
			Type:         c.Type,
			Subject:      c.Subject,
			Content:      c.Content,
			RelatedID:    c.RelatedID,
			RelatedModel: c.RelatedModel,
			Status:       c.Status,
			Channel:      c.Channel,
			Priority:     c.Priority,
			CreatedAt:    c.CreatedAt,
		})
	}
	return out
}

func toBookingDTOs(list []*entity.Booking) []dto.BookingDTO {
	out := make([]dto.BookingDTO, 0, len(list))
	for _, b := range list {
		out = append(out, dto.BookingDTO{
			ID:        b.ID,
			Service:   b.Service,
			Amount:    b.Amount,
			Status:    b.Status,
			Location:  b.Location,
			CreatedAt: b.CreatedAt,
		})
	}
	return out
}

// IngestionResponse adapta el resultado de la ingesta al DTO HTTP.
func IngestionResponse(res *IngestionResult) dto.IngestionResponse {
	out := dto.IngestionResponse{Outcome: string(res.Outcome)}
	if r := res.Relationship; r != nil {
		out.RelationshipID = r.ID
		out.Segment = string(r.Segment)
		out.TotalBookings = r.TotalBookings
		out.TotalSpent = r.TotalSpent
	}
	out.Upgraded = res.Upgraded
	return out
}
