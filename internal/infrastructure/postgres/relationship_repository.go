package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/seller-crm/internal/domain"
	"github.com/jhoicas/seller-crm/internal/domain/entity"
	"github.com/jhoicas/seller-crm/internal/domain/repository"
)

var _ repository.RelationshipRepository = (*RelationshipRepo)(nil)

// RelationshipRepo implementación de RelationshipRepository (usable con pool o tx).
type RelationshipRepo struct {
	q Querier
}

// NewRelationshipRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRelationshipRepository(q Querier) *RelationshipRepo {
	return &RelationshipRepo{q: q}
}

const relationshipColumns = `
	r.id, r.business_id, r.customer_id, r.segment, r.status, r.total_bookings, r.total_spent,
	r.average_rating, r.preferences, r.tags, r.communication_preferences,
	COALESCE(r.last_booking_id, ''), r.last_booking_date, r.last_interaction_date,
	r.follow_up_date, r.follow_up_reason, r.created_at, r.updated_at`

func scanRelationship(row pgx.Row, extra ...any) (*entity.CustomerRelationship, error) {
	var (
		rel       entity.CustomerRelationship
		segment   string
		status    string
		commPrefs []byte
	)
	dest := []any{
		&rel.ID, &rel.BusinessID, &rel.CustomerID, &segment, &status, &rel.TotalBookings, &rel.TotalSpent,
		&rel.AverageRating, &rel.Preferences, &rel.Tags, &commPrefs,
		&rel.LastBookingID, &rel.LastBookingDate, &rel.LastInteractionDate,
		&rel.FollowUpDate, &rel.FollowUpReason, &rel.CreatedAt, &rel.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	rel.Segment = entity.Segment(segment)
	rel.Status = entity.RelationshipStatus(status)
	rel.CommunicationPreferences = entity.DefaultCommunicationPreferences()
	if len(commPrefs) > 0 {
		if err := json.Unmarshal(commPrefs, &rel.CommunicationPreferences); err != nil {
			return nil, fmt.Errorf("decodificar communication_preferences: %w", err)
		}
	}
	return &rel, nil
}

// MarkBookingProcessed inserta la reserva en crm_processed_bookings; si ya existía devuelve ErrAlreadyIngested.
func (r *RelationshipRepo) MarkBookingProcessed(ctx context.Context, in repository.BookingIngest) error {
	tag, err := r.q.Exec(ctx, `
		INSERT INTO crm_processed_bookings (booking_id, business_id, customer_id, processed_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (booking_id) DO NOTHING`,
		in.BookingID, in.BusinessID, in.CustomerID,
	)
	if err != nil {
		return fmt.Errorf("mark booking processed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAlreadyIngested
	}
	return nil
}

// applyBookingSQL inserta el par o incrementa sus contadores en la misma sentencia.
var applyBookingSQL = `
	INSERT INTO customer_relationships AS r (
		id, business_id, customer_id, segment, status, total_bookings, total_spent,
		communication_preferences, last_booking_id, last_booking_date, last_interaction_date,
		created_at, updated_at
	)
	VALUES ($1, $2, $3, 'new', 'active', 1, $4, $5, $6, $7, $7, now(), now())
	ON CONFLICT (business_id, customer_id) DO UPDATE SET
		total_bookings        = r.total_bookings + 1,
		total_spent           = r.total_spent + EXCLUDED.total_spent,
		last_booking_id       = CASE
			WHEN r.last_booking_date IS NULL OR EXCLUDED.last_booking_date >= r.last_booking_date
			THEN EXCLUDED.last_booking_id ELSE r.last_booking_id END,
		last_booking_date     = GREATEST(r.last_booking_date, EXCLUDED.last_booking_date),
		last_interaction_date = GREATEST(r.last_interaction_date, EXCLUDED.last_interaction_date),
		updated_at            = now()
	RETURNING ` + relationshipColumns

// ApplyBooking upsert atómico: la base hace el incremento, nunca leer-modificar-escribir en la app.
// Las fechas solo avanzan; una reserva antigua que llega tarde suma contadores sin retroceder la última.
func (r *RelationshipRepo) ApplyBooking(ctx context.Context, in repository.BookingIngest) (*entity.CustomerRelationship, error) {
	prefs, err := json.Marshal(entity.DefaultCommunicationPreferences())
	if err != nil {
		return nil, err
	}

	rel, err := scanRelationship(r.q.QueryRow(ctx, applyBookingSQL,
		in.RelationshipID, in.BusinessID, in.CustomerID, in.Amount, prefs, in.BookingID, in.OccurredAt,
	))
	if err != nil {
		return nil, fmt.Errorf("apply booking: %w", err)
	}
	return rel, nil
}

// CompareAndSetSegment UPDATE condicionado al segmento actual.
func (r *RelationshipRepo) CompareAndSetSegment(ctx context.Context, id string, from, to entity.Segment) (bool, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE customer_relationships SET segment = $3, updated_at = now()
		WHERE id = $1 AND segment = $2`,
		id, string(from), string(to),
	)
	if err != nil {
		return false, fmt.Errorf("cas segment: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *RelationshipRepo) SetSegment(ctx context.Context, id string, segment entity.Segment) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE customer_relationships SET segment = $2, updated_at = now() WHERE id = $1`,
		id, string(segment),
	)
	if err != nil {
		return fmt.Errorf("set segment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRelationshipNotFound
	}
	return nil
}

func (r *RelationshipRepo) SetFollowUp(ctx context.Context, id string, at time.Time, reason string) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE customer_relationships
		SET follow_up_date = $2, follow_up_reason = $3, updated_at = now()
		WHERE id = $1`,
		id, at, reason,
	)
	if err != nil {
		return fmt.Errorf("set follow up: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRelationshipNotFound
	}
	return nil
}

func (r *RelationshipRepo) GetByID(ctx context.Context, id string) (*entity.CustomerRelationship, error) {
	query := `SELECT ` + relationshipColumns + ` FROM customer_relationships r WHERE r.id = $1`
	rel, err := scanRelationship(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get relationship: %w", err)
	}
	return rel, nil
}

func (r *RelationshipRepo) GetByBusinessAndCustomer(ctx context.Context, businessID, customerID string) (*entity.CustomerRelationship, error) {
	query := `SELECT ` + relationshipColumns + ` FROM customer_relationships r WHERE r.business_id = $1 AND r.customer_id = $2`
	rel, err := scanRelationship(r.q.QueryRow(ctx, query, businessID, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get relationship by pair: %w", err)
	}
	return rel, nil
}

// List filas con datos de contacto (LEFT JOIN customers) y total sin paginar.
func (r *RelationshipRepo) List(ctx context.Context, f repository.RelationshipFilter) ([]entity.RelationshipRow, int, error) {
	where := []string{"r.business_id = $1"}
	args := []any{f.BusinessID}
	if f.Segment != "" {
		args = append(args, string(f.Segment))
		where = append(where, fmt.Sprintf("r.segment = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, string(f.Status))
		where = append(where, fmt.Sprintf("r.status = $%d", len(args)))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, "%"+escapeLike(s)+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(c.name ILIKE $%d OR c.email ILIKE $%d OR c.phone ILIKE $%d)", n, n, n))
	}
	from := ` FROM customer_relationships r LEFT JOIN customers c ON c.id = r.customer_id WHERE ` + strings.Join(where, " AND ")

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*)`+from, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count relationships: %w", err)
	}

	args = append(args, f.Limit, f.Offset)
	query := `SELECT ` + relationshipColumns + `,
		c.id, COALESCE(c.name, ''), COALESCE(c.email, ''), COALESCE(c.phone, ''), COALESCE(c.address, '')` +
		from + fmt.Sprintf(`
		ORDER BY COALESCE(r.last_interaction_date, r.last_booking_date) DESC NULLS LAST, r.id
		LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list relationships: %w", err)
	}
	defer rows.Close()

	list := make([]entity.RelationshipRow, 0, f.Limit)
	for rows.Next() {
		var (
			custID *string
			c      entity.Customer
		)
		rel, err := scanRelationship(rows, &custID, &c.Name, &c.Email, &c.Phone, &c.Address)
		if err != nil {
			return nil, 0, fmt.Errorf("scan relationship row: %w", err)
		}
		row := entity.RelationshipRow{Relationship: rel}
		if custID != nil {
			c.ID = *custID
			row.Customer = &c
		}
		list = append(list, row)
	}
	return list, total, rows.Err()
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (r *RelationshipRepo) ListByBusiness(ctx context.Context, businessID string) ([]*entity.CustomerRelationship, error) {
	query := `SELECT ` + relationshipColumns + ` FROM customer_relationships r WHERE r.business_id = $1 ORDER BY r.id`
	rows, err := r.q.Query(ctx, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("list relationships by business: %w", err)
	}
	defer rows.Close()

	var list []*entity.CustomerRelationship
	for rows.Next() {
		rel, err := scanRelationship(rows)
		if err != nil {
			return nil, fmt.Errorf("scan relationship: %w", err)
		}
		list = append(list, rel)
	}
	return list, rows.Err()
}

func (r *RelationshipRepo) CountBySegment(ctx context.Context, businessID string) (map[entity.Segment]int, error) {
	rows, err := r.q.Query(ctx, `
		SELECT segment, COUNT(*) FROM customer_relationships
		WHERE business_id = $1 GROUP BY segment`, businessID)
	if err != nil {
		return nil, fmt.Errorf("count by segment: %w", err)
	}
	defer rows.Close()

	counts := make(map[entity.Segment]int)
	for rows.Next() {
		var (
			segment string
			n       int
		)
		if err := rows.Scan(&segment, &n); err != nil {
			return nil, err
		}
		counts[entity.Segment(segment)] = n
	}
	return counts, rows.Err()
}

func (r *RelationshipRepo) Totals(ctx context.Context, businessID string) (repository.RelationshipTotals, error) {
	var t repository.RelationshipTotals
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(total_spent), 0) FROM customer_relationships
		WHERE business_id = $1`, businessID).Scan(&t.Count, &t.TotalSpent)
	if err != nil {
		return repository.RelationshipTotals{TotalSpent: decimal.Zero}, fmt.Errorf("relationship totals: %w", err)
	}
	return t, nil
}
