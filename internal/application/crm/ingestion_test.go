package crm

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/seller-crm/internal/domain"
	"github.com/jhoicas/seller-crm/internal/domain/entity"
	"github.com/jhoicas/seller-crm/internal/domain/repository"
	"github.com/jhoicas/seller-crm/internal/domain/segmentation"
	"github.com/jhoicas/seller-crm/internal/infrastructure/memory"
)

func TestIngest_PrimeraReservaCreaRelacion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.ingestion.Ingest(ctx, bookingEvent("b-1", "cust-1", 500))
	require.NoError(t, err)
	assert.Equal(t, OutcomeApplied, res.Outcome)
	require.NotNil(t, res.Relationship)
	assert.Equal(t, 1, res.Relationship.TotalBookings)
	assert.True(t, res.Relationship.TotalSpent.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, entity.SegmentNew, res.Relationship.Segment)
	assert.False(t, res.Upgraded)

	comms, err := memory.NewCommunicationRepository(f.store).ListByRelationship(ctx, res.Relationship.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, comms, 1)
	assert.Equal(t, entity.CommunicationBooking, comms[0].Type)
	assert.Equal(t, "b-1", comms[0].RelatedID)
	assert.Equal(t, "Reserva confirmada: Masaje", comms[0].Subject)
}

// Escenario completo: 3×500 → regular; +50000 → vip con 4 reservas y 51500 acumulado.
func TestIngest_SumaReservasYSubeDeSegmento(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		_, err := f.ingestion.Ingest(ctx, bookingEvent(fmt.Sprintf("b-%d", i), "cust-1", 500))
		require.NoError(t, err)
	}
	rel, err := memory.NewRelationshipRepository(f.store).GetByBusinessAndCustomer(ctx, testBusiness, "cust-1")
	require.NoError(t, err)
	assert.Equal(t, 3, rel.TotalBookings)
	assert.True(t, rel.TotalSpent.Equal(decimal.NewFromInt(1500)))
	assert.Equal(t, entity.SegmentRegular, rel.Segment)

	res, err := f.ingestion.Ingest(ctx, bookingEvent("b-4", "cust-1", 50000))
	require.NoError(t, err)
	assert.True(t, res.Upgraded)
	assert.Equal(t, entity.SegmentRegular, res.PreviousSegment)
	assert.Equal(t, entity.SegmentVIP, res.Relationship.Segment)
	assert.Equal(t, 4, res.Relationship.TotalBookings)
	assert.True(t, res.Relationship.TotalSpent.Equal(decimal.NewFromInt(51500)))
}

func TestIngest_NuncaBajaDeSegmento(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.store.PutRelationship(&entity.CustomerRelationship{
		ID: "rel-x", BusinessID: testBusiness, CustomerID: "cust-x",
		Segment: entity.SegmentVIP, Status: entity.RelationshipActive,
		TotalBookings: 1, TotalSpent: decimal.NewFromInt(10),
	})

	res, err := f.ingestion.Ingest(ctx, bookingEvent("b-1", "cust-x", 10))
	require.NoError(t, err)
	assert.Equal(t, entity.SegmentVIP, res.Relationship.Segment)
	assert.False(t, res.Upgraded)
}

func TestIngest_ReservaDuplicadaNoCuentaDosVeces(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.ingestion.Ingest(ctx, bookingEvent("b-1", "cust-1", 700))
	require.NoError(t, err)
	res, err := f.ingestion.Ingest(ctx, bookingEvent("b-1", "cust-1", 700))
	require.NoError(t, err)
	assert.Equal(t, OutcomeDuplicate, res.Outcome)

	rel, err := memory.NewRelationshipRepository(f.store).GetByBusinessAndCustomer(ctx, testBusiness, "cust-1")
	require.NoError(t, err)
	assert.Equal(t, 1, rel.TotalBookings)
	assert.True(t, rel.TotalSpent.Equal(decimal.NewFromInt(700)))

	comms, err := memory.NewCommunicationRepository(f.store).ListByRelationship(ctx, rel.ID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, comms, 1)
}

func TestIngest_NegocioInexistenteSeOmite(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	evt := bookingEvent("b-1", "cust-1", 500)
	evt.BusinessID = "no-existe"

	res, err := f.ingestion.Ingest(ctx, evt)
	require.NoError(t, err)
	assert.Equal(t, OutcomeSkipped, res.Outcome)

	rel, err := memory.NewRelationshipRepository(f.store).GetByBusinessAndCustomer(ctx, "no-existe", "cust-1")
	require.NoError(t, err)
	assert.Nil(t, rel)
}

func TestIngest_EventoInvalidoSeRechaza(t *testing.T) {
	f := newFixture(t)
	evt := bookingEvent("", "cust-1", 500)

	res, err := f.ingestion.Ingest(context.Background(), evt)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, OutcomeRejected, res.Outcome)

	evt = bookingEvent("b-1", "cust-1", -5)
	res, err = f.ingestion.Ingest(context.Background(), evt)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, OutcomeRejected, res.Outcome)
}

func TestIngest_ConcurrenciaSobreElMismoPar(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	const n = 40

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res := f.ingestion.OnBookingCommitted(ctx, bookingEvent(fmt.Sprintf("b-%d", i), "cust-1", 100))
			assert.Equal(t, OutcomeApplied, res.Outcome)
		}(i)
	}
	wg.Wait()

	rel, err := memory.NewRelationshipRepository(f.store).GetByBusinessAndCustomer(ctx, testBusiness, "cust-1")
	require.NoError(t, err)
	require.NotNil(t, rel)
	assert.Equal(t, n, rel.TotalBookings)
	assert.True(t, rel.TotalSpent.Equal(decimal.NewFromInt(100*n)))
	assert.Equal(t, entity.SegmentVIP, rel.Segment)

	rows, total, err := memory.NewRelationshipRepository(f.store).List(ctx, repository.RelationshipFilter{BusinessID: testBusiness, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total, "el par (negocio, cliente) debe ser único")
	assert.Len(t, rows, 1)
}

func TestIngest_ReservaAntiguaTardiaNoRetrocedeUltimaReserva(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	late := bookingEvent("b-late", "cust-1", 300)
	late.CreatedAt = testNow.AddDate(0, 0, -1)
	early := bookingEvent("b-early", "cust-1", 200)
	early.CreatedAt = testNow.AddDate(0, 0, -60)

	_, err := f.ingestion.Ingest(ctx, late)
	require.NoError(t, err)
	res, err := f.ingestion.Ingest(ctx, early)
	require.NoError(t, err)
	require.Equal(t, OutcomeApplied, res.Outcome)

	rel := res.Relationship
	assert.Equal(t, 2, rel.TotalBookings)
	assert.True(t, rel.TotalSpent.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, "b-late", rel.LastBookingID)
	require.NotNil(t, rel.LastBookingDate)
	assert.True(t, rel.LastBookingDate.Equal(late.CreatedAt))
	require.NotNil(t, rel.LastInteractionDate)
	assert.True(t, rel.LastInteractionDate.Equal(late.CreatedAt))
	assert.Equal(t, entity.ActivityActive, segmentation.Activity(rel.LastActivity(), testNow))
}
