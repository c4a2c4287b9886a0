package crm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/seller-crm/internal/application/dto"
	"github.com/jhoicas/seller-crm/internal/domain"
	"github.com/jhoicas/seller-crm/internal/domain/entity"
	"github.com/jhoicas/seller-crm/internal/domain/repository"
	"github.com/jhoicas/seller-crm/internal/infrastructure/memory"
)

func TestList_Paginacion(t *testing.T) {
	f := newFixture(t)
	f.seedCustomers(25)

	out, err := f.customers.List(context.Background(), sellerScope(), dto.CustomerListQuery{
		PageRequest: dto.PageRequest{Page: 2, Limit: 10},
	})
	require.NoError(t, err)

	assert.Len(t, out.Rows, 10)
	assert.Equal(t, 25, out.Pagination.Total)
	assert.Equal(t, 3, out.Pagination.Pages)
	assert.True(t, out.Pagination.HasNextPage)
	assert.True(t, out.Pagination.HasPrevPage)
	// más recientes primero: la página 2 empieza en el cliente 10
	assert.Equal(t, "cust-10", out.Rows[0].CustomerID)
	assert.Equal(t, string(entity.ActivityActive), out.Rows[0].ActivityState)
}

func TestList_PaginaFueraDeRangoDevuelveVacio(t *testing.T) {
	f := newFixture(t)
	f.seedCustomers(3)

	out, err := f.customers.List(context.Background(), sellerScope(), dto.CustomerListQuery{
		PageRequest: dto.PageRequest{Page: 100_000_000_000_000_000, Limit: 100},
	})
	require.NoError(t, err)

	assert.Empty(t, out.Rows)
	assert.Equal(t, 3, out.Pagination.Total)
	assert.Equal(t, dto.MaxPage, out.Pagination.Page)
	assert.False(t, out.Pagination.HasNextPage)
}

func TestList_BusquedaYFiltros(t *testing.T) {
	f := newFixture(t)
	f.seedCustomers(5)
	ctx := context.Background()

	out, err := f.customers.List(ctx, sellerScope(), dto.CustomerListQuery{Search: "cliente 03"})
	require.NoError(t, err)
	require.Len(t, out.Rows, 1)
	assert.Equal(t, "cust-03", out.Rows[0].CustomerID)

	out, err = f.customers.List(ctx, sellerScope(), dto.CustomerListQuery{Segment: "vip"})
	require.NoError(t, err)
	assert.Empty(t, out.Rows)
	assert.Equal(t, 0, out.Pagination.Total)

	_, err = f.customers.List(ctx, sellerScope(), dto.CustomerListQuery{Segment: "gold"})
	assert.ErrorIs(t, err, domain.ErrInvalidSegment)

	_, err = f.customers.List(ctx, sellerScope(), dto.CustomerListQuery{Status: "borrado"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestList_VendedorSinNegocio(t *testing.T) {
	f := newFixture(t)
	out, err := f.customers.List(context.Background(), Scope{SellerID: "sin-negocio"}, dto.CustomerListQuery{})
	require.NoError(t, err)
	assert.Empty(t, out.Rows)
	assert.NotNil(t, out.Rows)
	assert.Equal(t, 1, out.Pagination.Page)
}

func TestScope_NegocioAjenoEsForbidden(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.customers.List(ctx, Scope{SellerID: testSeller, BusinessID: testOtherBiz}, dto.CustomerListQuery{})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.analytics.Summary(ctx, Scope{SellerID: testSeller, BusinessID: testOtherBiz})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.customers.List(ctx, Scope{}, dto.CustomerListQuery{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestDetail_IncluyeNotasComunicacionesYReservas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.store.PutCustomer(&entity.Customer{ID: "cust-1", Name: "Asha", Email: "asha@mail.test", Address: "12 MG Road, Pune"})
	for _, id := range []string{"b-1", "b-2"} {
		evt := bookingEvent(id, "cust-1", 900)
		f.store.PutBooking(&entity.Booking{ID: id, BusinessID: testBusiness, CustomerID: "cust-1", Service: "Masaje",
			Amount: evt.Amount, Status: entity.BookingStatusConfirmed, CreatedAt: evt.CreatedAt})
		_, err := f.ingestion.Ingest(ctx, evt)
		require.NoError(t, err)
	}
	_, err := f.customers.AddNote(ctx, sellerScope(), "cust-1", dto.AddNoteRequest{Note: "Prefiere la tarde"})
	require.NoError(t, err)

	out, err := f.customers.Detail(ctx, sellerScope(), "cust-1")
	require.NoError(t, err)
	assert.Equal(t, "Asha", out.Profile.Name)
	assert.Equal(t, 2, out.Profile.TotalBookings)
	assert.Equal(t, string(entity.SegmentNew), out.Profile.Segment)
	assert.Len(t, out.Notes, 1)
	assert.Len(t, out.Communications, 2)
	assert.Len(t, out.RecentBookings, 2)

	_, err = f.customers.Detail(ctx, sellerScope(), "sin-relacion")
	assert.ErrorIs(t, err, domain.ErrRelationshipNotFound)
}

func TestAddNote_SinRelacionEs404(t *testing.T) {
	f := newFixture(t)
	_, err := f.customers.AddNote(context.Background(), sellerScope(), "desconocido", dto.AddNoteRequest{Note: "hola"})
	assert.ErrorIs(t, err, domain.ErrRelationshipNotFound)
	assert.True(t, domain.IsNotFound(err))
}

func TestAddNote_Validaciones(t *testing.T) {
	f := newFixture(t)
	f.seedCustomers(1)
	ctx := context.Background()

	cases := []dto.AddNoteRequest{
		{Note: "   "},
		{Note: "x", Type: "otro"},
		{Note: "x", Priority: "urgent"},
	}
	for _, in := range cases {
		_, err := f.customers.AddNote(ctx, sellerScope(), "cust-00", in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}

	n, err := f.customers.AddNote(ctx, sellerScope(), "cust-00", dto.AddNoteRequest{Note: " Alergia a aceites "})
	require.NoError(t, err)
	assert.Equal(t, "Alergia a aceites", n.Note)
	assert.Equal(t, string(entity.NoteGeneral), n.Type)
	assert.Equal(t, entity.PriorityMedium, n.Priority)
	assert.Equal(t, testSeller, n.CreatedBy)
	assert.NotNil(t, n.Tags)
}

func TestAddNote_FollowUpProgramaSeguimiento(t *testing.T) {
	f := newFixture(t)
	f.seedCustomers(1)
	ctx := context.Background()
	due := testNow.Add(48 * time.Hour)

	n, err := f.customers.AddNote(ctx, sellerScope(), "cust-00", dto.AddNoteRequest{
		Note: "Llamar para confirmar", Type: "follow-up", FollowUpDate: &due,
	})
	require.NoError(t, err)

	rel, err := memory.NewRelationshipRepository(f.store).GetByID(ctx, "rel-cust-00")
	require.NoError(t, err)
	require.NotNil(t, rel.FollowUpDate)
	assert.True(t, rel.FollowUpDate.Equal(due))
	assert.Equal(t, "Llamar para confirmar", rel.FollowUpReason)

	got, err := f.customers.GetNote(ctx, sellerScope(), "cust-00", n.ID)
	require.NoError(t, err)
	assert.Equal(t, n.ID, got.ID)

	_, err = f.customers.GetNote(ctx, sellerScope(), "cust-00", "otra")
	assert.ErrorIs(t, err, domain.ErrNoteNotFound)
}

type followUpFails struct {
	repository.RelationshipRepository
}

func (followUpFails) SetFollowUp(context.Context, string, time.Time, string) error {
	return errors.New("conexión perdida")
}

func TestAddNote_FalloAlProgramarSeguimientoNoDejaNota(t *testing.T) {
	f := newFixture(t)
	f.seedCustomers(1)
	ctx := context.Background()
	f.customers.repos.Relationships = followUpFails{memory.NewRelationshipRepository(f.store)}
	due := testNow.Add(48 * time.Hour)

	_, err := f.customers.AddNote(ctx, sellerScope(), "cust-00", dto.AddNoteRequest{
		Note: "Llamar para confirmar", Type: "follow-up", FollowUpDate: &due,
	})
	require.Error(t, err)

	notes, total, err := memory.NewNoteRepository(f.store).ListByRelationship(ctx, "rel-cust-00", 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, notes)
}

func TestListNotes_PaginadasMasRecientesPrimero(t *testing.T) {
	f := newFixture(t)
	f.seedCustomers(1)
	ctx := context.Background()
	for i, text := range []string{"uno", "dos", "tres"} {
		f.customers.now = func() time.Time { return testNow.Add(time.Duration(i) * time.Minute) }
		_, err := f.customers.AddNote(ctx, sellerScope(), "cust-00", dto.AddNoteRequest{Note: text})
		require.NoError(t, err)
	}

	out, err := f.customers.ListNotes(ctx, sellerScope(), "cust-00", dto.PageRequest{Page: 1, Limit: 2})
	require.NoError(t, err)
	require.Len(t, out.Notes, 2)
	assert.Equal(t, "tres", out.Notes[0].Note)
	assert.Equal(t, 3, out.Pagination.Total)
	assert.True(t, out.Pagination.HasNextPage)
}

func TestUpdateSegment_OverrideManual(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for i, id := range []string{"b-1", "b-2", "b-3"} {
		_, err := f.ingestion.Ingest(ctx, bookingEvent(id, "cust-1", int64(100*(i+1))))
		require.NoError(t, err)
	}

	out, err := f.customers.UpdateSegment(ctx, sellerScope(), "cust-1", dto.UpdateSegmentRequest{Segment: "inactive"})
	require.NoError(t, err)
	assert.Equal(t, string(entity.SegmentInactive), out.Segment)

	// desde inactive la regla vuelve a subir el nivel con la siguiente reserva
	res, err := f.ingestion.Ingest(ctx, bookingEvent("b-4", "cust-1", 100))
	require.NoError(t, err)
	assert.Equal(t, entity.SegmentRegular, res.Relationship.Segment)

	_, err = f.customers.UpdateSegment(ctx, sellerScope(), "cust-1", dto.UpdateSegmentRequest{Segment: "platino"})
	assert.ErrorIs(t, err, domain.ErrInvalidSegment)
}
