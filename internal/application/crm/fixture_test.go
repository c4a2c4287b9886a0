package crm

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/seller-crm/internal/domain/entity"
	"github.com/jhoicas/seller-crm/internal/domain/segmentation"
	"github.com/jhoicas/seller-crm/internal/infrastructure/memory"
	"github.com/jhoicas/seller-crm/pkg/logger"
)

const (
	testSeller      = "seller-1"
	testOtherSeller = "seller-2"
	testBusiness    = "biz-1"
	testOtherBiz    = "biz-2"
)

// testNow instante fijo para los casos que dependen de ventanas y recencia.
var testNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

type fixture struct {
	store     *memory.Store
	ingestion *IngestionUseCase
	customers *CustomerUseCase
	analytics *AnalyticsUseCase
}

// newFixture arma los tres casos de uso sobre un almacén en memoria con dos negocios.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	store.PutBusiness(&entity.Business{ID: testBusiness, OwnerID: testSeller, Name: "Spa Central", Status: "active", CreatedAt: testNow.AddDate(-1, 0, 0)})
	store.PutBusiness(&entity.Business{ID: testOtherBiz, OwnerID: testOtherSeller, Name: "Otro", Status: "active", CreatedAt: testNow.AddDate(-1, 0, 0)})

	businesses := memory.NewBusinessRepository(store)
	customers := memory.NewCustomerRepository(store)
	relationships := memory.NewRelationshipRepository(store)
	bookings := memory.NewBookingRepository(store)

	ing := NewIngestionUseCase(memory.NewTxRunner(store), businesses, segmentation.DefaultRules(), logger.Nop())
	ing.now = func() time.Time { return testNow }

	cust := NewCustomerUseCase(CustomerRepos{
		Businesses:     businesses,
		Customers:      customers,
		Relationships:  relationships,
		Notes:          memory.NewNoteRepository(store),
		Communications: memory.NewCommunicationRepository(store),
		Bookings:       bookings,
	}, logger.Nop())
	cust.now = func() time.Time { return testNow }

	an := NewAnalyticsUseCase(AnalyticsRepos{
		Businesses:    businesses,
		Customers:     customers,
		Relationships: relationships,
		Bookings:      bookings,
	}, 30, time.UTC)
	an.now = func() time.Time { return testNow }

	return &fixture{store: store, ingestion: ing, customers: cust, analytics: an}
}

func bookingEvent(id, customerID string, amount int64) entity.BookingCommitted {
	return entity.BookingCommitted{
		BookingID:  id,
		BusinessID: testBusiness,
		CustomerID: customerID,
		Amount:     decimal.NewFromInt(amount),
		Service:    "Masaje",
		Status:     entity.BookingStatusConfirmed,
		CreatedAt:  testNow.Add(-time.Hour),
	}
}

func sellerScope() Scope { return Scope{SellerID: testSeller} }

// seedCustomers crea n clientes con relación en testBusiness, con última interacción escalonada por hora.
func (f *fixture) seedCustomers(n int) {
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("cust-%02d", i)
		last := testNow.Add(-time.Duration(i+1) * time.Hour)
		f.store.PutCustomer(&entity.Customer{ID: id, Name: fmt.Sprintf("Cliente %02d", i), Email: id + "@mail.test"})
		f.store.PutRelationship(&entity.CustomerRelationship{
			ID:                  "rel-" + id,
			BusinessID:          testBusiness,
			CustomerID:          id,
			Segment:             entity.SegmentNew,
			Status:              entity.RelationshipActive,
			TotalBookings:       1,
			TotalSpent:          decimal.NewFromInt(100),
			LastBookingDate:     &last,
			LastInteractionDate: &last,
			CreatedAt:           last,
		})
	}
}
