package crm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/seller-crm/internal/application/dto"
	"github.com/jhoicas/seller-crm/internal/domain"
	"github.com/jhoicas/seller-crm/internal/domain/analytics"
	"github.com/jhoicas/seller-crm/internal/domain/entity"
	"github.com/jhoicas/seller-crm/internal/domain/repository"
	"github.com/jhoicas/seller-crm/internal/domain/segmentation"
)

const topLocationsLimit = 5

// AnalyticsRepos repositorios de solo lectura del agregador.
type AnalyticsRepos struct {
	Businesses    repository.BusinessRepository
	Customers     repository.CustomerRepository
	Relationships repository.RelationshipRepository
	Bookings      repository.BookingRepository
}

// AnalyticsUseCase calcula al leer los indicadores de clientes de un vendedor:
//   - Resumen por segmento, crecimiento de clientes e ingresos acumulados.
//   - Embudo consultas → reservas → completadas → recurrentes.
//   - Métricas de negocio de la ventana actual contra la anterior.
//   - Ubicaciones principales y hábitos de reserva.
//
// No hay caché ni vistas materializadas: todo sale del almacén de relaciones y de las reservas.
type AnalyticsUseCase struct {
	repos      AnalyticsRepos
	windowDays int
	loc        *time.Location
	now        func() time.Time
}

// NewAnalyticsUseCase construye el caso de uso. loc se usa para hora pico y fin de semana.
func NewAnalyticsUseCase(repos AnalyticsRepos, windowDays int, loc *time.Location) *AnalyticsUseCase {
	if windowDays <= 0 {
		windowDays = 30
	}
	if loc == nil {
		loc = time.UTC
	}
	return &AnalyticsUseCase{repos: repos, windowDays: windowDays, loc: loc, now: time.Now}
}

// business resuelve el negocio; (nil, nil) si el vendedor no tiene negocio.
func (uc *AnalyticsUseCase) business(ctx context.Context, scope Scope) (*entity.Business, error) {
	b, err := resolveBusiness(ctx, uc.repos.Businesses, scope)
	if errors.Is(err, domain.ErrBusinessNotFound) {
		return nil, nil
	}
	return b, err
}

func periodDTO(w analytics.Window) dto.PeriodDTO {
	return dto.PeriodDTO{Start: w.Start.Format(time.RFC3339), End: w.End.Format(time.RFC3339)}
}

// Summary segmentos, crecimiento de clientes, ingresos acumulados y actividad reciente.
func (uc *AnalyticsUseCase) Summary(ctx context.Context, scope Scope) (*dto.CustomerAnalyticsSummary, error) {
	business, err := uc.business(ctx, scope)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return dto.EmptyAnalyticsSummary(), nil
	}

	var (
		segments map[entity.Segment]int
		totals   repository.RelationshipTotals
		rels     []*entity.CustomerRelationship
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		segments, err = uc.repos.Relationships.CountBySegment(gctx, business.ID)
		return err
	})
	g.Go(func() (err error) {
		totals, err = uc.repos.Relationships.Totals(gctx, business.ID)
		return err
	})
	g.Go(func() (err error) {
		rels, err = uc.repos.Relationships.ListByBusiness(gctx, business.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("analytics: resumen: %w", err)
	}

	now := uc.now()
	curr, prev := analytics.Windows(now, uc.windowDays)
	out := dto.EmptyAnalyticsSummary()
	for s, n := range segments {
		out.Segments[string(s)] = n
	}

	var newCurr, newPrev int
	for _, r := range rels {
		out.Activity[string(segmentation.Activity(r.LastActivity(), now))]++
		switch {
		case curr.Contains(r.CreatedAt):
			newCurr++
		case prev.Contains(r.CreatedAt):
			newPrev++
		}
		if last := r.LastActivity(); last != nil && curr.Contains(*last) {
			out.RecentActivityCount++
		}
	}

	out.TotalCustomers = totals.Count
	out.GrowthPercent = analytics.GrowthPercentInt(newCurr, newPrev)
	out.TotalRevenue = totals.TotalSpent.Round(2)
	out.AvgOrderValue = analytics.SafeDiv(totals.TotalSpent, decimal.NewFromInt(int64(totals.Count)))
	return out, nil
}

func metricDTO(c analytics.Comparison) dto.MetricDTO {
	return dto.MetricDTO{Current: c.Current.Round(2), Previous: c.Previous.Round(2), Growth: c.Growth, Trend: c.Trend}
}

// Insights embudo, métricas de negocio por ventana y acciones sugeridas.
func (uc *AnalyticsUseCase) Insights(ctx context.Context, scope Scope) (*dto.DetailedCustomerInsights, error) {
	now := uc.now()
	curr, prev := analytics.Windows(now, uc.windowDays)
	period := dto.PeriodComparisonDTO{Current: periodDTO(curr), Previous: periodDTO(prev)}

	business, err := uc.business(ctx, scope)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return dto.EmptyInsights(period), nil
	}

	var (
		rels     []*entity.CustomerRelationship
		counts   repository.BookingCounts
		bookings []*entity.Booking
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		rels, err = uc.repos.Relationships.ListByBusiness(gctx, business.ID)
		return err
	})
	g.Go(func() (err error) {
		counts, err = uc.repos.Bookings.CountByBusiness(gctx, business.ID)
		return err
	})
	g.Go(func() (err error) {
		bookings, err = uc.repos.Bookings.ListByBusinessSince(gctx, business.ID, prev.Start)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("analytics: insights: %w", err)
	}

	// ── Embudo ─────────────────────────────────────────────────────────────────
	repeat := 0
	actions := dto.CustomerActionsDTO{}
	for _, r := range rels {
		if r.Segment == entity.SegmentRegular || r.Segment == entity.SegmentVIP {
			repeat++
		}
		if curr.Contains(r.CreatedAt) {
			actions.NewCustomers++
		}
		if r.TotalBookings > 1 && r.LastBookingDate != nil && curr.Contains(*r.LastBookingDate) {
			actions.ReturningCustomers++
		}
		if segmentation.Activity(r.LastActivity(), now) == entity.ActivityLapsed {
			actions.LapsedCustomers++
		}
		if r.FollowUpDate != nil && !r.FollowUpDate.After(now) {
			actions.FollowUpsDue++
		}
	}
	stages := analytics.BuildFunnel(analytics.FunnelInput{
		Relationships: len(rels),
		Bookings:      counts.Total,
		Completions:   counts.Completed,
		Repeat:        repeat,
	})
	funnel := make([]dto.FunnelStageDTO, 0, len(stages))
	for _, s := range stages {
		funnel = append(funnel, dto.FunnelStageDTO{
			Stage:          s.Name,
			Count:          s.Count,
			Percentage:     s.Percentage,
			ConversionRate: s.ConversionRate,
			Estimated:      s.Estimated,
		})
	}

	// ── Métricas por ventana ───────────────────────────────────────────────────
	c := analytics.TotalsIn(bookings, curr)
	p := analytics.TotalsIn(bookings, prev)

	return &dto.DetailedCustomerInsights{
		Funnel: funnel,
		BusinessMetrics: dto.BusinessMetricsDTO{
			Revenue:       metricDTO(analytics.Compare(c.Revenue, p.Revenue)),
			Bookings:      metricDTO(analytics.Compare(decimal.NewFromInt(int64(c.Bookings)), decimal.NewFromInt(int64(p.Bookings)))),
			AvgOrderValue: metricDTO(analytics.Compare(c.AvgOrder, p.AvgOrder)),
			Satisfaction:  metricDTO(analytics.Compare(c.Satisfaction, p.Satisfaction)),
		},
		CustomerActions: actions,
		Period:          period,
	}, nil
}

// Overview conteo por segmento y ubicaciones principales.
// Sin ubicaciones extraíbles se usa la distribución ilustrativa marcada como estimada.
func (uc *AnalyticsUseCase) Overview(ctx context.Context, scope Scope) (*dto.CustomerOverview, error) {
	business, err := uc.business(ctx, scope)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return dto.EmptyOverview(), nil
	}

	var (
		segments  map[entity.Segment]int
		totals    repository.RelationshipTotals
		locations []string
		addresses []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		segments, err = uc.repos.Relationships.CountBySegment(gctx, business.ID)
		return err
	})
	g.Go(func() (err error) {
		totals, err = uc.repos.Relationships.Totals(gctx, business.ID)
		return err
	})
	g.Go(func() (err error) {
		locations, err = uc.repos.Bookings.ListLocations(gctx, business.ID)
		return err
	})
	g.Go(func() (err error) {
		addresses, err = uc.repos.Customers.ListAddressesByBusiness(gctx, business.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("analytics: vista general: %w", err)
	}

	out := dto.EmptyOverview()
	for s, n := range segments {
		out.SegmentCounts[string(s)] = n
	}
	out.TotalCustomers = totals.Count

	texts := make([]string, 0, len(locations)+len(addresses))
	texts = append(texts, locations...)
	texts = append(texts, addresses...)
	top := analytics.TopLocations(texts, topLocationsLimit)
	if len(top) == 0 {
		top = analytics.FallbackLocations(totals.Count)
		out.LocationsEstimated = len(top) > 0
	}
	for _, l := range top {
		out.TopLocations = append(out.TopLocations, dto.LocationDTO{Name: l.Name, Count: l.Count, Percentage: l.Percentage})
	}
	return out, nil
}

// Behavior hora pico, servicio principal y prima de fin de semana sobre todas las reservas.
func (uc *AnalyticsUseCase) Behavior(ctx context.Context, scope Scope) (*dto.BehavioralInsights, error) {
	business, err := uc.business(ctx, scope)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return dto.EmptyBehavioralInsights(uc.loc.String()), nil
	}

	all, err := uc.repos.Bookings.ListByBusinessSince(ctx, business.ID, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("analytics: hábitos: %w", err)
	}
	bookings := make([]*entity.Booking, 0, len(all))
	for _, b := range all {
		if analytics.Billable(b) {
			bookings = append(bookings, b)
		}
	}

	out := dto.EmptyBehavioralInsights(uc.loc.String())
	out.BookingsAnalyzed = len(bookings)
	if hour, n, ok := analytics.PeakHour(bookings, uc.loc); ok {
		out.PeakHour = &hour
		out.PeakHourBookings = n
	}
	out.TopService, out.TopServiceBookings = analytics.TopService(bookings)
	out.WeekendPremium, out.WeekendPremiumEstimated = analytics.WeekendPremium(bookings, uc.loc)
	return out, nil
}
