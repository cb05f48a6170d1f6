package journey

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ignite/rentops/internal/domain"
)

// DefaultEventsLimit caps the timeline page size when the caller doesn't ask
// for one.
const DefaultEventsLimit = 50

// Options controls one journey assembly. Zero-value include flags mean
// "skip"; use DefaultOptions for the everything-on defaults.
type Options struct {
	TenantID    string
	WorkspaceID string

	EventsLimit     int
	EventsOffset    int
	EventCategories []EventCategory
	DateFrom        *time.Time
	DateTo          *time.Time

	IncludeAnalytics bool
	IncludeFinancial bool
	IncludeInsights  bool
	IncludeVisitors  bool
}

// DefaultOptions returns Options with every section included and the
// standard page size.
func DefaultOptions(workspaceID, tenantID string) Options {
	return Options{
		TenantID:         tenantID,
		WorkspaceID:      workspaceID,
		EventsLimit:      DefaultEventsLimit,
		IncludeAnalytics: true,
		IncludeFinancial: true,
		IncludeInsights:  true,
		IncludeVisitors:  true,
	}
}

func (o *Options) normalize() {
	if o.EventsLimit <= 0 {
		o.EventsLimit = DefaultEventsLimit
	}
	if o.EventsOffset < 0 {
		o.EventsOffset = 0
	}
}

// TenantSummary is the identity header of a journey response.
type TenantSummary struct {
	ID             string              `json:"id"`
	Name           string              `json:"name"`
	Status         domain.TenantStatus `json:"status"`
	Phone          string              `json:"phone"`
	Email          string              `json:"email,omitempty"`
	PropertyName   string              `json:"property_name,omitempty"`
	RoomNumber     string              `json:"room_number,omitempty"`
	CheckInDate    *time.Time          `json:"check_in_date,omitempty"`
	NoticeDate     *time.Time          `json:"notice_date,omitempty"`
	ExpectedExitAt *time.Time          `json:"expected_exit_at,omitempty"`
	MonthlyRent    float64             `json:"monthly_rent"`
}

// TenantJourneyData is the full assembled journey. Sections excluded by the
// request options are nil.
type TenantJourneyData struct {
	Tenant TenantSummary `json:"tenant"`

	Events        []Event `json:"events"`
	TotalEvents   int     `json:"total_events"`
	HasMoreEvents bool    `json:"has_more_events"`

	Analytics *Analytics          `json:"analytics,omitempty"`
	Financial *FinancialSummary   `json:"financial,omitempty"`
	Insights  *PredictiveInsights `json:"insights,omitempty"`

	LinkedVisitors  []domain.Visit   `json:"linked_visitors,omitempty"`
	PreTenantVisits []PreTenantVisit `json:"pre_tenant_visits,omitempty"`

	GeneratedAt time.Time `json:"generated_at"`
}

// Service assembles tenant journeys from the record stores. It holds no
// mutable state; every call computes a fresh result tree, so concurrent
// calls never interfere. Callers that want caching own it externally.
type Service struct {
	tenants TenantRepository
	sources SourceRepository
	cfg     InsightConfig

	// now is swappable for deterministic tests.
	now func() time.Time
}

// New builds a journey service over the given repositories.
func New(tenants TenantRepository, sources SourceRepository, cfg InsightConfig) *Service {
	return &Service{
		tenants: tenants,
		sources: sources,
		cfg:     cfg,
		now:     time.Now,
	}
}

// GetTenantJourney resolves the tenant and assembles the requested journey
// sections. The event aggregation, analytics, financial, and visitor-linkage
// branches run concurrently; the insight engine runs after them because it
// consumes their outputs.
//
// ErrTenantNotFound propagates unwrapped so callers can map it; any other
// failure is wrapped with the tenant id for diagnostics. Cancellation yields
// an error, never a partially assembled journey.
func (s *Service) GetTenantJourney(ctx context.Context, opts Options) (*TenantJourneyData, error) {
	opts.normalize()

	tenant, err := s.tenants.Get(ctx, opts.WorkspaceID, opts.TenantID)
	if err != nil {
		if err == ErrTenantNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("journey aggregation for tenant %s: %w", opts.TenantID, err)
	}

	now := s.now().UTC()

	// Insights consume analytics and financial even when the caller didn't
	// ask for those sections themselves.
	needAnalytics := opts.IncludeAnalytics || opts.IncludeInsights
	needFinancial := opts.IncludeFinancial || opts.IncludeInsights

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		firstErr  error
		events    []Event
		total     int
		analytics *Analytics
		financial *FinancialSummary
		linked    []domain.Visit
		preTenant []PreTenantVisit
	)

	record := func(err error) {
		if err == nil {
			return
		}
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		var err error
		events, total, err = s.aggregateEvents(ctx, tenant, EventFilter{
			Limit:      opts.EventsLimit,
			Offset:     opts.EventsOffset,
			Categories: opts.EventCategories,
			DateFrom:   opts.DateFrom,
			DateTo:     opts.DateTo,
		})
		record(err)
	}()

	if needAnalytics {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var err error
			analytics, err = s.computeAnalytics(ctx, tenant, now)
			record(err)
		}()
	}

	if needFinancial {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var err error
			financial, err = s.computeFinancial(ctx, tenant)
			record(err)
		}()
	}

	if opts.IncludeVisitors {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var err error
			linked, preTenant, err = s.linkVisitors(ctx, tenant)
			record(err)
		}()
	}

	wg.Wait()

	if firstErr != nil {
		return nil, fmt.Errorf("journey aggregation for tenant %s: %w", opts.TenantID, firstErr)
	}

	data := &TenantJourneyData{
		Tenant:        summarizeTenant(tenant),
		Events:        events,
		TotalEvents:   total,
		HasMoreEvents: total > opts.EventsOffset+opts.EventsLimit,
		GeneratedAt:   now,
	}

	if opts.IncludeAnalytics {
		data.Analytics = analytics
	}
	if opts.IncludeFinancial {
		data.Financial = financial
	}
	if opts.IncludeInsights {
		data.Insights = computeInsights(s.cfg, tenant, analytics, financial)
	}
	if opts.IncludeVisitors {
		data.LinkedVisitors = linked
		data.PreTenantVisits = preTenant
	}
	return data, nil
}

// GetEventCategoryCounts returns how many timeline events each category
// holds, for building filter controls without materializing full pages.
func (s *Service) GetEventCategoryCounts(ctx context.Context, workspaceID, tenantID string) (map[EventCategory]int, error) {
	tenant, err := s.tenants.Get(ctx, workspaceID, tenantID)
	if err != nil {
		if err == ErrTenantNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("category counts for tenant %s: %w", tenantID, err)
	}

	counts, err := s.eventCategoryCounts(ctx, tenant)
	if err != nil {
		return nil, fmt.Errorf("category counts for tenant %s: %w", tenantID, err)
	}
	return counts, nil
}

func summarizeTenant(t *domain.Tenant) TenantSummary {
	return TenantSummary{
		ID:             t.ID,
		Name:           t.Name,
		Status:         t.Status,
		Phone:          t.Phone,
		Email:          t.Email,
		PropertyName:   t.PropertyName,
		RoomNumber:     t.RoomNumber,
		CheckInDate:    t.CheckInDate,
		NoticeDate:     t.NoticeDate,
		ExpectedExitAt: t.ExpectedExitAt,
		MonthlyRent:    t.MonthlyRent,
	}
}
