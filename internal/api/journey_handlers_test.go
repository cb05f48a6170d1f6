package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ignite/rentops/internal/service/journey"
)

// stubJourneys records the options it was called with and returns canned
// results.
type stubJourneys struct {
	lastOpts journey.Options
	data     *journey.TenantJourneyData
	counts   map[journey.EventCategory]int
	err      error
}

func (s *stubJourneys) GetTenantJourney(_ context.Context, opts journey.Options) (*journey.TenantJourneyData, error) {
	s.lastOpts = opts
	if s.err != nil {
		return nil, s.err
	}
	return s.data, nil
}

func (s *stubJourneys) GetEventCategoryCounts(_ context.Context, _, _ string) (map[journey.EventCategory]int, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.counts, nil
}

func newTestRouter(stub *stubJourneys) http.Handler {
	return SetupRoutes(NewHandlers(stub, nil, 50, 200))
}

func doRequest(t *testing.T, h http.Handler, url string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestGetTenantJourney_OK(t *testing.T) {
	stub := &stubJourneys{data: &journey.TenantJourneyData{
		Tenant:      journey.TenantSummary{ID: "t-1", Name: "Ravi Kumar"},
		Events:      []journey.Event{},
		GeneratedAt: time.Now().UTC(),
	}}
	router := newTestRouter(stub)

	rec := doRequest(t, router, "/api/workspaces/ws-1/tenants/t-1/journey")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body journey.TenantJourneyData
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Tenant.ID != "t-1" {
		t.Errorf("Tenant.ID = %q", body.Tenant.ID)
	}

	if stub.lastOpts.WorkspaceID != "ws-1" || stub.lastOpts.TenantID != "t-1" {
		t.Errorf("opts = %+v, want path params carried through", stub.lastOpts)
	}
	if !stub.lastOpts.IncludeAnalytics || !stub.lastOpts.IncludeInsights {
		t.Error("include flags should default to true")
	}
	if stub.lastOpts.EventsLimit != 50 {
		t.Errorf("EventsLimit = %d, want default 50", stub.lastOpts.EventsLimit)
	}
}

func TestGetTenantJourney_QueryParams(t *testing.T) {
	stub := &stubJourneys{data: &journey.TenantJourneyData{}}
	router := newTestRouter(stub)

	rec := doRequest(t, router, "/api/workspaces/ws-1/tenants/t-1/journey"+
		"?limit=10&offset=20&categories=financial,complaint&date_from=2025-01-01&include_visitors=false")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	opts := stub.lastOpts
	if opts.EventsLimit != 10 || opts.EventsOffset != 20 {
		t.Errorf("window = (%d, %d), want (10, 20)", opts.EventsLimit, opts.EventsOffset)
	}
	if len(opts.EventCategories) != 2 || opts.EventCategories[0] != journey.CategoryFinancial {
		t.Errorf("categories = %v", opts.EventCategories)
	}
	if opts.DateFrom == nil || opts.DateFrom.Format("2006-01-02") != "2025-01-01" {
		t.Errorf("DateFrom = %v", opts.DateFrom)
	}
	if opts.IncludeVisitors {
		t.Error("include_visitors=false should disable the section")
	}
	if !opts.IncludeAnalytics {
		t.Error("unset include flags stay true")
	}
}

func TestGetTenantJourney_LimitCapped(t *testing.T) {
	stub := &stubJourneys{data: &journey.TenantJourneyData{}}
	router := newTestRouter(stub)

	rec := doRequest(t, router, "/api/workspaces/ws-1/tenants/t-1/journey?limit=99999")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if stub.lastOpts.EventsLimit != 200 {
		t.Errorf("EventsLimit = %d, want capped at 200", stub.lastOpts.EventsLimit)
	}
}

func TestGetTenantJourney_BadParams(t *testing.T) {
	stub := &stubJourneys{data: &journey.TenantJourneyData{}}
	router := newTestRouter(stub)

	for _, url := range []string{
		"/api/workspaces/ws-1/tenants/t-1/journey?limit=abc",
		"/api/workspaces/ws-1/tenants/t-1/journey?offset=-5",
		"/api/workspaces/ws-1/tenants/t-1/journey?date_to=not-a-date",
	} {
		rec := doRequest(t, router, url)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", url, rec.Code)
		}
	}
}

func TestGetTenantJourney_NotFound(t *testing.T) {
	stub := &stubJourneys{err: journey.ErrTenantNotFound}
	router := newTestRouter(stub)

	rec := doRequest(t, router, "/api/workspaces/ws-1/tenants/nope/journey")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body["code"] != "not_found" {
		t.Errorf("error code = %q, want not_found", body["code"])
	}
}

func TestGetTenantJourney_InternalError(t *testing.T) {
	stub := &stubJourneys{err: errors.New("store exploded")}
	router := newTestRouter(stub)

	rec := doRequest(t, router, "/api/workspaces/ws-1/tenants/t-1/journey")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	// The raw cause must never leak to the client.
	if body := rec.Body.String(); strings.Contains(body, "exploded") {
		t.Errorf("internal detail leaked: %s", body)
	}
}

func TestGetEventCategoryCounts(t *testing.T) {
	stub := &stubJourneys{counts: map[journey.EventCategory]int{
		journey.CategoryFinancial: 7,
		journey.CategoryComplaint: 2,
	}}
	router := newTestRouter(stub)

	rec := doRequest(t, router, "/api/workspaces/ws-1/tenants/t-1/journey/categories")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Categories map[string]int `json:"categories"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Categories["financial"] != 7 {
		t.Errorf("financial = %d, want 7", body.Categories["financial"])
	}
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter(&stubJourneys{})
	rec := doRequest(t, router, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
