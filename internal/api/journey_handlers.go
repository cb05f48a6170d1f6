package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ignite/rentops/internal/pkg/httputil"
	"github.com/ignite/rentops/internal/service/journey"
)

// JourneyService is the journey engine surface the API depends on.
type JourneyService interface {
	GetTenantJourney(ctx context.Context, opts journey.Options) (*journey.TenantJourneyData, error)
	GetEventCategoryCounts(ctx context.Context, workspaceID, tenantID string) (map[journey.EventCategory]int, error)
}

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	journeys JourneyService
	cache    *JourneyCache

	defaultLimit int
	maxLimit     int
}

// NewHandlers creates the handler set. cache may be nil to disable response
// caching entirely.
func NewHandlers(journeys JourneyService, cache *JourneyCache, defaultLimit, maxLimit int) *Handlers {
	if defaultLimit <= 0 {
		defaultLimit = journey.DefaultEventsLimit
	}
	if maxLimit <= 0 {
		maxLimit = 200
	}
	return &Handlers{
		journeys:     journeys,
		cache:        cache,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

// HealthCheck returns the health status of the API
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.OK(w, map[string]string{"status": "ok"})
}

// GetTenantJourney serves GET /api/workspaces/{workspaceID}/tenants/{tenantID}/journey.
// The full journey is cached per tenant and option set; ?refresh=1 bypasses
// the cache for one request.
func (h *Handlers) GetTenantJourney(w http.ResponseWriter, r *http.Request) {
	opts, err := h.parseJourneyOptions(r)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	refresh := r.URL.Query().Get("refresh") == "1"
	if !refresh {
		if data, ok := h.cache.Get(r.Context(), opts); ok {
			httputil.OK(w, data)
			return
		}
	}

	data, err := h.journeys.GetTenantJourney(r.Context(), opts)
	if err != nil {
		if err == journey.ErrTenantNotFound {
			httputil.NotFound(w, "tenant not found")
			return
		}
		httputil.InternalError(w, err)
		return
	}

	h.cache.Set(r.Context(), opts, data)
	httputil.OK(w, data)
}

// GetEventCategoryCounts serves
// GET /api/workspaces/{workspaceID}/tenants/{tenantID}/journey/categories.
func (h *Handlers) GetEventCategoryCounts(w http.ResponseWriter, r *http.Request) {
	workspaceID := chi.URLParam(r, "workspaceID")
	tenantID := chi.URLParam(r, "tenantID")

	counts, err := h.journeys.GetEventCategoryCounts(r.Context(), workspaceID, tenantID)
	if err != nil {
		if err == journey.ErrTenantNotFound {
			httputil.NotFound(w, "tenant not found")
			return
		}
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, map[string]any{"categories": counts})
}

func (h *Handlers) parseJourneyOptions(r *http.Request) (journey.Options, error) {
	q := r.URL.Query()

	opts := journey.DefaultOptions(chi.URLParam(r, "workspaceID"), chi.URLParam(r, "tenantID"))
	opts.EventsLimit = h.defaultLimit

	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return opts, errBadParam("limit")
		}
		if n > h.maxLimit {
			n = h.maxLimit
		}
		opts.EventsLimit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return opts, errBadParam("offset")
		}
		opts.EventsOffset = n
	}

	if v := q.Get("categories"); v != "" {
		for _, c := range strings.Split(v, ",") {
			c = strings.TrimSpace(c)
			if c != "" {
				opts.EventCategories = append(opts.EventCategories, journey.EventCategory(c))
			}
		}
	}

	var err error
	if opts.DateFrom, err = parseDateParam(q.Get("date_from")); err != nil {
		return opts, errBadParam("date_from")
	}
	if opts.DateTo, err = parseDateParam(q.Get("date_to")); err != nil {
		return opts, errBadParam("date_to")
	}

	opts.IncludeAnalytics = boolParam(q.Get("include_analytics"), true)
	opts.IncludeFinancial = boolParam(q.Get("include_financial"), true)
	opts.IncludeInsights = boolParam(q.Get("include_insights"), true)
	opts.IncludeVisitors = boolParam(q.Get("include_visitors"), true)

	return opts, nil
}

// parseDateParam accepts a bare date or a full RFC3339 instant.
func parseDateParam(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func boolParam(v string, def bool) bool {
	switch strings.ToLower(v) {
	case "":
		return def
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

type paramError string

func errBadParam(name string) error { return paramError(name) }

func (e paramError) Error() string { return "invalid " + string(e) + " parameter" }
