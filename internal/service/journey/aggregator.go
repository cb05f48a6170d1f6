package journey

import (
	"context"
	"sort"
	"time"

	"github.com/ignite/rentops/internal/domain"
	"github.com/ignite/rentops/internal/pkg/logger"
)

// EventFilter controls filtering and pagination of the merged timeline.
// Categories is an inclusive set; DateTo is compared at the end-of-day
// boundary (an event on the date_to day itself is kept).
type EventFilter struct {
	Limit      int
	Offset     int
	Categories []EventCategory
	DateFrom   *time.Time
	DateTo     *time.Time
}

// aggregateEvents fans out to all ten sources concurrently, normalizes each
// source's batch, merges, filters, sorts and paginates. The returned total
// counts events after filtering but before pagination.
//
// A failing source degrades to an empty contribution (logged); one source's
// outage never blanks the timeline. Only caller cancellation aborts the
// whole aggregation.
func (s *Service) aggregateEvents(ctx context.Context, tenant *domain.Tenant, f EventFilter) ([]Event, int, error) {
	all := s.collectEvents(ctx, tenant)
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	filtered := filterEvents(all, f)
	sortEvents(filtered)
	total := len(filtered)

	return pageEvents(filtered, f.Offset, f.Limit), total, nil
}

// eventCategoryCounts returns the number of events per category without
// materializing a paginated timeline.
func (s *Service) eventCategoryCounts(ctx context.Context, tenant *domain.Tenant) (map[EventCategory]int, error) {
	all := s.collectEvents(ctx, tenant)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	counts := make(map[EventCategory]int)
	for _, e := range all {
		counts[e.Category]++
	}
	return counts, nil
}

// collectEvents runs the fan-out/fan-in across every source adapter. Each
// source fetches and normalizes independently; arrival order is irrelevant
// because callers re-sort the merged slice.
func (s *Service) collectEvents(ctx context.Context, tenant *domain.Tenant) []Event {
	fetchers := map[string]func(context.Context) []Event{
		tableStays: func(ctx context.Context) []Event {
			return fetchAndNormalize(ctx, tableStays, tenant.ID,
				s.sources.StaysByTenant, normalizeStay)
		},
		tableBills: func(ctx context.Context) []Event {
			return fetchAndNormalize(ctx, tableBills, tenant.ID,
				s.sources.BillsByTenant, normalizeBill)
		},
		tablePayments: func(ctx context.Context) []Event {
			return fetchAndNormalize(ctx, tablePayments, tenant.ID,
				s.sources.PaymentsByTenant, normalizePayment)
		},
		tableCharges: func(ctx context.Context) []Event {
			return fetchAndNormalize(ctx, tableCharges, tenant.ID,
				s.sources.ChargesByTenant, normalizeCharge)
		},
		tableComplaints: func(ctx context.Context) []Event {
			return fetchAndNormalize(ctx, tableComplaints, tenant.ID,
				s.sources.ComplaintsByTenant, normalizeComplaint)
		},
		tableTransfers: func(ctx context.Context) []Event {
			return fetchAndNormalize(ctx, tableTransfers, tenant.ID,
				s.sources.TransfersByTenant, normalizeTransfer)
		},
		tableExitClearances: func(ctx context.Context) []Event {
			return fetchAndNormalize(ctx, tableExitClearances, tenant.ID,
				s.sources.ExitClearancesByTenant, normalizeExitClearance)
		},
		tableRefunds: func(ctx context.Context) []Event {
			return fetchAndNormalize(ctx, tableRefunds, tenant.ID,
				s.sources.RefundsByTenant, normalizeRefund)
		},
		tableVisits: func(ctx context.Context) []Event {
			return fetchAndNormalize(ctx, tableVisits, tenant.ID,
				s.sources.VisitsByTenant, normalizeVisit)
		},
		tableMeterReadings: func(ctx context.Context) []Event {
			// Meter readings are room-scoped; a tenant without a room
			// contributes none.
			if tenant.RoomID == nil || *tenant.RoomID == "" {
				return nil
			}
			return fetchAndNormalize(ctx, tableMeterReadings, *tenant.RoomID,
				s.sources.MeterReadingsByRoom, normalizeMeterReading)
		},
	}

	results := fanOut(ctx, fetchers)

	var all []Event
	for _, events := range results {
		all = append(all, events...)
	}
	return all
}

// fetchAndNormalize reads one source and maps its batch through a pure
// normalizer. A fetch error is logged and degrades to an empty slice; a
// single malformed record is skipped without dropping its siblings.
func fetchAndNormalize[T any](
	ctx context.Context,
	table, scopeID string,
	fetch func(context.Context, string) ([]T, error),
	normalize func(T) []Event,
) []Event {
	records, err := fetch(ctx, scopeID)
	if err != nil {
		logger.Warn("journey source fetch failed, degrading to empty",
			"source", table, "scope_id", scopeID, "error", err)
		return nil
	}

	out := make([]Event, 0, len(records))
	for _, rec := range records {
		events, ok := normalizeOne(table, rec, normalize)
		if !ok {
			continue
		}
		out = append(out, events...)
	}
	return out
}

// normalizeOne shields the aggregation from a panicking normalizer: one bad
// record is skipped, the rest of the source survives.
func normalizeOne[T any](table string, rec T, normalize func(T) []Event) (events []Event, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("journey normalizer panicked on record, skipping",
				"source", table, "panic", r)
			events, ok = nil, false
		}
	}()
	return normalize(rec), true
}

// fanOut issues every fetcher concurrently and settles all of them,
// collecting whatever each produced.
func fanOut(ctx context.Context, fetchers map[string]func(context.Context) []Event) [][]Event {
	type result struct {
		events []Event
	}
	results := make(chan result, len(fetchers))

	for _, fetch := range fetchers {
		go func(fetch func(context.Context) []Event) {
			results <- result{events: fetch(ctx)}
		}(fetch)
	}

	out := make([][]Event, 0, len(fetchers))
	for range fetchers {
		r := <-results
		out = append(out, r.events)
	}
	return out
}

func filterEvents(events []Event, f EventFilter) []Event {
	var categories map[EventCategory]bool
	if len(f.Categories) > 0 {
		categories = make(map[EventCategory]bool, len(f.Categories))
		for _, c := range f.Categories {
			categories[c] = true
		}
	}

	// date_to is inclusive of the whole day: keep events strictly before the
	// following midnight.
	var cutoff time.Time
	if f.DateTo != nil {
		d := f.DateTo.UTC()
		cutoff = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	}

	out := events[:0:0]
	for _, e := range events {
		if categories != nil && !categories[e.Category] {
			continue
		}
		if f.DateFrom != nil && e.Timestamp.Before(*f.DateFrom) {
			continue
		}
		if f.DateTo != nil && !e.Timestamp.Before(cutoff) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// sortEvents orders newest-first, with id as a deterministic tiebreak so the
// merged order never depends on source arrival order.
func sortEvents(events []Event) {
	sort.Slice(events, func(i, j int) bool {
		if !events[i].Timestamp.Equal(events[j].Timestamp) {
			return events[i].Timestamp.After(events[j].Timestamp)
		}
		return events[i].ID < events[j].ID
	})
}

func pageEvents(events []Event, offset, limit int) []Event {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(events) {
		return []Event{}
	}
	end := len(events)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return events[offset:end]
}
