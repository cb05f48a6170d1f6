// Package journey assembles the full chronological history of a tenant
// across every record source in the platform.
//
// The engine fans out to ten independent sources (stays, bills, payments,
// charges, complaints, room transfers, exit clearances, refunds, visits,
// meter readings), normalizes each source's native shape into a unified
// timeline event, and computes longitudinal analytics, a financial summary,
// heuristic risk/satisfaction insights, and phone-based visitor linkage over
// the merged history.
//
// Everything here is read-side: each call recomputes from the live stores
// and returns a fresh result tree. Nothing is cached or mutated in place;
// callers that want caching own that concern (see internal/api).
//
// Failure policy: a single source outage degrades to an empty contribution
// (logged, never fatal), and a single malformed record is skipped without
// dropping its source. Only tenant resolution failures and unexpected
// internal errors reach the caller.
package journey
