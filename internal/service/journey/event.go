package journey

import "time"

// EventCategory is the broad bucket a timeline event belongs to. The set is
// closed; filtering and category counts operate on these values only.
type EventCategory string

const (
	CategoryOnboarding    EventCategory = "onboarding"
	CategoryFinancial     EventCategory = "financial"
	CategoryAccommodation EventCategory = "accommodation"
	CategoryComplaint     EventCategory = "complaint"
	CategoryExit          EventCategory = "exit"
	CategoryVisitor       EventCategory = "visitor"
	CategoryDocument      EventCategory = "document"
	CategoryCommunication EventCategory = "communication"
	CategorySystem        EventCategory = "system"
)

// AmountType tags the direction of an event's financial impact from the
// tenant-ledger point of view.
type AmountType string

const (
	AmountCredit  AmountType = "credit"
	AmountDebit   AmountType = "debit"
	AmountNeutral AmountType = "neutral"
)

// StatusColor is an abstract severity/semantic tag for the event's status
// label. The UI maps these to its palette; the engine never interprets them.
type StatusColor string

const (
	ColorSuccess StatusColor = "success"
	ColorWarning StatusColor = "warning"
	ColorError   StatusColor = "error"
	ColorInfo    StatusColor = "info"
	ColorMuted   StatusColor = "muted"
	ColorPrimary StatusColor = "primary"
)

// QuickAction is a presentation hint for a one-tap action on an event.
type QuickAction struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Event is the unified normalized record every source maps into.
//
// ID is derived deterministically from the source table and record id (plus
// a phase suffix for multi-phase records), so it is stable across re-fetches
// and unique within one aggregation. Timestamp is never zero: records
// lacking a natural timestamp fall back to their creation instant.
//
// RelatedEntities and Metadata are presentation-only passthrough; no
// filtering or scoring reads from them.
type Event struct {
	ID          string        `json:"id"`
	Timestamp   time.Time     `json:"timestamp"`
	Category    EventCategory `json:"category"`
	Type        string        `json:"type"`
	Title       string        `json:"title"`
	Description string        `json:"description"`

	SourceTable string `json:"source_table"`
	SourceID    string `json:"source_id"`

	Amount     *float64   `json:"amount,omitempty"`
	AmountType AmountType `json:"amount_type,omitempty"`

	Status      string      `json:"status,omitempty"`
	StatusColor StatusColor `json:"status_color,omitempty"`

	RelatedEntities map[string]any `json:"related_entities,omitempty"`
	Metadata        map[string]any `json:"metadata,omitempty"`

	Icon         string        `json:"icon,omitempty"`
	ActionURL    string        `json:"action_url,omitempty"`
	QuickActions []QuickAction `json:"quick_actions,omitempty"`
}
