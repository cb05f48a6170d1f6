package domain

import "time"

// Visit is one visitor entry in the gate register. TenantID is set when the
// visit was explicitly logged against a tenant; walk-in enquiries have none.
type Visit struct {
	ID           string     `json:"id" db:"id"`
	TenantID     *string    `json:"tenant_id" db:"tenant_id"`
	PropertyID   *string    `json:"property_id" db:"property_id"`
	VisitorName  string     `json:"visitor_name" db:"visitor_name"`
	VisitorPhone string     `json:"visitor_phone" db:"visitor_phone"`
	Purpose      string     `json:"purpose" db:"purpose"`
	VisitDate    time.Time  `json:"visit_date" db:"visit_date"`
	CheckOutAt   *time.Time `json:"check_out_at" db:"check_out_at"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}

// MeterReading is a utility meter snapshot for a room. Readings are scoped
// to the room, not the tenant; the journey attributes the current room's
// readings to its occupant.
type MeterReading struct {
	ID           string    `json:"id" db:"id"`
	RoomID       string    `json:"room_id" db:"room_id"`
	MeterType    string    `json:"meter_type" db:"meter_type"`
	Reading      float64   `json:"reading" db:"reading"`
	PrevReading  float64   `json:"prev_reading" db:"prev_reading"`
	UnitsUsed    float64   `json:"units_used" db:"units_used"`
	ReadingDate  time.Time `json:"reading_date" db:"reading_date"`
	RecordedBy   string    `json:"recorded_by" db:"recorded_by"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
