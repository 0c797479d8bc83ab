package model

import "time"

// RawRecord is a row exactly as a fact source returned it.
type RawRecord map[string]any

type RawFacts struct {
	Vehicles    []RawRecord
	Contracts   []RawRecord
	Maintenance []RawRecord
	Accidents   []RawRecord
	Fines       []RawRecord
	Events      []RawRecord
}

type Facts struct {
	Vehicles    []Vehicle
	Contracts   []RentalContract
	Maintenance []MaintenanceOrder
	Accidents   []Accident
	Fines       []Fine
	Events      []TimelineEvent
}

type EventType string

const (
	EventRental      EventType = "LOCACAO"
	EventReturn      EventType = "DEVOLUCAO"
	EventMaintenance EventType = "MANUTENCAO"
	EventAccident    EventType = "SINISTRO"
	EventMovement    EventType = "MOVIMENTACAO"
	EventFine        EventType = "MULTA"
	EventPurchase    EventType = "COMPRA"
	EventSale        EventType = "VENDA"
	EventWriteOff    EventType = "BAIXA"
	EventOther       EventType = "OUTRO"
)

type Vehicle struct {
	Plate         string     `json:"plate"`
	PlateKey      string     `json:"plate_key"`
	Model         string     `json:"model,omitempty"`
	Status        string     `json:"status,omitempty"`
	AcquiredAt    *time.Time `json:"acquired_at,omitempty"`
	DisposedAt    *time.Time `json:"disposed_at,omitempty"`
	PurchaseValue *float64   `json:"purchase_value,omitempty"`
	MarketValue   *float64   `json:"market_value,omitempty"`
}

type Movement struct {
	Stage          string     `json:"stage"`
	At             *time.Time `json:"at,omitempty"`
	ElapsedMinutes *float64   `json:"elapsed_minutes,omitempty"`
	Elapsed        string     `json:"elapsed,omitempty"`
}

type MaintenanceOrder struct {
	ID                  string      `json:"id"`
	SyntheticID         bool        `json:"synthetic_id,omitempty"`
	Plate               string      `json:"plate"`
	PlateKey            string      `json:"plate_key"`
	Model               string      `json:"model,omitempty"`
	OccurrenceID        string      `json:"occurrence_id,omitempty"`
	EntryAt             *time.Time  `json:"entry_at,omitempty"`
	ExitAt              *time.Time  `json:"exit_at,omitempty"`
	OpenedAt            *time.Time  `json:"opened_at,omitempty"`
	ClosedAt            *time.Time  `json:"closed_at,omitempty"`
	ArrivalAt           *time.Time  `json:"arrival_at,omitempty"`
	PickupAt            *time.Time  `json:"pickup_at,omitempty"`
	Dates               []time.Time `json:"-"`
	Cost                *float64    `json:"cost,omitempty"`
	ReimbursableCost    *float64    `json:"reimbursable_cost,omitempty"`
	NonReimbursableCost *float64    `json:"non_reimbursable_cost,omitempty"`
	Status              string      `json:"status,omitempty"`
	Type                string      `json:"type,omitempty"`
	Supplier            string      `json:"supplier,omitempty"`
	Movements           []Movement  `json:"movements,omitempty"`
}

// TotalCost prefers the explicit total and falls back to the sum of the split fields.
func (o MaintenanceOrder) TotalCost() *float64 {
	if o.Cost != nil {
		return o.Cost
	}
	if o.ReimbursableCost == nil && o.NonReimbursableCost == nil {
		return nil
	}
	total := 0.0
	if o.ReimbursableCost != nil {
		total += *o.ReimbursableCost
	}
	if o.NonReimbursableCost != nil {
		total += *o.NonReimbursableCost
	}
	return &total
}

type RentalContract struct {
	ID             string     `json:"id,omitempty"`
	Plate          string     `json:"plate"`
	PlateKey       string     `json:"plate_key"`
	Model          string     `json:"model,omitempty"`
	Client         string     `json:"client,omitempty"`
	StartAt        *time.Time `json:"start_at,omitempty"`
	ScheduledEndAt *time.Time `json:"scheduled_end_at,omitempty"`
	ActualEndAt    *time.Time `json:"actual_end_at,omitempty"`
	MonthlyValue   *float64   `json:"monthly_value,omitempty"`
	TenorMonths    *int       `json:"tenor_months,omitempty"`
}

// EndAt is the actual termination when known, otherwise the scheduled end.
func (c RentalContract) EndAt() *time.Time {
	if c.ActualEndAt != nil {
		return c.ActualEndAt
	}
	return c.ScheduledEndAt
}

// Contains reports whether at falls inside [start, end]; a missing end is open.
func (c RentalContract) Contains(at time.Time) bool {
	if c.StartAt == nil || at.Before(*c.StartAt) {
		return false
	}
	end := c.EndAt()
	return end == nil || !at.After(*end)
}

type Accident struct {
	ID          string     `json:"id,omitempty"`
	Plate       string     `json:"plate"`
	PlateKey    string     `json:"plate_key"`
	Description string     `json:"description,omitempty"`
	OpenedAt    *time.Time `json:"opened_at,omitempty"`
	ClosedAt    *time.Time `json:"closed_at,omitempty"`
	Amount      *float64   `json:"amount,omitempty"`
}

type Fine struct {
	ID           string     `json:"id,omitempty"`
	Plate        string     `json:"plate"`
	PlateKey     string     `json:"plate_key"`
	Description  string     `json:"description,omitempty"`
	InfractionAt *time.Time `json:"infraction_at,omitempty"`
	Amount       *float64   `json:"amount,omitempty"`
}

type TimelineEvent struct {
	Plate       string     `json:"plate"`
	PlateKey    string     `json:"plate_key"`
	Model       string     `json:"model,omitempty"`
	Type        EventType  `json:"type"`
	At          *time.Time `json:"at,omitempty"`
	Description string     `json:"description,omitempty"`
	Detail      string     `json:"detail,omitempty"`
}
