package model

import "time"

type MaintenanceInterval struct {
	PlateKey string             `json:"plate_key"`
	Start    time.Time          `json:"start"`
	End      *time.Time         `json:"end"`
	Days     int                `json:"days"`
	Duration string             `json:"duration"`
	Orders   []MaintenanceOrder `json:"orders"`
}

func (i MaintenanceInterval) Open() bool {
	return i.End == nil
}

type MaintenanceOccurrence struct {
	Key          string             `json:"key"`
	OccurrenceID string             `json:"occurrence_id,omitempty"`
	Plate        string             `json:"plate"`
	PlateKey     string             `json:"plate_key"`
	Date         time.Time          `json:"date"`
	OpenedAt     *time.Time         `json:"opened_at,omitempty"`
	ClosedAt     *time.Time         `json:"closed_at,omitempty"`
	ArrivalAt    *time.Time         `json:"arrival_at,omitempty"`
	PickupAt     *time.Time         `json:"pickup_at,omitempty"`
	StayDays     int                `json:"stay_days"`
	StayDuration string             `json:"stay_duration"`
	Cost         float64            `json:"cost"`
	Orders       []MaintenanceOrder `json:"orders"`
	Movements    []Movement         `json:"movements,omitempty"`
}

type VehicleTimelineSummary struct {
	Plate           string            `json:"plate"`
	PlateKey        string            `json:"plate_key"`
	Model           string            `json:"model,omitempty"`
	Status          string            `json:"status,omitempty"`
	TotalEvents     int               `json:"total_events"`
	FirstEventAt    *time.Time        `json:"first_event_at,omitempty"`
	LastEventAt     *time.Time        `json:"last_event_at,omitempty"`
	EventCounts     map[EventType]int `json:"event_counts"`
	RentedDays      float64           `json:"rented_days"`
	MaintenanceDays float64           `json:"maintenance_days"`
	IncidentDays    float64           `json:"incident_days"`
	IdleDays        float64           `json:"idle_days"`
	IdleDuration    string            `json:"idle_duration"`
	ElapsedDays     float64           `json:"elapsed_days"`
	UtilizationPct  float64           `json:"utilization_pct"`
	CurrentContract *RentalContract   `json:"current_contract,omitempty"`
	Events          []TimelineEvent   `json:"events"`
	Detail          *VehicleExpansion `json:"detail,omitempty"`
}

// VehicleExpansion is attached only to rows the caller marked as expanded.
type VehicleExpansion struct {
	Intervals   []MaintenanceInterval   `json:"intervals"`
	Occurrences []MaintenanceOccurrence `json:"occurrences"`
}

type HistogramBucket struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type Distributions struct {
	RentedDays      []HistogramBucket `json:"rented_days"`
	MaintenanceDays []HistogramBucket `json:"maintenance_days"`
	Utilization     []HistogramBucket `json:"utilization"`
}

type TimelineReport struct {
	GeneratedAt   time.Time                `json:"generated_at"`
	Vehicles      []VehicleTimelineSummary `json:"vehicles"`
	Distributions Distributions            `json:"distributions"`
	Expanded      []string                 `json:"expanded"`
}

type VehicleDetail struct {
	Vehicle     *Vehicle                `json:"vehicle,omitempty"`
	Summary     *VehicleTimelineSummary `json:"summary,omitempty"`
	Intervals   []MaintenanceInterval   `json:"intervals"`
	Occurrences []MaintenanceOccurrence `json:"occurrences"`
	Contracts   []RentalContract        `json:"contracts"`
	Accidents   []Accident              `json:"accidents"`
	Fines       []Fine                  `json:"fines"`
}
