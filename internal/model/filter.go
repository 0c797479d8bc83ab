package model

import "time"

type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

func (r DateRange) Contains(t time.Time) bool {
	if !r.From.IsZero() && t.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && t.After(r.To) {
		return false
	}
	return true
}

type SortKey string

const (
	SortByEvents      SortKey = "events"
	SortByUtilization SortKey = "utilization"
	SortByRented      SortKey = "rented"
	SortByMaintenance SortKey = "maintenance"
	SortByIdle        SortKey = "idle"
	SortByPlate       SortKey = "plate"
)

type TimelineFilter struct {
	Range      DateRange
	PlateQuery string
	ModelQuery string
	Types      []EventType
	SortBy     SortKey
	Expanded   ExpansionState
}

// ClampRange swaps an inverted range and extends a date-only upper bound to the end of that day.
func (f TimelineFilter) ClampRange() TimelineFilter {
	if !f.Range.From.IsZero() && !f.Range.To.IsZero() && f.Range.To.Before(f.Range.From) {
		f.Range.From, f.Range.To = f.Range.To, f.Range.From
	}
	to := f.Range.To
	if !to.IsZero() && to.Hour() == 0 && to.Minute() == 0 && to.Second() == 0 && to.Nanosecond() == 0 {
		f.Range.To = to.Add(24*time.Hour - time.Nanosecond)
	}
	return f
}

func (f TimelineFilter) Sort() SortKey {
	switch f.SortBy {
	case SortByUtilization, SortByRented, SortByMaintenance, SortByIdle, SortByPlate:
		return f.SortBy
	default:
		return SortByEvents
	}
}

func (f TimelineFilter) AllowsType(t EventType) bool {
	if len(f.Types) == 0 {
		return true
	}
	for _, allowed := range f.Types {
		if allowed == t {
			return true
		}
	}
	return false
}
