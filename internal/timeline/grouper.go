package timeline

import (
	"math"
	"sort"
	"strings"
	"time"

	"fleet-timeline-service/internal/model"
	"fleet-timeline-service/internal/normalize"
)

// acquisitionProxy stands in for a missing acquisition date: the vehicle is
// assumed to have joined the fleet this long before its first contract.
const acquisitionProxy = 30 * day

// Summarize emits one row per plate present in events. It is a pure function of
// its inputs; now is the only notion of the current time it uses.
func Summarize(events []model.TimelineEvent, idx *Index, now time.Time) []model.VehicleTimelineSummary {
	byPlate := make(map[string][]model.TimelineEvent)
	order := make([]string, 0)
	for _, ev := range events {
		if ev.PlateKey == "" {
			continue
		}
		if _, seen := byPlate[ev.PlateKey]; !seen {
			order = append(order, ev.PlateKey)
		}
		byPlate[ev.PlateKey] = append(byPlate[ev.PlateKey], ev)
	}

	rows := make([]model.VehicleTimelineSummary, 0, len(order))
	for _, key := range order {
		rows = append(rows, summarizePlate(key, byPlate[key], idx, now))
	}

	SortSummaries(rows, model.SortByEvents)
	return rows
}

func summarizePlate(key string, events []model.TimelineEvent, idx *Index, now time.Time) model.VehicleTimelineSummary {
	vehicle := vehicleFor(key, events, idx)

	dated := make([]model.TimelineEvent, 0, len(events))
	counts := make(map[model.EventType]int)
	for _, ev := range events {
		if ev.At == nil {
			continue
		}
		dated = append(dated, ev)
		counts[ev.Type]++
	}
	sort.SliceStable(dated, func(i, j int) bool { return dated[i].At.Before(*dated[j].At) })

	row := model.VehicleTimelineSummary{
		Plate:       vehicle.Plate,
		PlateKey:    key,
		Model:       vehicle.Model,
		Status:      vehicle.Status,
		TotalEvents: len(dated),
		EventCounts: counts,
		Events:      dated,
	}

	var firstEvent *time.Time
	if len(dated) > 0 {
		firstEvent = copyTime(dated[0].At)
		row.FirstEventAt = firstEvent
		row.LastEventAt = copyTime(dated[len(dated)-1].At)
	}

	contracts := idx.Contracts[key]
	rented := 0.0
	for _, c := range contracts {
		rented += spanUntil(c.StartAt, c.EndAt(), now)
	}

	maintenance := 0.0
	for _, o := range idx.Maintenance[key] {
		maintenance += spanUntil(o.EntryAt, o.ExitAt, now)
	}

	incidents := 0.0
	for _, a := range idx.Accidents[key] {
		incidents += spanUntil(a.OpenedAt, a.ClosedAt, now)
	}

	elapsed := 1.0
	if firstEvent != nil {
		elapsed = math.Max(1, days(now.Sub(*firstEvent)))
	}

	idle := 0.0
	if acquired := acquisitionDate(vehicle, contracts, firstEvent); acquired != nil {
		disposal := now
		if vehicle.DisposedAt != nil {
			disposal = *vehicle.DisposedAt
		}
		idle = math.Max(0, days(disposal.Sub(*acquired))-rented)
	}

	row.RentedDays = round2(rented)
	row.MaintenanceDays = round2(maintenance)
	row.IncidentDays = round2(incidents)
	row.IdleDays = round2(idle)
	row.IdleDuration = normalize.FormatDays(row.IdleDays)
	row.ElapsedDays = round2(elapsed)
	row.UtilizationPct = round2(utilization(rented, elapsed))
	if c := idx.ResolveContract(key, now); c != nil && c.Contains(now) {
		row.CurrentContract = c
	}

	return row
}

// vehicleFor prefers the fleet record and falls back to whatever other source
// names the model.
func vehicleFor(key string, events []model.TimelineEvent, idx *Index) model.Vehicle {
	if v, ok := idx.Vehicles[key]; ok {
		if v.Model == "" {
			v.Model = fallbackModel(key, events, idx)
		}
		return v
	}
	v := model.Vehicle{PlateKey: key, Plate: key, Model: fallbackModel(key, events, idx)}
	for _, ev := range events {
		if ev.Plate != "" {
			v.Plate = ev.Plate
			break
		}
	}
	return v
}

func fallbackModel(key string, events []model.TimelineEvent, idx *Index) string {
	for _, ev := range events {
		if ev.Model != "" {
			return ev.Model
		}
	}
	for _, o := range idx.Maintenance[key] {
		if o.Model != "" {
			return o.Model
		}
	}
	for _, c := range idx.Contracts[key] {
		if c.Model != "" {
			return c.Model
		}
	}
	return ""
}

func acquisitionDate(v model.Vehicle, contracts []model.RentalContract, firstEvent *time.Time) *time.Time {
	if v.AcquiredAt != nil {
		return v.AcquiredAt
	}
	var earliest *time.Time
	for _, c := range contracts {
		earliest = earlier(earliest, c.StartAt)
	}
	if earliest != nil {
		proxy := earliest.Add(-acquisitionProxy)
		return &proxy
	}
	return firstEvent
}

// spanUntil measures start..end in days with an open end read as now.
// Inverted spans contribute zero.
func spanUntil(start, end *time.Time, now time.Time) float64 {
	if start == nil {
		return 0
	}
	stop := now
	if end != nil {
		stop = *end
	}
	return math.Max(0, days(stop.Sub(*start)))
}

func utilization(rented, elapsed float64) float64 {
	if elapsed <= 0 || math.IsNaN(rented) || math.IsInf(rented, 0) {
		return 0
	}
	pct := rented / elapsed * 100
	return math.Min(100, math.Max(0, pct))
}

func days(d time.Duration) float64 {
	return d.Hours() / 24
}

func round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*100) / 100
}

// FilterEvents applies the caller's pre-filter before grouping.
func FilterEvents(events []model.TimelineEvent, idx *Index, filter model.TimelineFilter) []model.TimelineEvent {
	plateQuery := normalize.PlateKey(filter.PlateQuery)
	modelQuery := strings.TrimSpace(filter.ModelQuery)
	hasRange := !filter.Range.From.IsZero() || !filter.Range.To.IsZero()

	out := make([]model.TimelineEvent, 0, len(events))
	for _, ev := range events {
		if plateQuery != "" && !strings.Contains(ev.PlateKey, plateQuery) {
			continue
		}
		if !filter.AllowsType(ev.Type) {
			continue
		}
		if hasRange && (ev.At == nil || !filter.Range.Contains(*ev.At)) {
			continue
		}
		if modelQuery != "" {
			name := ev.Model
			if v, ok := idx.Vehicles[ev.PlateKey]; ok && v.Model != "" {
				name = v.Model
			}
			if !normalize.ContainsFold(name, modelQuery) {
				continue
			}
		}
		out = append(out, ev)
	}
	return out
}

// SortSummaries orders rows descending by the chosen metric, plate key breaking ties.
func SortSummaries(rows []model.VehicleTimelineSummary, by model.SortKey) {
	metric := func(r model.VehicleTimelineSummary) float64 {
		switch by {
		case model.SortByUtilization:
			return r.UtilizationPct
		case model.SortByRented:
			return r.RentedDays
		case model.SortByMaintenance:
			return r.MaintenanceDays
		case model.SortByIdle:
			return r.IdleDays
		default:
			return float64(r.TotalEvents)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if by != model.SortByPlate {
			mi, mj := metric(rows[i]), metric(rows[j])
			if mi != mj {
				return mi > mj
			}
		}
		return rows[i].PlateKey < rows[j].PlateKey
	})
}
