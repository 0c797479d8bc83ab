package timeline

import (
	"sort"
	"time"

	"fleet-timeline-service/internal/model"
	"fleet-timeline-service/internal/normalize"
)

// BuildReport runs the whole pipeline over already converted facts.
func BuildReport(facts model.Facts, filter model.TimelineFilter, now time.Time) model.TimelineReport {
	idx := BuildIndex(facts)
	events := FilterEvents(facts.Events, idx, filter)
	rows := Summarize(events, idx, now)
	if sortKey := filter.Sort(); sortKey != model.SortByEvents {
		SortSummaries(rows, sortKey)
	}
	AttachDetails(rows, idx, filter.Expanded, now)

	expanded := filter.Expanded.Keys()
	sort.Strings(expanded)

	return model.TimelineReport{
		GeneratedAt:   now,
		Vehicles:      rows,
		Distributions: BuildDistributions(rows),
		Expanded:      expanded,
	}
}

// AttachDetails adds intervals and occurrences to the rows the caller expanded.
func AttachDetails(rows []model.VehicleTimelineSummary, idx *Index, expanded model.ExpansionState, now time.Time) {
	for i := range rows {
		if !expanded.IsExpanded(rows[i].PlateKey) {
			continue
		}
		orders := idx.Maintenance[rows[i].PlateKey]
		rows[i].Detail = &model.VehicleExpansion{
			Intervals:   BuildMaintenanceIntervals(orders, now),
			Occurrences: GroupMaintenanceByOccurrence(orders, now),
		}
	}
}

// BuildVehicleDetail gathers everything known about one plate. ok is false when
// no fact of any kind mentions it.
func BuildVehicleDetail(facts model.Facts, plate string, now time.Time) (model.VehicleDetail, bool) {
	key := normalize.PlateKey(plate)
	if key == "" {
		return model.VehicleDetail{}, false
	}
	idx := BuildIndex(facts)

	var events []model.TimelineEvent
	for _, ev := range facts.Events {
		if ev.PlateKey == key {
			events = append(events, ev)
		}
	}
	if !idx.HasPlate(key) && len(events) == 0 {
		return model.VehicleDetail{}, false
	}

	orders := idx.Maintenance[key]
	detail := model.VehicleDetail{
		Intervals:   BuildMaintenanceIntervals(orders, now),
		Occurrences: GroupMaintenanceByOccurrence(orders, now),
		Contracts:   nonNil(idx.Contracts[key]),
		Accidents:   nonNil(idx.Accidents[key]),
		Fines:       nonNil(idx.Fines[key]),
	}
	if v, ok := idx.Vehicles[key]; ok {
		detail.Vehicle = &v
	}
	if len(events) > 0 {
		rows := Summarize(events, idx, now)
		if len(rows) == 1 {
			detail.Summary = &rows[0]
		}
	}
	return detail, true
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
