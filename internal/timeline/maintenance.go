package timeline

import (
	"fmt"
	"math"
	"sort"
	"time"

	"fleet-timeline-service/internal/model"
	"fleet-timeline-service/internal/normalize"
)

const (
	day = 24 * time.Hour

	// mergeGap is how far after an interval ends a new entry still counts as the same shop stay.
	mergeGap = day

	awaitingArrivalStage = "aguardando chegada"
)

// BuildMaintenanceIntervals merges one vehicle's work orders into contiguous
// "in shop" stays. An interval with a nil End is still open.
func BuildMaintenanceIntervals(orders []model.MaintenanceOrder, now time.Time) []model.MaintenanceInterval {
	type stay struct {
		order model.MaintenanceOrder
		start time.Time
		end   *time.Time
	}

	stays := make([]stay, 0, len(orders))
	for _, o := range orders {
		if o.EntryAt == nil {
			continue
		}
		stays = append(stays, stay{order: o, start: *o.EntryAt, end: copyTime(o.ExitAt)})
	}
	sort.SliceStable(stays, func(i, j int) bool { return stays[i].start.Before(stays[j].start) })

	intervals := make([]model.MaintenanceInterval, 0, len(stays))
	for _, s := range stays {
		if n := len(intervals); n > 0 {
			current := &intervals[n-1]
			if !s.start.After(effectiveEnd(current.End, now).Add(mergeGap)) {
				current.Orders = append(current.Orders, s.order)
				current.End = mergeEnd(current.End, s.end)
				continue
			}
		}
		intervals = append(intervals, model.MaintenanceInterval{
			PlateKey: s.order.PlateKey,
			Start:    s.start,
			End:      s.end,
			Orders:   []model.MaintenanceOrder{s.order},
		})
	}

	for i := range intervals {
		intervals[i].Days = spanDays(intervals[i].Start, effectiveEnd(intervals[i].End, now))
		intervals[i].Duration = normalize.FormatDays(float64(intervals[i].Days))
	}
	return intervals
}

// mergeEnd keeps an interval open if either side is open.
func mergeEnd(a, b *time.Time) *time.Time {
	if a == nil || b == nil {
		return nil
	}
	if b.After(*a) {
		return copyTime(b)
	}
	return a
}

// GroupMaintenanceByOccurrence folds work orders into maintenance cases. Orders
// without an occurrence id become singleton groups keyed by their own id, with
// repeated ids told apart by input position.
// Groups where no member carries any date are dropped.
func GroupMaintenanceByOccurrence(orders []model.MaintenanceOrder, now time.Time) []model.MaintenanceOccurrence {
	groups := make(map[string][]model.MaintenanceOrder)
	keys := make([]string, 0)
	singletons := make(map[string]int)
	for _, o := range orders {
		key := occurrenceKey(o)
		if o.OccurrenceID == "" {
			n := singletons[key]
			singletons[key] = n + 1
			if n > 0 {
				key = fmt.Sprintf("%s#%d", key, n)
			}
		}
		if _, seen := groups[key]; !seen {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], o)
	}

	result := make([]model.MaintenanceOccurrence, 0, len(keys))
	for _, key := range keys {
		occ, ok := buildOccurrence(key, groups[key], now)
		if ok {
			result = append(result, occ)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.After(result[j].Date)
		}
		return result[i].Key < result[j].Key
	})
	return result
}

func occurrenceKey(o model.MaintenanceOrder) string {
	if o.OccurrenceID != "" {
		return "oc:" + o.OccurrenceID
	}
	if o.ID != "" {
		return "os:" + o.ID
	}
	var entry string
	if o.EntryAt != nil {
		entry = o.EntryAt.Format(time.RFC3339)
	}
	return "os:" + o.PlateKey + ":" + entry
}

func buildOccurrence(key string, members []model.MaintenanceOrder, now time.Time) (model.MaintenanceOccurrence, bool) {
	date, ok := earliestDate(members)
	if !ok {
		return model.MaintenanceOccurrence{}, false
	}

	ordered := make([]model.MaintenanceOrder, len(members))
	copy(ordered, members)
	sort.SliceStable(ordered, func(i, j int) bool {
		di, _ := earliestDate(ordered[i : i+1])
		dj, _ := earliestDate(ordered[j : j+1])
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return ordered[i].ID < ordered[j].ID
	})

	occ := model.MaintenanceOccurrence{
		Key:          key,
		OccurrenceID: ordered[0].OccurrenceID,
		Plate:        ordered[0].Plate,
		PlateKey:     ordered[0].PlateKey,
		Date:         date,
		Orders:       ordered,
	}

	costs := make([]*float64, 0, len(ordered))
	for _, o := range ordered {
		occ.OpenedAt = earlier(occ.OpenedAt, o.OpenedAt)
		occ.ClosedAt = later(occ.ClosedAt, o.ClosedAt)
		if occ.ArrivalAt == nil && o.ArrivalAt != nil {
			occ.ArrivalAt = copyTime(o.ArrivalAt)
		}
		if o.PickupAt != nil {
			occ.PickupAt = copyTime(o.PickupAt)
		}
		if occ.Movements == nil && len(o.Movements) > 0 {
			occ.Movements = o.Movements
		}
		costs = append(costs, o.TotalCost())
	}
	occ.Cost = normalize.SumMoney(costs...)

	if confirmed := awaitingArrivalConfirmation(occ.Movements); confirmed != nil {
		occ.ArrivalAt = confirmed
	}

	start := occ.Date
	if occ.ArrivalAt != nil {
		start = *occ.ArrivalAt
	}
	end := now
	switch {
	case occ.PickupAt != nil:
		end = *occ.PickupAt
	case occ.ClosedAt != nil:
		end = *occ.ClosedAt
	}
	occ.StayDays = spanDays(start, end)
	occ.StayDuration = normalize.FormatDays(float64(occ.StayDays))

	return occ, true
}

func awaitingArrivalConfirmation(movements []model.Movement) *time.Time {
	for _, mv := range movements {
		if mv.At != nil && normalize.ContainsFold(mv.Stage, awaitingArrivalStage) {
			return copyTime(mv.At)
		}
	}
	return nil
}

func earliestDate(orders []model.MaintenanceOrder) (time.Time, bool) {
	var best time.Time
	found := false
	consider := func(t time.Time) {
		if !found || t.Before(best) {
			best = t
			found = true
		}
	}
	for _, o := range orders {
		for _, t := range o.Dates {
			consider(t)
		}
		for _, t := range []*time.Time{o.OpenedAt, o.EntryAt, o.ArrivalAt} {
			if t != nil {
				consider(*t)
			}
		}
	}
	return best, found
}

func effectiveEnd(end *time.Time, now time.Time) time.Time {
	if end == nil {
		return now
	}
	return *end
}

// spanDays counts started days between start and end, never negative.
func spanDays(start, end time.Time) int {
	d := end.Sub(start)
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(float64(d) / float64(day)))
}

func earlier(a, b *time.Time) *time.Time {
	if b == nil {
		return a
	}
	if a == nil || b.Before(*a) {
		return copyTime(b)
	}
	return a
}

func later(a, b *time.Time) *time.Time {
	if b == nil {
		return a
	}
	if a == nil || b.After(*a) {
		return copyTime(b)
	}
	return a
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
