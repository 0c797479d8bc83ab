package ingest

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"fleet-timeline-service/internal/model"
	"fleet-timeline-service/internal/normalize"
)

var syntheticOrderSpace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("fleet-timeline/maintenance-order"))

// Stats counts records dropped at the boundary, keyed by collection kind.
type Stats struct {
	Skipped map[string]int
}

func (s Stats) Total() int {
	total := 0
	for _, n := range s.Skipped {
		total += n
	}
	return total
}

// Facts converts every raw collection into its typed variant. Records that
// cannot be attributed to a vehicle are dropped and counted; nothing here fails.
func Facts(raw model.RawFacts, loc *time.Location) (model.Facts, Stats) {
	stats := Stats{Skipped: map[string]int{}}
	var facts model.Facts
	var skipped int

	facts.Vehicles, skipped = Vehicles(raw.Vehicles, loc)
	stats.Skipped["vehicles"] = skipped
	facts.Contracts, skipped = Contracts(raw.Contracts, loc)
	stats.Skipped["contracts"] = skipped
	facts.Maintenance, skipped = MaintenanceOrders(raw.Maintenance, loc)
	stats.Skipped["maintenance"] = skipped
	facts.Accidents, skipped = Accidents(raw.Accidents, loc)
	stats.Skipped["accidents"] = skipped
	facts.Fines, skipped = Fines(raw.Fines, loc)
	stats.Skipped["fines"] = skipped
	facts.Events, skipped = Events(raw.Events, loc)
	stats.Skipped["events"] = skipped

	return facts, stats
}

func plateOf(rec model.RawRecord) (string, string) {
	plate := plateField.String(rec)
	return plate, normalize.PlateKey(plate)
}

func Vehicles(rows []model.RawRecord, loc *time.Location) ([]model.Vehicle, int) {
	out := make([]model.Vehicle, 0, len(rows))
	skipped := 0
	for _, rec := range rows {
		plate, key := plateOf(rec)
		if key == "" {
			skipped++
			continue
		}
		out = append(out, model.Vehicle{
			Plate:         plate,
			PlateKey:      key,
			Model:         modelField.String(rec),
			Status:        vehicleFields.status.String(rec),
			AcquiredAt:    vehicleFields.acquiredAt.Time(rec, loc),
			DisposedAt:    vehicleFields.disposedAt.Time(rec, loc),
			PurchaseValue: vehicleFields.purchaseValue.Money(rec),
			MarketValue:   vehicleFields.marketValue.Money(rec),
		})
	}
	return out, skipped
}

func MaintenanceOrders(rows []model.RawRecord, loc *time.Location) ([]model.MaintenanceOrder, int) {
	out := make([]model.MaintenanceOrder, 0, len(rows))
	skipped := 0
	f := maintenanceFields
	seen := make(map[string]int)
	for _, rec := range rows {
		plate, key := plateOf(rec)
		if key == "" {
			skipped++
			continue
		}
		order := model.MaintenanceOrder{
			ID:                  f.id.String(rec),
			Plate:               plate,
			PlateKey:            key,
			Model:               modelField.String(rec),
			OccurrenceID:        f.occurrenceID.String(rec),
			EntryAt:             f.entryAt.Time(rec, loc),
			ExitAt:              f.exitAt.Time(rec, loc),
			OpenedAt:            f.openedAt.Time(rec, loc),
			ClosedAt:            f.closedAt.Time(rec, loc),
			ArrivalAt:           f.arrivalAt.Time(rec, loc),
			PickupAt:            f.pickupAt.Time(rec, loc),
			Dates:               f.allDates.Times(rec, loc),
			Cost:                f.cost.Money(rec),
			ReimbursableCost:    f.reimbursable.Money(rec),
			NonReimbursableCost: f.nonReimbursable.Money(rec),
			Status:              f.status.String(rec),
			Type:                f.kind.String(rec),
			Supplier:            f.supplier.String(rec),
		}
		if v, ok := f.movements.Value(rec); ok {
			order.Movements = Movements(v, loc)
		}
		if order.ID == "" {
			order.ID = nthSyntheticID(SyntheticID(rec), seen)
			order.SyntheticID = true
		}
		out = append(out, order)
	}
	return out, skipped
}

// SyntheticID derives a stable identifier from the record content, so the same
// row always lands in the same singleton group.
func SyntheticID(rec model.RawRecord) string {
	payload, err := json.Marshal(rec)
	if err != nil {
		keys := make([]string, 0, len(rec))
		for k, v := range rec {
			keys = append(keys, k+"="+stringify(v))
		}
		sort.Strings(keys)
		payload = []byte(strings.Join(keys, "&"))
	}
	return uuid.NewSHA1(syntheticOrderSpace, payload).String()
}

// nthSyntheticID keeps identical rows apart: the first copy keeps the content
// id and later copies are salted with their ordinal.
func nthSyntheticID(base string, seen map[string]int) string {
	n := seen[base]
	seen[base] = n + 1
	if n == 0 {
		return base
	}
	return uuid.NewSHA1(syntheticOrderSpace, []byte(base+"#"+strconv.Itoa(n))).String()
}

// Movements accepts a JSON string, raw bytes, or an already decoded array.
func Movements(v any, loc *time.Location) []model.Movement {
	items := movementItems(v)
	if len(items) == 0 {
		return nil
	}
	out := make([]model.Movement, 0, len(items))
	for _, item := range items {
		rec, ok := asRecord(item)
		if !ok {
			continue
		}
		mv := model.Movement{
			Stage: movementFields.stage.String(rec),
			At:    movementFields.at.Time(rec, loc),
		}
		if raw, ok := movementFields.elapsed.Value(rec); ok {
			if minutes, ok := parseFloat(raw); ok {
				mv.ElapsedMinutes = &minutes
				mv.Elapsed = normalize.FormatMinutes(minutes)
			}
		}
		out = append(out, mv)
	}
	return out
}

func movementItems(v any) []any {
	switch val := v.(type) {
	case []any:
		return val
	case []map[string]any:
		items := make([]any, 0, len(val))
		for _, m := range val {
			items = append(items, m)
		}
		return items
	case []model.RawRecord:
		items := make([]any, 0, len(val))
		for _, m := range val {
			items = append(items, m)
		}
		return items
	case string:
		return decodeArray([]byte(val))
	case []byte:
		return decodeArray(val)
	case interface{ MarshalJSON() ([]byte, error) }:
		payload, err := val.MarshalJSON()
		if err != nil {
			return nil
		}
		return decodeArray(payload)
	}
	return nil
}

func decodeArray(payload []byte) []any {
	var items []any
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil
	}
	return items
}

func asRecord(v any) (model.RawRecord, bool) {
	switch m := v.(type) {
	case map[string]any:
		return model.RawRecord(m), true
	case model.RawRecord:
		return m, true
	}
	return nil, false
}

func parseFloat(v any) (float64, bool) {
	if f, ok := normalize.Float(v); ok {
		return f, true
	}
	if s, ok := v.(string); ok {
		f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
		return f, err == nil
	}
	return 0, false
}

func Contracts(rows []model.RawRecord, loc *time.Location) ([]model.RentalContract, int) {
	out := make([]model.RentalContract, 0, len(rows))
	skipped := 0
	f := contractFields
	for _, rec := range rows {
		plate, key := plateOf(rec)
		if key == "" {
			skipped++
			continue
		}
		out = append(out, model.RentalContract{
			ID:             f.id.String(rec),
			Plate:          plate,
			PlateKey:       key,
			Model:          modelField.String(rec),
			Client:         f.client.String(rec),
			StartAt:        f.startAt.Time(rec, loc),
			ScheduledEndAt: f.scheduledEndAt.Time(rec, loc),
			ActualEndAt:    f.actualEndAt.Time(rec, loc),
			MonthlyValue:   f.monthlyValue.Money(rec),
			TenorMonths:    f.tenor.Int(rec),
		})
	}
	return out, skipped
}

func Accidents(rows []model.RawRecord, loc *time.Location) ([]model.Accident, int) {
	out := make([]model.Accident, 0, len(rows))
	skipped := 0
	f := accidentFields
	for _, rec := range rows {
		plate, key := plateOf(rec)
		if key == "" {
			skipped++
			continue
		}
		out = append(out, model.Accident{
			ID:          f.id.String(rec),
			Plate:       plate,
			PlateKey:    key,
			Description: f.description.String(rec),
			OpenedAt:    f.openedAt.Time(rec, loc),
			ClosedAt:    f.closedAt.Time(rec, loc),
			Amount:      f.amount.Money(rec),
		})
	}
	return out, skipped
}

func Fines(rows []model.RawRecord, loc *time.Location) ([]model.Fine, int) {
	out := make([]model.Fine, 0, len(rows))
	skipped := 0
	f := fineFields
	for _, rec := range rows {
		plate, key := plateOf(rec)
		if key == "" {
			skipped++
			continue
		}
		out = append(out, model.Fine{
			ID:           f.id.String(rec),
			Plate:        plate,
			PlateKey:     key,
			Description:  f.description.String(rec),
			InfractionAt: f.infractionAt.Time(rec, loc),
			Amount:       f.amount.Money(rec),
		})
	}
	return out, skipped
}

func Events(rows []model.RawRecord, loc *time.Location) ([]model.TimelineEvent, int) {
	out := make([]model.TimelineEvent, 0, len(rows))
	skipped := 0
	f := eventFields
	for _, rec := range rows {
		plate, key := plateOf(rec)
		if key == "" {
			skipped++
			continue
		}
		kind := model.EventType(normalize.Token(f.kind.String(rec)))
		if kind == "" {
			kind = model.EventOther
		}
		out = append(out, model.TimelineEvent{
			Plate:       plate,
			PlateKey:    key,
			Model:       modelField.String(rec),
			Type:        kind,
			At:          f.at.Time(rec, loc),
			Description: f.description.String(rec),
			Detail:      f.detail.String(rec),
		})
	}
	return out, skipped
}
