package timeline

import (
	"sort"
	"time"

	"fleet-timeline-service/internal/model"
	"fleet-timeline-service/internal/normalize"
)

// Index groups every fact kind by plate key. It is rebuilt from scratch for each
// computation and is read-only once built.
type Index struct {
	Vehicles    map[string]model.Vehicle
	Maintenance map[string][]model.MaintenanceOrder
	Contracts   map[string][]model.RentalContract
	Accidents   map[string][]model.Accident
	Fines       map[string][]model.Fine
}

func BuildIndex(facts model.Facts) *Index {
	idx := &Index{
		Vehicles:    make(map[string]model.Vehicle, len(facts.Vehicles)),
		Maintenance: make(map[string][]model.MaintenanceOrder),
		Contracts:   make(map[string][]model.RentalContract),
		Accidents:   make(map[string][]model.Accident),
		Fines:       make(map[string][]model.Fine),
	}

	for _, v := range facts.Vehicles {
		if v.PlateKey == "" {
			continue
		}
		if _, exists := idx.Vehicles[v.PlateKey]; !exists {
			idx.Vehicles[v.PlateKey] = v
		}
	}
	for _, o := range facts.Maintenance {
		if o.PlateKey != "" {
			idx.Maintenance[o.PlateKey] = append(idx.Maintenance[o.PlateKey], o)
		}
	}
	for _, c := range facts.Contracts {
		if c.PlateKey != "" {
			idx.Contracts[c.PlateKey] = append(idx.Contracts[c.PlateKey], c)
		}
	}
	for _, a := range facts.Accidents {
		if a.PlateKey != "" {
			idx.Accidents[a.PlateKey] = append(idx.Accidents[a.PlateKey], a)
		}
	}
	for _, f := range facts.Fines {
		if f.PlateKey != "" {
			idx.Fines[f.PlateKey] = append(idx.Fines[f.PlateKey], f)
		}
	}

	for _, list := range idx.Maintenance {
		sort.SliceStable(list, func(i, j int) bool { return newerFirst(list[i].EntryAt, list[j].EntryAt) })
	}
	for _, list := range idx.Contracts {
		sort.SliceStable(list, func(i, j int) bool { return newerFirst(list[i].StartAt, list[j].StartAt) })
	}
	for _, list := range idx.Accidents {
		sort.SliceStable(list, func(i, j int) bool { return newerFirst(list[i].OpenedAt, list[j].OpenedAt) })
	}
	for _, list := range idx.Fines {
		sort.SliceStable(list, func(i, j int) bool { return newerFirst(list[i].InfractionAt, list[j].InfractionAt) })
	}

	return idx
}

// HasPlate reports whether any fact kind mentions the plate key.
func (idx *Index) HasPlate(key string) bool {
	if _, ok := idx.Vehicles[key]; ok {
		return true
	}
	return len(idx.Maintenance[key]) > 0 || len(idx.Contracts[key]) > 0 ||
		len(idx.Accidents[key]) > 0 || len(idx.Fines[key]) > 0
}

// ResolveContract finds the rental contract active for plate at the given time.
// A zero time yields the newest contract. When no contract interval contains
// at, the most recent contract started before it wins, then the newest overall.
func (idx *Index) ResolveContract(plate string, at time.Time) *model.RentalContract {
	list := idx.Contracts[normalize.PlateKey(plate)]
	if len(list) == 0 {
		return nil
	}
	if at.IsZero() {
		return contractCopy(list[0])
	}

	for _, c := range list {
		if c.Contains(at) {
			return contractCopy(c)
		}
	}
	for _, c := range list {
		if c.StartAt != nil && !c.StartAt.After(at) {
			return contractCopy(c)
		}
	}
	return contractCopy(list[0])
}

func contractCopy(c model.RentalContract) *model.RentalContract {
	return &c
}

// newerFirst orders dated entries newest first and pushes undated ones last.
func newerFirst(a, b *time.Time) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	default:
		return a.After(*b)
	}
}
