package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-timeline-service/internal/model"
)

func order(id string, entry, exit *time.Time) model.MaintenanceOrder {
	return model.MaintenanceOrder{ID: id, Plate: "ABC1234", PlateKey: "ABC1234", EntryAt: entry, ExitAt: exit}
}

func TestBuildMaintenanceIntervals_GapKeepsStaysApart(t *testing.T) {
	orders := []model.MaintenanceOrder{
		order("OS-2", ptr(at(2024, 1, 15, 0)), ptr(at(2024, 1, 20, 0))),
		order("OS-1", ptr(at(2024, 1, 1, 0)), ptr(at(2024, 1, 5, 0))),
	}

	intervals := BuildMaintenanceIntervals(orders, at(2024, 3, 1, 0))
	require.Len(t, intervals, 2)
	assert.Equal(t, at(2024, 1, 1, 0), intervals[0].Start)
	assert.Equal(t, 4, intervals[0].Days)
	assert.Equal(t, at(2024, 1, 15, 0), intervals[1].Start)
	assert.Equal(t, 5, intervals[1].Days)
}

func TestBuildMaintenanceIntervals_MergesWithinADay(t *testing.T) {
	orders := []model.MaintenanceOrder{
		order("OS-1", ptr(at(2024, 1, 1, 0)), ptr(at(2024, 1, 5, 0))),
		order("OS-2", ptr(at(2024, 1, 5, 12)), ptr(at(2024, 1, 8, 0))),
	}

	intervals := BuildMaintenanceIntervals(orders, at(2024, 3, 1, 0))
	require.Len(t, intervals, 1)
	require.NotNil(t, intervals[0].End)
	assert.Equal(t, at(2024, 1, 8, 0), *intervals[0].End)
	assert.Len(t, intervals[0].Orders, 2)
	assert.Equal(t, 7, intervals[0].Days)
}

func TestBuildMaintenanceIntervals_OpenStaysOpen(t *testing.T) {
	orders := []model.MaintenanceOrder{
		order("OS-1", ptr(at(2024, 5, 1, 0)), nil),
		order("OS-2", ptr(at(2024, 5, 2, 0)), ptr(at(2024, 5, 3, 0))),
		order("OS-3", nil, nil),
	}

	intervals := BuildMaintenanceIntervals(orders, at(2024, 5, 10, 0))
	require.Len(t, intervals, 1)
	assert.True(t, intervals[0].Open())
	assert.Nil(t, intervals[0].End)
	assert.Equal(t, 9, intervals[0].Days)
	assert.Equal(t, "9 d", intervals[0].Duration)
}

func TestBuildMaintenanceIntervals_Empty(t *testing.T) {
	assert.Empty(t, BuildMaintenanceIntervals(nil, at(2024, 1, 1, 0)))
}

func TestGroupMaintenanceByOccurrence(t *testing.T) {
	first := model.MaintenanceOrder{
		ID: "OS-1", OccurrenceID: "OC-1", Plate: "ABC-1234", PlateKey: "ABC1234",
		OpenedAt:  ptr(at(2024, 5, 1, 0)),
		ArrivalAt: ptr(at(2024, 5, 3, 0)),
		ClosedAt:  ptr(at(2024, 5, 5, 0)),
		Cost:      money(100),
		Movements: []model.Movement{
			{Stage: "Aguardando Chegada", At: ptr(at(2024, 5, 2, 10))},
		},
	}
	second := model.MaintenanceOrder{
		ID: "OS-2", OccurrenceID: "OC-1", Plate: "ABC-1234", PlateKey: "ABC1234",
		EntryAt:  ptr(at(2024, 5, 3, 0)),
		PickupAt: ptr(at(2024, 5, 6, 0)),
		ClosedAt: ptr(at(2024, 5, 7, 0)),
		Cost:     money(50.25),
	}
	single := model.MaintenanceOrder{ID: "OS-9", Plate: "ABC-1234", PlateKey: "ABC1234", EntryAt: ptr(at(2024, 6, 1, 0))}
	dateless := model.MaintenanceOrder{ID: "OS-10", OccurrenceID: "OC-2", PlateKey: "ABC1234"}

	occurrences := GroupMaintenanceByOccurrence([]model.MaintenanceOrder{second, dateless, single, first}, at(2024, 7, 1, 0))
	require.Len(t, occurrences, 2)

	assert.Equal(t, "os:OS-9", occurrences[0].Key)
	assert.Equal(t, 30, occurrences[0].StayDays)
	assert.Equal(t, "1 m", occurrences[0].StayDuration)

	occ := occurrences[1]
	assert.Equal(t, "oc:OC-1", occ.Key)
	assert.Equal(t, at(2024, 5, 1, 0), occ.Date)
	require.Len(t, occ.Orders, 2)
	assert.Equal(t, "OS-1", occ.Orders[0].ID)
	require.NotNil(t, occ.ArrivalAt)
	assert.Equal(t, at(2024, 5, 2, 10), *occ.ArrivalAt)
	require.NotNil(t, occ.PickupAt)
	assert.Equal(t, at(2024, 5, 6, 0), *occ.PickupAt)
	require.NotNil(t, occ.ClosedAt)
	assert.Equal(t, at(2024, 5, 7, 0), *occ.ClosedAt)
	assert.InDelta(t, 150.25, occ.Cost, 1e-9)
	assert.Equal(t, 4, occ.StayDays)
	assert.Len(t, occ.Movements, 1)
}

func TestGroupMaintenanceByOccurrence_DuplicateRowsStayApart(t *testing.T) {
	o := model.MaintenanceOrder{PlateKey: "ABC1234", EntryAt: ptr(at(2024, 6, 1, 0)), Cost: money(100)}

	occurrences := GroupMaintenanceByOccurrence([]model.MaintenanceOrder{o, o}, at(2024, 7, 1, 0))
	require.Len(t, occurrences, 2)
	assert.NotEqual(t, occurrences[0].Key, occurrences[1].Key)
	for _, occ := range occurrences {
		assert.Len(t, occ.Orders, 1)
		assert.Equal(t, 100.0, occ.Cost)
	}

	again := GroupMaintenanceByOccurrence([]model.MaintenanceOrder{o, o}, at(2024, 7, 1, 0))
	assert.Equal(t, occurrences, again)
}

func TestGroupMaintenanceByOccurrence_SyntheticKeyIsDeterministic(t *testing.T) {
	o := model.MaintenanceOrder{PlateKey: "ABC1234", EntryAt: ptr(at(2024, 6, 1, 0))}

	a := GroupMaintenanceByOccurrence([]model.MaintenanceOrder{o}, at(2024, 7, 1, 0))
	b := GroupMaintenanceByOccurrence([]model.MaintenanceOrder{o}, at(2024, 7, 1, 0))
	require.Len(t, a, 1)
	assert.Equal(t, a[0].Key, b[0].Key)
	assert.Equal(t, "os:ABC1234:2024-06-01T00:00:00Z", a[0].Key)
}
