package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-timeline-service/internal/model"
)

func rentalScenario() (model.Facts, []model.TimelineEvent) {
	facts := model.Facts{
		Vehicles: []model.Vehicle{{Plate: "ABC-1234", PlateKey: "ABC1234", Model: "Onix", Status: "Locado"}},
		Contracts: []model.RentalContract{{
			ID: "C-1", Plate: "ABC-1234", PlateKey: "ABC1234",
			StartAt: ptr(at(2024, 1, 1, 0)), ScheduledEndAt: ptr(at(2024, 1, 31, 0)),
		}},
	}
	events := []model.TimelineEvent{
		event("ABC1234", model.EventRental, ptr(at(2024, 1, 1, 0))),
		event("ABC1234", model.EventReturn, ptr(at(2024, 1, 31, 0))),
		event("ABC1234", model.EventFine, nil),
	}
	return facts, events
}

func TestSummarize_RentalScenario(t *testing.T) {
	facts, events := rentalScenario()
	idx := BuildIndex(facts)

	rows := Summarize(events, idx, at(2024, 3, 1, 0))
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "ABC-1234", row.Plate)
	assert.Equal(t, "Onix", row.Model)
	assert.Equal(t, 2, row.TotalEvents)
	assert.Equal(t, 1, row.EventCounts[model.EventRental])
	assert.Equal(t, 1, row.EventCounts[model.EventReturn])
	assert.Zero(t, row.EventCounts[model.EventFine])
	assert.Equal(t, 30.0, row.RentedDays)
	assert.Equal(t, 60.0, row.ElapsedDays)
	assert.Equal(t, 50.0, row.UtilizationPct)
	assert.Equal(t, 60.0, row.IdleDays)
	assert.Equal(t, "2 m", row.IdleDuration)
	require.NotNil(t, row.FirstEventAt)
	assert.Equal(t, at(2024, 1, 1, 0), *row.FirstEventAt)
	assert.Nil(t, row.CurrentContract, "contract ended before now")
}

func TestSummarize_FutureEndCountsWholeContract(t *testing.T) {
	idx := BuildIndex(model.Facts{
		Contracts: []model.RentalContract{{
			ID: "C-1", PlateKey: "ABC1234",
			StartAt: ptr(at(2024, 1, 1, 0)), ScheduledEndAt: ptr(at(2024, 12, 31, 0)),
		}},
		Maintenance: []model.MaintenanceOrder{
			{ID: "OS-1", PlateKey: "ABC1234", EntryAt: ptr(at(2024, 2, 20, 0)), ExitAt: ptr(at(2024, 3, 10, 0))},
		},
	})
	events := []model.TimelineEvent{event("ABC1234", model.EventRental, ptr(at(2024, 1, 1, 0)))}

	rows := Summarize(events, idx, at(2024, 3, 1, 0))
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, 365.0, row.RentedDays)
	assert.Equal(t, 19.0, row.MaintenanceDays)
	assert.Equal(t, 100.0, row.UtilizationPct)
	assert.Equal(t, 0.0, row.IdleDays)
	require.NotNil(t, row.CurrentContract)
	assert.Equal(t, "C-1", row.CurrentContract.ID)
}

func TestSummarize_IsIdempotent(t *testing.T) {
	facts, events := rentalScenario()
	idx := BuildIndex(facts)
	now := at(2024, 3, 1, 0)

	assert.Equal(t, Summarize(events, idx, now), Summarize(events, idx, now))
}

func TestSummarize_UtilizationIsBounded(t *testing.T) {
	idx := BuildIndex(model.Facts{Contracts: []model.RentalContract{
		{ID: "C-1", PlateKey: "AAA1111", StartAt: ptr(at(2023, 1, 1, 0))},
		{ID: "C-2", PlateKey: "BBB2222", StartAt: ptr(at(2024, 2, 20, 0)), ScheduledEndAt: ptr(at(2024, 2, 10, 0))},
	}})
	events := []model.TimelineEvent{
		event("AAA1111", model.EventRental, ptr(at(2024, 2, 1, 0))),
		event("BBB2222", model.EventRental, ptr(at(2024, 2, 1, 0))),
		event("CCC3333", model.EventPurchase, ptr(at(2024, 3, 1, 0))),
	}

	rows := Summarize(events, idx, at(2024, 3, 1, 0))
	require.Len(t, rows, 3)
	for _, row := range rows {
		assert.GreaterOrEqual(t, row.UtilizationPct, 0.0, row.PlateKey)
		assert.LessOrEqual(t, row.UtilizationPct, 100.0, row.PlateKey)
		assert.GreaterOrEqual(t, row.ElapsedDays, 1.0, row.PlateKey)
		assert.GreaterOrEqual(t, row.IdleDays, 0.0, row.PlateKey)
	}

	byKey := map[string]model.VehicleTimelineSummary{}
	for _, row := range rows {
		byKey[row.PlateKey] = row
	}
	assert.Equal(t, 100.0, byKey["AAA1111"].UtilizationPct)
	assert.Equal(t, 0.0, byKey["BBB2222"].RentedDays)
	assert.Equal(t, 1.0, byKey["CCC3333"].ElapsedDays)
}

func TestSummarize_ModelFallsBackToOtherSources(t *testing.T) {
	idx := BuildIndex(model.Facts{Maintenance: []model.MaintenanceOrder{
		{ID: "OS-1", PlateKey: "ABC1234", Model: "Gol", EntryAt: ptr(at(2024, 1, 1, 0)), ExitAt: ptr(at(2024, 1, 3, 0))},
	}})

	rows := Summarize([]model.TimelineEvent{event("ABC1234", model.EventMaintenance, ptr(at(2024, 1, 1, 0)))}, idx, at(2024, 2, 1, 0))
	require.Len(t, rows, 1)
	assert.Equal(t, "Gol", rows[0].Model)
	assert.Equal(t, 2.0, rows[0].MaintenanceDays)
}

func TestFilterEvents(t *testing.T) {
	idx := BuildIndex(model.Facts{Vehicles: []model.Vehicle{
		{Plate: "ABC-1234", PlateKey: "ABC1234", Model: "Chevrolet Ônix"},
		{Plate: "XYZ-9876", PlateKey: "XYZ9876", Model: "VW Gol"},
	}})
	events := []model.TimelineEvent{
		event("ABC1234", model.EventRental, ptr(at(2024, 1, 10, 0))),
		event("ABC1234", model.EventFine, ptr(at(2024, 2, 10, 0))),
		event("ABC1234", model.EventMaintenance, nil),
		event("XYZ9876", model.EventRental, ptr(at(2024, 1, 15, 0))),
	}

	tests := []struct {
		name   string
		filter model.TimelineFilter
		want   int
	}{
		{"no filter keeps everything", model.TimelineFilter{}, 4},
		{"plate substring ignores punctuation", model.TimelineFilter{PlateQuery: "abc-12"}, 3},
		{"types", model.TimelineFilter{Types: []model.EventType{model.EventRental}}, 2},
		{"range drops undated", model.TimelineFilter{Range: model.DateRange{From: at(2024, 1, 1, 0), To: at(2024, 1, 31, 0)}}, 2},
		{"model ignores accents", model.TimelineFilter{ModelQuery: "onix"}, 3},
		{"combined", model.TimelineFilter{ModelQuery: "gol", Types: []model.EventType{model.EventFine}}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, FilterEvents(events, idx, tt.filter), tt.want)
		})
	}
}

func TestSortSummaries(t *testing.T) {
	rows := []model.VehicleTimelineSummary{
		{PlateKey: "CCC3333", TotalEvents: 1, RentedDays: 10},
		{PlateKey: "AAA1111", TotalEvents: 3, RentedDays: 10},
		{PlateKey: "BBB2222", TotalEvents: 3, RentedDays: 40},
	}

	SortSummaries(rows, model.SortByEvents)
	assert.Equal(t, []string{"AAA1111", "BBB2222", "CCC3333"}, plateKeys(rows))

	SortSummaries(rows, model.SortByRented)
	assert.Equal(t, []string{"BBB2222", "AAA1111", "CCC3333"}, plateKeys(rows))

	SortSummaries(rows, model.SortByPlate)
	assert.Equal(t, []string{"AAA1111", "BBB2222", "CCC3333"}, plateKeys(rows))
}

func plateKeys(rows []model.VehicleTimelineSummary) []string {
	keys := make([]string, 0, len(rows))
	for _, r := range rows {
		keys = append(keys, r.PlateKey)
	}
	return keys
}
