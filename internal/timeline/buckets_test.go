package timeline

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"fleet-timeline-service/internal/model"
)

func TestBucketize_RentedDays(t *testing.T) {
	got := Bucketize([]float64{0, 30, 30.5, 90, 1000, -5, math.NaN()}, RentedDayRanges)

	assert.Equal(t, []model.HistogramBucket{
		{Name: "0-30 d", Count: 3},
		{Name: "31-90 d", Count: 2},
		{Name: "> 2 anos", Count: 1},
	}, got)
}

func TestBucketize_MaintenanceZeroBucket(t *testing.T) {
	got := Bucketize([]float64{0, 0.5, 7, 91}, MaintenanceDayRanges)

	assert.Equal(t, []model.HistogramBucket{
		{Name: "0 d", Count: 1},
		{Name: "1-7 d", Count: 2},
		{Name: "> 90 d", Count: 1},
	}, got)
}

func TestBucketize_Empty(t *testing.T) {
	assert.Empty(t, Bucketize(nil, UtilizationRanges))
}

func TestBuildDistributions_CountsEveryVehicle(t *testing.T) {
	rows := []model.VehicleTimelineSummary{
		{PlateKey: "A", RentedDays: 10, MaintenanceDays: 0, UtilizationPct: 100},
		{PlateKey: "B", RentedDays: 400, MaintenanceDays: 12, UtilizationPct: 20},
		{PlateKey: "C", RentedDays: 0, MaintenanceDays: 95, UtilizationPct: 0},
	}

	dist := BuildDistributions(rows)
	for _, buckets := range [][]model.HistogramBucket{dist.RentedDays, dist.MaintenanceDays, dist.Utilization} {
		total := 0
		for _, b := range buckets {
			total += b.Count
		}
		assert.Equal(t, len(rows), total)
	}
	assert.Equal(t, []model.HistogramBucket{{Name: "0-20%", Count: 2}, {Name: "81-100%", Count: 1}}, dist.Utilization)
}
