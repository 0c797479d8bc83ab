package timeline

import (
	"math"

	"fleet-timeline-service/internal/model"
)

// Range is an inclusive [Min, Max] slot. Ranges are checked in order and the
// first match wins, so a shared boundary belongs to the lower slot.
type Range struct {
	Name string
	Min  float64
	Max  float64
}

var (
	RentedDayRanges = []Range{
		{Name: "0-30 d", Min: 0, Max: 30},
		{Name: "31-90 d", Min: 30, Max: 90},
		{Name: "91-180 d", Min: 90, Max: 180},
		{Name: "181-365 d", Min: 180, Max: 365},
		{Name: "1-2 anos", Min: 365, Max: 730},
		{Name: "> 2 anos", Min: 730, Max: math.Inf(1)},
	}

	MaintenanceDayRanges = []Range{
		{Name: "0 d", Min: 0, Max: 0},
		{Name: "1-7 d", Min: 0, Max: 7},
		{Name: "8-15 d", Min: 7, Max: 15},
		{Name: "16-30 d", Min: 15, Max: 30},
		{Name: "31-60 d", Min: 30, Max: 60},
		{Name: "61-90 d", Min: 60, Max: 90},
		{Name: "> 90 d", Min: 90, Max: math.Inf(1)},
	}

	UtilizationRanges = []Range{
		{Name: "0-20%", Min: 0, Max: 20},
		{Name: "21-40%", Min: 20, Max: 40},
		{Name: "41-60%", Min: 40, Max: 60},
		{Name: "61-80%", Min: 60, Max: 80},
		{Name: "81-100%", Min: 80, Max: math.Inf(1)},
	}
)

// Bucketize counts values per range. NaN and infinite values are not counted,
// negatives are read as zero, and empty buckets are left out.
func Bucketize(values []float64, ranges []Range) []model.HistogramBucket {
	counts := make([]int, len(ranges))
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if v < 0 {
			v = 0
		}
		for i, r := range ranges {
			if v >= r.Min && v <= r.Max {
				counts[i]++
				break
			}
		}
	}

	buckets := make([]model.HistogramBucket, 0, len(ranges))
	for i, r := range ranges {
		if counts[i] == 0 {
			continue
		}
		buckets = append(buckets, model.HistogramBucket{Name: r.Name, Count: counts[i]})
	}
	return buckets
}

func BuildDistributions(rows []model.VehicleTimelineSummary) model.Distributions {
	rented := make([]float64, 0, len(rows))
	maintenance := make([]float64, 0, len(rows))
	util := make([]float64, 0, len(rows))
	for _, r := range rows {
		rented = append(rented, r.RentedDays)
		maintenance = append(maintenance, r.MaintenanceDays)
		util = append(util, r.UtilizationPct)
	}
	return model.Distributions{
		RentedDays:      Bucketize(rented, RentedDayRanges),
		MaintenanceDays: Bucketize(maintenance, MaintenanceDayRanges),
		Utilization:     Bucketize(util, UtilizationRanges),
	}
}
