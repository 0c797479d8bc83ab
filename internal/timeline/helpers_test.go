package timeline

import (
	"time"

	"fleet-timeline-service/internal/model"
)

func at(year int, month time.Month, d, hour int) time.Time {
	return time.Date(year, month, d, hour, 0, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time {
	return &t
}

func money(v float64) *float64 {
	return &v
}

func event(plate string, typ model.EventType, when *time.Time) model.TimelineEvent {
	return model.TimelineEvent{Plate: plate, PlateKey: plate, Type: typ, At: when}
}
