package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"fleet-timeline-service/internal/config"
	"fleet-timeline-service/internal/ingest"
	"fleet-timeline-service/internal/model"
	"fleet-timeline-service/internal/normalize"
	"fleet-timeline-service/internal/timeline"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

// FactSource hands back one named collection of loosely typed records. A
// collection that does not exist is empty, not an error.
type FactSource interface {
	Collection(ctx context.Context, name string) ([]model.RawRecord, error)
}

// PlateSource is implemented by stores that can read one vehicle's rows
// without scanning the whole collection.
type PlateSource interface {
	PlateCollection(ctx context.Context, name, plateKey string) ([]model.RawRecord, error)
}

type TimelineService struct {
	source      FactSource
	collections config.CollectionConfig
	loc         *time.Location
	delimiter   rune
	now         func() time.Time
	log         zerolog.Logger
}

func NewTimelineService(source FactSource, collections config.CollectionConfig, loc *time.Location, delimiter rune, log zerolog.Logger) *TimelineService {
	if loc == nil {
		loc = time.Local
	}
	return &TimelineService{
		source:      source,
		collections: collections,
		loc:         loc,
		delimiter:   delimiter,
		now:         time.Now,
		log:         log,
	}
}

// WithClock replaces the clock used as "now" by every computation.
func (s *TimelineService) WithClock(now func() time.Time) *TimelineService {
	s.now = now
	return s
}

func (s *TimelineService) Timeline(ctx context.Context, filter model.TimelineFilter) (*model.TimelineReport, error) {
	filter, err := s.prepareFilter(filter)
	if err != nil {
		return nil, err
	}
	facts, err := s.loadFacts(ctx, "")
	if err != nil {
		return nil, err
	}

	report := timeline.BuildReport(facts, filter, s.clock())
	s.log.Debug().
		Int("vehicles", len(report.Vehicles)).
		Int("events", len(facts.Events)).
		Str("sort", string(filter.Sort())).
		Msg("timeline built")
	return &report, nil
}

func (s *TimelineService) Distributions(ctx context.Context, filter model.TimelineFilter) (*model.Distributions, error) {
	report, err := s.Timeline(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &report.Distributions, nil
}

func (s *TimelineService) VehicleDetail(ctx context.Context, plate string) (*model.VehicleDetail, error) {
	key := normalize.PlateKey(plate)
	if key == "" {
		return nil, fmt.Errorf("%w: plate is required", ErrInvalidInput)
	}
	facts, err := s.loadFacts(ctx, key)
	if err != nil {
		return nil, err
	}

	detail, ok := timeline.BuildVehicleDetail(facts, plate, s.clock())
	if !ok {
		return nil, ErrNotFound
	}
	return &detail, nil
}

// ResolveContract returns the contract active for plate at the given moment. A
// zero at means the current time.
func (s *TimelineService) ResolveContract(ctx context.Context, plate string, at time.Time) (*model.RentalContract, error) {
	key := normalize.PlateKey(plate)
	if key == "" {
		return nil, fmt.Errorf("%w: plate is required", ErrInvalidInput)
	}
	rows, err := s.collection(ctx, s.collections.Contracts, key)
	if err != nil {
		return nil, err
	}
	contracts, _ := ingest.Contracts(rows, s.loc)
	if at.IsZero() {
		at = s.clock()
	}

	contract := timeline.BuildIndex(model.Facts{Contracts: contracts}).ResolveContract(key, at)
	if contract == nil {
		return nil, ErrNotFound
	}
	return contract, nil
}

func (s *TimelineService) Export(ctx context.Context, filter model.TimelineFilter, w io.Writer) error {
	report, err := s.Timeline(ctx, filter)
	if err != nil {
		return err
	}
	if err := timeline.WriteCSV(w, report.Vehicles, s.delimiter); err != nil {
		return fmt.Errorf("export csv: %w", err)
	}
	return nil
}

func (s *TimelineService) prepareFilter(filter model.TimelineFilter) (model.TimelineFilter, error) {
	if filter.SortBy != "" && filter.Sort() != filter.SortBy {
		return filter, fmt.Errorf("%w: unknown sort %q", ErrInvalidInput, filter.SortBy)
	}
	return filter.ClampRange(), nil
}

// loadFacts reads every collection. A non-empty plateKey lets a PlateSource
// narrow the reads to that vehicle.
func (s *TimelineService) loadFacts(ctx context.Context, plateKey string) (model.Facts, error) {
	var raw model.RawFacts
	targets := []struct {
		name string
		dst  *[]model.RawRecord
	}{
		{s.collections.Vehicles, &raw.Vehicles},
		{s.collections.Contracts, &raw.Contracts},
		{s.collections.Maintenance, &raw.Maintenance},
		{s.collections.Accidents, &raw.Accidents},
		{s.collections.Fines, &raw.Fines},
		{s.collections.Events, &raw.Events},
	}

	for _, target := range targets {
		if target.name == "" {
			continue
		}
		rows, err := s.collection(ctx, target.name, plateKey)
		if err != nil {
			return model.Facts{}, err
		}
		*target.dst = rows
	}

	facts, stats := ingest.Facts(raw, s.loc)
	if skipped := stats.Total(); skipped > 0 {
		event := s.log.Warn().Int("skipped", skipped)
		for kind, n := range stats.Skipped {
			event = event.Int(kind, n)
		}
		event.Msg("records without a plate were skipped")
	}
	return facts, nil
}

func (s *TimelineService) collection(ctx context.Context, name, plateKey string) ([]model.RawRecord, error) {
	if name == "" {
		return nil, nil
	}

	var rows []model.RawRecord
	var err error
	if scoped, ok := s.source.(PlateSource); ok && plateKey != "" {
		rows, err = scoped.PlateCollection(ctx, name, plateKey)
	} else {
		rows, err = s.source.Collection(ctx, name)
	}
	if err != nil {
		s.log.Error().Err(err).Str("collection", name).Str("plate_key", plateKey).Msg("failed to load collection")
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	return rows, nil
}

func (s *TimelineService) clock() time.Time {
	return s.now().In(s.loc)
}
