package rental

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/i474232898/bike-rental-aggregation/internal/metrics"
)

// Service loads datasets from a source into a store and answers range
// queries against the latest snapshot.
type Service struct {
	store  Store
	source Source
}

// NewService creates a new Service.
func NewService(store Store, source Source) *Service {
	return &Service{
		store:  store,
		source: source,
	}
}

// Reload loads a fresh dataset and saves it as the latest snapshot. On failure the previous snapshot stays in place.
func (s *Service) Reload(ctx context.Context) (Snapshot, error) {
	if s.source == nil {
		return Snapshot{}, errors.New("no dataset source configured")
	}
	name := s.source.Name()
	logger := log.WithField("source", name)

	start := time.Now()
	ds, err := s.source.Load(ctx)
	if err != nil {
		metrics.Reloads.WithLabelValues(name, "error").Inc()
		logger.WithError(err).Error("dataset reload failed; keeping last good snapshot if any")
		return Snapshot{}, fmt.Errorf("reload from %s: %w", name, err)
	}

	snap := Snapshot{
		Version:  uuid.NewString(),
		Source:   name,
		LoadedAt: time.Now().UTC(),
		Dataset:  ds,
	}
	s.store.Save(snap)

	metrics.Reloads.WithLabelValues(name, "ok").Inc()
	metrics.DatasetRecords.Set(float64(ds.Len()))
	logger.WithFields(log.Fields{
		"version": snap.Version,
		"records": ds.Len(),
		"took":    time.Since(start),
	}).Info("dataset loaded")

	return snap, nil
}

// Latest delegates to the underlying store.
func (s *Service) Latest() (Snapshot, error) {
	return s.store.Latest()
}

// History returns the retained snapshots, newest first.
func (s *Service) History() []Snapshot {
	return s.store.History()
}

// Selection is the latest snapshot narrowed to a resolved date range.
type Selection struct {
	Snapshot Snapshot  `json:"-"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Dataset  *Dataset  `json:"-"`
}

// Select filters the latest snapshot to [start, end]. A zero bound defaults
// to the dataset's earliest or latest date.
func (s *Service) Select(start, end time.Time) (Selection, error) {
	snap, err := s.store.Latest()
	if err != nil {
		return Selection{}, err
	}

	lo, hi, ok := snap.Dataset.DateBounds()
	if start.IsZero() && ok {
		start = lo
	}
	if end.IsZero() && ok {
		end = hi
	}

	sel := Selection{
		Snapshot: snap,
		Start:    DateOf(start),
		End:      DateOf(end),
		Dataset:  FilterByDate(snap.Dataset, start, end),
	}
	if sel.Dataset.Len() == 0 {
		metrics.EmptyRanges.Inc()
	}
	return sel, nil
}

// Dashboard is every aggregate for one date range. When the range holds no
// records NoData is set and Summary and Clusters are nil.
type Dashboard struct {
	Version  string         `json:"version"`
	Start    time.Time      `json:"start"`
	End      time.Time      `json:"end"`
	Records  int            `json:"records"`
	NoData   bool           `json:"noData"`
	Summary  *Summary       `json:"summary,omitempty"`
	Hourly   []HourMeans    `json:"hourly"`
	Weekday  []WeekdayMeans `json:"weekday"`
	Clusters *ClusterResult `json:"clusters,omitempty"`
}

// Dashboard runs the filter and all aggregators over one snapshot.
func (s *Service) Dashboard(start, end time.Time) (Dashboard, error) {
	sel, err := s.Select(start, end)
	if err != nil {
		return Dashboard{}, err
	}
	return BuildDashboard(sel), nil
}

// BuildDashboard aggregates an already resolved selection.
func BuildDashboard(sel Selection) Dashboard {
	d := Dashboard{
		Version: sel.Snapshot.Version,
		Start:   sel.Start,
		End:     sel.End,
		Records: sel.Dataset.Len(),
		Hourly:  ByHour(sel.Dataset),
		Weekday: ByWeekday(sel.Dataset),
	}

	summary, err := Summarize(sel.Dataset)
	if errors.Is(err, ErrEmptyInput) {
		d.NoData = true
		return d
	}
	d.Summary = &summary

	if clusters, err := ByCluster(sel.Dataset); err == nil {
		d.Clusters = &clusters
	}
	return d
}
