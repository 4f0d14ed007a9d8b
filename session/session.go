package session

import (
	"io"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"

	"supplyboard/config"
	"supplyboard/export"
	"supplyboard/filter"
	"supplyboard/ingest"
	"supplyboard/insights"
	"supplyboard/metrics"
	"supplyboard/models"
	"supplyboard/storage"
	"supplyboard/transformer"
)

// Snapshot is what the presentation layer renders after any state
// change: the active filters, the aggregate bundle over the filtered
// subset and the narrative insight list.
type Snapshot struct {
	LoadID        string               `json:"load_id"`
	Filters       models.FilterState   `json:"filters"`
	View          models.AggregateView `json:"view"`
	Insights      []string             `json:"insights"`
	FilteredCount int                  `json:"filtered_count"`
	TotalCount    int                  `json:"total_count"`
	ReleaseBounds *models.YearRange    `json:"release_bounds,omitempty"`
	AddedBounds   *models.YearRange    `json:"added_bounds,omitempty"`
}

// Session wires ingestion, normalization, filtering and aggregation
// around one in-memory record set. All its operations run inline and
// to completion; state only ever changes through Load and the filter
// setters.
type Session struct {
	opts        config.Options
	logger      *logrus.Logger
	reader      *ingest.Reader
	transformer *transformer.Transformer
	store       *storage.MemoryStore
	calculator  *metrics.Calculator
	exporter    *export.Exporter
	onChange    func(Snapshot)
}

func New(opts config.Options, logger *logrus.Logger) *Session {
	return &Session{
		opts:        opts,
		logger:      logger,
		reader:      ingest.NewReader(logger),
		transformer: transformer.New(logger),
		store:       storage.NewMemoryStore(),
		calculator:  metrics.NewCalculator(opts),
		exporter:    export.NewExporter(logger),
	}
}

// OnChange registers the presentation callback invoked with a fresh
// snapshot after every successful load and every filter change
func (s *Session) OnChange(fn func(Snapshot)) {
	s.onChange = fn
}

// Load ingests a new document, normalizes it and commits it together
// with filters derived from the new data. On a parse error the
// previously committed set stays active and usable.
func (s *Session) Load(src io.Reader) (Snapshot, error) {
	rows, err := s.reader.Parse(src)
	if err != nil {
		s.logger.WithError(err).Error("Load failed, keeping previous record set")
		return Snapshot{}, err
	}

	titles := s.transformer.Normalize(rows)
	loadID := s.store.Commit(titles, DefaultFilters())

	s.logger.WithFields(logrus.Fields{
		"load_id": loadID,
		"titles":  len(titles),
	}).Info("Committed new record set")
	return s.notify(), nil
}

// SetFilters replaces the filter state wholesale and recomputes
func (s *Session) SetFilters(filters models.FilterState) Snapshot {
	s.store.SetFilters(filters)
	return s.notify()
}

// ResetFilters restores the match-all default state
func (s *Session) ResetFilters() Snapshot {
	s.store.SetFilters(DefaultFilters())
	return s.notify()
}

// Filters returns the active filter state
func (s *Session) Filters() models.FilterState {
	return s.store.Filters()
}

// Snapshot recomputes the aggregate view and insights over the current
// filtered subset
func (s *Session) Snapshot() Snapshot {
	titles := s.store.Titles()
	filters := s.store.Filters()
	subset := filter.Apply(titles, filters)
	view := s.calculator.View(subset)
	release, added := DataBounds(titles)

	return Snapshot{
		LoadID:        s.store.LoadID(),
		Filters:       filters,
		View:          view,
		Insights:      insights.Compose(subset, view.KPIs, s.opts),
		FilteredCount: len(subset),
		TotalCount:    len(titles),
		ReleaseBounds: release,
		AddedBounds:   added,
	}
}

// MarshalSnapshot encodes the current snapshot as JSON for
// presentation layers on the far side of a process boundary
func (s *Session) MarshalSnapshot() ([]byte, error) {
	return json.Marshal(s.Snapshot())
}

// Export writes the current filtered subset, derived columns included
func (s *Session) Export(w io.Writer) error {
	subset := filter.Apply(s.store.Titles(), s.store.Filters())
	return s.exporter.Write(w, subset)
}

func (s *Session) notify() Snapshot {
	snapshot := s.Snapshot()
	if s.onChange != nil {
		s.onChange(snapshot)
	}
	return snapshot
}

// DefaultFilters is the match-all state: every dimension unrestricted.
// Bounded year ranges would drop titles whose year never parsed, so
// defaults stay unbounded and the slider bounds travel separately.
func DefaultFilters() models.FilterState {
	return models.FilterState{Type: models.TypeAll}
}

// DataBounds reports the observed year spans of a record set, for the
// presentation layer to seed its range controls from
func DataBounds(titles []models.Title) (release, added *models.YearRange) {
	for _, t := range titles {
		release = widen(release, t.ReleaseYear)
		added = widen(added, t.AddedYear)
	}
	return release, added
}

func widen(r *models.YearRange, year *int) *models.YearRange {
	if year == nil {
		return r
	}
	if r == nil {
		return &models.YearRange{Min: *year, Max: *year}
	}
	if *year < r.Min {
		r.Min = *year
	}
	if *year > r.Max {
		r.Max = *year
	}
	return r
}
