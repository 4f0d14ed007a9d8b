package session

import (
	"bytes"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supplyboard/config"
	"supplyboard/ingest"
	"supplyboard/models"
)

const sampleDoc = `show_id,type,title,director,cast,country,date_added,release_year,rating,duration,listed_in,description
s1,Movie,Dick Johnson Is Dead,Kirsten Johnson,,United States,"September 25, 2021",2020,PG-13,90 min,Documentaries,As her father nears the end of his life...
s2,TV Show,Blood & Water,,,"South Africa, Nigeria","September 24, 2021",2021,TV-MA,2 Seasons,"International TV Shows, TV Dramas",After crossing paths at a party...
s3,TV Show,Ganglands,Julien Leclercq,,France,"September 24, 2021",2021,"1 Season",,"Crime TV Shows, International TV Shows",To protect his family...
s4,Movie,Sankofa,Haile Gerima,,"United States, Ghana","September 24, 2021",1993,TV-MA,125 min,"Dramas, Independent Movies",On a photo shoot in Ghana...
`

func newSession() *Session {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return New(config.Default(), logger)
}

func TestLoad(t *testing.T) {
	t.Run("commits the normalized set and reports a snapshot", func(t *testing.T) {
		s := newSession()
		snapshot, err := s.Load(strings.NewReader(sampleDoc))
		require.NoError(t, err)

		assert.NotEmpty(t, snapshot.LoadID)
		assert.Equal(t, 4, snapshot.TotalCount)
		assert.Equal(t, 4, snapshot.FilteredCount)
		assert.Equal(t, models.FormatMix{Movies: 2, TVShows: 2}, snapshot.View.Mix)
		assert.Len(t, snapshot.Insights, 10)

		require.NotNil(t, snapshot.ReleaseBounds)
		assert.Equal(t, models.YearRange{Min: 1993, Max: 2021}, *snapshot.ReleaseBounds)
		require.NotNil(t, snapshot.AddedBounds)
		assert.Equal(t, models.YearRange{Min: 2021, Max: 2021}, *snapshot.AddedBounds)
	})

	t.Run("repairs the shifted duration row during load", func(t *testing.T) {
		s := newSession()
		snapshot, err := s.Load(strings.NewReader(sampleDoc))
		require.NoError(t, err)

		// s3 carried "1 Season" in the rating column
		var buckets []string
		for _, b := range snapshot.View.Seasons {
			buckets = append(buckets, b.Label)
		}
		assert.Contains(t, buckets, "1 Season")
	})

	t.Run("parse failure keeps the previous set active", func(t *testing.T) {
		s := newSession()
		first, err := s.Load(strings.NewReader(sampleDoc))
		require.NoError(t, err)

		_, err = s.Load(strings.NewReader("show_id\n\"broken"))
		require.Error(t, err)
		var parseErr *ingest.ParseError
		assert.ErrorAs(t, err, &parseErr)

		current := s.Snapshot()
		assert.Equal(t, first.LoadID, current.LoadID)
		assert.Equal(t, 4, current.TotalCount)
	})
}

func TestFilterTransitions(t *testing.T) {
	s := newSession()
	_, err := s.Load(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	t.Run("set filters recomputes the subset", func(t *testing.T) {
		snapshot := s.SetFilters(models.FilterState{Type: models.TypeMovie})
		assert.Equal(t, 2, snapshot.FilteredCount)
		assert.Equal(t, 4, snapshot.TotalCount)
		assert.Equal(t, 100.0, snapshot.View.KPIs.MovieShare)
	})

	t.Run("empty subset is well defined end to end", func(t *testing.T) {
		snapshot := s.SetFilters(models.FilterState{
			Type:      models.TypeAll,
			Countries: []string{"Atlantis"},
		})
		assert.Equal(t, 0, snapshot.FilteredCount)
		assert.Equal(t, 0.0, snapshot.View.KPIs.MovieShare)
		assert.Empty(t, snapshot.View.TopCountries)
		require.Len(t, snapshot.Insights, 1)
	})

	t.Run("reset restores the match-all defaults", func(t *testing.T) {
		snapshot := s.ResetFilters()
		assert.Equal(t, 4, snapshot.FilteredCount)
		assert.Equal(t, models.TypeAll, s.Filters().Type)
		assert.Empty(t, s.Filters().Countries)
	})

	t.Run("change callback fires with the fresh snapshot", func(t *testing.T) {
		var seen []Snapshot
		s.OnChange(func(snap Snapshot) { seen = append(seen, snap) })

		s.SetFilters(models.FilterState{Type: models.TypeTVShow})
		require.Len(t, seen, 1)
		assert.Equal(t, 2, seen[0].FilteredCount)

		_, err := s.Load(strings.NewReader(sampleDoc))
		require.NoError(t, err)
		assert.Len(t, seen, 2)
	})
}

func TestExport(t *testing.T) {
	s := newSession()
	_, err := s.Load(strings.NewReader(sampleDoc))
	require.NoError(t, err)
	s.SetFilters(models.FilterState{Type: models.TypeMovie})

	var buf bytes.Buffer
	require.NoError(t, s.Export(&buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	// header plus the two movies
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[0], "rating_group")
}

func TestMarshalSnapshot(t *testing.T) {
	s := newSession()
	_, err := s.Load(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	payload, err := s.MarshalSnapshot()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Contains(t, decoded, "view")
	assert.Contains(t, decoded, "insights")
	assert.EqualValues(t, 4, decoded["total_count"])
}

func TestDataBounds(t *testing.T) {
	t.Run("empty set has no bounds", func(t *testing.T) {
		release, added := DataBounds(nil)
		assert.Nil(t, release)
		assert.Nil(t, added)
	})

	t.Run("bounds span only parsed years", func(t *testing.T) {
		year := 2015
		release, added := DataBounds([]models.Title{
			{ReleaseYear: &year},
			{}, // year never parsed
		})
		require.NotNil(t, release)
		assert.Equal(t, models.YearRange{Min: 2015, Max: 2015}, *release)
		assert.Nil(t, added)
	})
}
