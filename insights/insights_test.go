package insights

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supplyboard/config"
	"supplyboard/metrics"
	"supplyboard/models"
)

func intPtr(n int) *int { return &n }

func composeOver(t *testing.T, titles []models.Title) []string {
	t.Helper()
	opts := config.Default()
	kpis := metrics.NewCalculator(opts).KPIs(titles)
	return Compose(titles, kpis, opts)
}

func TestCompose(t *testing.T) {
	titles := []models.Title{
		{Type: models.TypeMovie, MainCountry: "United States", ReleaseYear: intPtr(2020), RatingGroup: models.RatingMature, ListedIn: "Dramas"},
		{Type: models.TypeMovie, MainCountry: "France", ReleaseYear: intPtr(2015), RatingGroup: models.RatingFamily, ListedIn: "Comedies"},
		{Type: models.TypeTVShow, MainCountry: "India", ReleaseYear: intPtr(2021), RatingGroup: models.RatingMature, Seasons: intPtr(1), ListedIn: "International TV Shows"},
		{Type: models.TypeTVShow, MainCountry: "Japan", ReleaseYear: intPtr(2010), RatingGroup: models.RatingTeen, Seasons: intPtr(3), ListedIn: "Anime Series"},
	}

	sentences := composeOver(t, titles)
	require.Len(t, sentences, 10)

	t.Run("format shares", func(t *testing.T) {
		assert.Contains(t, sentences[0], "50.0%")
		assert.Contains(t, sentences[1], "50.0%")
	})

	t.Run("us share", func(t *testing.T) {
		assert.Contains(t, sentences[2], "25.0%")
		assert.Contains(t, sentences[2], "United States")
	})

	t.Run("international share", func(t *testing.T) {
		assert.Contains(t, sentences[3], "25.0%")
	})

	t.Run("mature share and its complement", func(t *testing.T) {
		assert.Contains(t, sentences[4], "50.0%")
		assert.Contains(t, sentences[9], "50.0%")
	})

	t.Run("single season share over tv count only", func(t *testing.T) {
		// one of two TV shows is a single-season run
		assert.Contains(t, sentences[5], "50.0%")
	})

	t.Run("fresh release share uses the 2018 threshold", func(t *testing.T) {
		// 2020 and 2021 of four titles
		assert.Contains(t, sentences[6], "50.0%")
		assert.Contains(t, sentences[6], "2018")
	})

	t.Run("median release year picks element at n over two", func(t *testing.T) {
		// sorted years 2010 2015 2020 2021, index 2
		assert.Contains(t, sentences[7], "2020")
	})
}

func TestComposeEdgeCases(t *testing.T) {
	t.Run("empty subset yields the single no data notice", func(t *testing.T) {
		sentences := composeOver(t, nil)
		require.Len(t, sentences, 1)
		assert.Equal(t, NoDataNotice, sentences[0])
	})

	t.Run("no tv shows keeps the single season share at zero", func(t *testing.T) {
		sentences := composeOver(t, []models.Title{
			{Type: models.TypeMovie, ReleaseYear: intPtr(2020)},
		})
		require.Len(t, sentences, 10)
		assert.True(t, strings.HasPrefix(sentences[5], "0.0%"))
	})

	t.Run("subset with no parsed years reports a zero median", func(t *testing.T) {
		sentences := composeOver(t, []models.Title{{Type: models.TypeMovie}})
		assert.Contains(t, sentences[7], "0")
	})
}
