package metrics

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"supplyboard/config"
	"supplyboard/models"
)

// USCountry and InternationalTag drive the geography KPIs
const (
	USCountry        = "United States"
	InternationalTag = "International"
)

type Calculator struct {
	opts config.Options
}

func NewCalculator(opts config.Options) *Calculator {
	return &Calculator{opts: opts}
}

// View recomputes the full aggregate bundle over one filtered subset.
// Every series is independent; nothing here mutates shared state.
func (c *Calculator) View(titles []models.Title) models.AggregateView {
	return models.AggregateView{
		Mix:          c.FormatMix(titles),
		Trend:        c.TVShareTrend(titles),
		TopCountries: c.TopCountries(titles),
		TopGenres:    c.TopGenres(titles),
		Ratings:      c.RatingDistribution(titles),
		Seasons:      c.SeasonHistogram(titles),
		KPIs:         c.KPIs(titles),
	}
}

func (c *Calculator) FormatMix(titles []models.Title) models.FormatMix {
	mix := models.FormatMix{}
	for _, t := range titles {
		switch t.Type {
		case models.TypeMovie:
			mix.Movies++
		case models.TypeTVShow:
			mix.TVShows++
		}
	}
	return mix
}

// TVShareTrend reports, per release year above the trend floor, the
// percentage of that year's titles that are TV shows
func (c *Calculator) TVShareTrend(titles []models.Title) []models.TrendPoint {
	totals := map[int]int{}
	tv := map[int]int{}
	for _, t := range titles {
		if t.ReleaseYear == nil {
			continue
		}
		totals[*t.ReleaseYear]++
		if t.Type == models.TypeTVShow {
			tv[*t.ReleaseYear]++
		}
	}

	years := make([]int, 0, len(totals))
	for year := range totals {
		if year > c.opts.TrendFloorYear {
			years = append(years, year)
		}
	}
	sort.Ints(years)

	trend := make([]models.TrendPoint, 0, len(years))
	for _, year := range years {
		trend = append(trend, models.TrendPoint{
			Year:    year,
			TVShare: float64(tv[year]) / float64(totals[year]) * 100,
			Total:   totals[year],
		})
	}
	return trend
}

// TopCountries ranks main countries by count, ties kept in
// first-encountered order
func (c *Calculator) TopCountries(titles []models.Title) []models.CountryCount {
	counts := map[string]int{}
	var order []string
	for _, t := range titles {
		if _, seen := counts[t.MainCountry]; !seen {
			order = append(order, t.MainCountry)
		}
		counts[t.MainCountry]++
	}

	ranked := make([]models.CountryCount, 0, len(order))
	for _, country := range order {
		ranked = append(ranked, models.CountryCount{Country: country, Count: counts[country]})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Count > ranked[j].Count })
	if len(ranked) > c.opts.TopCountryLimit {
		ranked = ranked[:c.opts.TopCountryLimit]
	}
	return ranked
}

// TopGenres explodes every comma-separated genre tag: a title carrying
// three tags increments three counters, and a duplicated tag counts
// twice for that title.
func (c *Calculator) TopGenres(titles []models.Title) []models.GenreCount {
	counts := map[string]int{}
	var order []string
	for _, t := range titles {
		for _, tag := range strings.Split(t.ListedIn, ",") {
			genre := strings.TrimSpace(tag)
			if _, seen := counts[genre]; !seen {
				order = append(order, genre)
			}
			counts[genre]++
		}
	}

	ranked := make([]models.GenreCount, 0, len(order))
	for _, genre := range order {
		ranked = append(ranked, models.GenreCount{Genre: genre, Count: counts[genre]})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Count > ranked[j].Count })
	if len(ranked) > c.opts.TopGenreLimit {
		ranked = ranked[:c.opts.TopGenreLimit]
	}
	return ranked
}

// RatingDistribution counts titles per audience group in display
// order, dropping zero-count groups
func (c *Calculator) RatingDistribution(titles []models.Title) []models.RatingCount {
	counts := map[models.RatingGroup]int{}
	for _, t := range titles {
		counts[t.RatingGroup]++
	}

	dist := make([]models.RatingCount, 0, len(models.RatingGroups))
	for _, group := range models.RatingGroups {
		if counts[group] > 0 {
			dist = append(dist, models.RatingCount{Group: group, Count: counts[group]})
		}
	}
	return dist
}

// SeasonHistogram buckets TV shows by season count into 1..cap-1 and
// a single "cap+" overflow bucket
func (c *Calculator) SeasonHistogram(titles []models.Title) []models.SeasonBucket {
	limit := c.opts.SeasonBucketCap
	counts := make([]int, limit+1)
	for _, t := range titles {
		if t.Type != models.TypeTVShow || t.Seasons == nil {
			continue
		}
		bucket := *t.Seasons
		if bucket >= limit {
			bucket = limit
		}
		counts[bucket]++
	}

	var histogram []models.SeasonBucket
	for seasons := 1; seasons <= limit; seasons++ {
		if counts[seasons] == 0 {
			continue
		}
		histogram = append(histogram, models.SeasonBucket{
			Label: seasonLabel(seasons, limit),
			Count: counts[seasons],
		})
	}
	return histogram
}

func seasonLabel(seasons, limit int) string {
	if seasons >= limit {
		return fmt.Sprintf("%d+ Seasons", limit)
	}
	if seasons == 1 {
		return "1 Season"
	}
	return fmt.Sprintf("%d Seasons", seasons)
}

// KPIs derives the scalar summary values. All shares carry one decimal
// place and an empty subset reports zeros, never NaN.
func (c *Calculator) KPIs(titles []models.Title) models.KPISet {
	total := len(titles)
	kpis := models.KPISet{TotalTitles: total}

	recent := 0
	us := 0
	international := 0
	mature := 0
	releaseCounts := map[int]int{}
	addedCounts := map[int]int{}

	for _, t := range titles {
		switch t.Type {
		case models.TypeMovie:
			kpis.MovieCount++
		case models.TypeTVShow:
			kpis.TVCount++
		}
		if t.ReleaseYear != nil {
			releaseCounts[*t.ReleaseYear]++
			if *t.ReleaseYear >= c.opts.RecentReleaseYear {
				recent++
			}
		}
		if t.AddedYear != nil {
			addedCounts[*t.AddedYear]++
		}
		if t.MainCountry == USCountry {
			us++
		}
		if strings.Contains(t.ListedIn, InternationalTag) {
			international++
		}
		if t.RatingGroup == models.RatingMature {
			mature++
		}
	}

	kpis.MovieShare = Share(kpis.MovieCount, total)
	kpis.TVShare = Share(kpis.TVCount, total)
	kpis.RecentShare = Share(recent, total)
	kpis.USShare = Share(us, total)
	kpis.InternationalShare = Share(international, total)
	kpis.MatureShare = Share(mature, total)
	kpis.PeakReleaseYear = peakYear(releaseCounts)
	kpis.PeakAddedYear = peakYear(addedCounts)
	return kpis
}

// Share returns part/total as a percentage rounded to one decimal
// place; a zero total reports 0 rather than NaN.
func Share(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*1000) / 10
}

// peakYear finds the year with the maximum count, ties resolved to the
// first year in ascending iteration
func peakYear(counts map[int]int) models.PeakYear {
	years := make([]int, 0, len(counts))
	for year := range counts {
		years = append(years, year)
	}
	sort.Ints(years)

	peak := models.PeakYear{}
	for _, year := range years {
		if counts[year] > peak.Count {
			peak = models.PeakYear{Year: year, Count: counts[year]}
		}
	}
	return peak
}
