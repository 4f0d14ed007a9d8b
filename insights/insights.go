package insights

import (
	"fmt"
	"sort"

	"supplyboard/config"
	"supplyboard/metrics"
	"supplyboard/models"
)

// NoDataNotice replaces the sentence list when the subset is empty
const NoDataNotice = "No data available for current filters."

// Compose renders the fixed ten-sentence executive summary from the
// scalar aggregates of the current subset. It adds no computation of
// its own beyond the median release year and the single-season share.
func Compose(titles []models.Title, kpis models.KPISet, opts config.Options) []string {
	if len(titles) == 0 {
		return []string{NoDataNotice}
	}

	oneSeason := 0
	fresh := 0
	var years []int
	for _, t := range titles {
		if t.Type == models.TypeTVShow && t.Seasons != nil && *t.Seasons == 1 {
			oneSeason++
		}
		if t.ReleaseYear != nil {
			years = append(years, *t.ReleaseYear)
			if *t.ReleaseYear >= opts.FreshReleaseYear {
				fresh++
			}
		}
	}
	oneSeasonShare := metrics.Share(oneSeason, kpis.TVCount)
	freshShare := metrics.Share(fresh, kpis.TotalTitles)
	medianYear := medianReleaseYear(years)

	return []string{
		fmt.Sprintf("Movies dominate the current view, representing %.1f%% of available titles.", kpis.MovieShare),
		fmt.Sprintf("TV Shows account for %.1f%% of content, showing a strong growth trend in recent releases.", kpis.TVShare),
		fmt.Sprintf("United States remains the primary supplier, contributing %.1f%% of the filtered catalog.", kpis.USShare),
		fmt.Sprintf("International content is significant: %.1f%% of titles carry international tags.", kpis.InternationalShare),
		fmt.Sprintf("%.1f%% of titles are rated for Mature audiences, indicating a heavy adult-oriented supply strategy.", kpis.MatureShare),
		fmt.Sprintf("%.1f%% of TV series are single-season runs, highlighting a high volume of limited series or early cancellations.", oneSeasonShare),
		fmt.Sprintf("Content recency is high: %.1f%% of the catalog titles were released since %d.", freshShare, opts.FreshReleaseYear),
		fmt.Sprintf("The median release year for this selection is %d, suggesting a relatively \"fresh\" catalog overall.", medianYear),
		fmt.Sprintf("Top %d producing countries represent the vast majority of catalog volume, indicating high geographic concentration.", opts.TopCountryLimit),
		fmt.Sprintf("Kids and Family content maintain a steady presence at approximately %.1f%% of the total supply.", 100-kpis.MatureShare),
	}
}

// medianReleaseYear sorts ascending and picks the element at n/2
func medianReleaseYear(years []int) int {
	if len(years) == 0 {
		return 0
	}
	sort.Ints(years)
	return years[len(years)/2]
}
