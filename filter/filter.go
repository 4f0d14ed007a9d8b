package filter

import (
	"strings"

	"supplyboard/models"
)

// Apply evaluates the filter state as an independent predicate per
// title and returns the surviving subset in original order. It is
// stateless and recomputed in full on every filter change.
func Apply(titles []models.Title, state models.FilterState) []models.Title {
	countries := toSet(state.Countries)
	genres := toSet(state.Genres)
	groups := make(map[models.RatingGroup]struct{}, len(state.RatingGroups))
	for _, g := range state.RatingGroups {
		groups[g] = struct{}{}
	}

	subset := make([]models.Title, 0, len(titles))
	for _, title := range titles {
		if matches(title, state, countries, genres, groups) {
			subset = append(subset, title)
		}
	}
	return subset
}

func matches(t models.Title, state models.FilterState, countries, genres map[string]struct{}, groups map[models.RatingGroup]struct{}) bool {
	if state.Type != "" && state.Type != models.TypeAll && t.Type != state.Type {
		return false
	}
	// A bounded release-year range excludes titles whose year failed to
	// parse; a nil range admits everything.
	if state.ReleaseYears != nil {
		if t.ReleaseYear == nil || !state.ReleaseYears.Contains(*t.ReleaseYear) {
			return false
		}
	}
	// Titles with no added year always pass the added-year clause
	if state.AddedYears != nil && t.AddedYear != nil && !state.AddedYears.Contains(*t.AddedYear) {
		return false
	}
	if len(countries) > 0 {
		if _, ok := countries[t.MainCountry]; !ok {
			return false
		}
	}
	if len(genres) > 0 && !anyGenreMatch(t.ListedIn, genres) {
		return false
	}
	if len(groups) > 0 {
		if _, ok := groups[t.RatingGroup]; !ok {
			return false
		}
	}
	return true
}

// anyGenreMatch checks every comma-separated tag, not just the primary
func anyGenreMatch(listedIn string, genres map[string]struct{}) bool {
	for _, tag := range strings.Split(listedIn, ",") {
		if _, ok := genres[strings.TrimSpace(tag)]; ok {
			return true
		}
	}
	return false
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
