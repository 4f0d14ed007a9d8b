package transformer

import (
	"strings"

	"supplyboard/models"
)

var ratingCodeSets = []struct {
	group models.RatingGroup
	codes []string
}{
	{models.RatingKids, []string{"TV-Y", "TV-Y7", "TV-Y7-FV", "G"}},
	{models.RatingFamily, []string{"TV-G", "PG", "TV-PG"}},
	{models.RatingTeen, []string{"PG-13", "TV-14"}},
	{models.RatingMature, []string{"R", "NC-17", "TV-MA"}},
	{models.RatingUnrated, []string{"NR", "UR"}},
}

// ClassifyRating maps a raw content-rating code to its audience group.
// The mapping is total: blank and unrecognized codes resolve to
// Unknown rather than erroring.
func ClassifyRating(rating string) models.RatingGroup {
	code := strings.ToUpper(strings.TrimSpace(rating))
	if code == "" {
		return models.RatingUnknown
	}
	for _, set := range ratingCodeSets {
		for _, c := range set.codes {
			if code == c {
				return set.group
			}
		}
	}
	return models.RatingUnknown
}
