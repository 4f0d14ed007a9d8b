package transformer

import (
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"supplyboard/models"
)

// dateAddedFormats cover the textual "Month Day, Year" forms seen in
// the date_added column
var dateAddedFormats = []string{
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
}

type Transformer struct {
	logger *logrus.Logger
}

func New(logger *logrus.Logger) *Transformer {
	return &Transformer{logger: logger}
}

// Normalize converts the whole raw batch into typed titles. Per-field
// defects degrade to absent/Unknown values and never fail the batch;
// only the caller's document parse can fail a load.
func (t *Transformer) Normalize(rows []models.RawRow) []models.Title {
	titles := make([]models.Title, 0, len(rows))
	repaired := 0
	badDates := 0
	badYears := 0

	for _, row := range rows {
		title := t.normalizeRow(row)
		if title.Duration != row.Duration {
			repaired++
		}
		if title.AddedDate == nil && strings.TrimSpace(row.DateAdded) != "" {
			badDates++
		}
		if title.ReleaseYear == nil {
			badYears++
		}
		titles = append(titles, title)
	}

	t.logger.WithFields(logrus.Fields{
		"rows":                 len(rows),
		"repaired_durations":   repaired,
		"unparsed_added_dates": badDates,
		"unparsed_years":       badYears,
	}).Info("Normalized catalog batch")

	return titles
}

func (t *Transformer) normalizeRow(row models.RawRow) models.Title {
	rating, duration := RepairShiftedDuration(row.Rating, row.Duration)

	title := models.Title{
		ShowID:      row.ShowID,
		Type:        row.Type,
		Name:        row.Title,
		Director:    row.Director,
		Cast:        row.Cast,
		Country:     row.Country,
		DateAdded:   row.DateAdded,
		Rating:      rating,
		Duration:    duration,
		ListedIn:    row.ListedIn,
		Description: row.Description,

		ReleaseYear:  parseInt(row.ReleaseYear),
		MainCountry:  firstToken(row.Country),
		PrimaryGenre: firstToken(row.ListedIn),
		RatingGroup:  ClassifyRating(rating),
	}

	if date, ok := parseAddedDate(row.DateAdded); ok {
		year := date.Year()
		month := int(date.Month())
		title.AddedDate = &date
		title.AddedYear = &year
		title.AddedMonth = &month
	}

	switch row.Type {
	case models.TypeMovie:
		title.DurationMin = leadingInt(strings.TrimSuffix(duration, " min"))
	case models.TypeTVShow:
		title.Seasons = leadingInt(duration)
	}

	if title.AddedYear != nil && title.ReleaseYear != nil {
		lag := *title.AddedYear - *title.ReleaseYear
		title.CatalogLag = &lag
	}

	return title
}

// RepairShiftedDuration corrects the known column-shift defect where a
// duration value lands in the rating column: when rating looks like a
// duration and duration is blank, the value moves over and the rating
// becomes absent. Anything else passes through unchanged.
func RepairShiftedDuration(rating, duration string) (string, string) {
	if rating == "" || duration != "" {
		return rating, duration
	}
	if strings.Contains(rating, "min") || strings.Contains(rating, "Season") {
		return "", rating
	}
	return rating, duration
}

func parseAddedDate(raw string) (time.Time, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, false
	}
	for _, format := range dateAddedFormats {
		if date, err := time.Parse(format, trimmed); err == nil {
			return date, true
		}
	}
	return time.Time{}, false
}

// firstToken returns the first comma-separated token, trimmed, or the
// Unknown label for a blank field
func firstToken(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return models.UnknownLabel
	}
	first, _, _ := strings.Cut(raw, ",")
	return strings.TrimSpace(first)
}

func parseInt(raw string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	return &n
}

// leadingInt extracts the integer prefix of a value like "2 Seasons"
// or "90". A missing or zero prefix stays absent.
func leadingInt(raw string) *int {
	trimmed := strings.TrimSpace(raw)
	end := 0
	for end < len(trimmed) && trimmed[end] >= '0' && trimmed[end] <= '9' {
		end++
	}
	if end == 0 {
		return nil
	}
	n, err := strconv.Atoi(trimmed[:end])
	if err != nil || n == 0 {
		return nil
	}
	return &n
}
