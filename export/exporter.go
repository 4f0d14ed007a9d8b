package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/sirupsen/logrus"

	"supplyboard/models"
)

// exportHeader lists the raw columns followed by every derived column
var exportHeader = []string{
	"show_id", "type", "title", "director", "cast", "country",
	"date_added", "release_year", "rating", "duration", "listed_in",
	"description",
	"added_date", "added_year", "added_month", "main_country",
	"duration_min", "seasons", "primary_genre", "rating_group",
	"catalog_lag",
}

type Exporter struct {
	logger *logrus.Logger
}

func NewExporter(logger *logrus.Logger) *Exporter {
	return &Exporter{logger: logger}
}

// Write serializes the filtered subset back to delimited text with a
// header row. Absent optional fields serialize as blanks; dates use
// their default YYYY-MM-DD textual form.
func (e *Exporter) Write(w io.Writer, titles []models.Title) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(exportHeader); err != nil {
		return fmt.Errorf("failed to write export header: %w", err)
	}
	for _, title := range titles {
		if err := writer.Write(exportRecord(title)); err != nil {
			return fmt.Errorf("failed to write export row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush export: %w", err)
	}

	e.logger.WithField("rows", len(titles)).Info("Exported filtered subset")
	return nil
}

func exportRecord(t models.Title) []string {
	addedDate := ""
	if t.AddedDate != nil {
		addedDate = t.AddedDate.Format("2006-01-02")
	}
	return []string{
		t.ShowID, t.Type, t.Name, t.Director, t.Cast, t.Country,
		t.DateAdded, optInt(t.ReleaseYear), t.Rating, t.Duration,
		t.ListedIn, t.Description,
		addedDate, optInt(t.AddedYear), optInt(t.AddedMonth),
		t.MainCountry, optInt(t.DurationMin), optInt(t.Seasons),
		t.PrimaryGenre, string(t.RatingGroup), optInt(t.CatalogLag),
	}
}

func optInt(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}
