package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"supplyboard/models"
)

// ParseError reports a document that cannot be read as a table at all.
// It is the only error that crosses the core boundary; anything wrong
// with an individual field degrades inside normalization instead.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("document parse failed: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

type Reader struct {
	logger *logrus.Logger
}

func NewReader(logger *logrus.Logger) *Reader {
	return &Reader{logger: logger}
}

// Parse reads a delimited-text document into raw rows. Column order is
// taken from the header; unknown columns are ignored and missing ones
// leave their fields blank. Fully empty lines are skipped.
func (r *Reader) Parse(src io.Reader) ([]models.RawRow, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("document has no header row")
		}
		r.logger.WithError(err).Error("Failed to read document header")
		return nil, &ParseError{Err: err}
	}
	columns := mapColumns(header)

	var rows []models.RawRow
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			r.logger.WithError(err).Error("Failed to read document rows")
			return nil, &ParseError{Err: err}
		}
		if isEmpty(record) {
			continue
		}
		rows = append(rows, buildRow(record, columns))
	}

	r.logger.WithFields(logrus.Fields{
		"rows":    len(rows),
		"columns": len(header),
	}).Info("Parsed catalog document")
	return rows, nil
}

// mapColumns resolves known field names to their header positions
func mapColumns(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, seen := columns[key]; !seen {
			columns[key] = i
		}
	}
	return columns
}

func buildRow(record []string, columns map[string]int) models.RawRow {
	field := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return record[idx]
	}
	return models.RawRow{
		ShowID:      field("show_id"),
		Type:        field("type"),
		Title:       field("title"),
		Director:    field("director"),
		Cast:        field("cast"),
		Country:     field("country"),
		DateAdded:   field("date_added"),
		ReleaseYear: field("release_year"),
		Rating:      field("rating"),
		Duration:    field("duration"),
		ListedIn:    field("listed_in"),
		Description: field("description"),
	}
}

func isEmpty(record []string) bool {
	for _, value := range record {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}
