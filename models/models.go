package models

import (
	"time"
)

// Content type values as they appear in the source data
const (
	TypeAll    = "All"
	TypeMovie  = "Movie"
	TypeTVShow = "TV Show"
)

// UnknownLabel is the fallback for blank country/genre fields
const UnknownLabel = "Unknown"

// RatingGroup buckets raw content-rating codes into audience groups
type RatingGroup string

const (
	RatingKids    RatingGroup = "Kids"
	RatingFamily  RatingGroup = "Family"
	RatingTeen    RatingGroup = "Teen/Young Adult"
	RatingMature  RatingGroup = "Mature"
	RatingUnrated RatingGroup = "Unrated/Not Rated"
	RatingUnknown RatingGroup = "Unknown"
)

// RatingGroups lists every group in display order
var RatingGroups = []RatingGroup{
	RatingKids,
	RatingFamily,
	RatingTeen,
	RatingMature,
	RatingUnrated,
	RatingUnknown,
}

// RawRow is one untrusted row as parsed from the delimited source.
// Missing or absent columns arrive as empty strings.
type RawRow struct {
	ShowID      string `json:"show_id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Director    string `json:"director"`
	Cast        string `json:"cast"`
	Country     string `json:"country"`
	DateAdded   string `json:"date_added"`
	ReleaseYear string `json:"release_year"`
	Rating      string `json:"rating"`
	Duration    string `json:"duration"`
	ListedIn    string `json:"listed_in"`
	Description string `json:"description"`
}

// Title is one fully-normalized catalog entry. Derived fields are
// computed once at load time and never mutated afterwards; optional
// derivations are nil when the underlying raw field failed to parse.
type Title struct {
	ShowID      string `json:"show_id"`
	Type        string `json:"type"`
	Name        string `json:"title"`
	Director    string `json:"director"`
	Cast        string `json:"cast"`
	Country     string `json:"country"`
	DateAdded   string `json:"date_added"`
	Rating      string `json:"rating"`
	Duration    string `json:"duration"`
	ListedIn    string `json:"listed_in"`
	Description string `json:"description"`

	ReleaseYear  *int        `json:"release_year,omitempty"`
	AddedDate    *time.Time  `json:"added_date,omitempty"`
	AddedYear    *int        `json:"added_year,omitempty"`
	AddedMonth   *int        `json:"added_month,omitempty"`
	MainCountry  string      `json:"main_country"`
	DurationMin  *int        `json:"duration_min,omitempty"`
	Seasons      *int        `json:"seasons,omitempty"`
	PrimaryGenre string      `json:"primary_genre"`
	RatingGroup  RatingGroup `json:"rating_group"`
	CatalogLag   *int        `json:"catalog_lag,omitempty"`
}

// YearRange is an inclusive [Min, Max] bound
type YearRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

func (r YearRange) Contains(year int) bool {
	return year >= r.Min && year <= r.Max
}

// FilterState describes the active subset. A nil year range and an
// empty slice both mean "no restriction on this dimension".
type FilterState struct {
	Type         string        `json:"type"`
	ReleaseYears *YearRange    `json:"release_years,omitempty"`
	AddedYears   *YearRange    `json:"added_years,omitempty"`
	Countries    []string      `json:"countries,omitempty"`
	Genres       []string      `json:"genres,omitempty"`
	RatingGroups []RatingGroup `json:"rating_groups,omitempty"`
}

// Clone deep-copies the filter so stored state keeps value semantics
func (f FilterState) Clone() FilterState {
	out := f
	if f.ReleaseYears != nil {
		r := *f.ReleaseYears
		out.ReleaseYears = &r
	}
	if f.AddedYears != nil {
		r := *f.AddedYears
		out.AddedYears = &r
	}
	out.Countries = append([]string(nil), f.Countries...)
	out.Genres = append([]string(nil), f.Genres...)
	out.RatingGroups = append([]RatingGroup(nil), f.RatingGroups...)
	return out
}

// Chart-ready series types

type FormatMix struct {
	Movies  int `json:"movies"`
	TVShows int `json:"tv_shows"`
}

type TrendPoint struct {
	Year    int     `json:"year"`
	TVShare float64 `json:"tv_share"`
	Total   int     `json:"total"`
}

type CountryCount struct {
	Country string `json:"country"`
	Count   int    `json:"count"`
}

type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

type RatingCount struct {
	Group RatingGroup `json:"group"`
	Count int         `json:"count"`
}

type SeasonBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// PeakYear is the year holding the maximum record count, with that count
type PeakYear struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// KPISet carries the scalar aggregates. Shares are percentages already
// rounded to one decimal place; a zero-record subset yields all zeros.
type KPISet struct {
	TotalTitles        int      `json:"total_titles"`
	MovieCount         int      `json:"movie_count"`
	TVCount            int      `json:"tv_count"`
	MovieShare         float64  `json:"movie_share"`
	TVShare            float64  `json:"tv_share"`
	RecentShare        float64  `json:"recent_share"`
	USShare            float64  `json:"us_share"`
	InternationalShare float64  `json:"international_share"`
	MatureShare        float64  `json:"mature_share"`
	PeakReleaseYear    PeakYear `json:"peak_release_year"`
	PeakAddedYear      PeakYear `json:"peak_added_year"`
}

// AggregateView bundles everything the presentation layer renders for
// one filtered subset. It is recomputed from scratch on every change.
type AggregateView struct {
	Mix          FormatMix      `json:"mix"`
	Trend        []TrendPoint   `json:"trend"`
	TopCountries []CountryCount `json:"top_countries"`
	TopGenres    []GenreCount   `json:"top_genres"`
	Ratings      []RatingCount  `json:"ratings"`
	Seasons      []SeasonBucket `json:"seasons"`
	KPIs         KPISet         `json:"kpis"`
}
