package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
)

// Options holds the presentation thresholds the aggregates are
// parameterized by. Defaults reproduce the dashboard's fixed values.
type Options struct {
	TrendFloorYear    int
	RecentReleaseYear int
	FreshReleaseYear  int
	TopCountryLimit   int
	TopGenreLimit     int
	SeasonBucketCap   int
	LogLevel          string
}

func Default() Options {
	return Options{
		TrendFloorYear:    2000,
		RecentReleaseYear: 2013,
		FreshReleaseYear:  2018,
		TopCountryLimit:   10,
		TopGenreLimit:     15,
		SeasonBucketCap:   5,
		LogLevel:          "info",
	}
}

// Load reads overrides from the environment, falling back to Default
func Load() Options {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, using environment variables")
	}

	def := Default()
	return Options{
		TrendFloorYear:    getInt("TREND_FLOOR_YEAR", def.TrendFloorYear),
		RecentReleaseYear: getInt("RECENT_RELEASE_YEAR", def.RecentReleaseYear),
		FreshReleaseYear:  getInt("FRESH_RELEASE_YEAR", def.FreshReleaseYear),
		TopCountryLimit:   getInt("TOP_COUNTRY_LIMIT", def.TopCountryLimit),
		TopGenreLimit:     getInt("TOP_GENRE_LIMIT", def.TopGenreLimit),
		SeasonBucketCap:   getInt("SEASON_BUCKET_CAP", def.SeasonBucketCap),
		LogLevel:          getEnv("LOG_LEVEL", def.LogLevel),
	}
}

// NewLogger builds the shared logger the way the rest of the packages
// expect it: structured JSON at the configured level.
func NewLogger(opts Options) *logrus.Logger {
	logger := logrus.New()
	level, err := logrus.ParseLevel(opts.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.JSONFormatter{})
	return logger
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n := cast.ToInt(value); n > 0 {
			return n
		}
	}
	return defaultValue
}
