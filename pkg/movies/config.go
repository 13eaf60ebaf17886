// Package movies assembles the movie-metadata cleaning pipeline: load a CSV,
// normalize and deduplicate it, impute missing values, derive features,
// filter duration outliers and persist the result.
package movies

import (
	"errors"
	"fmt"
)

// Numeric imputation strategies.
const (
	StrategyMedian = "median"
	StrategyMean   = "mean"
)

// Output controls how the cleaned table is written.
type Output struct {
	// Format is csv, jsonl, parquet or xlsx. Empty picks by file extension.
	Format    string `yaml:"format" toml:"format" json:"format"`
	Delimiter string `yaml:"delimiter" toml:"delimiter" json:"delimiter"`
	BOM       bool   `yaml:"bom" toml:"bom" json:"bom"`
}

// Bounds is an inclusive numeric range.
type Bounds struct {
	Min float64 `yaml:"min" toml:"min" json:"min"`
	Max float64 `yaml:"max" toml:"max" json:"max"`
}

// Config names the dataset's columns and the cleaning parameters. Columns
// missing from the input make their stage a no-op.
type Config struct {
	InputPath  string `yaml:"input_path" toml:"input_path" json:"input_path"`
	OutputDir  string `yaml:"output_dir" toml:"output_dir" json:"output_dir"`
	OutputName string `yaml:"output_name" toml:"output_name" json:"output_name"`
	Output     Output `yaml:"output" toml:"output" json:"output"`

	TitleColumn        string   `yaml:"title_column" toml:"title_column" json:"title_column"`
	RequiredColumn     string   `yaml:"required_column" toml:"required_column" json:"required_column"`
	NumericColumns     []string `yaml:"numeric_columns" toml:"numeric_columns" json:"numeric_columns"`
	CategoricalColumns []string `yaml:"categorical_columns" toml:"categorical_columns" json:"categorical_columns"`
	NumericStrategy    string   `yaml:"numeric_strategy" toml:"numeric_strategy" json:"numeric_strategy"`
	Placeholder        string   `yaml:"placeholder" toml:"placeholder" json:"placeholder"`

	ReleaseYearColumn string `yaml:"release_year_column" toml:"release_year_column" json:"release_year_column"`
	RevenueColumn     string `yaml:"revenue_column" toml:"revenue_column" json:"revenue_column"`
	BudgetColumn      string `yaml:"budget_column" toml:"budget_column" json:"budget_column"`
	DurationColumn    string `yaml:"duration_column" toml:"duration_column" json:"duration_column"`
	DurationBounds    Bounds `yaml:"duration_bounds" toml:"duration_bounds" json:"duration_bounds"`

	// ReferenceYear anchors movie_age. Zero means the current year.
	ReferenceYear int `yaml:"reference_year" toml:"reference_year" json:"reference_year"`
}

// DefaultConfig returns the settings for the IMDB 5000 movie_metadata.csv layout.
func DefaultConfig() Config {
	return Config{
		InputPath:      "../data/raw/movie_metadata.csv",
		OutputDir:      "../data/processed",
		OutputName:     "movies_cleaned.csv",
		TitleColumn:    "movie_title",
		RequiredColumn: "imdb_score",
		NumericColumns: []string{
			"duration", "budget", "gross", "num_critic_for_reviews", "num_voted_users",
			"num_user_for_reviews", "director_facebook_likes", "cast_total_facebook_likes",
			"movie_facebook_likes",
		},
		CategoricalColumns: []string{
			"color", "country", "language", "content_rating", "aspect_ratio", "director_name",
		},
		NumericStrategy:   StrategyMedian,
		Placeholder:       "Unknown",
		ReleaseYearColumn: "title_year",
		RevenueColumn:     "gross",
		BudgetColumn:      "budget",
		DurationColumn:    "duration",
		DurationBounds:    Bounds{Min: 20, Max: 300},
	}
}

// Validate reports settings no run could succeed with.
func (c Config) Validate() error {
	var errs []error
	switch c.NumericStrategy {
	case "", StrategyMedian, StrategyMean:
	default:
		errs = append(errs, fmt.Errorf("numeric_strategy %q: want %s or %s", c.NumericStrategy, StrategyMedian, StrategyMean))
	}
	if c.DurationBounds.Min > c.DurationBounds.Max {
		errs = append(errs, fmt.Errorf("duration_bounds: min %v exceeds max %v", c.DurationBounds.Min, c.DurationBounds.Max))
	}
	if c.OutputName == "" {
		errs = append(errs, errors.New("output_name is empty"))
	}
	if len([]rune(c.Output.Delimiter)) > 1 {
		errs = append(errs, fmt.Errorf("output delimiter %q must be a single character", c.Output.Delimiter))
	}
	switch c.Output.Format {
	case "", FormatCSV, FormatJSONL, FormatParquet, FormatXLSX:
	default:
		errs = append(errs, fmt.Errorf("output format %q not supported", c.Output.Format))
	}
	return errors.Join(errs...)
}
