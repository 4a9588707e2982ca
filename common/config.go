// Package common provides configuration and small helpers shared by the
// scrape packages.
package common

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the static per-run settings for the bulk scraper. It is
// constructed once at process start and passed into the controller; there is
// no mutable package-level configuration.
type Config struct {
	// Create missing sub-entities when a scraped entry carries only a bare
	// name. Performers default to off to keep the catalog from filling up
	// with junk names from low-quality scrapers.
	CreateMissingPerformers bool `mapstructure:"create_missing_performers" yaml:"create_missing_performers" json:"create_missing_performers"`
	CreateMissingTags       bool `mapstructure:"create_missing_tags" yaml:"create_missing_tags" json:"create_missing_tags"`
	CreateMissingStudios    bool `mapstructure:"create_missing_studios" yaml:"create_missing_studios" json:"create_missing_studios"`
	CreateMissingMovies     bool `mapstructure:"create_missing_movies" yaml:"create_missing_movies" json:"create_missing_movies"`

	// Delay is the minimum spacing in seconds between outbound scrape
	// requests. Zero disables pacing.
	Delay int `mapstructure:"delay" yaml:"delay" json:"delay"`

	// BulkURLControlTag is the tag name selecting items for URL scraping.
	BulkURLControlTag string `mapstructure:"bulk_url_control_tag" yaml:"bulk_url_control_tag" json:"bulk_url_control_tag"`

	// ScrapeWithPrefix prefixes every generated fragment-scraper tag name.
	ScrapeWithPrefix string `mapstructure:"scrape_with_prefix" yaml:"scrape_with_prefix" json:"scrape_with_prefix"`

	// Per-kind toggles for the two scrape modes. Performer scraping is not
	// implemented; there is deliberately no toggle for it.
	URLScrapeScenes         bool `mapstructure:"url_scrape_scenes" yaml:"url_scrape_scenes" json:"url_scrape_scenes"`
	URLScrapeGalleries      bool `mapstructure:"url_scrape_galleries" yaml:"url_scrape_galleries" json:"url_scrape_galleries"`
	URLScrapeMovies         bool `mapstructure:"url_scrape_movies" yaml:"url_scrape_movies" json:"url_scrape_movies"`
	FragmentScrapeScenes    bool `mapstructure:"fragment_scrape_scenes" yaml:"fragment_scrape_scenes" json:"fragment_scrape_scenes"`
	FragmentScrapeGalleries bool `mapstructure:"fragment_scrape_galleries" yaml:"fragment_scrape_galleries" json:"fragment_scrape_galleries"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		CreateMissingPerformers: false,
		CreateMissingTags:       true,
		CreateMissingStudios:    true,
		CreateMissingMovies:     false,
		Delay:                   5,
		BulkURLControlTag:       "scrape_bulk_url",
		ScrapeWithPrefix:        "scrape_with_",
		URLScrapeScenes:         true,
		URLScrapeGalleries:      false,
		URLScrapeMovies:         false,
		FragmentScrapeScenes:    true,
		FragmentScrapeGalleries: false,
	}
}

// Validate checks the configuration is usable.
func (c Config) Validate() error {
	if c.BulkURLControlTag == "" {
		return fmt.Errorf("bulk_url_control_tag must not be empty")
	}
	if c.ScrapeWithPrefix == "" {
		return fmt.Errorf("scrape_with_prefix must not be empty")
	}
	if c.Delay < 0 {
		return fmt.Errorf("delay must not be negative, got %d", c.Delay)
	}
	return nil
}

// Load reads the configuration from the environment (BULK_SCRAPE_* variables)
// and an optional bulk_scrape.yaml file in the working directory, falling
// back to defaults for anything unset.
func Load() (Config, error) {
	v := viper.New()

	v.SetEnvPrefix("BULK_SCRAPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := Default()
	v.SetDefault("create_missing_performers", def.CreateMissingPerformers)
	v.SetDefault("create_missing_tags", def.CreateMissingTags)
	v.SetDefault("create_missing_studios", def.CreateMissingStudios)
	v.SetDefault("create_missing_movies", def.CreateMissingMovies)
	v.SetDefault("delay", def.Delay)
	v.SetDefault("bulk_url_control_tag", def.BulkURLControlTag)
	v.SetDefault("scrape_with_prefix", def.ScrapeWithPrefix)
	v.SetDefault("url_scrape_scenes", def.URLScrapeScenes)
	v.SetDefault("url_scrape_galleries", def.URLScrapeGalleries)
	v.SetDefault("url_scrape_movies", def.URLScrapeMovies)
	v.SetDefault("fragment_scrape_scenes", def.FragmentScrapeScenes)
	v.SetDefault("fragment_scrape_galleries", def.FragmentScrapeGalleries)

	v.SetConfigName("bulk_scrape")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		// The config file is optional; anything else is a real error.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
