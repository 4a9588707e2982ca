package scrape

import (
	"context"
	"fmt"

	"github.com/mediacat/bulk-scraper/client"
	"github.com/mediacat/bulk-scraper/common"
	"github.com/mediacat/bulk-scraper/model"
	"github.com/rs/zerolog/log"
)

// Operating modes, as named in the plugin host's task definitions.
const (
	ModeCreate         = "create"
	ModeRemove         = "remove"
	ModeURLScrape      = "url_scrape"
	ModeFragmentScrape = "fragment_scrape"
	ModeMovieScrape    = "movie_scrape"
)

// Controller dispatches an operating mode to the tag registry and the
// orchestration runs. It owns nothing mutable beyond its collaborators; the
// configuration is injected once at construction.
type Controller struct {
	client   client.Catalog
	cfg      common.Config
	registry *TagRegistry
}

// NewController creates a controller and logs the effective configuration.
func NewController(c client.Catalog, cfg common.Config) *Controller {
	log.Info().Msg("######## Bulk Scraper ########")
	log.Info().Bool("create_missing_performers", cfg.CreateMissingPerformers).
		Bool("create_missing_tags", cfg.CreateMissingTags).
		Bool("create_missing_studios", cfg.CreateMissingStudios).
		Bool("create_missing_movies", cfg.CreateMissingMovies).
		Int("delay", cfg.Delay).
		Msg("Effective configuration")
	log.Info().Msg("##############################")

	return &Controller{
		client:   c,
		cfg:      cfg,
		registry: NewTagRegistry(c, cfg),
	}
}

// Run executes one operating mode to completion.
func (c *Controller) Run(ctx context.Context, mode string) error {
	switch mode {
	case ModeCreate:
		return c.registry.EnsureCreated(ctx)
	case ModeRemove:
		return c.registry.DestroyAll(ctx)
	case ModeURLScrape:
		return c.BulkURLScrape(ctx)
	case ModeFragmentScrape:
		return c.FragmentScrape(ctx)
	case ModeMovieScrape:
		return c.MovieScrape(ctx)
	default:
		return fmt.Errorf("unknown mode %q", mode)
	}
}

// newRunner resolves the current control tag IDs and builds a runner plus
// reconciler for one orchestration run.
func (c *Controller) newRunner(ctx context.Context) (*Runner, error) {
	controlIDs, err := c.registry.ResolveIDs(ctx)
	if err != nil {
		return nil, err
	}
	rec := NewReconciler(c.client, c.cfg, controlIDs)
	return NewRunner(c.client, c.cfg, rec), nil
}

// BulkURLScrape scrapes every item tagged with the bulk URL control tag, for
// each kind with URL scraping enabled. The control tag must already exist;
// its absence aborts the run before anything is mutated.
func (c *Controller) BulkURLScrape(ctx context.Context) error {
	tagID, err := c.registry.URLControlTagID(ctx)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}

	var total RunStats
	if c.cfg.URLScrapeScenes {
		scenes, err := c.client.FindScenesByTag(ctx, tagID)
		if err != nil {
			return fmt.Errorf("failed to find scenes with tag %q: %w", c.cfg.BulkURLControlTag, err)
		}
		log.Info().Int("count", len(scenes)).Str("tag", c.cfg.BulkURLControlTag).Msg("Found scenes with control tag")
		stats, err := runner.ScrapeScenesByURL(ctx, scenes)
		if err != nil {
			return err
		}
		logStats("scene URL scrape", stats)
		total.Add(stats)
	}

	if c.cfg.URLScrapeGalleries {
		galleries, err := c.client.FindGalleriesByTag(ctx, tagID)
		if err != nil {
			return fmt.Errorf("failed to find galleries with tag %q: %w", c.cfg.BulkURLControlTag, err)
		}
		log.Info().Int("count", len(galleries)).Str("tag", c.cfg.BulkURLControlTag).Msg("Found galleries with control tag")
		stats, err := runner.ScrapeGalleriesByURL(ctx, galleries)
		if err != nil {
			return err
		}
		logStats("gallery URL scrape", stats)
		total.Add(stats)
	}

	if c.cfg.URLScrapeMovies {
		stats, err := c.runMovieScrape(ctx, runner)
		if err != nil {
			return err
		}
		total.Add(stats)
	}
	logStats("URL scrape run", total)
	return nil
}

// FragmentScrape runs every named scraper over the items tagged with that
// scraper's control tag. Control tags that were never created simply select
// nothing.
func (c *Controller) FragmentScrape(ctx context.Context) error {
	required, err := c.registry.Required(ctx)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}

	var total RunStats
	for _, tag := range required {
		if tag.ScraperID == "" {
			continue
		}
		tagID, ok, err := c.client.FindTagIDByName(ctx, tag.Name)
		if err != nil {
			return fmt.Errorf("failed to look up tag %q: %w", tag.Name, err)
		}
		if !ok {
			log.Debug().Str("tag", tag.Name).Msg("Control tag not created, skipping scraper")
			continue
		}

		log.Info().Str("tag", tag.Name).Str("scraper_id", tag.ScraperID).Msg("Scraping all items with tag")
		switch tag.Kind {
		case model.KindScene:
			scenes, err := c.client.FindScenesByTag(ctx, tagID)
			if err != nil {
				return fmt.Errorf("failed to find scenes with tag %q: %w", tag.Name, err)
			}
			stats, err := runner.ScrapeScenesWithScraper(ctx, tag.ScraperID, scenes)
			if err != nil {
				return err
			}
			logStats("scene fragment scrape "+tag.ScraperID, stats)
			total.Add(stats)
		case model.KindGallery:
			galleries, err := c.client.FindGalleriesByTag(ctx, tagID)
			if err != nil {
				return fmt.Errorf("failed to find galleries with tag %q: %w", tag.Name, err)
			}
			stats, err := runner.ScrapeGalleriesWithScraper(ctx, tag.ScraperID, galleries)
			if err != nil {
				return err
			}
			logStats("gallery fragment scrape "+tag.ScraperID, stats)
			total.Add(stats)
		}
	}
	logStats("fragment scrape run", total)
	return nil
}

// MovieScrape URL-scrapes every movie that is missing a front image.
func (c *Controller) MovieScrape(ctx context.Context) error {
	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	_, err = c.runMovieScrape(ctx, runner)
	return err
}

func (c *Controller) runMovieScrape(ctx context.Context, runner *Runner) (RunStats, error) {
	movies, err := c.client.FindMoviesMissingFrontImage(ctx)
	if err != nil {
		return RunStats{}, fmt.Errorf("failed to find movies missing a front image: %w", err)
	}
	log.Info().Int("count", len(movies)).Msg("Found movies missing a front image")
	stats, err := runner.ScrapeMoviesByURL(ctx, movies)
	if err != nil {
		return stats, err
	}
	logStats("movie URL scrape", stats)
	return stats, nil
}

// logStats reports a finished batch's counters.
func logStats(batch string, stats RunStats) {
	log.Info().
		Str("batch", batch).
		Int("total", stats.Total).
		Int("updated", stats.Updated).
		Int("no_data", stats.NoData).
		Int("missing_scraper", stats.MissingScraper).
		Int("failed", stats.Failed).
		Int("skipped", stats.Skipped).
		Msg("Batch finished")
}
