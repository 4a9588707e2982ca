package scrape

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mediacat/bulk-scraper/client"
	"github.com/mediacat/bulk-scraper/common"
	"github.com/mediacat/bulk-scraper/model"
	"github.com/rs/zerolog/log"
)

// RunStats aggregates the per-run counters reported when a batch finishes.
type RunStats struct {
	Total          int
	Updated        int
	NoData         int
	MissingScraper int
	Failed         int
	Skipped        int
}

// Add accumulates another batch's counters into s.
func (s *RunStats) Add(o RunStats) {
	s.Total += o.Total
	s.Updated += o.Updated
	s.NoData += o.NoData
	s.MissingScraper += o.MissingScraper
	s.Failed += o.Failed
	s.Skipped += o.Skipped
}

// Runner drives one orchestration run: it paces scrape requests, tracks
// source health for URL mode, and hands usable payloads to the reconciler.
// Items are processed strictly sequentially in input order; any per-item
// failure is logged and counted, never allowed to abort the batch. Only the
// unauthorized transport error unwinds, since credentials cannot self-heal
// mid-run.
type Runner struct {
	client  client.Catalog
	cfg     common.Config
	limiter *RateLimiter
	health  *SourceHealth
	rec     *Reconciler
	runID   string
}

// NewRunner creates a runner for one orchestration run. The rate limiter
// timestamp and health tracker state are owned by this run alone.
func NewRunner(c client.Catalog, cfg common.Config, rec *Reconciler) *Runner {
	return &Runner{
		client:  c,
		cfg:     cfg,
		limiter: NewRateLimiter(cfg.Delay),
		health:  NewSourceHealth(),
		rec:     rec,
		runID:   uuid.NewString(),
	}
}

// progress emits a notification proportional to the batch position.
func (r *Runner) progress(index, total int) {
	if total == 0 {
		return
	}
	log.Info().
		Str("run_id", r.runID).
		Float64("fraction", float64(index)/float64(total)).
		Msg("Progress")
}

// fatal reports whether err must unwind the whole run.
func fatal(err error) bool {
	return errors.Is(err, client.ErrUnauthorized)
}

// ScrapeScenesByURL runs the URL-mode loop over a scene batch.
func (r *Runner) ScrapeScenesByURL(ctx context.Context, scenes []model.Scene) (RunStats, error) {
	stats := RunStats{Total: len(scenes)}

	for i, scene := range scenes {
		r.progress(i, len(scenes))

		if scene.URL == "" {
			log.Info().Str("scene_id", scene.ID).Msg("Scene is missing URL, skipping")
			stats.Skipped++
			continue
		}
		origin := common.URLOrigin(scene.URL)
		if !r.health.ShouldAttempt(origin) {
			log.Debug().Str("origin", origin).Str("scene_id", scene.ID).Msg("Origin has no scraper, skipping without request")
			stats.MissingScraper++
			continue
		}

		log.Info().Str("scene_id", scene.ID).Msg("Scraping URL for scene")
		r.limiter.Wait()
		data, err := r.client.ScrapeSceneURL(ctx, scene.URL)
		if err != nil {
			if fatal(err) {
				return stats, err
			}
			log.Error().Err(err).Str("scene_id", scene.ID).Msg("Scrape request failed")
			stats.Failed++
			continue
		}

		r.health.RecordOutcome(origin, data != nil)
		if data == nil {
			log.Warn().Str("origin", origin).Msg("No scraper registered for origin")
			stats.MissingScraper++
			continue
		}
		if data.IsEmpty() {
			log.Info().Str("scene_id", scene.ID).Msg("Could not get data for scene")
			stats.NoData++
			continue
		}

		if err := r.rec.ReconcileScene(ctx, scene, data); err != nil {
			if fatal(err) {
				return stats, err
			}
			stats.Failed++
			continue
		}
		log.Debug().Str("scene_id", scene.ID).Msg("Scraped data for scene")
		stats.Updated++
	}
	return stats, nil
}

// ScrapeGalleriesByURL runs the URL-mode loop over a gallery batch.
func (r *Runner) ScrapeGalleriesByURL(ctx context.Context, galleries []model.Gallery) (RunStats, error) {
	stats := RunStats{Total: len(galleries)}

	for i, gallery := range galleries {
		r.progress(i, len(galleries))

		if gallery.URL == "" {
			log.Info().Str("gallery_id", gallery.ID).Msg("Gallery is missing URL, skipping")
			stats.Skipped++
			continue
		}
		origin := common.URLOrigin(gallery.URL)
		if !r.health.ShouldAttempt(origin) {
			log.Debug().Str("origin", origin).Str("gallery_id", gallery.ID).Msg("Origin has no scraper, skipping without request")
			stats.MissingScraper++
			continue
		}

		log.Info().Str("gallery_id", gallery.ID).Msg("Scraping URL for gallery")
		r.limiter.Wait()
		data, err := r.client.ScrapeGalleryURL(ctx, gallery.URL)
		if err != nil {
			if fatal(err) {
				return stats, err
			}
			log.Error().Err(err).Str("gallery_id", gallery.ID).Msg("Scrape request failed")
			stats.Failed++
			continue
		}

		r.health.RecordOutcome(origin, data != nil)
		if data == nil {
			log.Warn().Str("origin", origin).Msg("No scraper registered for origin")
			stats.MissingScraper++
			continue
		}
		if data.IsEmpty() {
			log.Info().Str("gallery_id", gallery.ID).Msg("Could not get data for gallery")
			stats.NoData++
			continue
		}

		if err := r.rec.ReconcileGallery(ctx, gallery, data); err != nil {
			if fatal(err) {
				return stats, err
			}
			stats.Failed++
			continue
		}
		log.Debug().Str("gallery_id", gallery.ID).Msg("Scraped data for gallery")
		stats.Updated++
	}
	return stats, nil
}

// ScrapeMoviesByURL runs the URL-mode loop over a movie batch.
func (r *Runner) ScrapeMoviesByURL(ctx context.Context, movies []model.Movie) (RunStats, error) {
	stats := RunStats{Total: len(movies)}

	for i, movie := range movies {
		r.progress(i, len(movies))

		if movie.URL == "" {
			log.Info().Str("movie_id", movie.ID).Msg("Movie is missing URL, skipping")
			stats.Skipped++
			continue
		}
		origin := common.URLOrigin(movie.URL)
		if !r.health.ShouldAttempt(origin) {
			log.Debug().Str("origin", origin).Str("movie_id", movie.ID).Msg("Origin has no scraper, skipping without request")
			stats.MissingScraper++
			continue
		}

		log.Debug().Str("movie_id", movie.ID).Msg("Scraping URL for movie")
		r.limiter.Wait()
		data, err := r.client.ScrapeMovieURL(ctx, movie.URL)
		if err != nil {
			if fatal(err) {
				return stats, err
			}
			log.Error().Err(err).Str("movie_id", movie.ID).Msg("Scrape request failed")
			stats.Failed++
			continue
		}

		r.health.RecordOutcome(origin, data != nil)
		if data == nil {
			log.Warn().Str("origin", origin).Msg("No scraper registered for origin")
			stats.MissingScraper++
			continue
		}
		if data.IsEmpty() {
			log.Info().Str("movie_id", movie.ID).Msg("Could not get data for movie")
			stats.NoData++
			continue
		}

		if err := r.rec.ReconcileMovie(ctx, movie, data); err != nil {
			if fatal(err) {
				return stats, err
			}
			stats.Failed++
			continue
		}
		stats.Updated++
	}
	return stats, nil
}

// ScrapeScenesWithScraper runs the fragment-mode loop over a scene batch,
// invoking the named scraper for every item. There is no origin health
// tracking here: the scraper identity, not the URL, determines applicability.
func (r *Runner) ScrapeScenesWithScraper(ctx context.Context, scraperID string, scenes []model.Scene) (RunStats, error) {
	stats := RunStats{Total: len(scenes)}

	for i, scene := range scenes {
		r.progress(i, len(scenes))

		r.limiter.Wait()
		data, err := r.client.ScrapeSceneWithScraper(ctx, scene, scraperID)
		if err != nil {
			if fatal(err) {
				return stats, err
			}
			log.Error().Err(err).Str("scene_id", scene.ID).Str("scraper_id", scraperID).Msg("Scrape request failed")
			stats.Failed++
			continue
		}
		if data == nil {
			log.Info().Str("scene_id", scene.ID).Str("scraper_id", scraperID).Msg("Scraper did not return a result for scene")
			stats.NoData++
			continue
		}
		if data.IsEmpty() {
			log.Info().Str("scene_id", scene.ID).Msg("Could not get data for scene")
			stats.NoData++
			continue
		}

		if err := r.rec.ReconcileScene(ctx, scene, data); err != nil {
			if fatal(err) {
				return stats, err
			}
			stats.Failed++
			continue
		}
		stats.Updated++
	}
	return stats, nil
}

// ScrapeGalleriesWithScraper runs the fragment-mode loop over a gallery batch.
func (r *Runner) ScrapeGalleriesWithScraper(ctx context.Context, scraperID string, galleries []model.Gallery) (RunStats, error) {
	stats := RunStats{Total: len(galleries)}

	for i, gallery := range galleries {
		r.progress(i, len(galleries))

		r.limiter.Wait()
		data, err := r.client.ScrapeGalleryWithScraper(ctx, gallery, scraperID)
		if err != nil {
			if fatal(err) {
				return stats, err
			}
			log.Error().Err(err).Str("gallery_id", gallery.ID).Str("scraper_id", scraperID).Msg("Scrape request failed")
			stats.Failed++
			continue
		}
		if data == nil {
			log.Info().Str("gallery_id", gallery.ID).Str("scraper_id", scraperID).Msg("Scraper did not return a result for gallery")
			stats.NoData++
			continue
		}
		if data.IsEmpty() {
			log.Info().Str("gallery_id", gallery.ID).Msg("Could not get data for gallery")
			stats.NoData++
			continue
		}

		if err := r.rec.ReconcileGallery(ctx, gallery, data); err != nil {
			if fatal(err) {
				return stats, err
			}
			stats.Failed++
			continue
		}
		stats.Updated++
	}
	return stats, nil
}
