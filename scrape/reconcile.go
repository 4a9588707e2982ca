package scrape

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/mediacat/bulk-scraper/client"
	"github.com/mediacat/bulk-scraper/common"
	"github.com/mediacat/bulk-scraper/model"
	"github.com/rs/zerolog/log"
)

// Reconciler maps scraped payloads onto update requests. Scraped data is
// untrusted and sparse: only non-empty fields are copied, sub-entities are
// resolved to catalog IDs (creating them when the configuration allows), and
// the item's tag set is merged so control tags never survive an update.
type Reconciler struct {
	client client.Catalog
	cfg    common.Config

	// controlTagIDs are resolved once per run and stripped from every
	// merged tag set.
	controlTagIDs map[string]struct{}
}

// NewReconciler creates a reconciler. controlTagIDs is the full set of
// currently existing control tag IDs.
func NewReconciler(c client.Catalog, cfg common.Config, controlTagIDs []string) *Reconciler {
	ids := make(map[string]struct{}, len(controlTagIDs))
	for _, id := range controlTagIDs {
		ids[id] = struct{}{}
	}
	return &Reconciler{client: c, cfg: cfg, controlTagIDs: ids}
}

// isInlineImage reports whether an image value is self-describing inline
// data. The update channel cannot dereference bare external URLs, so
// anything else is discarded.
func isInlineImage(value string) bool {
	return strings.HasPrefix(value, "data:image")
}

// ReconcileScene builds and applies a scene update from a scraped payload.
// A failed update mutation is logged with the attempted payload and returned
// so the orchestrator can count the item as failed; it never aborts a batch.
func (r *Reconciler) ReconcileScene(ctx context.Context, scene model.Scene, data *model.ScrapedScene) error {
	update := model.SceneUpdate{ID: scene.ID}

	if data.Title != "" {
		update.Title = model.Str(data.Title)
	}
	if data.Details != "" {
		update.Details = model.Str(data.Details)
	}
	if data.URL != "" {
		update.URL = model.Str(data.URL)
	}
	if data.Date != "" {
		update.Date = model.Str(data.Date)
	}
	if isInlineImage(data.Image) {
		update.CoverImage = model.Str(data.Image)
	}

	scrapedTagIDs := r.resolveTagIDs(ctx, data.Tags)
	update.TagIDs = r.mergeTagIDs(scene.Tags, scrapedTagIDs)

	if performerIDs := r.resolvePerformerIDs(ctx, data.Performers); len(performerIDs) > 0 {
		update.PerformerIDs = performerIDs
	}

	update.StudioID = r.resolveStudioID(ctx, data.Studio, scene.URL)

	if movies := r.resolveMovieAssociations(ctx, data.Movies); len(movies) > 0 {
		update.Movies = movies
	}

	if _, err := r.client.UpdateScene(ctx, update); err != nil {
		payload, _ := json.Marshal(update)
		log.Error().Err(err).
			Str("scene_id", scene.ID).
			RawJSON("payload", payload).
			Msg("Failed to update scene with scraped data")
		return err
	}
	return nil
}

// ReconcileGallery builds and applies a gallery update from a scraped
// payload. Galleries carry no movie associations; everything else follows
// the scene path.
func (r *Reconciler) ReconcileGallery(ctx context.Context, gallery model.Gallery, data *model.ScrapedGallery) error {
	update := model.GalleryUpdate{ID: gallery.ID}

	if data.Title != "" {
		update.Title = model.Str(data.Title)
	}
	if data.Details != "" {
		update.Details = model.Str(data.Details)
	}
	if data.URL != "" {
		update.URL = model.Str(data.URL)
	}
	if data.Date != "" {
		update.Date = model.Str(data.Date)
	}
	if isInlineImage(data.Image) {
		update.CoverImage = model.Str(data.Image)
	}

	scrapedTagIDs := r.resolveTagIDs(ctx, data.Tags)
	update.TagIDs = r.mergeTagIDs(gallery.Tags, scrapedTagIDs)

	if performerIDs := r.resolvePerformerIDs(ctx, data.Performers); len(performerIDs) > 0 {
		update.PerformerIDs = performerIDs
	}

	update.StudioID = r.resolveStudioID(ctx, data.Studio, gallery.URL)

	if _, err := r.client.UpdateGallery(ctx, update); err != nil {
		payload, _ := json.Marshal(update)
		log.Error().Err(err).
			Str("gallery_id", gallery.ID).
			RawJSON("payload", payload).
			Msg("Failed to update gallery with scraped data")
		return err
	}
	return nil
}

// ReconcileMovie builds and applies a movie update from a scraped payload.
// Movies have no tag set to merge; image fields go through the same inline
// data gate as scene covers.
func (r *Reconciler) ReconcileMovie(ctx context.Context, movie model.Movie, data *model.ScrapedMovie) error {
	update := model.MovieUpdate{ID: movie.ID}

	if data.Date != "" {
		update.Date = model.Str(data.Date)
	}
	if data.Aliases != "" {
		update.Aliases = model.Str(data.Aliases)
	}
	if data.Duration != "" {
		update.Duration = model.Str(data.Duration)
	}
	if data.Synopsis != "" {
		update.Synopsis = model.Str(data.Synopsis)
	}
	if data.Director != "" {
		update.Director = model.Str(data.Director)
	}
	if isInlineImage(data.FrontImage) {
		update.FrontImage = model.Str(data.FrontImage)
	}
	if isInlineImage(data.BackImage) {
		update.BackImage = model.Str(data.BackImage)
	}

	update.StudioID = r.resolveStudioID(ctx, data.Studio, movie.URL)

	if _, err := r.client.UpdateMovie(ctx, update); err != nil {
		payload, _ := json.Marshal(update)
		log.Error().Err(err).
			Str("movie_id", movie.ID).
			RawJSON("payload", payload).
			Msg("Failed to update movie with scraped data")
		return err
	}
	return nil
}

// resolveTagIDs resolves scraped tag entries to catalog tag IDs. Entries with
// a stored ID are used directly; bare names are title-cased and created when
// create_missing_tags is on, otherwise dropped. Creation failures drop the
// single entry, never the item.
func (r *Reconciler) resolveTagIDs(ctx context.Context, tags []model.ScrapedTag) []string {
	var ids []string
	for _, tag := range tags {
		switch {
		case tag.StoredID != "":
			ids = append(ids, tag.StoredID)
		case r.cfg.CreateMissingTags && tag.Name != "":
			name := common.TitleCase(tag.Name)
			id, err := r.client.CreateTag(ctx, name)
			if err != nil {
				log.Warn().Err(err).Str("tag", name).Msg("Failed to create missing tag, dropping entry")
				continue
			}
			log.Info().Str("tag", name).Msg("Created missing tag")
			ids = append(ids, id)
		}
	}
	return ids
}

// mergeTagIDs unions the item's pre-existing tag IDs with the resolved
// scraped tag IDs, dropping control tags and duplicates. It always returns a
// non-nil slice: the merged set is sent on every update so control tags are
// stripped even when the payload carried no tags.
func (r *Reconciler) mergeTagIDs(existing []model.Tag, scrapedIDs []string) []string {
	merged := make([]string, 0, len(existing)+len(scrapedIDs))
	seen := make(map[string]struct{}, len(existing)+len(scrapedIDs))

	for _, tag := range existing {
		if _, control := r.controlTagIDs[tag.ID]; control {
			continue
		}
		if _, dup := seen[tag.ID]; dup {
			continue
		}
		seen[tag.ID] = struct{}{}
		merged = append(merged, tag.ID)
	}
	for _, id := range scrapedIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		merged = append(merged, id)
	}
	return merged
}

// resolvePerformerIDs resolves scraped performer entries. The scraped list
// fully replaces the item's performers when present; there is no merge.
func (r *Reconciler) resolvePerformerIDs(ctx context.Context, performers []model.ScrapedPerformer) []string {
	var ids []string
	for _, p := range performers {
		switch {
		case p.StoredID != "":
			ids = append(ids, p.StoredID)
		case r.cfg.CreateMissingPerformers && p.Name != "":
			create := model.PerformerCreate{
				Name: common.TitleCase(p.Name),
				URL:  p.URL,
			}
			id, err := r.client.CreatePerformer(ctx, create)
			if err != nil {
				log.Warn().Err(err).Str("performer", create.Name).Msg("Failed to create missing performer, dropping entry")
				continue
			}
			log.Info().Str("performer", create.Name).Msg("Created missing performer")
			ids = append(ids, id)
		}
	}
	return ids
}

// resolveStudioID resolves the scraped studio to a catalog studio ID. When
// the entry has only a bare name and create_missing_studios is off, nil is
// returned and the item's existing studio assignment is left untouched.
// A created studio gets its URL synthesized from the item URL's origin.
func (r *Reconciler) resolveStudioID(ctx context.Context, studio *model.ScrapedStudio, itemURL string) *string {
	if studio == nil {
		return nil
	}
	if studio.StoredID != "" {
		return model.Str(studio.StoredID)
	}
	if !r.cfg.CreateMissingStudios || studio.Name == "" {
		return nil
	}

	create := model.StudioCreate{
		Name: common.TitleCase(studio.Name),
		URL:  common.URLOrigin(itemURL),
	}
	id, err := r.client.CreateStudio(ctx, create)
	if err != nil {
		log.Warn().Err(err).Str("studio", create.Name).Msg("Failed to create missing studio, leaving studio unset")
		return nil
	}
	log.Info().Str("studio", create.Name).Msg("Created missing studio")
	return model.Str(id)
}

// resolveMovieAssociations resolves scraped movie entries to scene-movie
// associations. Entries failing creation are skipped and logged, not fatal;
// movie eligibility does not depend on the studio having resolved.
func (r *Reconciler) resolveMovieAssociations(ctx context.Context, movies []model.ScrapedMovieRef) []model.MovieAssociation {
	var assocs []model.MovieAssociation
	for _, m := range movies {
		switch {
		case m.StoredID != "":
			assocs = append(assocs, model.MovieAssociation{MovieID: m.StoredID})
		case r.cfg.CreateMissingMovies && m.Name != "":
			create := model.MovieCreate{
				Name:     m.Name,
				Aliases:  m.Aliases,
				Date:     m.Date,
				Synopsis: m.Synopsis,
				URL:      m.URL,
				Director: m.Director,
				Duration: m.Duration,
			}
			id, err := r.client.CreateMovie(ctx, create)
			if err != nil {
				log.Warn().Err(err).Str("movie", m.Name).Msg("Failed to create missing movie, dropping association")
				continue
			}
			log.Info().Str("movie", m.Name).Msg("Created missing movie")
			assocs = append(assocs, model.MovieAssociation{MovieID: id})
		}
	}
	return assocs
}
