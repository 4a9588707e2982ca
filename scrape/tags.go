package scrape

import (
	"context"
	"fmt"

	"github.com/mediacat/bulk-scraper/client"
	"github.com/mediacat/bulk-scraper/common"
	"github.com/mediacat/bulk-scraper/model"
	"github.com/rs/zerolog/log"
)

// ControlTag is a marker tag managed by this plugin. A tag with an empty
// ScraperID is the bulk URL tag; all others select items for one specific
// fragment scraper and entity kind.
type ControlTag struct {
	Name      string
	Kind      model.Kind
	ScraperID string
}

// TagRegistry derives the set of control tags from the server's scraper
// registry and the configured toggles, and manages their lifecycle. Control
// tags are markers only; the reconciliation engine strips them from every
// merged tag set.
type TagRegistry struct {
	client client.Catalog
	cfg    common.Config
}

// NewTagRegistry creates a registry over the given catalog client.
func NewTagRegistry(c client.Catalog, cfg common.Config) *TagRegistry {
	return &TagRegistry{client: c, cfg: cfg}
}

// fragmentKinds returns the entity kinds with fragment scraping enabled.
func (r *TagRegistry) fragmentKinds() []model.Kind {
	var kinds []model.Kind
	if r.cfg.FragmentScrapeScenes {
		kinds = append(kinds, model.KindScene)
	}
	if r.cfg.FragmentScrapeGalleries {
		kinds = append(kinds, model.KindGallery)
	}
	return kinds
}

// Required enumerates every control tag that should exist: the fixed bulk URL
// tag plus one generated tag per fragment-capable scraper and enabled kind.
func (r *TagRegistry) Required(ctx context.Context) ([]ControlTag, error) {
	tags := []ControlTag{{Name: r.cfg.BulkURLControlTag}}

	for _, kind := range r.fragmentKinds() {
		scraperIDs, err := r.client.ListScraperIDs(ctx, kind, client.CapabilityFragment)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s fragment scrapers: %w", kind, err)
		}
		for _, scraperID := range scraperIDs {
			tags = append(tags, ControlTag{
				Name:      r.fragmentTagName(kind, scraperID),
				Kind:      kind,
				ScraperID: scraperID,
			})
		}
	}
	return tags, nil
}

// fragmentTagName builds the generated tag name for a (kind, scraper) pair.
func (r *TagRegistry) fragmentTagName(kind model.Kind, scraperID string) string {
	return fmt.Sprintf("%s%s_%s", r.cfg.ScrapeWithPrefix, kind.Letter(), scraperID)
}

// EnsureCreated creates every required control tag that does not already
// exist. It is idempotent: tags are looked up by exact name first, so calling
// it repeatedly never duplicates a tag.
func (r *TagRegistry) EnsureCreated(ctx context.Context) error {
	required, err := r.Required(ctx)
	if err != nil {
		return err
	}
	for _, tag := range required {
		_, ok, err := r.client.FindTagIDByName(ctx, tag.Name)
		if err != nil {
			return fmt.Errorf("failed to look up tag %q: %w", tag.Name, err)
		}
		if ok {
			log.Debug().Str("tag", tag.Name).Msg("Control tag already exists")
			continue
		}
		if _, err := r.client.CreateTag(ctx, tag.Name); err != nil {
			return err
		}
		log.Info().Str("tag", tag.Name).Msg("Created control tag")
	}
	return nil
}

// DestroyAll deletes every existing control tag. Tags that do not exist are
// skipped silently; running it against an empty catalog is a no-op.
func (r *TagRegistry) DestroyAll(ctx context.Context) error {
	required, err := r.Required(ctx)
	if err != nil {
		return err
	}
	for _, tag := range required {
		id, ok, err := r.client.FindTagIDByName(ctx, tag.Name)
		if err != nil {
			return fmt.Errorf("failed to look up tag %q: %w", tag.Name, err)
		}
		if !ok {
			log.Debug().Str("tag", tag.Name).Msg("Control tag does not exist, nothing to remove")
			continue
		}
		if err := r.client.DestroyTag(ctx, id); err != nil {
			return err
		}
		log.Info().Str("tag", tag.Name).Msg("Destroyed control tag")
	}
	return nil
}

// ResolveIDs returns the catalog IDs of the control tags that currently
// exist. Tags not yet created are simply omitted.
func (r *TagRegistry) ResolveIDs(ctx context.Context) ([]string, error) {
	required, err := r.Required(ctx)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, tag := range required {
		id, ok, err := r.client.FindTagIDByName(ctx, tag.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to look up tag %q: %w", tag.Name, err)
		}
		if ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// URLControlTagID resolves the bulk URL control tag. Its absence is the one
// hard precondition of a scrape run: the returned error tells the operator
// to run tag creation first.
func (r *TagRegistry) URLControlTagID(ctx context.Context) (string, error) {
	id, ok, err := r.client.FindTagIDByName(ctx, r.cfg.BulkURLControlTag)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("tag %q does not exist, run the create tags task first", r.cfg.BulkURLControlTag)
	}
	return id, nil
}
