package client

import (
	"context"

	"github.com/mediacat/bulk-scraper/model"
)

// ScrapeCapability selects which kind of scrape a scraper must support when
// listing scraper IDs.
type ScrapeCapability string

const (
	CapabilityURL      ScrapeCapability = "URL"
	CapabilityFragment ScrapeCapability = "FRAGMENT"
)

// Catalog is the capability set of the remote media catalog consumed by the
// scrape packages. The production implementation speaks GraphQL; tests
// substitute a fake.
type Catalog interface {
	// FindTagIDByName returns the ID of the tag with exactly the given name,
	// or ok=false when no such tag exists.
	FindTagIDByName(ctx context.Context, name string) (id string, ok bool, err error)

	// CreateTag creates a tag and returns its new ID.
	CreateTag(ctx context.Context, name string) (string, error)

	// DestroyTag deletes a tag by ID.
	DestroyTag(ctx context.Context, id string) error

	// FindScenesByTag returns all scenes carrying the given tag.
	FindScenesByTag(ctx context.Context, tagID string) ([]model.Scene, error)

	// FindGalleriesByTag returns all galleries carrying the given tag.
	FindGalleriesByTag(ctx context.Context, tagID string) ([]model.Gallery, error)

	// FindMoviesMissingFrontImage returns all movies without a front image,
	// the selection used by the movie scrape mode.
	FindMoviesMissingFrontImage(ctx context.Context) ([]model.Movie, error)

	// ListScraperIDs returns the IDs of the scrapers registered on the server
	// for the given entity kind that support the given capability.
	ListScraperIDs(ctx context.Context, kind model.Kind, capability ScrapeCapability) ([]string, error)

	// ScrapeSceneURL asks the server to scrape a URL with whatever scene
	// scraper matches it. A nil result with nil error means no scraper is
	// registered for the URL; an empty payload means a scraper matched but
	// found nothing.
	ScrapeSceneURL(ctx context.Context, url string) (*model.ScrapedScene, error)

	// ScrapeGalleryURL is ScrapeSceneURL for galleries.
	ScrapeGalleryURL(ctx context.Context, url string) (*model.ScrapedGallery, error)

	// ScrapeMovieURL is ScrapeSceneURL for movies.
	ScrapeMovieURL(ctx context.Context, url string) (*model.ScrapedMovie, error)

	// ScrapeSceneWithScraper runs the named scraper against a known scene.
	ScrapeSceneWithScraper(ctx context.Context, scene model.Scene, scraperID string) (*model.ScrapedScene, error)

	// ScrapeGalleryWithScraper runs the named scraper against a known gallery.
	ScrapeGalleryWithScraper(ctx context.Context, gallery model.Gallery, scraperID string) (*model.ScrapedGallery, error)

	// CreatePerformer creates a performer and returns its new ID.
	CreatePerformer(ctx context.Context, data model.PerformerCreate) (string, error)

	// CreateStudio creates a studio and returns its new ID.
	CreateStudio(ctx context.Context, data model.StudioCreate) (string, error)

	// CreateMovie creates a movie and returns its new ID.
	CreateMovie(ctx context.Context, data model.MovieCreate) (string, error)

	// UpdateScene applies a sparse scene update and returns the scene ID.
	UpdateScene(ctx context.Context, update model.SceneUpdate) (string, error)

	// UpdateGallery applies a sparse gallery update and returns the gallery ID.
	UpdateGallery(ctx context.Context, update model.GalleryUpdate) (string, error)

	// UpdateMovie applies a sparse movie update and returns the movie ID.
	UpdateMovie(ctx context.Context, update model.MovieUpdate) (string, error)
}
