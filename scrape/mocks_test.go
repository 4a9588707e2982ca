package scrape

import (
	"context"

	"github.com/mediacat/bulk-scraper/client"
	"github.com/mediacat/bulk-scraper/model"
)

// fakeCatalog implements the client.Catalog interface for testing purposes.
// Individual behaviors are customized by setting the function fields; calling
// a method whose field is unset panics, which keeps tests honest about the
// calls they expect.
type fakeCatalog struct {
	findTagIDByNameFunc             func(name string) (string, bool, error)
	createTagFunc                   func(name string) (string, error)
	destroyTagFunc                  func(id string) error
	findScenesByTagFunc             func(tagID string) ([]model.Scene, error)
	findGalleriesByTagFunc          func(tagID string) ([]model.Gallery, error)
	findMoviesMissingFrontImageFunc func() ([]model.Movie, error)
	listScraperIDsFunc              func(kind model.Kind, capability client.ScrapeCapability) ([]string, error)
	scrapeSceneURLFunc              func(url string) (*model.ScrapedScene, error)
	scrapeGalleryURLFunc            func(url string) (*model.ScrapedGallery, error)
	scrapeMovieURLFunc              func(url string) (*model.ScrapedMovie, error)
	scrapeSceneWithScraperFunc      func(scene model.Scene, scraperID string) (*model.ScrapedScene, error)
	scrapeGalleryWithScraperFunc    func(gallery model.Gallery, scraperID string) (*model.ScrapedGallery, error)
	createPerformerFunc             func(data model.PerformerCreate) (string, error)
	createStudioFunc                func(data model.StudioCreate) (string, error)
	createMovieFunc                 func(data model.MovieCreate) (string, error)
	updateSceneFunc                 func(update model.SceneUpdate) (string, error)
	updateGalleryFunc               func(update model.GalleryUpdate) (string, error)
	updateMovieFunc                 func(update model.MovieUpdate) (string, error)
}

var _ client.Catalog = (*fakeCatalog)(nil)

func (f *fakeCatalog) FindTagIDByName(_ context.Context, name string) (string, bool, error) {
	if f.findTagIDByNameFunc == nil {
		panic("findTagIDByNameFunc not set")
	}
	return f.findTagIDByNameFunc(name)
}

func (f *fakeCatalog) CreateTag(_ context.Context, name string) (string, error) {
	if f.createTagFunc == nil {
		panic("createTagFunc not set")
	}
	return f.createTagFunc(name)
}

func (f *fakeCatalog) DestroyTag(_ context.Context, id string) error {
	if f.destroyTagFunc == nil {
		panic("destroyTagFunc not set")
	}
	return f.destroyTagFunc(id)
}

func (f *fakeCatalog) FindScenesByTag(_ context.Context, tagID string) ([]model.Scene, error) {
	if f.findScenesByTagFunc == nil {
		panic("findScenesByTagFunc not set")
	}
	return f.findScenesByTagFunc(tagID)
}

func (f *fakeCatalog) FindGalleriesByTag(_ context.Context, tagID string) ([]model.Gallery, error) {
	if f.findGalleriesByTagFunc == nil {
		panic("findGalleriesByTagFunc not set")
	}
	return f.findGalleriesByTagFunc(tagID)
}

func (f *fakeCatalog) FindMoviesMissingFrontImage(_ context.Context) ([]model.Movie, error) {
	if f.findMoviesMissingFrontImageFunc == nil {
		panic("findMoviesMissingFrontImageFunc not set")
	}
	return f.findMoviesMissingFrontImageFunc()
}

func (f *fakeCatalog) ListScraperIDs(_ context.Context, kind model.Kind, capability client.ScrapeCapability) ([]string, error) {
	if f.listScraperIDsFunc == nil {
		panic("listScraperIDsFunc not set")
	}
	return f.listScraperIDsFunc(kind, capability)
}

func (f *fakeCatalog) ScrapeSceneURL(_ context.Context, url string) (*model.ScrapedScene, error) {
	if f.scrapeSceneURLFunc == nil {
		panic("scrapeSceneURLFunc not set")
	}
	return f.scrapeSceneURLFunc(url)
}

func (f *fakeCatalog) ScrapeGalleryURL(_ context.Context, url string) (*model.ScrapedGallery, error) {
	if f.scrapeGalleryURLFunc == nil {
		panic("scrapeGalleryURLFunc not set")
	}
	return f.scrapeGalleryURLFunc(url)
}

func (f *fakeCatalog) ScrapeMovieURL(_ context.Context, url string) (*model.ScrapedMovie, error) {
	if f.scrapeMovieURLFunc == nil {
		panic("scrapeMovieURLFunc not set")
	}
	return f.scrapeMovieURLFunc(url)
}

func (f *fakeCatalog) ScrapeSceneWithScraper(_ context.Context, scene model.Scene, scraperID string) (*model.ScrapedScene, error) {
	if f.scrapeSceneWithScraperFunc == nil {
		panic("scrapeSceneWithScraperFunc not set")
	}
	return f.scrapeSceneWithScraperFunc(scene, scraperID)
}

func (f *fakeCatalog) ScrapeGalleryWithScraper(_ context.Context, gallery model.Gallery, scraperID string) (*model.ScrapedGallery, error) {
	if f.scrapeGalleryWithScraperFunc == nil {
		panic("scrapeGalleryWithScraperFunc not set")
	}
	return f.scrapeGalleryWithScraperFunc(gallery, scraperID)
}

func (f *fakeCatalog) CreatePerformer(_ context.Context, data model.PerformerCreate) (string, error) {
	if f.createPerformerFunc == nil {
		panic("createPerformerFunc not set")
	}
	return f.createPerformerFunc(data)
}

func (f *fakeCatalog) CreateStudio(_ context.Context, data model.StudioCreate) (string, error) {
	if f.createStudioFunc == nil {
		panic("createStudioFunc not set")
	}
	return f.createStudioFunc(data)
}

func (f *fakeCatalog) CreateMovie(_ context.Context, data model.MovieCreate) (string, error) {
	if f.createMovieFunc == nil {
		panic("createMovieFunc not set")
	}
	return f.createMovieFunc(data)
}

func (f *fakeCatalog) UpdateScene(_ context.Context, update model.SceneUpdate) (string, error) {
	if f.updateSceneFunc == nil {
		panic("updateSceneFunc not set")
	}
	return f.updateSceneFunc(update)
}

func (f *fakeCatalog) UpdateGallery(_ context.Context, update model.GalleryUpdate) (string, error) {
	if f.updateGalleryFunc == nil {
		panic("updateGalleryFunc not set")
	}
	return f.updateGalleryFunc(update)
}

func (f *fakeCatalog) UpdateMovie(_ context.Context, update model.MovieUpdate) (string, error) {
	if f.updateMovieFunc == nil {
		panic("updateMovieFunc not set")
	}
	return f.updateMovieFunc(update)
}
