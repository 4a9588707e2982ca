package client

import (
	"context"
	"fmt"

	"github.com/mediacat/bulk-scraper/model"
	"github.com/rs/zerolog/log"
)

// Queries are resolved against the fragment table once, at init.
var (
	queryAllTags = resolveFragments(`
		query {
			allTags {
				id
				name
			}
		}`)

	mutationTagCreate = resolveFragments(`
		mutation tagCreate($input: TagCreateInput!) {
			tagCreate(input: $input) {
				id
			}
		}`)

	mutationTagDestroy = resolveFragments(`
		mutation tagDestroy($input: TagDestroyInput!) {
			tagDestroy(input: $input)
		}`)

	queryFindScenesByTag = resolveFragments(`
		query findScenesByTag($tags: [ID!]) {
			findScenes(
				scene_filter: { tags: { value: $tags, modifier: INCLUDES_ALL } }
				filter: { per_page: -1 }
			) {
				count
				scenes { ...catalogScene }
			}
		}`)

	queryFindGalleriesByTag = resolveFragments(`
		query findGalleriesByTag($tags: [ID!]) {
			findGalleries(
				gallery_filter: { tags: { value: $tags, modifier: INCLUDES_ALL } }
				filter: { per_page: -1 }
			) {
				count
				galleries { ...catalogGallery }
			}
		}`)

	queryFindMoviesMissingFrontImage = resolveFragments(`
		query {
			findMovies(
				movie_filter: { is_missing: "front_image" }
				filter: { per_page: -1 }
			) {
				count
				movies { ...catalogMovie }
			}
		}`)

	queryListSceneScrapers = resolveFragments(`
		query listSceneScrapers {
			listSceneScrapers {
				id
				name
				scene { supported_scrapes }
			}
		}`)

	queryListGalleryScrapers = resolveFragments(`
		query listGalleryScrapers {
			listGalleryScrapers {
				id
				name
				gallery { supported_scrapes }
			}
		}`)

	queryScrapeSceneURL = resolveFragments(`
		query scrapeSceneURL($url: String!) {
			scrapeSceneURL(url: $url) {
				...scrapedScene
			}
		}`)

	queryScrapeGalleryURL = resolveFragments(`
		query scrapeGalleryURL($url: String!) {
			scrapeGalleryURL(url: $url) {
				...scrapedGallery
			}
		}`)

	queryScrapeMovieURL = resolveFragments(`
		query scrapeMovieURL($url: String!) {
			scrapeMovieURL(url: $url) {
				name
				aliases
				duration
				date
				rating
				director
				url
				synopsis
				front_image
				back_image
				studio { ...scrapedStudio }
			}
		}`)

	queryScrapeScene = resolveFragments(`
		query scrapeScene($scraper_id: ID!, $scene: SceneUpdateInput!) {
			scrapeScene(scraper_id: $scraper_id, scene: $scene) {
				...scrapedScene
			}
		}`)

	queryScrapeGallery = resolveFragments(`
		query scrapeGallery($scraper_id: ID!, $gallery: GalleryUpdateInput!) {
			scrapeGallery(scraper_id: $scraper_id, gallery: $gallery) {
				...scrapedGallery
			}
		}`)

	mutationPerformerCreate = resolveFragments(`
		mutation performerCreate($name: String!) {
			performerCreate(input: { name: $name }) {
				id
			}
		}`)

	mutationPerformerUpdate = resolveFragments(`
		mutation performerUpdate($input: PerformerUpdateInput!) {
			performerUpdate(input: $input) {
				id
			}
		}`)

	mutationStudioCreate = resolveFragments(`
		mutation studioCreate($name: String!) {
			studioCreate(input: { name: $name }) {
				id
			}
		}`)

	mutationStudioUpdate = resolveFragments(`
		mutation studioUpdate($input: StudioUpdateInput!) {
			studioUpdate(input: $input) {
				id
			}
		}`)

	mutationMovieCreate = resolveFragments(`
		mutation movieCreate($name: String!) {
			movieCreate(input: { name: $name }) {
				id
			}
		}`)

	mutationMovieUpdate = resolveFragments(`
		mutation movieUpdate($input: MovieUpdateInput!) {
			movieUpdate(input: $input) {
				id
			}
		}`)

	mutationSceneUpdate = resolveFragments(`
		mutation sceneUpdate($input: SceneUpdateInput!) {
			sceneUpdate(input: $input) {
				id
			}
		}`)

	mutationGalleryUpdate = resolveFragments(`
		mutation galleryUpdate($input: GalleryUpdateInput!) {
			galleryUpdate(input: $input) {
				id
			}
		}`)
)

// CatalogClient implements Catalog against the catalog server's GraphQL API.
type CatalogClient struct {
	gql *GraphQLClient
}

var _ Catalog = (*CatalogClient)(nil)

// NewCatalogClient creates a catalog client for the given server connection.
func NewCatalogClient(conn Connection) *CatalogClient {
	return &CatalogClient{gql: NewGraphQLClient(conn)}
}

// FindTagIDByName returns the ID of the tag with exactly the given name. The
// server has no find-by-name query, so this lists all tags and matches
// locally, as the catalog UI itself does.
func (c *CatalogClient) FindTagIDByName(ctx context.Context, name string) (string, bool, error) {
	var resp struct {
		AllTags []model.Tag `json:"allTags"`
	}
	if err := c.gql.Execute(ctx, queryAllTags, nil, &resp); err != nil {
		return "", false, err
	}
	for _, tag := range resp.AllTags {
		if tag.Name == name {
			return tag.ID, true, nil
		}
	}
	return "", false, nil
}

// CreateTag creates a tag and returns its new ID.
func (c *CatalogClient) CreateTag(ctx context.Context, name string) (string, error) {
	var resp struct {
		TagCreate struct {
			ID string `json:"id"`
		} `json:"tagCreate"`
	}
	vars := map[string]any{"input": map[string]any{"name": name}}
	if err := c.gql.Execute(ctx, mutationTagCreate, vars, &resp); err != nil {
		return "", fmt.Errorf("failed to create tag %q: %w", name, err)
	}
	return resp.TagCreate.ID, nil
}

// DestroyTag deletes a tag by ID.
func (c *CatalogClient) DestroyTag(ctx context.Context, id string) error {
	vars := map[string]any{"input": map[string]any{"id": id}}
	if err := c.gql.Execute(ctx, mutationTagDestroy, vars, nil); err != nil {
		return fmt.Errorf("failed to destroy tag %s: %w", id, err)
	}
	return nil
}

// FindScenesByTag returns all scenes carrying the given tag.
func (c *CatalogClient) FindScenesByTag(ctx context.Context, tagID string) ([]model.Scene, error) {
	var resp struct {
		FindScenes struct {
			Count  int           `json:"count"`
			Scenes []model.Scene `json:"scenes"`
		} `json:"findScenes"`
	}
	vars := map[string]any{"tags": []string{tagID}}
	if err := c.gql.Execute(ctx, queryFindScenesByTag, vars, &resp); err != nil {
		return nil, err
	}
	return resp.FindScenes.Scenes, nil
}

// FindGalleriesByTag returns all galleries carrying the given tag.
func (c *CatalogClient) FindGalleriesByTag(ctx context.Context, tagID string) ([]model.Gallery, error) {
	var resp struct {
		FindGalleries struct {
			Count     int             `json:"count"`
			Galleries []model.Gallery `json:"galleries"`
		} `json:"findGalleries"`
	}
	vars := map[string]any{"tags": []string{tagID}}
	if err := c.gql.Execute(ctx, queryFindGalleriesByTag, vars, &resp); err != nil {
		return nil, err
	}
	return resp.FindGalleries.Galleries, nil
}

// FindMoviesMissingFrontImage returns all movies without a front image.
func (c *CatalogClient) FindMoviesMissingFrontImage(ctx context.Context) ([]model.Movie, error) {
	var resp struct {
		FindMovies struct {
			Count  int           `json:"count"`
			Movies []model.Movie `json:"movies"`
		} `json:"findMovies"`
	}
	if err := c.gql.Execute(ctx, queryFindMoviesMissingFrontImage, nil, &resp); err != nil {
		return nil, err
	}
	return resp.FindMovies.Movies, nil
}

type scraperListing struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Scene *struct {
		SupportedScrapes []string `json:"supported_scrapes"`
	} `json:"scene"`
	Gallery *struct {
		SupportedScrapes []string `json:"supported_scrapes"`
	} `json:"gallery"`
}

// ListScraperIDs returns the registered scraper IDs for the given kind that
// support the given capability. Movies have no scraper registry on the
// server; URL matching is the only movie scrape path.
func (c *CatalogClient) ListScraperIDs(ctx context.Context, kind model.Kind, capability ScrapeCapability) ([]string, error) {
	var query string
	switch kind {
	case model.KindScene:
		query = queryListSceneScrapers
	case model.KindGallery:
		query = queryListGalleryScrapers
	default:
		return nil, fmt.Errorf("no scraper registry for kind %s", kind)
	}

	var resp struct {
		ListSceneScrapers   []scraperListing `json:"listSceneScrapers"`
		ListGalleryScrapers []scraperListing `json:"listGalleryScrapers"`
	}
	if err := c.gql.Execute(ctx, query, nil, &resp); err != nil {
		return nil, err
	}

	listings := resp.ListSceneScrapers
	if kind == model.KindGallery {
		listings = resp.ListGalleryScrapers
	}

	var ids []string
	for _, s := range listings {
		var supported []string
		switch {
		case s.Scene != nil:
			supported = s.Scene.SupportedScrapes
		case s.Gallery != nil:
			supported = s.Gallery.SupportedScrapes
		}
		for _, mode := range supported {
			if mode == string(capability) {
				ids = append(ids, s.ID)
				break
			}
		}
	}
	return ids, nil
}

// ScrapeSceneURL asks the server to scrape a URL with whatever scene scraper
// matches it. A nil result means no scraper is registered for the URL.
func (c *CatalogClient) ScrapeSceneURL(ctx context.Context, url string) (*model.ScrapedScene, error) {
	var resp struct {
		ScrapeSceneURL *model.ScrapedScene `json:"scrapeSceneURL"`
	}
	vars := map[string]any{"url": url}
	if err := c.gql.Execute(ctx, queryScrapeSceneURL, vars, &resp); err != nil {
		return nil, err
	}
	return resp.ScrapeSceneURL, nil
}

// ScrapeGalleryURL is ScrapeSceneURL for galleries.
func (c *CatalogClient) ScrapeGalleryURL(ctx context.Context, url string) (*model.ScrapedGallery, error) {
	var resp struct {
		ScrapeGalleryURL *model.ScrapedGallery `json:"scrapeGalleryURL"`
	}
	vars := map[string]any{"url": url}
	if err := c.gql.Execute(ctx, queryScrapeGalleryURL, vars, &resp); err != nil {
		return nil, err
	}
	return resp.ScrapeGalleryURL, nil
}

// ScrapeMovieURL is ScrapeSceneURL for movies.
func (c *CatalogClient) ScrapeMovieURL(ctx context.Context, url string) (*model.ScrapedMovie, error) {
	var resp struct {
		ScrapeMovieURL *model.ScrapedMovie `json:"scrapeMovieURL"`
	}
	vars := map[string]any{"url": url}
	if err := c.gql.Execute(ctx, queryScrapeMovieURL, vars, &resp); err != nil {
		return nil, err
	}
	return resp.ScrapeMovieURL, nil
}

// ScrapeSceneWithScraper runs the named scraper against a known scene. The
// scraper receives the scene's current fields as its search fragment.
func (c *CatalogClient) ScrapeSceneWithScraper(ctx context.Context, scene model.Scene, scraperID string) (*model.ScrapedScene, error) {
	var resp struct {
		ScrapeScene *model.ScrapedScene `json:"scrapeScene"`
	}
	vars := map[string]any{
		"scraper_id": scraperID,
		"scene": map[string]any{
			"id":      scene.ID,
			"title":   scene.Title,
			"details": scene.Details,
			"url":     scene.URL,
			"date":    scene.Date,
		},
	}
	if err := c.gql.Execute(ctx, queryScrapeScene, vars, &resp); err != nil {
		return nil, err
	}
	return resp.ScrapeScene, nil
}

// ScrapeGalleryWithScraper runs the named scraper against a known gallery.
func (c *CatalogClient) ScrapeGalleryWithScraper(ctx context.Context, gallery model.Gallery, scraperID string) (*model.ScrapedGallery, error) {
	var resp struct {
		ScrapeGallery *model.ScrapedGallery `json:"scrapeGallery"`
	}
	vars := map[string]any{
		"scraper_id": scraperID,
		"gallery": map[string]any{
			"id":      gallery.ID,
			"title":   gallery.Title,
			"details": gallery.Details,
			"url":     gallery.URL,
			"date":    gallery.Date,
		},
	}
	if err := c.gql.Execute(ctx, queryScrapeGallery, vars, &resp); err != nil {
		return nil, err
	}
	return resp.ScrapeGallery, nil
}

// CreatePerformer creates a performer with the bare name, then applies the
// remaining fields with an update. The create mutation only accepts a name;
// everything else goes through the update input.
func (c *CatalogClient) CreatePerformer(ctx context.Context, data model.PerformerCreate) (string, error) {
	var resp struct {
		PerformerCreate struct {
			ID string `json:"id"`
		} `json:"performerCreate"`
	}
	vars := map[string]any{"name": data.Name}
	if err := c.gql.Execute(ctx, mutationPerformerCreate, vars, &resp); err != nil {
		return "", fmt.Errorf("failed to create performer %q: %w", data.Name, err)
	}
	id := resp.PerformerCreate.ID

	if data.URL != "" {
		update := map[string]any{"id": id, "url": data.URL}
		if err := c.gql.Execute(ctx, mutationPerformerUpdate, map[string]any{"input": update}, nil); err != nil {
			// The performer exists; losing the URL is not worth failing the item.
			log.Warn().Err(err).Str("performer_id", id).Msg("Failed to set URL on created performer")
		}
	}
	return id, nil
}

// CreateStudio creates a studio with the bare name, then applies the URL.
func (c *CatalogClient) CreateStudio(ctx context.Context, data model.StudioCreate) (string, error) {
	var resp struct {
		StudioCreate struct {
			ID string `json:"id"`
		} `json:"studioCreate"`
	}
	vars := map[string]any{"name": data.Name}
	if err := c.gql.Execute(ctx, mutationStudioCreate, vars, &resp); err != nil {
		return "", fmt.Errorf("failed to create studio %q: %w", data.Name, err)
	}
	id := resp.StudioCreate.ID

	if data.URL != "" {
		update := map[string]any{"id": id, "url": data.URL}
		if err := c.gql.Execute(ctx, mutationStudioUpdate, map[string]any{"input": update}, nil); err != nil {
			log.Warn().Err(err).Str("studio_id", id).Msg("Failed to set URL on created studio")
		}
	}
	return id, nil
}

// CreateMovie creates a movie with the bare name, then applies the remaining
// scraped fields with an update.
func (c *CatalogClient) CreateMovie(ctx context.Context, data model.MovieCreate) (string, error) {
	var resp struct {
		MovieCreate struct {
			ID string `json:"id"`
		} `json:"movieCreate"`
	}
	vars := map[string]any{"name": data.Name}
	if err := c.gql.Execute(ctx, mutationMovieCreate, vars, &resp); err != nil {
		return "", fmt.Errorf("failed to create movie %q: %w", data.Name, err)
	}
	id := resp.MovieCreate.ID

	update := map[string]any{"id": id}
	if data.Aliases != "" {
		update["aliases"] = data.Aliases
	}
	if data.Duration != "" {
		update["duration"] = data.Duration
	}
	if data.Date != "" {
		update["date"] = data.Date
	}
	if data.Synopsis != "" {
		update["synopsis"] = data.Synopsis
	}
	if data.URL != "" {
		update["url"] = data.URL
	}
	if data.Director != "" {
		update["director"] = data.Director
	}
	if len(update) > 1 {
		if err := c.gql.Execute(ctx, mutationMovieUpdate, map[string]any{"input": update}, nil); err != nil {
			log.Warn().Err(err).Str("movie_id", id).Msg("Failed to apply scraped fields to created movie")
		}
	}
	return id, nil
}

// UpdateScene applies a sparse scene update and returns the scene ID.
func (c *CatalogClient) UpdateScene(ctx context.Context, update model.SceneUpdate) (string, error) {
	var resp struct {
		SceneUpdate struct {
			ID string `json:"id"`
		} `json:"sceneUpdate"`
	}
	if err := c.gql.Execute(ctx, mutationSceneUpdate, map[string]any{"input": update}, &resp); err != nil {
		return "", err
	}
	return resp.SceneUpdate.ID, nil
}

// UpdateGallery applies a sparse gallery update and returns the gallery ID.
func (c *CatalogClient) UpdateGallery(ctx context.Context, update model.GalleryUpdate) (string, error) {
	var resp struct {
		GalleryUpdate struct {
			ID string `json:"id"`
		} `json:"galleryUpdate"`
	}
	if err := c.gql.Execute(ctx, mutationGalleryUpdate, map[string]any{"input": update}, &resp); err != nil {
		return "", err
	}
	return resp.GalleryUpdate.ID, nil
}

// UpdateMovie applies a sparse movie update and returns the movie ID.
func (c *CatalogClient) UpdateMovie(ctx context.Context, update model.MovieUpdate) (string, error) {
	var resp struct {
		MovieUpdate struct {
			ID string `json:"id"`
		} `json:"movieUpdate"`
	}
	if err := c.gql.Execute(ctx, mutationMovieUpdate, map[string]any{"input": update}, &resp); err != nil {
		return "", err
	}
	return resp.MovieUpdate.ID, nil
}
