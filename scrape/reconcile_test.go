package scrape

import (
	"context"
	"fmt"
	"testing"

	"github.com/mediacat/bulk-scraper/common"
	"github.com/mediacat/bulk-scraper/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reconcilerConfig() common.Config {
	cfg := common.Default()
	cfg.CreateMissingTags = true
	cfg.CreateMissingStudios = true
	return cfg
}

func TestReconcileSceneStripsControlTags(t *testing.T) {
	var got *model.SceneUpdate
	cat := &fakeCatalog{
		updateSceneFunc: func(update model.SceneUpdate) (string, error) {
			got = &update
			return update.ID, nil
		},
	}
	rec := NewReconciler(cat, reconcilerConfig(), []string{"ctl-1", "ctl-2"})

	scene := model.Scene{
		ID:  "42",
		URL: "https://sitea.example/scenes/42",
		Tags: []model.Tag{
			{ID: "5", Name: "Existing"},
			{ID: "ctl-1", Name: "scrape_bulk_url"},
		},
	}
	data := &model.ScrapedScene{Title: "A Title"}

	require.NoError(t, rec.ReconcileScene(context.Background(), scene, data))
	require.NotNil(t, got)

	// The merged tag set is always sent, minus the control tags, even though
	// the payload carried no tags of its own.
	assert.Equal(t, []string{"5"}, got.TagIDs)
	require.NotNil(t, got.Title)
	assert.Equal(t, "A Title", *got.Title)
}

func TestReconcileSceneMergesScrapedTags(t *testing.T) {
	var got *model.SceneUpdate
	cat := &fakeCatalog{
		createTagFunc: func(name string) (string, error) {
			assert.Equal(t, "New Tag", name)
			return "9", nil
		},
		updateSceneFunc: func(update model.SceneUpdate) (string, error) {
			got = &update
			return update.ID, nil
		},
	}
	rec := NewReconciler(cat, reconcilerConfig(), []string{"ctl-1"})

	scene := model.Scene{
		ID: "42",
		Tags: []model.Tag{
			{ID: "5", Name: "Existing"},
			{ID: "ctl-1", Name: "scrape_bulk_url"},
		},
	}
	data := &model.ScrapedScene{
		Tags: []model.ScrapedTag{
			{StoredID: "5", Name: "Existing"},
			{Name: "new tag"},
		},
	}

	require.NoError(t, rec.ReconcileScene(context.Background(), scene, data))
	require.NotNil(t, got)

	// Stored IDs pass through, bare names are title-cased and created, and the
	// union is deduplicated.
	assert.Equal(t, []string{"5", "9"}, got.TagIDs)
}

func TestReconcileSceneDropsBareTagNamesWhenCreationDisabled(t *testing.T) {
	var got *model.SceneUpdate
	cfg := reconcilerConfig()
	cfg.CreateMissingTags = false
	cat := &fakeCatalog{
		updateSceneFunc: func(update model.SceneUpdate) (string, error) {
			got = &update
			return update.ID, nil
		},
	}
	rec := NewReconciler(cat, cfg, nil)

	scene := model.Scene{ID: "42"}
	data := &model.ScrapedScene{
		Tags: []model.ScrapedTag{{Name: "new tag"}},
	}

	require.NoError(t, rec.ReconcileScene(context.Background(), scene, data))
	require.NotNil(t, got)
	assert.Empty(t, got.TagIDs)
	assert.NotNil(t, got.TagIDs)
}

func TestReconcileSceneTagCreationFailureDropsEntryOnly(t *testing.T) {
	var got *model.SceneUpdate
	cat := &fakeCatalog{
		createTagFunc: func(name string) (string, error) {
			return "", fmt.Errorf("duplicate name")
		},
		updateSceneFunc: func(update model.SceneUpdate) (string, error) {
			got = &update
			return update.ID, nil
		},
	}
	rec := NewReconciler(cat, reconcilerConfig(), nil)

	scene := model.Scene{ID: "42", Tags: []model.Tag{{ID: "5"}}}
	data := &model.ScrapedScene{
		Tags: []model.ScrapedTag{{Name: "bad tag"}, {StoredID: "7"}},
	}

	require.NoError(t, rec.ReconcileScene(context.Background(), scene, data))
	require.NotNil(t, got)
	assert.Equal(t, []string{"5", "7"}, got.TagIDs)
}

func TestReconcileSceneImageGate(t *testing.T) {
	var got *model.SceneUpdate
	cat := &fakeCatalog{
		updateSceneFunc: func(update model.SceneUpdate) (string, error) {
			got = &update
			return update.ID, nil
		},
	}
	rec := NewReconciler(cat, reconcilerConfig(), nil)
	scene := model.Scene{ID: "42"}

	data := &model.ScrapedScene{Image: "https://sitea.example/cover.jpg"}
	require.NoError(t, rec.ReconcileScene(context.Background(), scene, data))
	assert.Nil(t, got.CoverImage)

	data = &model.ScrapedScene{Image: "data:image/jpeg;base64,AAAA"}
	require.NoError(t, rec.ReconcileScene(context.Background(), scene, data))
	require.NotNil(t, got.CoverImage)
	assert.Equal(t, "data:image/jpeg;base64,AAAA", *got.CoverImage)
}

func TestReconcileScenePerformersReplaceWhenPresent(t *testing.T) {
	var got *model.SceneUpdate
	cat := &fakeCatalog{
		updateSceneFunc: func(update model.SceneUpdate) (string, error) {
			got = &update
			return update.ID, nil
		},
	}
	rec := NewReconciler(cat, reconcilerConfig(), nil)

	scene := model.Scene{
		ID:         "42",
		Performers: []model.PerformerRef{{ID: "p1"}, {ID: "p2"}},
	}
	data := &model.ScrapedScene{
		Performers: []model.ScrapedPerformer{{StoredID: "p3"}},
	}

	require.NoError(t, rec.ReconcileScene(context.Background(), scene, data))
	assert.Equal(t, []string{"p3"}, got.PerformerIDs)

	// No scraped performers means the field stays unset and the existing
	// assignment is untouched.
	require.NoError(t, rec.ReconcileScene(context.Background(), scene, &model.ScrapedScene{Title: "x"}))
	assert.Nil(t, got.PerformerIDs)
}

func TestReconcileSceneCreatesStudioWithOriginURL(t *testing.T) {
	var created *model.StudioCreate
	var got *model.SceneUpdate
	cat := &fakeCatalog{
		createStudioFunc: func(data model.StudioCreate) (string, error) {
			created = &data
			return "st-1", nil
		},
		updateSceneFunc: func(update model.SceneUpdate) (string, error) {
			got = &update
			return update.ID, nil
		},
	}
	rec := NewReconciler(cat, reconcilerConfig(), nil)

	scene := model.Scene{ID: "42", URL: "https://sitea.example/scenes/42?x=1"}
	data := &model.ScrapedScene{
		Studio: &model.ScrapedStudio{Name: "some studio"},
	}

	require.NoError(t, rec.ReconcileScene(context.Background(), scene, data))

	require.NotNil(t, created)
	assert.Equal(t, "Some Studio", created.Name)
	assert.Equal(t, "https://sitea.example", created.URL)
	require.NotNil(t, got.StudioID)
	assert.Equal(t, "st-1", *got.StudioID)
}

func TestReconcileSceneLeavesStudioUntouchedWhenCreationDisabled(t *testing.T) {
	var got *model.SceneUpdate
	cfg := reconcilerConfig()
	cfg.CreateMissingStudios = false
	cat := &fakeCatalog{
		updateSceneFunc: func(update model.SceneUpdate) (string, error) {
			got = &update
			return update.ID, nil
		},
	}
	rec := NewReconciler(cat, cfg, nil)

	scene := model.Scene{ID: "42"}
	data := &model.ScrapedScene{
		Studio: &model.ScrapedStudio{Name: "some studio"},
	}

	require.NoError(t, rec.ReconcileScene(context.Background(), scene, data))
	assert.Nil(t, got.StudioID)
}

func TestReconcileSceneMovieCreateFailureSkipsAssociation(t *testing.T) {
	var got *model.SceneUpdate
	cfg := reconcilerConfig()
	cfg.CreateMissingMovies = true
	cat := &fakeCatalog{
		createMovieFunc: func(data model.MovieCreate) (string, error) {
			return "", fmt.Errorf("server rejected movie")
		},
		updateSceneFunc: func(update model.SceneUpdate) (string, error) {
			got = &update
			return update.ID, nil
		},
	}
	rec := NewReconciler(cat, cfg, nil)

	scene := model.Scene{ID: "42"}
	data := &model.ScrapedScene{
		Movies: []model.ScrapedMovieRef{
			{StoredID: "m1"},
			{Name: "Unknown Movie"},
		},
	}

	require.NoError(t, rec.ReconcileScene(context.Background(), scene, data))
	assert.Equal(t, []model.MovieAssociation{{MovieID: "m1"}}, got.Movies)
}

func TestReconcileSceneUpdateFailureReturnsError(t *testing.T) {
	cat := &fakeCatalog{
		updateSceneFunc: func(update model.SceneUpdate) (string, error) {
			return "", fmt.Errorf("mutation rejected")
		},
	}
	rec := NewReconciler(cat, reconcilerConfig(), nil)

	err := rec.ReconcileScene(context.Background(), model.Scene{ID: "42"}, &model.ScrapedScene{Title: "x"})

	assert.Error(t, err)
}

func TestReconcileGalleryStripsControlTags(t *testing.T) {
	var got *model.GalleryUpdate
	cat := &fakeCatalog{
		updateGalleryFunc: func(update model.GalleryUpdate) (string, error) {
			got = &update
			return update.ID, nil
		},
	}
	rec := NewReconciler(cat, reconcilerConfig(), []string{"ctl-1"})

	gallery := model.Gallery{
		ID:   "7",
		Tags: []model.Tag{{ID: "ctl-1"}, {ID: "3"}},
	}
	data := &model.ScrapedGallery{Title: "Album"}

	require.NoError(t, rec.ReconcileGallery(context.Background(), gallery, data))
	require.NotNil(t, got)
	assert.Equal(t, []string{"3"}, got.TagIDs)
}

func TestReconcileMovieCopiesSparseFields(t *testing.T) {
	var got *model.MovieUpdate
	cat := &fakeCatalog{
		updateMovieFunc: func(update model.MovieUpdate) (string, error) {
			got = &update
			return update.ID, nil
		},
	}
	rec := NewReconciler(cat, reconcilerConfig(), nil)

	movie := model.Movie{ID: "m1", URL: "https://siteb.example/movies/1"}
	data := &model.ScrapedMovie{
		Date:       "2020-01-02",
		Duration:   "01:30:00",
		Director:   "Someone",
		FrontImage: "data:image/png;base64,BBBB",
		BackImage:  "https://siteb.example/back.jpg",
	}

	require.NoError(t, rec.ReconcileMovie(context.Background(), movie, data))
	require.NotNil(t, got)
	assert.Equal(t, "m1", got.ID)
	require.NotNil(t, got.Date)
	assert.Equal(t, "2020-01-02", *got.Date)
	require.NotNil(t, got.Duration)
	assert.Equal(t, "01:30:00", *got.Duration)
	require.NotNil(t, got.Director)
	assert.Equal(t, "Someone", *got.Director)
	require.NotNil(t, got.FrontImage)
	assert.Nil(t, got.BackImage)
	assert.Nil(t, got.Aliases)
	assert.Nil(t, got.Synopsis)
}
