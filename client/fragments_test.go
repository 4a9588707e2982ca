package client

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveFragmentsAppendsTransitiveDefinitions(t *testing.T) {
	resolved := resolveFragments(`query { scrapeSceneURL(url: $url) { ...scrapedScene } }`)

	// scrapedScene pulls in the sub-entity fragments it references.
	for _, name := range []string{"scrapedScene", "scrapedStudio", "scrapedTag", "scrapedPerformer", "scrapedMovie"} {
		assert.Contains(t, resolved, "fragment "+name+" ", name)
	}
}

func TestResolveFragmentsDefinesEachFragmentOnce(t *testing.T) {
	// scrapedStudio is referenced both directly and through scrapedScene.
	resolved := resolveFragments(`query {
		a { ...scrapedStudio }
		b { ...scrapedScene }
	}`)

	assert.Equal(t, 1, strings.Count(resolved, "fragment scrapedStudio "))
}

func TestResolveFragmentsLeavesPlainQueriesAlone(t *testing.T) {
	query := `query { allTags { id name } }`

	assert.Equal(t, query, resolveFragments(query))
}

func TestResolveFragmentsPanicsOnUnknownName(t *testing.T) {
	assert.Panics(t, func() {
		resolveFragments(`query { x { ...noSuchFragment } }`)
	})
}

func TestCompiledQueriesAreSelfContained(t *testing.T) {
	// Every reference in the pre-resolved query text must have a definition in
	// the same text.
	queries := map[string]string{
		"findScenesByTag":    queryFindScenesByTag,
		"findGalleriesByTag": queryFindGalleriesByTag,
		"scrapeSceneURL":     queryScrapeSceneURL,
		"scrapeGalleryURL":   queryScrapeGalleryURL,
		"scrapeMovieURL":     queryScrapeMovieURL,
		"scrapeScene":        queryScrapeScene,
		"scrapeGallery":      queryScrapeGallery,
	}
	for label, query := range queries {
		for _, match := range fragmentRefPattern.FindAllStringSubmatch(query, -1) {
			assert.Contains(t, query, "fragment "+match[1]+" ", "%s references %s without defining it", label, match[1])
		}
	}
}
