package client

import (
	"fmt"
	"regexp"
	"strings"
)

// The named fragments below form a static, acyclic dependency graph. Every
// query in catalog.go is resolved against it exactly once, at package init,
// so no fragment work happens per call.

var gqlFragments = map[string]string{
	"catalogScene": `
		fragment catalogScene on Scene {
			id
			title
			details
			url
			date
			rating
			studio { id }
			tags { id name }
			performers { id }
		}`,
	"catalogGallery": `
		fragment catalogGallery on Gallery {
			id
			title
			details
			url
			date
			rating
			studio { id }
			tags { id name }
			performers { id }
		}`,
	"catalogMovie": `
		fragment catalogMovie on Movie {
			id
			name
			aliases
			date
			rating
			director
			synopsis
			url
			studio { id }
		}`,
	"scrapedTag": `
		fragment scrapedTag on ScrapedSceneTag {
			stored_id
			name
		}`,
	"scrapedPerformer": `
		fragment scrapedPerformer on ScrapedScenePerformer {
			stored_id
			name
			url
		}`,
	"scrapedStudio": `
		fragment scrapedStudio on ScrapedSceneStudio {
			stored_id
			name
			url
		}`,
	"scrapedMovie": `
		fragment scrapedMovie on ScrapedSceneMovie {
			stored_id
			name
			aliases
			date
			synopsis
			url
			director
			duration
		}`,
	"scrapedScene": `
		fragment scrapedScene on ScrapedScene {
			title
			details
			url
			date
			image
			studio { ...scrapedStudio }
			tags { ...scrapedTag }
			performers { ...scrapedPerformer }
			movies { ...scrapedMovie }
		}`,
	"scrapedGallery": `
		fragment scrapedGallery on ScrapedGallery {
			title
			details
			url
			date
			image
			studio { ...scrapedStudio }
			tags { ...scrapedTag }
			performers { ...scrapedPerformer }
		}`,
}

var fragmentRefPattern = regexp.MustCompile(`\.\.\.(\w+)`)

// resolveFragments appends the definition of every fragment the query
// references, transitively, and returns the self-contained query text. It
// panics on an unknown fragment name; the fragment table is compiled in, so
// that is a programming error, not a runtime condition.
func resolveFragments(query string) string {
	resolved := query
	for {
		added := false
		for _, match := range fragmentRefPattern.FindAllStringSubmatch(resolved, -1) {
			name := match[1]
			if strings.Contains(resolved, "fragment "+name+" ") {
				continue
			}
			def, ok := gqlFragments[name]
			if !ok {
				panic(fmt.Sprintf("undefined graphql fragment %q", name))
			}
			resolved += "\n" + def
			added = true
		}
		if !added {
			return resolved
		}
	}
}
