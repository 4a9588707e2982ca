package common

import (
	"net/url"
	"strings"
	"unicode"
)

// TitleCase capitalizes each whitespace-separated word: first letter upper,
// rest lower. It is applied to names of tags, performers and studios created
// from bare scraped names, never to entities referenced by stored ID.
func TitleCase(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		r := []rune(strings.ToLower(w))
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// URLOrigin returns the scheme+host portion of rawURL ("https://example.com"),
// the grouping key for scraper health tracking and the base for synthesized
// studio URLs. It returns an empty string when rawURL has no host.
func URLOrigin(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
