// Package model defines the catalog entities, scraped payloads and update
// inputs exchanged with the media catalog server.
package model

// Kind identifies a catalog entity kind. It is a closed set: every
// reconciliation and scrape path switches exhaustively over it.
type Kind int

const (
	KindScene Kind = iota
	KindGallery
	KindMovie
)

func (k Kind) String() string {
	switch k {
	case KindScene:
		return "scene"
	case KindGallery:
		return "gallery"
	case KindMovie:
		return "movie"
	}
	return "unknown"
}

// Letter returns the single-letter kind code used in generated control tag
// names ("scrape_with_s_<scraperID>" etc.).
func (k Kind) Letter() string {
	switch k {
	case KindScene:
		return "s"
	case KindGallery:
		return "g"
	case KindMovie:
		return "m"
	}
	return "?"
}

// Tag is a catalog tag reference. Control tags are ordinary tags as far as
// the server is concerned; only this plugin gives them meaning.
type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// StudioRef is a reference to a catalog studio.
type StudioRef struct {
	ID string `json:"id"`
}

// PerformerRef is a reference to a catalog performer.
type PerformerRef struct {
	ID string `json:"id"`
}

// Scene is the transient per-run copy of a catalog scene. The server owns the
// canonical record; this struct only carries the fields the scrape flow reads.
type Scene struct {
	ID         string         `json:"id"`
	Title      string         `json:"title"`
	Details    string         `json:"details"`
	URL        string         `json:"url"`
	Date       string         `json:"date"`
	Rating     int            `json:"rating"`
	Studio     *StudioRef     `json:"studio"`
	Tags       []Tag          `json:"tags"`
	Performers []PerformerRef `json:"performers"`
}

// Gallery is the transient per-run copy of a catalog gallery.
type Gallery struct {
	ID         string         `json:"id"`
	Title      string         `json:"title"`
	Details    string         `json:"details"`
	URL        string         `json:"url"`
	Date       string         `json:"date"`
	Rating     int            `json:"rating"`
	Studio     *StudioRef     `json:"studio"`
	Tags       []Tag          `json:"tags"`
	Performers []PerformerRef `json:"performers"`
}

// Movie is the transient per-run copy of a catalog movie.
type Movie struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Aliases  string     `json:"aliases"`
	Date     string     `json:"date"`
	Rating   int        `json:"rating"`
	Director string     `json:"director"`
	Synopsis string     `json:"synopsis"`
	URL      string     `json:"url"`
	Studio   *StudioRef `json:"studio"`
}
