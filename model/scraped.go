package model

// Scraped payloads are untrusted, sparse results produced by a server-side
// scraper for a single item. A zero-valued field means the scraper did not
// provide it; an explicitly empty value from a scraper is indistinguishable
// from an absent one, matching the server's own treatment of these payloads.

// ScrapedTag is a tag entry inside a scraped payload. Either StoredID refers
// to an existing catalog tag, or Name is a bare name needing resolution.
type ScrapedTag struct {
	StoredID string `json:"stored_id"`
	Name     string `json:"name"`
}

// ScrapedPerformer is a performer entry inside a scraped payload.
type ScrapedPerformer struct {
	StoredID string `json:"stored_id"`
	Name     string `json:"name"`
	URL      string `json:"url"`
}

// ScrapedStudio is the studio entry inside a scraped payload.
type ScrapedStudio struct {
	StoredID string `json:"stored_id"`
	Name     string `json:"name"`
	URL      string `json:"url"`
}

// ScrapedMovieRef is a movie entry inside a scraped scene payload.
type ScrapedMovieRef struct {
	StoredID string `json:"stored_id"`
	Name     string `json:"name"`
	Aliases  string `json:"aliases"`
	Date     string `json:"date"`
	Synopsis string `json:"synopsis"`
	URL      string `json:"url"`
	Director string `json:"director"`
	Duration string `json:"duration"`
}

// ScrapedScene is the scraper result for a scene.
type ScrapedScene struct {
	Title      string             `json:"title"`
	Details    string             `json:"details"`
	URL        string             `json:"url"`
	Date       string             `json:"date"`
	Image      string             `json:"image"`
	Studio     *ScrapedStudio     `json:"studio"`
	Tags       []ScrapedTag       `json:"tags"`
	Performers []ScrapedPerformer `json:"performers"`
	Movies     []ScrapedMovieRef  `json:"movies"`
}

// IsEmpty reports whether every field of the payload is empty. An empty
// payload means a scraper matched but found nothing; the item is skipped
// without issuing an update.
func (s *ScrapedScene) IsEmpty() bool {
	return s.Title == "" && s.Details == "" && s.URL == "" && s.Date == "" &&
		s.Image == "" && s.Studio == nil && len(s.Tags) == 0 &&
		len(s.Performers) == 0 && len(s.Movies) == 0
}

// ScrapedGallery is the scraper result for a gallery.
type ScrapedGallery struct {
	Title      string             `json:"title"`
	Details    string             `json:"details"`
	URL        string             `json:"url"`
	Date       string             `json:"date"`
	Image      string             `json:"image"`
	Studio     *ScrapedStudio     `json:"studio"`
	Tags       []ScrapedTag       `json:"tags"`
	Performers []ScrapedPerformer `json:"performers"`
}

// IsEmpty reports whether every field of the payload is empty.
func (s *ScrapedGallery) IsEmpty() bool {
	return s.Title == "" && s.Details == "" && s.URL == "" && s.Date == "" &&
		s.Image == "" && s.Studio == nil && len(s.Tags) == 0 &&
		len(s.Performers) == 0
}

// ScrapedMovie is the scraper result for a movie.
type ScrapedMovie struct {
	Name       string         `json:"name"`
	Aliases    string         `json:"aliases"`
	Duration   string         `json:"duration"`
	Date       string         `json:"date"`
	Rating     string         `json:"rating"`
	Director   string         `json:"director"`
	URL        string         `json:"url"`
	Synopsis   string         `json:"synopsis"`
	FrontImage string         `json:"front_image"`
	BackImage  string         `json:"back_image"`
	Studio     *ScrapedStudio `json:"studio"`
}

// IsEmpty reports whether every field of the payload is empty.
func (s *ScrapedMovie) IsEmpty() bool {
	return s.Name == "" && s.Aliases == "" && s.Duration == "" && s.Date == "" &&
		s.Rating == "" && s.Director == "" && s.URL == "" && s.Synopsis == "" &&
		s.FrontImage == "" && s.BackImage == "" && s.Studio == nil
}
