package model

// Update inputs mirror the server's partial-update semantics: a nil pointer
// leaves the field untouched, a present field is written verbatim. Association
// lists (tag_ids, performer_ids, movies) are destructively replaced whenever
// they are present in the input.

// MovieAssociation links a movie to a scene. SceneIndex is always sent, nil
// when the ordering within the movie is unknown.
type MovieAssociation struct {
	MovieID    string `json:"movie_id"`
	SceneIndex *int   `json:"scene_index"`
}

// SceneUpdate is the input to the scene update mutation. TagIDs has no
// omitempty: the merged tag set is always sent so control tags are stripped
// on every successful update.
type SceneUpdate struct {
	ID           string             `json:"id"`
	Title        *string            `json:"title,omitempty"`
	Details      *string            `json:"details,omitempty"`
	URL          *string            `json:"url,omitempty"`
	Date         *string            `json:"date,omitempty"`
	CoverImage   *string            `json:"cover_image,omitempty"`
	StudioID     *string            `json:"studio_id,omitempty"`
	TagIDs       []string           `json:"tag_ids"`
	PerformerIDs []string           `json:"performer_ids,omitempty"`
	Movies       []MovieAssociation `json:"movies,omitempty"`
}

// GalleryUpdate is the input to the gallery update mutation.
type GalleryUpdate struct {
	ID           string   `json:"id"`
	Title        *string  `json:"title,omitempty"`
	Details      *string  `json:"details,omitempty"`
	URL          *string  `json:"url,omitempty"`
	Date         *string  `json:"date,omitempty"`
	CoverImage   *string  `json:"cover_image,omitempty"`
	StudioID     *string  `json:"studio_id,omitempty"`
	TagIDs       []string `json:"tag_ids"`
	PerformerIDs []string `json:"performer_ids,omitempty"`
}

// MovieUpdate is the input to the movie update mutation. Movies carry no tag
// set, so every field is optional.
type MovieUpdate struct {
	ID         string  `json:"id"`
	Name       *string `json:"name,omitempty"`
	Aliases    *string `json:"aliases,omitempty"`
	Duration   *string `json:"duration,omitempty"`
	Date       *string `json:"date,omitempty"`
	Director   *string `json:"director,omitempty"`
	Synopsis   *string `json:"synopsis,omitempty"`
	URL        *string `json:"url,omitempty"`
	FrontImage *string `json:"front_image,omitempty"`
	BackImage  *string `json:"back_image,omitempty"`
	StudioID   *string `json:"studio_id,omitempty"`
}

// PerformerCreate carries the fields propagated when creating a missing
// performer from a scraped entry.
type PerformerCreate struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// StudioCreate carries the fields propagated when creating a missing studio.
type StudioCreate struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// MovieCreate carries the fields propagated when creating a missing movie.
type MovieCreate struct {
	Name     string `json:"name"`
	Aliases  string `json:"aliases,omitempty"`
	Date     string `json:"date,omitempty"`
	Synopsis string `json:"synopsis,omitempty"`
	URL      string `json:"url,omitempty"`
	Director string `json:"director,omitempty"`
	Duration string `json:"duration,omitempty"`
}

// Str returns a pointer to s for building sparse update inputs.
func Str(s string) *string { return &s }
