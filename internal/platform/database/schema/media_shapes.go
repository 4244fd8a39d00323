package schema

// The media domains share a handful of table shapes. Columns a domain does
// not carry are left empty.

// MediaItemTable represents a catalogue table such as 'media.movie'.
type MediaItemTable struct {
	Table     string
	ID        string
	Title     string
	Language  string
	Runtime   string
	PageCount string
}

// MediaEntryTable represents a per-user list table such as 'media.movieentry'.
type MediaEntryTable struct {
	Table           string
	ID              string
	UserID          string
	MediaID         string
	Status          string
	Score           string
	EpisodesWatched string
	PagesRead       string
	Playtime        string
	Platform        string
	CreatedAt       string
	UpdatedAt       string
}

// MediaAssociationTable represents a media-to-dimension junction such as
// 'media.moviegenre' or 'media.bookauthor'.
type MediaAssociationTable struct {
	Table   string
	MediaID string
	ValueID string
	Name    string
	Slug    string
}

// MediaLabelTable represents user-defined labels such as 'media.movielabel'.
type MediaLabelTable struct {
	Table   string
	UserID  string
	MediaID string
	Name    string
}

// MediaSeasonTable represents per-season episode counts for TV domains.
type MediaSeasonTable struct {
	Table        string
	MediaID      string
	SeasonNumber string
	EpisodeCount string
}
