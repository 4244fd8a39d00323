package schema

// Series is the schema definition for media.series
var Series = MediaItemTable{
	Table:    "media.series",
	ID:       "id",
	Title:    "title",
	Language: "language",
}

// SeriesEntry is the schema definition for media.seriesentry
var SeriesEntry = MediaEntryTable{
	Table:           "media.seriesentry",
	ID:              "id",
	UserID:          "userid",
	MediaID:         "seriesid",
	Status:          "status",
	Score:           "score",
	EpisodesWatched: "episodeswatched",
	CreatedAt:       "createdat",
	UpdatedAt:       "updatedat",
}

// SeriesGenre is the schema definition for media.seriesgenre
var SeriesGenre = MediaAssociationTable{Table: "media.seriesgenre", MediaID: "seriesid", ValueID: "genreid", Name: "name", Slug: "slug"}

// SeriesActor is the schema definition for media.seriesactor
var SeriesActor = MediaAssociationTable{Table: "media.seriesactor", MediaID: "seriesid", ValueID: "personid", Name: "name"}

// SeriesNetwork is the schema definition for media.seriesnetwork
var SeriesNetwork = MediaAssociationTable{Table: "media.seriesnetwork", MediaID: "seriesid", ValueID: "networkid", Name: "name"}

// SeriesSeason is the schema definition for media.seriesseason
var SeriesSeason = MediaSeasonTable{Table: "media.seriesseason", MediaID: "seriesid", SeasonNumber: "seasonnumber", EpisodeCount: "episodecount"}

// SeriesLabel is the schema definition for media.serieslabel
var SeriesLabel = MediaLabelTable{Table: "media.serieslabel", UserID: "userid", MediaID: "seriesid", Name: "name"}
