package schema

// Anime is the schema definition for media.anime
var Anime = MediaItemTable{
	Table:    "media.anime",
	ID:       "id",
	Title:    "title",
	Language: "language",
}

// AnimeEntry is the schema definition for media.animeentry
var AnimeEntry = MediaEntryTable{
	Table:           "media.animeentry",
	ID:              "id",
	UserID:          "userid",
	MediaID:         "animeid",
	Status:          "status",
	Score:           "score",
	EpisodesWatched: "episodeswatched",
	CreatedAt:       "createdat",
	UpdatedAt:       "updatedat",
}

// AnimeGenre is the schema definition for media.animegenre
var AnimeGenre = MediaAssociationTable{Table: "media.animegenre", MediaID: "animeid", ValueID: "genreid", Name: "name", Slug: "slug"}

// AnimeStudio is the schema definition for media.animestudio
var AnimeStudio = MediaAssociationTable{Table: "media.animestudio", MediaID: "animeid", ValueID: "studioid", Name: "name"}

// AnimeSeason is the schema definition for media.animeseason
var AnimeSeason = MediaSeasonTable{Table: "media.animeseason", MediaID: "animeid", SeasonNumber: "seasonnumber", EpisodeCount: "episodecount"}

// AnimeLabel is the schema definition for media.animelabel
var AnimeLabel = MediaLabelTable{Table: "media.animelabel", UserID: "userid", MediaID: "animeid", Name: "name"}
