package schema

// Game is the schema definition for media.game
var Game = MediaItemTable{
	Table: "media.game",
	ID:    "id",
	Title: "title",
}

// GameEntry is the schema definition for media.gameentry.
// Playtime is stored in minutes.
var GameEntry = MediaEntryTable{
	Table:     "media.gameentry",
	ID:        "id",
	UserID:    "userid",
	MediaID:   "gameid",
	Status:    "status",
	Score:     "score",
	Playtime:  "playtime",
	Platform:  "platform",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// GameGenre is the schema definition for media.gamegenre
var GameGenre = MediaAssociationTable{Table: "media.gamegenre", MediaID: "gameid", ValueID: "genreid", Name: "name", Slug: "slug"}

// GameDeveloper is the schema definition for media.gamedeveloper
var GameDeveloper = MediaAssociationTable{Table: "media.gamedeveloper", MediaID: "gameid", ValueID: "companyid", Name: "name"}

// GamePerspective is the schema definition for media.gameperspective
var GamePerspective = MediaAssociationTable{Table: "media.gameperspective", MediaID: "gameid", ValueID: "perspectiveid", Name: "name", Slug: "slug"}

// GameLabel is the schema definition for media.gamelabel
var GameLabel = MediaLabelTable{Table: "media.gamelabel", UserID: "userid", MediaID: "gameid", Name: "name"}
