package schema

// Movie is the schema definition for media.movie
var Movie = MediaItemTable{
	Table:    "media.movie",
	ID:       "id",
	Title:    "title",
	Language: "language",
	Runtime:  "runtime",
}

// MovieEntry is the schema definition for media.movieentry
var MovieEntry = MediaEntryTable{
	Table:     "media.movieentry",
	ID:        "id",
	UserID:    "userid",
	MediaID:   "movieid",
	Status:    "status",
	Score:     "score",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// MovieGenre is the schema definition for media.moviegenre
var MovieGenre = MediaAssociationTable{Table: "media.moviegenre", MediaID: "movieid", ValueID: "genreid", Name: "name", Slug: "slug"}

// MovieActor is the schema definition for media.movieactor
var MovieActor = MediaAssociationTable{Table: "media.movieactor", MediaID: "movieid", ValueID: "personid", Name: "name"}

// MovieDirector is the schema definition for media.moviedirector
var MovieDirector = MediaAssociationTable{Table: "media.moviedirector", MediaID: "movieid", ValueID: "personid", Name: "name"}

// MovieStudio is the schema definition for media.moviestudio
var MovieStudio = MediaAssociationTable{Table: "media.moviestudio", MediaID: "movieid", ValueID: "companyid", Name: "name"}

// MovieLabel is the schema definition for media.movielabel
var MovieLabel = MediaLabelTable{Table: "media.movielabel", UserID: "userid", MediaID: "movieid", Name: "name"}
