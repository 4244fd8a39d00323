package schema

// Book is the schema definition for media.book
var Book = MediaItemTable{
	Table:     "media.book",
	ID:        "id",
	Title:     "title",
	Language:  "language",
	PageCount: "pagecount",
}

// BookEntry is the schema definition for media.bookentry
var BookEntry = MediaEntryTable{
	Table:     "media.bookentry",
	ID:        "id",
	UserID:    "userid",
	MediaID:   "bookid",
	Status:    "status",
	Score:     "score",
	PagesRead: "pagesread",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// BookGenre is the schema definition for media.bookgenre
var BookGenre = MediaAssociationTable{Table: "media.bookgenre", MediaID: "bookid", ValueID: "genreid", Name: "name", Slug: "slug"}

// BookAuthor is the schema definition for media.bookauthor
var BookAuthor = MediaAssociationTable{Table: "media.bookauthor", MediaID: "bookid", ValueID: "authorid", Name: "name"}

// BookPublisher is the schema definition for media.bookpublisher
var BookPublisher = MediaAssociationTable{Table: "media.bookpublisher", MediaID: "bookid", ValueID: "publisherid", Name: "name"}

// BookLabel is the schema definition for media.booklabel
var BookLabel = MediaLabelTable{Table: "media.booklabel", UserID: "userid", MediaID: "bookid", Name: "name"}
