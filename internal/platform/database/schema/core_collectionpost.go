package schema

// CoreCollectionPostTable represents the 'core.collectionpost' table,
// the ordered many-to-many join between collections and posts.
type CoreCollectionPostTable struct {
	Table        string
	CollectionID string
	PostID       string
	SortOrder    string
	AddedAt      string
}

// CoreCollectionPost is the schema definition for core.collectionpost
var CoreCollectionPost = CoreCollectionPostTable{
	Table:        "core.collectionpost",
	CollectionID: "collectionid",
	PostID:       "postid",
	SortOrder:    "sortorder",
	AddedAt:      "addedat",
}
