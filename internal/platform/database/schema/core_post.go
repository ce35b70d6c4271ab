package schema

// CorePostTable represents the 'core.post' table
type CorePostTable struct {
	Table        string
	ID           string
	Title        string
	Slug         string
	Status       string
	Featured     string
	FeatureImage string
	PublishedAt  string
	CreatedAt    string
	UpdatedAt    string
	DeletedAt    string
}

// CorePost is the schema definition for core.post
var CorePost = CorePostTable{
	Table:        "core.post",
	ID:           "id",
	Title:        "title",
	Slug:         "slug",
	Status:       "status",
	Featured:     "featured",
	FeatureImage: "featureimage",
	PublishedAt:  "publishedat",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
	DeletedAt:    "deletedat",
}
