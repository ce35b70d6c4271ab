package schema

// CoreCollectionTable represents the 'core.collection' table
type CoreCollectionTable struct {
	Table        string
	ID           string
	Title        string
	Slug         string
	Description  string
	Type         string
	Filter       string
	FeatureImage string
	Deletable    string
	Deleted      string
	CreatedAt    string
	UpdatedAt    string
}

// CoreCollection is the schema definition for core.collection
var CoreCollection = CoreCollectionTable{
	Table:        "core.collection",
	ID:           "id",
	Title:        "title",
	Slug:         "slug",
	Description:  "description",
	Type:         "type",
	Filter:       "filter",
	FeatureImage: "featureimage",
	Deletable:    "deletable",
	Deleted:      "deleted",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}
