package schema

// CatalogCommentTable represents the 'catalog.comment' table
type CatalogCommentTable struct {
	Table     string
	ID        string
	DishID    string
	Author    string
	Body      string
	CreatedAt string
}

// CatalogComment is the schema definition for catalog.comment
var CatalogComment = CatalogCommentTable{
	Table:     "catalog.comment",
	ID:        "id",
	DishID:    "dishid",
	Author:    "author",
	Body:      "body",
	CreatedAt: "createdat",
}

// Columns returns all standard column names
func (t CatalogCommentTable) Columns() []string {
	return []string{t.ID, t.DishID, t.Author, t.Body, t.CreatedAt}
}
