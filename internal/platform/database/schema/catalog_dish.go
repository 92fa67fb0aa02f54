package schema

// CatalogDishTable represents the 'catalog.dish' table
type CatalogDishTable struct {
	Table     string
	ID        string
	Title     string
	Anons     string
	Text      string
	Image     string
	CreatedAt string
	UpdatedAt string

	// TitleKey is the unique constraint on Title.
	TitleKey string
}

// CatalogDish is the schema definition for catalog.dish
var CatalogDish = CatalogDishTable{
	Table:     "catalog.dish",
	ID:        "id",
	Title:     "title",
	Anons:     "anons",
	Text:      "text",
	Image:     "image",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
	TitleKey:  "dish_title_key",
}

// Columns returns all standard column names
func (t CatalogDishTable) Columns() []string {
	return []string{t.ID, t.Title, t.Anons, t.Text, t.Image, t.CreatedAt, t.UpdatedAt}
}
