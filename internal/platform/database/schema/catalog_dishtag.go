package schema

// CatalogDishTagTable represents the 'catalog.dishtag' table
type CatalogDishTagTable struct {
	Table  string
	DishID string
	TagID  string
}

// CatalogDishTag is the schema definition for catalog.dishtag
var CatalogDishTag = CatalogDishTagTable{
	Table:  "catalog.dishtag",
	DishID: "dishid",
	TagID:  "tagid",
}
