package models

// CatalogEntry is an id→label row of a reference catalog (localities, zones,
// neighborhoods, payment terms, categories, brands).
type CatalogEntry struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// CatalogEntryRequest is the body of catalog mutations (rubros, marcas).
type CatalogEntryRequest struct {
	Name string `json:"name"`
}
