package products

import "time"

// Category is a fixed catalog grouping.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Categories is the fixed catalog category table. ID 0 means "all".
var Categories = []Category{
	{ID: 0, Name: "TODOS"},
	{ID: 1, Name: "FERTILIZANTES"},
	{ID: 2, Name: "MAQUINAS"},
	{ID: 3, Name: "INSECTICIDAS"},
	{ID: 4, Name: "VITAMINAS"},
}

// Product is a catalog entry. Availability is the stock count and never
// goes below zero.
type Product struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Category     int       `json:"category"`
	Price        float64   `json:"price"`
	Availability int       `json:"availability"`
	Image        string    `json:"image"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// InStock reports whether the product can currently be sold.
func (p Product) InStock() bool {
	return p.Availability > 0
}

// ValidCategory reports whether id names a real category (0 excluded, it
// is the "all" filter, not a category a product can belong to).
func ValidCategory(id int) bool {
	for _, c := range Categories[1:] {
		if c.ID == id {
			return true
		}
	}
	return false
}
