package catalog

import "github.com/shopspring/decimal"

type Category string

const (
	CategoryClothing Category = "CLOTHING"
	CategoryToys     Category = "TOYS"
	CategoryFeeding  Category = "FEEDING"
	CategoryNursery  Category = "NURSERY"
	CategoryTravel   Category = "TRAVEL"
)

type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    Category        `json:"category"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"imageUrl"`
	InStock     bool            `json:"inStock"`
}
