// Package model holds the GORM table definitions.
package model

// All lists every table model in dependency order for migrations.
func All() []any {
	return []any{
		&CategoryModel{},
		&BrandModel{},
		&ColorModel{},
		&ItemModel{},
		&ItemImageModel{},
		&StockUnitModel{},
		&ReviewModel{},
		&CartLineModel{},
		&WishlistLineModel{},
		&OrderModel{},
	}
}
