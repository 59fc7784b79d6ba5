package models

import "github.com/shopspring/decimal"

// Product is a sellable item in a store.
type Product struct {
	ID      string `json:"id"`
	StoreID string `json:"storeId"`

	// CategoryID, ColorID and SizeID must reference rows in the same store.
	CategoryID string `json:"categoryId"`
	ColorID    string `json:"colorId"`
	SizeID     string `json:"sizeId"`

	Name string `json:"name"`

	// Price is an exact decimal amount. It serializes as a JSON string.
	Price decimal.Decimal `json:"price"`

	// IsFeatured marks products shown on the storefront home page.
	IsFeatured bool `json:"isFeatured"`

	// IsArchived hides the product from storefront listings without deleting it.
	IsArchived bool `json:"isArchived"`

	// Images are kept in the order they were submitted.
	Images []Image `json:"images"`

	// Category, Color and Size are the referenced rows, loaded on reads.
	Category *Category `json:"category,omitempty"`
	Color    *Color    `json:"color,omitempty"`
	Size     *Size     `json:"size,omitempty"`

	CreatedAt int64 `json:"createdAt"`
	UpdatedAt int64 `json:"updatedAt"`
}

// Image is one entry of a product's image gallery.
type Image struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	URL       string `json:"url"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}
