package models

// Category groups products and points at the billboard shown on its page.
type Category struct {
	ID      string `json:"id"`
	StoreID string `json:"storeId"`

	// BillboardID must reference a Billboard in the same store.
	BillboardID string `json:"billboardId"`

	Name string `json:"name"`

	// Billboard is the referenced billboard, loaded on reads.
	Billboard *Billboard `json:"billboard,omitempty"`

	CreatedAt int64 `json:"createdAt"`
	UpdatedAt int64 `json:"updatedAt"`
}
