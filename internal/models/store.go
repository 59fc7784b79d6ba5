package models

// Store is the root of the ownership tree.
type Store struct {
	// ID is the unique identifier for the store (UUID format).
	ID string `json:"id"`

	// Name is the display name of the store.
	Name string `json:"name"`

	// UserID is the id of the owning principal.
	UserID string `json:"userId"`

	CreatedAt int64 `json:"createdAt"`
	UpdatedAt int64 `json:"updatedAt"`
}
