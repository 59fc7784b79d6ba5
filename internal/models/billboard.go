package models

// Billboard is a labelled banner image. Categories reference billboards, and
// a billboard cannot be deleted while a category still points at it.
type Billboard struct {
	ID      string `json:"id"`
	StoreID string `json:"storeId"`

	// Label is the text rendered over the image.
	Label string `json:"label"`

	// ImageURL is the location of the uploaded banner image.
	ImageURL string `json:"imageUrl"`

	CreatedAt int64 `json:"createdAt"`
	UpdatedAt int64 `json:"updatedAt"`
}
