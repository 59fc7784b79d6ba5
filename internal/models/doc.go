// Package models defines the core domain models for the store admin backend.
//
// # Ownership
//
// A Store is the root of the ownership tree. Every other model carries a
// StoreID and is owned transitively by the Store's UserID:
//   - Billboard: a labelled banner image shown above a category
//   - Category: a product grouping that points at one Billboard
//   - Color, Size: named product attributes with a display value
//   - Product: a sellable item with a price, attributes and ordered images
//   - Order: a customer order referencing one or more products
//
// # Relationships
//
// Relationships are expressed with ID strings. Related rows that the API
// returns alongside a model (a category's billboard, a product's category)
// are held in optional pointer fields that are nil unless the storage layer
// was asked to load them.
//
// # Timestamps
//
// CreatedAt and UpdatedAt are Unix timestamps in seconds, set by the store.
package models
