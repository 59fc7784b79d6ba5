package models

// Order is a customer order placed against a store.
type Order struct {
	ID      string `json:"id"`
	StoreID string `json:"storeId"`

	// Items are the ordered products, in submission order.
	Items []OrderItem `json:"orderItems"`

	// IsPaid is set once payment has been confirmed.
	IsPaid bool `json:"isPaid"`

	Phone   string `json:"phone"`
	Address string `json:"address"`

	CreatedAt int64 `json:"createdAt"`
	UpdatedAt int64 `json:"updatedAt"`
}

// OrderItem links an order to one product. A product cannot be deleted while
// an order item still references it.
type OrderItem struct {
	ID        string `json:"id"`
	OrderID   string `json:"orderId"`
	ProductID string `json:"productId"`

	// Product is the referenced product, loaded on list reads.
	Product *Product `json:"product,omitempty"`
}

// ProductIDs returns the ids of the ordered products, in order.
func (o *Order) ProductIDs() []string {
	ids := make([]string, len(o.Items))
	for i, item := range o.Items {
		ids[i] = item.ProductID
	}
	return ids
}
