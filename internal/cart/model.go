package cart

// Item is one cart line. Exactly one Item exists per product id.
type Item struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Image    string  `json:"image"`
}

// State is a point-in-time snapshot of a session's cart. Totals are for
// cart-page display only; checkout pricing always comes from the upstream
// calculate-order-value call.
type State struct {
	Items         []Item  `json:"items"`
	TotalAmount   float64 `json:"totalAmount"`
	TotalQuantity int     `json:"totalQuantity"`
}
