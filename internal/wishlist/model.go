package wishlist

// Item is a favorited product. Wishlists carry no quantity; at most one
// entry exists per product id.
type Item struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
	Stock int     `json:"stock"`
}
