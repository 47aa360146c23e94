package wishlist

import "errors"

var ErrMissingID = errors.New("product id is required")
