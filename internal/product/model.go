package product

// Product mirrors the upstream catalog resource.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Image       string   `json:"image"`
	Images      []string `json:"images,omitempty"`
	Category    string   `json:"category"`
	Stock       int      `json:"stock"`
	Rating      *float64 `json:"rating,omitempty"`
}

type Paging struct {
	PageNo   int `json:"pageNo"`
	PageSize int `json:"pageSize"`
}

type Filter struct {
	QueryAttribute string `json:"query_attribute"`
	Query          string `json:"query"`
}

type Sorting struct {
	ColumnName string `json:"columnName"`
	Order      string `json:"order"`
}

// Query is the request body for the upstream product listing endpoint.
type Query struct {
	Paging  Paging   `json:"paging"`
	Filters []Filter `json:"filters,omitempty"`
	Sorting *Sorting `json:"sorting,omitempty"`
}

// PageMeta is the paging block the upstream returns alongside entities.
type PageMeta struct {
	PageNo   int `json:"pageNo"`
	PageSize int `json:"pageSize"`
	Length   int `json:"length"`
}
