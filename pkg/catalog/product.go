package catalog

import "github.com/vango-dev/rstore/pkg/store"

// DefaultProductURL is the product resource used when none is configured.
const DefaultProductURL = "http://localhost:5000/product"

// Product is one record of the product resource.
type Product struct {
	ID    string  `json:"id,omitempty"`
	Name  string  `json:"name"`
	Price float64 `json:"price,omitempty"`
}

// ProductStore is a read-only store over the product resource: callers use
// Load and Refresh only.
type ProductStore struct {
	*store.Store[Product]
}

func NewProductStore(r store.Remote) *ProductStore {
	return &ProductStore{store.New[Product]("product").WithRemote(r)}
}
