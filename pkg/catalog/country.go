package catalog

import (
	"context"
	"net/url"

	"github.com/vango-dev/rstore/pkg/store"
)

// DefaultCountryURL is the country resource used when none is configured.
const DefaultCountryURL = "http://country.local/api/Country"

// Country is one record of the country resource.
type Country struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
	Code string `json:"code,omitempty"`
}

// CountryStore is a CRUD store over the country resource. The search query
// is kept in the store's query under the "name" key.
type CountryStore struct {
	*store.Store[Country]
}

// NewCountryStore binds a country store to r, usually a *remote.Client for
// DefaultCountryURL.
func NewCountryStore(r store.Remote) *CountryStore {
	return &CountryStore{store.New[Country]("country").WithRemote(r)}
}

// SearchQuery returns the current name filter.
func (c *CountryStore) SearchQuery() string {
	return c.Query().Get("name")
}

// SetSearchQuery replaces the name filter. An empty name clears it.
func (c *CountryStore) SetSearchQuery(name string) {
	q := url.Values{}
	if name != "" {
		q.Set("name", name)
	}
	c.SetQuery(q)
}

// Search sets the name filter and reloads.
func (c *CountryStore) Search(ctx context.Context, name string) store.Status {
	c.SetSearchQuery(name)
	return c.Refresh(ctx)
}
