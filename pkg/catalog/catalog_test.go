package catalog

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/rstore/pkg/remote"
	"github.com/vango-dev/rstore/pkg/store"
)

func TestBugStore(t *testing.T) {
	bugs := NewBugStore()
	require.Equal(t, []string{"Centipede"}, bugs.Items())
	require.Equal(t, 1, bugs.BugsCount())

	var headers []string
	defer bugs.Subscribe(func(s store.Snapshot[string]) {
		headers = append(headers, "Total Number of Bugs: "+strconv.Itoa(s.Count))
	})()

	bugs.AddBug("Locust")

	assert.Equal(t, []string{"Centipede", "Locust"}, bugs.Items())
	assert.Equal(t, 2, bugs.BugsCount())
	assert.Equal(t, []string{"Total Number of Bugs: 2"}, headers)
}

func TestHooperStore(t *testing.T) {
	hoopers := NewHooperStore()
	assert.Equal(t, 0, hoopers.HoopersCount())

	hoopers.AddHooper("Jordan")
	hoopers.AddHooper("Bird")

	assert.Equal(t, 2, hoopers.HoopersCount())
	assert.Equal(t, []string{"Jordan", "Bird"}, hoopers.Items())
}

func TestCountrySearch(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode([]Country{{ID: "1", Name: "Peru", Code: "PE"}})
	}))
	defer srv.Close()

	countries := NewCountryStore(remote.New(srv.URL))

	status := countries.Search(context.Background(), "per")

	assert.Equal(t, store.Success, status)
	assert.Equal(t, "name=per", gotQuery)
	assert.Equal(t, "per", countries.SearchQuery())
	assert.Equal(t, []Country{{ID: "1", Name: "Peru", Code: "PE"}}, countries.Items())

	countries.SetSearchQuery("")
	assert.Equal(t, "", countries.SearchQuery())
	assert.Empty(t, countries.Query())
}

func TestProductStoreLoad(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"id":"p1","name":"Widget","price":9.5}]`)
	}))
	defer srv.Close()

	products := NewProductStore(remote.New(srv.URL + "/product"))

	assert.Equal(t, store.Success, products.Load(context.Background(), nil))
	assert.Equal(t, []Product{{ID: "p1", Name: "Widget", Price: 9.5}}, products.Items())
}

func TestWeatherStore(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("city") != "Lima" {
			_, _ = io.WriteString(w, "no such city")
			return
		}
		_, _ = io.WriteString(w, `{"city":"Lima","temp":19.5,"sky":"overcast"}`)
	}))
	defer srv.Close()

	weather := NewWeatherStore(remote.New(srv.URL), nil)
	assert.Equal(t, store.Initial, weather.Status())
	assert.Empty(t, weather.WeatherData())

	calls := 0
	defer weather.Subscribe(func() { calls++ })()

	assert.Equal(t, store.Success, weather.LoadWeather(context.Background(), "Lima"))
	assert.Equal(t, "Lima", weather.City())
	assert.Equal(t, WeatherData{"city": "Lima", "temp": 19.5, "sky": "overcast"}, weather.WeatherData())
	assert.Equal(t, 2, calls, "one for loading, one for the result")

	assert.Equal(t, store.Error, weather.LoadWeather(context.Background(), "Atlantis"))
	assert.Equal(t, store.Error, weather.Status())
	assert.Equal(t, "Lima", weather.City(), "failed load keeps previous data")
	assert.Equal(t, 19.5, weather.WeatherData()["temp"])
}
