package catalog

import (
	"context"
	"log/slog"
	"maps"
	"net/url"

	"github.com/vango-dev/rstore/internal/logging"
	"github.com/vango-dev/rstore/pkg/reactive"
	"github.com/vango-dev/rstore/pkg/store"
)

// WeatherData is the decoded weather record for one city.
type WeatherData map[string]any

// WeatherStore holds the weather for the last city loaded.
type WeatherStore struct {
	remote store.Remote
	logger *slog.Logger

	data   *reactive.Signal[WeatherData]
	city   *reactive.Signal[string]
	status *reactive.Signal[store.Status]
}

// NewWeatherStore binds a weather store to r. Requests are GET ?city=<name>.
func NewWeatherStore(r store.Remote, logger *slog.Logger) *WeatherStore {
	if logger == nil {
		logger = logging.Nop()
	}
	return &WeatherStore{
		remote: r,
		logger: logger,
		data:   reactive.NewSignal(WeatherData{}),
		city:   reactive.NewSignal(""),
		status: reactive.NewSignal(store.Initial),
	}
}

// LoadWeather fetches the weather for city. On failure the previous data
// is kept and the status becomes Error.
func (w *WeatherStore) LoadWeather(ctx context.Context, city string) store.Status {
	w.status.Set(store.Loading)

	var data WeatherData
	if err := w.remote.Get(ctx, url.Values{"city": {city}}, &data); err != nil {
		e := store.Classify(err)
		w.logger.Warn("weather load failed", "city", city, "code", e.Code, "error", e)
		w.status.Set(store.Error)
		return store.Error
	}
	if data == nil {
		data = WeatherData{}
	}

	reactive.Batch(func() {
		w.data.Set(data)
		w.city.Set(city)
		w.status.Set(store.Success)
	})
	return store.Success
}

// WeatherData returns a copy of the last loaded record.
func (w *WeatherStore) WeatherData() WeatherData {
	return maps.Clone(w.data.Get())
}

// City returns the city the current data belongs to.
func (w *WeatherStore) City() string {
	return w.city.Get()
}

func (w *WeatherStore) Status() store.Status {
	return w.status.Get()
}

// Subscribe runs fn after every change to the data or the status.
func (w *WeatherStore) Subscribe(fn func()) (unsubscribe func()) {
	return reactive.Observe(fn, w.data, w.city, w.status)
}
