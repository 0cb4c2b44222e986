package store

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/vango-dev/rstore/internal/errors"
	"github.com/vango-dev/rstore/pkg/reactive"
	"github.com/vango-dev/rstore/pkg/remote"
)

// Remote is the resource client a store talks to. *remote.Client
// implements it.
type Remote interface {
	Get(ctx context.Context, params url.Values, out any) error
	Post(ctx context.Context, model any) (*http.Response, error)
	Put(ctx context.Context, model any) (*http.Response, error)
	Delete(ctx context.Context, id string) (*http.Response, error)
}

var _ Remote = (*remote.Client)(nil)

// Loader fetches the full item list for Load.
type Loader[T any] func(ctx context.Context, r Remote, params url.Values) ([]T, error)

// decodeList is the default Loader: the GET body is a JSON array of T.
func decodeList[T any](ctx context.Context, r Remote, params url.Values) ([]T, error) {
	var items []T
	if err := r.Get(ctx, params, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Expected status codes for the mutating operations.
const (
	createStatus = http.StatusCreated
	updateStatus = http.StatusOK
	deleteStatus = http.StatusNoContent
)

// Load fetches items with params and, on success, replaces the whole list
// in one commit. On failure the list is left untouched and the status
// becomes Error. Load blocks until the request completes and returns the
// resulting status.
func (s *Store[T]) Load(ctx context.Context, params url.Values) Status {
	const op = "load"
	start := s.begin()

	r, loader := s.remoteAndLoader()
	if r == nil {
		return s.fail(op, start, errNoRemote(s.name))
	}

	loaded, err := loader(ctx, r, params)
	if err != nil {
		return s.fail(op, start, err)
	}
	if loaded == nil {
		loaded = []T{}
	}

	s.commit(func() {
		s.items.Set(loaded)
		s.status.Set(Success)
	})
	return s.succeed(op, start)
}

// Refresh is Load with the store's own query.
func (s *Store[T]) Refresh(ctx context.Context) Status {
	return s.Load(ctx, s.query.Peek())
}

// Create posts model and expects 201 Created.
func (s *Store[T]) Create(ctx context.Context, model T) Status {
	return s.write(ctx, "create", createStatus, func(r Remote) (*http.Response, error) {
		return r.Post(ctx, model)
	})
}

// Update puts model and expects 200 OK.
func (s *Store[T]) Update(ctx context.Context, model T) Status {
	return s.write(ctx, "update", updateStatus, func(r Remote) (*http.Response, error) {
		return r.Put(ctx, model)
	})
}

// Delete deletes the item with id and expects 204 No Content.
func (s *Store[T]) Delete(ctx context.Context, id string) Status {
	return s.write(ctx, "delete", deleteStatus, func(r Remote) (*http.Response, error) {
		return r.Delete(ctx, id)
	})
}

// LoadAsync runs Load on a new goroutine. The channel receives the
// resulting status and is then closed.
func (s *Store[T]) LoadAsync(ctx context.Context, params url.Values) <-chan Status {
	return async(func() Status { return s.Load(ctx, params) })
}

// CreateAsync runs Create on a new goroutine.
func (s *Store[T]) CreateAsync(ctx context.Context, model T) <-chan Status {
	return async(func() Status { return s.Create(ctx, model) })
}

// UpdateAsync runs Update on a new goroutine.
func (s *Store[T]) UpdateAsync(ctx context.Context, model T) <-chan Status {
	return async(func() Status { return s.Update(ctx, model) })
}

// DeleteAsync runs Delete on a new goroutine.
func (s *Store[T]) DeleteAsync(ctx context.Context, id string) <-chan Status {
	return async(func() Status { return s.Delete(ctx, id) })
}

func async(fn func() Status) <-chan Status {
	ch := make(chan Status, 1)
	go func() {
		defer reactive.Release()
		ch <- fn()
		close(ch)
	}()
	return ch
}

// write runs a mutating request and maps the response to a status.
func (s *Store[T]) write(ctx context.Context, op string, want int, send func(Remote) (*http.Response, error)) Status {
	start := s.begin()

	r, _ := s.remoteAndLoader()
	if r == nil {
		return s.fail(op, start, errNoRemote(s.name))
	}

	resp, err := send(r)
	if err != nil {
		return s.fail(op, start, err)
	}
	resp.Body.Close()

	if resp.StatusCode != want {
		return s.fail(op, start, errors.New("R102").
			WithDetail(fmt.Sprintf("%s %s: got status %d, want %d", s.name, op, resp.StatusCode, want)))
	}

	s.commit(func() {
		s.status.Set(Success)
	})
	return s.succeed(op, start)
}

// begin moves the store into Loading.
func (s *Store[T]) begin() time.Time {
	s.commit(func() {
		s.status.Set(Loading)
	})
	return time.Now()
}

func (s *Store[T]) succeed(op string, start time.Time) Status {
	elapsed := time.Since(start)

	s.cfgMu.Lock()
	logger, observer := s.logger, s.observer
	s.cfgMu.Unlock()

	logger.Debug("store operation complete", "store", s.name, "op", op, "elapsed", elapsed)
	if observer != nil {
		observer.ObserveOperation(s.name, op, Success, elapsed)
	}
	return Success
}

// fail flags the store as Error without touching items, then reports the
// classified cause to the logger and the OnError hook.
func (s *Store[T]) fail(op string, start time.Time, cause error) Status {
	s.commit(func() {
		s.status.Set(Error)
	})

	elapsed := time.Since(start)
	err := Classify(cause)

	s.cfgMu.Lock()
	logger, observer, onError := s.logger, s.observer, s.onError
	s.cfgMu.Unlock()

	logger.Warn("store operation failed",
		"store", s.name,
		"op", op,
		"code", err.Code,
		"error", err,
	)
	if observer != nil {
		observer.ObserveOperation(s.name, op, Error, elapsed)
	}
	if onError != nil {
		onError(err)
	}
	return Error
}

// Classify maps a remote failure onto the transport, status and decode
// error codes. An error that already carries a code is returned as is.
func Classify(err error) *errors.Error {
	if errors.CodeOf(err) != "" {
		return errors.FromError(err, "")
	}
	if stderrors.Is(err, remote.ErrMalformedJSON) {
		return errors.New("R103").Wrap(err)
	}
	return errors.New("R101").Wrap(err)
}

func errNoRemote(name string) error {
	return errors.New("R101").
		WithDetail(fmt.Sprintf("store %q has no remote configured", name)).
		WithSuggestion("Call WithRemote before running remote operations")
}

func (s *Store[T]) remoteAndLoader() (Remote, Loader[T]) {
	s.cfgMu.Lock()
	defer s.cfgMu.Unlock()
	return s.remote, s.loader
}
