package store

import "log/slog"

// WithRemote sets the resource client used by Load, Create, Update and
// Delete.
func (s *Store[T]) WithRemote(r Remote) *Store[T] {
	s.cfgMu.Lock()
	s.remote = r
	s.cfgMu.Unlock()
	return s
}

// WithLoader replaces the default Loader, which decodes the GET body as a
// JSON array of T.
func (s *Store[T]) WithLoader(l Loader[T]) *Store[T] {
	s.cfgMu.Lock()
	if l != nil {
		s.loader = l
	}
	s.cfgMu.Unlock()
	return s
}

// WithLogger sets the logger. Failures are logged at warn level.
func (s *Store[T]) WithLogger(logger *slog.Logger) *Store[T] {
	s.cfgMu.Lock()
	if logger != nil {
		s.logger = logger
	}
	s.cfgMu.Unlock()
	return s
}

// WithObserver registers an observer for operations and item counts.
func (s *Store[T]) WithObserver(o Observer) *Store[T] {
	s.cfgMu.Lock()
	s.observer = o
	s.cfgMu.Unlock()
	return s
}

// OnError registers a callback that receives the classified cause of every
// failed operation. The store's status is already Error when it runs.
func (s *Store[T]) OnError(fn func(error)) *Store[T] {
	s.cfgMu.Lock()
	s.onError = fn
	s.cfgMu.Unlock()
	return s
}
