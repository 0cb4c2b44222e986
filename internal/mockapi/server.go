package mockapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vango-dev/rstore/internal/logging"
)

// Server mounts a set of resources under a prefix, one sub-route each.
type Server struct {
	prefix    string
	logger    *slog.Logger
	resources map[string]*Resource
	router    chi.Router
}

// NewServer creates a server with one empty resource per name, mounted at
// prefix/{name}.
func NewServer(prefix string, logger *slog.Logger, names ...string) *Server {
	if logger == nil {
		logger = logging.Nop()
	}
	s := &Server{
		prefix:    prefix,
		logger:    logger,
		resources: make(map[string]*Resource, len(names)),
	}
	for _, name := range names {
		s.resources[name] = NewResource(name, logger)
	}
	s.router = s.buildRouter()
	return s
}

// Resource returns the named resource, or nil.
func (s *Server) Resource(name string) *Resource {
	return s.resources[name]
}

// Router returns the chi router so it can be mounted or served directly.
func (s *Server) Router() chi.Router {
	return s.router
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	for name, res := range s.resources {
		r.Mount(s.prefix+"/"+name, res.Routes())
	}
	return r
}

// requestLogger logs one line per request at debug level.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"elapsed", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
