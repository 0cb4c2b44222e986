package main

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/vango-dev/rstore/internal/config"
	"github.com/vango-dev/rstore/internal/mockapi"
	"github.com/vango-dev/rstore/pkg/live"
	"github.com/vango-dev/rstore/pkg/metrics"
	"github.com/vango-dev/rstore/pkg/remote"
	"github.com/vango-dev/rstore/pkg/store"
)

const shutdownTimeout = 10 * time.Second

func serveCmd(flags *globalFlags) *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the in-memory resource backend with a live view",
		Long: `Run an in-memory CRUD backend for every configured resource.

Routes:
  /api/{resource}       GET, POST, PUT
  /api/{resource}/{id}  GET, DELETE
  /live/{resource}      websocket stream of the resource's store snapshot
  /metrics              Prometheus metrics

Each resource is mirrored by a store that reloads after every write, and
the live websocket pushes the store snapshot on every change.

Examples:
  rstore serve
  rstore serve --port=9090`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := flags.load()
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Serve.Port = port
			}
			if host != "" {
				cfg.Serve.Host = host
			}
			return runServe(cmd.Context(), cfg, logger)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from config)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from config)")

	return cmd
}

func runServe(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", cfg.ServeAddress())
	if err != nil {
		return err
	}
	baseURL := "http://" + ln.Addr().String()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(metrics.WithRegistry(registry))

	names := make([]string, 0, len(cfg.Resources))
	for name := range cfg.Resources {
		names = append(names, name)
	}
	slices.Sort(names)

	backend := mockapi.NewServer("/api", logger, names...)

	r := chi.NewRouter()
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	var (
		hubs    []interface{ Close() }
		reloads []func()
	)
	for _, name := range names {
		client := remote.New(baseURL+"/api/"+name,
			remote.WithLogger(logger),
			remote.WithObserver(m),
		)
		mirror := store.New[mockapi.Record](name).
			WithRemote(client).
			WithLogger(logger).
			WithObserver(m)

		hub := live.NewHub(mirror, logger)
		hubs = append(hubs, hub)
		r.Handle(cfg.Live.Path+"/"+name, hub)

		reload := func() {
			mirror.LoadAsync(context.WithoutCancel(ctx), nil)
		}
		reloads = append(reloads, reload)
		backend.Resource(name).OnChange(reload)
	}
	r.Mount("/", backend.Router())

	srv := &http.Server{
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	for _, reload := range reloads {
		reload()
	}

	success("Serving %d resources on %s", len(names), baseURL)
	for _, name := range names {
		info("%-10s %s/api/%s  (live: %s%s/%s)", name, baseURL, name, baseURL, cfg.Live.Path, name)
	}
	if cfg.Metrics.Enabled {
		info("metrics    %s%s", baseURL, cfg.Metrics.Path)
	}

	select {
	case err := <-errCh:
		if !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	warn("Shutting down...")
	for _, h := range hubs {
		h.Close()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}
