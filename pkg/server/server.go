// Package server exposes design planning and solving over HTTP.
//
// Routes:
//
//	GET /healthz                           build info
//	GET /variants/{pins}                   variant counts for a pin count
//	GET /variants/{pins}/{id}              planned applications of one design
//	GET /designs/{pins}/{id}               solve (cached) and return code
//	GET /designs/{pins}/{id}/netlist.svg   netlist diagram
//	GET /designs/{pins}/{id}/layout.svg    box layout of the solved design
//	GET /stored/{pins}                     designs persisted by batch runs
//
// Errors are written with [httputil.WriteError], so a bad pin count is a 400
// and an id past the end of the design space is a 404.
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/pinboard/pkg/httputil"
	"github.com/matzehuels/pinboard/pkg/pipeline"
	"github.com/matzehuels/pinboard/pkg/slide"
	"github.com/matzehuels/pinboard/pkg/store"
)

const shutdownTimeout = 10 * time.Second

// Options configures a Server.
type Options struct {
	Pipeline *pipeline.Runner

	// Store backs /stored. Nil answers those requests with UNSUPPORTED.
	Store store.Store

	// Solver defaults for /designs; query parameters override MaxIterations.
	MaxIterations int
	Weights       slide.Weights

	Logger *log.Logger
}

// Server is the HTTP API.
type Server struct {
	opts   Options
	router chi.Router
}

// New builds the router. A nil Pipeline means an uncached runner.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Pipeline == nil {
		opts.Pipeline = pipeline.NewRunner(nil, nil, opts.Logger)
	}
	s := &Server{opts: opts}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(httputil.Instrument(s.opts.Logger, routePattern))

	r.Get("/healthz", s.health)
	r.Route("/variants/{pins}", func(r chi.Router) {
		r.Get("/", s.variantCounts)
		r.Get("/{id}", s.variantPlan)
	})
	r.Route("/designs/{pins}/{id}", func(r chi.Router) {
		r.Get("/", s.design)
		r.Get("/netlist.svg", s.netlistSVG)
		r.Get("/layout.svg", s.layoutSVG)
	})
	r.Get("/stored/{pins}", s.stored)
	return r
}

func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		return rc.RoutePattern()
	}
	return ""
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.opts.Logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.opts.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
