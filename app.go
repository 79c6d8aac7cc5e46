package loom

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-chi/chi/v5"

	"github.com/loom-ui/loom/internal/config"
	loomerrors "github.com/loom-ui/loom/internal/errors"
	"github.com/loom-ui/loom/pkg/bundle"
	"github.com/loom-ui/loom/pkg/dom"
	"github.com/loom-ui/loom/pkg/push"
)

// App is the loom application entry point. It ties the template cache,
// the push server and the HTTP router into a single http.Handler.
//
//	app, err := loom.New(cfg, initSession)
//	app.Router().Get("/healthz", healthHandler)
//	http.ListenAndServe(cfg.Server.Address, app)
type App struct {
	config    *config.Config
	logger    *slog.Logger
	templates *bundle.TemplateCache
	push      *push.Server
	router    chi.Router
}

// Option configures an App beyond its config file.
type Option func(*appOptions)

type appOptions struct {
	source      bundle.Source
	s3Client    *s3.Client
	store       push.SnapshotStore
	resume      push.SessionInit
	checkOrigin func(r *http.Request) bool
}

// WithStatsSource overrides the statistics source derived from the
// config's stats section.
func WithStatsSource(source bundle.Source) Option {
	return func(o *appOptions) { o.source = source }
}

// WithS3Client supplies the S3 client used when the config points the
// stats at an S3 object. Required for an s3 stats section.
func WithS3Client(client *s3.Client) Option {
	return func(o *appOptions) { o.s3Client = client }
}

// WithSnapshotStore sets the store session snapshots persist to,
// enabling resume across reconnects.
func WithSnapshotStore(store push.SnapshotStore) Option {
	return func(o *appOptions) { o.store = store }
}

// WithResume sets the callback that re-registers listeners on a
// restored session; see push.WithResume.
func WithResume(fn SessionInit) Option {
	return func(o *appOptions) { o.resume = fn }
}

// WithCheckOrigin sets the WebSocket origin check.
func WithCheckOrigin(fn func(r *http.Request) bool) Option {
	return func(o *appOptions) { o.checkOrigin = fn }
}

// New creates an App. A nil cfg uses the defaults; init runs for every
// fresh session and builds its initial UI.
func New(cfg *config.Config, init SessionInit, opts ...Option) (*App, error) {
	if cfg == nil {
		cfg = config.New()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o appOptions
	for _, opt := range opts {
		opt(&o)
	}

	source := o.source
	if source == nil {
		var err error
		source, err = statsSource(cfg, o.s3Client)
		if err != nil {
			return nil, err
		}
	}

	resumeWindow, err := cfg.ResumeWindow()
	if err != nil {
		return nil, err
	}

	pushCfg := &push.Config{
		MaxSessions:  cfg.Server.MaxSessions,
		CheckOrigin:  o.checkOrigin,
		Store:        o.store,
		ResumeWindow: resumeWindow,
		Tracing:      cfg.Server.Tracing,
	}
	if cfg.Server.Metrics {
		pushCfg.Metrics = push.NewMetrics()
	}

	var pushOpts []push.Option
	if o.resume != nil {
		pushOpts = append(pushOpts, push.WithResume(o.resume))
	}

	app := &App{
		config:    cfg,
		logger:    slog.Default().With("component", "app"),
		templates: bundle.NewTemplateCache(source),
		push:      push.NewServer(pushCfg, init, pushOpts...),
	}

	r := chi.NewRouter()
	r.Get(push.SyncPath, app.push.Handler())
	app.router = r
	return app, nil
}

// statsSource builds the bundle.Source the config's stats section
// describes. File wins over URL wins over S3.
func statsSource(cfg *config.Config, s3Client *s3.Client) (bundle.Source, error) {
	switch {
	case cfg.Stats.File != "":
		return &bundle.FileSource{Path: cfg.Stats.File}, nil
	case cfg.Stats.URL != "":
		return &bundle.HTTPSource{URL: cfg.Stats.URL}, nil
	case cfg.Stats.S3.Bucket != "":
		if s3Client == nil {
			return nil, loomerrors.New("E103").
				WithDetail("stats.s3 is configured but no S3 client was supplied; use loom.WithS3Client")
		}
		return &bundle.S3Source{
			Client: s3Client,
			Bucket: cfg.Stats.S3.Bucket,
			Key:    cfg.Stats.S3.Key,
		}, nil
	default:
		return &bundle.FileSource{Path: config.DefaultStatsFile}, nil
	}
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Router returns the application router for mounting further routes.
// The sync endpoint is already mounted at push.SyncPath.
func (a *App) Router() chi.Router { return a.router }

// Push returns the underlying push server.
func (a *App) Push() *push.Server { return a.push }

// Templates returns the template cache.
func (a *App) Templates() *bundle.TemplateCache { return a.templates }

// Config returns the application configuration.
func (a *App) Config() *config.Config { return a.config }

// Component builds a template-backed element for a component tag, with
// its children seeded from the template extracted from the bundle.
func (a *App) Component(ctx context.Context, tag string) (dom.Element, error) {
	tmpl, err := a.templates.Get(ctx, tag)
	if err != nil {
		return dom.Element{}, err
	}
	return dom.FromTemplate(tag, tmpl)
}

// ListenAndServe serves the app on the configured address until ctx is
// cancelled, then shuts down gracefully: connected sessions get a close
// frame and their snapshots are stored.
func (a *App) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:    a.config.Server.Address,
		Handler: a,
	}

	errc := make(chan error, 1)
	go func() {
		a.logger.Info("listening", "address", srv.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return loomerrors.New("E140").Wrap(err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.push.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("push shutdown failed", "error", err)
	}
	return srv.Shutdown(shutdownCtx)
}
