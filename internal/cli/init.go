// Package cli provides the initialization shared by the lumincoin commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"lumincoin/internal/api"
	"lumincoin/internal/cache"
	"lumincoin/internal/config"
	"lumincoin/internal/core"
	"lumincoin/internal/events"
	"lumincoin/internal/i18n"
	"lumincoin/internal/log"
	"lumincoin/internal/router"
	"lumincoin/internal/services"
	"lumincoin/internal/session"
	"lumincoin/internal/sheets"
	"lumincoin/internal/sheets/google"
	"lumincoin/internal/sheets/memory"
	"lumincoin/internal/storage"
	"lumincoin/internal/views"
	"lumincoin/web"
)

// SetupLogger initializes structured logging at the given level and sets it
// as the default logger.
func SetupLogger(level string, out io.Writer) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := log.DefaultConfig()
	cfg.Level = lvl
	if out != nil {
		cfg.Output = out
	}
	logger := log.New(cfg)
	log.SetDefault(logger)
	return logger, nil
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as the file is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads the environment and the YAML config file and
// validates the result. An empty path falls back to LUMINCOIN_CONFIG and then
// to the XDG location; only an explicitly named file must exist.
func LoadAndValidateConfig(path string) (*config.Config, error) {
	explicit := path != ""
	if path == "" {
		path = os.Getenv("LUMINCOIN_CONFIG")
		explicit = path != ""
	}
	if path == "" {
		path = config.DefaultConfigFile()
	}

	cfg, err := config.LoadWithFile(path, explicit)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// OpenSessionBackend opens the configured session backend. The returned
// closer is nil for the memory backend.
func OpenSessionBackend(cfg *config.Config) (session.Backend, io.Closer, error) {
	switch cfg.SessionBackend {
	case config.SessionMemory:
		return session.NewMemoryBackend(), nil, nil
	case config.SessionSQLite:
		repo, err := storage.NewSQLiteRepository(cfg.SessionDBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open session database %s: %w", cfg.SessionDBPath, err)
		}
		return repo, repo, nil
	}
	return nil, nil, fmt.Errorf("unknown session backend %q", cfg.SessionBackend)
}

// Runtime holds the collaborators built from the configuration.
type Runtime struct {
	Config   *config.Config
	Logger   *log.Logger
	Session  *session.Store
	Client   *api.Client
	Messages *i18n.Localizer
	// Events is nil when AMQP is not configured.
	Events *events.Client
	Deps   views.Deps

	closers []io.Closer
}

// NewRuntime opens the session backend and wires the API client, the
// localizer, the optional event publisher and the domain services.
func NewRuntime(cfg *config.Config, logger *log.Logger) (*Runtime, error) {
	backend, closer, err := OpenSessionBackend(cfg)
	if err != nil {
		return nil, err
	}
	rt := &Runtime{
		Config:   cfg,
		Logger:   logger,
		Session:  session.NewStore(backend),
		Messages: i18n.New(cfg.Locale),
	}
	if closer != nil {
		rt.closers = append(rt.closers, closer)
	}

	rt.Client = api.NewClient(cfg.APIURL, rt.Session,
		api.WithTimeout(cfg.RequestTimeout),
		api.WithRateLimit(cfg.RequestsPerSecond),
		api.WithLogger(logger.WithComponent(log.ComponentAPI)))

	sd := services.Deps{
		Client:   rt.Client,
		Messages: rt.Messages,
		Logger:   logger.WithComponent(log.ComponentServices),
	}
	if cfg.AMQPURL != "" {
		ev, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			// Events are optional; the ledger keeps working without them.
			logger.Warn("AMQP unavailable, ledger events disabled", log.FieldError, err)
		} else {
			rt.Events = ev
			rt.closers = append(rt.closers, ev)
			sd.Events = ev
		}
	}

	rt.Deps = views.Deps{
		Session:    rt.Session,
		Messages:   rt.Messages,
		Auth:       services.NewAuth(sd),
		Balance:    services.NewBalance(sd),
		Income:     services.NewCategories(core.Income, sd),
		Expense:    services.NewCategories(core.Expense, sd),
		Operations: services.NewOperations(sd),
		Logger:     logger.WithComponent(log.ComponentView),
	}
	return rt, nil
}

// Close releases the session database and the AMQP connection.
func (r *Runtime) Close() error {
	var errs []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	r.closers = nil
	return errors.Join(errs...)
}

// Fetcher returns the page fragment source: the embedded templates, or
// TEMPLATES_URL behind an LRU cache registered with m.
func (r *Runtime) Fetcher(m *cache.Manager) router.Fetcher {
	if r.Config.TemplatesURL == "" {
		return router.NewFSFetcher(web.TemplatesFS)
	}
	c := cache.NewLRUCache[string](r.Config.FragmentCacheSize, r.Config.FragmentCacheTTL)
	if m != nil {
		m.Register(c)
	}
	next := router.NewHTTPFetcher(r.Config.TemplatesURL, &http.Client{Timeout: r.Config.RequestTimeout})
	return router.NewCachedFetcher(next, c)
}

// Exporter returns the Google Sheets exporter, or an in-memory one for dry
// runs.
func (r *Runtime) Exporter(ctx context.Context, dryRun bool) (sheets.Exporter, error) {
	if dryRun {
		return memory.New(), nil
	}
	if !r.Config.SheetsEnabled() {
		return nil, errors.New("export requires GOOGLE_SPREADSHEET_ID")
	}
	return google.New(ctx, google.Options{
		SpreadsheetID:   r.Config.GoogleSpreadsheetID,
		SheetName:       r.Config.GoogleSheetName,
		CredentialsJSON: r.Config.GoogleServiceAccountJSON,
		CredentialsFile: r.Config.GoogleServiceAccountFile,
	})
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext(parent context.Context, logger *log.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			logger.Info("Shutdown signal received", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
