// Package app implements the application layer for xmlres.
package app

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/xmlres/internal/adapters/detector"
	"go.trai.ch/xmlres/internal/adapters/report"
	"go.trai.ch/xmlres/internal/adapters/telemetry"
	"go.trai.ch/xmlres/internal/adapters/watcher"
	"go.trai.ch/xmlres/internal/core/domain"
	"go.trai.ch/xmlres/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const closeTimeout = 5 * time.Second

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	logger       ports.Logger
	parser       ports.DocumentParser
	tracer       ports.Tracer
	newWatcher   watcher.Factory
	index        *watcher.DependencyIndex

	stdout   io.Writer
	fetcher  ports.Fetcher
	debounce time.Duration
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	log ports.Logger,
	parser ports.DocumentParser,
	tracer ports.Tracer,
	newWatcher watcher.Factory,
	index *watcher.DependencyIndex,
) *App {
	return &App{
		configLoader: loader,
		logger:       log,
		parser:       parser,
		tracer:       tracer,
		newWatcher:   newWatcher,
		index:        index,
		stdout:       os.Stdout,
		debounce:     watcher.DefaultDebounceWindow,
	}
}

// WithOutput sets where reports are written.
func (a *App) WithOutput(w io.Writer) *App {
	a.stdout = w
	return a
}

// WithFetcher replaces the HTTP fetcher of the resource cache.
func (a *App) WithFetcher(f ports.Fetcher) *App {
	a.fetcher = f
	return a
}

// WithDebounce sets the window the watch command waits for file events to settle.
func (a *App) WithDebounce(d time.Duration) *App {
	a.debounce = d
	return a
}

// SettingsOptions selects the settings file and overrides its values.
type SettingsOptions struct {
	// ConfigPath is an explicit settings file. Empty means discovery from the working directory.
	ConfigPath string
	NoCache    bool
	Offline    bool
	CachePath  string
	JSONLogs   bool
}

// LoadSettings reads the settings and applies the command line overrides.
func (a *App) LoadSettings(opts SettingsOptions) (domain.Settings, error) {
	var (
		settings domain.Settings
		err      error
	)
	if opts.ConfigPath != "" {
		settings, err = a.configLoader.LoadFile(opts.ConfigPath)
	} else {
		cwd, cwdErr := os.Getwd()
		if cwdErr != nil {
			return domain.Settings{}, zerr.Wrap(cwdErr, "failed to get working directory")
		}
		settings, err = a.configLoader.Load(cwd)
	}
	if err != nil {
		return domain.Settings{}, zerr.Wrap(err, "failed to load configuration")
	}

	if opts.NoCache {
		settings.UseCache = false
	}
	if opts.Offline {
		settings.DownloadExternalResources = false
	}
	if opts.CachePath != "" {
		abs, absErr := filepath.Abs(opts.CachePath)
		if absErr != nil {
			return domain.Settings{}, zerr.With(zerr.Wrap(absErr, "invalid cache path"), "path", opts.CachePath)
		}
		settings.CachePath = abs
	}
	if opts.JSONLogs {
		settings.JSONLogs = true
	}

	if c, ok := a.logger.(interface{ Configure(domain.Settings) }); ok {
		c.Configure(settings)
	}
	return settings, nil
}

// ValidateOptions configuration for the Validate method.
type ValidateOptions struct {
	SettingsOptions
	Files []string
	// Wait revalidates documents once their pending downloads settle.
	Wait bool
	// Timeout bounds the time spent waiting for downloads.
	Timeout time.Duration
	Format  string
	Trace   bool
}

// Validate validates files concurrently and reports their diagnostics.
// It returns domain.ErrValidationFailed when a document has error diagnostics
// or cannot be read.
func (a *App) Validate(ctx context.Context, opts ValidateOptions) error {
	if len(opts.Files) == 0 {
		return domain.ErrNoInputFiles
	}

	renderer, err := a.renderer(opts.Format)
	if err != nil {
		return err
	}

	settings, err := a.LoadSettings(opts.SettingsOptions)
	if err != nil {
		return err
	}

	if opts.Trace {
		shutdown := setupOTel(telemetry.NewBridge(a.logger))
		defer func() { _ = shutdown(context.Background()) }()
	}

	engine, err := a.NewEngine(settings)
	if err != nil {
		return err
	}
	defer a.closeEngine(engine)

	results := make([]*domain.DiagnosticsResult, len(opts.Files))
	errs := make([]error, len(opts.Files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, file := range opts.Files {
		g.Go(func() error {
			results[i], errs[i] = a.validateFile(gctx, engine, file, opts)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}

	var summary report.Summary
	failed := false
	for i, file := range opts.Files {
		if errs[i] != nil {
			failed = true
			renderer.Error(documentURI(file), errs[i])
			continue
		}
		renderer.Result(results[i])
		summary.Add(results[i])
	}
	renderer.Summary(summary)

	if failed || summary.Errors > 0 {
		return domain.ErrValidationFailed
	}
	return nil
}

// validateFile validates one file. With Wait it validates again after every
// round of pending downloads until none is left or the timeout expires.
func (a *App) validateFile(ctx context.Context, engine *Engine, file string, opts ValidateOptions) (*domain.DiagnosticsResult, error) {
	uri := documentURI(file)
	res, err := a.validateURI(ctx, engine, uri)
	if err != nil || !opts.Wait {
		return res, err
	}

	waitCtx := ctx
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}
	for res.HasPending() {
		if err := res.Wait(waitCtx); err != nil {
			a.logger.Warn("gave up waiting for downloads of " + uri)
			return res, nil
		}
		next, err := a.validateURI(ctx, engine, uri)
		if err != nil {
			return nil, err
		}
		res = next
	}
	return res, nil
}

func (a *App) validateURI(ctx context.Context, engine *Engine, uri string) (*domain.DiagnosticsResult, error) {
	path, _ := domain.PathFromURI(uri)
	//nolint:gosec // Path is a document named by the user
	f, err := os.Open(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to open document"), "path", path)
	}
	defer func() { _ = f.Close() }()

	return engine.Coordinator.ValidateText(ctx, uri, f)
}

func (a *App) renderer(format string) (*report.Renderer, error) {
	f, err := detector.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	cwd, _ := os.Getwd()
	return report.NewRenderer(a.stdout, f, cwd), nil
}

func (a *App) closeEngine(engine *Engine) {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	if err := engine.Close(ctx); err != nil {
		a.logger.Warn("downloads did not stop in time: " + err.Error())
	}
}

func documentURI(file string) string {
	if domain.URIScheme(file) == "file" {
		return file
	}
	return domain.FileURI(file)
}

// setupOTel installs a tracer provider that reports finished spans through bridge.
func setupOTel(bridge *telemetry.Bridge) func(context.Context) error {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(bridge),
	)
	otel.SetTracerProvider(tp)
	return tp.Shutdown
}
