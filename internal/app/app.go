package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/molload"
	"github.com/vk/molload/internal/ctxlog"
	"github.com/vk/molload/internal/fsutil"
)

// Config holds everything an App instance needs to run.
type Config struct {
	// Path is a file, directory, or URL to load.
	Path string

	LogFormat string
	LogLevel  string

	// Optional arguments forwarded to the matched format. The booleans are
	// included in the bag only when set; NAtom only when positive.
	Structure bool
	HasBox    bool
	SkipBonds bool
	NAtom     int
}

// NewConfig validates a Config.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("a path to load is required")
	}
	return &cfg, nil
}

// App encapsulates the CLI's dependencies and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	loader *molload.Loader
	config *Config
}

// NewApp constructs the application with its own isolated logger and
// loader. Registry configuration defects panic here, before any load is
// attempted.
func NewApp(outW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	logger.Debug("Logger configured successfully.")

	loader := molload.NewWithLogger(logger)
	logger.Debug("Loader built.", "formats", loader.Registry().Len())

	return &App{
		outW:   outW,
		logger: logger,
		loader: loader,
		config: cfg,
	}
}

// Run loads the configured path. A directory is walked and every regular
// file in it is loaded, continuing past per-file failures; a single failed
// file is an error.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	args := a.args()

	info, err := os.Stat(a.config.Path)
	if err == nil && info.IsDir() {
		return a.runDirectory(ctx, args)
	}

	result, err := a.loader.Load(ctx, a.config.Path, args)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.outW, "%s: %v\n", a.config.Path, result)
	return nil
}

func (a *App) runDirectory(ctx context.Context, args molload.Args) error {
	files, err := fsutil.FindFiles(a.config.Path)
	if err != nil {
		return fmt.Errorf("failed to walk %s: %w", a.config.Path, err)
	}
	if len(files) == 0 {
		a.logger.Warn("No files found in directory.", "path", a.config.Path)
		return nil
	}

	failed := 0
	for _, file := range files {
		result, err := a.loader.Load(ctx, file, args)
		if err != nil {
			a.logger.Error("Failed to load file.", "path", file, "error", err)
			failed++
			continue
		}
		fmt.Fprintf(a.outW, "%s: %v\n", file, result)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to load", failed, len(files))
	}
	return nil
}

// args translates the CLI flags into the loader's argument bag.
func (a *App) args() molload.Args {
	args := molload.Args{}
	if a.config.Structure {
		args[molload.KeyStructure] = true
	}
	if a.config.HasBox {
		args[molload.KeyHasBox] = true
	}
	if a.config.SkipBonds {
		args[molload.KeySkipBonds] = true
	}
	if a.config.NAtom > 0 {
		args[molload.KeyNAtom] = a.config.NAtom
	}
	return args
}
