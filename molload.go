package molload

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/vk/molload/fileio"
	"github.com/vk/molload/internal/ctxlog"
	"github.com/vk/molload/registry"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Loader resolves a file path or URL to a parsed result by identifying its
// format against a registry of format handlers. A Loader is safe for
// concurrent use: its registry is sealed at construction time and every
// Load call is independent.
type Loader struct {
	registry *registry.Registry
	logger   *slog.Logger
}

// New builds a Loader from the given format modules. When no modules are
// given, the built-in formats are registered. New panics on configuration
// defects: duplicate format names, malformed manifests, or a manifest out
// of parity with its Go capability.
func New(modules ...registry.Module) *Loader {
	return NewWithLogger(slog.Default(), modules...)
}

// NewWithLogger is New with an explicit logger for registration and
// dispatch tracing.
func NewWithLogger(logger *slog.Logger, modules ...registry.Module) *Loader {
	reg := registry.New()
	if len(modules) == 0 {
		modules = coreFormats()
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All format modules registered.", "count", reg.Len())

	ctx := ctxlog.WithLogger(context.Background(), logger)
	if err := reg.Validate(ctx); err != nil {
		// A manifest out of sync with its Go capability is a programmer
		// error, so we panic rather than return it.
		panic(err)
	}

	return &Loader{registry: reg, logger: logger}
}

// Registry returns the loader's registry. This is primarily for testing.
func (l *Loader) Registry() *registry.Registry {
	return l.registry
}

var (
	defaultOnce   sync.Once
	defaultLoader *Loader
)

// Default returns the process-wide loader holding the built-in formats. It
// is built once, on first use.
func Default() *Loader {
	defaultOnce.Do(func() {
		defaultLoader = New()
	})
	return defaultLoader
}

// Load identifies the format of the file at path using the default loader
// and dispatches to the matching format's parse entry point.
func Load(ctx context.Context, path string, args Args) (any, error) {
	return Default().Load(ctx, path, args)
}

// Load resolves path to a parsed result.
//
// path may be a local filesystem path or an http://, https://, or ftp://
// URL; .gz and .bz2 names are decompressed transparently by the formats'
// readers. args carries the recognized optional arguments (structure,
// natom, hasbox, skip_bonds) plus any format-specific extras; recognized
// arguments are forwarded only to entry points whose manifests accept
// them, everything else is forwarded verbatim.
//
// The result is whatever the selected format's entry point returns,
// unmodified.
func (l *Loader) Load(ctx context.Context, path string, args Args) (any, error) {
	logger := l.logger.With("load_id", uuid.NewString(), "path", path)
	ctx = ctxlog.WithLogger(ctx, logger)

	if err := l.checkAccessible(ctx, path); err != nil {
		return nil, err
	}

	match, err := l.identify(ctx, path)
	if err != nil {
		return nil, err
	}
	logger.Debug("Format identified.", "format", match.Name)

	if err := l.checkRequiredArgs(match, args); err != nil {
		return nil, err
	}

	entryName, call, ok := entryPoint(match.Capability)
	if !ok {
		// Validate rejects capabilities with no entry point, so this is
		// unreachable through New.
		return nil, fmt.Errorf("format %s exposes no parse entry point", match.Name)
	}

	forwarded := adaptArgs(args, match.Definition.Entries[entryName])
	logger.Debug("Dispatching.", "format", match.Name, "entry", entryName)
	return call(ctx, path, forwarded)
}

// checkAccessible verifies the path can be opened before any
// identification is attempted.
func (l *Loader) checkAccessible(ctx context.Context, path string) error {
	if fileio.IsRemote(path) {
		rc, err := fileio.Open(ctx, path)
		if err != nil {
			return &TransportError{Path: path, Err: err}
		}
		return rc.Close()
	}

	f, err := os.Open(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &NotFoundError{Path: path}
	case errors.Is(err, fs.ErrPermission):
		return &PermissionError{Path: path}
	case err != nil:
		return err
	}
	return f.Close()
}

// identify scans the registry in priority order and returns the first
// descriptor whose predicate accepts the file. A predicate error counts as
// a non-match; malformed-for-one-format content must not abort the scan of
// the remaining formats.
func (l *Loader) identify(ctx context.Context, path string) (*registry.Descriptor, error) {
	logger := ctxlog.FromContext(ctx)
	for _, d := range l.registry.Descriptors() {
		ok, err := d.Identify(ctx, path)
		if err != nil {
			logger.Debug("Identify failed, treating as non-match.", "format", d.Name, "error", err)
			continue
		}
		if ok {
			return d, nil
		}
	}
	return nil, &FormatNotFoundError{Path: path}
}

// checkRequiredArgs enforces the manifest's required arguments and their
// declared types.
func (l *Loader) checkRequiredArgs(d *registry.Descriptor, args Args) error {
	for _, arg := range d.Definition.RequiredArgs {
		v, present := args[arg.Name]
		if !present {
			return &MissingArgumentError{Format: d.Name, Keyword: arg.Name}
		}
		if _, err := gocty.ToCtyValue(v, arg.Type); err != nil {
			return &ArgumentTypeError{
				Format:  d.Name,
				Keyword: arg.Name,
				Want:    arg.Type.FriendlyName(),
				Err:     err,
			}
		}
	}
	return nil
}

// entryPoint selects the capability's parse entry point in strict priority
// order: Parse, then OpenOld, then Open, then direct construction.
func entryPoint(capability any) (string, func(context.Context, string, Args) (any, error), bool) {
	if p, ok := capability.(registry.Parser); ok {
		return registry.EntryParse, p.Parse, true
	}
	if p, ok := capability.(registry.OldOpener); ok {
		return registry.EntryOpenOld, p.OpenOld, true
	}
	if p, ok := capability.(registry.Opener); ok {
		return registry.EntryOpen, p.Open, true
	}
	if c, ok := capability.(registry.Constructor); ok {
		return registry.EntryNew, c.New, true
	}
	return "", nil, false
}
