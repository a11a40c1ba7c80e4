package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
)

// Module is the interface that all format modules must implement to be
// registered.
type Module interface {
	Register(r *Registry)
}

// Identifier is the one capability every registered format must expose: a
// predicate deciding whether the file at path is of this format. An error
// from Identify is treated by the dispatcher as "not this format", never as
// fatal, so predicates are free to fail on binary or malformed content.
type Identifier interface {
	Identify(ctx context.Context, path string) (bool, error)
}

// Parser is the preferred parse entry point.
type Parser interface {
	Parse(ctx context.Context, path string, args Args) (any, error)
}

// OldOpener is the legacy parse entry point, tried after Parse.
type OldOpener interface {
	OpenOld(ctx context.Context, path string, args Args) (any, error)
}

// Opener is tried after OpenOld.
type Opener interface {
	Open(ctx context.Context, path string, args Args) (any, error)
}

// Constructor is the last-resort entry point: direct construction of the
// format's result object from a path.
type Constructor interface {
	New(ctx context.Context, path string, args Args) (any, error)
}

// DuplicateFormatError is the panic value raised when two formats register
// under the same name. It is an initialization defect, not a runtime
// condition.
type DuplicateFormatError struct {
	Name string
}

// Error implements the error interface.
func (e *DuplicateFormatError) Error() string {
	return fmt.Sprintf("format %q is already registered", e.Name)
}

// Descriptor is the registry's record for one registered format.
type Descriptor struct {
	// Name is the format's unique identifier.
	Name string
	// Capability is the format handler itself. Registration guarantees it
	// implements Identifier; the parse entry points are discovered by type
	// assertion against Parser, OldOpener, Opener, and Constructor.
	Capability any
	// Definition is the format's parsed manifest.
	Definition *FormatDefinition
}

// Identify invokes the capability's identification predicate.
func (d *Descriptor) Identify(ctx context.Context, path string) (bool, error) {
	return d.Capability.(Identifier).Identify(ctx, path)
}

// Registry holds all registered format descriptors for a single loader
// instance.
type Registry struct {
	formats map[string]*Descriptor
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		formats: make(map[string]*Descriptor),
	}
}

// RegisterFormat adds a format to the catalog under the given name,
// parsing manifestSrc as the format's HCL manifest.
//
// It panics with *DuplicateFormatError if the name is taken and with a
// descriptive error if the manifest is malformed. A capability that does
// not implement Identifier is not a format; it is skipped rather than
// registered, since the dispatcher could never select it.
func (r *Registry) RegisterFormat(name string, capability any, manifestSrc []byte) {
	if _, exists := r.formats[name]; exists {
		panic(&DuplicateFormatError{Name: name})
	}
	if _, ok := capability.(Identifier); !ok {
		slog.Debug("Capability has no Identify predicate, not registering.", "name", name)
		return
	}
	def, err := parseManifest(name, manifestSrc)
	if err != nil {
		panic(fmt.Errorf("format %q: %w", name, err))
	}
	slog.Debug("Registering format.", "name", name, "priority", def.Priority)
	r.formats[name] = &Descriptor{
		Name:       name,
		Capability: capability,
		Definition: def,
	}
}

// Lookup returns the descriptor registered under name, or nil.
func (r *Registry) Lookup(name string) *Descriptor {
	return r.formats[name]
}

// Len returns the number of registered formats.
func (r *Registry) Len() int {
	return len(r.formats)
}

// Descriptors returns a snapshot of the catalog for iteration by the
// dispatcher, ordered by descending priority and then by name. The order
// is deterministic: when two formats could both identify the same bytes,
// the higher-priority one wins, and equal priorities tie-break by name.
func (r *Registry) Descriptors() []*Descriptor {
	out := make([]*Descriptor, 0, len(r.formats))
	for _, d := range r.formats {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Definition.Priority != out[j].Definition.Priority {
			return out[i].Definition.Priority > out[j].Definition.Priority
		}
		return out[i].Name < out[j].Name
	})
	return out
}
