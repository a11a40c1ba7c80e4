package registry

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/ext/typeexpr"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// Entry point names a manifest may declare. They correspond, in dispatch
// priority order, to the Parser, OldOpener, Opener, and Constructor
// capabilities.
const (
	EntryParse   = "parse"
	EntryOpenOld = "open_old"
	EntryOpen    = "open"
	EntryNew     = "new"
)

// --- HCL manifest schema ---

type manifestFile struct {
	Format *formatBlock `hcl:"format,block"`
	Remain hcl.Body     `hcl:",remain"`
}

type formatBlock struct {
	Name         string         `hcl:"name,label"`
	Description  string         `hcl:"description,optional"`
	Priority     int            `hcl:"priority,optional"`
	Extensions   []string       `hcl:"extensions,optional"`
	RequiredArgs []*requiredArg `hcl:"required_arg,block"`
	Entries      []*entryBlock  `hcl:"entry,block"`
}

type requiredArg struct {
	Name        string         `hcl:"name,label"`
	Type        hcl.Expression `hcl:"type"`
	Description string         `hcl:"description,optional"`
}

type entryBlock struct {
	Name    string   `hcl:"name,label"`
	Accepts []string `hcl:"accepts,optional"`
}

// --- Agnostic manifest model ---

// FormatDefinition is the parsed representation of a format's manifest.
type FormatDefinition struct {
	Name        string
	Description string
	// Priority orders the identification scan; higher scans first, ties
	// break by name.
	Priority int
	// Extensions lists the filename extensions conventionally used by the
	// format. Informational; identification is content-based.
	Extensions []string
	// RequiredArgs are the arguments the dispatcher must enforce as
	// present, in manifest order.
	RequiredArgs []*ArgDefinition
	// Entries maps an entry point name to its declared argument acceptance.
	Entries map[string]*EntryDefinition
}

// ArgDefinition declares one required argument and its expected type.
type ArgDefinition struct {
	Name        string
	Type        cty.Type
	Description string
}

// EntryDefinition declares which of the recognized optional arguments one
// entry point accepts.
type EntryDefinition struct {
	Name    string
	accepts map[string]struct{}
}

// NewEntryDefinition builds an EntryDefinition directly, bypassing the
// manifest. Intended for tests of argument pruning.
func NewEntryDefinition(name string, accepts ...string) *EntryDefinition {
	e := &EntryDefinition{Name: name, accepts: make(map[string]struct{}, len(accepts))}
	for _, flag := range accepts {
		e.accepts[flag] = struct{}{}
	}
	return e
}

// Accepts reports whether the entry point declared the given recognized
// argument name. A nil EntryDefinition accepts nothing.
func (e *EntryDefinition) Accepts(key string) bool {
	if e == nil {
		return false
	}
	_, ok := e.accepts[key]
	return ok
}

// AcceptedFlags returns the declared acceptance list.
func (e *EntryDefinition) AcceptedFlags() []string {
	if e == nil {
		return nil
	}
	out := make([]string, 0, len(e.accepts))
	for k := range e.accepts {
		out = append(out, k)
	}
	return out
}

// parseManifest parses and translates a format's HCL manifest. The
// manifest's format label must match the registration name.
func parseManifest(name string, src []byte) (*FormatDefinition, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, name+"/manifest.hcl")
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse manifest: %w", diags)
	}

	var mf manifestFile
	if diags := gohcl.DecodeBody(file.Body, nil, &mf); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode manifest: %w", diags)
	}
	if mf.Format == nil {
		return nil, fmt.Errorf("manifest has no format block")
	}
	if mf.Format.Name != name {
		return nil, fmt.Errorf("manifest declares format %q, registered as %q", mf.Format.Name, name)
	}

	def := &FormatDefinition{
		Name:        mf.Format.Name,
		Description: mf.Format.Description,
		Priority:    mf.Format.Priority,
		Extensions:  mf.Format.Extensions,
		Entries:     make(map[string]*EntryDefinition),
	}

	for _, arg := range mf.Format.RequiredArgs {
		ty, diags := typeexpr.TypeConstraint(arg.Type)
		if diags.HasErrors() {
			return nil, fmt.Errorf("required_arg %q: invalid type: %w", arg.Name, diags)
		}
		def.RequiredArgs = append(def.RequiredArgs, &ArgDefinition{
			Name:        arg.Name,
			Type:        ty,
			Description: arg.Description,
		})
	}

	for _, e := range mf.Format.Entries {
		if _, dup := def.Entries[e.Name]; dup {
			return nil, fmt.Errorf("entry %q declared twice", e.Name)
		}
		ed := &EntryDefinition{
			Name:    e.Name,
			accepts: make(map[string]struct{}, len(e.Accepts)),
		}
		for _, flag := range e.Accepts {
			ed.accepts[flag] = struct{}{}
		}
		def.Entries[e.Name] = ed
	}

	return def, nil
}
