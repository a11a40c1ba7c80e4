package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/molload/internal/ctxlog"
)

// entryCapability reports whether the capability implements the entry point
// with the given manifest name.
func entryCapability(capability any, entry string) (implemented, known bool) {
	switch entry {
	case EntryParse:
		_, ok := capability.(Parser)
		return ok, true
	case EntryOpenOld:
		_, ok := capability.(OldOpener)
		return ok, true
	case EntryOpen:
		_, ok := capability.(Opener)
		return ok, true
	case EntryNew:
		_, ok := capability.(Constructor)
		return ok, true
	}
	return false, false
}

// implementsAnyEntry reports whether the capability exposes at least one
// parse entry point.
func implementsAnyEntry(capability any) bool {
	for _, entry := range []string{EntryParse, EntryOpenOld, EntryOpen, EntryNew} {
		if ok, _ := entryCapability(capability, entry); ok {
			return true
		}
	}
	return false
}

// Validate performs a strict parity check between each format's manifest
// and its Go capability. It catches the mismatches that would otherwise
// surface as confusing dispatch-time behavior: manifests declaring entry
// points the Go type does not implement, acceptance lists naming unknown
// arguments, and required arguments that an entry point would prune away.
func (r *Registry) Validate(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	recognized := make(map[string]struct{}, len(recognizedFlags))
	for _, f := range recognizedFlags {
		recognized[f] = struct{}{}
	}

	for _, d := range r.Descriptors() {
		def := d.Definition

		if !implementsAnyEntry(d.Capability) {
			errs = append(errs, fmt.Sprintf("format '%s': capability implements no parse entry point", d.Name))
		}

		for name, entry := range def.Entries {
			implemented, known := entryCapability(d.Capability, name)
			if !known {
				errs = append(errs, fmt.Sprintf("format '%s': manifest declares unknown entry point '%s'", d.Name, name))
				continue
			}
			if !implemented {
				errs = append(errs, fmt.Sprintf("format '%s': manifest declares entry point '%s' which the Go capability does not implement", d.Name, name))
			}
			for _, flag := range entry.AcceptedFlags() {
				if _, ok := recognized[flag]; !ok {
					errs = append(errs, fmt.Sprintf("format '%s', entry '%s': accepts unrecognized argument '%s'", d.Name, name, flag))
				}
			}
		}

		// A required argument that is also one of the recognized optional
		// names must be accepted by every declared entry point, or pruning
		// would strip it before the handler ever sees it.
		for _, arg := range def.RequiredArgs {
			if _, isFlag := recognized[arg.Name]; !isFlag {
				continue
			}
			for name, entry := range def.Entries {
				if !entry.Accepts(arg.Name) {
					errs = append(errs, fmt.Sprintf("format '%s', entry '%s': required argument '%s' is missing from the accepts list and would be pruned", d.Name, name, arg.Name))
				}
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	logger.Debug("Registry validation passed.", "formats", r.Len())
	return nil
}
