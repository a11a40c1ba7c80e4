package molload

import "github.com/vk/molload/registry"

// Args is the keyword-argument bag accepted by Load. See registry.Args.
type Args = registry.Args

// Recognized optional argument names, re-exported for callers.
const (
	KeyStructure = registry.KeyStructure
	KeyNAtom     = registry.KeyNAtom
	KeyHasBox    = registry.KeyHasBox
	KeySkipBonds = registry.KeySkipBonds
)

// adaptArgs returns a copy of args with each recognized optional argument
// removed unless the chosen entry point's manifest declares it accepted.
// All other keys pass through untouched, and the caller's map is never
// mutated.
func adaptArgs(args Args, entry *registry.EntryDefinition) Args {
	out := args.Clone()
	for _, key := range registry.RecognizedFlags() {
		if _, present := out[key]; present && !entry.Accepts(key) {
			delete(out, key)
		}
	}
	return out
}
