package registry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/molload/internal/testutil"
	"github.com/vk/molload/registry"
)

func TestValidate_PassesForMatchingManifest(t *testing.T) {
	t.Parallel()

	r := registry.New()
	r.RegisterFormat("foo", noopParser(), testutil.Manifest("foo", `
		entry "parse" {
			accepts = ["structure", "skip_bonds"]
		}
	`))

	require.NoError(t, r.Validate(context.Background()))
}

func TestValidate_EntryNotImplemented(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The manifest declares an "open" entry point, but the capability only
	// implements Parse.
	r := registry.New()
	r.RegisterFormat("foo", noopParser(), testutil.Manifest("foo", `
		entry "parse" {}
		entry "open" {}
	`))

	// --- Act ---
	err := r.Validate(context.Background())

	// --- Assert ---
	require.Error(t, err)
	require.Contains(t, err.Error(), "entry point 'open'")
	require.Contains(t, err.Error(), "does not implement")
}

func TestValidate_UnknownEntryName(t *testing.T) {
	t.Parallel()

	r := registry.New()
	r.RegisterFormat("foo", noopParser(), testutil.Manifest("foo", `
		entry "parse" {}
		entry "slurp" {}
	`))

	err := r.Validate(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown entry point 'slurp'")
}

func TestValidate_UnrecognizedAcceptedArgument(t *testing.T) {
	t.Parallel()

	r := registry.New()
	r.RegisterFormat("foo", noopParser(), testutil.Manifest("foo", `
		entry "parse" {
			accepts = ["structure", "frobnicate"]
		}
	`))

	err := r.Validate(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "unrecognized argument 'frobnicate'")
}

func TestValidate_NoEntryPointCapability(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// Identify alone is not enough; a format must be parseable.
	r := registry.New()
	r.RegisterFormat("foo", &testutil.IdentifyOnly{IdentifyFn: testutil.MatchNone},
		testutil.Manifest("foo", ""))

	// --- Act ---
	err := r.Validate(context.Background())

	// --- Assert ---
	require.Error(t, err)
	require.Contains(t, err.Error(), "no parse entry point")
}

func TestValidate_RequiredArgumentWouldBePruned(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// natom is both required and one of the recognized optional names; an
	// entry point that does not accept it would never receive it.
	r := registry.New()
	r.RegisterFormat("foo", noopParser(), testutil.Manifest("foo", `
		required_arg "natom" {
			type = number
		}

		entry "parse" {
			accepts = ["hasbox"]
		}
	`))

	// --- Act ---
	err := r.Validate(context.Background())

	// --- Assert ---
	require.Error(t, err)
	require.Contains(t, err.Error(), "required argument 'natom'")
	require.Contains(t, err.Error(), "would be pruned")
}
