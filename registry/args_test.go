package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/molload/registry"
)

func TestArgs_TypedAccessors(t *testing.T) {
	t.Parallel()

	args := registry.Args{
		"structure": true,
		"natom":     42,
		"big":       int64(7),
		"loose":     float64(3),
		"name":      "trx",
	}

	b, ok := args.Bool("structure")
	require.True(t, ok)
	assert.True(t, b)

	n, ok := args.Int("natom")
	require.True(t, ok)
	assert.Equal(t, 42, n)

	n, ok = args.Int("big")
	require.True(t, ok)
	assert.Equal(t, 7, n)

	n, ok = args.Int("loose")
	require.True(t, ok)
	assert.Equal(t, 3, n)

	s, ok := args.String("name")
	require.True(t, ok)
	assert.Equal(t, "trx", s)

	_, ok = args.Bool("missing")
	assert.False(t, ok)
	_, ok = args.Int("name")
	assert.False(t, ok)
}

func TestArgs_CloneIsIndependent(t *testing.T) {
	t.Parallel()

	args := registry.Args{"natom": 10}
	clone := args.Clone()
	clone["natom"] = 20
	delete(clone, "natom")

	n, ok := args.Int("natom")
	require.True(t, ok)
	assert.Equal(t, 10, n)
}
