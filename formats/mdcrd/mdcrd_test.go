package mdcrd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/molload/registry"
)

// fixture renders values in the Amber 10F8.3 layout, ten per line.
func fixture(t *testing.T, values []float64) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("test trajectory\n")
	for i, v := range values {
		fmt.Fprintf(&b, "%8.3f", v)
		if (i+1)%10 == 0 {
			b.WriteByte('\n')
		}
	}
	if len(values)%10 != 0 {
		b.WriteByte('\n')
	}

	path := filepath.Join(t.TempDir(), "prod.mdcrd")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0600))
	return path
}

func TestIdentify(t *testing.T) {
	t.Parallel()

	f := &Mdcrd{}

	ok, err := f.Identify(context.Background(), fixture(t, []float64{1, 2, 3, 4, 5, 6}))
	require.NoError(t, err)
	assert.True(t, ok)

	path := filepath.Join(t.TempDir(), "mol.pdb")
	require.NoError(t, os.WriteFile(path, []byte("HEADER    PROTEIN\nATOM ...\n"), 0600))
	ok, err = f.Identify(context.Background(), path)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestParse(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// Two atoms, two frames.
	f := &Mdcrd{}
	path := fixture(t, []float64{
		1, 2, 3, 4, 5, 6,
		7, 8, 9, 10, 11, 12,
	})

	// --- Act ---
	result, err := f.Parse(context.Background(), path, registry.Args{registry.KeyNAtom: 2})

	// --- Assert ---
	require.NoError(t, err)
	traj := result.(*Trajectory)
	assert.Equal(t, "test trajectory", traj.Title)
	require.Len(t, traj.Frames, 2)
	assert.Equal(t, [3]float64{4, 5, 6}, traj.Frames[0][1])
	assert.Equal(t, [3]float64{7, 8, 9}, traj.Frames[1][0])
	assert.Empty(t, traj.Boxes)
}

func TestParse_WithBox(t *testing.T) {
	t.Parallel()

	// One atom per frame plus a three-value box line per frame.
	f := &Mdcrd{}
	path := fixture(t, []float64{
		1, 2, 3, 20, 20, 20,
		4, 5, 6, 21, 21, 21,
	})

	result, err := f.Parse(context.Background(), path,
		registry.Args{registry.KeyNAtom: 1, registry.KeyHasBox: true})

	require.NoError(t, err)
	traj := result.(*Trajectory)
	require.Len(t, traj.Frames, 2)
	require.Len(t, traj.Boxes, 2)
	assert.Equal(t, []float64{21, 21, 21}, traj.Boxes[1])
}

func TestParse_BadAtomCount(t *testing.T) {
	t.Parallel()

	f := &Mdcrd{}
	path := fixture(t, []float64{1, 2, 3, 4, 5, 6, 7})

	_, err := f.Parse(context.Background(), path, registry.Args{registry.KeyNAtom: 2})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "whole number")

	_, err = f.Parse(context.Background(), path, registry.Args{registry.KeyNAtom: 0})
	require.Error(t, err)
}
