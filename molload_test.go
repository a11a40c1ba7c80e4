package molload_test

import (
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/molload"
	"github.com/vk/molload/formats/mdcrd"
	"github.com/vk/molload/structure"
)

const waterXYZ = `3
water molecule
O   0.000   0.000   0.117
H   0.000   0.757  -0.471
H   0.000  -0.757  -0.471
`

const alaninePDB = `HEADER    TEST STRUCTURE
CRYST1   10.000   10.000   10.000  90.00  90.00  90.00 P 1           1
ATOM      1  N   ALA A   1       0.000   0.000   0.000  1.00  0.00           N
ATOM      2  CA  ALA A   1       1.458   0.000   0.000  1.00  0.00           C
ATOM      3  C   ALA A   1       2.009   1.420   0.000  1.00  0.00           C
CONECT    1    2
CONECT    2    3
END
`

func TestDefault_IsBuiltOnce(t *testing.T) {
	t.Parallel()

	require.Same(t, molload.Default(), molload.Default())
}

func TestLoad_BuiltinXYZ(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := tempFile(t, "water.xyz", waterXYZ)

	// --- Act ---
	result, err := molload.Load(context.Background(), path, nil)

	// --- Assert ---
	require.NoError(t, err)
	s, ok := result.(*structure.Structure)
	require.True(t, ok, "expected *structure.Structure, got %T", result)
	assert.Len(t, s.Atoms, 3)
	assert.Equal(t, "O", s.Atoms[0].Name)
}

func TestLoad_BuiltinPDBGzip(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := filepath.Join(t.TempDir(), "ala.pdb.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := gzip.NewWriter(f)
	_, err = zw.Write([]byte(alaninePDB))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	// --- Act ---
	result, err := molload.Load(context.Background(), path, nil)

	// --- Assert ---
	require.NoError(t, err)
	s, ok := result.(*structure.Structure)
	require.True(t, ok, "expected *structure.Structure, got %T", result)
	assert.Len(t, s.Atoms, 3)
	require.NotNil(t, s.Box)
	assert.Equal(t, []float64{10, 10, 10, 90, 90, 90}, s.Box)
	assert.Len(t, s.Bonds, 2)
}

func TestLoad_BuiltinMdcrdRequiresNAtom(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	content := "test trajectory\n" +
		"   1.000   2.000   3.000   4.000   5.000   6.000\n" +
		"   7.000   8.000   9.000  10.000  11.000  12.000\n"
	path := tempFile(t, "prod.mdcrd", content)

	// --- Act / Assert: natom omitted ---
	_, err := molload.Load(context.Background(), path, nil)
	var missing *molload.MissingArgumentError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "mdcrd", missing.Format)
	assert.Equal(t, "natom", missing.Keyword)

	// --- Act / Assert: natom supplied ---
	result, err := molload.Load(context.Background(), path, molload.Args{molload.KeyNAtom: 2})
	require.NoError(t, err)
	traj, ok := result.(*mdcrd.Trajectory)
	require.True(t, ok, "expected *mdcrd.Trajectory, got %T", result)
	assert.Equal(t, 2, traj.NAtom)
	assert.Len(t, traj.Frames, 2)
}

func TestLoad_BuiltinUnidentifiable(t *testing.T) {
	t.Parallel()

	path := tempFile(t, "noise.bin", "\x00\x01\x02 this is not a structure file \x7f")

	_, err := molload.Load(context.Background(), path, nil)

	var notFound *molload.FormatNotFoundError
	require.ErrorAs(t, err, &notFound)
}
