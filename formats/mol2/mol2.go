package mol2

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/vk/molload/fileio"
	"github.com/vk/molload/registry"
	"github.com/vk/molload/structure"
)

// Molecule is the native Mol2 result: named atoms with Tripos atom types
// and explicit bonds.
type Molecule struct {
	Name      string
	Atoms     []structure.Atom
	AtomTypes []string
	Bonds     [][2]int
}

// String summarizes the molecule for logs and CLI output.
func (m *Molecule) String() string {
	return fmt.Sprintf("<Molecule %s: %d atoms; %d bonds>", m.Name, len(m.Atoms), len(m.Bonds))
}

// Structure converts the molecule to the shared result model.
func (m *Molecule) Structure() *structure.Structure {
	return &structure.Structure{Atoms: m.Atoms, Bonds: m.Bonds}
}

// Mol2 is the format capability for Tripos Mol2 files.
type Mol2 struct{}

// Identify reports whether the first meaningful line opens a Tripos
// section.
func (f *Mol2) Identify(ctx context.Context, path string) (bool, error) {
	rc, err := fileio.Open(ctx, path)
	if err != nil {
		return false, err
	}
	defer rc.Close()

	scanner := bufio.NewScanner(rc)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return strings.HasPrefix(line, "@<TRIPOS>"), nil
	}
	return false, scanner.Err()
}

// Parse reads the MOLECULE, ATOM, and BOND sections. The native result is
// a *Molecule; with structure set, the shared *structure.Structure is
// returned instead.
func (f *Mol2) Parse(ctx context.Context, path string, args registry.Args) (any, error) {
	rc, err := fileio.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	mol := &Molecule{}
	section := ""
	molLine := 0

	scanner := bufio.NewScanner(rc)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "@<TRIPOS>") {
			section = strings.TrimPrefix(line, "@<TRIPOS>")
			continue
		}

		switch section {
		case "MOLECULE":
			if molLine == 0 {
				mol.Name = line
			}
			molLine++
		case "ATOM":
			if err := parseAtomLine(line, mol); err != nil {
				return nil, fmt.Errorf("malformed atom line %q: %w", line, err)
			}
		case "BOND":
			if err := parseBondLine(line, mol); err != nil {
				return nil, fmt.Errorf("malformed bond line %q: %w", line, err)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if asStructure, _ := args.Bool(registry.KeyStructure); asStructure {
		return mol.Structure(), nil
	}
	return mol, nil
}

// parseAtomLine reads: atom_id atom_name x y z atom_type [subst_id [subst_name [charge]]]
func parseAtomLine(line string, mol *Molecule) error {
	fields := strings.Fields(line)
	if len(fields) < 6 {
		return fmt.Errorf("expected at least 6 fields, got %d", len(fields))
	}
	coords := make([]float64, 3)
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(fields[2+i], 64)
		if err != nil {
			return err
		}
		coords[i] = v
	}
	atom := structure.Atom{
		Name: fields[1],
		X:    coords[0],
		Y:    coords[1],
		Z:    coords[2],
	}
	if len(fields) >= 7 {
		if resSeq, err := strconv.Atoi(fields[6]); err == nil {
			atom.ResSeq = resSeq
		}
	}
	if len(fields) >= 8 {
		atom.Residue = fields[7]
	}
	mol.Atoms = append(mol.Atoms, atom)
	mol.AtomTypes = append(mol.AtomTypes, fields[5])
	return nil
}

// parseBondLine reads: bond_id origin_atom target_atom bond_type
func parseBondLine(line string, mol *Molecule) error {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return fmt.Errorf("expected at least 3 fields, got %d", len(fields))
	}
	from, err := strconv.Atoi(fields[1])
	if err != nil {
		return err
	}
	to, err := strconv.Atoi(fields[2])
	if err != nil {
		return err
	}
	// Mol2 atom ids are one-based.
	mol.Bonds = append(mol.Bonds, [2]int{from - 1, to - 1})
	return nil
}
