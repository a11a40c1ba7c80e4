// Package structure holds the minimal shared result model the built-in
// format parsers fill in. It is an interface-level representation only:
// atoms, their coordinates, bonds between them, and an optional unit cell.
package structure

import "fmt"

// Atom is one atom record.
type Atom struct {
	Name    string
	Residue string
	ResSeq  int
	X, Y, Z float64
}

// Structure is a parsed set of atoms with optional connectivity and unit
// cell dimensions.
type Structure struct {
	Atoms []Atom
	// Bonds pairs zero-based atom indices.
	Bonds [][2]int
	// Box is the unit cell as lengths a, b, c and angles alpha, beta,
	// gamma, or nil when the file declares none.
	Box []float64
}

// ResidueCount counts the distinct residue sequence numbers present.
func (s *Structure) ResidueCount() int {
	seen := make(map[int]struct{})
	for _, a := range s.Atoms {
		seen[a.ResSeq] = struct{}{}
	}
	return len(seen)
}

// String summarizes the structure for logs and CLI output.
func (s *Structure) String() string {
	box := "no box"
	if s.Box != nil {
		box = "with box"
	}
	return fmt.Sprintf("<Structure %d atoms; %d residues; %d bonds; %s>",
		len(s.Atoms), s.ResidueCount(), len(s.Bonds), box)
}
