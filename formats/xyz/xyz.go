package xyz

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

// XYZ is the format capability for plain XYZ files: an atom count, a
// comment line, then one "element x y z" line per atom.
type XYZ struct{}

// Identify requires an integer-only first line and a parsable coordinate
// line after the comment.
func (f *XYZ) Identify(ctx context.Context, path string) (bool, error) {
	rc, err := fileio.Open(ctx, path)
	if err != nil {
		return false, err
	}
	defer rc.Close()

	scanner := bufio.NewScanner(rc)
	if !scanner.Scan() {
		return false, scanner.Err()
	}
	header := strings.Fields(scanner.Text())
	if len(header) != 1 {
		return false, nil
	}
	if n, err := strconv.Atoi(header[0]); err != nil || n <= 0 {
		return false, nil
	}
	if !scanner.Scan() { // comment line
		return false, scanner.Err()
	}
	if !scanner.Scan() {
		return false, scanner.Err()
	}
	_, err = parseCoordLine(scanner.Text())
	return err == nil, nil
}

// Parse reads exactly the declared number of atoms.
func (f *XYZ) Parse(ctx context.Context, path string, args registry.Args) (any, error) {
	rc, err := fileio.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	scanner := bufio.NewScanner(rc)
	if !scanner.Scan() {
		return nil, fmt.Errorf("missing atom count line")
	}
	count, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return nil, fmt.Errorf("malformed atom count: %w", err)
	}
	if !scanner.Scan() {
		return nil, fmt.Errorf("missing comment line")
	}

	s := &structure.Structure{Atoms: make([]structure.Atom, 0, count)}
	for i := 0; i < count; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("expected %d atoms, file ends after %d", count, i)
		}
		atom, err := parseCoordLine(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("atom %d: %w", i+1, err)
		}
		atom.ResSeq = 1
		s.Atoms = append(s.Atoms, atom)
	}
	return s, scanner.Err()
}

func parseCoordLine(line string) (structure.Atom, error) {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return structure.Atom{}, fmt.Errorf("expected 4 fields, got %d", len(fields))
	}
	coords := make([]float64, 3)
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(fields[1+i], 64)
		if err != nil {
			return structure.Atom{}, err
		}
		coords[i] = v
	}
	return structure.Atom{Name: fields[0], X: coords[0], Y: coords[1], Z: coords[2]}, nil
}
