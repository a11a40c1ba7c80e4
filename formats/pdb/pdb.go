package pdb

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/vk/molload/fileio"
	"github.com/vk/molload/internal/ctxlog"
	"github.com/vk/molload/registry"
	"github.com/vk/molload/structure"
)

// PDB is the format capability for Protein Data Bank files.
type PDB struct{}

// knownRecords are the record names a PDB file may open with. The
// predicate only accepts files whose leading lines all carry one of these.
var knownRecords = map[string]struct{}{
	"HEADER": {}, "OBSLTE": {}, "TITLE": {}, "SPLIT": {}, "CAVEAT": {},
	"COMPND": {}, "SOURCE": {}, "KEYWDS": {}, "EXPDTA": {}, "NUMMDL": {},
	"MDLTYP": {}, "AUTHOR": {}, "REVDAT": {}, "SPRSDE": {}, "JRNL": {},
	"REMARK": {}, "DBREF": {}, "DBREF1": {}, "DBREF2": {}, "SEQADV": {},
	"SEQRES": {}, "MODRES": {}, "HET": {}, "HETNAM": {}, "HETSYN": {},
	"FORMUL": {}, "HELIX": {}, "SHEET": {}, "SSBOND": {}, "LINK": {},
	"CISPEP": {}, "SITE": {}, "CRYST1": {}, "ORIGX1": {}, "ORIGX2": {},
	"ORIGX3": {}, "SCALE1": {}, "SCALE2": {}, "SCALE3": {}, "MTRIX1": {},
	"MTRIX2": {}, "MTRIX3": {}, "MODEL": {}, "ATOM": {}, "ANISOU": {},
	"TER": {}, "HETATM": {}, "ENDMDL": {}, "CONECT": {}, "MASTER": {},
	"END": {},
}

// Identify reports whether the file's leading lines look like PDB records.
func (p *PDB) Identify(ctx context.Context, path string) (bool, error) {
	rc, err := fileio.Open(ctx, path)
	if err != nil {
		return false, err
	}
	defer rc.Close()

	scanner := bufio.NewScanner(rc)
	seen := 0
	for scanner.Scan() && seen < 40 {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		rec := recordName(line)
		if _, ok := knownRecords[rec]; !ok {
			return false, nil
		}
		// A coordinate or header record settles it.
		switch rec {
		case "ATOM", "HETATM", "HEADER":
			return true, nil
		}
		seen++
	}
	if err := scanner.Err(); err != nil {
		return false, err
	}
	return seen > 0, nil
}

// Parse reads the ATOM/HETATM records into a Structure. Unless skip_bonds
// is set, CONECT records are translated into bonds.
func (p *PDB) Parse(ctx context.Context, path string, args registry.Args) (any, error) {
	logger := ctxlog.FromContext(ctx)
	skipBonds, _ := args.Bool(registry.KeySkipBonds)

	rc, err := fileio.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	s := &structure.Structure{}
	serialToIndex := make(map[int]int)

	scanner := bufio.NewScanner(rc)
	for scanner.Scan() {
		line := scanner.Text()
		switch recordName(line) {
		case "ATOM", "HETATM":
			atom, serial, err := parseAtomRecord(line)
			if err != nil {
				return nil, fmt.Errorf("malformed atom record %q: %w", line, err)
			}
			serialToIndex[serial] = len(s.Atoms)
			s.Atoms = append(s.Atoms, atom)
		case "CRYST1":
			box, err := parseCryst1(line)
			if err != nil {
				return nil, fmt.Errorf("malformed CRYST1 record: %w", err)
			}
			s.Box = box
		case "CONECT":
			if skipBonds {
				continue
			}
			bonds := parseConect(line, serialToIndex)
			s.Bonds = append(s.Bonds, bonds...)
		case "ENDMDL":
			// Only the first model is read.
			logger.Debug("Stopping at ENDMDL, additional models ignored.")
			if err := scanner.Err(); err != nil {
				return nil, err
			}
			return s, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return s, nil
}

func recordName(line string) string {
	if len(line) > 6 {
		line = line[:6]
	}
	return strings.ToUpper(strings.TrimSpace(line))
}

// field extracts the fixed-column slice [from, to), tolerating short lines.
func field(line string, from, to int) string {
	if len(line) < from {
		return ""
	}
	if len(line) < to {
		to = len(line)
	}
	return strings.TrimSpace(line[from:to])
}

func parseAtomRecord(line string) (structure.Atom, int, error) {
	serial, err := strconv.Atoi(field(line, 6, 11))
	if err != nil {
		return structure.Atom{}, 0, err
	}
	resSeq, err := strconv.Atoi(field(line, 22, 26))
	if err != nil {
		return structure.Atom{}, 0, err
	}
	x, err := strconv.ParseFloat(field(line, 30, 38), 64)
	if err != nil {
		return structure.Atom{}, 0, err
	}
	y, err := strconv.ParseFloat(field(line, 38, 46), 64)
	if err != nil {
		return structure.Atom{}, 0, err
	}
	z, err := strconv.ParseFloat(field(line, 46, 54), 64)
	if err != nil {
		return structure.Atom{}, 0, err
	}
	return structure.Atom{
		Name:    field(line, 12, 16),
		Residue: field(line, 17, 20),
		ResSeq:  resSeq,
		X:       x,
		Y:       y,
		Z:       z,
	}, serial, nil
}

func parseCryst1(line string) ([]float64, error) {
	cols := [][2]int{{6, 15}, {15, 24}, {24, 33}, {33, 40}, {40, 47}, {47, 54}}
	box := make([]float64, 0, 6)
	for _, c := range cols {
		v, err := strconv.ParseFloat(field(line, c[0], c[1]), 64)
		if err != nil {
			return nil, err
		}
		box = append(box, v)
	}
	return box, nil
}

// parseConect reads a CONECT record: the first serial bonds to each of the
// following ones. Duplicate reverse entries are kept out by ordering the
// pair.
func parseConect(line string, serialToIndex map[int]int) [][2]int {
	cols := [][2]int{{6, 11}, {11, 16}, {16, 21}, {21, 26}, {26, 31}}
	base, err := strconv.Atoi(field(line, cols[0][0], cols[0][1]))
	if err != nil {
		return nil
	}
	from, ok := serialToIndex[base]
	if !ok {
		return nil
	}
	var bonds [][2]int
	for _, c := range cols[1:] {
		serial, err := strconv.Atoi(field(line, c[0], c[1]))
		if err != nil {
			continue
		}
		to, ok := serialToIndex[serial]
		if !ok || to <= from {
			continue
		}
		bonds = append(bonds, [2]int{from, to})
	}
	return bonds
}
