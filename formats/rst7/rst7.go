package rst7

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/vk/molload/fileio"
	"github.com/vk/molload/registry"
)

// Restart is the parsed result: one coordinate set, optionally with
// velocities omitted and a trailing unit cell line.
type Restart struct {
	Title       string
	NAtom       int
	Time        float64
	Coordinates [][3]float64
	Box         []float64
}

// String summarizes the restart for logs and CLI output.
func (r *Restart) String() string {
	box := "no box"
	if r.Box != nil {
		box = "with box"
	}
	return fmt.Sprintf("<Restart %d atoms; time %g; %s>", r.NAtom, r.Time, box)
}

// Rst7 is the format capability for Amber ASCII restart files. It exposes
// Open rather than Parse; the dispatcher falls through to it.
type Rst7 struct{}

// Identify checks the natom header line and the 12-column coordinate
// layout of the first data line.
func (f *Rst7) Identify(ctx context.Context, path string) (bool, error) {
	rc, err := fileio.Open(ctx, path)
	if err != nil {
		return false, err
	}
	defer rc.Close()

	scanner := bufio.NewScanner(rc)
	if !scanner.Scan() { // title
		return false, scanner.Err()
	}
	if !scanner.Scan() {
		return false, scanner.Err()
	}
	header := strings.Fields(scanner.Text())
	if len(header) == 0 || len(header) > 2 {
		return false, nil
	}
	if n, err := strconv.Atoi(header[0]); err != nil || n <= 0 {
		return false, nil
	}
	if len(header) == 2 {
		if _, err := strconv.ParseFloat(header[1], 64); err != nil {
			return false, nil
		}
	}
	if !scanner.Scan() {
		return false, scanner.Err()
	}
	_, err = fixedFloats(scanner.Text(), 12)
	return err == nil, nil
}

// Open reads the coordinate set. With hasbox set, a trailing line of cell
// dimensions is read into Box.
func (f *Rst7) Open(ctx context.Context, path string, args registry.Args) (any, error) {
	rc, err := fileio.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	scanner := bufio.NewScanner(rc)
	if !scanner.Scan() {
		return nil, fmt.Errorf("missing title line")
	}
	r := &Restart{Title: strings.TrimSpace(scanner.Text())}

	if !scanner.Scan() {
		return nil, fmt.Errorf("missing atom count line")
	}
	header := strings.Fields(scanner.Text())
	if len(header) == 0 {
		return nil, fmt.Errorf("empty atom count line")
	}
	if r.NAtom, err = strconv.Atoi(header[0]); err != nil {
		return nil, fmt.Errorf("malformed atom count: %w", err)
	}
	if len(header) > 1 {
		if r.Time, err = strconv.ParseFloat(header[1], 64); err != nil {
			return nil, fmt.Errorf("malformed time: %w", err)
		}
	}

	need := 3 * r.NAtom
	values := make([]float64, 0, need)
	for len(values) < need && scanner.Scan() {
		vs, err := fixedFloats(scanner.Text(), 12)
		if err != nil {
			return nil, fmt.Errorf("malformed coordinate line: %w", err)
		}
		values = append(values, vs...)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(values) < need {
		return nil, fmt.Errorf("expected %d coordinates, got %d", need, len(values))
	}

	r.Coordinates = make([][3]float64, r.NAtom)
	for i := range r.Coordinates {
		r.Coordinates[i] = [3]float64{values[3*i], values[3*i+1], values[3*i+2]}
	}

	if hasBox, _ := args.Bool(registry.KeyHasBox); hasBox {
		if !scanner.Scan() {
			return nil, fmt.Errorf("hasbox set but no box line present")
		}
		box, err := fixedFloats(scanner.Text(), 12)
		if err != nil || (len(box) != 3 && len(box) != 6) {
			return nil, fmt.Errorf("malformed box line")
		}
		r.Box = box
	}
	return r, nil
}

// fixedFloats splits a line into width-sized columns and parses each as a
// float. Amber ASCII files use fixed-width columns, not whitespace
// delimiters.
func fixedFloats(line string, width int) ([]float64, error) {
	line = strings.TrimRight(line, " \r")
	if line == "" || len(line)%width != 0 {
		return nil, fmt.Errorf("line length %d is not a multiple of %d", len(line), width)
	}
	out := make([]float64, 0, len(line)/width)
	for i := 0; i < len(line); i += width {
		v, err := strconv.ParseFloat(strings.TrimSpace(line[i:i+width]), 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
