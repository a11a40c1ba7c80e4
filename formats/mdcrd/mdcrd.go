package mdcrd

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/vk/molload/fileio"
	"github.com/vk/molload/registry"
)

// Trajectory is the parsed result: one or more coordinate frames with
// optional per-frame box dimensions.
type Trajectory struct {
	Title  string
	NAtom  int
	Frames [][][3]float64
	Boxes  [][]float64
}

// String summarizes the trajectory for logs and CLI output.
func (t *Trajectory) String() string {
	return fmt.Sprintf("<Trajectory %d atoms; %d frames>", t.NAtom, len(t.Frames))
}

// Mdcrd is the format capability for Amber ASCII trajectories: a title
// line followed by 8-column coordinate data. The format embeds no atom
// count, so parsing requires the natom argument.
type Mdcrd struct{}

// Identify checks that the lines after the title are 8-column float data.
func (f *Mdcrd) Identify(ctx context.Context, path string) (bool, error) {
	rc, err := fileio.Open(ctx, path)
	if err != nil {
		return false, err
	}
	defer rc.Close()

	scanner := bufio.NewScanner(rc)
	if !scanner.Scan() { // title
		return false, scanner.Err()
	}
	checked := 0
	for scanner.Scan() && checked < 4 {
		if _, err := fixedFloats(scanner.Text(), 8); err != nil {
			return false, nil
		}
		checked++
	}
	if err := scanner.Err(); err != nil {
		return false, err
	}
	return checked > 0, nil
}

// Parse reads the whole trajectory. natom must have been supplied by the
// caller; with hasbox set, each frame is followed by a box line.
func (f *Mdcrd) Parse(ctx context.Context, path string, args registry.Args) (any, error) {
	natom, ok := args.Int(registry.KeyNAtom)
	if !ok || natom <= 0 {
		return nil, fmt.Errorf("natom must be a positive integer")
	}
	hasBox, _ := args.Bool(registry.KeyHasBox)

	rc, err := fileio.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	scanner := bufio.NewScanner(rc)
	if !scanner.Scan() {
		return nil, fmt.Errorf("missing title line")
	}
	t := &Trajectory{Title: strings.TrimSpace(scanner.Text()), NAtom: natom}

	var values []float64
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		vs, err := fixedFloats(line, 8)
		if err != nil {
			return nil, fmt.Errorf("malformed coordinate line: %w", err)
		}
		values = append(values, vs...)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	frameLen := 3 * natom
	boxLen := 0
	if hasBox {
		boxLen = 3
	}
	stride := frameLen + boxLen
	if len(values)%stride != 0 {
		return nil, fmt.Errorf("trajectory holds %d values, not a whole number of %d-atom frames", len(values), natom)
	}

	for off := 0; off < len(values); off += stride {
		frame := make([][3]float64, natom)
		for i := range frame {
			frame[i] = [3]float64{values[off+3*i], values[off+3*i+1], values[off+3*i+2]}
		}
		t.Frames = append(t.Frames, frame)
		if hasBox {
			box := values[off+frameLen : off+stride]
			t.Boxes = append(t.Boxes, []float64{box[0], box[1], box[2]})
		}
	}
	return t, nil
}

// fixedFloats splits a line into width-sized columns and parses each as a
// float.
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
