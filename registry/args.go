package registry

// Args is the keyword-argument bag passed through the dispatcher to a
// format's entry point. Four keys are recognized as shared optional
// arguments and are pruned per entry point according to the format's
// manifest; every other key is forwarded untouched.
type Args map[string]any

// Recognized optional argument names shared loosely across formats.
const (
	// KeyStructure asks formats with a non-Structure default result (such
	// as Mol2) to return a Structure instead.
	KeyStructure = "structure"
	// KeyNAtom is the expected atom count, for formats with no embedded
	// count of their own.
	KeyNAtom = "natom"
	// KeyHasBox indicates the coordinate file carries unit cell dimensions.
	KeyHasBox = "hasbox"
	// KeySkipBonds disables bond searching for topology formats that do
	// not carry bond information.
	KeySkipBonds = "skip_bonds"
)

// recognizedFlags is the fixed set of argument names subject to pruning.
var recognizedFlags = []string{KeyStructure, KeyNAtom, KeyHasBox, KeySkipBonds}

// RecognizedFlags returns the names of the shared optional arguments, in a
// stable order.
func RecognizedFlags() []string {
	out := make([]string, len(recognizedFlags))
	copy(out, recognizedFlags)
	return out
}

// Bool reads key as a bool. The second return reports whether the key was
// present with a bool value.
func (a Args) Bool(key string) (bool, bool) {
	v, ok := a[key].(bool)
	return v, ok
}

// Int reads key as an int, accepting the integer types a caller is likely
// to put in an untyped bag.
func (a Args) Int(key string) (int, bool) {
	switch v := a[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	}
	return 0, false
}

// String reads key as a string.
func (a Args) String(key string) (string, bool) {
	v, ok := a[key].(string)
	return v, ok
}

// Clone returns a shallow copy of the bag. The dispatcher prunes a copy so
// the caller's map is never mutated.
func (a Args) Clone() Args {
	out := make(Args, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}
