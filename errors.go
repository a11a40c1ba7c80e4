package molload

import "fmt"

// NotFoundError reports that a local path does not exist. It is returned
// before any identification is attempted.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s does not exist", e.Path)
}

// PermissionError reports that a local path exists but is not readable.
type PermissionError struct {
	Path string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("%s does not have read permissions set", e.Path)
}

// TransportError reports that a remote URL could not be opened.
type TransportError struct {
	Path string
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("could not open %s: %v", e.Path, e.Err)
}

// Unwrap exposes the underlying transport failure.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// FormatNotFoundError reports that no registered format identified the
// file's content.
type FormatNotFoundError struct {
	Path string
}

func (e *FormatNotFoundError) Error() string {
	return fmt.Sprintf("could not identify file format of %s", e.Path)
}

// MissingArgumentError reports that the selected format requires an
// argument the caller did not supply.
type MissingArgumentError struct {
	Format  string
	Keyword string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("format %s requires the %q argument", e.Format, e.Keyword)
}

// ArgumentTypeError reports that a supplied required argument does not
// match the type its format's manifest declares.
type ArgumentTypeError struct {
	Format  string
	Keyword string
	Want    string
	Err     error
}

func (e *ArgumentTypeError) Error() string {
	return fmt.Sprintf("format %s: argument %q must be %s: %v", e.Format, e.Keyword, e.Want, e.Err)
}

// Unwrap exposes the underlying conversion failure.
func (e *ArgumentTypeError) Unwrap() error {
	return e.Err
}
