// Package registry provides the central catalog for file format handlers.
//
// The Registry maps a format's name to its Descriptor: the Go capability
// value that identifies and parses files of that format, plus the parsed
// manifest declaring its scan priority, required arguments, and which of
// the recognized optional arguments each entry point accepts.
//
// Formats register themselves through the Module interface at startup.
// Registration failures (duplicate names, malformed manifests) are
// configuration defects and panic; once a loader is built, the registry is
// read-only for the life of the process.
package registry
