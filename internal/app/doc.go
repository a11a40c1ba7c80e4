// Package app wires the CLI together: it builds the logger and the loader
// with the built-in formats, translates CLI flags into the loader's
// argument bag, and loads a file, URL, or directory of files.
package app
