// Package testutil provides fake format capabilities and manifest helpers
// for exercising the registry and dispatcher in tests.
package testutil

import (
	"context"
	"fmt"

	"github.com/vk/molload/registry"
)

// Entry is the common signature of a fake parse entry point.
type Entry func(ctx context.Context, path string, args registry.Args) (any, error)

// Predicate is the signature of a fake identification predicate.
type Predicate func(ctx context.Context, path string) (bool, error)

// IdentifyOnly implements registry.Identifier and nothing else.
type IdentifyOnly struct {
	IdentifyFn Predicate
}

// Identify delegates to IdentifyFn, defaulting to a non-match.
func (f *IdentifyOnly) Identify(ctx context.Context, path string) (bool, error) {
	if f.IdentifyFn == nil {
		return false, nil
	}
	return f.IdentifyFn(ctx, path)
}

// ParserFormat implements Identifier and Parser.
type ParserFormat struct {
	IdentifyOnly
	ParseFn Entry
}

func (f *ParserFormat) Parse(ctx context.Context, path string, args registry.Args) (any, error) {
	return f.ParseFn(ctx, path, args)
}

// OpenerFormat implements Identifier and Opener.
type OpenerFormat struct {
	IdentifyOnly
	OpenFn Entry
}

func (f *OpenerFormat) Open(ctx context.Context, path string, args registry.Args) (any, error) {
	return f.OpenFn(ctx, path, args)
}

// OldOpenerFormat implements Identifier and OldOpener.
type OldOpenerFormat struct {
	IdentifyOnly
	OpenOldFn Entry
}

func (f *OldOpenerFormat) OpenOld(ctx context.Context, path string, args registry.Args) (any, error) {
	return f.OpenOldFn(ctx, path, args)
}

// ConstructorFormat implements Identifier and Constructor.
type ConstructorFormat struct {
	IdentifyOnly
	NewFn Entry
}

func (f *ConstructorFormat) New(ctx context.Context, path string, args registry.Args) (any, error) {
	return f.NewFn(ctx, path, args)
}

// ParserOpenerFormat implements Identifier, Parser, and Opener, for
// exercising entry-point priority.
type ParserOpenerFormat struct {
	ParserFormat
	OpenFn Entry
}

func (f *ParserOpenerFormat) Open(ctx context.Context, path string, args registry.Args) (any, error) {
	return f.OpenFn(ctx, path, args)
}

// NoEntryFormat implements only Identifier; it has no parse entry point
// and should fail registry validation.
type NoEntryFormat = IdentifyOnly

// SimpleModule is a test helper for registering a single fake format.
type SimpleModule struct {
	Name       string
	Capability any
	Manifest   []byte
}

// Register implements the registry.Module interface.
func (m *SimpleModule) Register(r *registry.Registry) {
	r.RegisterFormat(m.Name, m.Capability, m.Manifest)
}

// Manifest builds a minimal format manifest with the given body inside the
// format block.
func Manifest(name, body string) []byte {
	return []byte(fmt.Sprintf("format %q {\n%s\n}\n", name, body))
}

// MatchAll is a predicate accepting every path.
func MatchAll(ctx context.Context, path string) (bool, error) {
	return true, nil
}

// MatchNone is a predicate rejecting every path.
func MatchNone(ctx context.Context, path string) (bool, error) {
	return false, nil
}
