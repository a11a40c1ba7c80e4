// Package xyz identifies and parses plain XYZ coordinate files.
package xyz

import (
	_ "embed"

	"github.com/vk/molload/registry"
)

//go:embed manifest.hcl
var manifest []byte

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the XYZ format with the loader's registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterFormat("xyz", &XYZ{}, manifest)
}
