// Package mdcrd identifies and reads Amber ASCII trajectory files.
package mdcrd

import (
	_ "embed"

	"github.com/vk/molload/registry"
)

//go:embed manifest.hcl
var manifest []byte

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the trajectory format with the loader's registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterFormat("mdcrd", &Mdcrd{}, manifest)
}
