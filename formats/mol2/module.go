// Package mol2 identifies and parses Tripos Mol2 molecule files.
package mol2

import (
	_ "embed"

	"github.com/vk/molload/registry"
)

//go:embed manifest.hcl
var manifest []byte

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the Mol2 format with the loader's registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterFormat("mol2", &Mol2{}, manifest)
}
