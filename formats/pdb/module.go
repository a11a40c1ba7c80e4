// Package pdb identifies and parses Protein Data Bank coordinate files.
package pdb

import (
	_ "embed"

	"github.com/vk/molload/registry"
)

//go:embed manifest.hcl
var manifest []byte

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the PDB format with the loader's registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterFormat("pdb", &PDB{}, manifest)
}
