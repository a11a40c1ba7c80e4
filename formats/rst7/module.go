// Package rst7 identifies and reads Amber ASCII restart files.
package rst7

import (
	_ "embed"

	"github.com/vk/molload/registry"
)

//go:embed manifest.hcl
var manifest []byte

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the restart format with the loader's registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterFormat("rst7", &Rst7{}, manifest)
}
