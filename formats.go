package molload

import (
	"github.com/vk/molload/formats/mdcrd"
	"github.com/vk/molload/formats/mol2"
	"github.com/vk/molload/formats/pdb"
	"github.com/vk/molload/formats/rst7"
	"github.com/vk/molload/formats/xyz"
	"github.com/vk/molload/registry"
)

// coreFormats is the definitive list of format modules compiled into the
// default loader.
func coreFormats() []registry.Module {
	return []registry.Module{
		&pdb.Module{},
		&mol2.Module{},
		&xyz.Module{},
		&rst7.Module{},
		&mdcrd.Module{},
	}
}
