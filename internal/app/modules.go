package app

import (
	"github.com/vk/blotterkit/internal/blotter"
	"github.com/vk/blotterkit/modules/rejecting"
	"github.com/vk/blotterkit/modules/simulation"
)

// coreModules is the definitive list of all blotter modules that are
// compiled into the blotterkit binary.
var coreModules = []blotter.Module{
	&simulation.Module{},
	&rejecting.Module{},
}
