package app

import (
	"github.com/specialistvlad/yangkit/internal/registry"
	"github.com/specialistvlad/yangkit/internal/yang"
	"github.com/specialistvlad/yangkit/modules/restconf"
	"github.com/specialistvlad/yangkit/modules/structure"
)

// coreModules is the definitive list of statement modules compiled into the
// yangc binary.
var coreModules = []registry.Module{
	yang.Bundle{},
	&restconf.Module{},
	&structure.Module{},
}
