package modules

import (
	"github.com/campuskit/campuskit/modules/catalog"
	"github.com/campuskit/campuskit/modules/core"
	"github.com/campuskit/campuskit/modules/request"
	"github.com/campuskit/campuskit/pkg/application"
)

// BuiltInModules in registration order. Core registers first so its schema
// and identity middleware are in place before the feature modules.
var BuiltInModules = []application.Module{
	core.NewModule(),
	catalog.NewModule(),
	request.NewModule(),
}

func Load(app application.Application, mods ...application.Module) error {
	for _, module := range mods {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
