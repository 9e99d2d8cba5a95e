package catalog

import (
	"embed"

	"github.com/campuskit/campuskit/modules/catalog/infrastructure/persistence"
	"github.com/campuskit/campuskit/modules/catalog/presentation/controllers"
	"github.com/campuskit/campuskit/modules/catalog/services"
	"github.com/campuskit/campuskit/pkg/application"
)

//go:embed infrastructure/persistence/schema/*.sql
var migrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Name() string {
	return "catalog"
}

func (m *Module) Register(app application.Application) error {
	app.Migrations().RegisterSchema(&migrationFiles)

	app.RegisterServices(
		services.NewVenueService(persistence.NewVenueRepository()),
		services.NewVehicleService(persistence.NewVehicleRepository()),
		services.NewInventoryService(persistence.NewInventoryRepository()),
	)

	app.RegisterControllers(
		controllers.NewCatalogAPIController(app),
	)
	return nil
}
