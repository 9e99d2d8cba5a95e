package core

import (
	"embed"

	"github.com/campuskit/campuskit/modules/core/handlers"
	"github.com/campuskit/campuskit/modules/core/infrastructure/persistence"
	"github.com/campuskit/campuskit/modules/core/presentation/controllers"
	"github.com/campuskit/campuskit/modules/core/services"
	"github.com/campuskit/campuskit/pkg/application"
)

//go:embed infrastructure/persistence/schema/*.sql
var migrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Name() string {
	return "core"
}

func (m *Module) Register(app application.Application) error {
	app.Migrations().RegisterSchema(&migrationFiles)

	userService := services.NewUserService(persistence.NewUserRepository())

	app.RegisterServices(
		userService,
		services.NewRoleService(persistence.NewRoleRepository()),
		services.NewDepartmentService(persistence.NewDepartmentRepository()),
	)

	app.RegisterControllers(
		controllers.NewHealthController(app),
		controllers.NewCoreAPIController(app),
		controllers.NewWebSocketController(app),
	)

	app.RegisterMiddleware(handlers.ProvideIdentity(userService))
	return nil
}
