package request

import (
	"embed"

	"github.com/campuskit/campuskit/modules/request/handlers"
	"github.com/campuskit/campuskit/modules/request/infrastructure/persistence"
	"github.com/campuskit/campuskit/modules/request/permissions"
	"github.com/campuskit/campuskit/modules/request/presentation/controllers"
	"github.com/campuskit/campuskit/modules/request/services"

	catalogservices "github.com/campuskit/campuskit/modules/catalog/services"
	coreservices "github.com/campuskit/campuskit/modules/core/services"
	"github.com/campuskit/campuskit/pkg/application"
	"github.com/campuskit/campuskit/pkg/authz"
	"github.com/campuskit/campuskit/pkg/configuration"
	"github.com/campuskit/campuskit/pkg/outbox"
)

//go:embed infrastructure/persistence/schema/*.sql
var migrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Name() string {
	return "request"
}

func (m *Module) Register(app application.Application) error {
	app.Migrations().RegisterSchema(&migrationFiles)

	conf := configuration.Use()

	guard, err := authz.NewService(permissions.Policies(), permissions.Groupings())
	if err != nil {
		return err
	}

	outboxTable, err := outbox.ParseIdentifier("public.request_outbox")
	if err != nil {
		return err
	}

	var titles services.TitleGenerator
	if conf.TitleGen.Enabled {
		titles = services.NewTitleGenerator(conf.TitleGen)
	}

	refs := &referenceChecker{
		departments: app.Service(coreservices.DepartmentService{}).(*coreservices.DepartmentService),
		venues:      app.Service(catalogservices.VenueService{}).(*catalogservices.VenueService),
		vehicles:    app.Service(catalogservices.VehicleService{}).(*catalogservices.VehicleService),
		inventory:   app.Service(catalogservices.InventoryService{}).(*catalogservices.InventoryService),
	}

	app.RegisterServices(
		services.NewRequestService(services.RequestServiceConfig{
			Repo:        persistence.NewRequestRepository(),
			Audits:      persistence.NewAuditLogRepository(),
			EventBus:    app.EventPublisher(),
			Outbox:      outbox.NewPublisher(),
			OutboxTable: outboxTable,
			Titles:      titles,
			Refs:        refs,
			Guard:       guard,
			Release:     services.KeepOnRelease,
		}),
	)

	app.RegisterControllers(
		controllers.NewRequestsController(app),
	)

	handlers.RegisterNotificationHandler(app)
	return nil
}
