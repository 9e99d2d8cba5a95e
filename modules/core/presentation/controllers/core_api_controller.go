package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/campuskit/campuskit/modules/core/domain/entities/user"
	"github.com/campuskit/campuskit/modules/core/services"
	"github.com/campuskit/campuskit/pkg/application"
	"github.com/campuskit/campuskit/pkg/composables"
	"github.com/campuskit/campuskit/pkg/httpapi"
	"github.com/campuskit/campuskit/pkg/middleware"
)

type CoreAPIController struct {
	app         application.Application
	roles       *services.RoleService
	users       *services.UserService
	departments *services.DepartmentService
	basePath    string
}

func NewCoreAPIController(app application.Application) application.Controller {
	return &CoreAPIController{
		app:         app,
		roles:       app.Service(services.RoleService{}).(*services.RoleService),
		users:       app.Service(services.UserService{}).(*services.UserService),
		departments: app.Service(services.DepartmentService{}).(*services.DepartmentService),
		basePath:    "/core/api",
	}
}

func (c *CoreAPIController) Key() string {
	return c.basePath
}

func (c *CoreAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/roles", c.ListRoles).Methods(http.MethodGet)
	router.HandleFunc("/departments", c.ListDepartments).Methods(http.MethodGet)

	writeRouter := r.PathPrefix(c.basePath).Subrouter()
	writeRouter.Use(middleware.WithTransaction())
	writeRouter.HandleFunc("/users", c.CreateUser).Methods(http.MethodPost)
}

func (c *CoreAPIController) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := c.roles.List(r.Context())
	if err != nil {
		composables.UseLogger(r.Context()).WithError(err).Error("list roles failed")
		_ = httpapi.WriteInternalError(w)
		return
	}

	out := make([]map[string]string, 0, len(roles))
	for _, role := range roles {
		out = append(out, map[string]string{
			"id":          role.ID(),
			"name":        role.Name(),
			"description": role.Description(),
		})
	}
	_ = httpapi.WriteData(w, http.StatusOK, out)
}

func (c *CoreAPIController) ListDepartments(w http.ResponseWriter, r *http.Request) {
	includeArchived := r.URL.Query().Get("include_archived") == "true"
	departments, err := c.departments.List(r.Context(), includeArchived)
	if err != nil {
		composables.UseLogger(r.Context()).WithError(err).Error("list departments failed")
		_ = httpapi.WriteInternalError(w)
		return
	}

	out := make([]map[string]any, 0, len(departments))
	for _, d := range departments {
		out = append(out, map[string]any{
			"id":                d.ID(),
			"name":              d.Name(),
			"type":              d.Type(),
			"accepts_jobs":      d.AcceptsJobs(),
			"accepts_transport": d.AcceptsTransport(),
			"archived":          d.Archived(),
		})
	}
	_ = httpapi.WriteData(w, http.StatusOK, out)
}

func (c *CoreAPIController) CreateUser(w http.ResponseWriter, r *http.Request) {
	var dto services.CreateUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid json body")
		return
	}
	if fields, ok := dto.Ok(); !ok {
		_ = httpapi.WriteValidationError(w, fields)
		return
	}

	created, err := c.users.Create(r.Context(), &dto)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			_ = httpapi.WriteError(w, http.StatusConflict, user.ErrEmailTaken.Code, user.ErrEmailTaken.Message)
			return
		}
		composables.UseLogger(r.Context()).WithError(err).Error("create user failed")
		_ = httpapi.WriteInternalError(w)
		return
	}

	_ = httpapi.WriteData(w, http.StatusCreated, map[string]any{
		"id":            created.ID(),
		"name":          created.Name(),
		"email":         created.Email(),
		"role":          created.Role(),
		"department_id": created.DepartmentID(),
		"created_at":    created.CreatedAt(),
	})
}
