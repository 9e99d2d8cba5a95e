package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/campuskit/campuskit/modules/catalog/domain/entities/venue"
	"github.com/campuskit/campuskit/modules/catalog/services"
	"github.com/campuskit/campuskit/pkg/application"
	"github.com/campuskit/campuskit/pkg/composables"
	"github.com/campuskit/campuskit/pkg/httpapi"
)

type CatalogAPIController struct {
	app       application.Application
	venues    *services.VenueService
	vehicles  *services.VehicleService
	inventory *services.InventoryService
	basePath  string
}

func NewCatalogAPIController(app application.Application) application.Controller {
	return &CatalogAPIController{
		app:       app,
		venues:    app.Service(services.VenueService{}).(*services.VenueService),
		vehicles:  app.Service(services.VehicleService{}).(*services.VehicleService),
		inventory: app.Service(services.InventoryService{}).(*services.InventoryService),
		basePath:  "/catalog/api",
	}
}

func (c *CatalogAPIController) Key() string {
	return c.basePath
}

func (c *CatalogAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/venues", c.ListVenues).Methods(http.MethodGet)
	router.HandleFunc("/vehicles", c.ListVehicles).Methods(http.MethodGet)
	router.HandleFunc("/items", c.ListItems).Methods(http.MethodGet)
}

func (c *CatalogAPIController) ListVenues(w http.ResponseWriter, r *http.Request) {
	params := &venue.FindParams{
		DepartmentID: r.URL.Query().Get("department_id"),
		Status:       venue.Status(r.URL.Query().Get("status")),
	}

	venues, err := c.venues.List(r.Context(), params)
	if err != nil {
		composables.UseLogger(r.Context()).WithError(err).Error("list venues failed")
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", httpapi.GenericErrorMessage)
		return
	}

	out := make([]map[string]any, 0, len(venues))
	for _, v := range venues {
		out = append(out, map[string]any{
			"id":            v.ID(),
			"name":          v.Name(),
			"type":          v.Type(),
			"capacity":      v.Capacity(),
			"status":        string(v.Status()),
			"department_id": v.DepartmentID(),
		})
	}
	_ = httpapi.WriteData(w, http.StatusOK, out)
}

func (c *CatalogAPIController) ListVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := c.vehicles.List(r.Context())
	if err != nil {
		composables.UseLogger(r.Context()).WithError(err).Error("list vehicles failed")
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", httpapi.GenericErrorMessage)
		return
	}

	out := make([]map[string]any, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, map[string]any{
			"id":       v.ID(),
			"name":     v.Name(),
			"plate":    v.Plate(),
			"capacity": v.Capacity(),
			"status":   string(v.Status()),
		})
	}
	_ = httpapi.WriteData(w, http.StatusOK, out)
}

func (c *CatalogAPIController) ListItems(w http.ResponseWriter, r *http.Request) {
	returnableOnly := r.URL.Query().Get("returnable") == "true"
	items, err := c.inventory.List(r.Context(), returnableOnly)
	if err != nil {
		composables.UseLogger(r.Context()).WithError(err).Error("list inventory items failed")
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", httpapi.GenericErrorMessage)
		return
	}

	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		out = append(out, map[string]any{
			"id":         item.ID(),
			"name":       item.Name(),
			"category":   item.Category(),
			"status":     string(item.Status()),
			"quantity":   item.Quantity(),
			"returnable": item.Returnable(),
		})
	}
	_ = httpapi.WriteData(w, http.StatusOK, out)
}
