package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/campuskit/campuskit/modules/request/domain/aggregates/request"
	"github.com/campuskit/campuskit/modules/request/presentation/mappers"
	"github.com/campuskit/campuskit/modules/request/services"
	"github.com/campuskit/campuskit/pkg/application"
	"github.com/campuskit/campuskit/pkg/authz"
	"github.com/campuskit/campuskit/pkg/composables"
	"github.com/campuskit/campuskit/pkg/httpapi"
)

type RequestsController struct {
	app      application.Application
	requests *services.RequestService
	basePath string
}

func NewRequestsController(app application.Application) application.Controller {
	return &RequestsController{
		app:      app,
		requests: app.Service(services.RequestService{}).(*services.RequestService),
		basePath: "/request/api",
	}
}

func (c *RequestsController) Key() string {
	return c.basePath
}

func (c *RequestsController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()

	router.HandleFunc("/requests", c.List).Methods(http.MethodGet)
	router.HandleFunc("/requests", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/requests/{id}", c.GetByID).Methods(http.MethodGet)
	router.HandleFunc("/requests/{id}/status", c.UpdateStatus).Methods(http.MethodPost)
	router.HandleFunc("/requests/{id}/assign", c.Assign).Methods(http.MethodPost)
	router.HandleFunc("/requests/{id}/cancel", c.Cancel).Methods(http.MethodPost)
	router.HandleFunc("/requests/{id}/audit", c.AuditTrail).Methods(http.MethodGet)
}

func (c *RequestsController) List(w http.ResponseWriter, r *http.Request) {
	params, err := parseFindParams(r)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "BAD_QUERY", err.Error())
		return
	}

	items, total, err := c.requests.GetPaginated(r.Context(), params)
	if err != nil {
		c.writeDomainError(w, r, err)
		return
	}
	_ = httpapi.WriteData(w, http.StatusOK, mappers.RequestsToViewModels(items, total))
}

func parseFindParams(r *http.Request) (*request.FindParams, error) {
	q := r.URL.Query()
	params := &request.FindParams{
		Status:       request.Status(strings.ToUpper(q.Get("status"))),
		Type:         request.Type(strings.ToUpper(q.Get("type"))),
		RequesterID:  q.Get("requester_id"),
		DepartmentID: q.Get("department_id"),
		AssigneeID:   q.Get("assignee_id"),
		SortBy:       request.SortField(q.Get("sort")),
		Ascending:    q.Get("order") == "asc",
	}
	if params.Status != "" && !params.Status.Valid() {
		return nil, errors.New("unknown status filter")
	}
	if params.Type != "" && !params.Type.Valid() {
		return nil, errors.New("unknown type filter")
	}

	if v := q.Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.New("limit must be an integer")
		}
		params.Limit = parsed
	}
	if v := q.Get("offset"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.New("offset must be an integer")
		}
		params.Offset = parsed
	}
	if v := q.Get("created_from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, errors.New("created_from must be RFC3339")
		}
		params.CreatedFrom = &t
	}
	if v := q.Get("created_to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, errors.New("created_to must be RFC3339")
		}
		params.CreatedTo = &t
	}
	return params, nil
}

func (c *RequestsController) GetByID(w http.ResponseWriter, r *http.Request) {
	entity, err := c.requests.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		c.writeDomainError(w, r, err)
		return
	}
	_ = httpapi.WriteData(w, http.StatusOK, mappers.RequestToViewModel(entity))
}

func (c *RequestsController) Create(w http.ResponseWriter, r *http.Request) {
	var dto request.CreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid json body")
		return
	}
	if fields, ok := dto.Ok(); !ok {
		_ = httpapi.WriteValidationError(w, fields)
		return
	}

	created, err := c.requests.Create(r.Context(), &dto)
	if err != nil {
		c.writeDomainError(w, r, err)
		return
	}
	_ = httpapi.WriteData(w, http.StatusCreated, mappers.RequestToViewModel(created))
}

func (c *RequestsController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var dto request.UpdateStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid json body")
		return
	}
	if fields, ok := dto.Ok(); !ok {
		_ = httpapi.WriteValidationError(w, fields)
		return
	}

	updated, err := c.requests.UpdateStatus(r.Context(), mux.Vars(r)["id"], &dto)
	if err != nil {
		c.writeDomainError(w, r, err)
		return
	}
	_ = httpapi.WriteData(w, http.StatusOK, mappers.RequestToViewModel(updated))
}

func (c *RequestsController) Assign(w http.ResponseWriter, r *http.Request) {
	var dto request.AssignDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid json body")
		return
	}
	if dto.Empty() {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "EMPTY_ASSIGNMENT", "no personnel fields given")
		return
	}

	updated, err := c.requests.AssignPersonnel(r.Context(), mux.Vars(r)["id"], &dto)
	if err != nil {
		c.writeDomainError(w, r, err)
		return
	}
	_ = httpapi.WriteData(w, http.StatusOK, mappers.RequestToViewModel(updated))
}

func (c *RequestsController) Cancel(w http.ResponseWriter, r *http.Request) {
	var dto request.CancelDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid json body")
		return
	}
	if fields, ok := dto.Ok(); !ok {
		_ = httpapi.WriteValidationError(w, fields)
		return
	}

	cancelled, err := c.requests.Cancel(r.Context(), mux.Vars(r)["id"], &dto)
	if err != nil {
		c.writeDomainError(w, r, err)
		return
	}
	_ = httpapi.WriteData(w, http.StatusOK, mappers.RequestToViewModel(cancelled))
}

func (c *RequestsController) AuditTrail(w http.ResponseWriter, r *http.Request) {
	entries, err := c.requests.AuditTrail(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		c.writeDomainError(w, r, err)
		return
	}
	_ = httpapi.WriteData(w, http.StatusOK, mappers.AuditEntriesToViewModels(entries))
}

// writeDomainError maps domain sentinels onto HTTP statuses. Anything
// unrecognized is logged server-side and surfaced as the generic message.
func (c *RequestsController) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, request.ErrNotFound):
		_ = httpapi.WriteError(w, http.StatusNotFound, request.ErrNotFound.Code, request.ErrNotFound.Message)
	case errors.Is(err, request.ErrInvalidTransition):
		_ = httpapi.WriteError(w, http.StatusConflict, request.ErrInvalidTransition.Code, request.ErrInvalidTransition.Message)
	case errors.Is(err, request.ErrIDConflict):
		_ = httpapi.WriteError(w, http.StatusConflict, request.ErrIDConflict.Code, request.ErrIDConflict.Message)
	case errors.Is(err, request.ErrDependency):
		_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, request.ErrDependency.Code, request.ErrDependency.Message)
	case errors.Is(err, request.ErrDetailMismatch):
		_ = httpapi.WriteError(w, http.StatusBadRequest, request.ErrDetailMismatch.Code, request.ErrDetailMismatch.Message)
	case errors.Is(err, authz.ErrForbidden):
		_ = httpapi.WriteError(w, http.StatusForbidden, authz.ErrForbidden.Code, authz.ErrForbidden.Message)
	case errors.Is(err, composables.ErrNoUser):
		_ = httpapi.WriteError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
	default:
		composables.UseLogger(r.Context()).WithError(err).Error("request operation failed")
		_ = httpapi.WriteInternalError(w)
	}
}
