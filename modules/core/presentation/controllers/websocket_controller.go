package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/campuskit/campuskit/pkg/application"
)

// WebSocketController exposes the shared hub. Clients connected here receive
// request lifecycle notifications on the "request" channel.
type WebSocketController struct {
	app      application.Application
	basePath string
}

func NewWebSocketController(app application.Application) application.Controller {
	return &WebSocketController{
		app:      app,
		basePath: "/ws",
	}
}

func (c *WebSocketController) Key() string {
	return c.basePath
}

func (c *WebSocketController) Register(r *mux.Router) {
	r.Handle(c.basePath, c.app.Websocket()).Methods(http.MethodGet)
}
