package application

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/campuskit/campuskit/pkg/composables"
	"github.com/campuskit/campuskit/pkg/ws"
)

const (
	// ChannelRequests carries request lifecycle notifications for every
	// connected client, mirroring the shared "request" channel contract.
	ChannelRequests string = "request"

	EventRequestUpdate string = "request_update"
	EventNotifications string = "notifications"
)

type HuberOptions struct {
	Logger      *logrus.Logger
	CheckOrigin func(r *http.Request) bool
}

// Huber owns the websocket fan-out surface. Notification delivery through it
// is best-effort: publishing never returns an error to lifecycle callers.
type Huber interface {
	http.Handler
	Broadcast(channel, event string, payload any)
}

// WireEvent is the frame sent to clients.
type WireEvent struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

func NewHub(opts *HuberOptions) Huber {
	appHub := &huber{logger: opts.Logger}
	appHub.hub = ws.NewHub(&ws.HubOptions{
		Logger:       opts.Logger,
		CheckOrigin:  opts.CheckOrigin,
		OnConnect:    appHub.onConnect,
		OnDisconnect: func(conn *ws.Connection) {},
	})
	return appHub
}

type huber struct {
	hub    *ws.Hub
	logger *logrus.Logger
}

func (h *huber) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.hub.ServeHTTP(w, r)
}

func (h *huber) onConnect(r *http.Request, hub *ws.Hub, conn *ws.Connection) error {
	hub.JoinChannel(ChannelRequests, conn)
	if actor, err := composables.UseUser(r.Context()); err == nil {
		hub.JoinChannel(fmt.Sprintf("user/%s", actor.ID), conn)
	}
	return nil
}

func (h *huber) Broadcast(channel, event string, payload any) {
	frame, err := json.Marshal(WireEvent{Event: event, Payload: payload})
	if err != nil {
		h.logger.WithError(err).Error("websocket: failed to marshal event")
		return
	}
	h.hub.BroadcastToChannel(channel, frame)
}
