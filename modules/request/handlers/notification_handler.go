package handlers

import (
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/campuskit/campuskit/modules/request/domain/aggregates/request"
	"github.com/campuskit/campuskit/pkg/application"
	ebdispatch "github.com/campuskit/campuskit/pkg/outbox/dispatchers/eventbus"
)

// NotificationHandler turns relayed outbox rows into websocket broadcasts on
// the shared request channel. It runs strictly after commit; a failed
// broadcast is logged and dropped, never retried into the request flow.
type NotificationHandler struct {
	hub application.Huber
	log *logrus.Logger
}

func RegisterNotificationHandler(app application.Application) *NotificationHandler {
	h := &NotificationHandler{
		hub: app.Websocket(),
		log: app.Logger(),
	}
	app.EventPublisher().Subscribe(h.onOutboxEvent)
	return h
}

func (h *NotificationHandler) onOutboxEvent(ev ebdispatch.OutboxEvent) error {
	if ev.Topic != request.TopicRequestUpdate {
		return nil
	}

	var n request.Notification
	if err := json.Unmarshal(ev.Payload, &n); err != nil {
		h.log.WithError(err).WithField("event_id", ev.EventID).Warn("malformed request notification payload")
		return nil
	}

	h.hub.Broadcast(application.ChannelRequests, application.EventRequestUpdate, n)
	return nil
}
