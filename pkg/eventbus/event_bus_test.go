package eventbus

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

type statusChanged struct {
	requestID string
}

type assigned struct {
	personnelID string
}

func newTestLogger(buf *bytes.Buffer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(buf)
	log.SetLevel(logrus.WarnLevel)
	return log
}

func TestPublish_DeliversToMatchingSubscriber(t *testing.T) {
	var buf bytes.Buffer
	bus := NewEventPublisher(newTestLogger(&buf))

	var got string
	bus.Subscribe(func(e *statusChanged) {
		got = e.requestID
	})

	bus.Publish(&statusChanged{requestID: "REQ-1"})
	require.Equal(t, "REQ-1", got)
	require.Empty(t, buf.String())
}

func TestPublish_NoMatchingSubscriberLogsWarning(t *testing.T) {
	var buf bytes.Buffer
	bus := NewEventPublisher(newTestLogger(&buf))

	bus.Subscribe(func(e *statusChanged) {
		t.Error("should not be called")
	})
	bus.Publish(&assigned{personnelID: "user-42"})

	require.True(t, strings.Contains(buf.String(), "no matching subscribers"))
}

func TestPublish_RecoversFromHandlerPanic(t *testing.T) {
	var buf bytes.Buffer
	bus := NewEventPublisher(newTestLogger(&buf))

	bus.Subscribe(func(e *statusChanged) {
		panic("boom")
	})

	require.NotPanics(t, func() {
		bus.Publish(&statusChanged{requestID: "REQ-1"})
	})
	require.True(t, strings.Contains(buf.String(), "panicked"))
}

func TestPublishE_CollectsHandlerErrors(t *testing.T) {
	bus := NewEventPublisher(newTestLogger(&bytes.Buffer{}))

	wantErr := errors.New("dispatch failed")
	bus.Subscribe(func(e *statusChanged) error {
		return wantErr
	})

	err := bus.PublishE(&statusChanged{requestID: "REQ-1"})
	require.ErrorIs(t, err, wantErr)
}

func TestPublishE_NoSubscribers(t *testing.T) {
	bus := NewEventPublisher(newTestLogger(&bytes.Buffer{}))
	err := bus.PublishE(&statusChanged{requestID: "REQ-1"})
	require.ErrorIs(t, err, ErrNoSubscribers)
}

func TestUnsubscribe(t *testing.T) {
	bus := NewEventPublisher(newTestLogger(&bytes.Buffer{}))

	handler := func(e *statusChanged) {}
	bus.Subscribe(handler)
	require.Equal(t, 1, bus.SubscribersCount())

	bus.Unsubscribe(handler)
	require.Equal(t, 0, bus.SubscribersCount())
}
