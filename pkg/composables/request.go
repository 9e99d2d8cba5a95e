package composables

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/campuskit/campuskit/pkg/constants"
)

var ErrNoUser = errors.New("no user found in context")

// Actor identifies the authenticated user performing the current request.
type Actor struct {
	ID           string
	Role         string
	DepartmentID string
}

func WithUser(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, constants.UserKey, actor)
}

func UseUser(ctx context.Context) (Actor, error) {
	actor, ok := ctx.Value(constants.UserKey).(Actor)
	if !ok {
		return Actor{}, ErrNoUser
	}
	return actor, nil
}

func WithLogger(ctx context.Context, logger *logrus.Entry) context.Context {
	return context.WithValue(ctx, constants.LoggerKey, logger)
}

// UseLogger returns the request-scoped logger, or a standard logger when the
// context carries none (background jobs, tests).
func UseLogger(ctx context.Context) *logrus.Entry {
	logger, ok := ctx.Value(constants.LoggerKey).(*logrus.Entry)
	if !ok {
		return logrus.NewEntry(logrus.StandardLogger())
	}
	return logger
}
