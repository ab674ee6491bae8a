package app

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/ndrewpacheco/warbler/internal/model"
)

// ActivityPublisher hands activity events to whoever records them.
type ActivityPublisher interface {
	Publish(ctx context.Context, activity model.Activity) error
}

type StatsCache interface {
	GetStats(ctx context.Context, userID uint) (model.UserStats, bool, error)
	SetStats(ctx context.Context, userID uint, stats model.UserStats) error
	Invalidate(ctx context.Context, userIDs ...uint) error
}

// Effects runs the best-effort work that follows a committed write. Either
// collaborator may be nil. Failures are logged, never returned: the write
// has already happened.
type Effects struct {
	Stats     StatsCache
	Publisher ActivityPublisher
	Log       logrus.FieldLogger
}

func (e Effects) invalidate(ctx context.Context, userIDs ...uint) {
	if e.Stats == nil {
		return
	}
	if err := e.Stats.Invalidate(ctx, userIDs...); err != nil {
		e.logger().WithError(err).WithField("user_ids", userIDs).Warn("invalidate stats cache failed")
	}
}

func (e Effects) publish(ctx context.Context, activity model.Activity) {
	if e.Publisher == nil {
		return
	}
	if err := e.Publisher.Publish(ctx, activity); err != nil {
		e.logger().WithError(err).WithFields(logrus.Fields{
			"kind":     activity.Kind,
			"actor_id": activity.ActorID,
		}).Warn("publish activity failed")
	}
}

func (e Effects) logger() logrus.FieldLogger {
	if e.Log == nil {
		return logrus.StandardLogger()
	}
	return e.Log
}
