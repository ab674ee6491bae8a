package app

import (
	"context"
	"fmt"

	"github.com/ndrewpacheco/warbler/internal/model"
	"github.com/ndrewpacheco/warbler/internal/repository"
)

type ActivityService struct {
	activityRepo *repository.ActivityRepository
	followRepo   *repository.FollowRepository
}

func NewActivityService(activityRepo *repository.ActivityRepository, followRepo *repository.FollowRepository) *ActivityService {
	return &ActivityService{
		activityRepo: activityRepo,
		followRepo:   followRepo,
	}
}

// Record stores an activity. A post without a recipient fans out to every
// follower of the author.
func (s *ActivityService) Record(ctx context.Context, activity model.Activity) error {
	if activity.ActorID == 0 || activity.Kind == "" {
		return fmt.Errorf("%w: activity needs an actor and a kind", ErrInvalidInput)
	}

	if activity.RecipientID != 0 {
		activity.ID = 0
		return s.activityRepo.Create(ctx, &activity)
	}

	if activity.Kind != model.ActivityPosted {
		return fmt.Errorf("%w: %s activity needs a recipient", ErrInvalidInput, activity.Kind)
	}
	followers, err := s.followRepo.Followers(ctx, activity.ActorID)
	if err != nil {
		return err
	}
	for _, follower := range followers {
		row := activity
		row.ID = 0
		row.RecipientID = follower.ID
		if err := s.activityRepo.Create(ctx, &row); err != nil {
			return err
		}
	}
	return nil
}

// Publish records the activity synchronously. It stands in for the queue
// when no broker is configured.
func (s *ActivityService) Publish(ctx context.Context, activity model.Activity) error {
	return s.Record(ctx, activity)
}

func (s *ActivityService) ListForUser(ctx context.Context, userID uint, limit int) ([]model.Activity, error) {
	return s.activityRepo.ListByRecipient(ctx, userID, limit)
}
