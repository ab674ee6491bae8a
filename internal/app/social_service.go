package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/ndrewpacheco/warbler/internal/model"
	"github.com/ndrewpacheco/warbler/internal/repository"
)

type SocialService struct {
	userRepo    *repository.UserRepository
	followRepo  *repository.FollowRepository
	messageRepo *repository.MessageRepository
	effects     Effects
}

func NewSocialService(
	userRepo *repository.UserRepository,
	followRepo *repository.FollowRepository,
	messageRepo *repository.MessageRepository,
	effects Effects,
) *SocialService {
	return &SocialService{
		userRepo:    userRepo,
		followRepo:  followRepo,
		messageRepo: messageRepo,
		effects:     effects,
	}
}

// IsFollowing reports whether actorID follows otherID.
func (s *SocialService) IsFollowing(ctx context.Context, actorID, otherID uint) (bool, error) {
	return s.followRepo.Exists(ctx, actorID, otherID)
}

// IsFollowedBy reports whether otherID follows actorID.
func (s *SocialService) IsFollowedBy(ctx context.Context, actorID, otherID uint) (bool, error) {
	return s.followRepo.Exists(ctx, otherID, actorID)
}

func (s *SocialService) Follow(ctx context.Context, actorID, otherID uint) error {
	if actorID == otherID {
		return ErrSelfFollow
	}
	for _, id := range []uint{actorID, otherID} {
		if _, err := s.mustGetUser(ctx, id); err != nil {
			return err
		}
	}

	if err := s.followRepo.Create(ctx, actorID, otherID); err != nil {
		if !errors.Is(err, repository.ErrConstraintViolation) {
			return err
		}
		// Only an existing edge is a duplicate; anything else is a user
		// removed between the lookup and the insert.
		exists, existsErr := s.followRepo.Exists(ctx, actorID, otherID)
		if existsErr != nil {
			return existsErr
		}
		if exists {
			return fmt.Errorf("%w: %w", ErrAlreadyFollowing, err)
		}
		return fmt.Errorf("%w: %w", ErrUserNotFound, err)
	}

	s.effects.invalidate(ctx, actorID, otherID)
	s.effects.publish(ctx, model.Activity{ActorID: actorID, RecipientID: otherID, Kind: model.ActivityFollowed})
	return nil
}

func (s *SocialService) Unfollow(ctx context.Context, actorID, otherID uint) error {
	removed, err := s.followRepo.Delete(ctx, actorID, otherID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotFollowing
	}

	s.effects.invalidate(ctx, actorID, otherID)
	s.effects.publish(ctx, model.Activity{ActorID: actorID, RecipientID: otherID, Kind: model.ActivityUnfollowed})
	return nil
}

func (s *SocialService) Followers(ctx context.Context, userID uint) ([]model.User, error) {
	if _, err := s.mustGetUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.Followers(ctx, userID)
}

func (s *SocialService) Following(ctx context.Context, userID uint) ([]model.User, error) {
	if _, err := s.mustGetUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.Following(ctx, userID)
}

// FollowingIDs is the set of user ids userID follows.
func (s *SocialService) FollowingIDs(ctx context.Context, userID uint) (map[uint]bool, error) {
	return s.followRepo.FollowingIDs(ctx, userID)
}

// Stats returns the profile counters, from the cache when one is configured.
func (s *SocialService) Stats(ctx context.Context, userID uint) (model.UserStats, error) {
	if s.effects.Stats != nil {
		stats, ok, err := s.effects.Stats.GetStats(ctx, userID)
		if err != nil {
			s.effects.logger().WithError(err).Warn("read stats cache failed")
		} else if ok {
			return stats, nil
		}
	}

	var stats model.UserStats
	var err error
	if stats.Messages, err = s.messageRepo.CountByUserID(ctx, userID); err != nil {
		return model.UserStats{}, err
	}
	if stats.Following, err = s.followRepo.CountFollowing(ctx, userID); err != nil {
		return model.UserStats{}, err
	}
	if stats.Followers, err = s.followRepo.CountFollowers(ctx, userID); err != nil {
		return model.UserStats{}, err
	}

	if s.effects.Stats != nil {
		if err := s.effects.Stats.SetStats(ctx, userID, stats); err != nil {
			s.effects.logger().WithError(err).Warn("write stats cache failed")
		}
	}
	return stats, nil
}

func (s *SocialService) mustGetUser(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
