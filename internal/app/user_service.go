package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ndrewpacheco/warbler/internal/model"
	"github.com/ndrewpacheco/warbler/internal/repository"
)

type UserService struct {
	userRepo       *repository.UserRepository
	authService    *AuthService
	socialService  *SocialService
	messageService *MessageService
	effects        Effects
}

type Profile struct {
	User     *model.User
	Messages []model.Message
	Stats    model.UserStats
}

type UpdateProfileInput struct {
	Username        string
	Email           string
	ImageURL        string
	HeaderImageURL  string
	Bio             string
	Location        string
	CurrentPassword string
}

func NewUserService(
	userRepo *repository.UserRepository,
	authService *AuthService,
	socialService *SocialService,
	messageService *MessageService,
	effects Effects,
) *UserService {
	return &UserService{
		userRepo:       userRepo,
		authService:    authService,
		socialService:  socialService,
		messageService: messageService,
		effects:        effects,
	}
}

func (s *UserService) List(ctx context.Context, query string) ([]model.User, error) {
	return s.userRepo.Search(ctx, query, 0)
}

func (s *UserService) Get(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Profile gathers what the profile page shows for id.
func (s *UserService) Profile(ctx context.Context, id uint) (*Profile, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	messages, err := s.messageService.ListByUser(ctx, id, 0)
	if err != nil {
		return nil, err
	}
	stats, err := s.socialService.Stats(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Profile{User: user, Messages: messages, Stats: stats}, nil
}

// Update edits the profile of userID after re-checking their password.
// Empty username, email and image fields keep their current value. Bio and
// location are stored as given, so submitting them empty clears them.
func (s *UserService) Update(ctx context.Context, userID uint, input UpdateProfileInput) (*model.User, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authService.Authenticate(ctx, user.Username, input.CurrentPassword); err != nil {
		return nil, err
	}

	if username := strings.TrimSpace(input.Username); username != "" && username != user.Username {
		if len(username) > maxUsernameLength {
			return nil, fmt.Errorf("%w: username is too long", ErrInvalidInput)
		}
		existing, err := s.userRepo.GetByUsername(ctx, username)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrUsernameExists
		}
		user.Username = username
	}

	if email := strings.TrimSpace(strings.ToLower(input.Email)); email != "" && email != user.Email {
		if len(email) > maxEmailLength || !strings.Contains(email, "@") {
			return nil, fmt.Errorf("%w: a valid email is required", ErrInvalidInput)
		}
		existing, err := s.userRepo.GetByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrEmailExists
		}
		user.Email = email
	}

	user.ImageURL = firstNonEmpty(input.ImageURL, user.ImageURL, model.DefaultImageURL)
	user.HeaderImageURL = firstNonEmpty(input.HeaderImageURL, user.HeaderImageURL, model.DefaultHeaderImageURL)
	user.Bio = strings.TrimSpace(input.Bio)
	user.Location = strings.TrimSpace(input.Location)

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrConstraintViolation) {
			return nil, fmt.Errorf("%w: %w", ErrUserExists, err)
		}
		return nil, err
	}
	return user, nil
}

// Delete removes the account and everything it owns. Users who followed it
// lose a following entry, so every affected counter is dropped.
func (s *UserService) Delete(ctx context.Context, userID uint) error {
	if _, err := s.Get(ctx, userID); err != nil {
		return err
	}

	followers, err := s.socialService.Followers(ctx, userID)
	if err != nil {
		return err
	}
	following, err := s.socialService.Following(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}

	affected := []uint{userID}
	for _, u := range append(followers, following...) {
		affected = append(affected, u.ID)
	}
	s.effects.invalidate(ctx, affected...)
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
