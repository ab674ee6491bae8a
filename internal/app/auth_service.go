package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ndrewpacheco/warbler/internal/model"
	"github.com/ndrewpacheco/warbler/internal/pkg/jwtutil"
	"github.com/ndrewpacheco/warbler/internal/pkg/passhash"
	"github.com/ndrewpacheco/warbler/internal/repository"
)

const (
	maxUsernameLength = 64
	maxEmailLength    = 128
	maxPasswordLength = 72
)

type AuthService struct {
	userRepo      *repository.UserRepository
	hasher        passhash.Hasher
	jwtSecret     string
	jwtExpiration time.Duration

	// dummyDigest is verified for unknown usernames so both failure paths
	// pay for one hash comparison.
	dummyDigest string
}

type SignupInput struct {
	Username string
	Email    string
	Password string
	ImageURL string
}

type AuthResult struct {
	Token string
	User  *model.User
}

func NewAuthService(userRepo *repository.UserRepository, hasher passhash.Hasher, jwtSecret string, jwtExpiration time.Duration) *AuthService {
	dummy, _ := hasher.Hash("warbler-timing-equalizer")
	return &AuthService{
		userRepo:      userRepo,
		hasher:        hasher,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
		dummyDigest:   dummy,
	}
}

// NewUser validates input and returns an unsaved user with a hashed password.
// Missing username, email or password fail with ErrInvalidInput before any
// hashing happens.
func (s *AuthService) NewUser(input SignupInput) (*model.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(strings.ToLower(input.Email))

	switch {
	case username == "" || len(username) > maxUsernameLength:
		return nil, fmt.Errorf("%w: username is required", ErrInvalidInput)
	case email == "" || len(email) > maxEmailLength || !strings.Contains(email, "@"):
		return nil, fmt.Errorf("%w: a valid email is required", ErrInvalidInput)
	case input.Password == "":
		return nil, fmt.Errorf("%w: password is required", ErrInvalidInput)
	case len(input.Password) > maxPasswordLength:
		return nil, fmt.Errorf("%w: password must be at most %d bytes", ErrInvalidInput, maxPasswordLength)
	}

	digest, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	imageURL := strings.TrimSpace(input.ImageURL)
	if imageURL == "" {
		imageURL = model.DefaultImageURL
	}

	return &model.User{
		Username:       username,
		Email:          email,
		Password:       digest,
		ImageURL:       imageURL,
		HeaderImageURL: model.DefaultHeaderImageURL,
	}, nil
}

// Signup creates and persists a new user.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*model.User, error) {
	user, err := s.NewUser(input)
	if err != nil {
		return nil, err
	}

	existingByName, err := s.userRepo.GetByUsername(ctx, user.Username)
	if err != nil {
		return nil, err
	}
	if existingByName != nil {
		return nil, ErrUsernameExists
	}

	existingByEmail, err := s.userRepo.GetByEmail(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	if existingByEmail != nil {
		return nil, ErrEmailExists
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrConstraintViolation) {
			return nil, fmt.Errorf("%w: %w", ErrUserExists, err)
		}
		return nil, err
	}
	return user, nil
}

// Authenticate returns the user when username and password match. An unknown
// username and a wrong password both yield ErrInvalidCredential.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredential
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.hasher.Verify(s.dummyDigest, password)
		return nil, ErrInvalidCredential
	}

	if !s.hasher.Verify(user.Password, password) {
		return nil, ErrInvalidCredential
	}
	return user, nil
}

// Login authenticates and issues an API token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}
	token, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) IssueToken(user *model.User) (string, error) {
	return jwtutil.GenerateToken(s.jwtSecret, s.jwtExpiration, user.ID, user.Username)
}

func (s *AuthService) ParseToken(token string) (*jwtutil.Claims, error) {
	return jwtutil.ParseToken(s.jwtSecret, token)
}

func (s *AuthService) GetUserByID(ctx context.Context, id uint) (*model.User, error) {
	if id == 0 {
		return nil, ErrInvalidInput
	}
	return s.userRepo.GetByID(ctx, id)
}
