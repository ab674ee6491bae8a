package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ndrewpacheco/warbler/internal/model"
)

func TestNewUserRequiresFields(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name  string
		input SignupInput
	}{
		{name: "missing password", input: SignupInput{Username: "testuser2", Email: "test2@test.com"}},
		{name: "missing username", input: SignupInput{Email: "test2@test.com", Password: "pw"}},
		{name: "missing email", input: SignupInput{Username: "testuser2", Password: "pw"}},
		{name: "malformed email", input: SignupInput{Username: "testuser2", Email: "nope", Password: "pw"}},
		{name: "password too long", input: SignupInput{Username: "testuser2", Email: "test2@test.com", Password: strings.Repeat("a", 73)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.auth.NewUser(tt.input); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("NewUser() error = %v, want ErrInvalidInput", err)
			}
			if _, err := f.auth.Signup(context.Background(), tt.input); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("Signup() error = %v, want ErrInvalidInput", err)
			}
		})
	}

	if n := f.count(t, &model.User{}); n != 0 {
		t.Errorf("users = %d after invalid signups, want 0", n)
	}
}

func TestNewUserDoesNotPersist(t *testing.T) {
	f := newFixture(t)

	user, err := f.auth.NewUser(SignupInput{Username: "testuser2", Email: "Test2@Test.com ", Password: "HASHED_PASSWORD"})
	if err != nil {
		t.Fatalf("NewUser() error: %v", err)
	}
	if user.ID != 0 {
		t.Errorf("NewUser() returned a persisted user id %d", user.ID)
	}
	if user.Email != "test2@test.com" {
		t.Errorf("Email = %q, want normalized", user.Email)
	}
	if user.ImageURL != model.DefaultImageURL {
		t.Errorf("ImageURL = %q, want default", user.ImageURL)
	}
	if n := f.count(t, &model.User{}); n != 0 {
		t.Errorf("users = %d, want 0", n)
	}
}

func TestSignup(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	user, err := f.auth.Signup(ctx, SignupInput{
		Username: "testuser2",
		Email:    "test2@test.com",
		Password: "HASHED_PASSWORD",
		ImageURL: "http://example.com/me.png",
	})
	if err != nil {
		t.Fatalf("Signup() error: %v", err)
	}
	if user.Password == "HASHED_PASSWORD" {
		t.Fatal("password stored in plaintext")
	}

	got, err := f.auth.GetUserByID(ctx, user.ID)
	if err != nil || got == nil || got.Username != "testuser2" {
		t.Fatalf("GetUserByID() = %+v, %v", got, err)
	}
	if got.ImageURL != "http://example.com/me.png" {
		t.Errorf("ImageURL = %q", got.ImageURL)
	}
	if n := f.count(t, &model.User{}); n != 1 {
		t.Errorf("users = %d, want 1", n)
	}
}

func TestSignupDuplicates(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.signup(t, 1)

	_, err := f.auth.Signup(ctx, SignupInput{Username: "testuser1", Email: "new@test.com", Password: "pw"})
	if !errors.Is(err, ErrUsernameExists) {
		t.Errorf("duplicate username error = %v, want ErrUsernameExists", err)
	}
	_, err = f.auth.Signup(ctx, SignupInput{Username: "newuser", Email: "TEST1@test.com", Password: "pw"})
	if !errors.Is(err, ErrEmailExists) {
		t.Errorf("duplicate email error = %v, want ErrEmailExists", err)
	}
	if n := f.count(t, &model.User{}); n != 1 {
		t.Errorf("users = %d, want 1", n)
	}
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.signup(t, 1)

	got, err := f.auth.Authenticate(ctx, "testuser1", "HASHED_PASSWORD")
	if err != nil || got == nil || got.ID != u.ID {
		t.Fatalf("Authenticate(correct) = %+v, %v", got, err)
	}

	unknown, errUnknown := f.auth.Authenticate(ctx, "nobody", "HASHED_PASSWORD")
	wrong, errWrong := f.auth.Authenticate(ctx, "testuser1", "nope")
	if unknown != nil || wrong != nil {
		t.Fatal("Authenticate() returned a user for bad credentials")
	}
	if !errors.Is(errUnknown, ErrInvalidCredential) || !errors.Is(errWrong, ErrInvalidCredential) {
		t.Fatalf("errors = %v / %v, want ErrInvalidCredential for both", errUnknown, errWrong)
	}
	if errUnknown.Error() != errWrong.Error() {
		t.Errorf("unknown user and wrong password are distinguishable: %q vs %q", errUnknown, errWrong)
	}
}

func TestLoginIssuesToken(t *testing.T) {
	f := newFixture(t)
	u := f.signup(t, 1)

	result, err := f.auth.Login(context.Background(), "testuser1", "HASHED_PASSWORD")
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	claims, err := f.auth.ParseToken(result.Token)
	if err != nil {
		t.Fatalf("ParseToken() error: %v", err)
	}
	if claims.UserID != u.ID || claims.Username != "testuser1" {
		t.Errorf("claims = %+v", claims)
	}
}
