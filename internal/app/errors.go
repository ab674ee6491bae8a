package app

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrUsernameExists    = errors.New("username already taken")
	ErrEmailExists       = errors.New("email already taken")
	ErrUserExists        = errors.New("username or email already taken")
	ErrInvalidCredential = errors.New("invalid credentials")
	ErrUserNotFound      = errors.New("user not found")

	ErrMessageNotFound = errors.New("message not found")
	ErrMessageTooLong  = errors.New("message is longer than 140 characters")
	ErrNotMessageOwner = errors.New("message belongs to another user")

	ErrSelfFollow       = errors.New("users cannot follow themselves")
	ErrAlreadyFollowing = errors.New("already following user")
	ErrNotFollowing     = errors.New("not following user")
)
