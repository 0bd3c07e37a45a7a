package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid username/email or password")
	ErrLoginTaken         = errors.New("username or email already exists")
	ErrEmailInUse         = errors.New("email is already in use")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters long")
)
