package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordRequired   = errors.New("account has no password, use google login")
	ErrSamePassword       = errors.New("new password must differ from the current one")
	ErrTokenInvalid       = errors.New("token is invalid or expired")
	ErrCodeInvalid        = errors.New("login code is invalid")
	ErrCodeExpired        = errors.New("login code has expired")

	ErrBlogNotFound = errors.New("blog not found")
	ErrSlugTaken    = errors.New("slug is already in use")
	ErrTagNotFound  = errors.New("tag not found")
	ErrForbidden    = errors.New("operation not allowed for this user")
)
