package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shahadathhs/blogman/internal/domain"
)

const (
	errInternalServer     = "Internal server error"
	errUserNotFound       = "User not found"
	errEmailTaken         = "Email is already registered"
	errInvalidCredentials = "Invalid credentials"
	errPasswordRequired   = "Account has no password, try Google login"
	errSamePassword       = "New password must be different from the current password"
	errTokenInvalid       = "Invalid or expired token"
	errCodeInvalid        = "Invalid or expired login code"
	errBlogNotFound       = "Blog not found"
	errTagNotFound        = "Tag not found"
	errSlugTaken          = "Slug is already in use"
	errForbidden          = "You are not allowed to perform this action"
)

// respondDomainError translates a domain error into the transport status and
// envelope exactly once, at this boundary. Unknown errors are logged and
// surfaced as a generic 500.
func respondDomainError(c *gin.Context, logger *slog.Logger, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		respondError(c, http.StatusNotFound, errUserNotFound)
	case errors.Is(err, domain.ErrEmailTaken):
		respondError(c, http.StatusConflict, errEmailTaken)
	case errors.Is(err, domain.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, errInvalidCredentials)
	case errors.Is(err, domain.ErrPasswordRequired):
		respondError(c, http.StatusBadRequest, errPasswordRequired)
	case errors.Is(err, domain.ErrSamePassword):
		respondError(c, http.StatusBadRequest, errSamePassword)
	case errors.Is(err, domain.ErrTokenInvalid):
		respondError(c, http.StatusBadRequest, errTokenInvalid)
	case errors.Is(err, domain.ErrCodeInvalid), errors.Is(err, domain.ErrCodeExpired):
		respondError(c, http.StatusUnauthorized, errCodeInvalid)
	case errors.Is(err, domain.ErrBlogNotFound):
		respondError(c, http.StatusNotFound, errBlogNotFound)
	case errors.Is(err, domain.ErrTagNotFound):
		respondError(c, http.StatusNotFound, errTagNotFound)
	case errors.Is(err, domain.ErrSlugTaken):
		respondError(c, http.StatusConflict, errSlugTaken)
	case errors.Is(err, domain.ErrForbidden):
		respondError(c, http.StatusForbidden, errForbidden)
	default:
		logger.ErrorContext(c.Request.Context(), op, "error", err)
		respondError(c, http.StatusInternalServerError, errInternalServer)
	}
}
