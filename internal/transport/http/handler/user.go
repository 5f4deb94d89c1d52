package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shahadathhs/blogman/internal/domain"
	"github.com/shahadathhs/blogman/internal/repository"
)

type userUsecaser interface {
	ListUsers(ctx context.Context, page, limit int) ([]*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, patch repository.ProfilePatch) (*domain.Profile, error)
	DeactivateUser(ctx context.Context, id string) error
}

type UserHandler struct {
	userUsecase userUsecaser
	logger      *slog.Logger
}

func NewUserHandler(userUsecase userUsecaser, logger *slog.Logger) *UserHandler {
	return &UserHandler{userUsecase: userUsecase, logger: logger.With("component", "user_handler")}
}

// GET /users (admin)
func (h *UserHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	users, err := h.userUsecase.ListUsers(c.Request.Context(), page, limit)
	if err != nil {
		respondDomainError(c, h.logger, "list users", err)
		return
	}

	respond(c, http.StatusOK, "Users retrieved successfully", newUserListResponse(users))
}

// GET /users/:id
func (h *UserHandler) GetByID(c *gin.Context) {
	user, err := h.userUsecase.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondDomainError(c, h.logger, "get user", err)
		return
	}

	respond(c, http.StatusOK, "User retrieved successfully", newUserResponse(user))
}

// DELETE /users/:id (admin, soft delete)
func (h *UserHandler) Deactivate(c *gin.Context) {
	if err := h.userUsecase.DeactivateUser(c.Request.Context(), c.Param("id")); err != nil {
		respondDomainError(c, h.logger, "deactivate user", err)
		return
	}

	respond(c, http.StatusOK, "User removed successfully", nil)
}

// GET /users/me/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	user, err := h.userUsecase.GetProfile(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		respondDomainError(c, h.logger, "get profile", err)
		return
	}

	respond(c, http.StatusOK, "User profile retrieved successfully", newUserResponse(user))
}

type updateProfileRequest struct {
	Name     *string `json:"name"`
	Bio      *string `json:"bio"`
	Avatar   *string `json:"avatar"   binding:"omitempty,url"`
	Website  *string `json:"website"  binding:"omitempty,url"`
	Location *string `json:"location"`
}

// PATCH /users/me/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	profile, err := h.userUsecase.UpdateProfile(c.Request.Context(), c.GetString("userID"), repository.ProfilePatch{
		Name:     req.Name,
		Bio:      req.Bio,
		Avatar:   req.Avatar,
		Website:  req.Website,
		Location: req.Location,
	})
	if err != nil {
		respondDomainError(c, h.logger, "update profile", err)
		return
	}

	respond(c, http.StatusOK, "Profile updated successfully", profileResponse{
		ID:       profile.ID,
		Name:     profile.Name,
		Bio:      profile.Bio,
		Avatar:   profile.Avatar,
		Website:  profile.Website,
		Location: profile.Location,
	})
}
