package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shahadathhs/blogman/internal/domain"
	"github.com/shahadathhs/blogman/internal/usecase"
)

type tagUsecaser interface {
	CreateTag(ctx context.Context, name, slug string) (*domain.Tag, error)
	ListTags(ctx context.Context, page, limit int) ([]*domain.Tag, error)
	GetTag(ctx context.Context, id string) (*domain.Tag, error)
	SearchTags(ctx context.Context, term string) ([]*domain.Tag, error)
	UpdateTag(ctx context.Context, id string, input usecase.UpdateTagInput) (*domain.Tag, error)
	DeleteTag(ctx context.Context, id string) error
}

type TagHandler struct {
	tagUsecase tagUsecaser
	logger     *slog.Logger
}

func NewTagHandler(tagUsecase tagUsecaser, logger *slog.Logger) *TagHandler {
	return &TagHandler{tagUsecase: tagUsecase, logger: logger.With("component", "tag_handler")}
}

type createTagRequest struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug" binding:"required"`
}

// POST /tags (admin)
func (h *TagHandler) Create(c *gin.Context) {
	var req createTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	tag, err := h.tagUsecase.CreateTag(c.Request.Context(), req.Name, req.Slug)
	if err != nil {
		respondDomainError(c, h.logger, "create tag", err)
		return
	}

	respond(c, http.StatusCreated, "Tag created successfully", newTagResponse(tag))
}

// GET /tags
func (h *TagHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	tags, err := h.tagUsecase.ListTags(c.Request.Context(), page, limit)
	if err != nil {
		respondDomainError(c, h.logger, "list tags", err)
		return
	}

	respond(c, http.StatusOK, "Tags retrieved successfully", newTagListResponse(tags))
}

// GET /tags/search?q=
func (h *TagHandler) Search(c *gin.Context) {
	term := c.Query("q")
	if term == "" {
		respondError(c, http.StatusBadRequest, "q is required")
		return
	}

	tags, err := h.tagUsecase.SearchTags(c.Request.Context(), term)
	if err != nil {
		respondDomainError(c, h.logger, "search tags", err)
		return
	}

	respond(c, http.StatusOK, "Tags retrieved successfully", newTagListResponse(tags))
}

// GET /tags/:id
func (h *TagHandler) GetByID(c *gin.Context) {
	tag, err := h.tagUsecase.GetTag(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondDomainError(c, h.logger, "get tag", err)
		return
	}

	respond(c, http.StatusOK, "Tag retrieved successfully", newTagResponse(tag))
}

type updateTagRequest struct {
	Name *string `json:"name"`
	Slug *string `json:"slug"`
}

// PATCH /tags/:id (admin)
func (h *TagHandler) Update(c *gin.Context) {
	var req updateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	tag, err := h.tagUsecase.UpdateTag(c.Request.Context(), c.Param("id"), usecase.UpdateTagInput{
		Name: req.Name,
		Slug: req.Slug,
	})
	if err != nil {
		respondDomainError(c, h.logger, "update tag", err)
		return
	}

	respond(c, http.StatusOK, "Tag updated successfully", newTagResponse(tag))
}

// DELETE /tags/:id (admin)
func (h *TagHandler) Delete(c *gin.Context) {
	if err := h.tagUsecase.DeleteTag(c.Request.Context(), c.Param("id")); err != nil {
		respondDomainError(c, h.logger, "delete tag", err)
		return
	}

	respond(c, http.StatusOK, "Tag deleted successfully", nil)
}
