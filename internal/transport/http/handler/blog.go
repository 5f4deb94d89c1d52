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

type blogUsecaser interface {
	CreateBlog(ctx context.Context, authorID string, input usecase.CreateBlogInput) (*domain.Blog, error)
	ListBlogs(ctx context.Context, input usecase.ListBlogsInput) ([]*domain.Blog, error)
	GetBlog(ctx context.Context, idOrSlug string) (*domain.Blog, error)
	UpdateBlog(ctx context.Context, id, actorID string, actorRole domain.Role, input usecase.UpdateBlogInput) (*domain.Blog, error)
	TogglePublish(ctx context.Context, id, actorID string, actorRole domain.Role) (*domain.Blog, error)
	DeleteBlog(ctx context.Context, id, actorID string, actorRole domain.Role) error
}

type BlogHandler struct {
	blogUsecase blogUsecaser
	logger      *slog.Logger
}

func NewBlogHandler(blogUsecase blogUsecaser, logger *slog.Logger) *BlogHandler {
	return &BlogHandler{blogUsecase: blogUsecase, logger: logger.With("component", "blog_handler")}
}

type createBlogRequest struct {
	Title     string   `json:"title"   binding:"required"`
	Content   string   `json:"content" binding:"required"`
	Slug      string   `json:"slug"    binding:"required"`
	Published bool     `json:"published"`
	TagIDs    []string `json:"tagIds"  binding:"omitempty,dive,uuid"`
}

// POST /blogs
func (h *BlogHandler) Create(c *gin.Context) {
	var req createBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	blog, err := h.blogUsecase.CreateBlog(c.Request.Context(), c.GetString("userID"), usecase.CreateBlogInput{
		Title:     req.Title,
		Content:   req.Content,
		Slug:      req.Slug,
		Published: req.Published,
		TagIDs:    req.TagIDs,
	})
	if err != nil {
		respondDomainError(c, h.logger, "create blog", err)
		return
	}

	respond(c, http.StatusCreated, "Blog created successfully", newBlogResponse(blog))
}

// GET /blogs
func (h *BlogHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	input := usecase.ListBlogsInput{
		Page:     page,
		Limit:    limit,
		TagSlug:  c.Query("tag"),
		AuthorID: c.Query("author"),
	}
	if raw, ok := c.GetQuery("published"); ok {
		published, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "published must be a boolean")
			return
		}
		input.Published = &published
	}

	blogs, err := h.blogUsecase.ListBlogs(c.Request.Context(), input)
	if err != nil {
		respondDomainError(c, h.logger, "list blogs", err)
		return
	}

	respond(c, http.StatusOK, "Blogs retrieved successfully", newBlogListResponse(blogs))
}

// GET /blogs/:id — accepts an id or a slug.
func (h *BlogHandler) Get(c *gin.Context) {
	blog, err := h.blogUsecase.GetBlog(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondDomainError(c, h.logger, "get blog", err)
		return
	}

	respond(c, http.StatusOK, "Blog retrieved successfully", newBlogResponse(blog))
}

type updateBlogRequest struct {
	Title     *string  `json:"title"`
	Content   *string  `json:"content"`
	Slug      *string  `json:"slug"`
	Published *bool    `json:"published"`
	TagIDs    []string `json:"tagIds" binding:"omitempty,dive,uuid"`
}

// PATCH /blogs/:id (author or admin)
func (h *BlogHandler) Update(c *gin.Context) {
	var req updateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	blog, err := h.blogUsecase.UpdateBlog(
		c.Request.Context(),
		c.Param("id"),
		c.GetString("userID"),
		domain.Role(c.GetString("userRole")),
		usecase.UpdateBlogInput{
			Title:     req.Title,
			Content:   req.Content,
			Slug:      req.Slug,
			Published: req.Published,
			TagIDs:    req.TagIDs,
		},
	)
	if err != nil {
		respondDomainError(c, h.logger, "update blog", err)
		return
	}

	respond(c, http.StatusOK, "Blog updated successfully", newBlogResponse(blog))
}

// PATCH /blogs/:id/publish (author or admin) — flips the published flag.
func (h *BlogHandler) TogglePublish(c *gin.Context) {
	blog, err := h.blogUsecase.TogglePublish(
		c.Request.Context(),
		c.Param("id"),
		c.GetString("userID"),
		domain.Role(c.GetString("userRole")),
	)
	if err != nil {
		respondDomainError(c, h.logger, "toggle publish", err)
		return
	}

	message := "Blog unpublished successfully"
	if blog.Published {
		message = "Blog published successfully"
	}
	respond(c, http.StatusOK, message, newBlogResponse(blog))
}

// DELETE /blogs/:id (author or admin)
func (h *BlogHandler) Delete(c *gin.Context) {
	err := h.blogUsecase.DeleteBlog(
		c.Request.Context(),
		c.Param("id"),
		c.GetString("userID"),
		domain.Role(c.GetString("userRole")),
	)
	if err != nil {
		respondDomainError(c, h.logger, "delete blog", err)
		return
	}

	respond(c, http.StatusOK, "Blog deleted successfully", nil)
}
