package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shahadathhs/blogman/internal/domain"
)

// Response is the envelope every endpoint returns.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func respond(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Response{Success: true, Message: message, Data: data})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, Response{Success: false, Message: message, Data: nil})
}

// userResponse is the public projection of a user. Password and every
// credential column stay out of the wire format.
type userResponse struct {
	ID            string           `json:"id"`
	Email         string           `json:"email"`
	Role          domain.Role      `json:"role"`
	EmailVerified bool             `json:"emailVerified"`
	GoogleID      *string          `json:"googleId,omitempty"`
	IsActive      bool             `json:"isActive"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
	Profile       *profileResponse `json:"profile,omitempty"`
}

type profileResponse struct {
	ID       string  `json:"id"`
	Name     *string `json:"name"`
	Bio      *string `json:"bio"`
	Avatar   *string `json:"avatar"`
	Website  *string `json:"website"`
	Location *string `json:"location"`
}

func newUserResponse(u *domain.User) userResponse {
	resp := userResponse{
		ID:            u.ID,
		Email:         u.Email,
		Role:          u.Role,
		EmailVerified: u.EmailVerified,
		GoogleID:      u.GoogleID,
		IsActive:      u.IsActive,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
	if u.Profile != nil {
		resp.Profile = &profileResponse{
			ID:       u.Profile.ID,
			Name:     u.Profile.Name,
			Bio:      u.Profile.Bio,
			Avatar:   u.Profile.Avatar,
			Website:  u.Profile.Website,
			Location: u.Profile.Location,
		}
	}
	return resp
}

func newUserListResponse(users []*domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, newUserResponse(u))
	}
	return out
}

type authResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

type blogResponse struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Content   string        `json:"content"`
	Slug      string        `json:"slug"`
	Published bool          `json:"published"`
	AuthorID  string        `json:"authorId"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
	Tags      []tagResponse `json:"tags"`
}

type tagResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newBlogResponse(b *domain.Blog) blogResponse {
	tags := make([]tagResponse, 0, len(b.Tags))
	for _, t := range b.Tags {
		tags = append(tags, newTagResponse(&t))
	}
	return blogResponse{
		ID:        b.ID,
		Title:     b.Title,
		Content:   b.Content,
		Slug:      b.Slug,
		Published: b.Published,
		AuthorID:  b.AuthorID,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
		Tags:      tags,
	}
}

func newBlogListResponse(blogs []*domain.Blog) []blogResponse {
	out := make([]blogResponse, 0, len(blogs))
	for _, b := range blogs {
		out = append(out, newBlogResponse(b))
	}
	return out
}

func newTagResponse(t *domain.Tag) tagResponse {
	return tagResponse{
		ID:        t.ID,
		Name:      t.Name,
		Slug:      t.Slug,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func newTagListResponse(tags []*domain.Tag) []tagResponse {
	out := make([]tagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, newTagResponse(t))
	}
	return out
}
