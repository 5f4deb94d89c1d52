package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shahadathhs/blogman/internal/domain"
	"github.com/shahadathhs/blogman/internal/metrics"
	"github.com/shahadathhs/blogman/internal/usecase"
)

// authUsecaser is the subset of AuthUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type authUsecaser interface {
	Register(ctx context.Context, input usecase.RegisterInput) (*domain.User, error)
	VerifyEmail(ctx context.Context, token string) error
	Login(ctx context.Context, email, password string) (*usecase.AuthResult, error)
	ForgotPassword(ctx context.Context, email string) error
	SetNewPassword(ctx context.Context, token, newPassword string) error
	ResetPassword(ctx context.Context, email, currentPassword, newPassword string) error
	GoogleLogin(ctx context.Context, rawIDToken string) (*usecase.AuthResult, bool, error)
	SendLoginCode(ctx context.Context, email string) error
	VerifyLoginCode(ctx context.Context, email, code string) (*usecase.AuthResult, error)
}

type AuthHandler struct {
	authUsecase authUsecaser
	logger      *slog.Logger
}

func NewAuthHandler(authUsecase authUsecaser, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		logger:      logger.With("component", "auth_handler"),
	}
}

func recordAuth(operation string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	metrics.AuthOperationsTotal.WithLabelValues(operation, outcome).Inc()
}

type registerRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name"     binding:"required"`
}

// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.authUsecase.Register(c.Request.Context(), usecase.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	recordAuth("register", err)
	if err != nil {
		respondDomainError(c, h.logger, "register", err)
		return
	}

	respond(c, http.StatusCreated, "User registered", newUserResponse(user))
}

// GET /auth/verify?token=<raw>
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		respondError(c, http.StatusBadRequest, errTokenInvalid)
		return
	}

	err := h.authUsecase.VerifyEmail(c.Request.Context(), token)
	recordAuth("verify_email", err)
	if err != nil {
		respondDomainError(c, h.logger, "verify email", err)
		return
	}

	respond(c, http.StatusOK, "Email verified successfully", nil)
}

type loginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.authUsecase.Login(c.Request.Context(), req.Email, req.Password)
	recordAuth("login", err)
	if err != nil {
		respondDomainError(c, h.logger, "login", err)
		return
	}

	respond(c, http.StatusOK, "Login successful", authResponse{
		User:  newUserResponse(result.User),
		Token: result.Token,
	})
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// POST /auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	err := h.authUsecase.ForgotPassword(c.Request.Context(), req.Email)
	recordAuth("forgot_password", err)
	if err != nil {
		respondDomainError(c, h.logger, "forgot password", err)
		return
	}

	respond(c, http.StatusOK, "Reset link was sent to the email", nil)
}

type setNewPasswordRequest struct {
	Token       string `json:"token"       binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

// POST /auth/new-password
func (h *AuthHandler) SetNewPassword(c *gin.Context) {
	var req setNewPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	err := h.authUsecase.SetNewPassword(c.Request.Context(), req.Token, req.NewPassword)
	recordAuth("set_new_password", err)
	if err != nil {
		respondDomainError(c, h.logger, "set new password", err)
		return
	}

	respond(c, http.StatusOK, "Password updated successfully", nil)
}

type resetPasswordRequest struct {
	Email           string `json:"email"           binding:"required,email"`
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword"     binding:"required,min=6"`
}

// POST /auth/reset-password (authenticated)
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	err := h.authUsecase.ResetPassword(c.Request.Context(), req.Email, req.CurrentPassword, req.NewPassword)
	recordAuth("reset_password", err)
	if err != nil {
		respondDomainError(c, h.logger, "reset password", err)
		return
	}

	respond(c, http.StatusOK, "Password updated successfully", nil)
}

type googleLoginRequest struct {
	Token string `json:"token" binding:"required"`
}

// POST /auth/google
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	var req googleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	result, created, err := h.authUsecase.GoogleLogin(c.Request.Context(), req.Token)
	recordAuth("google_login", err)
	if err != nil {
		// A bad Google ID token is an authentication failure, not a 400.
		if errors.Is(err, domain.ErrTokenInvalid) {
			respondError(c, http.StatusUnauthorized, errTokenInvalid)
			return
		}
		respondDomainError(c, h.logger, "google login", err)
		return
	}

	message := "Login successful"
	if created {
		message = "User registered via Google"
	}
	respond(c, http.StatusCreated, message, authResponse{
		User:  newUserResponse(result.User),
		Token: result.Token,
	})
}

type loginCodeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// POST /auth/email-login/request
func (h *AuthHandler) SendLoginCode(c *gin.Context) {
	var req loginCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	err := h.authUsecase.SendLoginCode(c.Request.Context(), req.Email)
	recordAuth("send_login_code", err)
	if err != nil {
		respondDomainError(c, h.logger, "send login code", err)
		return
	}

	respond(c, http.StatusOK, "Login code was sent to the email", nil)
}

type verifyLoginCodeRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code"  binding:"required,len=6,numeric"`
}

// POST /auth/email-login/verify
func (h *AuthHandler) VerifyLoginCode(c *gin.Context) {
	var req verifyLoginCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.authUsecase.VerifyLoginCode(c.Request.Context(), req.Email, req.Code)
	recordAuth("verify_login_code", err)
	if err != nil {
		respondDomainError(c, h.logger, "verify login code", err)
		return
	}

	respond(c, http.StatusOK, "Login successful", authResponse{
		User:  newUserResponse(result.User),
		Token: result.Token,
	})
}
