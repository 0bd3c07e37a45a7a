package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"estimator/internal/pkg/response"
	"estimator/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes mounts the endpoints reachable without a token.
func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	a := r.Group("/auth")
	{
		a.POST("/register", h.Register)
		a.POST("/login", h.Login)
	}
}

// RegisterProtectedRoutes mounts the authenticated account endpoints.
func (h *Handler) RegisterProtectedRoutes(r *gin.RouterGroup) {
	a := r.Group("/auth")
	{
		a.GET("/me", h.Me)
		a.PUT("/profile", h.UpdateProfile)
		a.PUT("/password", h.ChangePassword)
	}
	r.GET("/users", h.ListUsers)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED",
			"Username, email, and password are required", fields)
		return
	}

	result, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrLoginTaken):
			response.Error(c, http.StatusConflict, "LOGIN_TAKEN", err.Error())
		case errors.Is(err, ErrPasswordTooShort):
			response.Error(c, http.StatusBadRequest, "PASSWORD_TOO_SHORT", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"user":  result.User,
		"token": result.AccessToken,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", "Username and password are required")
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":  result.User,
		"token": result.AccessToken,
	})
}

func (h *Handler) Me(c *gin.Context) {
	user, err := h.service.CurrentUser(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Valid email is required", fields)
		return
	}

	if err := h.service.UpdateProfile(c.Request.Context(), c.GetInt64("user_id"), req); err != nil {
		if errors.Is(err, ErrEmailInUse) {
			response.Error(c, http.StatusConflict, "EMAIL_IN_USE", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Profile updated"})
}

func (h *Handler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_FAILED",
			"Current password and new password are required")
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), c.GetInt64("user_id"), req); err != nil {
		switch {
		case errors.Is(err, ErrWrongPassword):
			response.Error(c, http.StatusBadRequest, "WRONG_PASSWORD", err.Error())
		case errors.Is(err, ErrPasswordTooShort):
			response.Error(c, http.StatusBadRequest, "PASSWORD_TOO_SHORT", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Password changed"})
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"users": users})
}
