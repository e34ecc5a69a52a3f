// Package handler provides HTTP handlers for API endpoints.
package handler

import (
	"net/http"

	"user-management/internal/services"
	"user-management/internal/transport/httpdto"
	"user-management/pkg/logger"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles registration and login HTTP endpoints.
type AuthHandler struct {
	service *services.AuthService
	logger  *logger.Logger
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(service *services.AuthService, l *logger.Logger) *AuthHandler {
	return &AuthHandler{service: service, logger: l}
}

// Register handles user registration.
func (h *AuthHandler) Register(c *gin.Context) {
	var req httpdto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	err := h.service.Register(c.Request.Context(), services.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		h.writeAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, httpdto.NewMessageResponse("User registered successfully!"))
}

// Login handles user authentication.
func (h *AuthHandler) Login(c *gin.Context) {
	var req httpdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	res, err := h.service.Login(c.Request.Context(), services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.writeAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.LoginResponse{
		Token:     res.Token,
		ExpiresIn: res.ExpiresIn,
		UserID:    res.UserID,
	}))
}

// Me returns the authenticated user's record.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	u, err := h.service.GetUser(c.Request.Context(), userID)
	if err != nil {
		h.writeAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.UserDTO{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}))
}

// writeAuthError maps service errors to HTTP responses. Raw error details
// stay in the logs; the caller only ever sees the taxonomy message.
func (h *AuthHandler) writeAuthError(c *gin.Context, err error) {
	status := services.HTTPStatus(err)

	switch status {
	case http.StatusBadRequest:
		c.JSON(status, httpdto.NewErrorResponse("invalid input", "INVALID_INPUT"))
	case http.StatusUnauthorized:
		c.JSON(status, httpdto.NewErrorResponse("invalid email or password", "INVALID_CREDENTIALS"))
	case http.StatusNotFound:
		c.JSON(status, httpdto.NewErrorResponse("not found", "NOT_FOUND"))
	case http.StatusConflict:
		c.JSON(status, httpdto.NewErrorResponse("user already exists", "CONFLICT"))
	default:
		if h.logger != nil {
			h.logger.ErrorfCtx(c.Request.Context(), "internal error: %s", err)
		}
		c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse("internal server error", "INTERNAL_ERROR"))
	}
}
