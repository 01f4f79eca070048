package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"engagement-admin-backend/internal/common/errors"
	"engagement-admin-backend/internal/common/middleware"
	"engagement-admin-backend/internal/common/validation"
	"engagement-admin-backend/internal/features/auth/models"
	"engagement-admin-backend/internal/features/auth/service"
	"engagement-admin-backend/internal/features/user/mapper"
)

type AuthHandler struct {
	service service.AuthService
	cookies Cookies
}

func NewAuthHandler(service service.AuthService, cookies Cookies) *AuthHandler {
	return &AuthHandler{
		service: service,
		cookies: cookies,
	}
}

// RegisterRoutes mounts the public auth routes on router and GET /me
// behind session.
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup, session gin.HandlerFunc) {
	router.POST("/register-user", h.Register)
	router.POST("/login-user", h.Login)
	router.POST("/logout-user", h.Logout)
	router.GET("/refresh", h.Refresh)

	router.GET("/me", session, h.Me)
}

// @Summary Register a console user
// @Description Creates a verified user account. With tick=true the new user is logged in right away.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration data"
// @Success 201 {object} models.AuthResponse
// @Failure 400 {object} middleware.ErrorResponse "Validation failed"
// @Failure 409 {object} middleware.ErrorResponse "Email already registered"
// @Router /register-user [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(validation.FromBinding(err))
		return
	}

	user, pair, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if pair != nil {
		h.cookies.Set(c, pair)
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "User registered successfully!",
		"user":    mapper.ToUserResponse(user),
		"auth":    pair != nil,
	})
}

// @Summary Log in
// @Description Checks credentials, sets the accessToken and refreshToken cookies
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} models.AuthResponse
// @Failure 401 {object} middleware.ErrorResponse "Invalid credentials"
// @Failure 403 {object} middleware.ErrorResponse "Account not verified"
// @Router /login-user [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(validation.FromBinding(err))
		return
	}

	user, pair, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	h.cookies.Set(c, pair)
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Login successful!",
		"user":    mapper.ToUserResponse(user),
		"auth":    true,
	})
}

// @Summary Log out
// @Description Revokes the stored refresh token and clears both cookies
// @Tags auth
// @Produce json
// @Success 200 {object} models.AuthResponse
// @Router /logout-user [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	// cookies go away even if the store is unreachable
	h.cookies.Clear(c)

	if err := h.service.Logout(c.Request.Context(), readCookie(c, RefreshCookie)); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Logged out successfully!",
		"auth":    false,
	})
}

// @Summary Rotate session tokens
// @Description Exchanges the refreshToken cookie for a new token pair
// @Tags auth
// @Produce json
// @Success 200 {object} models.AuthResponse
// @Failure 401 {object} middleware.ErrorResponse "Missing, expired or revoked refresh token"
// @Router /refresh [get]
func (h *AuthHandler) Refresh(c *gin.Context) {
	token := readCookie(c, RefreshCookie)
	if token == "" {
		h.cookies.Clear(c)
		_ = c.Error(errors.NewUnauthorizedError("refresh token required"))
		return
	}

	user, pair, err := h.service.Refresh(c.Request.Context(), token)
	if err != nil {
		h.cookies.Clear(c)
		_ = c.Error(err)
		return
	}

	h.cookies.Set(c, pair)
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"user":   mapper.ToUserResponse(user),
		"auth":   true,
	})
}

// @Summary Current session
// @Description Returns the user behind the session cookies
// @Tags auth
// @Produce json
// @Success 200 {object} models.AuthResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.service.Me(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"user":   mapper.ToUserResponse(user),
		"auth":   true,
	})
}
