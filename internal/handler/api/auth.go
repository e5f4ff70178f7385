package api

import (
	"errors"
	"net/http"

	reqdto "roombook/internal/handler/dto/request"
	"roombook/internal/handler/dto/response"
	"roombook/internal/handler/middleware"
	"roombook/internal/pkg/config"
	"roombook/internal/pkg/cookie"
	"roombook/internal/pkg/jwt"
	"roombook/internal/usecase/commands"
	"roombook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	commands   commands.AuthCommands
	queries    queries.UserQueries
	jwtService *jwt.Service
	cfg        config.Config
}

func NewAuthHandler(
	authCommands commands.AuthCommands,
	userQueries queries.UserQueries,
	jwtService *jwt.Service,
	cfg config.Config,
) *AuthHandler {
	return &AuthHandler{
		commands:   authCommands,
		queries:    userQueries,
		jwtService: jwtService,
		cfg:        cfg,
	}
}

// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.RegisterRequest true "Registration request"
// @Success 201 {object} response.Envelope{data=response.AuthResponse}
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req reqdto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	result, err := h.commands.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrEmailTaken):
			response.Error(c, http.StatusConflict, "Email is already registered")
		case errors.Is(err, commands.ErrAuthenticationFailed):
			response.Error(c, http.StatusBadRequest, "Invalid registration data")
		default:
			response.Error(c, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	h.setSession(c, result.TokenPair.AccessToken, result.TokenPair.RefreshToken)
	response.JSON(c, http.StatusCreated, "Registration successful", response.AuthResponse{
		AccessToken:  result.TokenPair.AccessToken,
		RefreshToken: result.TokenPair.RefreshToken,
		User:         result.User,
	})
}

// @Summary User login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} response.Envelope{data=response.AuthResponse}
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	result, err := h.commands.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidCredentials),
			errors.Is(err, commands.ErrUserNotFound):
			response.Error(c, http.StatusUnauthorized, "Invalid email or password")
		case errors.Is(err, commands.ErrUserInactive):
			response.Error(c, http.StatusForbidden, "Account is inactive")
		default:
			response.Error(c, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	h.setSession(c, result.TokenPair.AccessToken, result.TokenPair.RefreshToken)
	response.JSON(c, http.StatusOK, "Login successful", response.AuthResponse{
		AccessToken:  result.TokenPair.AccessToken,
		RefreshToken: result.TokenPair.RefreshToken,
		User:         result.User,
	})
}

// @Summary Refresh the access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.RefreshRequest false "Refresh request"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req reqdto.RefreshRequest
	_ = c.ShouldBindJSON(&req)

	token := req.RefreshToken
	if token == "" {
		token = cookie.GetRefreshToken(c)
	}
	if token == "" {
		response.Error(c, http.StatusUnauthorized, "Refresh token required")
		return
	}

	pair, err := h.commands.RefreshToken(c.Request.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrTokenValidation):
			response.Error(c, http.StatusUnauthorized, "Invalid or expired refresh token")
		case errors.Is(err, commands.ErrUserInactive):
			response.Error(c, http.StatusForbidden, "Account is inactive")
		default:
			response.Error(c, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	h.setSession(c, pair.AccessToken, pair.RefreshToken)
	response.JSON(c, http.StatusOK, "Token refreshed", gin.H{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}

// @Summary User logout
// @Tags auth
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	cookie.ClearTokenCookies(c, h.cfg.Cookie)
	response.JSON(c, http.StatusOK, "Logged out", nil)
}

// @Summary Get current user
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Envelope{data=queries.AuthorizedUserView}
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	view, err := h.queries.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "User not found")
		case errors.Is(err, queries.ErrUserInactive):
			response.Error(c, http.StatusForbidden, "Account is inactive")
		default:
			response.Error(c, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	response.JSON(c, http.StatusOK, "", view)
}

func (h *AuthHandler) setSession(c *gin.Context, accessToken, refreshToken string) {
	cookie.SetTokenCookies(
		c,
		h.cfg.Cookie,
		accessToken,
		refreshToken,
		h.jwtService.AccessDuration(),
		h.jwtService.RefreshDuration(),
	)
}
