package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finnconnect/finnconnect/internal/apperrors"
	portssvc "github.com/finnconnect/finnconnect/internal/core/ports/services"
	"github.com/finnconnect/finnconnect/internal/dto"
	"github.com/finnconnect/finnconnect/internal/middleware"
)

// tokenHandler handles HTTP requests for stored provider tokens.
type tokenHandler struct {
	tokenService portssvc.OAuthTokenSvcFacade
}

// newTokenHandler creates a new tokenHandler.
func newTokenHandler(ts portssvc.OAuthTokenSvcFacade) *tokenHandler {
	return &tokenHandler{
		tokenService: ts,
	}
}

// registerTokenRoutes registers all token routes.
func registerTokenRoutes(r *gin.Engine, tokenService portssvc.OAuthTokenSvcFacade) {
	h := newTokenHandler(tokenService)

	tokens := r.Group("/token")
	{
		tokens.POST("", h.saveToken)
		tokens.GET("/:userId", h.getToken)
		tokens.GET("/expired/:userId", h.isTokenExpired)
		tokens.DELETE("/:userId", h.deleteToken)
	}
}

// saveToken godoc
// @Summary Store a provider token
// @Description Stores the token for its provider user, replacing any existing one.
// @Tags tokens
// @Accept json
// @Produce json
// @Param token body dto.SaveTokenRequest true "Token details"
// @Success 201
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /token [post]
func (h *tokenHandler) saveToken(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SaveTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for save token request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if ok := h.tokenService.SaveToken(c.Request.Context(), req.ToDomainToken()); !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save token"})
		return
	}
	c.Status(http.StatusCreated)
}

// getToken godoc
// @Summary Fetch a stored token
// @Tags tokens
// @Produce json
// @Param userId path string true "Provider user ID"
// @Success 200 {object} domain.TokenResponse
// @Failure 404 {object} ErrorResponse
// @Router /token/{userId} [get]
func (h *tokenHandler) getToken(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("userId")

	token, err := h.tokenService.GetToken(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No token stored for user"})
			return
		}
		logger.Error("Failed to get token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve token"})
		return
	}
	c.JSON(http.StatusOK, token)
}

// isTokenExpired godoc
// @Summary Check whether a stored token has expired
// @Tags tokens
// @Produce json
// @Param userId path string true "Provider user ID"
// @Success 200 {object} dto.TokenExpiryResponse
// @Failure 404 {object} ErrorResponse
// @Router /token/expired/{userId} [get]
func (h *tokenHandler) isTokenExpired(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("userId")

	token, err := h.tokenService.GetToken(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No token stored for user"})
			return
		}
		logger.Error("Failed to get token for expiry check", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve token"})
		return
	}

	c.JSON(http.StatusOK, dto.TokenExpiryResponse{
		UserID:  userID,
		Expired: h.tokenService.IsTokenExpired(*token),
	})
}

// deleteToken godoc
// @Summary Delete a stored token
// @Tags tokens
// @Produce json
// @Param userId path string true "Provider user ID"
// @Success 200
// @Failure 500 {object} ErrorResponse
// @Router /token/{userId} [delete]
func (h *tokenHandler) deleteToken(c *gin.Context) {
	userID := c.Param("userId")

	if ok := h.tokenService.DeleteToken(c.Request.Context(), userID); !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete token"})
		return
	}
	c.Status(http.StatusOK)
}
