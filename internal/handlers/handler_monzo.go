package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finnconnect/finnconnect/internal/apperrors"
	"github.com/finnconnect/finnconnect/internal/core/domain"
	portssvc "github.com/finnconnect/finnconnect/internal/core/ports/services"
	"github.com/finnconnect/finnconnect/internal/dto"
	"github.com/finnconnect/finnconnect/internal/middleware"
)

const oauthStateCookie = "oauth_state"

// monzoHandler handles the OAuth flow and the account queries backed by the
// stored token.
type monzoHandler struct {
	monzoService portssvc.MonzoSvcFacade
}

// newMonzoHandler creates a new monzoHandler.
func newMonzoHandler(ms portssvc.MonzoSvcFacade) *monzoHandler {
	return &monzoHandler{
		monzoService: ms,
	}
}

// registerMonzoRoutes registers the OAuth and account query routes.
func registerMonzoRoutes(r *gin.Engine, monzoService portssvc.MonzoSvcFacade) {
	h := newMonzoHandler(monzoService)

	auth := r.Group("/auth")
	{
		auth.GET("/monzo", h.startAuth)
		auth.GET("/callback", h.callback)
	}

	r.GET("/whoami", h.whoAmI)
	r.GET("/accounts", h.accounts)
	r.GET("/balance", h.balance)
}

// startAuth godoc
// @Summary Start the Monzo consent flow
// @Description Redirects to the Monzo consent page with a fresh CSRF state.
// @Tags monzo
// @Success 302
// @Failure 500 {object} ErrorResponse
// @Router /auth/monzo [get]
func (h *monzoHandler) startAuth(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	state, err := h.monzoService.GenerateStateString()
	if err != nil {
		logger.Error("Failed to generate oauth state", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start authorization"})
		return
	}

	// The state round-trips through a short-lived cookie and is compared on
	// the callback.
	c.SetCookie(oauthStateCookie, state, 600, "/", "", false, true)
	c.Redirect(http.StatusFound, h.monzoService.GetAuthURL(state))
}

// callback godoc
// @Summary Complete the Monzo consent flow
// @Description Validates the CSRF state and exchanges the authorization code for a token.
// @Tags monzo
// @Produce json
// @Param code query string true "Authorization code"
// @Param state query string true "CSRF state"
// @Success 200 {object} dto.OAuthCallbackResponse
// @Failure 400 {object} ErrorResponse
// @Router /auth/callback [get]
func (h *monzoHandler) callback(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	state := c.Query("state")
	expectedState, err := c.Cookie(oauthStateCookie)
	if err != nil || state == "" || state != expectedState {
		logger.Warn("OAuth state mismatch on callback")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid OAuth state"})
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", false, true)

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing authorization code"})
		return
	}

	token, err := h.monzoService.HandleCallback(c.Request.Context(), code)
	if err != nil {
		logger.Error("Authorization code exchange failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to complete authorization"})
		return
	}

	logger.Info("Monzo authorization completed", slog.String("user_id", token.UserID))
	c.JSON(http.StatusOK, dto.OAuthCallbackResponse{
		UserID:    token.UserID,
		TokenType: token.TokenType,
		ExpiresIn: token.ExpiresIn,
	})
}

// whoAmI godoc
// @Summary Check the stored token's identity
// @Tags monzo
// @Produce json
// @Success 200 {object} domain.WhoAmIResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} domain.MonzoAPIError
// @Failure 502 {object} ErrorResponse
// @Router /whoami [get]
func (h *monzoHandler) whoAmI(c *gin.Context) {
	resp, err := h.monzoService.WhoAmI(c.Request.Context())
	if err != nil {
		h.respondMonzoError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// accounts godoc
// @Summary List the accounts visible to the stored token
// @Tags monzo
// @Produce json
// @Success 200 {object} domain.MonzoAccountsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} domain.MonzoAPIError
// @Failure 502 {object} ErrorResponse
// @Router /accounts [get]
func (h *monzoHandler) accounts(c *gin.Context) {
	resp, err := h.monzoService.Accounts(c.Request.Context())
	if err != nil {
		h.respondMonzoError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// balance godoc
// @Summary Balance of the configured account
// @Tags monzo
// @Produce json
// @Success 200 {object} domain.BalanceResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} domain.MonzoAPIError
// @Failure 502 {object} ErrorResponse
// @Router /balance [get]
func (h *monzoHandler) balance(c *gin.Context) {
	resp, err := h.monzoService.Balance(c.Request.Context())
	if err != nil {
		h.respondMonzoError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// respondMonzoError maps a Monzo query failure to its HTTP shape: no valid
// stored token is 401, a provider-side rejection is 403 with the provider's
// payload, anything else is 502.
func (h *monzoHandler) respondMonzoError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if errors.Is(err, apperrors.ErrUnauthorized) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No valid Monzo token stored"})
		return
	}

	var apiErr *domain.MonzoAPIError
	if errors.As(err, &apiErr) {
		logger.Warn("Monzo rejected the request", slog.String("code", apiErr.Code))
		c.JSON(http.StatusForbidden, apiErr)
		return
	}

	logger.Error("Monzo request failed", slog.String("error", err.Error()))
	c.JSON(http.StatusBadGateway, gin.H{"error": "Upstream provider request failed"})
}
