package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finnconnect/finnconnect/internal/apperrors"
	portssvc "github.com/finnconnect/finnconnect/internal/core/ports/services"
	"github.com/finnconnect/finnconnect/internal/dto"
	"github.com/finnconnect/finnconnect/internal/middleware"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	rateService portssvc.ExchangeRateSvcFacade
}

// newExchangeRateHandler creates a new exchangeRateHandler.
func newExchangeRateHandler(rs portssvc.ExchangeRateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{
		rateService: rs,
	}
}

// registerExchangeRateRoutes registers all exchange rate routes.
func registerExchangeRateRoutes(r *gin.Engine, rateService portssvc.ExchangeRateSvcFacade) {
	h := newExchangeRateHandler(rateService)

	r.GET("/runClient", h.runClient)
	r.GET("/exchangeRate/latest", h.getLatestRates)
}

// runClient godoc
// @Summary Trigger a full rate ingestion
// @Description Fetches every rate the external provider prices and stores them dated today.
// @Tags exchange-rates
// @Produce json
// @Success 200 {array} dto.ExchangeRateResponse
// @Failure 500 {object} ErrorResponse
// @Router /runClient [get]
func (h *exchangeRateHandler) runClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rates, err := h.rateService.FetchAndStoreAllRates(c.Request.Context())
	if err != nil {
		logger.Error("Rate ingestion failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch and store exchange rates"})
		return
	}

	logger.Info("Rate ingestion completed", slog.Int("count", len(rates)))
	c.JSON(http.StatusOK, dto.ToListExchangeRateResponse(rates))
}

// getLatestRates godoc
// @Summary Latest stored rates
// @Description Returns the most recent stored rate per currency effective on or before asOfDate.
// @Tags exchange-rates
// @Produce json
// @Param asOfDate query string true "Cut-off date (YYYY-MM-DD)"
// @Success 200 {array} dto.ExchangeRateResponse
// @Failure 400 {object} ErrorResponse "Missing or invalid asOfDate"
// @Failure 500 {object} ErrorResponse
// @Router /exchangeRate/latest [get]
func (h *exchangeRateHandler) getLatestRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	raw := c.Query("asOfDate")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "asOfDate is required"})
		return
	}
	asOf, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "asOfDate must be formatted as YYYY-MM-DD"})
		return
	}

	rates, err := h.rateService.GetLatestRates(c.Request.Context(), asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmptyResult) {
			logger.Warn("No exchange rates stored for cut-off", slog.String("as_of", asOf.Format("2006-01-02")))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No exchange rates available"})
			return
		}
		logger.Error("Failed to query latest rates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve exchange rates"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListExchangeRateResponse(rates))
}
