package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/rusingacademy/ledger-service/internal/apperrors"
	"github.com/rusingacademy/ledger-service/internal/core/domain"
	portssvc "github.com/rusingacademy/ledger-service/internal/core/ports/services"
	"github.com/rusingacademy/ledger-service/internal/dto"
	"github.com/rusingacademy/ledger-service/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reconciliationHandler handles HTTP requests for source-document reconciliation.
type reconciliationHandler struct {
	reconciliationService portssvc.ReconciliationService
}

// newReconciliationHandler creates a new reconciliationHandler.
func newReconciliationHandler(rs portssvc.ReconciliationService) *reconciliationHandler {
	return &reconciliationHandler{reconciliationService: rs}
}

// registerReconciliationRoutes registers routes related to reconciliation.
func registerReconciliationRoutes(rg *gin.RouterGroup, reconciliationService portssvc.ReconciliationService) {
	h := newReconciliationHandler(reconciliationService)

	recon := rg.Group("/reconciliation")
	{
		recon.GET("/orphans", h.getOrphans)
		recon.GET("/duplicates", h.getDuplicates)
		recon.GET("/totals", h.getTotals)
	}
}

// getOrphans godoc
// @Summary Find orphan source documents
// @Description Lists posted source documents that no active ledger entry covers
// @Tags reconciliation
// @Produce  json
// @Param   sourceType query string true "Source document type (EXPENSE, INVOICE or PAYMENT)"
// @Success 200 {object} dto.OrphanSourceDocumentsResponse
// @Failure 400 {object} map[string]string "Unknown source type"
// @Failure 500 {object} map[string]string "Failed to scan for orphans"
// @Router /reconciliation/orphans [get]
func (h *reconciliationHandler) getOrphans(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sourceType := domain.SourceType(c.Query("sourceType"))

	orphans, err := h.reconciliationService.FindOrphanSourceDocuments(c.Request.Context(), sourceType)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to scan for orphan documents", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan for orphans"})
		return
	}

	c.JSON(http.StatusOK, dto.OrphanSourceDocumentsResponse{
		SourceType: string(sourceType),
		SourceIDs:  orphans,
	})
}

// getDuplicates godoc
// @Summary Find duplicate source documents
// @Description Groups posted source documents that agree on the requested match keys
// @Tags reconciliation
// @Produce  json
// @Param   sourceType query string true "Source document type (EXPENSE, INVOICE or PAYMENT)"
// @Param   matchKeys query string true "Comma-separated keys out of payee, amount, docDate"
// @Success 200 {object} dto.DuplicateSourceDocumentsResponse
// @Failure 400 {object} map[string]string "Unknown source type or match key"
// @Failure 500 {object} map[string]string "Failed to scan for duplicates"
// @Router /reconciliation/duplicates [get]
func (h *reconciliationHandler) getDuplicates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sourceType := domain.SourceType(c.Query("sourceType"))

	var matchKeys []domain.MatchKey
	for _, raw := range strings.Split(c.Query("matchKeys"), ",") {
		if raw = strings.TrimSpace(raw); raw != "" {
			matchKeys = append(matchKeys, domain.MatchKey(raw))
		}
	}

	groups, err := h.reconciliationService.FindDuplicateSourceDocuments(c.Request.Context(), sourceType, matchKeys)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to scan for duplicate documents", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan for duplicates"})
		return
	}

	keys := make([]string, len(matchKeys))
	for i, k := range matchKeys {
		keys[i] = string(k)
	}
	c.JSON(http.StatusOK, dto.DuplicateSourceDocumentsResponse{
		SourceType: string(sourceType),
		MatchKeys:  keys,
		Groups:     dto.ToDuplicateGroupResponses(groups),
	})
}

// getTotals godoc
// @Summary Compare raw and ledger totals
// @Description Compares the summed source documents against the posted ledger and flags drift
// @Tags reconciliation
// @Produce  json
// @Param   sourceType query string true "Source document type (EXPENSE, INVOICE or PAYMENT)"
// @Success 200 {object} dto.TotalsComparisonResponse
// @Failure 400 {object} map[string]string "Unknown source type"
// @Failure 500 {object} map[string]string "Failed to compare totals"
// @Router /reconciliation/totals [get]
func (h *reconciliationHandler) getTotals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sourceType := domain.SourceType(c.Query("sourceType"))

	comparison, err := h.reconciliationService.CompareTotals(c.Request.Context(), sourceType)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to compare totals", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compare totals"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTotalsComparisonResponse(comparison))
}
