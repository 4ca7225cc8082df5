package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/rusingacademy/ledger-service/internal/apperrors"
	"github.com/rusingacademy/ledger-service/internal/core/domain"
	portssvc "github.com/rusingacademy/ledger-service/internal/core/ports/services"
	"github.com/rusingacademy/ledger-service/internal/dto"
	"github.com/rusingacademy/ledger-service/internal/middleware"
	"github.com/gin-gonic/gin"
)

// entryHandler handles HTTP requests related to journal entries.
type entryHandler struct {
	entryService portssvc.EntrySvcFacade
}

// newEntryHandler creates a new entryHandler.
func newEntryHandler(es portssvc.EntrySvcFacade) *entryHandler {
	return &entryHandler{entryService: es}
}

// registerEntryRoutes registers routes related to journal entries.
func registerEntryRoutes(rg *gin.RouterGroup, entryService portssvc.EntrySvcFacade) {
	h := newEntryHandler(entryService)

	entries := rg.Group("/entries")
	{
		entries.POST("", h.postEntry)
		entries.GET("", h.listEntries)
		entries.POST("/expense", h.postExpense)
		entries.POST("/invoice", h.postInvoice)
		entries.POST("/payment", h.postPayment)
		entries.GET("/:entryID", h.getEntry)
		entries.POST("/:entryID/reverse", h.reverseEntry)
	}
}

// writePostingError maps posting pipeline errors to HTTP status codes.
func writePostingError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, apperrors.ErrEmptyEntry),
		errors.Is(err, apperrors.ErrMalformedLine),
		errors.Is(err, apperrors.ErrUnknownAccount),
		errors.Is(err, apperrors.ErrUnbalancedEntry),
		errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Entry rejected", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicateSource):
		logger.Warn("Duplicate source document", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error("Failed to post entry in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post entry"})
	}
}

// postEntry godoc
// @Summary Post a journal entry
// @Description Validates and atomically persists a balanced journal entry
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateEntryRequest true "Candidate entry"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Entry rejected by validation"
// @Failure 409 {object} map[string]string "Source document already posted"
// @Failure 500 {object} map[string]string "Failed to post entry"
// @Router /entries [post]
func (h *entryHandler) postEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PostEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, _ := middleware.GetActorIDFromContext(c)

	entry, err := h.entryService.PostEntry(c.Request.Context(), req, actorID)
	if err != nil {
		writePostingError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// getEntry godoc
// @Summary Get a journal entry
// @Description Retrieves an entry and its lines by entry ID
// @Tags entries
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve entry"
// @Router /entries/{entryID} [get]
func (h *entryHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	entry, err := h.entryService.GetEntryByID(c.Request.Context(), entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
			return
		}
		logger.Error("Failed to get entry from service", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve entry"})
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Retrieves a cursor-paginated list of entries, newest first
// @Tags entries
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Cursor from the previous page"
// @Param   includeReversed query bool false "Audit view: include reversed entries and their mirrors"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 400 {object} map[string]string "Invalid pagination token"
// @Failure 500 {object} map[string]string "Failed to list entries"
// @Router /entries [get]
func (h *entryHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	includeReversed, _ := strconv.ParseBool(c.DefaultQuery("includeReversed", "false"))

	params := dto.ListEntriesParams{
		Limit:           limit,
		IncludeReversed: includeReversed,
	}
	if token := c.Query("nextToken"); token != "" {
		params.NextToken = &token
	}

	resp, err := h.entryService.ListEntries(c.Request.Context(), params)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code == http.StatusBadRequest {
			c.JSON(http.StatusBadRequest, gin.H{"error": appErr.Message})
			return
		}
		logger.Error("Failed to list entries from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list entries"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// reverseEntry godoc
// @Summary Reverse a journal entry
// @Description Posts the mirror of an entry and marks the original reversed
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Param   reversal body dto.ReverseEntryRequest true "Reversal reason"
// @Success 201 {object} dto.EntryResponse "The mirror entry"
// @Failure 400 {object} map[string]string "Invalid request or entry is itself a reversal"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry already reversed"
// @Failure 500 {object} map[string]string "Failed to reverse entry"
// @Router /entries/{entryID}/reverse [post]
func (h *entryHandler) reverseEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	var req dto.ReverseEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ReverseEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, _ := middleware.GetActorIDFromContext(c)

	mirror, err := h.entryService.ReverseEntry(c.Request.Context(), entryID, req.Reason, actorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		case errors.Is(err, apperrors.ErrAlreadyReversed):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to reverse entry in service", slog.String("error", err.Error()), slog.String("entry_id", entryID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reverse entry"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(mirror))
}

// postExpense godoc
// @Summary Journalize an approved expense
// @Description Builds and posts the canonical expense entry: debit expense and tax receivable, credit cash
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   expense body dto.PostExpenseRequest true "Expense document and account mapping"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Entry rejected by validation"
// @Failure 409 {object} map[string]string "Expense already posted"
// @Failure 500 {object} map[string]string "Failed to post entry"
// @Router /entries/expense [post]
func (h *entryHandler) postExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PostExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PostExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, _ := middleware.GetActorIDFromContext(c)

	doc := domain.ExpenseDocument{
		ExpenseID:   req.ExpenseID,
		Payee:       req.Payee,
		Total:       req.Total,
		TaxAmount:   req.TaxAmount,
		TaxRate:     req.TaxRate,
		ExpenseDate: req.ExpenseDate,
	}
	entry, err := h.entryService.PostExpense(c.Request.Context(), doc, req.Accounts, actorID)
	if err != nil {
		writePostingError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// postInvoice godoc
// @Summary Journalize a finalized invoice
// @Description Builds and posts the canonical invoice entry: debit receivable, credit sales and tax payable
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   invoice body dto.PostInvoiceRequest true "Invoice document and account mapping"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Entry rejected by validation"
// @Failure 409 {object} map[string]string "Invoice already posted"
// @Failure 500 {object} map[string]string "Failed to post entry"
// @Router /entries/invoice [post]
func (h *entryHandler) postInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PostInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PostInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, _ := middleware.GetActorIDFromContext(c)

	doc := domain.InvoiceDocument{
		InvoiceID:     req.InvoiceID,
		InvoiceNumber: req.InvoiceNumber,
		Total:         req.Total,
		TaxAmount:     req.TaxAmount,
		TaxRate:       req.TaxRate,
		InvoiceDate:   req.InvoiceDate,
	}
	entry, err := h.entryService.PostInvoice(c.Request.Context(), doc, req.Accounts, actorID)
	if err != nil {
		writePostingError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// postPayment godoc
// @Summary Journalize a confirmed payment
// @Description Builds and posts the canonical payment entry: debit cash, credit receivable
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   payment body dto.PostPaymentRequest true "Payment document and account mapping"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Entry rejected by validation"
// @Failure 409 {object} map[string]string "Payment already posted"
// @Failure 500 {object} map[string]string "Failed to post entry"
// @Router /entries/payment [post]
func (h *entryHandler) postPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PostPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PostPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, _ := middleware.GetActorIDFromContext(c)

	doc := domain.PaymentDocument{
		PaymentID:   req.PaymentID,
		Reference:   req.Reference,
		Amount:      req.Amount,
		PaymentDate: req.PaymentDate,
	}
	entry, err := h.entryService.PostPayment(c.Request.Context(), doc, req.Accounts, actorID)
	if err != nil {
		writePostingError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}
