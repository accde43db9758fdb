package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/awqafio/waqf_ledger/internal/apperrors"
	portsrepo "github.com/awqafio/waqf_ledger/internal/core/ports/repositories"
	portssvc "github.com/awqafio/waqf_ledger/internal/core/ports/services"
	"github.com/awqafio/waqf_ledger/internal/core/services"
	"github.com/awqafio/waqf_ledger/internal/dto"
	"github.com/awqafio/waqf_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// entryHandler handles HTTP requests related to journal entries.
type entryHandler struct {
	postingService portssvc.PostingSvcFacade
}

func newEntryHandler(postingService portssvc.PostingSvcFacade) *entryHandler {
	return &entryHandler{postingService: postingService}
}

// registerEntryRoutes wires the journal entry endpoints onto the v1 group.
func registerEntryRoutes(v1 *gin.RouterGroup, postingService portssvc.PostingSvcFacade) {
	h := newEntryHandler(postingService)

	entries := v1.Group("/entries")
	{
		entries.GET("/new", h.prepareEntry)
		entries.POST("", h.submitEntry)
		entries.POST("/auto-post", h.autoPost)
		entries.GET("", h.listEntries)
		entries.GET("/:entryID", h.getEntry)
	}
}

// prepareEntry hands the client a provisional entry number, the two seeded
// empty lines, and the default open fiscal year when one exists.
func (h *entryHandler) prepareEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	builder, fiscalYear, err := h.postingService.PrepareManualEntry(c.Request.Context())
	if err != nil {
		logger.Error("Failed to prepare manual entry", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to prepare entry"})
		return
	}

	resp := dto.PreparedEntryResponse{
		EntryNumber: builder.EntryNumber,
		Lines:       dto.ToEntryLineResponses(builder.Lines()),
	}
	if fiscalYear != nil {
		resp.FiscalYearID = fiscalYear.FiscalYearID
	}

	c.JSON(http.StatusOK, resp)
}

// submitEntry validates and commits a manual journal entry.
func (h *entryHandler) submitEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	createReq := dto.CreateEntryRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for submitEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, _ := middleware.GetActorIDFromContext(c)
	logger = logger.With(slog.String("actor_id", actorID))

	entry, err := h.postingService.SubmitManualEntry(c.Request.Context(), createReq, actorID)
	if err != nil {
		h.respondEntryError(c, logger, err, "Failed to submit entry")
		return
	}

	logger.Info("Journal entry committed",
		slog.String("entry_id", entry.EntryID),
		slog.String("entry_number", entry.EntryNumber))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// autoPost expands a business trigger event through its template and commits
// the resulting balanced entry.
func (h *entryHandler) autoPost(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	autoReq := dto.AutoPostRequest{}
	if err := c.ShouldBindJSON(&autoReq); err != nil {
		logger.Error("Failed to bind JSON for autoPost", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, _ := middleware.GetActorIDFromContext(c)
	logger = logger.With(
		slog.String("actor_id", actorID),
		slog.String("trigger_event", autoReq.TriggerEvent),
		slog.String("reference_id", autoReq.ReferenceID))

	entry, err := h.postingService.AutoPost(c.Request.Context(), autoReq, actorID)
	if err != nil {
		h.respondEntryError(c, logger, err, "Failed to auto-post entry")
		return
	}

	logger.Info("Auto-posted journal entry committed",
		slog.String("entry_id", entry.EntryID),
		slog.String("entry_number", entry.EntryNumber))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// getEntry retrieves an entry with its lines.
func (h *entryHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	entry, err := h.postingService.GetEntryByID(c.Request.Context(), entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Entry not found", slog.String("entry_id", entryID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
			return
		}
		logger.Error("Failed to get entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve entry"})
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// listEntries returns a token-paginated entry listing, newest first.
func (h *entryHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	params := dto.ListEntriesParams{}
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Error("Failed to bind query for listEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	resp, err := h.postingService.ListEntries(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list entries", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list entries"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// respondEntryError maps posting engine failures onto HTTP statuses. Validation
// details travel to the client verbatim so the UI can show every violation.
func (h *entryHandler) respondEntryError(c *gin.Context, logger *slog.Logger, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Entry rejected by validation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNoTemplateForTrigger),
		errors.Is(err, apperrors.ErrConfiguration):
		logger.Error("Entry rejected by template configuration", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, portsrepo.ErrFiscalYearClosed):
		logger.Warn("Entry rejected, fiscal year closed", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrSubmitInFlight),
		errors.Is(err, portsrepo.ErrDuplicateEntryNumber):
		logger.Warn("Entry submission conflict", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Entry references missing data", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallbackMsg})
	}
}
