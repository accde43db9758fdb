package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/awqafio/waqf_ledger/internal/apperrors"
	portssvc "github.com/awqafio/waqf_ledger/internal/core/ports/services"
	"github.com/awqafio/waqf_ledger/internal/dto"
	"github.com/awqafio/waqf_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// templateHandler handles HTTP requests for auto-posting templates.
type templateHandler struct {
	templateService portssvc.TemplateSvcFacade
}

func newTemplateHandler(templateService portssvc.TemplateSvcFacade) *templateHandler {
	return &templateHandler{templateService: templateService}
}

func registerTemplateRoutes(v1 *gin.RouterGroup, templateService portssvc.TemplateSvcFacade) {
	h := newTemplateHandler(templateService)

	templates := v1.Group("/templates")
	{
		templates.POST("", h.createTemplate)
		templates.GET("", h.listTemplates)
		templates.PATCH("/:templateID/active", h.setTemplateActive)
	}
}

// createTemplate authors a new auto-posting template. Split shape and
// percentage sums are validated here, before the template can ever fire.
func (h *templateHandler) createTemplate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	createReq := dto.CreateTemplateRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for createTemplate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, _ := middleware.GetActorIDFromContext(c)

	template, err := h.templateService.CreateTemplate(c.Request.Context(), createReq, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Template rejected by validation", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create template", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create template"})
		return
	}

	logger.Info("Auto-posting template created",
		slog.String("template_id", template.TemplateID),
		slog.String("trigger_event", string(template.TriggerEvent)))
	c.JSON(http.StatusCreated, dto.ToTemplateResponse(template))
}

func (h *templateHandler) listTemplates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	templates, err := h.templateService.ListTemplates(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list templates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list templates"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"templates": dto.ToTemplateResponses(templates)})
}

// setTemplateActive flips a template's active flag. Deactivation is the only
// supported way to retire a template; firing history stays intact.
func (h *templateHandler) setTemplateActive(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	templateID := c.Param("templateID")

	req := dto.SetTemplateActiveRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for setTemplateActive", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, _ := middleware.GetActorIDFromContext(c)

	if err := h.templateService.SetTemplateActive(c.Request.Context(), templateID, *req.IsActive, actorID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
			return
		}
		logger.Error("Failed to update template active flag", slog.String("error", err.Error()), slog.String("template_id", templateID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update template"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"templateID": templateID, "isActive": *req.IsActive})
}
