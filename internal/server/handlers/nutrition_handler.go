package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/horsefeed/internal/domain/models"
	"github.com/mamadbah2/horsefeed/internal/service/session"
)

// NutritionService describes the computations the HTTP layer can request.
type NutritionService interface {
	Evaluate(ctx context.Context, session models.Session, req models.EvaluationRequest) (models.Evaluation, error)
	FeedOptions(ctx context.Context) ([]string, error)
	WeightClasses(ctx context.Context) ([]models.WeightClass, error)
}

// CatalogReloader re-reads the reference workbooks.
type CatalogReloader interface {
	Reload(ctx context.Context) error
}

// NutritionHandler exposes reference data and diet evaluations.
type NutritionHandler struct {
	svc      NutritionService
	catalog  CatalogReloader
	sessions *session.Manager
	logger   *zap.Logger
}

// NewNutritionHandler constructs the HTTP handler adapter.
func NewNutritionHandler(svc NutritionService, catalog CatalogReloader, sessions *session.Manager, logger *zap.Logger) *NutritionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NutritionHandler{svc: svc, catalog: catalog, sessions: sessions, logger: logger}
}

// Categories returns the category map the selectors are built from.
func (h *NutritionHandler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": models.Categories})
}

// Weights returns the tabulated weight classes.
func (h *NutritionHandler) Weights(c *gin.Context) {
	weights, err := h.svc.WeightClasses(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"weights": weights})
}

// Feeds returns the feed selection list.
func (h *NutritionHandler) Feeds(c *gin.Context) {
	options, err := h.svc.FeedOptions(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"feeds": options})
}

// Evaluate recomputes requirement and coverage for the posted form.
func (h *NutritionHandler) Evaluate(c *gin.Context) {
	var payload models.EvaluationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.logger.Warn("invalid evaluation payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if payload.Category != "" {
		category, ok := models.FindCategory(payload.Category)
		if !ok || !category.HasSubcategory(payload.Subcategory) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "subcategory does not belong to category"})
			return
		}
	}

	id := c.GetString(sessionIDKey)
	var rows models.DietSelection
	if payload.Rows != nil {
		rows = *payload.Rows
	} else {
		diet, err := h.sessions.Diet(id)
		if err != nil {
			writeError(c, h.logger, err)
			return
		}
		rows = diet
	}

	eval, err := h.svc.Evaluate(c.Request.Context(), h.sessions.Session(id), models.EvaluationRequest{
		Weight:      payload.Weight,
		Subcategory: payload.Subcategory,
		Notes:       payload.Notes,
		Selections:  rows,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, eval)
}

// Reload re-reads the reference workbooks.
func (h *NutritionHandler) Reload(c *gin.Context) {
	if err := h.catalog.Reload(c.Request.Context()); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
