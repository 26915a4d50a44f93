package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/horsefeed/internal/domain/models"
	"github.com/mamadbah2/horsefeed/internal/service/session"
)

// SessionHeader carries the session id on authenticated routes.
const SessionHeader = "X-Session-ID"

const sessionIDKey = "session_id"

// SessionHandler handles the password gate and the per-session diet rows.
type SessionHandler struct {
	sessions *session.Manager
	logger   *zap.Logger
}

// NewSessionHandler constructs the HTTP handler adapter.
func NewSessionHandler(sessions *session.Manager, logger *zap.Logger) *SessionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionHandler{sessions: sessions, logger: logger}
}

// RequireSession rejects requests without a live session id.
func (h *SessionHandler) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(SessionHeader)
		if id == "" || !h.sessions.Session(id).Authenticated {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session required"})
			return
		}
		c.Set(sessionIDKey, id)
		c.Next()
	}
}

// Open passes the password gate and returns a session id.
func (h *SessionHandler) Open(c *gin.Context) {
	var req models.OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	id, err := h.sessions.Open(req.Password)
	if err != nil {
		h.logger.Warn("session rejected", zap.String("client_ip", c.ClientIP()))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid password"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"session_id": id})
}

// Close ends the current session.
func (h *SessionHandler) Close(c *gin.Context) {
	if err := h.sessions.Close(c.GetString(sessionIDKey)); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Diet lists the session's diet rows.
func (h *SessionHandler) Diet(c *gin.Context) {
	diet, err := h.sessions.Diet(c.GetString(sessionIDKey))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": diet})
}

// AddRow appends a diet row.
func (h *SessionHandler) AddRow(c *gin.Context) {
	row, ok := bindRow(c)
	if !ok {
		return
	}

	diet, err := h.sessions.AddRow(c.GetString(sessionIDKey), row)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"rows": diet})
}

// UpdateRow edits the diet row at :index.
func (h *SessionHandler) UpdateRow(c *gin.Context) {
	index, ok := rowIndex(c)
	if !ok {
		return
	}
	row, ok := bindRow(c)
	if !ok {
		return
	}

	diet, err := h.sessions.UpdateRow(c.GetString(sessionIDKey), index, row)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": diet})
}

// RemoveRow deletes the diet row at :index.
func (h *SessionHandler) RemoveRow(c *gin.Context) {
	index, ok := rowIndex(c)
	if !ok {
		return
	}

	diet, err := h.sessions.RemoveRow(c.GetString(sessionIDKey), index)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": diet})
}

func bindRow(c *gin.Context) (models.DietRow, bool) {
	var req models.DietRowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid diet row"})
		return models.DietRow{}, false
	}
	return models.DietRow{Feed: req.Feed, Kg: *req.Kg}, true
}

func rowIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "row index must be an integer"})
		return 0, false
	}
	return index, true
}

func writeError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, models.ErrUnauthenticated), errors.Is(err, session.ErrSessionNotFound):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, session.ErrRowOutOfRange):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrInvalidWeight), errors.Is(err, session.ErrNegativeQuantity),
		errors.Is(err, session.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case models.IsDataLoadError(err):
		logger.Error("reference data unavailable", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "reference data unavailable"})
	default:
		logger.Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
