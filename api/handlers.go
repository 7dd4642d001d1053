package api

import (
	"context"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mondaydiag/internal/diagnose"
	"mondaydiag/internal/models"
)

// BoardFetcher is the one upstream call the diagnostic endpoint makes.
// Satisfied by integrations.MondayClient.
type BoardFetcher interface {
	FetchBoard(ctx context.Context, boardID string) (*models.Board, error)
}

type Handler struct {
	Monday BoardFetcher

	// Read-only configuration snapshot taken at startup.
	BoardID         string
	StatusColumnKey string
	WebhookColumnID string
}

// StatusColumnDiagnosticsHandler answers "which column ID should the
// webhook be using?" for the configured board. Any method works; no
// request input is read. One upstream fetch, then pure shaping.
func (h *Handler) StatusColumnDiagnosticsHandler(c *gin.Context) {
	board, err := h.Monday.FetchBoard(c.Request.Context(), h.BoardID)
	if err != nil {
		zap.L().Error("Diagnostic board fetch failed", zap.String("boardID", h.BoardID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorEnvelope{
			Error:   true,
			Message: err.Error(),
		})
		return
	}

	report := diagnose.BuildReport(board, h.BoardID, h.StatusColumnKey, h.WebhookColumnID)

	zap.L().Info("Status column diagnostic complete",
		zap.String("boardName", report.BoardName),
		zap.Bool("statusColumnExists", report.Diagnosis.StatusColumnExists),
		zap.String("shouldUse", report.Diagnosis.ShouldUse))

	c.JSON(http.StatusOK, report)
}

func (h *Handler) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"configured": h.BoardID != "",
	})
}

// RecoveryWithEnvelope converts a panic into the same 500 envelope the
// handlers use for ordinary errors, with the stack attached.
func RecoveryWithEnvelope(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				stack := string(debug.Stack())
				logger.Error("Panic recovered in handler", zap.Any("panic", r), zap.String("stack", stack))

				message := "Unknown error"
				switch v := r.(type) {
				case error:
					message = v.Error()
				case string:
					message = v
				}

				c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorEnvelope{
					Error:   true,
					Message: message,
					Stack:   stack,
				})
			}
		}()
		c.Next()
	}
}
