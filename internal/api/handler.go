package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"

	"fleet-maintenance-backend/internal/service"
	"fleet-maintenance-backend/internal/store"
	"fleet-maintenance-backend/internal/validate"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	svc     *service.Service
	webpush *webpush.Options
}

// NewHandler creates a new API handler.
func NewHandler(svc *service.Service, webpushOptions *webpush.Options) *Handler {
	return &Handler{
		svc:     svc,
		webpush: webpushOptions,
	}
}

// writeError maps service and store errors onto HTTP responses. Validation
// failures render as a field map; unknown errors are logged and hidden
// behind a generic 500.
func (h *Handler) writeError(c *gin.Context, err error) {
	var fieldErrors validate.Errors
	switch {
	case errors.As(err, &fieldErrors):
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "resource not found"})
	case errors.Is(err, store.ErrDuplicateID):
		c.JSON(http.StatusConflict, gin.H{"error": "id already exists"})
	default:
		log.Printf("Internal error handling %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
