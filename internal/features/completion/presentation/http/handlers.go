package http

import (
	"errors"
	"log"
	"net/http"

	"shop-control/backend/internal/apperror"
	"shop-control/backend/internal/features/completion/application"
	"shop-control/backend/internal/features/completion/domain"
	"shop-control/backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// CompletionHandler holds the completion service.
type CompletionHandler struct {
	completionService application.CompletionService
}

// NewCompletionHandler creates a new CompletionHandler.
func NewCompletionHandler(completionService application.CompletionService) *CompletionHandler {
	return &CompletionHandler{
		completionService: completionService,
	}
}

// Register mounts the gateway routes.
func (h *CompletionHandler) Register(r gin.IRouter) {
	r.GET("/healthz", h.HealthHandler)

	api := r.Group("/api/v1")
	{
		api.POST("/ai", h.CompleteHandler)
	}
}

// HealthHandler is the liveness probe.
func (h *CompletionHandler) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// CompleteHandler handles a product-spec completion request.
func (h *CompletionHandler) CompleteHandler(c *gin.Context) {
	var req domain.CompletionRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": string(apperror.CodeBadRequest), "detail": err.Error()})
		return
	}

	resp, err := h.completionService.Complete(c.Request.Context(), &req)
	if err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			log.Printf("[ERROR] request_id=%s completion failed: %v", middleware.GetRequestID(c), err)
		}
		c.JSON(status, gin.H{"error": string(apperror.CodeOf(err)), "detail": detailFor(err)})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func statusFor(err error) int {
	switch apperror.CodeOf(err) {
	case apperror.CodeBadRequest:
		return http.StatusBadRequest
	case apperror.CodeUpstreamHTTP, apperror.CodeUpstreamTransport:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func detailFor(err error) string {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return appErr.Reason
	}
	return "internal error"
}
