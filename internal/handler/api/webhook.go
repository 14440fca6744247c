package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"restaurant-backend/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

// Request bodies above this size cannot be legitimate gateway events.
const maxWebhookBodyBytes = 1 << 20

type WebhookHandler struct {
	webhookCommands commands.WebhookCommands
}

func NewWebhookHandler(webhookCommands commands.WebhookCommands) *WebhookHandler {
	return &WebhookHandler{webhookCommands: webhookCommands}
}

// @Summary Stripe webhook endpoint
// @Description Verifies the signature over the raw body and applies the event. Always returns 200 for verified events, including ones that match no order or do not parse, so the gateway stops retrying.
// @Tags webhooks
// @Accept json
// @Success 200 "OK"
// @Failure 400 {object} map[string]string
// @Router /webhooks/stripe [post]
func (h *WebhookHandler) HandleStripe(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBodyBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to read request body"})
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if signature == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing signature"})
		return
	}

	if err := h.webhookCommands.HandleEvent(c.Request.Context(), payload, signature); err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidSignature):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signature"})
		default:
			// 5xx makes the gateway redeliver, which is what we want for
			// transient storage failures.
			slog.Error("webhook processing failed", "error", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.Status(http.StatusOK)
}
