package controllers

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"eventgate/internal/services"
	"eventgate/pkg/stripe"
)

// maxWebhookBody bounds how much of a webhook payload is read.
const maxWebhookBody = 1 << 16

type PaymentController struct {
	webhookService services.WebhookServiceInterface
	verifier       stripe.Verifier
}

func NewPaymentController(webhookService services.WebhookServiceInterface, verifier stripe.Verifier) *PaymentController {
	return &PaymentController{
		webhookService: webhookService,
		verifier:       verifier,
	}
}

// HandleWebhook godoc
// @Summary Receive payment provider webhook events
// @Tags Payments
// @Accept json
// @Produce json
// @Param stripe-signature header string true "Webhook signature"
// @Success 200 {object} map[string]string
// @Router /stripe/webhook [post]
//
// Once the signature verifies and the envelope parses, the response is 200 no
// matter what the business outcome was: the provider owns the retry schedule,
// and redelivery cannot change an already-settled payment.
func (p *PaymentController) HandleWebhook(c *gin.Context) {

	rawBody, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		log.Printf("webhook: read body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	event, err := p.verifier.ConstructEvent(rawBody, c.GetHeader("stripe-signature"))
	if err != nil {
		if errors.Is(err, stripe.ErrMalformedEnvelope) {
			log.Printf("webhook: malformed envelope: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid webhook payload"})
			return
		}
		log.Printf("webhook: signature rejected: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid webhook signature"})
		return
	}

	if err := p.webhookService.HandleEvent(c.Request.Context(), event); err != nil {
		log.Printf("webhook: processing event %s (%s) failed: %v", event.ID, event.Type, err)
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
