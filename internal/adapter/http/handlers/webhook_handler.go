package handlers

import (
	"log"
	"net/http"

	request "libroconecta/internal/adapter/http/dto/request"
	"libroconecta/internal/usecase"

	"github.com/gin-gonic/gin"
)

// WebhookHandler receives gateway-initiated payment notifications.
//
// The gateway treats any 5xx as "retry forever", so every recognized delivery
// is acknowledged with 200 no matter what happens downstream; failures are
// logged with full context instead of propagated.

type WebhookHandler struct {
	usecase usecase.IReconciliationUseCase
}

func NewWebhookHandler(uc usecase.IReconciliationUseCase) *WebhookHandler {
	return &WebhookHandler{usecase: uc}
}

// Handle accepts POST (and GET, for gateway quirks) deliveries in any of the
// known shapes: JSON body, form body, or query-string only.
func (h *WebhookHandler) Handle(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		log.Printf("[payment][webhook] body read failed err=%v", err)
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	n, err := request.ParseWebhookNotification(c.ContentType(), raw, c.Request.URL.Query())
	if err != nil {
		log.Printf("[payment][webhook] no payment id in delivery shape=%s topic=%q body_len=%d", n.Shape, n.Topic, len(raw))
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}
	if !n.IsPaymentTopic() {
		log.Printf("[payment][webhook] non-payment topic ignored shape=%s topic=%q payment_id=%s", n.Shape, n.Topic, n.PaymentID)
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}
	log.Printf("[payment][webhook] delivery accepted shape=%s topic=%q payment_id=%s", n.Shape, n.Topic, n.PaymentID)

	if _, err := h.usecase.ProcessNotification(c.Request.Context(), n.PaymentID); err != nil {
		// Acknowledged anyway; reconciliation already logged the details and
		// the record is marked for manual follow-up where applicable.
		log.Printf("[payment][webhook] reconciliation failed payment_id=%s err=%v", n.PaymentID, err)
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
