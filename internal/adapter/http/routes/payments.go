package routes

import (
	"libroconecta/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathPayments = "/payments"
)

func addPaymentRoutes(rg *gin.RouterGroup, checkoutHandler *handlers.CheckoutHandler, webhookHandler *handlers.WebhookHandler, returnHandler *handlers.ReturnHandler, statusHandler *handlers.StatusHandler) {
	payments := rg.Group(PathPayments)
	{
		payments.POST("/preferences/:item_id", checkoutHandler.CreatePreference)
		payments.POST("/direct/:item_id", checkoutHandler.CreateDirectPayment)

		// The gateway mostly POSTs notifications but is known to probe with GET.
		payments.POST("/webhook", webhookHandler.Handle)
		payments.GET("/webhook", webhookHandler.Handle)

		payments.GET("/return/:outcome", returnHandler.Resolve)

		payments.GET("/user/:buyer_id", statusHandler.ListByBuyer)
		payments.GET("/:id/redirect-status", statusHandler.RedirectStatus)
		payments.GET("/:id/status", statusHandler.GetStatus)
	}
}
