package handlers

import (
	"errors"
	"log"
	"net/http"

	response "libroconecta/internal/adapter/http/dto/response"
	"libroconecta/internal/usecase"
	"libroconecta/pkg"

	"github.com/gin-gonic/gin"
)

// StatusHandler serves the read side: the poller's redirect-status
// projection and the plain record reads.

type StatusHandler struct {
	usecase usecase.IStatusUseCase
}

func NewStatusHandler(uc usecase.IStatusUseCase) *StatusHandler {
	return &StatusHandler{usecase: uc}
}

// RedirectStatus returns the ready/not-ready projection polled by the
// frontend. `?by_reference=true` switches the lookup to the external
// reference.
func (h *StatusHandler) RedirectStatus(c *gin.Context) {
	id := c.Param("id")
	byReference := c.Query("by_reference") == "true" || c.Query("by_reference") == "1"

	view, err := h.usecase.RedirectStatus(c.Request.Context(), id, byReference)
	if err != nil {
		log.Printf("[payment][status] redirect-status failed id=%s by_reference=%v err=%v", id, byReference, err)
		appErr := mapStatusError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.RedirectStatusResponse{
		Ready:       view.Ready,
		Status:      string(view.Status),
		Reference:   view.Reference,
		RedirectURL: view.RedirectURL,
	})
}

// GetStatus returns one transaction record.
func (h *StatusHandler) GetStatus(c *gin.Context) {
	id := c.Param("id")

	tx, err := h.usecase.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("[payment][status] get failed id=%s err=%v", id, err)
		appErr := mapStatusError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPaymentTransaction(tx))
}

// ListByBuyer returns every purchase attempt of one buyer.
func (h *StatusHandler) ListByBuyer(c *gin.Context) {
	buyerID := c.Param("buyer_id")

	txs, err := h.usecase.ListByBuyerID(c.Request.Context(), buyerID)
	if err != nil {
		log.Printf("[payment][status] list failed buyer_id=%s err=%v", buyerID, err)
		appErr := mapStatusError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPaymentTransactions(txs))
}

func mapStatusError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidTransactionID), errors.Is(err, usecase.ErrInvalidBuyerID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrTransactionNotFound):
		return pkg.NewDomainErrorSimple("TRANSACTION_NOT_FOUND", "Payment transaction not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
