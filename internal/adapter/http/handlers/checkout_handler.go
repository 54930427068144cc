package handlers

import (
	"errors"
	"log"
	"net/http"

	request "libroconecta/internal/adapter/http/dto/request"
	response "libroconecta/internal/adapter/http/dto/response"
	"libroconecta/internal/usecase"
	"libroconecta/pkg"

	"github.com/gin-gonic/gin"
)

// CheckoutHandler handles HTTP requests that start purchase attempts.

type CheckoutHandler struct {
	usecase usecase.ICheckoutUseCase
}

func NewCheckoutHandler(uc usecase.ICheckoutUseCase) *CheckoutHandler {
	return &CheckoutHandler{usecase: uc}
}

// CreatePreference creates a transaction record and a hosted-checkout
// preference for the item in the path.
func (h *CheckoutHandler) CreatePreference(c *gin.Context) {
	itemID := c.Param("item_id")
	log.Printf("[payment][handler] preference start item_id=%s", itemID)

	var payload request.CheckoutCreateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[payment][handler] invalid preference payload item_id=%s err=%v", itemID, err)
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	result, err := h.usecase.CreatePreference(c.Request.Context(), usecase.CheckoutInput{
		ItemID:   itemID,
		BuyerID:  payload.BuyerID,
		SellerID: payload.SellerID,
		Title:    payload.Title,
		Amount:   payload.Amount,
		Currency: payload.Currency,
	})
	if err != nil {
		log.Printf("[payment][handler] preference failed item_id=%s err=%v", itemID, err)
		appErr := mapCheckoutError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] preference success item_id=%s reference=%s preference_id=%s", itemID, result.Transaction.Reference, result.PreferenceID)

	c.JSON(http.StatusCreated, response.PreferenceResponse{
		PreferenceID: result.PreferenceID,
		InitPoint:    result.InitPoint,
		Reference:    result.Transaction.Reference,
	})
}

// CreateDirectPayment runs the non-hosted flow from a raw provider payload.
func (h *CheckoutHandler) CreateDirectPayment(c *gin.Context) {
	itemID := c.Param("item_id")
	log.Printf("[payment][handler] direct payment start item_id=%s", itemID)

	var payload request.DirectPaymentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[payment][handler] invalid direct payload item_id=%s err=%v", itemID, err)
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	created, err := h.usecase.CreateDirectPayment(c.Request.Context(), usecase.CheckoutInput{
		ItemID:   itemID,
		BuyerID:  payload.BuyerID,
		SellerID: payload.SellerID,
		Title:    payload.Title,
		Amount:   payload.Amount,
		Currency: payload.Currency,
	}, payload.GatewayPayload)
	if err != nil {
		log.Printf("[payment][handler] direct payment failed item_id=%s err=%v", itemID, err)
		appErr := mapCheckoutError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] direct payment success item_id=%s reference=%s status=%s", itemID, created.Reference, created.Status)

	c.JSON(http.StatusOK, response.FromPaymentTransaction(created))
}

func mapCheckoutError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidItemID),
		errors.Is(err, usecase.ErrInvalidBuyerID),
		errors.Is(err, usecase.ErrInvalidAmount),
		errors.Is(err, usecase.ErrInvalidGatewayPayload):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
