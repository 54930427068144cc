package handlers

import (
	"log"
	"net/http"

	"libroconecta/internal/usecase"
	"libroconecta/pkg"

	"github.com/gin-gonic/gin"
)

// ReturnHandler resolves the buyer's browser coming back from hosted
// checkout. The gateway populates an inconsistent subset of query parameters,
// and the status fields among them are client-supplied, so only the lookup
// keys are forwarded; the buyer always ends up on the frontend result page
// with normalized values.

type ReturnHandler struct {
	usecase usecase.IReconciliationUseCase
}

func NewReturnHandler(uc usecase.IReconciliationUseCase) *ReturnHandler {
	return &ReturnHandler{usecase: uc}
}

func (h *ReturnHandler) Resolve(c *gin.Context) {
	outcome := c.Param("outcome")
	switch outcome {
	case "success", "failure", "pending":
	default:
		appErr := pkg.NewDomainErrorSimple("UNKNOWN_OUTCOME", "Unknown return outcome", http.StatusNotFound)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	paymentID := c.Query("payment_id")
	if paymentID == "" {
		// Older checkout versions name it collection_id.
		paymentID = c.Query("collection_id")
	}
	reference := c.Query("external_reference")
	log.Printf("[payment][return] outcome=%s payment_id=%q reference=%q merchant_order_id=%q", outcome, paymentID, reference, c.Query("merchant_order_id"))

	result, err := h.usecase.ResolveReturn(c.Request.Context(), outcome, paymentID, reference)
	if err != nil {
		log.Printf("[payment][return] resolve failed outcome=%s err=%v", outcome, err)
		appErr := pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][return] redirecting reference=%s status=%s", result.Reference, result.Status)

	c.Redirect(http.StatusFound, result.RedirectURL)
}
