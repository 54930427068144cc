package request

import "encoding/json"

// CheckoutCreateRequest is the payload for preference creation. The item id
// travels in the path; everything else comes from the body.
type CheckoutCreateRequest struct {
	BuyerID  string  `json:"buyer_id"`
	SellerID string  `json:"seller_id"`
	Title    string  `json:"title"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// DirectPaymentRequest is the payload for the non-hosted flow. The purchase
// context mirrors CheckoutCreateRequest; `gateway_payload` is forwarded to
// the provider as-is (raw JSON) to support varying Mercado Pago schemas.
type DirectPaymentRequest struct {
	BuyerID        string          `json:"buyer_id"`
	SellerID       string          `json:"seller_id"`
	Title          string          `json:"title"`
	Amount         float64         `json:"amount"`
	Currency       string          `json:"currency"`
	GatewayPayload json.RawMessage `json:"gateway_payload"`
}
