package interfaces

import (
	"context"
	"encoding/json"

	"libroconecta/internal/domain/entities"
)

// CheckoutPreference describes the hosted-checkout preference to create for a
// purchase attempt. Reference is the merchant-generated external_reference
// that correlates gateway callbacks back to the local record.
type CheckoutPreference struct {
	Reference       string
	ItemID          string
	Title           string
	Amount          float64
	Currency        string
	NotificationURL string
	SuccessURL      string
	PendingURL      string
	FailureURL      string
}

// CreatedPreference is the provider-side result: the preference id and the
// hosted-checkout URL the buyer is redirected to.
type CreatedPreference struct {
	PreferenceID string
	InitPoint    string
}

// PaymentDetails is the authoritative view of a payment as fetched from the
// provider's API. ProviderStatus keeps the raw status string; Status is the
// normalized one this service tracks. Raw keeps the full payload for audit.
type PaymentDetails struct {
	ID                string
	Status            entities.PaymentStatus
	ProviderStatus    string
	StatusDetail      string
	ExternalReference string
	Amount            float64
	Currency          string
	Raw               json.RawMessage
}

// IPaymentGateway abstracts the external payment provider (Mercado Pago).
//
// GetPaymentByID is the truth-fetch used by reconciliation: webhook bodies and
// redirect query strings are never trusted beyond the payment id they carry.
type IPaymentGateway interface {
	CreatePreference(ctx context.Context, pref CheckoutPreference) (CreatedPreference, error)
	GetPaymentByID(ctx context.Context, paymentID string) (PaymentDetails, error)
	FindPaymentByReference(ctx context.Context, reference string) (PaymentDetails, error)
	CreatePayment(ctx context.Context, requestPayload json.RawMessage) (providerPaymentID string, providerStatus string, providerResponse json.RawMessage, err error)
}
