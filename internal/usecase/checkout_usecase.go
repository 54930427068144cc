package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"libroconecta/internal/domain/entities"
	"libroconecta/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrInvalidItemID         = errors.New("invalid item_id")
	ErrInvalidBuyerID        = errors.New("invalid buyer_id")
	ErrInvalidAmount         = errors.New("invalid amount")
	ErrInvalidGatewayPayload = errors.New("invalid gateway payload")
)

const defaultCurrency = "CLP"

// CheckoutInput is the purchase context captured at preference-creation time.
// Everything here is immutable on the record afterwards.
type CheckoutInput struct {
	ItemID   string
	BuyerID  string
	SellerID string
	Title    string
	Amount   float64
	Currency string
}

// PreferenceResult pairs the stored transaction with the provider-side
// preference the buyer is sent to.
type PreferenceResult struct {
	Transaction  entities.PaymentTransaction
	PreferenceID string
	InitPoint    string
}

// ICheckoutUseCase starts purchase attempts: hosted checkout via a gateway
// preference, or a direct payment from a raw provider payload.

type ICheckoutUseCase interface {
	CreatePreference(ctx context.Context, in CheckoutInput) (PreferenceResult, error)
	CreateDirectPayment(ctx context.Context, in CheckoutInput, gatewayPayload json.RawMessage) (entities.PaymentTransaction, error)
}

type CheckoutUseCase struct {
	repo    interfaces.IPaymentTransactionRepository
	gateway interfaces.IPaymentGateway
	urls    URLConfig
}

var _ ICheckoutUseCase = (*CheckoutUseCase)(nil)

func NewCheckoutUseCase(repo interfaces.IPaymentTransactionRepository, gateway interfaces.IPaymentGateway, urls URLConfig) *CheckoutUseCase {
	return &CheckoutUseCase{repo: repo, gateway: gateway, urls: urls}
}

// newReference mints the externally visible correlation key. A UUID keeps it
// unguessable; the prefix makes our references recognizable in provider
// dashboards.
func newReference() string {
	return "LC-" + uuid.NewString()
}

// CreatePreference persists a pending transaction record and registers the
// hosted-checkout preference carrying its reference. The record exists before
// the preference so a near-instant webhook already finds it.
func (u *CheckoutUseCase) CreatePreference(ctx context.Context, in CheckoutInput) (PreferenceResult, error) {
	if err := u.validate(&in); err != nil {
		return PreferenceResult{}, err
	}
	log.Printf("[payment][checkout] preference start item_id=%s buyer_id=%s amount=%.2f", in.ItemID, in.BuyerID, in.Amount)

	tx, err := u.createPending(ctx, in)
	if err != nil {
		log.Printf("[payment][checkout] record create failed item_id=%s err=%v", in.ItemID, err)
		return PreferenceResult{}, err
	}

	created, err := u.gateway.CreatePreference(ctx, interfaces.CheckoutPreference{
		Reference:       tx.Reference,
		ItemID:          in.ItemID,
		Title:           in.Title,
		Amount:          in.Amount,
		Currency:        in.Currency,
		NotificationURL: u.urls.WebhookURL(),
		SuccessURL:      u.urls.ReturnURL("success"),
		PendingURL:      u.urls.ReturnURL("pending"),
		FailureURL:      u.urls.ReturnURL("failure"),
	})
	if err != nil {
		// The pending record stays behind; it reads as an abandoned attempt.
		log.Printf("[payment][checkout] preference create failed reference=%s err=%v", tx.Reference, err)
		return PreferenceResult{}, err
	}
	log.Printf("[payment][checkout] preference success reference=%s preference_id=%s", tx.Reference, created.PreferenceID)

	return PreferenceResult{Transaction: tx, PreferenceID: created.PreferenceID, InitPoint: created.InitPoint}, nil
}

// CreateDirectPayment runs the non-hosted flow: enrich the raw provider
// payload with our reference and the server-side amount, create the payment,
// and persist the outcome through the same monotonic apply path the webhook
// uses.
func (u *CheckoutUseCase) CreateDirectPayment(ctx context.Context, in CheckoutInput, gatewayPayload json.RawMessage) (entities.PaymentTransaction, error) {
	if err := u.validate(&in); err != nil {
		return entities.PaymentTransaction{}, err
	}
	if len(gatewayPayload) == 0 || !json.Valid(gatewayPayload) {
		log.Printf("[payment][checkout] invalid payload item_id=%s", in.ItemID)
		return entities.PaymentTransaction{}, ErrInvalidGatewayPayload
	}

	var reqMap map[string]any
	if err := json.Unmarshal(gatewayPayload, &reqMap); err != nil {
		log.Printf("[payment][checkout] payload unmarshal failed item_id=%s err=%v", in.ItemID, err)
		return entities.PaymentTransaction{}, ErrInvalidGatewayPayload
	}
	if !hasNonEmptyString(reqMap, "payment_method_id") {
		log.Printf("[payment][checkout] missing payment_method_id item_id=%s", in.ItemID)
		return entities.PaymentTransaction{}, ErrInvalidGatewayPayload
	}

	tx, err := u.createPending(ctx, in)
	if err != nil {
		log.Printf("[payment][checkout] record create failed item_id=%s err=%v", in.ItemID, err)
		return entities.PaymentTransaction{}, err
	}

	// Linkage and amount are owned by this service, not the caller.
	reqMap["external_reference"] = tx.Reference
	reqMap["transaction_amount"] = in.Amount
	if _, ok := reqMap["description"]; !ok {
		reqMap["description"] = fmt.Sprintf("LibroConecta item %s", in.ItemID)
	}
	enriched, err := json.Marshal(reqMap)
	if err != nil {
		return entities.PaymentTransaction{}, err
	}

	providerPaymentID, providerStatus, providerResp, err := u.gateway.CreatePayment(ctx, enriched)
	if err != nil {
		log.Printf("[payment][checkout] direct payment failed reference=%s err=%v", tx.Reference, err)
		return entities.PaymentTransaction{}, err
	}
	log.Printf("[payment][checkout] direct payment success reference=%s provider_payment_id=%s provider_status=%s", tx.Reference, providerPaymentID, providerStatus)

	status := entities.NormalizeStatus(providerStatus)
	updated, err := u.repo.UpdateStatus(ctx, tx.ID, tx.Status, status, providerPaymentID, providerResp)
	if err != nil {
		log.Printf("[payment][checkout] status write failed reference=%s err=%v", tx.Reference, err)
		return entities.PaymentTransaction{}, err
	}
	return updated, nil
}

func (u *CheckoutUseCase) validate(in *CheckoutInput) error {
	in.ItemID = strings.TrimSpace(in.ItemID)
	in.BuyerID = strings.TrimSpace(in.BuyerID)
	in.SellerID = strings.TrimSpace(in.SellerID)
	in.Title = strings.TrimSpace(in.Title)
	in.Currency = strings.ToUpper(strings.TrimSpace(in.Currency))

	if in.ItemID == "" {
		return ErrInvalidItemID
	}
	if in.BuyerID == "" {
		return ErrInvalidBuyerID
	}
	if in.Amount <= 0 {
		return ErrInvalidAmount
	}
	if in.Currency == "" {
		in.Currency = defaultCurrency
	}
	if in.Title == "" {
		in.Title = "LibroConecta item " + in.ItemID
	}
	if u.repo == nil || u.gateway == nil {
		return errors.New("checkout dependencies not configured")
	}
	return nil
}

func (u *CheckoutUseCase) createPending(ctx context.Context, in CheckoutInput) (entities.PaymentTransaction, error) {
	now := time.Now().UTC()
	return u.repo.Create(ctx, entities.PaymentTransaction{
		ID:        uuid.NewString(),
		Reference: newReference(),
		Status:    entities.StatusPending,
		Amount:    in.Amount,
		Currency:  in.Currency,
		ItemID:    in.ItemID,
		BuyerID:   in.BuyerID,
		SellerID:  in.SellerID,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func hasNonEmptyString(m map[string]any, key string) bool {
	v, ok := m[key]
	if !ok {
		return false
	}
	s, ok := v.(string)
	if !ok {
		return false
	}
	return strings.TrimSpace(s) != ""
}
