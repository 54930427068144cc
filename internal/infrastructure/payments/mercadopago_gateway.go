package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"libroconecta/internal/domain/entities"
	"libroconecta/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")
var ErrPaymentNotFoundAtGateway = errors.New("payment not found at gateway")

// Truth-fetch calls carry their own short deadline and one retry; a gateway
// that stays unreachable surfaces as an error, never as a fabricated status.
const (
	gatewayCallTimeout = 5 * time.Second
	gatewayRetryDelay  = 500 * time.Millisecond
)

// MercadoPagoGateway wraps the Mercado Pago SDK clients behind
// interfaces.IPaymentGateway. It is constructed once and injected into the
// usecases; no package-level client state.
type MercadoPagoGateway struct {
	paymentClient    payment.Client
	preferenceClient preference.Client
	mockMode         bool
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(accessToken string) (*MercadoPagoGateway, error) {
	if isPaymentGatewayMockEnabled() {
		log.Printf("[payment][gateway] mock mode enabled")
		return &MercadoPagoGateway{mockMode: true}, nil
	}

	if accessToken == "" {
		log.Printf("[payment][gateway] missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		log.Printf("[payment][gateway] failed creating sdk config err=%v", err)
		return nil, err
	}
	log.Printf("[payment][gateway] Mercado Pago client initialized")

	return &MercadoPagoGateway{
		paymentClient:    payment.NewClient(cfg),
		preferenceClient: preference.NewClient(cfg),
	}, nil
}

// CreatePreference registers a hosted-checkout preference carrying our
// external_reference, back URLs and webhook URL.
func (g *MercadoPagoGateway) CreatePreference(ctx context.Context, pref interfaces.CheckoutPreference) (interfaces.CreatedPreference, error) {
	if g != nil && g.mockMode {
		id := "mock-pref-" + strconv.FormatInt(time.Now().UTC().UnixNano(), 10)
		log.Printf("[payment][gateway] mock preference created preference_id=%s reference=%s", id, pref.Reference)
		return interfaces.CreatedPreference{
			PreferenceID: id,
			InitPoint:    "https://sandbox.mercadopago.local/checkout?pref_id=" + id,
		}, nil
	}

	if g == nil || g.preferenceClient == nil {
		log.Printf("[payment][gateway] gateway not configured")
		return interfaces.CreatedPreference{}, ErrMercadoPagoGatewayNotConfigured
	}
	log.Printf("[payment][gateway] preference create start reference=%s item_id=%s amount=%.2f", pref.Reference, pref.ItemID, pref.Amount)

	req := preference.Request{
		Items: []preference.ItemRequest{
			{
				ID:         pref.ItemID,
				Title:      pref.Title,
				Quantity:   1,
				UnitPrice:  pref.Amount,
				CurrencyID: pref.Currency,
			},
		},
		ExternalReference: pref.Reference,
		NotificationURL:   pref.NotificationURL,
		BackURLs: &preference.BackURLsRequest{
			Success: pref.SuccessURL,
			Pending: pref.PendingURL,
			Failure: pref.FailureURL,
		},
		AutoReturn: "approved",
	}

	callCtx, cancel := context.WithTimeout(ctx, gatewayCallTimeout)
	defer cancel()

	resp, err := g.preferenceClient.Create(callCtx, req)
	if err != nil {
		log.Printf("[payment][gateway] preference create failed reference=%s err=%v", pref.Reference, err)
		return interfaces.CreatedPreference{}, err
	}
	log.Printf("[payment][gateway] preference create success reference=%s preference_id=%s", pref.Reference, resp.ID)

	return interfaces.CreatedPreference{PreferenceID: resp.ID, InitPoint: resp.InitPoint}, nil
}

// GetPaymentByID fetches the authoritative state of a payment. One retry on
// failure; both attempts carry the short gateway deadline.
func (g *MercadoPagoGateway) GetPaymentByID(ctx context.Context, paymentID string) (interfaces.PaymentDetails, error) {
	if g != nil && g.mockMode {
		log.Printf("[payment][gateway] mock get payment payment_id=%s", paymentID)
		return mockPaymentDetails(paymentID), nil
	}

	if g == nil || g.paymentClient == nil {
		log.Printf("[payment][gateway] gateway not configured")
		return interfaces.PaymentDetails{}, ErrMercadoPagoGatewayNotConfigured
	}

	numericID, err := strconv.Atoi(strings.TrimSpace(paymentID))
	if err != nil {
		log.Printf("[payment][gateway] non-numeric payment id payment_id=%q", paymentID)
		return interfaces.PaymentDetails{}, fmt.Errorf("invalid gateway payment id %q: %w", paymentID, err)
	}

	resp, err := g.getWithRetry(ctx, numericID)
	if err != nil {
		log.Printf("[payment][gateway] get payment failed payment_id=%s err=%v", paymentID, err)
		return interfaces.PaymentDetails{}, err
	}
	log.Printf("[payment][gateway] get payment success payment_id=%s provider_status=%s", paymentID, resp.Status)

	return toPaymentDetails(resp)
}

func (g *MercadoPagoGateway) getWithRetry(ctx context.Context, id int) (*payment.Response, error) {
	callCtx, cancel := context.WithTimeout(ctx, gatewayCallTimeout)
	resp, err := g.paymentClient.Get(callCtx, id)
	cancel()
	if err == nil {
		return resp, nil
	}
	log.Printf("[payment][gateway] get payment transient failure payment_id=%d err=%v; retrying once", id, err)

	select {
	case <-time.After(gatewayRetryDelay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	callCtx, cancel = context.WithTimeout(ctx, gatewayCallTimeout)
	defer cancel()
	return g.paymentClient.Get(callCtx, id)
}

// FindPaymentByReference searches the provider for payments carrying our
// external_reference. Used by the redirect resolver when the browser came
// back without a payment_id. The newest result wins.
func (g *MercadoPagoGateway) FindPaymentByReference(ctx context.Context, reference string) (interfaces.PaymentDetails, error) {
	if g != nil && g.mockMode {
		log.Printf("[payment][gateway] mock search payment reference=%s", reference)
		d := mockPaymentDetails(strconv.FormatInt(time.Now().UTC().UnixNano(), 10))
		d.ExternalReference = reference
		return d, nil
	}

	if g == nil || g.paymentClient == nil {
		log.Printf("[payment][gateway] gateway not configured")
		return interfaces.PaymentDetails{}, ErrMercadoPagoGatewayNotConfigured
	}
	log.Printf("[payment][gateway] search payment start reference=%s", reference)

	callCtx, cancel := context.WithTimeout(ctx, gatewayCallTimeout)
	defer cancel()

	resp, err := g.paymentClient.Search(callCtx, payment.SearchRequest{
		Limit: 1,
		Filters: map[string]string{
			"external_reference": reference,
			"sort":               "date_created",
			"criteria":           "desc",
		},
	})
	if err != nil {
		log.Printf("[payment][gateway] search payment failed reference=%s err=%v", reference, err)
		return interfaces.PaymentDetails{}, err
	}
	if resp == nil || len(resp.Results) == 0 {
		log.Printf("[payment][gateway] search payment empty reference=%s", reference)
		return interfaces.PaymentDetails{}, ErrPaymentNotFoundAtGateway
	}
	log.Printf("[payment][gateway] search payment success reference=%s provider_payment_id=%d", reference, resp.Results[0].ID)

	return toPaymentDetails(&resp.Results[0])
}

// CreatePayment issues a direct payment from a raw provider payload. Kept for
// the non-hosted flow; the payload is already validated/enriched upstream.
func (g *MercadoPagoGateway) CreatePayment(ctx context.Context, requestPayload json.RawMessage) (providerPaymentID string, providerStatus string, providerResponse json.RawMessage, err error) {
	if g != nil && g.mockMode {
		log.Printf("[payment][gateway] mock create start payload_len=%d", len(requestPayload))

		resp := map[string]any{}
		if len(requestPayload) > 0 && json.Valid(requestPayload) {
			if err := json.Unmarshal(requestPayload, &resp); err != nil {
				resp = map[string]any{"request_payload_raw": string(requestPayload)}
			}
		}

		id := strconv.FormatInt(time.Now().UTC().UnixNano(), 10)
		now := time.Now().UTC().Format(time.RFC3339Nano)
		resp["id"] = id
		resp["status"] = "approved"
		resp["status_detail"] = "accredited"
		if _, ok := resp["date_created"]; !ok {
			resp["date_created"] = now
		}
		if _, ok := resp["date_approved"]; !ok {
			resp["date_approved"] = now
		}

		b, err := json.Marshal(resp)
		if err != nil {
			log.Printf("[payment][gateway] mock response marshal failed err=%v", err)
			return "", "", nil, err
		}

		log.Printf("[payment][gateway] mock create success provider_payment_id=%s provider_status=approved", id)
		return id, "approved", b, nil
	}

	if g == nil || g.paymentClient == nil {
		log.Printf("[payment][gateway] gateway not configured")
		return "", "", nil, ErrMercadoPagoGatewayNotConfigured
	}
	log.Printf("[payment][gateway] create start payload_len=%d", len(requestPayload))

	var req payment.Request
	if err := json.Unmarshal(requestPayload, &req); err != nil {
		log.Printf("[payment][gateway] payload unmarshal failed err=%v", err)
		return "", "", nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, gatewayCallTimeout)
	defer cancel()

	resp, err := g.paymentClient.Create(callCtx, req)
	if err != nil {
		log.Printf("[payment][gateway] sdk create failed err=%v", err)
		return "", "", nil, err
	}

	b, err := json.Marshal(resp)
	if err != nil {
		log.Printf("[payment][gateway] response marshal failed err=%v", err)
		return "", "", nil, err
	}
	log.Printf("[payment][gateway] create success provider_payment_id=%d provider_status=%s", resp.ID, resp.Status)

	return fmt.Sprintf("%d", resp.ID), resp.Status, b, nil
}

func toPaymentDetails(resp *payment.Response) (interfaces.PaymentDetails, error) {
	raw, err := json.Marshal(resp)
	if err != nil {
		log.Printf("[payment][gateway] response marshal failed err=%v", err)
		return interfaces.PaymentDetails{}, err
	}
	return interfaces.PaymentDetails{
		ID:                fmt.Sprintf("%d", resp.ID),
		Status:            entities.NormalizeStatus(resp.Status),
		ProviderStatus:    resp.Status,
		StatusDetail:      resp.StatusDetail,
		ExternalReference: resp.ExternalReference,
		Amount:            resp.TransactionAmount,
		Currency:          resp.CurrencyID,
		Raw:               raw,
	}, nil
}

func mockPaymentDetails(id string) interfaces.PaymentDetails {
	raw, _ := json.Marshal(map[string]any{
		"id":            id,
		"status":        "approved",
		"status_detail": "accredited",
		"date_approved": time.Now().UTC().Format(time.RFC3339Nano),
	})
	return interfaces.PaymentDetails{
		ID:             id,
		Status:         entities.StatusApproved,
		ProviderStatus: "approved",
		StatusDetail:   "accredited",
		Raw:            raw,
	}
}

func isPaymentGatewayMockEnabled() bool {
	for _, key := range []string{"PAYMENT_GATEWAY_MOCK", "MERCADOPAGO_MOCK"} {
		v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
		switch v {
		case "1", "true", "yes", "on", "mock":
			return true
		}
	}
	return false
}
