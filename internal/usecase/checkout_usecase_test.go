package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"libroconecta/internal/domain/entities"
	"libroconecta/internal/usecase/interfaces"
	mock_interfaces "libroconecta/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestCheckoutUseCase_CreatePreference_Validations(t *testing.T) {
	cases := []struct {
		name string
		in   CheckoutInput
		want error
	}{
		{name: "empty item id", in: CheckoutInput{ItemID: " ", BuyerID: "b1", Amount: 10}, want: ErrInvalidItemID},
		{name: "empty buyer id", in: CheckoutInput{ItemID: "book-1", BuyerID: "", Amount: 10}, want: ErrInvalidBuyerID},
		{name: "zero amount", in: CheckoutInput{ItemID: "book-1", BuyerID: "b1", Amount: 0}, want: ErrInvalidAmount},
		{name: "negative amount", in: CheckoutInput{ItemID: "book-1", BuyerID: "b1", Amount: -5}, want: ErrInvalidAmount},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := NewCheckoutUseCase(nil, nil, testURLs)
			_, err := uc.CreatePreference(context.Background(), tc.in)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	t.Run("dependencies not configured", func(t *testing.T) {
		uc := NewCheckoutUseCase(nil, nil, testURLs)
		_, err := uc.CreatePreference(context.Background(), CheckoutInput{ItemID: "book-1", BuyerID: "b1", Amount: 10})
		if err == nil || err.Error() != "checkout dependencies not configured" {
			t.Fatalf("expected dependencies error, got %v", err)
		}
	})
}

func TestCheckoutUseCase_CreatePreference(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentTransactionRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewCheckoutUseCase(repo, gateway, testURLs)

		repo.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.PaymentTransaction{})).DoAndReturn(
			func(_ context.Context, tx entities.PaymentTransaction) (entities.PaymentTransaction, error) {
				if tx.Status != entities.StatusPending {
					t.Fatalf("record must start pending, got %s", tx.Status)
				}
				if !strings.HasPrefix(tx.Reference, "LC-") {
					t.Fatalf("unexpected reference: %s", tx.Reference)
				}
				if tx.ItemID != "book-1" || tx.BuyerID != "b1" || tx.SellerID != "s1" {
					t.Fatalf("purchase context not captured: %+v", tx)
				}
				if tx.Currency != "CLP" {
					t.Fatalf("expected default currency, got %s", tx.Currency)
				}
				if tx.CreatedAt.IsZero() {
					t.Fatalf("created_at must be set")
				}
				return tx, nil
			},
		)
		gateway.EXPECT().CreatePreference(gomock.Any(), gomock.AssignableToTypeOf(interfaces.CheckoutPreference{})).DoAndReturn(
			func(_ context.Context, pref interfaces.CheckoutPreference) (interfaces.CreatedPreference, error) {
				if !strings.HasPrefix(pref.Reference, "LC-") {
					t.Fatalf("preference must carry the record reference, got %s", pref.Reference)
				}
				if pref.NotificationURL != "https://api.test/v1/payments/webhook" {
					t.Fatalf("unexpected notification url: %s", pref.NotificationURL)
				}
				if pref.SuccessURL != "https://api.test/v1/payments/return/success" {
					t.Fatalf("unexpected success url: %s", pref.SuccessURL)
				}
				if pref.FailureURL != "https://api.test/v1/payments/return/failure" {
					t.Fatalf("unexpected failure url: %s", pref.FailureURL)
				}
				return interfaces.CreatedPreference{PreferenceID: "pref-1", InitPoint: "https://mp.test/init"}, nil
			},
		)

		res, err := uc.CreatePreference(context.Background(), CheckoutInput{ItemID: "book-1", BuyerID: "b1", SellerID: "s1", Amount: 12990})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.PreferenceID != "pref-1" || res.InitPoint != "https://mp.test/init" {
			t.Fatalf("unexpected result: %+v", res)
		}
		if res.Transaction.Reference == "" {
			t.Fatalf("transaction must be returned")
		}
	})

	t.Run("record create error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentTransactionRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewCheckoutUseCase(repo, gateway, testURLs)

		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.PaymentTransaction{}, errors.New("db"))

		_, err := uc.CreatePreference(context.Background(), CheckoutInput{ItemID: "book-1", BuyerID: "b1", Amount: 10})
		if err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})

	t.Run("gateway error leaves pending record behind", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentTransactionRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewCheckoutUseCase(repo, gateway, testURLs)

		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, tx entities.PaymentTransaction) (entities.PaymentTransaction, error) {
				return tx, nil
			},
		)
		gateway.EXPECT().CreatePreference(gomock.Any(), gomock.Any()).Return(interfaces.CreatedPreference{}, errors.New("mp down"))

		_, err := uc.CreatePreference(context.Background(), CheckoutInput{ItemID: "book-1", BuyerID: "b1", Amount: 10})
		if err == nil || err.Error() != "mp down" {
			t.Fatalf("expected mp down, got %v", err)
		}
	})
}

func TestCheckoutUseCase_CreateDirectPayment(t *testing.T) {
	validInput := CheckoutInput{ItemID: "book-1", BuyerID: "b1", Amount: 42.5, Currency: "clp"}

	t.Run("empty payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentTransactionRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewCheckoutUseCase(repo, gateway, testURLs)

		_, err := uc.CreateDirectPayment(context.Background(), validInput, nil)
		if !errors.Is(err, ErrInvalidGatewayPayload) {
			t.Fatalf("expected ErrInvalidGatewayPayload, got %v", err)
		}
	})

	t.Run("invalid json payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentTransactionRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewCheckoutUseCase(repo, gateway, testURLs)

		_, err := uc.CreateDirectPayment(context.Background(), validInput, json.RawMessage(`{`))
		if !errors.Is(err, ErrInvalidGatewayPayload) {
			t.Fatalf("expected ErrInvalidGatewayPayload, got %v", err)
		}
	})

	t.Run("missing payment_method_id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentTransactionRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewCheckoutUseCase(repo, gateway, testURLs)

		_, err := uc.CreateDirectPayment(context.Background(), validInput, json.RawMessage(`{"payer":{"email":"x@test.com"}}`))
		if !errors.Is(err, ErrInvalidGatewayPayload) {
			t.Fatalf("expected ErrInvalidGatewayPayload, got %v", err)
		}
	})

	t.Run("success enriches payload and applies provider status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentTransactionRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewCheckoutUseCase(repo, gateway, testURLs)

		var reference string
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, tx entities.PaymentTransaction) (entities.PaymentTransaction, error) {
				reference = tx.Reference
				return tx, nil
			},
		)
		gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, payload json.RawMessage) (string, string, json.RawMessage, error) {
				var body map[string]any
				if err := json.Unmarshal(payload, &body); err != nil {
					t.Fatalf("payload should be valid json: %v", err)
				}
				if body["external_reference"] != reference {
					t.Fatalf("external_reference not set to record reference")
				}
				if body["transaction_amount"] != float64(42.5) {
					t.Fatalf("amount must come from the server side")
				}
				if body["description"] != "LibroConecta item book-1" {
					t.Fatalf("description not defaulted: %v", body["description"])
				}
				return "999", "approved", json.RawMessage(`{"id":999}`), nil
			},
		)
		repo.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), entities.StatusPending, entities.StatusApproved, "999", json.RawMessage(`{"id":999}`)).DoAndReturn(
			func(_ context.Context, id string, _, next entities.PaymentStatus, externalID string, _ json.RawMessage) (entities.PaymentTransaction, error) {
				return entities.PaymentTransaction{ID: id, Reference: reference, Status: next, ExternalPaymentID: externalID}, nil
			},
		)

		res, err := uc.CreateDirectPayment(context.Background(), validInput, json.RawMessage(`{"payment_method_id":"pix"}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Status != entities.StatusApproved || res.ExternalPaymentID != "999" {
			t.Fatalf("unexpected result: %+v", res)
		}
	})

	t.Run("gateway error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentTransactionRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewCheckoutUseCase(repo, gateway, testURLs)

		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, tx entities.PaymentTransaction) (entities.PaymentTransaction, error) {
				return tx, nil
			},
		)
		gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return("", "", nil, errors.New("boom"))

		_, err := uc.CreateDirectPayment(context.Background(), validInput, json.RawMessage(`{"payment_method_id":"pix"}`))
		if err == nil || err.Error() != "boom" {
			t.Fatalf("expected boom, got %v", err)
		}
	})

	t.Run("unrecognized provider status stored as unknown", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentTransactionRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewCheckoutUseCase(repo, gateway, testURLs)

		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, tx entities.PaymentTransaction) (entities.PaymentTransaction, error) {
				return tx, nil
			},
		)
		gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return("999", "charged_back", json.RawMessage(`{"id":999}`), nil)
		repo.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), entities.StatusPending, entities.StatusUnknown, "999", gomock.Any()).
			Return(entities.PaymentTransaction{Status: entities.StatusUnknown}, nil)

		res, err := uc.CreateDirectPayment(context.Background(), validInput, json.RawMessage(`{"payment_method_id":"pix"}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Status != entities.StatusUnknown {
			t.Fatalf("expected unknown, got %s", res.Status)
		}
	})
}

func TestCheckoutUseCase_Helpers(t *testing.T) {
	t.Run("newReference", func(t *testing.T) {
		a, b := newReference(), newReference()
		if !strings.HasPrefix(a, "LC-") || !strings.HasPrefix(b, "LC-") {
			t.Fatalf("expected LC- prefix, got %s / %s", a, b)
		}
		if a == b {
			t.Fatalf("references must be unique")
		}
	})

	t.Run("hasNonEmptyString", func(t *testing.T) {
		if hasNonEmptyString(map[string]any{}, "x") {
			t.Fatalf("expected false for missing key")
		}
		if hasNonEmptyString(map[string]any{"x": 1}, "x") {
			t.Fatalf("expected false for non-string")
		}
		if hasNonEmptyString(map[string]any{"x": "  "}, "x") {
			t.Fatalf("expected false for blank string")
		}
		if !hasNonEmptyString(map[string]any{"x": "ok"}, "x") {
			t.Fatalf("expected true")
		}
	})
}
