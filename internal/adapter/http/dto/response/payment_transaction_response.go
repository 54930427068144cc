package response

import (
	"time"

	"libroconecta/internal/domain/entities"
)

type PaymentTransactionResponse struct {
	ID                string    `json:"id"`
	Reference         string    `json:"reference"`
	ExternalPaymentID string    `json:"external_payment_id,omitempty"`
	Status            string    `json:"status"`
	Amount            float64   `json:"amount"`
	Currency          string    `json:"currency"`
	ItemID            string    `json:"item_id"`
	BuyerID           string    `json:"buyer_id"`
	SellerID          string    `json:"seller_id"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func FromPaymentTransaction(tx entities.PaymentTransaction) PaymentTransactionResponse {
	return PaymentTransactionResponse{
		ID:                tx.ID,
		Reference:         tx.Reference,
		ExternalPaymentID: tx.ExternalPaymentID,
		Status:            string(tx.Status),
		Amount:            tx.Amount,
		Currency:          tx.Currency,
		ItemID:            tx.ItemID,
		BuyerID:           tx.BuyerID,
		SellerID:          tx.SellerID,
		CreatedAt:         tx.CreatedAt,
		UpdatedAt:         tx.UpdatedAt,
	}
}

func FromPaymentTransactions(txs []entities.PaymentTransaction) []PaymentTransactionResponse {
	out := make([]PaymentTransactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, FromPaymentTransaction(tx))
	}
	return out
}
