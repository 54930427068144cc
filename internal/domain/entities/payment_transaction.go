package entities

import (
	"encoding/json"
	"errors"
	"time"
)

// PaymentStatus represents the known state of a purchase attempt.
//
// Values mirror the Mercado Pago payment statuses we act on. Anything the
// provider reports that we do not recognize is normalized to StatusUnknown
// rather than invented.

type PaymentStatus string

const (
	StatusPending   PaymentStatus = "pending"
	StatusInProcess PaymentStatus = "in_process"
	StatusApproved  PaymentStatus = "approved"
	StatusRejected  PaymentStatus = "rejected"
	StatusCancelled PaymentStatus = "cancelled"
	StatusUnknown   PaymentStatus = "unknown"
)

// ErrStatusConflict is returned when a callback tries to move a record out of
// a terminal status, or between terminal statuses. The stored record wins.
var ErrStatusConflict = errors.New("conflicting payment status transition")

// statusRank orders statuses by severity. Transitions may only move forward:
// pending/unknown < in_process < {approved, rejected, cancelled}.
// unknown shares the pending rank so a failed truth-fetch can stamp a pending
// record and a later successful fetch can still advance it.
var statusRank = map[PaymentStatus]int{
	StatusPending:   1,
	StatusUnknown:   1,
	StatusInProcess: 2,
	StatusApproved:  3,
	StatusRejected:  3,
	StatusCancelled: 3,
}

const terminalRank = 3

// NormalizeStatus maps a provider-reported status string onto the statuses
// this service tracks. Provider statuses outside the tracked set (refunded,
// charged_back, in_mediation, ...) come back as StatusUnknown.
func NormalizeStatus(providerStatus string) PaymentStatus {
	switch PaymentStatus(providerStatus) {
	case StatusPending, StatusInProcess, StatusApproved, StatusRejected, StatusCancelled:
		return PaymentStatus(providerStatus)
	default:
		return StatusUnknown
	}
}

// IsTerminal reports whether no further legitimate state change is expected.
func (s PaymentStatus) IsTerminal() bool {
	return statusRank[s] == terminalRank
}

// Rank exposes the severity rank for conditional persistence updates.
func (s PaymentStatus) Rank() int {
	return statusRank[s]
}

// CanTransition decides whether a record currently at `from` may be moved to
// `to`. Re-applying the same status is allowed (idempotent no-op for the
// caller); moving backwards in severity or between terminals is not.
func CanTransition(from, to PaymentStatus) bool {
	if from == to {
		return true
	}
	fromRank, toRank := statusRank[from], statusRank[to]
	if fromRank == terminalRank {
		return false
	}
	if toRank > fromRank {
		return true
	}
	// pending <-> unknown: both non-terminal, either may replace the other.
	return toRank == fromRank
}

// PaymentTransaction is one purchase attempt, persisted for the lifetime of
// the marketplace (financial audit record, never deleted).
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (reference-index): reference
//   - GSI2 (external_payment_id-index): external_payment_id
//   - GSI3 (buyer_id-index): buyer_id
//
// Reference is the merchant-generated external_reference embedded in the
// checkout preference; it is the only correlation key we fully control and is
// immutable once created. ExternalPaymentID is assigned by the provider and
// stays empty until the provider reports a definite payment attempt.
//
// GatewayPayloadRaw keeps the last authoritative payload fetched from the
// provider for traceability/audit. UnknownOrigin marks defensive placeholder
// records created for callbacks that referenced no known transaction.

type PaymentTransaction struct {
	ID                string        `json:"id"`
	Reference         string        `json:"reference"`
	ExternalPaymentID string        `json:"external_payment_id,omitempty"`
	Status            PaymentStatus `json:"status"`
	Amount            float64       `json:"amount"`
	Currency          string        `json:"currency"`
	ItemID            string        `json:"item_id"`
	BuyerID           string        `json:"buyer_id"`
	SellerID          string        `json:"seller_id"`
	UnknownOrigin     bool          `json:"unknown_origin,omitempty"`

	GatewayPayloadRaw json.RawMessage `json:"gateway_payload_raw,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
