package interfaces

import (
	"context"
	"encoding/json"
	"errors"

	"libroconecta/internal/domain/entities"
)

// ErrPreconditionFailed is returned by UpdateStatus when the record's stored
// status no longer matches the expected previous status (lost the race with a
// concurrent callback). Callers re-read and re-evaluate the transition.
var ErrPreconditionFailed = errors.New("transaction status precondition failed")

// IPaymentTransactionRepository abstracts DynamoDB persistence for
// PaymentTransaction.
//
// UpdateStatus is the only mutation after Create: an optimistic
// compare-and-set conditioned on the previously read status, so duplicate and
// out-of-order gateway callbacks can never clobber a newer state.

type IPaymentTransactionRepository interface {
	Create(ctx context.Context, tx entities.PaymentTransaction) (entities.PaymentTransaction, error)
	GetByID(ctx context.Context, id string) (entities.PaymentTransaction, error)
	GetByReference(ctx context.Context, reference string) (entities.PaymentTransaction, error)
	GetByExternalPaymentID(ctx context.Context, externalPaymentID string) (entities.PaymentTransaction, error)
	ListByBuyerID(ctx context.Context, buyerID string) ([]entities.PaymentTransaction, error)
	UpdateStatus(ctx context.Context, id string, prev, next entities.PaymentStatus, externalPaymentID string, payload json.RawMessage) (entities.PaymentTransaction, error)
}
