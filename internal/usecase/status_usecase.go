package usecase

import (
	"context"
	"errors"
	"strings"

	"libroconecta/internal/domain/entities"
	"libroconecta/internal/usecase/interfaces"
)

var ErrInvalidTransactionID = errors.New("invalid transaction id")

// RedirectStatusView is the normalized ready/not-ready projection the polling
// client consumes. RedirectURL is only populated once the status is terminal
// and carries everything the frontend result page needs.
type RedirectStatusView struct {
	Ready       bool
	Status      entities.PaymentStatus
	Reference   string
	RedirectURL string
}

// IStatusUseCase is the read side of the payment flow. It never mutates
// transaction state.

type IStatusUseCase interface {
	RedirectStatus(ctx context.Context, idOrReference string, byReference bool) (RedirectStatusView, error)
	GetByID(ctx context.Context, id string) (entities.PaymentTransaction, error)
	ListByBuyerID(ctx context.Context, buyerID string) ([]entities.PaymentTransaction, error)
}

type StatusUseCase struct {
	repo interfaces.IPaymentTransactionRepository
	urls URLConfig
}

var _ IStatusUseCase = (*StatusUseCase)(nil)

func NewStatusUseCase(repo interfaces.IPaymentTransactionRepository, urls URLConfig) *StatusUseCase {
	return &StatusUseCase{repo: repo, urls: urls}
}

// RedirectStatus resolves the subject by record id, gateway payment id, or
// external reference, and projects it into the poller's view.
func (u *StatusUseCase) RedirectStatus(ctx context.Context, idOrReference string, byReference bool) (RedirectStatusView, error) {
	idOrReference = strings.TrimSpace(idOrReference)
	if idOrReference == "" {
		return RedirectStatusView{}, ErrInvalidTransactionID
	}

	tx, err := u.lookup(ctx, idOrReference, byReference)
	if err != nil {
		return RedirectStatusView{}, err
	}
	if tx.ID == "" {
		return RedirectStatusView{}, ErrTransactionNotFound
	}

	view := RedirectStatusView{
		Ready:     tx.Status.IsTerminal(),
		Status:    tx.Status,
		Reference: tx.Reference,
	}
	if view.Ready {
		view.RedirectURL = u.urls.ResultURL(tx.Reference, string(tx.Status))
	}
	return view, nil
}

func (u *StatusUseCase) lookup(ctx context.Context, idOrReference string, byReference bool) (entities.PaymentTransaction, error) {
	if byReference {
		return u.repo.GetByReference(ctx, idOrReference)
	}
	tx, err := u.repo.GetByID(ctx, idOrReference)
	if err != nil {
		return entities.PaymentTransaction{}, err
	}
	if tx.ID != "" {
		return tx, nil
	}
	// The poller may only know the gateway-assigned payment id.
	return u.repo.GetByExternalPaymentID(ctx, idOrReference)
}

func (u *StatusUseCase) GetByID(ctx context.Context, id string) (entities.PaymentTransaction, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.PaymentTransaction{}, ErrInvalidTransactionID
	}

	tx, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.PaymentTransaction{}, err
	}
	if tx.ID == "" {
		return entities.PaymentTransaction{}, ErrTransactionNotFound
	}
	return tx, nil
}

func (u *StatusUseCase) ListByBuyerID(ctx context.Context, buyerID string) ([]entities.PaymentTransaction, error) {
	buyerID = strings.TrimSpace(buyerID)
	if buyerID == "" {
		return nil, ErrInvalidBuyerID
	}
	return u.repo.ListByBuyerID(ctx, buyerID)
}
