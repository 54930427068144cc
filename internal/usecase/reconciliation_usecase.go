package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"libroconecta/internal/domain/entities"
	"libroconecta/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrMissingGatewayPaymentID = errors.New("missing gateway payment id")
	ErrTransactionNotFound     = errors.New("payment transaction not found")
)

// RedirectResult is what the redirect resolver hands back to the browser: a
// frontend URL carrying only the normalized reference and status.
type RedirectResult struct {
	Reference   string
	Status      entities.PaymentStatus
	RedirectURL string
}

// IReconciliationUseCase reconciles gateway callbacks (webhook deliveries and
// browser redirects) against the stored transaction record.
//
// Both paths share one rule set:
//   - only the gateway's API is trusted for status; callbacks supply keys
//   - status writes are monotonic: severity never decreases, terminals never
//     change, duplicates are no-ops
//   - money-relevant events that match no record create a flagged placeholder

type IReconciliationUseCase interface {
	ProcessNotification(ctx context.Context, gatewayPaymentID string) (entities.PaymentTransaction, error)
	ResolveReturn(ctx context.Context, outcome, gatewayPaymentID, externalReference string) (RedirectResult, error)
}

type ReconciliationUseCase struct {
	repo    interfaces.IPaymentTransactionRepository
	gateway interfaces.IPaymentGateway
	urls    URLConfig
}

var _ IReconciliationUseCase = (*ReconciliationUseCase)(nil)

func NewReconciliationUseCase(repo interfaces.IPaymentTransactionRepository, gateway interfaces.IPaymentGateway, urls URLConfig) *ReconciliationUseCase {
	return &ReconciliationUseCase{repo: repo, gateway: gateway, urls: urls}
}

// ProcessNotification handles one webhook delivery: fetch the authoritative
// payment state for the notified id, then apply it to the matching record.
// The webhook body itself is never trusted beyond the id it carried.
func (u *ReconciliationUseCase) ProcessNotification(ctx context.Context, gatewayPaymentID string) (entities.PaymentTransaction, error) {
	gatewayPaymentID = strings.TrimSpace(gatewayPaymentID)
	if gatewayPaymentID == "" {
		log.Printf("[payment][reconcile] notification without payment id")
		return entities.PaymentTransaction{}, ErrMissingGatewayPaymentID
	}
	if u.repo == nil || u.gateway == nil {
		return entities.PaymentTransaction{}, errors.New("reconciliation dependencies not configured")
	}
	log.Printf("[payment][reconcile] notification start gateway_payment_id=%s", gatewayPaymentID)

	details, err := u.gateway.GetPaymentByID(ctx, gatewayPaymentID)
	if err != nil {
		// Truth-fetch failed even after the gateway client's retry. Stamp the
		// record unknown so it is visible to manual reconciliation instead of
		// sitting pending forever.
		log.Printf("[payment][reconcile] truth fetch failed gateway_payment_id=%s err=%v", gatewayPaymentID, err)
		u.markUnknown(ctx, gatewayPaymentID)
		return entities.PaymentTransaction{}, err
	}

	return u.apply(ctx, details)
}

// ResolveReturn handles the browser coming back from hosted checkout. The
// query string's status fields are client-supplied and tamperable, so the
// outcome parameter is logged but never applied; reconciliation re-fetches
// truth exactly like the webhook path.
func (u *ReconciliationUseCase) ResolveReturn(ctx context.Context, outcome, gatewayPaymentID, externalReference string) (RedirectResult, error) {
	gatewayPaymentID = strings.TrimSpace(gatewayPaymentID)
	externalReference = strings.TrimSpace(externalReference)
	log.Printf("[payment][reconcile] return start outcome=%s gateway_payment_id=%q reference=%q", outcome, gatewayPaymentID, externalReference)

	if u.repo == nil || u.gateway == nil {
		return RedirectResult{}, errors.New("reconciliation dependencies not configured")
	}

	if gatewayPaymentID != "" {
		tx, err := u.ProcessNotification(ctx, gatewayPaymentID)
		if err == nil {
			return u.redirectFor(tx), nil
		}
		log.Printf("[payment][reconcile] return reconcile by payment id failed gateway_payment_id=%s err=%v", gatewayPaymentID, err)
		// fall through to the reference lookup
	}

	if externalReference != "" {
		tx, err := u.repo.GetByReference(ctx, externalReference)
		if err != nil {
			log.Printf("[payment][reconcile] return reference lookup failed reference=%s err=%v", externalReference, err)
			return u.processingRedirect(externalReference), nil
		}
		if tx.ID == "" {
			log.Printf("[payment][reconcile] return reference unknown reference=%s", externalReference)
			return u.processingRedirect(externalReference), nil
		}

		// Ask the gateway whether a payment exists for this reference; the
		// webhook may not have arrived yet. Failure here is not fatal: the
		// poller will pick the record up once the webhook lands.
		if details, err := u.gateway.FindPaymentByReference(ctx, externalReference); err == nil {
			if applied, err := u.apply(ctx, details); err == nil {
				return u.redirectFor(applied), nil
			}
		} else {
			log.Printf("[payment][reconcile] return gateway search failed reference=%s err=%v", externalReference, err)
		}
		return u.redirectFor(tx), nil
	}

	// Neither key present. The webhook may resolve it moments later, so the
	// buyer gets the processing page, never an error.
	log.Printf("[payment][reconcile] return without keys outcome=%s", outcome)
	return u.processingRedirect(""), nil
}

// apply matches fetched payment details to a record and performs the
// monotonic status write. Record lookup order: gateway payment id first,
// then our external reference, then a defensive placeholder.
func (u *ReconciliationUseCase) apply(ctx context.Context, details interfaces.PaymentDetails) (entities.PaymentTransaction, error) {
	tx, err := u.repo.GetByExternalPaymentID(ctx, details.ID)
	if err != nil {
		return entities.PaymentTransaction{}, err
	}
	if tx.ID == "" && details.ExternalReference != "" {
		tx, err = u.repo.GetByReference(ctx, details.ExternalReference)
		if err != nil {
			return entities.PaymentTransaction{}, err
		}
	}
	if tx.ID == "" {
		return u.createUnknownOrigin(ctx, details)
	}

	return u.applyToRecord(ctx, tx, details)
}

// applyToRecord runs the optimistic transition: check against the status we
// just read, write conditioned on it, and on a lost race re-read once and
// re-evaluate against the winner.
func (u *ReconciliationUseCase) applyToRecord(ctx context.Context, tx entities.PaymentTransaction, details interfaces.PaymentDetails) (entities.PaymentTransaction, error) {
	for attempt := 0; attempt < 2; attempt++ {
		if tx.Status == details.Status && tx.ExternalPaymentID != "" {
			// Duplicate delivery. Nothing to write.
			log.Printf("[payment][reconcile] duplicate status reference=%s status=%s", tx.Reference, tx.Status)
			return tx, nil
		}
		if !entities.CanTransition(tx.Status, details.Status) {
			log.Printf("[payment][reconcile] conflict: refusing %s -> %s reference=%s gateway_payment_id=%s", tx.Status, details.Status, tx.Reference, details.ID)
			return tx, entities.ErrStatusConflict
		}

		updated, err := u.repo.UpdateStatus(ctx, tx.ID, tx.Status, details.Status, details.ID, details.Raw)
		if err == nil {
			log.Printf("[payment][reconcile] applied %s -> %s reference=%s gateway_payment_id=%s", tx.Status, details.Status, tx.Reference, details.ID)
			return updated, nil
		}
		if !errors.Is(err, interfaces.ErrPreconditionFailed) {
			return entities.PaymentTransaction{}, err
		}

		// Lost the race with a concurrent callback; re-read and re-evaluate.
		log.Printf("[payment][reconcile] precondition failed, re-reading reference=%s", tx.Reference)
		tx, err = u.repo.GetByID(ctx, tx.ID)
		if err != nil {
			return entities.PaymentTransaction{}, err
		}
		if tx.ID == "" {
			return entities.PaymentTransaction{}, ErrTransactionNotFound
		}
	}
	log.Printf("[payment][reconcile] conflict after retry reference=%s status=%s", tx.Reference, details.Status)
	return tx, entities.ErrStatusConflict
}

// createUnknownOrigin keeps money-relevant events that reference no known
// record instead of dropping them.
func (u *ReconciliationUseCase) createUnknownOrigin(ctx context.Context, details interfaces.PaymentDetails) (entities.PaymentTransaction, error) {
	reference := details.ExternalReference
	if reference == "" {
		reference = "UNKNOWN-" + uuid.NewString()
	}
	now := time.Now().UTC()
	tx := entities.PaymentTransaction{
		ID:                uuid.NewString(),
		Reference:         reference,
		ExternalPaymentID: details.ID,
		Status:            details.Status,
		Amount:            details.Amount,
		Currency:          details.Currency,
		UnknownOrigin:     true,
		GatewayPayloadRaw: details.Raw,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	log.Printf("[payment][reconcile] unknown origin: creating placeholder reference=%s gateway_payment_id=%s status=%s", reference, details.ID, details.Status)
	return u.repo.Create(ctx, tx)
}

// markUnknown stamps the record for a failed truth-fetch, when one exists and
// is still non-terminal. Errors here are logged only; the caller already has
// a failure to report.
func (u *ReconciliationUseCase) markUnknown(ctx context.Context, gatewayPaymentID string) {
	tx, err := u.repo.GetByExternalPaymentID(ctx, gatewayPaymentID)
	if err != nil || tx.ID == "" {
		return
	}
	if tx.Status.IsTerminal() || tx.Status == entities.StatusUnknown {
		return
	}
	if _, err := u.repo.UpdateStatus(ctx, tx.ID, tx.Status, entities.StatusUnknown, gatewayPaymentID, nil); err != nil {
		log.Printf("[payment][reconcile] mark-unknown failed reference=%s err=%v", tx.Reference, err)
		return
	}
	log.Printf("[payment][reconcile] marked unknown reference=%s gateway_payment_id=%s", tx.Reference, gatewayPaymentID)
}

func (u *ReconciliationUseCase) redirectFor(tx entities.PaymentTransaction) RedirectResult {
	return RedirectResult{
		Reference:   tx.Reference,
		Status:      tx.Status,
		RedirectURL: u.urls.ResultURL(tx.Reference, string(tx.Status)),
	}
}

func (u *ReconciliationUseCase) processingRedirect(reference string) RedirectResult {
	return RedirectResult{
		Reference:   reference,
		Status:      entities.StatusPending,
		RedirectURL: u.urls.ResultURL(reference, "processing"),
	}
}
