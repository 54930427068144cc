package usecase

import (
	"net/url"
	"strings"
)

// URLConfig carries the externally visible URLs the payment flow needs:
// where the gateway should call back and where the buyer's browser ends up.
// Injected at wiring time instead of read from the environment per call.
type URLConfig struct {
	// PublicBaseURL is this service's own externally reachable base
	// (webhook + return endpoints are derived from it).
	PublicBaseURL string
	// FrontendURL is the SPA base the buyer is redirected to.
	FrontendURL string
}

func (u URLConfig) WebhookURL() string {
	return strings.TrimRight(u.PublicBaseURL, "/") + "/v1/payments/webhook"
}

func (u URLConfig) ReturnURL(outcome string) string {
	return strings.TrimRight(u.PublicBaseURL, "/") + "/v1/payments/return/" + outcome
}

// ResultURL is the frontend route that renders the final payment page. Only
// normalized values travel on it, never raw gateway parameters.
func (u URLConfig) ResultURL(reference, status string) string {
	q := url.Values{}
	if reference != "" {
		q.Set("ref", reference)
	}
	q.Set("status", status)
	return strings.TrimRight(u.FrontendURL, "/") + "/payments/result?" + q.Encode()
}
