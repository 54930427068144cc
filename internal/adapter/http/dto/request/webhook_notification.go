package request

import (
	"encoding/json"
	"errors"
	"net/url"
	"strconv"
	"strings"
)

// Mercado Pago delivers webhook notifications in several shapes depending on
// integration age and notification type: a JSON body, an url-encoded form
// body, or an empty body with everything in the query string. All of them are
// resolved here, at the boundary, into one canonical WebhookNotification
// before any business logic runs.

// NotificationShape tags which wire shape a notification arrived in.
type NotificationShape string

const (
	ShapeJSON  NotificationShape = "json"
	ShapeForm  NotificationShape = "form"
	ShapeQuery NotificationShape = "query"
	ShapeEmpty NotificationShape = "empty"
)

// ErrNoPaymentID means no recognized field in body or query yielded a
// gateway payment id. The receiver acks these anyway (a 5xx would make the
// gateway retry forever) and logs the diagnostic.
var ErrNoPaymentID = errors.New("webhook notification carries no payment id")

// WebhookNotification is the canonical internal representation of one
// delivery. Only PaymentID is ever trusted downstream; the full status is
// re-fetched from the gateway.
type WebhookNotification struct {
	Shape     NotificationShape
	Topic     string
	PaymentID string
}

// IsPaymentTopic reports whether the notification concerns a payment event.
// An absent topic is treated as payment (older deliveries omit it).
func (n WebhookNotification) IsPaymentTopic() bool {
	switch n.Topic {
	case "", "payment", "payment.created", "payment.updated":
		return true
	default:
		return false
	}
}

type jsonNotification struct {
	Type     string `json:"type"`
	Action   string `json:"action"`
	Topic    string `json:"topic"`
	DataID   string `json:"data_id"`
	ID       any    `json:"id"`
	Resource string `json:"resource"`
	Data     struct {
		ID any `json:"id"`
	} `json:"data"`
}

// ParseWebhookNotification resolves a delivery into the canonical form.
// Resolution order: JSON body, form body, query string.
func ParseWebhookNotification(contentType string, body []byte, query url.Values) (WebhookNotification, error) {
	trimmed := strings.TrimSpace(string(body))

	if trimmed != "" && json.Valid([]byte(trimmed)) {
		return parseJSONNotification([]byte(trimmed), query)
	}

	if trimmed != "" && strings.Contains(contentType, "application/x-www-form-urlencoded") {
		if form, err := url.ParseQuery(trimmed); err == nil {
			n := WebhookNotification{
				Shape:     ShapeForm,
				Topic:     firstOf(form, "type", "topic", "action"),
				PaymentID: firstOf(form, "data.id", "data_id", "id"),
			}
			if n.PaymentID != "" {
				return n, nil
			}
		}
	}

	n := WebhookNotification{
		Shape:     ShapeQuery,
		Topic:     firstOf(query, "type", "topic", "action"),
		PaymentID: firstOf(query, "data.id", "data_id", "id"),
	}
	if n.PaymentID != "" {
		return n, nil
	}

	if trimmed == "" && len(query) == 0 {
		n.Shape = ShapeEmpty
	}
	return n, ErrNoPaymentID
}

func parseJSONNotification(body []byte, query url.Values) (WebhookNotification, error) {
	var jn jsonNotification
	if err := json.Unmarshal(body, &jn); err != nil {
		return WebhookNotification{Shape: ShapeJSON}, ErrNoPaymentID
	}

	topic := jn.Type
	if topic == "" {
		topic = jn.Topic
	}
	if topic == "" {
		topic = jn.Action
	}

	id := stringID(jn.Data.ID)
	if id == "" {
		id = jn.DataID
	}
	if id == "" {
		id = stringID(jn.ID)
	}
	if id == "" && jn.Resource != "" {
		// Legacy IPN: resource is a URL ending in the payment id.
		parts := strings.Split(strings.TrimRight(jn.Resource, "/"), "/")
		id = parts[len(parts)-1]
	}
	if id == "" {
		// Some deliveries put the id in the query even with a JSON body.
		id = firstOf(query, "data.id", "data_id", "id")
	}

	n := WebhookNotification{Shape: ShapeJSON, Topic: topic, PaymentID: id}
	if id == "" {
		return n, ErrNoPaymentID
	}
	return n, nil
}

// stringID tolerates ids delivered as JSON strings or numbers.
func stringID(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}

func firstOf(values url.Values, keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(values.Get(k)); v != "" {
			return v
		}
	}
	return ""
}
