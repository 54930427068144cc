package poller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTPStatusFetcher queries the payments API's redirect-status projection.
type HTTPStatusFetcher struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPStatusFetcher(baseURL string) *HTTPStatusFetcher {
	return &HTTPStatusFetcher{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (f *HTTPStatusFetcher) Fetch(ctx context.Context, subject Subject) (Result, error) {
	endpoint := f.BaseURL + "/v1/payments/" + url.PathEscape(subject.ID) + "/redirect-status"
	if subject.ByReference {
		endpoint += "?by_reference=true"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Result{}, err
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("redirect-status returned %d", resp.StatusCode)
	}

	var body struct {
		Ready       bool   `json:"ready"`
		Status      string `json:"status"`
		Reference   string `json:"reference"`
		RedirectURL string `json:"redirect_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Result{}, err
	}

	return Result{
		Ready:       body.Ready,
		Status:      body.Status,
		Reference:   body.Reference,
		RedirectURL: body.RedirectURL,
	}, nil
}
