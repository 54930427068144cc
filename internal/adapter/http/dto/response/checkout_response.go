package response

// PreferenceResponse is what the frontend needs to send the buyer to hosted
// checkout: the preference id, its init_point URL, and our reference so the
// client can poll before any callback lands.
type PreferenceResponse struct {
	PreferenceID string `json:"preference_id"`
	InitPoint    string `json:"init_point"`
	Reference    string `json:"reference"`
}

// RedirectStatusResponse is the poller's projection. `redirect_url` is only
// present once `ready` is true.
type RedirectStatusResponse struct {
	Ready       bool   `json:"ready"`
	Status      string `json:"status"`
	Reference   string `json:"reference"`
	RedirectURL string `json:"redirect_url,omitempty"`
}
