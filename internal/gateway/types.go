package gateway

import "encoding/json"

// CardFields is the card and amount data collected by the checkout form.
type CardFields struct {
	Amount                string
	Brand                 string
	Number                string
	Holder                string
	ExpiryMonth           string
	ExpiryYear            string
	CVV                   string
	MerchantTransactionID string
}

// Result is the gateway's outcome descriptor. Codes follow the gateway's
// dotted numeric convention, e.g. "000.100.110".
type Result struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// Redirect is present on 3DS initiations that require a browser redirect to
// the card issuer.
type Redirect struct {
	URL string `json:"url"`
}

// Response is the decoded gateway reply. Raw keeps the untouched payload for
// the payment log.
type Response struct {
	ID       string    `json:"id"`
	Result   Result    `json:"result"`
	Redirect *Redirect `json:"redirect,omitempty"`

	Raw json.RawMessage `json:"-"`
}
