package dto

import (
	"encoding/json"

	"contactdesk_backend/internal/models"
)

// CheckoutRequest carries the card fields of a checkout form.
type CheckoutRequest struct {
	Amount      string `form:"amount" json:"amount" validate:"required"`
	Brand       string `form:"brand" json:"brand" validate:"required"`
	Number      string `form:"number" json:"number" validate:"required,numeric"`
	Holder      string `form:"holder" json:"holder" validate:"required"`
	ExpiryMonth string `form:"expiry_month" json:"expiry_month" validate:"required,len=2"`
	ExpiryYear  string `form:"expiry_year" json:"expiry_year" validate:"required,len=4"`
	CVV         string `form:"cvv" json:"cvv" validate:"required,min=3,max=4"`
}

// CheckoutResult is what the orchestrator hands back to the web layer:
// either a redirect target (3DS), or a final status with a human-readable
// message.
type CheckoutResult struct {
	Status      models.PaymentStatus `json:"status"`
	PayID       string               `json:"pay_id,omitempty"`
	Code        string               `json:"code,omitempty"`
	Description string               `json:"description,omitempty"`
	Message     string               `json:"message"`
	RedirectURL string               `json:"redirect_url,omitempty"`
	RawResponse json.RawMessage      `json:"raw_response,omitempty"`
}
