package models

// PaymentStatus is the state of a checkout attempt.
//
// Direct charges settle within the request: INITIATED straight to CONFIRMED
// or DECLINED. The 3-D-Secure path parks the row in PENDING_3DS until the
// bank redirects the shopper back and the server-to-server verification
// resolves it.
type PaymentStatus string

const (
	PaymentStatusInitiated          PaymentStatus = "INITIATED"
	PaymentStatusPending3DS         PaymentStatus = "PENDING_3DS"
	PaymentStatusConfirmed          PaymentStatus = "CONFIRMED"
	PaymentStatusDeclined           PaymentStatus = "DECLINED"
	PaymentStatusVerificationFailed PaymentStatus = "VERIFICATION_FAILED"
)

// Final reports whether the status is terminal.
func (s PaymentStatus) Final() bool {
	switch s {
	case PaymentStatusConfirmed, PaymentStatusDeclined, PaymentStatusVerificationFailed:
		return true
	}
	return false
}
