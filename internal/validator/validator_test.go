package validator

import (
	"testing"

	"contactdesk_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireValidationError(t *testing.T, err error) *ValidationError {
	t.Helper()
	require.Error(t, err)
	verr, ok := err.(*ValidationError)
	require.True(t, ok, "expected *ValidationError, got %T", err)
	return verr
}

func TestValidContactRequest(t *testing.T) {
	v := New()
	req := dto.CreateContactRequest{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Phone:   "+12025550134",
		Message: "Hello there",
	}
	assert.NoError(t, v.Validate(req))
}

func TestPhoneRule(t *testing.T) {
	v := New()
	cases := []struct {
		phone string
		valid bool
	}{
		{"+12025550134", true},
		{"12025550134", true},
		{"+4930123456789", true},
		{"123", false},
		{"not-a-number", false},
		{"+1 202 555 0134", false},
	}
	for _, tc := range cases {
		req := dto.CreateContactRequest{
			Name:    "Jane Doe",
			Email:   "jane@example.com",
			Phone:   tc.phone,
			Message: "Hi",
		}
		err := v.Validate(req)
		if tc.valid {
			assert.NoError(t, err, "phone %q should be accepted", tc.phone)
		} else {
			verr := requireValidationError(t, err)
			assert.Contains(t, verr.Errors, "phone", "phone %q should be rejected", tc.phone)
		}
	}
}

func TestMissingFieldsReportedByJSONName(t *testing.T) {
	v := New()
	err := v.Validate(dto.CreateContactRequest{})
	verr := requireValidationError(t, err)

	assert.Contains(t, verr.Errors, "name")
	assert.Contains(t, verr.Errors, "email")
	assert.Contains(t, verr.Errors, "phone")
	assert.Contains(t, verr.Errors, "message")
	assert.Equal(t, "This field is required", verr.Errors["name"])
}

func TestMessageLengthCap(t *testing.T) {
	v := New()
	long := make([]byte, 501)
	for i := range long {
		long[i] = 'a'
	}
	req := dto.CreateContactRequest{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Phone:   "+12025550134",
		Message: string(long),
	}
	verr := requireValidationError(t, v.Validate(req))
	assert.Contains(t, verr.Errors["message"], "at most 500")
}

func TestCheckoutExpiryLengths(t *testing.T) {
	v := New()
	req := dto.CheckoutRequest{
		Amount:      "10.00",
		Brand:       "VISA",
		Number:      "4200000000000000",
		Holder:      "Jane Doe",
		ExpiryMonth: "5", // must be zero-padded to two digits
		ExpiryYear:  "34",
		CVV:         "123",
	}
	verr := requireValidationError(t, v.Validate(req))
	assert.Contains(t, verr.Errors, "expiry_month")
	assert.Contains(t, verr.Errors, "expiry_year")
}
