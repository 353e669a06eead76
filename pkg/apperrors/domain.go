package apperrors

import (
	"fmt"
	"net/http"
)

// Factories for the domain errors of this application. Repository-level
// sentinel errors (gorm.ErrRecordNotFound etc.) are converted into these at
// the service boundary.

// ErrEntryNotFound wraps a missing contact entry (404).
func ErrEntryNotFound(err error, id string) *AppError {
	return Wrap(err, CodeNotFound, "contact", fmt.Sprintf("Contact entry %s not found", id), http.StatusNotFound)
}

// ErrPaymentLogNotFound wraps a missing payment log row (404).
func ErrPaymentLogNotFound(err error, id string) *AppError {
	return Wrap(err, CodeNotFound, "payment", fmt.Sprintf("Payment log %s not found", id), http.StatusNotFound)
}

// ErrEntryDeleted rejects a mutation of a soft-deleted entry (409). Trashed
// entries must be restored before they can be edited.
func ErrEntryDeleted(id string) *AppError {
	return New(
		CodeInvalidOperation,
		"contact",
		fmt.Sprintf("Contact entry %s is deleted; restore it before updating", id),
		http.StatusConflict,
	)
}

// ErrStorageFailure wraps a disk write/delete error (500).
func ErrStorageFailure(err error, message string) *AppError {
	return Wrap(err, CodeStorageFailure, "storage", message, http.StatusInternalServerError)
}

// ErrGateway wraps a network failure or non-success response from the
// payment provider (502).
func ErrGateway(err error, message string) *AppError {
	return Wrap(err, CodeGatewayError, "payment", message, http.StatusBadGateway)
}

// ErrCallbackMismatch is returned when a bank callback references a pay id
// with no matching payment log row. This is a reportable inconsistency, not
// something to swallow.
func ErrCallbackMismatch(payID string) *AppError {
	return New(
		CodeCallbackMismatch,
		"payment",
		fmt.Sprintf("Callback references unknown payment id %s", payID),
		http.StatusNotFound,
	)
}
