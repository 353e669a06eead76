package models

import (
	"gorm.io/datatypes"
)

// PaymentLog is the permanent audit record of one checkout attempt. Exactly
// one row per attempt: created when the gateway is first called and updated
// in place (matched by PayID) once the bank callback resolves the final
// status. Rows are never deleted.
type PaymentLog struct {
	BaseModel
	// Gateway-assigned payment id. Indexed but not unique: the gateway may
	// reuse ids across retried attempts.
	PayID string `gorm:"column:pay_id;index" json:"pay_id"`

	Status     PaymentStatus `gorm:"type:varchar(25);not null;index" json:"status"`
	StatusCode string        `json:"status_code"`
	StatusDesc string        `json:"status_desc"`

	// Amount and currency exactly as sent to the gateway.
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
	Brand    string `json:"brand"`

	// Raw gateway payload for audit.
	FullResponse datatypes.JSON `gorm:"type:jsonb" json:"full_response"`
}

func (PaymentLog) TableName() string {
	return "payment_logs"
}
