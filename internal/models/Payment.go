package models

import (
	"time"

	"gorm.io/gorm"
)

// GatewayTxnCash tags payments collected as cash by a driver in the
// field, as opposed to gateway-generated transaction ids.
const GatewayTxnCash = "CASH_COLLECTED_BY_DRIVER"

const (
	PaymentSucceeded = "Succeeded"
	PaymentFailed    = "Failed"
)

// Payment is immutable once created.
type Payment struct {
	gorm.Model
	BookingID    uint      `json:"booking_id" gorm:"index"`
	ClientID     uint      `json:"client_id" gorm:"index"`
	Amount       float64   `json:"amount"`
	GatewayTxnID string    `json:"payment_gateway_txn_id" gorm:"column:payment_gateway_txn_id"`
	Status       string    `json:"status"`
	PaymentDate  time.Time `json:"payment_date"`
}
