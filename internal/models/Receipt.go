package models

import (
	"time"

	"gorm.io/gorm"
)

// Receipt is the client-facing record of a payment, one-to-one with
// Payment.
type Receipt struct {
	gorm.Model
	PaymentID     uint      `json:"payment_id" gorm:"uniqueIndex"`
	ReceiptNumber string    `json:"receipt_number"`
	GeneratedAt   time.Time `json:"generated_at"`
	SentToEmail   string    `json:"sent_to_email"`
}
