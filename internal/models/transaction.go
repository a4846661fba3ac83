package models

import (
	"time"
)

// Transaction is an immutable ledger record. Timestamp and Risk are assigned
// by the ledger before the row is written.
type Transaction struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Username  string    `gorm:"not null;index:idx_transactions_username_created_at,priority:1" json:"username"`
	Amount    float64   `gorm:"not null" json:"amount"`
	Location  string    `gorm:"not null" json:"location"`
	Device    string    `gorm:"not null" json:"device"`
	Timestamp time.Time `gorm:"column:created_at;not null;index:idx_transactions_username_created_at,priority:2" json:"timestamp"`
	Risk      float64   `gorm:"not null" json:"risk"`
}

// RiskSummary counts a user's transactions per risk band.
type RiskSummary struct {
	Username string `json:"username"`
	Low      int64  `json:"low"`
	Medium   int64  `json:"medium"`
	High     int64  `json:"high"`
	Total    int64  `json:"total"`
}
