package models

import "time"

// Stock: the single current-quantity/pricing record for one product (1:1).
// AvailableQuantity is maintained incrementally by the purchase/sale ledger.
type Stock struct {
	ID                uint `gorm:"primaryKey"`
	ProductID         uint `gorm:"uniqueIndex;not null"`
	Product           Product
	AvailableQuantity int       `gorm:"not null;default:0"`
	CostPrice         float64   `gorm:"not null"`
	SellingPrice      float64   `gorm:"not null"`
	LastUpdated       time.Time `gorm:"autoUpdateTime"`
}
