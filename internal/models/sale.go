package models

import (
	"time"

	"gorm.io/datatypes"
)

// Sale: outbound inventory transaction tied to a customer. Creating one
// consumes stock; deleting one restores it.
type Sale struct {
	ID                 uint `gorm:"primaryKey"`
	CustomerID         uint `gorm:"index;not null"`
	Customer           Customer
	ProductID          uint `gorm:"index;not null"`
	Product            Product
	Quantity           int       `gorm:"not null"`
	SellingPrice       float64   `gorm:"not null"`
	DiscountPercentage float64   `gorm:"default:0"`
	TotalAmount        float64   `gorm:"not null"`
	SaleDate           time.Time `gorm:"index;autoCreateTime"`
	SerialNumbers      datatypes.JSON
	IsPaid             bool `gorm:"default:false"`
}
