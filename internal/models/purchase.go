package models

import (
	"time"

	"gorm.io/datatypes"
)

// Purchase: inbound inventory transaction. Creating one increases the
// product's stock by Quantity.
type Purchase struct {
	ID           uint `gorm:"primaryKey"`
	ProductID    uint `gorm:"index;not null"`
	Product      Product
	Quantity     int            `gorm:"not null"`
	CostPrice    float64        `gorm:"not null"`
	PurchaseDate time.Time      `gorm:"index;autoCreateTime"`
	SerialNo     datatypes.JSON // opaque serial-number payload
	IsPaid       bool           `gorm:"default:false"`
}
