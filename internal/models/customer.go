package models

// Customer: buyer referenced by sales. GSTNo and Email are optional but
// unique when present, so they stay pointers (NULL never collides).
type Customer struct {
	ID      uint    `gorm:"primaryKey"`
	Name    string  `gorm:"size:50;not null"`
	GSTNo   *string `gorm:"column:gstno;size:15;uniqueIndex"`
	Address string  `gorm:"size:255;not null"`
	PhoneNo string  `gorm:"size:15;not null"`
	Email   *string `gorm:"size:100;uniqueIndex"`
}
