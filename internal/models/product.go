package models

type Product struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:100;not null;unique"`
	Description string `gorm:"size:255"`
	Category    string `gorm:"size:50"`
}
