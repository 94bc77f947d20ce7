package inventory

import (
	"errors"
	"time"

	"inventory-backend/internal/models"

	"gorm.io/gorm"
)

// ErrInsufficientStock: a sale asked for more units than the product's stock
// row currently holds (or no stock row exists at all).
var ErrInsufficientStock = errors.New("insufficient stock")

// ApplyPurchase records a purchase's effect on stock: increments the existing
// row and takes over its cost price, or creates the row if the product has
// never been stocked. sellingPrice only applies to a newly created row; nil
// defaults to a 20% markup over cost.
func ApplyPurchase(tx *gorm.DB, productID uint, quantity int, costPrice float64, sellingPrice *float64) error {
	var stock models.Stock
	err := tx.Where("product_id = ?", productID).First(&stock).Error
	switch {
	case err == nil:
		return tx.Model(&stock).Updates(map[string]interface{}{
			"available_quantity": gorm.Expr("available_quantity + ?", quantity),
			"cost_price":         costPrice,
			"last_updated":       time.Now().UTC(),
		}).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		sp := costPrice * 1.2
		if sellingPrice != nil {
			sp = *sellingPrice
		}
		return tx.Create(&models.Stock{
			ProductID:         productID,
			AvailableQuantity: quantity,
			CostPrice:         costPrice,
			SellingPrice:      sp,
		}).Error
	default:
		return err
	}
}

// AdjustStock adds delta to the product's available quantity without a floor
// check. Purchase edits and deletions can drive the quantity negative.
// A missing stock row is a no-op.
func AdjustStock(tx *gorm.DB, productID uint, delta int) error {
	return tx.Model(&models.Stock{}).
		Where("product_id = ?", productID).
		Updates(map[string]interface{}{
			"available_quantity": gorm.Expr("available_quantity + ?", delta),
			"last_updated":       time.Now().UTC(),
		}).Error
}

// ConsumeStock decrements quantity units, failing with ErrInsufficientStock
// unless the row still covers the request. The availability guard sits in the
// WHERE clause, so two concurrent sales cannot both pass a read-side check
// and oversell the same row.
func ConsumeStock(tx *gorm.DB, productID uint, quantity int) error {
	res := tx.Model(&models.Stock{}).
		Where("product_id = ? AND available_quantity >= ?", productID, quantity).
		Updates(map[string]interface{}{
			"available_quantity": gorm.Expr("available_quantity - ?", quantity),
			"last_updated":       time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientStock
	}
	return nil
}

// RestoreStock returns quantity units after a sale is deleted or shrunk.
func RestoreStock(tx *gorm.DB, productID uint, quantity int) error {
	return AdjustStock(tx, productID, quantity)
}
