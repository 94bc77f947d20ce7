package purchase

import (
	"time"

	"inventory-backend/internal/database"
	"inventory-backend/internal/inventory"
	"inventory-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProductBrief struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
}

type PurchaseResponse struct {
	PurchaseID   uint           `json:"purchase_id"`
	ProductID    uint           `json:"product_id"`
	Quantity     int            `json:"quantity"`
	CostPrice    float64        `json:"cost_price"`
	PurchaseDate string         `json:"purchase_date"`
	SerialNo     datatypes.JSON `json:"serial_no"`
	IsPaid       bool           `json:"is_paid"`
}

type PurchaseWithProductResponse struct {
	PurchaseResponse
	Product ProductBrief `json:"product"`
}

type CreatePurchaseRequest struct {
	ProductID    uint           `json:"product_id"`
	Quantity     int            `json:"quantity"`
	CostPrice    float64        `json:"cost_price"`
	SellingPrice *float64       `json:"selling_price"`
	SerialNo     datatypes.JSON `json:"serial_no"`
	IsPaid       bool           `json:"is_paid"`
}

type UpdatePurchaseRequest struct {
	Quantity  *int           `json:"quantity"`
	CostPrice *float64       `json:"cost_price"`
	SerialNo  datatypes.JSON `json:"serial_no"`
	IsPaid    *bool          `json:"is_paid"`
}

type PaymentRequest struct {
	IsPaid *bool `json:"is_paid"`
}

func purchaseResponse(p models.Purchase) PurchaseResponse {
	return PurchaseResponse{
		PurchaseID:   p.ID,
		ProductID:    p.ProductID,
		Quantity:     p.Quantity,
		CostPrice:    p.CostPrice,
		PurchaseDate: p.PurchaseDate.Format(time.RFC3339),
		SerialNo:     p.SerialNo,
		IsPaid:       p.IsPaid,
	}
}

// parseDateFilter accepts plain dates and full timestamps.
func parseDateFilter(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// GET /api/purchases?date_from=...&date_to=...&is_paid=true
func ListPurchasesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Preload("Product")

		if from := c.Query("date_from"); from != "" {
			t, err := parseDateFilter(from)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid date_from")
			}
			dbq = dbq.Where("purchase_date >= ?", t)
		}
		if to := c.Query("date_to"); to != "" {
			t, err := parseDateFilter(to)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid date_to")
			}
			dbq = dbq.Where("purchase_date <= ?", t)
		}
		if isPaid := c.Query("is_paid"); isPaid != "" {
			dbq = dbq.Where("is_paid = ?", isPaid == "true")
		}

		var purchases []models.Purchase
		if err := dbq.Find(&purchases).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch purchases")
		}

		res := make([]PurchaseWithProductResponse, 0, len(purchases))
		for _, p := range purchases {
			res = append(res, PurchaseWithProductResponse{
				PurchaseResponse: purchaseResponse(p),
				Product:          ProductBrief{ProductID: p.Product.ID, Name: p.Product.Name},
			})
		}
		return c.JSON(res)
	}
}

// GET /api/purchases/:id
func GetPurchaseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid purchase id")
		}

		var p models.Purchase
		if err := database.DB.Preload("Product").First(&p, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Purchase not found")
		}

		return c.JSON(PurchaseWithProductResponse{
			PurchaseResponse: purchaseResponse(p),
			Product:          ProductBrief{ProductID: p.Product.ID, Name: p.Product.Name},
		})
	}
}

// POST /api/purchases
func CreatePurchaseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreatePurchaseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.ProductID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Product ID is required")
		}
		if body.Quantity <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Quantity is required and must be greater than zero")
		}
		if body.CostPrice <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Cost price is required")
		}

		var product models.Product
		if err := database.DB.First(&product, "id = ?", body.ProductID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}

		p := models.Purchase{
			ProductID: body.ProductID,
			Quantity:  body.Quantity,
			CostPrice: body.CostPrice,
			SerialNo:  body.SerialNo,
			IsPaid:    body.IsPaid,
		}

		// Purchase row and stock increment commit together or not at all.
		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&p).Error; err != nil {
				return err
			}
			return inventory.ApplyPurchase(tx, body.ProductID, body.Quantity, body.CostPrice, body.SellingPrice)
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create purchase")
		}

		return c.Status(fiber.StatusCreated).JSON(purchaseResponse(p))
	}
}

// PUT /api/purchases/:id
func UpdatePurchaseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid purchase id")
		}

		var body UpdatePurchaseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		var p models.Purchase
		if err := database.DB.First(&p, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Purchase not found")
		}

		oldQuantity := p.Quantity
		updates := map[string]interface{}{}
		if body.Quantity != nil && *body.Quantity > 0 {
			updates["quantity"] = *body.Quantity
			p.Quantity = *body.Quantity
		}
		if body.CostPrice != nil {
			updates["cost_price"] = *body.CostPrice
			p.CostPrice = *body.CostPrice
		}
		if len(body.SerialNo) > 0 {
			updates["serial_no"] = body.SerialNo
			p.SerialNo = body.SerialNo
		}
		if body.IsPaid != nil {
			updates["is_paid"] = *body.IsPaid
			p.IsPaid = *body.IsPaid
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if len(updates) > 0 {
				if err := tx.Model(&models.Purchase{}).Where("id = ?", p.ID).Updates(updates).Error; err != nil {
					return err
				}
			}
			// A quantity edit moves stock by the delta. No floor check: this
			// can drive available_quantity negative.
			if p.Quantity != oldQuantity {
				return inventory.AdjustStock(tx, p.ProductID, p.Quantity-oldQuantity)
			}
			return nil
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update purchase")
		}

		return c.JSON(purchaseResponse(p))
	}
}

// DELETE /api/purchases/:id
func DeletePurchaseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid purchase id")
		}

		var p models.Purchase
		if err := database.DB.First(&p, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Purchase not found")
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := inventory.AdjustStock(tx, p.ProductID, -p.Quantity); err != nil {
				return err
			}
			return tx.Delete(&p).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete purchase")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// PUT /api/purchases/:id/payment
func UpdatePaymentStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid purchase id")
		}

		var body PaymentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		var p models.Purchase
		if err := database.DB.First(&p, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Purchase not found")
		}

		if body.IsPaid != nil {
			p.IsPaid = *body.IsPaid
			if err := database.DB.Model(&models.Purchase{}).Where("id = ?", p.ID).
				Update("is_paid", p.IsPaid).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to update payment status")
			}
		}

		return c.JSON(fiber.Map{"purchase_id": p.ID, "is_paid": p.IsPaid})
	}
}
