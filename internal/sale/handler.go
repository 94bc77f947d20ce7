package sale

import (
	"errors"
	"math"
	"time"

	"inventory-backend/internal/database"
	"inventory-backend/internal/inventory"
	"inventory-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CustomerBrief struct {
	CID  uint   `json:"c_id"`
	Name string `json:"name"`
}

type ProductBrief struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
}

type SaleResponse struct {
	SaleID             uint           `json:"sale_id"`
	CustomerID         uint           `json:"customer_id"`
	ProductID          uint           `json:"product_id"`
	Quantity           int            `json:"quantity"`
	SellingPrice       float64        `json:"selling_price"`
	DiscountPercentage float64        `json:"discount_percentage"`
	TotalAmount        float64        `json:"total_amount"`
	SaleDate           string         `json:"sale_date"`
	SerialNumbers      datatypes.JSON `json:"serial_numbers"`
	IsPaid             bool           `json:"is_paid"`
}

type SaleDetailResponse struct {
	SaleResponse
	Customer CustomerBrief `json:"customer"`
	Product  ProductBrief  `json:"product"`
}

type CreateSaleRequest struct {
	CustomerID         uint           `json:"customer_id"`
	ProductID          uint           `json:"product_id"`
	Quantity           int            `json:"quantity"`
	SellingPrice       float64        `json:"selling_price"`
	DiscountPercentage float64        `json:"discount_percentage"`
	TotalAmount        float64        `json:"total_amount"`
	SerialNumbers      datatypes.JSON `json:"serial_numbers"`
	IsPaid             bool           `json:"is_paid"`
}

type UpdateSaleRequest struct {
	Quantity           *int           `json:"quantity"`
	SellingPrice       *float64       `json:"selling_price"`
	DiscountPercentage *float64       `json:"discount_percentage"`
	TotalAmount        *float64       `json:"total_amount"`
	SerialNumbers      datatypes.JSON `json:"serial_numbers"`
	IsPaid             *bool          `json:"is_paid"`
}

type PaymentRequest struct {
	IsPaid *bool `json:"is_paid"`
}

type MonthlySalesResponse struct {
	Total  float64 `json:"total"`
	Count  int     `json:"count"`
	Paid   float64 `json:"paid"`
	Unpaid float64 `json:"unpaid"`
	Year   int     `json:"year"`
	Month  int     `json:"month"`
}

func saleResponse(s models.Sale) SaleResponse {
	return SaleResponse{
		SaleID:             s.ID,
		CustomerID:         s.CustomerID,
		ProductID:          s.ProductID,
		Quantity:           s.Quantity,
		SellingPrice:       s.SellingPrice,
		DiscountPercentage: s.DiscountPercentage,
		TotalAmount:        s.TotalAmount,
		SaleDate:           s.SaleDate.Format(time.RFC3339),
		SerialNumbers:      s.SerialNumbers,
		IsPaid:             s.IsPaid,
	}
}

func saleDetailResponse(s models.Sale) SaleDetailResponse {
	return SaleDetailResponse{
		SaleResponse: saleResponse(s),
		Customer:     CustomerBrief{CID: s.Customer.ID, Name: s.Customer.Name},
		Product:      ProductBrief{ProductID: s.Product.ID, Name: s.Product.Name},
	}
}

func parseDateFilter(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// GET /api/sales?date_from=...&date_to=...&is_paid=true&customer_id=1
func ListSalesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Preload("Customer").Preload("Product")

		if from := c.Query("date_from"); from != "" {
			t, err := parseDateFilter(from)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid date_from")
			}
			dbq = dbq.Where("sale_date >= ?", t)
		}
		if to := c.Query("date_to"); to != "" {
			t, err := parseDateFilter(to)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid date_to")
			}
			dbq = dbq.Where("sale_date <= ?", t)
		}
		if isPaid := c.Query("is_paid"); isPaid != "" {
			dbq = dbq.Where("is_paid = ?", isPaid == "true")
		}
		if customerID := c.QueryInt("customer_id"); customerID > 0 {
			dbq = dbq.Where("customer_id = ?", customerID)
		}

		var sales []models.Sale
		if err := dbq.Find(&sales).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch sales")
		}

		res := make([]SaleDetailResponse, 0, len(sales))
		for _, s := range sales {
			res = append(res, saleDetailResponse(s))
		}
		return c.JSON(res)
	}
}

// GET /api/sales/:id
func GetSaleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid sale id")
		}

		var s models.Sale
		if err := database.DB.Preload("Customer").Preload("Product").First(&s, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sale not found")
		}
		return c.JSON(saleDetailResponse(s))
	}
}

// POST /api/sales
func CreateSaleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateSaleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.CustomerID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Customer ID is required")
		}
		if body.ProductID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Product ID is required")
		}
		if body.Quantity <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Quantity is required and must be greater than zero")
		}
		if body.SellingPrice <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Selling price is required")
		}
		if body.TotalAmount <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Total amount is required")
		}

		var customer models.Customer
		if err := database.DB.First(&customer, "id = ?", body.CustomerID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Customer not found")
		}
		var product models.Product
		if err := database.DB.First(&product, "id = ?", body.ProductID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}

		s := models.Sale{
			CustomerID:         body.CustomerID,
			ProductID:          body.ProductID,
			Quantity:           body.Quantity,
			SellingPrice:       body.SellingPrice,
			DiscountPercentage: body.DiscountPercentage,
			TotalAmount:        body.TotalAmount,
			SerialNumbers:      body.SerialNumbers,
			IsPaid:             body.IsPaid,
		}

		// Stock decrement and sale insert commit together. The decrement is
		// conditional on availability, so an oversell rolls the whole request
		// back and nothing is observable.
		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := inventory.ConsumeStock(tx, body.ProductID, body.Quantity); err != nil {
				return err
			}
			return tx.Create(&s).Error
		})
		if errors.Is(err, inventory.ErrInsufficientStock) {
			return fiber.NewError(fiber.StatusBadRequest, "Insufficient stock")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create sale")
		}

		return c.Status(fiber.StatusCreated).JSON(saleResponse(s))
	}
}

// PUT /api/sales/:id
func UpdateSaleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid sale id")
		}

		var body UpdateSaleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		var s models.Sale
		if err := database.DB.First(&s, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sale not found")
		}

		oldQuantity := s.Quantity
		updates := map[string]interface{}{}
		if body.Quantity != nil && *body.Quantity > 0 {
			updates["quantity"] = *body.Quantity
			s.Quantity = *body.Quantity
		}
		if body.SellingPrice != nil {
			updates["selling_price"] = *body.SellingPrice
			s.SellingPrice = *body.SellingPrice
		}
		if body.DiscountPercentage != nil {
			updates["discount_percentage"] = *body.DiscountPercentage
			s.DiscountPercentage = *body.DiscountPercentage
		}
		if body.TotalAmount != nil {
			updates["total_amount"] = *body.TotalAmount
			s.TotalAmount = *body.TotalAmount
		}
		if len(body.SerialNumbers) > 0 {
			updates["serial_numbers"] = body.SerialNumbers
			s.SerialNumbers = body.SerialNumbers
		}
		if body.IsPaid != nil {
			updates["is_paid"] = *body.IsPaid
			s.IsPaid = *body.IsPaid
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			// A quantity increase must be covered by remaining stock; a
			// decrease returns the difference.
			if diff := s.Quantity - oldQuantity; diff > 0 {
				if err := inventory.ConsumeStock(tx, s.ProductID, diff); err != nil {
					return err
				}
			} else if diff < 0 {
				if err := inventory.RestoreStock(tx, s.ProductID, -diff); err != nil {
					return err
				}
			}
			if len(updates) > 0 {
				return tx.Model(&models.Sale{}).Where("id = ?", s.ID).Updates(updates).Error
			}
			return nil
		})
		if errors.Is(err, inventory.ErrInsufficientStock) {
			return fiber.NewError(fiber.StatusBadRequest, "Insufficient stock")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update sale")
		}

		return c.JSON(saleResponse(s))
	}
}

// DELETE /api/sales/:id
func DeleteSaleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid sale id")
		}

		var s models.Sale
		if err := database.DB.First(&s, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sale not found")
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := inventory.RestoreStock(tx, s.ProductID, s.Quantity); err != nil {
				return err
			}
			return tx.Delete(&s).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete sale")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// PUT /api/sales/:id/payment
func UpdatePaymentStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid sale id")
		}

		var body PaymentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		var s models.Sale
		if err := database.DB.First(&s, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sale not found")
		}

		if body.IsPaid != nil {
			s.IsPaid = *body.IsPaid
			if err := database.DB.Model(&models.Sale{}).Where("id = ?", s.ID).
				Update("is_paid", s.IsPaid).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to update payment status")
			}
		}

		return c.JSON(fiber.Map{"sale_id": s.ID, "is_paid": s.IsPaid})
	}
}

// GET /api/sales/monthly?year=2026&month=8
func MonthlySalesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		now := time.Now()
		year := c.QueryInt("year", now.Year())
		month := c.QueryInt("month", int(now.Month()))
		if month < 1 || month > 12 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid month")
		}

		start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, 0)

		var sales []models.Sale
		if err := database.DB.Where("sale_date >= ? AND sale_date < ?", start, end).
			Find(&sales).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch monthly sales")
		}

		var total, paid, unpaid float64
		for _, s := range sales {
			total += s.TotalAmount
			if s.IsPaid {
				paid += s.TotalAmount
			} else {
				unpaid += s.TotalAmount
			}
		}

		return c.JSON(MonthlySalesResponse{
			Total:  round2(total),
			Count:  len(sales),
			Paid:   round2(paid),
			Unpaid: round2(unpaid),
			Year:   year,
			Month:  month,
		})
	}
}
