package inventory

import (
	"time"

	"inventory-backend/internal/database"
	"inventory-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type StockProductInfo struct {
	ProductID   *uint   `json:"product_id"`
	Name        *string `json:"name"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category"`
}

type StockResponse struct {
	StockID           uint             `json:"stock_id"`
	ProductID         uint             `json:"product_id"`
	AvailableQuantity int              `json:"available_quantity"`
	CostPrice         float64          `json:"cost_price"`
	SellingPrice      float64          `json:"selling_price"`
	LastUpdated       string           `json:"last_updated"`
	Product           StockProductInfo `json:"product"`
}

type LowStockResponse struct {
	StockResponse
	Status string `json:"status"`
}

type CreateStockRequest struct {
	ProductID         uint    `json:"product_id"`
	AvailableQuantity int     `json:"available_quantity"`
	CostPrice         float64 `json:"cost_price"`
	SellingPrice      float64 `json:"selling_price"`
}

type UpdateStockRequest struct {
	ProductID         *uint    `json:"product_id"`
	AvailableQuantity *int     `json:"available_quantity"`
	CostPrice         *float64 `json:"cost_price"`
	SellingPrice      *float64 `json:"selling_price"`
}

// productInfo leaves every field null when the stock row points at a product
// that no longer exists (deletes do not cascade).
func productInfo(p models.Product, withDescription bool) StockProductInfo {
	if p.ID == 0 {
		return StockProductInfo{}
	}
	info := StockProductInfo{
		ProductID: &p.ID,
		Name:      &p.Name,
		Category:  &p.Category,
	}
	if withDescription {
		info.Description = &p.Description
	}
	return info
}

func stockResponse(s models.Stock, withDescription bool) StockResponse {
	return StockResponse{
		StockID:           s.ID,
		ProductID:         s.ProductID,
		AvailableQuantity: s.AvailableQuantity,
		CostPrice:         s.CostPrice,
		SellingPrice:      s.SellingPrice,
		LastUpdated:       s.LastUpdated.Format(time.RFC3339),
		Product:           productInfo(s.Product, withDescription),
	}
}

// GET /api/stock
func ListStockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var stocks []models.Stock
		if err := database.DB.Preload("Product").Find(&stocks).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch stock details")
		}

		res := make([]StockResponse, 0, len(stocks))
		for _, s := range stocks {
			res = append(res, stockResponse(s, false))
		}
		return c.JSON(res)
	}
}

// GET /api/stock/:id
func GetStockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid stock id")
		}

		var stock models.Stock
		if err := database.DB.Preload("Product").First(&stock, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Stock not found")
		}

		return c.JSON(stockResponse(stock, false))
	}
}

// POST /api/stock
func CreateStockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateStockRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.ProductID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Product id is required")
		}

		var existing models.Stock
		if err := database.DB.First(&existing, "product_id = ?", body.ProductID).Error; err == nil {
			return fiber.NewError(fiber.StatusConflict, "Stock with this product_id already exists")
		}

		var product models.Product
		if err := database.DB.First(&product, "id = ?", body.ProductID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}

		stock := models.Stock{
			ProductID:         body.ProductID,
			AvailableQuantity: body.AvailableQuantity,
			CostPrice:         body.CostPrice,
			SellingPrice:      body.SellingPrice,
		}
		if err := database.DB.Create(&stock).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create stock")
		}

		stock.Product = product
		return c.Status(fiber.StatusCreated).JSON(stockResponse(stock, false))
	}
}

// PUT /api/stock/:id
func UpdateStockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid stock id")
		}

		var body UpdateStockRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		var stock models.Stock
		if err := database.DB.First(&stock, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Stock not found")
		}

		updates := map[string]interface{}{}
		if body.ProductID != nil {
			updates["product_id"] = *body.ProductID
		}
		if body.AvailableQuantity != nil {
			updates["available_quantity"] = *body.AvailableQuantity
		}
		if body.CostPrice != nil {
			updates["cost_price"] = *body.CostPrice
		}
		if body.SellingPrice != nil {
			updates["selling_price"] = *body.SellingPrice
		}

		if len(updates) > 0 {
			updates["last_updated"] = time.Now().UTC()
			if err := database.DB.Model(&stock).Updates(updates).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to update stock")
			}
		}

		database.DB.Preload("Product").First(&stock, "id = ?", stock.ID)
		return c.JSON(stockResponse(stock, false))
	}
}

// GET /api/stock/low?threshold=5
func LowStockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		threshold := c.QueryInt("threshold", 5)

		var stocks []models.Stock
		if err := database.DB.Preload("Product").
			Where("available_quantity <= ?", threshold).
			Find(&stocks).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch low stock items")
		}

		res := make([]LowStockResponse, 0, len(stocks))
		for _, s := range stocks {
			status := "low_stock"
			if s.AvailableQuantity == 0 {
				status = "out_of_stock"
			} else if s.AvailableQuantity <= 2 {
				status = "critical"
			}
			res = append(res, LowStockResponse{
				StockResponse: stockResponse(s, true),
				Status:        status,
			})
		}
		return c.JSON(res)
	}
}
