package catalog

import (
	"strings"

	"inventory-backend/internal/database"
	"inventory-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ProductResponse struct {
	ProductID   uint   `json:"product_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

type CreateProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

type UpdateProductRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
}

func productResponse(p models.Product) ProductResponse {
	return ProductResponse{
		ProductID:   p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
	}
}

// GET /api/products
func ListProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var products []models.Product
		if err := database.DB.Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch products")
		}

		res := make([]ProductResponse, 0, len(products))
		for _, p := range products {
			res = append(res, productResponse(p))
		}
		return c.JSON(res)
	}
}

// GET /api/products/:id
func GetProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid product id")
		}

		var product models.Product
		if err := database.DB.First(&product, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}
		return c.JSON(productResponse(product))
	}
}

// POST /api/products
func CreateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Product name is required")
		}

		var existing models.Product
		if err := database.DB.First(&existing, "name = ?", body.Name).Error; err == nil {
			return fiber.NewError(fiber.StatusConflict, "Product with this name already exists")
		}

		product := models.Product{
			Name:        body.Name,
			Description: body.Description,
			Category:    body.Category,
		}
		if err := database.DB.Create(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create product")
		}

		return c.Status(fiber.StatusCreated).JSON(productResponse(product))
	}
}

// PUT /api/products/:id
func UpdateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid product id")
		}

		var body UpdateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		var product models.Product
		if err := database.DB.First(&product, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Product name is required")
		}

		var existing models.Product
		if err := database.DB.Where("name = ? AND id <> ?", body.Name, product.ID).First(&existing).Error; err == nil {
			return fiber.NewError(fiber.StatusConflict, "Product with this name already exists")
		}

		product.Name = body.Name
		if body.Description != nil {
			product.Description = *body.Description
		}
		if body.Category != nil {
			product.Category = *body.Category
		}
		if err := database.DB.Save(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update product")
		}

		return c.JSON(productResponse(product))
	}
}

// DELETE /api/products/:id
func DeleteProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid product id")
		}

		var product models.Product
		if err := database.DB.First(&product, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}

		// Stock, purchase and sale rows referencing the product are left in
		// place; deletes do not cascade.
		if err := database.DB.Delete(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete product")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GET /api/products/categories
func ListCategoriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var categories []string
		if err := database.DB.Model(&models.Product{}).
			Where("category IS NOT NULL AND category <> ''").
			Distinct().
			Pluck("category", &categories).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch categories")
		}
		return c.JSON(categories)
	}
}
