package server

import (
	"log"
	"strings"

	"inventory-backend/internal/catalog"
	"inventory-backend/internal/customer"
	"inventory-backend/internal/dashboard"
	"inventory-backend/internal/inventory"
	"inventory-backend/internal/purchase"
	"inventory-backend/internal/sale"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/utils"
)

// New builds the fiber app with the full route table. Split out of main so
// tests can drive the handlers through app.Test.
func New(corsOrigins string) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})

	origins := strings.Split(corsOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(origins, ","),
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Products
	api.Get("/products", catalog.ListProductsHandler())
	api.Get("/products/categories", catalog.ListCategoriesHandler())
	api.Get("/products/:id", catalog.GetProductHandler())
	api.Post("/products", catalog.CreateProductHandler())
	api.Put("/products/:id", catalog.UpdateProductHandler())
	api.Delete("/products/:id", catalog.DeleteProductHandler())

	// Stock
	api.Get("/stock", inventory.ListStockHandler())
	api.Get("/stock/low", inventory.LowStockHandler())
	api.Get("/stock/:id", inventory.GetStockHandler())
	api.Post("/stock", inventory.CreateStockHandler())
	api.Put("/stock/:id", inventory.UpdateStockHandler())

	// Customers
	api.Get("/customers", customer.ListCustomersHandler())
	api.Get("/customers/:id", customer.GetCustomerHandler())
	api.Post("/customers", customer.CreateCustomerHandler())
	api.Put("/customers/:id", customer.UpdateCustomerHandler())
	api.Delete("/customers/:id", customer.DeleteCustomerHandler())

	// Purchases
	api.Get("/purchases", purchase.ListPurchasesHandler())
	api.Get("/purchases/:id", purchase.GetPurchaseHandler())
	api.Post("/purchases", purchase.CreatePurchaseHandler())
	api.Put("/purchases/:id", purchase.UpdatePurchaseHandler())
	api.Delete("/purchases/:id", purchase.DeletePurchaseHandler())
	api.Put("/purchases/:id/payment", purchase.UpdatePaymentStatusHandler())

	// Sales
	api.Get("/sales", sale.ListSalesHandler())
	api.Get("/sales/monthly", sale.MonthlySalesHandler())
	api.Get("/sales/:id", sale.GetSaleHandler())
	api.Post("/sales", sale.CreateSaleHandler())
	api.Put("/sales/:id", sale.UpdateSaleHandler())
	api.Delete("/sales/:id", sale.DeleteSaleHandler())
	api.Put("/sales/:id/payment", sale.UpdatePaymentStatusHandler())

	// Dashboard / analytics
	api.Get("/dashboard/stats", dashboard.StatsHandler())
	api.Get("/activities/recent", dashboard.RecentActivitiesHandler())

	return app
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "An unexpected error occurred"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
		// the router's own errors carry fasthttp-flavored messages;
		// normalize them into the envelope wording
		if code == fiber.StatusNotFound && strings.HasPrefix(message, "Cannot ") {
			message = "Endpoint not found"
		}
		if code == fiber.StatusMethodNotAllowed {
			message = "Method not allowed for this endpoint"
		}
	} else {
		log.Println("Unexpected error:", err)
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   utils.StatusMessage(code),
		"message": message,
	})
}
