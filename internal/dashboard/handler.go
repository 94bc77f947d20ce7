package dashboard

import (
	"fmt"
	"math"
	"sort"
	"time"

	"inventory-backend/internal/database"
	"inventory-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type PendingPayments struct {
	Sales     float64 `json:"sales"`
	Purchases float64 `json:"purchases"`
}

type DashboardStatsResponse struct {
	TotalProducts    int64           `json:"total_products"`
	TotalCustomers   int64           `json:"total_customers"`
	LowStockItems    int64           `json:"low_stock_items"`
	MonthlySales     float64         `json:"monthly_sales"`
	MonthlyPurchases float64         `json:"monthly_purchases"`
	PendingPayments  PendingPayments `json:"pending_payments"`
}

type ActivityResponse struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Timestamp   string `json:"timestamp"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// GET /api/dashboard/stats
func StatsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		db := database.DB

		var totalProducts, totalCustomers, lowStockItems int64
		if err := db.Model(&models.Product{}).Count(&totalProducts).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch dashboard stats")
		}
		if err := db.Model(&models.Customer{}).Count(&totalCustomers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch dashboard stats")
		}
		if err := db.Model(&models.Stock{}).Where("available_quantity <= ?", 5).
			Count(&lowStockItems).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch dashboard stats")
		}

		now := time.Now()
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		monthEnd := monthStart.AddDate(0, 1, 0)

		var monthlySales float64
		db.Model(&models.Sale{}).
			Where("sale_date >= ? AND sale_date < ?", monthStart, monthEnd).
			Select("COALESCE(SUM(total_amount), 0)").Scan(&monthlySales)

		var monthlyPurchases float64
		db.Model(&models.Purchase{}).
			Where("purchase_date >= ? AND purchase_date < ?", monthStart, monthEnd).
			Select("COALESCE(SUM(quantity * cost_price), 0)").Scan(&monthlyPurchases)

		var salesPending, purchasesPending float64
		db.Model(&models.Sale{}).Where("is_paid = ?", false).
			Select("COALESCE(SUM(total_amount), 0)").Scan(&salesPending)
		db.Model(&models.Purchase{}).Where("is_paid = ?", false).
			Select("COALESCE(SUM(quantity * cost_price), 0)").Scan(&purchasesPending)

		return c.JSON(DashboardStatsResponse{
			TotalProducts:    totalProducts,
			TotalCustomers:   totalCustomers,
			LowStockItems:    lowStockItems,
			MonthlySales:     round2(monthlySales),
			MonthlyPurchases: round2(monthlyPurchases),
			PendingPayments: PendingPayments{
				Sales:     round2(salesPending),
				Purchases: round2(purchasesPending),
			},
		})
	}
}

// GET /api/activities/recent?limit=10
// Merges the most recent limit/2 sales and limit/2 purchases, newest first.
func RecentActivitiesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 10)
		if limit < 1 {
			limit = 10
		}

		var sales []models.Sale
		if err := database.DB.Preload("Product").Preload("Customer").
			Order("sale_date desc").Limit(limit / 2).
			Find(&sales).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch recent activities")
		}

		var purchases []models.Purchase
		if err := database.DB.Preload("Product").
			Order("purchase_date desc").Limit(limit / 2).
			Find(&purchases).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch recent activities")
		}

		activities := make([]ActivityResponse, 0, len(sales)+len(purchases))
		for _, s := range sales {
			activities = append(activities, ActivityResponse{
				Type:        "SALE",
				Description: fmt.Sprintf("Sale of %d x %s to %s", s.Quantity, s.Product.Name, s.Customer.Name),
				Timestamp:   s.SaleDate.Format(time.RFC3339),
			})
		}
		for _, p := range purchases {
			activities = append(activities, ActivityResponse{
				Type:        "PURCHASE",
				Description: fmt.Sprintf("Purchase of %d x %s", p.Quantity, p.Product.Name),
				Timestamp:   p.PurchaseDate.Format(time.RFC3339),
			})
		}

		// RFC3339 in one zone sorts lexicographically by instant.
		sort.Slice(activities, func(i, j int) bool {
			return activities[i].Timestamp > activities[j].Timestamp
		})
		if len(activities) > limit {
			activities = activities[:limit]
		}

		return c.JSON(activities)
	}
}
