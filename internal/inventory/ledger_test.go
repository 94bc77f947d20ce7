package inventory

import (
	"testing"

	"inventory-backend/internal/database"
	"inventory-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every pool connection would otherwise get its own :memory: database
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func createProduct(t *testing.T, db *gorm.DB, name string) models.Product {
	t.Helper()
	p := models.Product{Name: name}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func getStock(t *testing.T, db *gorm.DB, productID uint) models.Stock {
	t.Helper()
	var s models.Stock
	require.NoError(t, db.First(&s, "product_id = ?", productID).Error)
	return s
}

func TestApplyPurchaseCreatesStockWithMarkup(t *testing.T) {
	db := newTestDB(t)
	p := createProduct(t, db, "Widget")

	require.NoError(t, ApplyPurchase(db, p.ID, 10, 5, nil))

	s := getStock(t, db, p.ID)
	assert.Equal(t, 10, s.AvailableQuantity)
	assert.Equal(t, 5.0, s.CostPrice)
	assert.InDelta(t, 6.0, s.SellingPrice, 1e-9)
}

func TestApplyPurchaseHonorsExplicitSellingPrice(t *testing.T) {
	db := newTestDB(t)
	p := createProduct(t, db, "Widget")

	sp := 8.5
	require.NoError(t, ApplyPurchase(db, p.ID, 3, 5, &sp))

	s := getStock(t, db, p.ID)
	assert.Equal(t, 3, s.AvailableQuantity)
	assert.Equal(t, 8.5, s.SellingPrice)
}

func TestApplyPurchaseIncrementsExistingStock(t *testing.T) {
	db := newTestDB(t)
	p := createProduct(t, db, "Widget")
	require.NoError(t, db.Create(&models.Stock{
		ProductID:         p.ID,
		AvailableQuantity: 4,
		CostPrice:         3,
		SellingPrice:      9,
	}).Error)

	sp := 99.0
	require.NoError(t, ApplyPurchase(db, p.ID, 6, 4, &sp))

	s := getStock(t, db, p.ID)
	assert.Equal(t, 10, s.AvailableQuantity)
	// cost price is last-write-wins, selling price of an existing row is untouched
	assert.Equal(t, 4.0, s.CostPrice)
	assert.Equal(t, 9.0, s.SellingPrice)
}

func TestConsumeStockRejectsOversell(t *testing.T) {
	db := newTestDB(t)
	p := createProduct(t, db, "Widget")
	require.NoError(t, db.Create(&models.Stock{
		ProductID:         p.ID,
		AvailableQuantity: 5,
		CostPrice:         1,
		SellingPrice:      2,
	}).Error)

	err := ConsumeStock(db, p.ID, 6)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 5, getStock(t, db, p.ID).AvailableQuantity)
}

func TestConsumeStockWithoutStockRow(t *testing.T) {
	db := newTestDB(t)
	p := createProduct(t, db, "Widget")

	assert.ErrorIs(t, ConsumeStock(db, p.ID, 1), ErrInsufficientStock)
}

func TestConsumeStockDecrements(t *testing.T) {
	db := newTestDB(t)
	p := createProduct(t, db, "Widget")
	require.NoError(t, db.Create(&models.Stock{
		ProductID:         p.ID,
		AvailableQuantity: 10,
		CostPrice:         1,
		SellingPrice:      2,
	}).Error)

	require.NoError(t, ConsumeStock(db, p.ID, 4))
	assert.Equal(t, 6, getStock(t, db, p.ID).AvailableQuantity)
}

func TestAdjustStockAllowsNegative(t *testing.T) {
	db := newTestDB(t)
	p := createProduct(t, db, "Widget")
	require.NoError(t, db.Create(&models.Stock{
		ProductID:         p.ID,
		AvailableQuantity: 2,
		CostPrice:         1,
		SellingPrice:      2,
	}).Error)

	require.NoError(t, AdjustStock(db, p.ID, -5))
	assert.Equal(t, -3, getStock(t, db, p.ID).AvailableQuantity)
}

func TestRestoreStockMissingRowIsNoop(t *testing.T) {
	db := newTestDB(t)
	p := createProduct(t, db, "Widget")

	require.NoError(t, RestoreStock(db, p.ID, 3))
}
