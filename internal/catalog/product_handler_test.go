package catalog_test

import (
	"net/http"
	"testing"

	"inventory-backend/internal/catalog"
	"inventory-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProduct(t *testing.T) {
	app := testutil.SetupApp(t)

	resp := testutil.Request(t, app, http.MethodPost, "/api/products", map[string]interface{}{
		"name":        "Widget",
		"description": "A widget",
		"category":    "Tools",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created catalog.ProductResponse
	testutil.Decode(t, resp, &created)
	assert.NotZero(t, created.ProductID)
	assert.Equal(t, "Widget", created.Name)
	assert.Equal(t, "Tools", created.Category)
}

func TestCreateProductRequiresName(t *testing.T) {
	app := testutil.SetupApp(t)

	resp := testutil.Request(t, app, http.MethodPost, "/api/products", map[string]interface{}{
		"description": "nameless",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateProductDuplicateNameConflicts(t *testing.T) {
	app := testutil.SetupApp(t)

	resp := testutil.Request(t, app, http.MethodPost, "/api/products", map[string]interface{}{"name": "Widget"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = testutil.Request(t, app, http.MethodPost, "/api/products", map[string]interface{}{"name": "Widget"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var body map[string]string
	testutil.Decode(t, resp, &body)
	assert.Equal(t, "Conflict", body["error"])
}

func TestGetProductNotFound(t *testing.T) {
	app := testutil.SetupApp(t)

	resp := testutil.Request(t, app, http.MethodGet, "/api/products/999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateProductPartialFields(t *testing.T) {
	app := testutil.SetupApp(t)

	resp := testutil.Request(t, app, http.MethodPost, "/api/products", map[string]interface{}{
		"name":        "Widget",
		"description": "original",
		"category":    "Tools",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created catalog.ProductResponse
	testutil.Decode(t, resp, &created)

	// only the name is sent; description and category keep their values
	resp = testutil.Request(t, app, http.MethodPut, "/api/products/1", map[string]interface{}{
		"name": "Widget v2",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated catalog.ProductResponse
	testutil.Decode(t, resp, &updated)
	assert.Equal(t, "Widget v2", updated.Name)
	assert.Equal(t, "original", updated.Description)
	assert.Equal(t, "Tools", updated.Category)
}

func TestUpdateProductNameConflict(t *testing.T) {
	app := testutil.SetupApp(t)

	testutil.Request(t, app, http.MethodPost, "/api/products", map[string]interface{}{"name": "Widget"})
	testutil.Request(t, app, http.MethodPost, "/api/products", map[string]interface{}{"name": "Gadget"})

	resp := testutil.Request(t, app, http.MethodPut, "/api/products/2", map[string]interface{}{"name": "Widget"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// renaming to its own current name is fine
	resp = testutil.Request(t, app, http.MethodPut, "/api/products/2", map[string]interface{}{"name": "Gadget"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDeleteProduct(t *testing.T) {
	app := testutil.SetupApp(t)

	testutil.Request(t, app, http.MethodPost, "/api/products", map[string]interface{}{"name": "Widget"})

	resp := testutil.Request(t, app, http.MethodDelete, "/api/products/1", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = testutil.Request(t, app, http.MethodGet, "/api/products/1", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListCategoriesDistinctNonEmpty(t *testing.T) {
	app := testutil.SetupApp(t)

	testutil.Request(t, app, http.MethodPost, "/api/products", map[string]interface{}{"name": "A", "category": "Tools"})
	testutil.Request(t, app, http.MethodPost, "/api/products", map[string]interface{}{"name": "B", "category": "Tools"})
	testutil.Request(t, app, http.MethodPost, "/api/products", map[string]interface{}{"name": "C", "category": "Parts"})
	testutil.Request(t, app, http.MethodPost, "/api/products", map[string]interface{}{"name": "D"})

	resp := testutil.Request(t, app, http.MethodGet, "/api/products/categories", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var categories []string
	testutil.Decode(t, resp, &categories)
	assert.ElementsMatch(t, []string{"Tools", "Parts"}, categories)
}
