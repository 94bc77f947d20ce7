package customer_test

import (
	"net/http"
	"testing"

	"inventory-backend/internal/customer"
	"inventory-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCustomer() map[string]interface{} {
	return map[string]interface{}{
		"name":     "Acme Traders",
		"address":  "12 Market Road",
		"phone_no": "9876543210",
	}
}

func TestCreateCustomer(t *testing.T) {
	app := testutil.SetupApp(t)

	body := validCustomer()
	body["gstno"] = "22AAAAA0000A1Z5"
	body["email"] = "acme@example.com"

	resp := testutil.Request(t, app, http.MethodPost, "/api/customers", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created customer.CustomerResponse
	testutil.Decode(t, resp, &created)
	assert.NotZero(t, created.CID)
	assert.Equal(t, "Acme Traders", created.Name)
	require.NotNil(t, created.GSTNo)
	assert.Equal(t, "22AAAAA0000A1Z5", *created.GSTNo)
}

func TestCreateCustomerRequiredFields(t *testing.T) {
	app := testutil.SetupApp(t)

	for _, missing := range []string{"name", "address", "phone_no"} {
		body := validCustomer()
		delete(body, missing)
		resp := testutil.Request(t, app, http.MethodPost, "/api/customers", body)
		assert.Equalf(t, http.StatusBadRequest, resp.StatusCode, "missing %s", missing)
	}
}

func TestCreateCustomerOptionalUniqueFieldsMayRepeatAsNull(t *testing.T) {
	app := testutil.SetupApp(t)

	// two customers without gstno/email must both be accepted
	resp := testutil.Request(t, app, http.MethodPost, "/api/customers", validCustomer())
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	second := validCustomer()
	second["name"] = "Beta Stores"
	resp = testutil.Request(t, app, http.MethodPost, "/api/customers", second)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created customer.CustomerResponse
	testutil.Decode(t, resp, &created)
	assert.Nil(t, created.GSTNo)
	assert.Nil(t, created.Email)
}

func TestCreateCustomerDuplicateEmailConflicts(t *testing.T) {
	app := testutil.SetupApp(t)

	body := validCustomer()
	body["email"] = "acme@example.com"
	resp := testutil.Request(t, app, http.MethodPost, "/api/customers", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	second := validCustomer()
	second["name"] = "Beta Stores"
	second["email"] = "acme@example.com"
	resp = testutil.Request(t, app, http.MethodPost, "/api/customers", second)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestUpdateCustomerPartial(t *testing.T) {
	app := testutil.SetupApp(t)

	resp := testutil.Request(t, app, http.MethodPost, "/api/customers", validCustomer())
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = testutil.Request(t, app, http.MethodPut, "/api/customers/1", map[string]interface{}{
		"phone_no": "1112223334",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated customer.CustomerResponse
	testutil.Decode(t, resp, &updated)
	assert.Equal(t, "1112223334", updated.PhoneNo)
	// untouched fields retain previous values
	assert.Equal(t, "Acme Traders", updated.Name)
	assert.Equal(t, "12 Market Road", updated.Address)
}

func TestUpdateCustomerNotFound(t *testing.T) {
	app := testutil.SetupApp(t)

	resp := testutil.Request(t, app, http.MethodPut, "/api/customers/42", map[string]interface{}{"name": "X"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteCustomer(t *testing.T) {
	app := testutil.SetupApp(t)

	testutil.Request(t, app, http.MethodPost, "/api/customers", validCustomer())

	resp := testutil.Request(t, app, http.MethodDelete, "/api/customers/1", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = testutil.Request(t, app, http.MethodGet, "/api/customers/1", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
