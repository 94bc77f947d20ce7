package customer

import (
	"strings"

	"inventory-backend/internal/database"
	"inventory-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CustomerResponse struct {
	CID     uint    `json:"c_id"`
	Name    string  `json:"name"`
	GSTNo   *string `json:"gstno"`
	Address string  `json:"address"`
	PhoneNo string  `json:"phone_no"`
	Email   *string `json:"email"`
}

type CreateCustomerRequest struct {
	Name    string  `json:"name"`
	GSTNo   *string `json:"gstno"`
	Address string  `json:"address"`
	PhoneNo string  `json:"phone_no"`
	Email   *string `json:"email"`
}

type UpdateCustomerRequest struct {
	Name    *string `json:"name"`
	GSTNo   *string `json:"gstno"`
	Address *string `json:"address"`
	PhoneNo *string `json:"phone_no"`
	Email   *string `json:"email"`
}

func customerResponse(cu models.Customer) CustomerResponse {
	return CustomerResponse{
		CID:     cu.ID,
		Name:    cu.Name,
		GSTNo:   cu.GSTNo,
		Address: cu.Address,
		PhoneNo: cu.PhoneNo,
		Email:   cu.Email,
	}
}

// normalizeOptional maps blank strings to nil so the unique indexes on gstno
// and email only ever see real values.
func normalizeOptional(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// checkUnique fails with 409 when another customer already carries the value
// in the given column. excludeID skips the customer being updated.
func checkUnique(column string, value *string, excludeID uint) error {
	if value == nil {
		return nil
	}
	q := database.DB.Where(column+" = ?", *value)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var existing models.Customer
	if err := q.First(&existing).Error; err == nil {
		return fiber.NewError(fiber.StatusConflict, "Customer with this "+column+" already exists")
	}
	return nil
}

// GET /api/customers
func ListCustomersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var customers []models.Customer
		if err := database.DB.Find(&customers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch customers")
		}

		res := make([]CustomerResponse, 0, len(customers))
		for _, cu := range customers {
			res = append(res, customerResponse(cu))
		}
		return c.JSON(res)
	}
}

// GET /api/customers/:id
func GetCustomerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid customer id")
		}

		var cu models.Customer
		if err := database.DB.First(&cu, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Customer not found")
		}
		return c.JSON(customerResponse(cu))
	}
}

// POST /api/customers
func CreateCustomerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateCustomerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		body.Address = strings.TrimSpace(body.Address)
		body.PhoneNo = strings.TrimSpace(body.PhoneNo)

		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Customer name is required")
		}
		if body.Address == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Customer address is required")
		}
		if body.PhoneNo == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Customer phone no is required")
		}

		gstno := normalizeOptional(body.GSTNo)
		email := normalizeOptional(body.Email)
		if err := checkUnique("gstno", gstno, 0); err != nil {
			return err
		}
		if err := checkUnique("email", email, 0); err != nil {
			return err
		}

		cu := models.Customer{
			Name:    body.Name,
			GSTNo:   gstno,
			Address: body.Address,
			PhoneNo: body.PhoneNo,
			Email:   email,
		}
		if err := database.DB.Create(&cu).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create customer")
		}

		return c.Status(fiber.StatusCreated).JSON(customerResponse(cu))
	}
}

// PUT /api/customers/:id
func UpdateCustomerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid customer id")
		}

		var body UpdateCustomerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		var cu models.Customer
		if err := database.DB.First(&cu, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Customer not found")
		}

		if body.GSTNo != nil {
			gstno := normalizeOptional(body.GSTNo)
			if err := checkUnique("gstno", gstno, cu.ID); err != nil {
				return err
			}
			cu.GSTNo = gstno
		}
		if body.Email != nil {
			email := normalizeOptional(body.Email)
			if err := checkUnique("email", email, cu.ID); err != nil {
				return err
			}
			cu.Email = email
		}
		if body.Name != nil {
			cu.Name = *body.Name
		}
		if body.Address != nil {
			cu.Address = *body.Address
		}
		if body.PhoneNo != nil {
			cu.PhoneNo = *body.PhoneNo
		}

		if err := database.DB.Save(&cu).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update customer")
		}
		return c.JSON(customerResponse(cu))
	}
}

// DELETE /api/customers/:id
func DeleteCustomerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid customer id")
		}

		var cu models.Customer
		if err := database.DB.First(&cu, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Customer not found")
		}

		if err := database.DB.Delete(&cu).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete customer")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
