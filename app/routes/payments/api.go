package payments

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/TV3ntu/nova-crm-backend/app/helpers"
	"github.com/TV3ntu/nova-crm-backend/app/models"
	"github.com/TV3ntu/nova-crm-backend/app/services"
)

type RegisterPaymentRequest struct {
	StudentID     string          `json:"student_id" validate:"required,uuid"`
	ClassID       string          `json:"class_id" validate:"required,uuid"`
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	PaymentMonth  string          `json:"payment_month" validate:"required"`
	PaymentDate   *string         `json:"payment_date,omitempty"` // YYYY-MM-DD, defaults to today
	PaymentMethod string          `json:"payment_method" validate:"required,oneof=cash card transfer"`
	Notes         *string         `json:"notes,omitempty"`
}

func RegisterPaymentAPI(c *fiber.Ctx) error {
	var req RegisterPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := helpers.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	month, err := models.ParseMonth(req.PaymentMonth)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var date time.Time
	if req.PaymentDate != nil {
		date, err = time.Parse("2006-01-02", *req.PaymentDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payment_date, expected YYYY-MM-DD"})
		}
	}

	payment, err := billing.RegisterPayment(services.RegisterPaymentInput{
		StudentID: req.StudentID,
		ClassID:   req.ClassID,
		Amount:    req.Amount,
		Month:     month,
		Date:      date,
		Method:    models.PaymentMethod(req.PaymentMethod),
		Notes:     req.Notes,
	})
	if err != nil {
		return helpers.ServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(payment)
}

type MultiClassPaymentRequest struct {
	StudentID     string          `json:"student_id" validate:"required,uuid"`
	TotalAmount   decimal.Decimal `json:"total_amount" validate:"required"`
	PaymentMonth  string          `json:"payment_month" validate:"required"`
	PaymentDate   *string         `json:"payment_date,omitempty"`
	PaymentMethod string          `json:"payment_method" validate:"required,oneof=cash card transfer"`
	Notes         *string         `json:"notes,omitempty"`
	ClassIDs      []string        `json:"class_ids,omitempty" validate:"omitempty,dive,uuid"`
}

func RegisterMultiClassPaymentAPI(c *fiber.Ctx) error {
	var req MultiClassPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := helpers.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	month, err := models.ParseMonth(req.PaymentMonth)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var date time.Time
	if req.PaymentDate != nil {
		date, err = time.Parse("2006-01-02", *req.PaymentDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payment_date, expected YYYY-MM-DD"})
		}
	}

	created, err := billing.RegisterMultiClassPayment(services.MultiClassPaymentInput{
		StudentID:   req.StudentID,
		TotalAmount: req.TotalAmount,
		Month:       month,
		Date:        date,
		Method:      models.PaymentMethod(req.PaymentMethod),
		Notes:       req.Notes,
		ClassIDs:    req.ClassIDs,
	})
	if err != nil {
		return helpers.ServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"payments": created, "count": len(created)})
}

type UpdatePaymentRequest struct {
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	PaymentDate   *string          `json:"payment_date,omitempty"`
	PaymentMethod *string          `json:"payment_method,omitempty" validate:"omitempty,oneof=cash card transfer"`
	Notes         *string          `json:"notes,omitempty"`
}

func UpdatePaymentAPI(c *fiber.Ctx) error {
	var req UpdatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := helpers.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	input := services.UpdatePaymentInput{
		Amount: req.Amount,
		Notes:  req.Notes,
	}
	if req.PaymentDate != nil {
		date, err := time.Parse("2006-01-02", *req.PaymentDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payment_date, expected YYYY-MM-DD"})
		}
		input.Date = &date
	}
	if req.PaymentMethod != nil {
		method := models.PaymentMethod(*req.PaymentMethod)
		input.Method = &method
	}

	payment, err := billing.UpdatePayment(c.Params("id"), input)
	if err != nil {
		return helpers.ServiceError(c, err)
	}
	return c.JSON(payment)
}

func DeletePaymentAPI(c *fiber.Ctx) error {
	if err := billing.DeletePayment(c.Params("id")); err != nil {
		return helpers.ServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Payment deleted"})
}

func GetPaymentsAPI(c *fiber.Ctx) error {
	all, err := billing.AllPayments()
	if err != nil {
		return helpers.ServiceError(c, err)
	}
	return c.JSON(fiber.Map{"payments": all, "count": len(all)})
}

func GetPaymentAPI(c *fiber.Ctx) error {
	payment, err := billing.FindPayment(c.Params("id"))
	if err != nil {
		return helpers.ServiceError(c, err)
	}
	return c.JSON(payment)
}

func GetPaymentsByStudentAPI(c *fiber.Ctx) error {
	list, err := billing.PaymentsByStudent(c.Params("studentId"))
	if err != nil {
		return helpers.ServiceError(c, err)
	}
	return c.JSON(fiber.Map{"payments": list, "count": len(list)})
}

func GetPaymentsByClassAPI(c *fiber.Ctx) error {
	list, err := billing.PaymentsByClass(c.Params("classId"))
	if err != nil {
		return helpers.ServiceError(c, err)
	}
	return c.JSON(fiber.Map{"payments": list, "count": len(list)})
}

func GetPaymentsByMonthAPI(c *fiber.Ctx) error {
	month, err := models.ParseMonth(c.Params("month"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	list, err := billing.PaymentsByMonth(month)
	if err != nil {
		return helpers.ServiceError(c, err)
	}
	return c.JSON(fiber.Map{"payments": list, "count": len(list)})
}

func GetLatePaymentsAPI(c *fiber.Ctx) error {
	month, err := models.ParseMonth(c.Params("month"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	list, err := billing.LatePaymentsForMonth(month)
	if err != nil {
		return helpers.ServiceError(c, err)
	}
	return c.JSON(fiber.Map{"payments": list, "count": len(list)})
}
