package reports

import (
	"github.com/gofiber/fiber/v2"

	"github.com/TV3ntu/nova-crm-backend/app/helpers"
	"github.com/TV3ntu/nova-crm-backend/app/models"
)

func GetTeacherCompensationAPI(c *fiber.Ctx) error {
	month, err := models.ParseMonth(c.Params("month"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	report, err := reporting.GenerateTeacherCompensation(month)
	if err != nil {
		return helpers.ServiceError(c, err)
	}
	return c.JSON(fiber.Map{"month": month, "teachers": report, "count": len(report)})
}

func GetOutstandingPaymentsAPI(c *fiber.Ctx) error {
	month, err := models.ParseMonth(c.Params("month"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	report, err := reporting.GenerateOutstanding(month)
	if err != nil {
		return helpers.ServiceError(c, err)
	}
	return c.JSON(report)
}

func GetMonthlyFinancialAPI(c *fiber.Ctx) error {
	month, err := models.ParseMonth(c.Params("month"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	report, err := reporting.GenerateMonthlyFinancial(month)
	if err != nil {
		return helpers.ServiceError(c, err)
	}
	return c.JSON(report)
}

func GetClassReportAPI(c *fiber.Ctx) error {
	month, err := models.ParseMonth(c.Params("month"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	report, err := reporting.GenerateClassReport(c.Params("classId"), month)
	if err != nil {
		return helpers.ServiceError(c, err)
	}
	return c.JSON(report)
}

func GetRevenueAPI(c *fiber.Ctx) error {
	month, err := models.ParseMonth(c.Params("month"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	revenue, err := billing.TotalRevenueForMonth(month)
	if err != nil {
		return helpers.ServiceError(c, err)
	}
	return c.JSON(fiber.Map{"month": month, "total_revenue": revenue})
}
