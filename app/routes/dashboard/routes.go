package dashboard

import (
	"github.com/gofiber/fiber/v2"

	"github.com/TV3ntu/nova-crm-backend/app/config"
	"github.com/TV3ntu/nova-crm-backend/app/database"
	"github.com/TV3ntu/nova-crm-backend/app/helpers"
	"github.com/TV3ntu/nova-crm-backend/app/models"
	"github.com/TV3ntu/nova-crm-backend/app/routes/auth"
	"github.com/TV3ntu/nova-crm-backend/app/services"
)

var billing *services.BillingService

func SetupDashboardRoutes(app *fiber.App) {
	db := config.GetDB()
	billing = services.NewBillingService(
		&database.Students{DB: db},
		&database.Classes{DB: db},
		&database.Enrollments{DB: db},
		&database.Payments{DB: db},
		services.SystemClock(),
	)

	api := app.Group("/api/dashboard")
	api.Use(auth.AuthMiddleware)
	api.Get("/", GetDashboardAPI)
	api.Get("/revenue-chart", GetRevenueChartAPI)
	api.Get("/class-distribution", GetClassDistributionAPI)
}

// GetDashboardAPI returns the headline metrics for the current month.
func GetDashboardAPI(c *fiber.Ctx) error {
	db := config.GetDB()

	counts, err := database.GetDashboardCounts(db)
	if err != nil {
		return helpers.ServiceError(c, err)
	}

	month := models.MonthOf(services.SystemClock().Now())
	revenue, err := billing.TotalRevenueForMonth(month)
	if err != nil {
		return helpers.ServiceError(c, err)
	}
	late, err := billing.LatePaymentsForMonth(month)
	if err != nil {
		return helpers.ServiceError(c, err)
	}
	outstanding, err := billing.ComputeOutstanding(month)
	if err != nil {
		return helpers.ServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"month":                month,
		"counts":               counts,
		"revenue_this_month":   revenue,
		"late_payments":        len(late),
		"students_outstanding": len(outstanding),
	})
}

func GetRevenueChartAPI(c *fiber.Ctx) error {
	months := c.QueryInt("months", 6)
	revenues, err := database.GetRevenueByMonth(config.GetDB(), months)
	if err != nil {
		return helpers.ServiceError(c, err)
	}
	return c.JSON(fiber.Map{"revenue_by_month": revenues})
}

func GetClassDistributionAPI(c *fiber.Ctx) error {
	entries, err := database.GetClassDistribution(config.GetDB())
	if err != nil {
		return helpers.ServiceError(c, err)
	}
	return c.JSON(fiber.Map{"classes": entries})
}
