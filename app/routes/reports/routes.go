package reports

import (
	"github.com/gofiber/fiber/v2"

	"github.com/TV3ntu/nova-crm-backend/app/config"
	"github.com/TV3ntu/nova-crm-backend/app/database"
	"github.com/TV3ntu/nova-crm-backend/app/routes/auth"
	"github.com/TV3ntu/nova-crm-backend/app/services"
)

var (
	billing   *services.BillingService
	reporting *services.ReportingService
)

func SetupReportsRoutes(app *fiber.App) {
	db := config.GetDB()
	billing = services.NewBillingService(
		&database.Students{DB: db},
		&database.Classes{DB: db},
		&database.Enrollments{DB: db},
		&database.Payments{DB: db},
		services.SystemClock(),
	)
	reporting = services.NewReportingService(
		&database.Teachers{DB: db},
		&database.Classes{DB: db},
		&database.Payments{DB: db},
		billing,
	)

	api := app.Group("/api/reports")
	api.Use(auth.AuthMiddleware)
	api.Get("/teacher-compensation/:month", GetTeacherCompensationAPI)
	api.Get("/outstanding-payments/:month", GetOutstandingPaymentsAPI)
	api.Get("/financial/:month", GetMonthlyFinancialAPI)
	api.Get("/class/:classId/:month", GetClassReportAPI)
	api.Get("/revenue/:month", GetRevenueAPI)
}
