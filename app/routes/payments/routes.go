package payments

import (
	"github.com/gofiber/fiber/v2"

	"github.com/TV3ntu/nova-crm-backend/app/config"
	"github.com/TV3ntu/nova-crm-backend/app/database"
	"github.com/TV3ntu/nova-crm-backend/app/routes/auth"
	"github.com/TV3ntu/nova-crm-backend/app/services"
)

var billing *services.BillingService

func SetupPaymentsRoutes(app *fiber.App) {
	db := config.GetDB()
	billing = services.NewBillingService(
		&database.Students{DB: db},
		&database.Classes{DB: db},
		&database.Enrollments{DB: db},
		&database.Payments{DB: db},
		services.SystemClock(),
	)

	api := app.Group("/api/payments")
	api.Use(auth.AuthMiddleware)
	api.Get("/", GetPaymentsAPI)
	api.Post("/", RegisterPaymentAPI)
	api.Post("/multi-class", RegisterMultiClassPaymentAPI)
	api.Get("/student/:studentId", GetPaymentsByStudentAPI)
	api.Get("/class/:classId", GetPaymentsByClassAPI)
	api.Get("/month/:month", GetPaymentsByMonthAPI)
	api.Get("/late/:month", GetLatePaymentsAPI)
	api.Get("/:id", GetPaymentAPI)
	api.Put("/:id", UpdatePaymentAPI)
	api.Delete("/:id", DeletePaymentAPI)
}
