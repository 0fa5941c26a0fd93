package students

import (
	"github.com/gofiber/fiber/v2"

	"github.com/TV3ntu/nova-crm-backend/app/config"
	"github.com/TV3ntu/nova-crm-backend/app/database"
	"github.com/TV3ntu/nova-crm-backend/app/routes/auth"
	"github.com/TV3ntu/nova-crm-backend/app/services"
)

var (
	store   *database.Students
	classes *database.Classes
	ledger  *services.EnrollmentService
	billing *services.BillingService
)

func SetupStudentsRoutes(app *fiber.App) {
	db := config.GetDB()
	store = &database.Students{DB: db}
	classes = &database.Classes{DB: db}
	ledger = services.NewEnrollmentService(
		store, classes, &database.Enrollments{DB: db}, services.SystemClock(),
	)
	billing = services.NewBillingService(
		store, classes, &database.Enrollments{DB: db}, &database.Payments{DB: db},
		services.SystemClock(),
	)

	api := app.Group("/api/students")
	api.Use(auth.AuthMiddleware)
	api.Get("/", GetStudentsAPI)
	api.Get("/search", SearchStudentsAPI)
	api.Post("/", CreateStudentAPI)
	api.Get("/:id", GetStudentAPI)
	api.Put("/:id", UpdateStudentAPI)
	api.Delete("/:id", DeleteStudentAPI)
	api.Get("/:id/classes", GetStudentClassesAPI)
	api.Get("/:id/payments", GetStudentPaymentsAPI)
}
