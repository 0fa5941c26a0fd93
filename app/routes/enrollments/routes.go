package enrollments

import (
	"github.com/gofiber/fiber/v2"

	"github.com/TV3ntu/nova-crm-backend/app/config"
	"github.com/TV3ntu/nova-crm-backend/app/database"
	"github.com/TV3ntu/nova-crm-backend/app/routes/auth"
	"github.com/TV3ntu/nova-crm-backend/app/services"
)

var ledger *services.EnrollmentService

func SetupEnrollmentsRoutes(app *fiber.App) {
	db := config.GetDB()
	ledger = services.NewEnrollmentService(
		&database.Students{DB: db},
		&database.Classes{DB: db},
		&database.Enrollments{DB: db},
		services.SystemClock(),
	)

	api := app.Group("/api/enrollments")
	api.Use(auth.AuthMiddleware)
	api.Post("/", EnrollAPI)
	api.Delete("/", UnenrollAPI)
	api.Get("/student/:studentId", GetStudentEnrollmentsAPI)
	api.Get("/class/:classId", GetClassEnrollmentsAPI)
	api.Get("/status/:studentId/:classId", GetEnrollmentStatusAPI)
}
