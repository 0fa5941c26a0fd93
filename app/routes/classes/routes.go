package classes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/TV3ntu/nova-crm-backend/app/config"
	"github.com/TV3ntu/nova-crm-backend/app/database"
	"github.com/TV3ntu/nova-crm-backend/app/routes/auth"
	"github.com/TV3ntu/nova-crm-backend/app/services"
)

var (
	store    *database.Classes
	teachers *database.Teachers
	students *database.Students
	ledger   *services.EnrollmentService
)

func SetupClassesRoutes(app *fiber.App) {
	db := config.GetDB()
	store = &database.Classes{DB: db}
	teachers = &database.Teachers{DB: db}
	students = &database.Students{DB: db}
	ledger = services.NewEnrollmentService(
		students, store, &database.Enrollments{DB: db}, services.SystemClock(),
	)

	api := app.Group("/api/classes")
	api.Use(auth.AuthMiddleware)
	api.Get("/", GetClassesAPI)
	api.Get("/search", SearchClassesAPI)
	api.Post("/", CreateClassAPI)
	api.Get("/:id", GetClassAPI)
	api.Put("/:id", UpdateClassAPI)
	api.Delete("/:id", DeleteClassAPI)
	api.Post("/:id/schedules", AddScheduleAPI)
	api.Delete("/:id/schedules", RemoveScheduleAPI)
	api.Post("/:id/teachers/:teacherId", AssignTeacherAPI)
	api.Delete("/:id/teachers/:teacherId", UnassignTeacherAPI)
	api.Get("/:id/students", GetClassStudentsAPI)
	api.Get("/:id/teachers", GetClassTeachersAPI)
}
