package teachers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/TV3ntu/nova-crm-backend/app/config"
	"github.com/TV3ntu/nova-crm-backend/app/database"
	"github.com/TV3ntu/nova-crm-backend/app/routes/auth"
)

var (
	store   *database.Teachers
	classes *database.Classes
)

func SetupTeachersRoutes(app *fiber.App) {
	db := config.GetDB()
	store = &database.Teachers{DB: db}
	classes = &database.Classes{DB: db}

	api := app.Group("/api/teachers")
	api.Use(auth.AuthMiddleware)
	api.Get("/", GetTeachersAPI)
	api.Post("/", CreateTeacherAPI)
	api.Get("/:id", GetTeacherAPI)
	api.Put("/:id", UpdateTeacherAPI)
	api.Delete("/:id", DeleteTeacherAPI)
	api.Get("/:id/classes", GetTeacherClassesAPI)
}
