package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/TV3ntu/nova-crm-backend/app/config"
	"github.com/TV3ntu/nova-crm-backend/app/database"
	"github.com/TV3ntu/nova-crm-backend/app/routes/auth"
	"github.com/TV3ntu/nova-crm-backend/app/routes/classes"
	"github.com/TV3ntu/nova-crm-backend/app/routes/dashboard"
	"github.com/TV3ntu/nova-crm-backend/app/routes/enrollments"
	"github.com/TV3ntu/nova-crm-backend/app/routes/payments"
	"github.com/TV3ntu/nova-crm-backend/app/routes/reports"
	"github.com/TV3ntu/nova-crm-backend/app/routes/students"
	"github.com/TV3ntu/nova-crm-backend/app/routes/teachers"
)

// customErrorHandler turns unhandled errors into the API's JSON shape.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
		"code":    code,
	})
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize database
	config.InitDB()
	defer config.GetDB().Close()

	// Run database migrations
	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	app := fiber.New(fiber.Config{
		AppName:      "Nova CRM",
		ErrorHandler: customErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())

	// Health endpoints
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"service": "nova-crm", "status": "ok"})
	})
	app.Get("/api/health", func(c *fiber.Ctx) error {
		if err := config.GetDB().Ping(); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Routes
	auth.SetupAuthRoutes(app)
	students.SetupStudentsRoutes(app)
	teachers.SetupTeachersRoutes(app)
	classes.SetupClassesRoutes(app)
	enrollments.SetupEnrollmentsRoutes(app)
	payments.SetupPaymentsRoutes(app)
	reports.SetupReportsRoutes(app)
	dashboard.SetupDashboardRoutes(app)

	port := config.AppConfig.Port
	log.Printf("Starting Nova CRM on port %s", port)
	log.Fatal(app.Listen(":" + port))
}
