package enrollments

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/TV3ntu/nova-crm-backend/app/helpers"
)

type EnrollRequest struct {
	StudentID      string  `json:"student_id" validate:"required,uuid"`
	ClassID        string  `json:"class_id" validate:"required,uuid"`
	EnrollmentDate *string `json:"enrollment_date,omitempty"` // YYYY-MM-DD, defaults to today
	Notes          *string `json:"notes,omitempty"`
}

func EnrollAPI(c *fiber.Ctx) error {
	var req EnrollRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := helpers.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var date *time.Time
	if req.EnrollmentDate != nil {
		parsed, err := time.Parse("2006-01-02", *req.EnrollmentDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid enrollment_date, expected YYYY-MM-DD"})
		}
		date = &parsed
	}

	enrollment, err := ledger.Enroll(req.StudentID, req.ClassID, date, req.Notes)
	if err != nil {
		return helpers.ServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(enrollment)
}

type UnenrollRequest struct {
	StudentID string `json:"student_id" validate:"required,uuid"`
	ClassID   string `json:"class_id" validate:"required,uuid"`
}

func UnenrollAPI(c *fiber.Ctx) error {
	var req UnenrollRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := helpers.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	enrollment, err := ledger.Unenroll(req.StudentID, req.ClassID)
	if err != nil {
		return helpers.ServiceError(c, err)
	}
	return c.JSON(enrollment)
}

func GetStudentEnrollmentsAPI(c *fiber.Ctx) error {
	enrollments, err := ledger.ActiveEnrollmentsForStudent(c.Params("studentId"))
	if err != nil {
		return helpers.ServiceError(c, err)
	}
	return c.JSON(fiber.Map{"enrollments": enrollments, "count": len(enrollments)})
}

func GetClassEnrollmentsAPI(c *fiber.Ctx) error {
	enrollments, err := ledger.ActiveEnrollmentsForClass(c.Params("classId"))
	if err != nil {
		return helpers.ServiceError(c, err)
	}
	return c.JSON(fiber.Map{"enrollments": enrollments, "count": len(enrollments)})
}

func GetEnrollmentStatusAPI(c *fiber.Ctx) error {
	enrolled, err := ledger.IsEnrolled(c.Params("studentId"), c.Params("classId"))
	if err != nil {
		return helpers.ServiceError(c, err)
	}
	return c.JSON(fiber.Map{"enrolled": enrolled})
}
