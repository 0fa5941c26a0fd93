package students

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/TV3ntu/nova-crm-backend/app/helpers"
	"github.com/TV3ntu/nova-crm-backend/app/models"
)

type StudentRequest struct {
	FirstName string  `json:"first_name" validate:"required"`
	LastName  string  `json:"last_name" validate:"required"`
	Phone     string  `json:"phone" validate:"required"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	Address   *string `json:"address,omitempty"`
	BirthDate *string `json:"birth_date,omitempty"` // YYYY-MM-DD
}

func (r *StudentRequest) toModel(id string) (*models.Student, error) {
	student := &models.Student{
		ID:        id,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Phone:     r.Phone,
		Email:     r.Email,
		Address:   r.Address,
	}
	if r.BirthDate != nil {
		parsed, err := time.Parse("2006-01-02", *r.BirthDate)
		if err != nil {
			return nil, err
		}
		student.BirthDate = &parsed
	}
	return student, nil
}

func GetStudentsAPI(c *fiber.Ctx) error {
	list, err := store.FindAll()
	if err != nil {
		return helpers.ServiceError(c, err)
	}
	return c.JSON(fiber.Map{"students": list, "count": len(list)})
}

// SearchStudentsAPI matches by name or phone via the q query parameter.
func SearchStudentsAPI(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing query parameter q"})
	}
	list, err := store.Search(query)
	if err != nil {
		return helpers.ServiceError(c, err)
	}
	return c.JSON(fiber.Map{"students": list, "count": len(list)})
}

func GetStudentAPI(c *fiber.Ctx) error {
	student, err := store.FindByID(c.Params("id"))
	if err != nil {
		return helpers.ServiceError(c, err)
	}
	if student == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
	}
	return c.JSON(student)
}

func CreateStudentAPI(c *fiber.Ctx) error {
	var req StudentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := helpers.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	student, err := req.toModel(uuid.NewString())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid birth_date, expected YYYY-MM-DD"})
	}
	if err := store.Save(student); err != nil {
		return helpers.ServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(student)
}

func UpdateStudentAPI(c *fiber.Ctx) error {
	existing, err := store.FindByID(c.Params("id"))
	if err != nil {
		return helpers.ServiceError(c, err)
	}
	if existing == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
	}

	var req StudentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := helpers.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	student, err := req.toModel(existing.ID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid birth_date, expected YYYY-MM-DD"})
	}
	if err := store.Save(student); err != nil {
		return helpers.ServiceError(c, err)
	}
	return c.JSON(student)
}

// DeleteStudentAPI removes a student. Active enrollments are deactivated
// first; students with payment history cannot be removed.
func DeleteStudentAPI(c *fiber.Ctx) error {
	id := c.Params("id")
	existing, err := store.FindByID(id)
	if err != nil {
		return helpers.ServiceError(c, err)
	}
	if existing == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
	}

	if err := ledger.UnenrollAll(id); err != nil {
		return helpers.ServiceError(c, err)
	}
	if err := store.Delete(id); err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Student has payment history and cannot be deleted",
		})
	}
	return c.JSON(fiber.Map{"message": "Student deleted"})
}

func GetStudentClassesAPI(c *fiber.Ctx) error {
	id := c.Params("id")
	enrollments, err := ledger.ActiveEnrollmentsForStudent(id)
	if err != nil {
		return helpers.ServiceError(c, err)
	}

	list := make([]*models.DanceClass, 0, len(enrollments))
	for _, enrollment := range enrollments {
		class, err := classes.FindByID(enrollment.ClassID)
		if err != nil {
			return helpers.ServiceError(c, err)
		}
		if class != nil {
			list = append(list, class)
		}
	}
	return c.JSON(fiber.Map{"classes": list, "count": len(list)})
}

func GetStudentPaymentsAPI(c *fiber.Ctx) error {
	list, err := billing.PaymentsByStudent(c.Params("id"))
	if err != nil {
		return helpers.ServiceError(c, err)
	}
	return c.JSON(fiber.Map{"payments": list, "count": len(list)})
}
