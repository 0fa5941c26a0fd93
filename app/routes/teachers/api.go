package teachers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/TV3ntu/nova-crm-backend/app/helpers"
	"github.com/TV3ntu/nova-crm-backend/app/models"
)

type TeacherRequest struct {
	FirstName     string  `json:"first_name" validate:"required"`
	LastName      string  `json:"last_name" validate:"required"`
	Phone         string  `json:"phone" validate:"required"`
	Email         *string `json:"email,omitempty" validate:"omitempty,email"`
	Address       *string `json:"address,omitempty"`
	IsStudioOwner bool    `json:"is_studio_owner"`
}

func GetTeachersAPI(c *fiber.Ctx) error {
	list, err := store.FindAll()
	if err != nil {
		return helpers.ServiceError(c, err)
	}
	return c.JSON(fiber.Map{"teachers": list, "count": len(list)})
}

func GetTeacherAPI(c *fiber.Ctx) error {
	teacher, err := store.FindByID(c.Params("id"))
	if err != nil {
		return helpers.ServiceError(c, err)
	}
	if teacher == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Teacher not found"})
	}
	return c.JSON(teacher)
}

func CreateTeacherAPI(c *fiber.Ctx) error {
	var req TeacherRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := helpers.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	teacher := &models.Teacher{
		ID:            uuid.NewString(),
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		IsStudioOwner: req.IsStudioOwner,
	}
	if err := store.Save(teacher); err != nil {
		return helpers.ServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(teacher)
}

func UpdateTeacherAPI(c *fiber.Ctx) error {
	existing, err := store.FindByID(c.Params("id"))
	if err != nil {
		return helpers.ServiceError(c, err)
	}
	if existing == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Teacher not found"})
	}

	var req TeacherRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := helpers.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	existing.FirstName = req.FirstName
	existing.LastName = req.LastName
	existing.Phone = req.Phone
	existing.Email = req.Email
	existing.Address = req.Address
	existing.IsStudioOwner = req.IsStudioOwner
	if err := store.Save(existing); err != nil {
		return helpers.ServiceError(c, err)
	}
	return c.JSON(existing)
}

func DeleteTeacherAPI(c *fiber.Ctx) error {
	existing, err := store.FindByID(c.Params("id"))
	if err != nil {
		return helpers.ServiceError(c, err)
	}
	if existing == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Teacher not found"})
	}
	if err := store.Delete(c.Params("id")); err != nil {
		return helpers.ServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Teacher deleted"})
}

func GetTeacherClassesAPI(c *fiber.Ctx) error {
	list, err := classes.FindByTeacher(c.Params("id"))
	if err != nil {
		return helpers.ServiceError(c, err)
	}
	return c.JSON(fiber.Map{"classes": list, "count": len(list)})
}
