package classes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/TV3ntu/nova-crm-backend/app/helpers"
	"github.com/TV3ntu/nova-crm-backend/app/models"
)

type ClassRequest struct {
	Name          string                  `json:"name" validate:"required"`
	Description   *string                 `json:"description,omitempty"`
	Price         decimal.Decimal         `json:"price" validate:"required"`
	DurationHours float64                 `json:"duration_hours" validate:"gt=0"`
	Schedules     []*models.ClassSchedule `json:"schedules,omitempty" validate:"omitempty,dive"`
}

func (r *ClassRequest) validSchedules() bool {
	for _, slot := range r.Schedules {
		if !slot.DayOfWeek.IsValid() || slot.StartHour < 0 || slot.StartHour > 23 ||
			slot.StartMinute < 0 || slot.StartMinute > 59 {
			return false
		}
	}
	return true
}

func GetClassesAPI(c *fiber.Ctx) error {
	list, err := store.FindAll()
	if err != nil {
		return helpers.ServiceError(c, err)
	}
	return c.JSON(fiber.Map{"classes": list, "count": len(list)})
}

// SearchClassesAPI matches by class name or teacher name via q.
func SearchClassesAPI(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing query parameter q"})
	}
	list, err := store.Search(query)
	if err != nil {
		return helpers.ServiceError(c, err)
	}
	return c.JSON(fiber.Map{"classes": list, "count": len(list)})
}

func GetClassAPI(c *fiber.Ctx) error {
	class, err := store.FindByID(c.Params("id"))
	if err != nil {
		return helpers.ServiceError(c, err)
	}
	if class == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Class not found"})
	}
	return c.JSON(class)
}

func CreateClassAPI(c *fiber.Ctx) error {
	var req ClassRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := helpers.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if req.Price.LessThanOrEqual(decimal.Zero) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Price must be positive"})
	}
	if !req.validSchedules() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid schedule slot"})
	}

	class := &models.DanceClass{
		ID:            uuid.NewString(),
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		DurationHours: req.DurationHours,
		Schedules:     req.Schedules,
	}
	if err := store.Save(class); err != nil {
		return helpers.ServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(class)
}

func UpdateClassAPI(c *fiber.Ctx) error {
	existing, err := store.FindByID(c.Params("id"))
	if err != nil {
		return helpers.ServiceError(c, err)
	}
	if existing == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Class not found"})
	}

	var req ClassRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := helpers.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if req.Price.LessThanOrEqual(decimal.Zero) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Price must be positive"})
	}
	if !req.validSchedules() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid schedule slot"})
	}

	existing.Name = req.Name
	existing.Description = req.Description
	existing.Price = req.Price
	existing.DurationHours = req.DurationHours
	existing.Schedules = req.Schedules
	if err := store.Save(existing); err != nil {
		return helpers.ServiceError(c, err)
	}
	return c.JSON(existing)
}

// DeleteClassAPI removes a class with no active enrollments or payment
// history.
func DeleteClassAPI(c *fiber.Ctx) error {
	id := c.Params("id")
	existing, err := store.FindByID(id)
	if err != nil {
		return helpers.ServiceError(c, err)
	}
	if existing == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Class not found"})
	}

	enrollments, err := ledger.ActiveEnrollmentsForClass(id)
	if err != nil {
		return helpers.ServiceError(c, err)
	}
	if len(enrollments) > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Class has active enrollments"})
	}

	if err := store.Delete(id); err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Class has payment history and cannot be deleted",
		})
	}
	return c.JSON(fiber.Map{"message": "Class deleted"})
}

type ScheduleRequest struct {
	DayOfWeek   string `json:"day_of_week" validate:"required"`
	StartHour   int    `json:"start_hour" validate:"min=0,max=23"`
	StartMinute int    `json:"start_minute" validate:"min=0,max=59"`
}

func AddScheduleAPI(c *fiber.Ctx) error {
	class, err := store.FindByID(c.Params("id"))
	if err != nil {
		return helpers.ServiceError(c, err)
	}
	if class == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Class not found"})
	}

	var req ScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := helpers.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	day := models.DayOfWeek(req.DayOfWeek)
	if !day.IsValid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid day_of_week"})
	}

	class.Schedules = append(class.Schedules, &models.ClassSchedule{
		DayOfWeek:   day,
		StartHour:   req.StartHour,
		StartMinute: req.StartMinute,
	})
	if err := store.Save(class); err != nil {
		return helpers.ServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(class)
}

func RemoveScheduleAPI(c *fiber.Ctx) error {
	class, err := store.FindByID(c.Params("id"))
	if err != nil {
		return helpers.ServiceError(c, err)
	}
	if class == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Class not found"})
	}

	var req ScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	kept := class.Schedules[:0]
	removed := false
	for _, slot := range class.Schedules {
		if string(slot.DayOfWeek) == req.DayOfWeek && slot.StartHour == req.StartHour && slot.StartMinute == req.StartMinute {
			removed = true
			continue
		}
		kept = append(kept, slot)
	}
	if !removed {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Schedule slot not found"})
	}

	class.Schedules = kept
	if err := store.Save(class); err != nil {
		return helpers.ServiceError(c, err)
	}
	return c.JSON(class)
}

func AssignTeacherAPI(c *fiber.Ctx) error {
	class, err := store.FindByID(c.Params("id"))
	if err != nil {
		return helpers.ServiceError(c, err)
	}
	if class == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Class not found"})
	}
	teacher, err := teachers.FindByID(c.Params("teacherId"))
	if err != nil {
		return helpers.ServiceError(c, err)
	}
	if teacher == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Teacher not found"})
	}

	if err := store.AssignTeacher(class.ID, teacher.ID); err != nil {
		return helpers.ServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Teacher assigned"})
}

func UnassignTeacherAPI(c *fiber.Ctx) error {
	if err := store.UnassignTeacher(c.Params("id"), c.Params("teacherId")); err != nil {
		return helpers.ServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Teacher unassigned"})
}

func GetClassStudentsAPI(c *fiber.Ctx) error {
	enrollments, err := ledger.ActiveEnrollmentsForClass(c.Params("id"))
	if err != nil {
		return helpers.ServiceError(c, err)
	}

	list := make([]*models.Student, 0, len(enrollments))
	for _, enrollment := range enrollments {
		student, err := students.FindByID(enrollment.StudentID)
		if err != nil {
			return helpers.ServiceError(c, err)
		}
		if student != nil {
			list = append(list, student)
		}
	}
	return c.JSON(fiber.Map{"students": list, "count": len(list)})
}

func GetClassTeachersAPI(c *fiber.Ctx) error {
	list, err := teachers.FindByClass(c.Params("id"))
	if err != nil {
		return helpers.ServiceError(c, err)
	}
	return c.JSON(fiber.Map{"teachers": list, "count": len(list)})
}
