package helpers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/TV3ntu/nova-crm-backend/app/services"
)

// ServiceError translates the billing/enrollment error taxonomy into an
// HTTP response: missing entities are 404, business-rule conflicts 409,
// bad input 400. Anything unrecognized is a storage failure and becomes
// an opaque 500 so callers can tell "bad request" from "system down".
func ServiceError(c *fiber.Ctx, err error) error {
	var (
		studentNotFound *services.StudentNotFoundError
		classNotFound   *services.ClassNotFoundError
		teacherNotFound *services.TeacherNotFoundError
		paymentNotFound *services.PaymentNotFoundError
		alreadyEnrolled *services.AlreadyEnrolledError
		notEnrolled     *services.NotEnrolledError
		duplicate       *services.DuplicatePaymentError
		invalidPeriod   *services.InvalidPaymentPeriodError
		noPayable       *services.NoPayableClassesError
		invalidArg      *services.InvalidArgumentError
	)

	switch {
	case errors.As(err, &studentNotFound),
		errors.As(err, &classNotFound),
		errors.As(err, &teacherNotFound),
		errors.As(err, &paymentNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &duplicate):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":               err.Error(),
			"existing_payment_id": duplicate.ExistingPaymentID,
		})
	case errors.As(err, &alreadyEnrolled),
		errors.As(err, &notEnrolled),
		errors.As(err, &noPayable):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &invalidPeriod),
		errors.As(err, &invalidArg):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		log.Printf("Internal error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
}
