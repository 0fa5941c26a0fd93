package services

import (
	"fmt"

	"github.com/TV3ntu/nova-crm-backend/app/models"
)

// The billing and enrollment operations fail with one of the typed
// errors below. Handlers branch on the concrete type with errors.As;
// anything else coming out of a service is a storage failure.

type StudentNotFoundError struct {
	StudentID string
}

func (e *StudentNotFoundError) Error() string {
	return fmt.Sprintf("student not found: %s", e.StudentID)
}

type ClassNotFoundError struct {
	ClassID string
}

func (e *ClassNotFoundError) Error() string {
	return fmt.Sprintf("class not found: %s", e.ClassID)
}

type TeacherNotFoundError struct {
	TeacherID string
}

func (e *TeacherNotFoundError) Error() string {
	return fmt.Sprintf("teacher not found: %s", e.TeacherID)
}

type PaymentNotFoundError struct {
	PaymentID string
}

func (e *PaymentNotFoundError) Error() string {
	return fmt.Sprintf("payment not found: %s", e.PaymentID)
}

type AlreadyEnrolledError struct {
	StudentID string
	ClassID   string
}

func (e *AlreadyEnrolledError) Error() string {
	return fmt.Sprintf("student %s is already enrolled in class %s", e.StudentID, e.ClassID)
}

type NotEnrolledError struct {
	StudentID string
	ClassID   string
}

func (e *NotEnrolledError) Error() string {
	return fmt.Sprintf("student %s is not enrolled in class %s", e.StudentID, e.ClassID)
}

// DuplicatePaymentError carries the conflicting payment's id so the
// caller can update it instead of re-registering.
type DuplicatePaymentError struct {
	StudentID         string
	ClassID           string
	Month             models.Month
	ExistingPaymentID string
}

func (e *DuplicatePaymentError) Error() string {
	return fmt.Sprintf("payment already exists for student %s, class %s, month %s (existing payment: %s)",
		e.StudentID, e.ClassID, e.Month, e.ExistingPaymentID)
}

// InvalidPaymentPeriodError: the payment month precedes the month the
// student enrolled in the class.
type InvalidPaymentPeriodError struct {
	StudentID       string
	ClassID         string
	Month           models.Month
	EnrollmentMonth models.Month
}

func (e *InvalidPaymentPeriodError) Error() string {
	return fmt.Sprintf("payment month %s precedes enrollment month %s for student %s in class %s",
		e.Month, e.EnrollmentMonth, e.StudentID, e.ClassID)
}

type NoPayableClassesError struct {
	StudentID string
	Month     models.Month
}

func (e *NoPayableClassesError) Error() string {
	return fmt.Sprintf("student %s has no payable classes for %s", e.StudentID, e.Month)
}

type InvalidArgumentError struct {
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return "invalid argument: " + e.Reason
}
