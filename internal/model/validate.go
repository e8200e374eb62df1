package model

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/and161185/medhub/internal/errs"
)

// validate caches struct metadata; safe for concurrent use.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks struct tags and wraps any failure into errs.ErrValidation.
func Validate(v any) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrValidation, err)
	}
	return nil
}

// ValidateEmail checks that email is a well-formed address.
func ValidateEmail(email string) error {
	if err := validate.Var(email, "required,email"); err != nil {
		return fmt.Errorf("%w: email %q: %v", errs.ErrValidation, email, err)
	}
	return nil
}

// ValidateMedicine checks tags plus the non-negative price rule.
func ValidateMedicine(m Medicine) error {
	if err := Validate(m); err != nil {
		return err
	}
	if m.Price.IsNegative() {
		return fmt.Errorf("%w: medicine %s has negative price", errs.ErrValidation, m.ID)
	}
	return nil
}

// ValidateAppointment checks tags and that the doctor snapshot matches DoctorID.
func ValidateAppointment(a Appointment) error {
	if err := Validate(a); err != nil {
		return err
	}
	if a.Doctor.ID != a.DoctorID {
		return fmt.Errorf("%w: doctorId %q does not match snapshot %q", errs.ErrValidation, a.DoctorID, a.Doctor.ID)
	}
	return nil
}
