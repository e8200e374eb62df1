package model

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Availability reports whether a doctor currently takes consultations.
type Availability string

const (
	Available Availability = "available"
	Busy      Availability = "busy"
	Offline   Availability = "offline"
)

// Doctor is a catalog record.
type Doctor struct {
	ID              string          `json:"id" validate:"required"`
	Name            string          `json:"name" validate:"required"`
	Specialty       string          `json:"specialty" validate:"required"`
	Rating          float64         `json:"rating" validate:"gte=0,lte=5"`
	Reviews         int             `json:"reviews" validate:"gte=0"`
	Experience      int             `json:"experience" validate:"gte=0"` // years
	Avatar          string          `json:"avatar"`
	Availability    Availability    `json:"availability" validate:"required,oneof=available busy offline"`
	ConsultationFee decimal.Decimal `json:"consultationFee"`
	Languages       []string        `json:"languages"`
	Bio             string          `json:"bio,omitempty"`
}

// Clone returns a deep copy suitable for embedding as a snapshot.
func (d Doctor) Clone() Doctor {
	out := d
	out.Languages = slices.Clone(d.Languages)
	return out
}

// CallType is the consultation channel.
type CallType string

const (
	CallVideo CallType = "video"
	CallVoice CallType = "voice"
	CallChat  CallType = "chat"
)

// AppointmentStatus is the lifecycle state of a doctor appointment.
type AppointmentStatus string

const (
	AppointmentUpcoming  AppointmentStatus = "upcoming"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

// Terminal reports whether no further transition is allowed.
func (s AppointmentStatus) Terminal() bool {
	return s == AppointmentCompleted || s == AppointmentCancelled
}

// Appointment links the user to a doctor snapshot taken at booking time.
type Appointment struct {
	ID       string            `json:"id" validate:"required"`
	DoctorID string            `json:"doctorId" validate:"required"`
	Doctor   Doctor            `json:"doctor"`
	Date     string            `json:"date" validate:"required"`
	Time     string            `json:"time" validate:"required"`
	Type     CallType          `json:"type" validate:"required,oneof=video voice chat"`
	Status   AppointmentStatus `json:"status" validate:"required,oneof=upcoming completed cancelled"`
	Notes    string            `json:"notes,omitempty"`
}

// Clone returns a deep copy of the appointment.
func (a Appointment) Clone() Appointment {
	out := a
	out.Doctor = a.Doctor.Clone()
	return out
}
