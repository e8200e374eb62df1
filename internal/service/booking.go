package service

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/and161185/medhub/internal/catalog"
	"github.com/and161185/medhub/internal/errs"
	"github.com/and161185/medhub/internal/model"
	"github.com/and161185/medhub/internal/store"
)

// BookingService turns catalog selections into store records.
type BookingService interface {
	// BookDoctor books an upcoming consultation with a catalog doctor.
	BookDoctor(ctx context.Context, req DoctorBooking) (model.Appointment, error)
	// BookLabTest schedules a catalog lab test.
	BookLabTest(ctx context.Context, req LabBooking) (model.LabAppointment, error)
	// AddMedicine puts one unit of a catalog medicine in the cart.
	AddMedicine(ctx context.Context, medicineID string) error
}

// DoctorBooking is a consultation request.
type DoctorBooking struct {
	DoctorID string
	Date     string
	Time     string
	Type     model.CallType
	Notes    string
}

// LabBooking is a lab test request.
type LabBooking struct {
	TestID   string
	Date     string
	Time     string
	Location string
}

type BookingServiceImpl struct {
	cat   catalog.Catalog
	st    *store.Store
	log   *zap.Logger
	newID func() (uuid.UUID, error)
}

var _ BookingService = (*BookingServiceImpl)(nil)

// NewBookingService constructs BookingService over a catalog and a store.
func NewBookingService(cat catalog.Catalog, st *store.Store, log *zap.Logger) *BookingServiceImpl {
	if log == nil {
		log = zap.NewNop()
	}
	return &BookingServiceImpl{cat: cat, st: st, log: log, newID: uuid.NewV4}
}

func (s *BookingServiceImpl) requireSession() error {
	if !store.Select(s.st, func(st store.State) bool { return st.IsAuthenticated }) {
		return errs.ErrUnauthorized
	}
	return nil
}

// BookDoctor validates the request against the catalog and stores an
// appointment carrying a snapshot of the doctor.
func (s *BookingServiceImpl) BookDoctor(ctx context.Context, req DoctorBooking) (model.Appointment, error) {
	if err := ctx.Err(); err != nil {
		return model.Appointment{}, err
	}
	if err := s.requireSession(); err != nil {
		return model.Appointment{}, err
	}
	d, err := s.cat.Doctor(req.DoctorID)
	if err != nil {
		return model.Appointment{}, err
	}
	if d.Availability == model.Offline {
		return model.Appointment{}, fmt.Errorf("%w: doctor %s is offline", errs.ErrValidation, d.ID)
	}
	id, err := s.newID()
	if err != nil {
		return model.Appointment{}, err
	}
	a := model.Appointment{
		ID:       id.String(),
		DoctorID: d.ID,
		Doctor:   d,
		Date:     req.Date,
		Time:     req.Time,
		Type:     req.Type,
		Status:   model.AppointmentUpcoming,
		Notes:    req.Notes,
	}
	if err := s.st.AddAppointment(a); err != nil {
		return model.Appointment{}, err
	}
	s.log.Info("doctor booked", zap.String("appointmentID", a.ID), zap.String("doctorID", d.ID))
	return a, nil
}

// BookLabTest validates the request and stores a scheduled lab appointment.
func (s *BookingServiceImpl) BookLabTest(ctx context.Context, req LabBooking) (model.LabAppointment, error) {
	if err := ctx.Err(); err != nil {
		return model.LabAppointment{}, err
	}
	if err := s.requireSession(); err != nil {
		return model.LabAppointment{}, err
	}
	lt, err := s.cat.LabTest(req.TestID)
	if err != nil {
		return model.LabAppointment{}, err
	}
	id, err := s.newID()
	if err != nil {
		return model.LabAppointment{}, err
	}
	a := model.LabAppointment{
		ID:       id.String(),
		Test:     lt,
		Date:     req.Date,
		Time:     req.Time,
		Location: req.Location,
		Status:   model.LabScheduled,
	}
	if err := s.st.AddLabAppointment(a); err != nil {
		return model.LabAppointment{}, err
	}
	s.log.Info("lab test booked", zap.String("labAppointmentID", a.ID), zap.String("testID", lt.ID))
	return a, nil
}

// AddMedicine adds a catalog medicine to the cart. Out-of-stock items are refused.
func (s *BookingServiceImpl) AddMedicine(ctx context.Context, medicineID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m, err := s.cat.Medicine(medicineID)
	if err != nil {
		return err
	}
	if !m.InStock {
		return fmt.Errorf("%w: %s is out of stock", errs.ErrValidation, m.Name)
	}
	return s.st.AddToCart(m)
}
