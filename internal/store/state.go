package store

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/and161185/medhub/internal/model"
)

// State is a point-in-time copy of everything the store holds.
// Values handed out by the store never alias its internal slices.
type State struct {
	User            *model.User            `json:"user"`
	IsAuthenticated bool                   `json:"isAuthenticated"`
	AccessToken     string                 `json:"-"`
	TokenExpiresAt  time.Time              `json:"tokenExpiresAt,omitzero"`
	Appointments    []model.Appointment    `json:"appointments"`
	Cart            []model.CartLine       `json:"cart"`
	Orders          []model.Order          `json:"orders"`
	LabAppointments []model.LabAppointment `json:"labAppointments"`
	LabResults      []model.LabResult      `json:"labResults"`
	HealthMetrics   []model.HealthMetric   `json:"healthMetrics"`
	Theme           model.Theme            `json:"theme"`
	Version         uint64                 `json:"version"` // +1 per applied mutation
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	out := s
	if s.User != nil {
		u := s.User.Clone()
		out.User = &u
	}
	out.Appointments = cloneEach(s.Appointments, model.Appointment.Clone)
	out.Cart = model.CloneCart(s.Cart)
	out.Orders = cloneEach(s.Orders, model.Order.Clone)
	out.LabAppointments = slices.Clone(s.LabAppointments)
	out.LabResults = cloneEach(s.LabResults, model.LabResult.Clone)
	out.HealthMetrics = slices.Clone(s.HealthMetrics)
	return out
}

func cloneEach[T any](in []T, clone func(T) T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	for i, v := range in {
		out[i] = clone(v)
	}
	return out
}

// CartTotal is Σ price × quantity over the cart.
func (s State) CartTotal() decimal.Decimal { return model.CartTotal(s.Cart) }

// CartCount is the number of units in the cart.
func (s State) CartCount() int {
	n := 0
	for _, l := range s.Cart {
		n += l.Quantity
	}
	return n
}

// CartLine returns the line for medicineID, if any.
func (s State) CartLine(medicineID string) (model.CartLine, bool) {
	i := slices.IndexFunc(s.Cart, func(l model.CartLine) bool { return l.Medicine.ID == medicineID })
	if i < 0 {
		return model.CartLine{}, false
	}
	return s.Cart[i], true
}

// UpcomingAppointments returns appointments still in the upcoming state, in booking order.
func (s State) UpcomingAppointments() []model.Appointment {
	var out []model.Appointment
	for _, a := range s.Appointments {
		if a.Status == model.AppointmentUpcoming {
			out = append(out, a)
		}
	}
	return out
}

// ScheduledLabAppointments returns lab bookings not yet completed or cancelled.
func (s State) ScheduledLabAppointments() []model.LabAppointment {
	var out []model.LabAppointment
	for _, a := range s.LabAppointments {
		if a.Status == model.LabScheduled {
			out = append(out, a)
		}
	}
	return out
}

// LatestMetric returns the most recently appended reading of type t.
func (s State) LatestMetric(t model.MetricType) (model.HealthMetric, bool) {
	for i := len(s.HealthMetrics) - 1; i >= 0; i-- {
		if s.HealthMetrics[i].Type == t {
			return s.HealthMetrics[i], true
		}
	}
	return model.HealthMetric{}, false
}
