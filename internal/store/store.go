// Package store holds the client application state: session, appointments,
// pharmacy cart and orders, lab bookings and results, health metrics and the
// UI theme. All mutations are atomic and notify subscribers with a copy of
// the resulting state.
package store

import (
	"context"
	"fmt"
	"runtime/debug"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/and161185/medhub/internal/errs"
	"github.com/and161185/medhub/internal/model"
)

// Authenticator verifies credentials and returns the resulting session.
// Implementations may block; they must honour ctx cancellation.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (model.Session, error)
}

// Listener receives a private copy of the state after each applied mutation.
type Listener func(State)

type subscriber struct {
	fn     Listener
	active atomic.Bool
}

// Store is the single in-memory source of truth for the application.
type Store struct {
	mu         sync.Mutex
	st         State
	sessionGen uint64 // bumped by every session-changing call
	subs       []*subscriber
	closed     bool

	baseCtx context.Context
	cancel  context.CancelFunc

	auth  Authenticator
	log   *zap.Logger
	now   func() time.Time
	newID func() (string, error)
}

// Option customises a Store at construction.
type Option func(*Store)

// WithClock overrides the time source used for order timestamps.
func WithClock(now func() time.Time) Option { return func(s *Store) { s.now = now } }

// WithIDGenerator overrides order id generation.
func WithIDGenerator(gen func() (string, error)) Option { return func(s *Store) { s.newID = gen } }

// WithTheme sets the initial theme.
func WithTheme(t model.Theme) Option { return func(s *Store) { s.st.Theme = t } }

// New constructs an empty, signed-out store. A nil logger disables logging.
// With a nil authenticator every Login fails with errs.ErrUnauthorized.
func New(auth Authenticator, log *zap.Logger, opts ...Option) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Store{
		st:      State{Theme: model.ThemeLight},
		baseCtx: ctx,
		cancel:  cancel,
		auth:    auth,
		log:     log,
		now:     time.Now,
		newID:   newUUID,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func newUUID() (string, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Close detaches all subscribers and aborts pending logins. Further
// mutations fail with errs.ErrClosed. Safe to call more than once.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.cancel()
	for _, sub := range s.subs {
		sub.active.Store(false)
	}
	s.subs = nil
	s.log.Debug("store closed", zap.Uint64("version", s.st.Version))
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.Clone()
}

// Subscribe registers fn to be called after every applied mutation and
// returns a function that removes it. Listeners run synchronously on the
// mutating goroutine, after the store lock is released.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	sub := &subscriber{fn: fn}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return func() {}
	}
	sub.active.Store(true)
	s.subs = append(s.subs, sub)
	return func() {
		sub.active.Store(false)
		s.mu.Lock()
		defer s.mu.Unlock()
		s.subs = slices.DeleteFunc(s.subs, func(x *subscriber) bool { return x == sub })
	}
}

// update runs fn under the lock. When fn reports a change the version is
// bumped and subscribers are notified after unlocking.
func (s *Store) update(op string, fn func(st *State) (bool, error), fields ...zap.Field) (bool, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false, errs.ErrClosed
	}
	changed, err := fn(&s.st)
	if err != nil || !changed {
		s.mu.Unlock()
		return false, err
	}
	s.st.Version++
	snap := s.st.Clone()
	subs := slices.Clone(s.subs)
	s.mu.Unlock()

	s.log.Debug("state updated", append(fields, zap.String("op", op), zap.Uint64("version", snap.Version))...)
	s.notify(op, subs, snap)
	return true, nil
}

func (s *Store) notify(op string, subs []*subscriber, snap State) {
	first := true
	for _, sub := range subs {
		if !sub.active.Load() {
			continue
		}
		st := snap
		if !first {
			st = snap.Clone()
		}
		first = false
		s.deliver(op, sub.fn, st)
	}
}

// deliver isolates the store from a panicking listener.
func (s *Store) deliver(op string, fn Listener, st State) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("listener panic",
				zap.Any("reason", r),
				zap.ByteString("stack", debug.Stack()),
				zap.String("op", op),
			)
		}
	}()
	fn(st)
}

// --- Session ---

// SetUser replaces the signed-in user; nil signs out. Any login still in
// flight is invalidated.
func (s *Store) SetUser(u *model.User) error {
	var cp *model.User
	if u != nil {
		if err := model.Validate(*u); err != nil {
			return err
		}
		c := u.Clone()
		cp = &c
	}
	_, err := s.update("setUser", func(st *State) (bool, error) {
		s.sessionGen++
		st.User = cp
		st.IsAuthenticated = cp != nil
		st.AccessToken = ""
		st.TokenExpiresAt = time.Time{}
		return true, nil
	})
	return err
}

// Login authenticates and installs the resulting session. If SetUser,
// Logout or a newer Login runs before authentication completes, the result
// is discarded and errs.ErrStaleSession is returned.
func (s *Store) Login(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return fmt.Errorf("%w: empty email/password", errs.ErrValidation)
	}
	if s.auth == nil {
		return fmt.Errorf("%w: no authenticator configured", errs.ErrUnauthorized)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return errs.ErrClosed
	}
	s.sessionGen++
	gen := s.sessionGen
	base := s.baseCtx
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(base, cancel)
	defer stop()

	sess, err := s.auth.Authenticate(ctx, email, password)
	if err != nil {
		if base.Err() != nil {
			return errs.ErrClosed
		}
		s.log.Info("login failed", zap.String("email", email), zap.Error(err))
		return err
	}
	if err := model.Validate(sess.User); err != nil {
		return fmt.Errorf("authenticator returned bad profile: %w", err)
	}

	u := sess.User.Clone()
	_, err = s.update("login", func(st *State) (bool, error) {
		if s.sessionGen != gen {
			return false, errs.ErrStaleSession
		}
		st.User = &u
		st.IsAuthenticated = true
		st.AccessToken = sess.AccessToken
		st.TokenExpiresAt = sess.ExpiresAt
		return true, nil
	}, zap.String("userID", u.ID))
	if err != nil {
		s.log.Info("login result discarded", zap.String("email", email), zap.Error(err))
	}
	return err
}

// Logout clears the session. Calling it while signed out is a no-op.
func (s *Store) Logout() error {
	_, err := s.update("logout", func(st *State) (bool, error) {
		s.sessionGen++
		if st.User == nil && st.AccessToken == "" {
			return false, nil
		}
		st.User = nil
		st.IsAuthenticated = false
		st.AccessToken = ""
		st.TokenExpiresAt = time.Time{}
		return true, nil
	})
	return err
}

// --- Appointments ---

// AddAppointment appends a new upcoming appointment.
func (s *Store) AddAppointment(a model.Appointment) error {
	if err := model.ValidateAppointment(a); err != nil {
		return err
	}
	if a.Status != model.AppointmentUpcoming {
		return fmt.Errorf("%w: new appointment must be %s, got %s", errs.ErrValidation, model.AppointmentUpcoming, a.Status)
	}
	a = a.Clone()
	_, err := s.update("addAppointment", func(st *State) (bool, error) {
		if slices.ContainsFunc(st.Appointments, func(x model.Appointment) bool { return x.ID == a.ID }) {
			return false, fmt.Errorf("appointment %s: %w", a.ID, errs.ErrAlreadyExists)
		}
		st.Appointments = append(st.Appointments, a)
		return true, nil
	}, zap.String("appointmentID", a.ID), zap.String("doctorID", a.DoctorID))
	return err
}

// CancelAppointment moves an upcoming appointment to cancelled. Unknown ids
// and already finished appointments are left alone and report false.
func (s *Store) CancelAppointment(id string) (bool, error) {
	return s.moveAppointment("cancelAppointment", id, model.AppointmentCancelled)
}

// CompleteAppointment moves an upcoming appointment to completed, with the
// same no-op rules as CancelAppointment.
func (s *Store) CompleteAppointment(id string) (bool, error) {
	return s.moveAppointment("completeAppointment", id, model.AppointmentCompleted)
}

func (s *Store) moveAppointment(op, id string, to model.AppointmentStatus) (bool, error) {
	return s.update(op, func(st *State) (bool, error) {
		i := slices.IndexFunc(st.Appointments, func(x model.Appointment) bool { return x.ID == id })
		if i < 0 || st.Appointments[i].Status.Terminal() {
			return false, nil
		}
		st.Appointments[i].Status = to
		return true, nil
	}, zap.String("appointmentID", id))
}

// --- Pharmacy ---

// AddToCart adds one unit of m, creating its line if needed. An existing
// line keeps the medicine snapshot taken when it was first added.
func (s *Store) AddToCart(m model.Medicine) error {
	if err := model.ValidateMedicine(m); err != nil {
		return err
	}
	_, err := s.update("addToCart", func(st *State) (bool, error) {
		i := slices.IndexFunc(st.Cart, func(l model.CartLine) bool { return l.Medicine.ID == m.ID })
		if i >= 0 {
			st.Cart[i].Quantity++
			return true, nil
		}
		st.Cart = append(st.Cart, model.CartLine{Medicine: m, Quantity: 1})
		return true, nil
	}, zap.String("medicineID", m.ID))
	return err
}

// RemoveFromCart deletes the line for medicineID. Reports false if there was none.
func (s *Store) RemoveFromCart(medicineID string) (bool, error) {
	return s.update("removeFromCart", func(st *State) (bool, error) {
		n := len(st.Cart)
		st.Cart = slices.DeleteFunc(st.Cart, func(l model.CartLine) bool { return l.Medicine.ID == medicineID })
		return len(st.Cart) != n, nil
	}, zap.String("medicineID", medicineID))
}

// UpdateCartQuantity sets the quantity of an existing line. Non-positive
// quantities are rejected; use RemoveFromCart to drop a line.
func (s *Store) UpdateCartQuantity(medicineID string, qty int) (bool, error) {
	if qty <= 0 {
		return false, fmt.Errorf("%w: quantity must be positive, got %d", errs.ErrValidation, qty)
	}
	return s.update("updateCartQuantity", func(st *State) (bool, error) {
		i := slices.IndexFunc(st.Cart, func(l model.CartLine) bool { return l.Medicine.ID == medicineID })
		if i < 0 || st.Cart[i].Quantity == qty {
			return false, nil
		}
		st.Cart[i].Quantity = qty
		return true, nil
	}, zap.String("medicineID", medicineID), zap.Int("qty", qty))
}

// ClearCart empties the cart.
func (s *Store) ClearCart() error {
	_, err := s.update("clearCart", func(st *State) (bool, error) {
		if len(st.Cart) == 0 {
			return false, nil
		}
		st.Cart = nil
		return true, nil
	})
	return err
}

// PlaceOrder snapshots the cart into a pending order and empties the cart.
// An empty cart or blank address is rejected without any change.
func (s *Store) PlaceOrder(deliveryAddress string) (model.Order, error) {
	deliveryAddress = strings.TrimSpace(deliveryAddress)
	if deliveryAddress == "" {
		return model.Order{}, fmt.Errorf("%w: empty delivery address", errs.ErrValidation)
	}
	var order model.Order
	_, err := s.update("placeOrder", func(st *State) (bool, error) {
		if len(st.Cart) == 0 {
			return false, errs.ErrEmptyCart
		}
		id, err := s.newID()
		if err != nil {
			return false, fmt.Errorf("order id: %w", err)
		}
		order = model.Order{
			ID:              id,
			Items:           model.CloneCart(st.Cart),
			Total:           model.CartTotal(st.Cart),
			Status:          model.OrderPending,
			OrderDate:       s.now(),
			DeliveryAddress: deliveryAddress,
		}
		st.Orders = append(st.Orders, order)
		st.Cart = nil
		return true, nil
	})
	if err != nil {
		return model.Order{}, err
	}
	s.log.Info("order placed", zap.String("orderID", order.ID), zap.String("total", order.Total.String()), zap.Int("lines", len(order.Items)))
	return order.Clone(), nil
}

// AdvanceOrder moves an order forward in its fulfillment lifecycle.
func (s *Store) AdvanceOrder(id string, next model.OrderStatus) error {
	_, err := s.update("advanceOrder", func(st *State) (bool, error) {
		i := slices.IndexFunc(st.Orders, func(o model.Order) bool { return o.ID == id })
		if i < 0 {
			return false, fmt.Errorf("order %s: %w", id, errs.ErrNotFound)
		}
		cur := st.Orders[i].Status
		if !cur.CanAdvanceTo(next) {
			return false, fmt.Errorf("order %s %s -> %s: %w", id, cur, next, errs.ErrInvalidTransition)
		}
		st.Orders[i].Status = next
		return true, nil
	}, zap.String("orderID", id), zap.String("status", string(next)))
	return err
}

// --- Lab ---

// AddLabAppointment appends a new scheduled lab booking.
func (s *Store) AddLabAppointment(a model.LabAppointment) error {
	if err := model.Validate(a); err != nil {
		return err
	}
	if a.Status != model.LabScheduled {
		return fmt.Errorf("%w: new lab appointment must be %s, got %s", errs.ErrValidation, model.LabScheduled, a.Status)
	}
	_, err := s.update("addLabAppointment", func(st *State) (bool, error) {
		if slices.ContainsFunc(st.LabAppointments, func(x model.LabAppointment) bool { return x.ID == a.ID }) {
			return false, fmt.Errorf("lab appointment %s: %w", a.ID, errs.ErrAlreadyExists)
		}
		st.LabAppointments = append(st.LabAppointments, a)
		return true, nil
	}, zap.String("labAppointmentID", a.ID), zap.String("testID", a.Test.ID))
	return err
}

// CancelLabAppointment moves a scheduled lab booking to cancelled. Unknown
// ids and finished bookings report false.
func (s *Store) CancelLabAppointment(id string) (bool, error) {
	return s.moveLab("cancelLabAppointment", id, model.LabCancelled)
}

// CompleteLabAppointment moves a scheduled lab booking to completed.
func (s *Store) CompleteLabAppointment(id string) (bool, error) {
	return s.moveLab("completeLabAppointment", id, model.LabCompleted)
}

func (s *Store) moveLab(op, id string, to model.LabStatus) (bool, error) {
	return s.update(op, func(st *State) (bool, error) {
		i := slices.IndexFunc(st.LabAppointments, func(x model.LabAppointment) bool { return x.ID == id })
		if i < 0 || st.LabAppointments[i].Status.Terminal() {
			return false, nil
		}
		st.LabAppointments[i].Status = to
		return true, nil
	}, zap.String("labAppointmentID", id))
}

// AddLabResult records a result delivered by the lab.
func (s *Store) AddLabResult(r model.LabResult) error {
	if err := model.Validate(r); err != nil {
		return err
	}
	r = r.Clone()
	_, err := s.update("addLabResult", func(st *State) (bool, error) {
		if slices.ContainsFunc(st.LabResults, func(x model.LabResult) bool { return x.ID == r.ID }) {
			return false, fmt.Errorf("lab result %s: %w", r.ID, errs.ErrAlreadyExists)
		}
		st.LabResults = append(st.LabResults, r)
		return true, nil
	}, zap.String("labResultID", r.ID), zap.String("testID", r.TestID))
	return err
}

// --- Health ---

// AddHealthMetric appends a reading. Readings are never deduplicated.
func (s *Store) AddHealthMetric(m model.HealthMetric) error {
	if err := model.Validate(m); err != nil {
		return err
	}
	_, err := s.update("addHealthMetric", func(st *State) (bool, error) {
		st.HealthMetrics = append(st.HealthMetrics, m)
		return true, nil
	}, zap.String("type", string(m.Type)))
	return err
}

// --- UI ---

// ToggleTheme flips between light and dark and returns the new theme.
func (s *Store) ToggleTheme() (model.Theme, error) {
	var t model.Theme
	_, err := s.update("toggleTheme", func(st *State) (bool, error) {
		st.Theme = st.Theme.Toggle()
		t = st.Theme
		return true, nil
	})
	return t, err
}
