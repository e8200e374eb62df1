package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/and161185/medhub/internal/catalog"
	"github.com/and161185/medhub/internal/model"
	"github.com/and161185/medhub/internal/service"
	"github.com/and161185/medhub/internal/store"
)

// app binds one store instance to a line-oriented command interface.
type app struct {
	st      *store.Store
	cat     catalog.Catalog
	book    service.BookingService
	auth    service.AuthService // nil unless the directory backend is used
	signKey []byte
	out     io.Writer
	log     *zap.Logger
	today   func() time.Time
}

var errQuit = errors.New("quit")

const help = `Commands:
  version
  register <email> <password> <name...>        (directory auth only)
  login <email> <password>
  logout
  whoami
  doctors [query]
  medicines [query]
  labs
  plans
  book <doctorId> <video|voice|chat> <date> <time> [notes...]
  cancel <appointmentId>
  complete <appointmentId>
  cart add <medicineId> | rm <medicineId> | qty <medicineId> <n> | clear | show
  order <address...>
  orders
  advance <orderId> <processing|shipped|delivered>
  lab <testId> <date> <time> <location...>
  lab-cancel <labAppointmentId>
  metric <weight|blood_pressure|heart_rate|glucose|steps> <value> <unit>
  theme
  state
  quit
`

func printJSON(w io.Writer, v any) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// run executes commands from r until EOF or quit. Command errors are
// reported and do not stop the loop.
func (a *app) run(ctx context.Context, r io.Reader) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		err := a.exec(ctx, line)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			a.log.Debug("command failed", zap.String("line", line), zap.Error(err))
			fmt.Fprintf(a.out, "error: %v\n", err)
		}
	}
	return sc.Err()
}

func need(args []string, n int, usage string) error {
	if len(args) < n {
		return fmt.Errorf("usage: %s", usage)
	}
	return nil
}

// exec runs a single command line.
func (a *app) exec(ctx context.Context, line string) error {
	f := strings.Fields(line)
	cmd, args := f[0], f[1:]

	switch cmd {
	case "help":
		fmt.Fprint(a.out, help)

	case "quit", "exit":
		return errQuit

	case "version":
		fmt.Fprintf(a.out, "medhub %s (%s)\n", version, buildDate)

	case "register":
		if err := need(args, 3, "register <email> <password> <name...>"); err != nil {
			return err
		}
		if a.auth == nil {
			return errors.New("register requires -auth directory")
		}
		id, err := a.auth.Register(ctx, model.User{Email: args[0], Name: strings.Join(args[2:], " ")}, args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, id)

	case "login":
		if err := need(args, 2, "login <email> <password>"); err != nil {
			return err
		}
		if err := a.st.Login(ctx, args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "ok")

	case "logout":
		return a.st.Logout()

	case "whoami":
		st := a.st.Snapshot()
		if !st.IsAuthenticated {
			return errors.New("not signed in")
		}
		if st.AccessToken != "" {
			if _, err := service.ParseAccessToken(st.AccessToken, a.signKey); err != nil {
				return err
			}
		}
		printJSON(a.out, st.User)

	case "doctors":
		printJSON(a.out, a.cat.SearchDoctors(strings.Join(args, " ")))

	case "medicines":
		printJSON(a.out, a.cat.SearchMedicines(strings.Join(args, " ")))

	case "labs":
		printJSON(a.out, a.cat.LabTests())

	case "plans":
		printJSON(a.out, a.cat.MealPlans())

	case "book":
		if err := need(args, 4, "book <doctorId> <type> <date> <time> [notes...]"); err != nil {
			return err
		}
		appt, err := a.book.BookDoctor(ctx, service.DoctorBooking{
			DoctorID: args[0],
			Type:     model.CallType(args[1]),
			Date:     args[2],
			Time:     args[3],
			Notes:    strings.Join(args[4:], " "),
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, appt.ID)

	case "cancel", "complete":
		if err := need(args, 1, cmd+" <appointmentId>"); err != nil {
			return err
		}
		move := a.st.CancelAppointment
		if cmd == "complete" {
			move = a.st.CompleteAppointment
		}
		changed, err := move(args[0])
		if err != nil {
			return err
		}
		reportChange(a.out, changed)

	case "cart":
		return a.cart(ctx, args)

	case "order":
		if err := need(args, 1, "order <address...>"); err != nil {
			return err
		}
		o, err := a.st.PlaceOrder(strings.Join(args, " "))
		if err != nil {
			return err
		}
		printJSON(a.out, o)

	case "orders":
		printJSON(a.out, store.Select(a.st, func(s store.State) []model.Order { return s.Orders }))

	case "advance":
		if err := need(args, 2, "advance <orderId> <status>"); err != nil {
			return err
		}
		if err := a.st.AdvanceOrder(args[0], model.OrderStatus(args[1])); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "ok")

	case "lab":
		if err := need(args, 4, "lab <testId> <date> <time> <location...>"); err != nil {
			return err
		}
		la, err := a.book.BookLabTest(ctx, service.LabBooking{
			TestID:   args[0],
			Date:     args[1],
			Time:     args[2],
			Location: strings.Join(args[3:], " "),
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, la.ID)

	case "lab-cancel":
		if err := need(args, 1, "lab-cancel <labAppointmentId>"); err != nil {
			return err
		}
		changed, err := a.st.CancelLabAppointment(args[0])
		if err != nil {
			return err
		}
		reportChange(a.out, changed)

	case "metric":
		if err := need(args, 3, "metric <type> <value> <unit>"); err != nil {
			return err
		}
		id, err := uuid.NewV4()
		if err != nil {
			return err
		}
		return a.st.AddHealthMetric(model.HealthMetric{
			ID:    id.String(),
			Type:  model.MetricType(args[0]),
			Value: args[1],
			Unit:  args[2],
			Date:  a.today().Format(time.DateOnly),
		})

	case "theme":
		t, err := a.st.ToggleTheme()
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, t)

	case "state":
		printJSON(a.out, a.st.Snapshot())

	default:
		return fmt.Errorf("unknown command %q (try help)", cmd)
	}
	return nil
}

func (a *app) cart(ctx context.Context, args []string) error {
	if err := need(args, 1, "cart add|rm|qty|clear|show"); err != nil {
		return err
	}
	switch args[0] {
	case "add":
		if err := need(args, 2, "cart add <medicineId>"); err != nil {
			return err
		}
		return a.book.AddMedicine(ctx, args[1])
	case "rm":
		if err := need(args, 2, "cart rm <medicineId>"); err != nil {
			return err
		}
		changed, err := a.st.RemoveFromCart(args[1])
		if err != nil {
			return err
		}
		reportChange(a.out, changed)
	case "qty":
		if err := need(args, 3, "cart qty <medicineId> <n>"); err != nil {
			return err
		}
		n, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("bad quantity %q", args[2])
		}
		changed, err := a.st.UpdateCartQuantity(args[1], n)
		if err != nil {
			return err
		}
		reportChange(a.out, changed)
	case "clear":
		return a.st.ClearCart()
	case "show":
		st := a.st.Snapshot()
		printJSON(a.out, map[string]any{
			"lines": st.Cart,
			"count": st.CartCount(),
			"total": st.CartTotal(),
		})
	default:
		return fmt.Errorf("unknown cart command %q", args[0])
	}
	return nil
}

func reportChange(w io.Writer, changed bool) {
	if changed {
		fmt.Fprintln(w, "ok")
		return
	}
	fmt.Fprintln(w, "no change")
}
