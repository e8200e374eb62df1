package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/and161185/medhub/internal/errs"
)

func TestOrderStatus_CanAdvanceTo(t *testing.T) {
	t.Parallel()

	cases := []struct {
		from, to OrderStatus
		want     bool
	}{
		{OrderPending, OrderProcessing, true},
		{OrderPending, OrderDelivered, true},
		{OrderShipped, OrderDelivered, true},
		{OrderProcessing, OrderPending, false},
		{OrderDelivered, OrderDelivered, false},
		{OrderPending, "lost", false},
		{"lost", OrderShipped, false},
	}
	for _, c := range cases {
		require.Equal(t, c.want, c.from.CanAdvanceTo(c.to), "%s -> %s", c.from, c.to)
	}
}

func TestCartTotal(t *testing.T) {
	t.Parallel()

	lines := []CartLine{
		{Medicine: Medicine{ID: "med-1", Price: decimal.NewFromInt(500)}, Quantity: 2},
		{Medicine: Medicine{ID: "med-2", Price: decimal.NewFromInt(1200)}, Quantity: 1},
	}
	require.True(t, CartTotal(lines).Equal(decimal.NewFromInt(2200)))
	require.True(t, CartTotal(nil).IsZero())
}

func TestTheme_Toggle(t *testing.T) {
	t.Parallel()

	require.Equal(t, ThemeDark, ThemeLight.Toggle())
	require.Equal(t, ThemeLight, ThemeDark.Toggle())
	require.Equal(t, ThemeLight, ThemeLight.Toggle().Toggle())
}

func TestTerminalStatuses(t *testing.T) {
	t.Parallel()

	require.False(t, AppointmentUpcoming.Terminal())
	require.True(t, AppointmentCompleted.Terminal())
	require.True(t, AppointmentCancelled.Terminal())
	require.False(t, LabScheduled.Terminal())
	require.True(t, LabCancelled.Terminal())
}

func TestClone_Isolation(t *testing.T) {
	t.Parallel()

	o := Order{ID: "o", Items: []CartLine{{Medicine: Medicine{ID: "m"}, Quantity: 1}}}
	c := o.Clone()
	c.Items[0].Quantity = 9
	require.Equal(t, 1, o.Items[0].Quantity)

	u := User{Allergies: []string{"Peanuts"}}
	uc := u.Clone()
	uc.Allergies[0] = "Dust"
	require.Equal(t, "Peanuts", u.Allergies[0])
}

func TestValidate_WrapsErrValidation(t *testing.T) {
	t.Parallel()

	err := Validate(HealthMetric{ID: "1", Type: "mood", Value: "ok", Date: "d", Unit: "u"})
	require.ErrorIs(t, err, errs.ErrValidation)

	require.NoError(t, Validate(User{ID: "1", Name: "Sarah", Email: "s@example.com", Gender: GenderFemale}))
	require.ErrorIs(t, Validate(User{ID: "1", Name: "Sarah", Email: "s@example.com", Gender: "robot"}), errs.ErrValidation)
	require.NoError(t, Validate(User{ID: "1", Name: "Sarah", Email: "sarah"}), "login identifiers need not be addresses")

	require.NoError(t, ValidateEmail("s@example.com"))
	require.ErrorIs(t, ValidateEmail("sarah"), errs.ErrValidation)
	require.ErrorIs(t, ValidateEmail(""), errs.ErrValidation)
}
