package catalog

import (
	"fmt"
	"math"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"

	"github.com/and161185/medhub/internal/model"
)

var specialties = []string{
	"General Practitioner", "Cardiologist", "Pediatrician", "Dermatologist",
	"Gynecologist", "Neurologist", "Psychiatrist", "Ophthalmologist",
}

var availabilities = []string{string(model.Available), string(model.Available), string(model.Busy), string(model.Offline)}

// GenerateDoctors returns n synthetic doctors with ids gen-1..gen-n.
// The same seed yields the same roster; n <= 0 yields none.
func GenerateDoctors(n int, seed uint64) []model.Doctor {
	if n <= 0 {
		return []model.Doctor{}
	}
	f := gofakeit.New(seed)
	out := make([]model.Doctor, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, model.Doctor{
			ID:              fmt.Sprintf("gen-%d", i),
			Name:            "Dr. " + f.Name(),
			Specialty:       f.RandomString(specialties),
			Rating:          math.Round(f.Float64Range(3.5, 5)*10) / 10,
			Reviews:         f.Number(5, 800),
			Experience:      f.Number(1, 30),
			Avatar:          fmt.Sprintf("https://i.pravatar.cc/150?img=%d", f.Number(1, 70)),
			Availability:    model.Availability(f.RandomString(availabilities)),
			ConsultationFee: decimal.NewFromInt(int64(f.Number(5, 25)) * 1000),
			Languages:       []string{"English", f.Language()},
		})
	}
	return out
}

// WithDoctors returns a new catalog holding c's records plus extra doctors.
func (c *Static) WithDoctors(extra ...model.Doctor) *Static {
	doctors := append(cloneAll(c.doctors, model.Doctor.Clone), extra...)
	return NewStatic(doctors, c.medicines, c.labTests, c.mealPlans)
}
