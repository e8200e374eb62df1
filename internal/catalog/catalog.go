// Package catalog provides the read-only doctor, pharmacy, lab and nutrition
// records the application browses and books against.
package catalog

import (
	"fmt"
	"slices"
	"strings"

	"github.com/and161185/medhub/internal/errs"
	"github.com/and161185/medhub/internal/model"
)

// Catalog is a read-only source of fixtures. Returned values are copies.
type Catalog interface {
	Doctors() []model.Doctor
	Doctor(id string) (model.Doctor, error)
	SearchDoctors(q string) []model.Doctor

	Medicines() []model.Medicine
	Medicine(id string) (model.Medicine, error)
	SearchMedicines(q string) []model.Medicine

	LabTests() []model.LabTest
	LabTest(id string) (model.LabTest, error)

	MealPlans() []model.MealPlan
	MealPlan(id string) (model.MealPlan, error)
}

// Static is an immutable Catalog over fixed slices.
type Static struct {
	doctors   []model.Doctor
	medicines []model.Medicine
	labTests  []model.LabTest
	mealPlans []model.MealPlan
}

var _ Catalog = (*Static)(nil)

// NewStatic copies the given records into a new catalog.
func NewStatic(doctors []model.Doctor, medicines []model.Medicine, labTests []model.LabTest, mealPlans []model.MealPlan) *Static {
	return &Static{
		doctors:   cloneAll(doctors, model.Doctor.Clone),
		medicines: slices.Clone(medicines),
		labTests:  slices.Clone(labTests),
		mealPlans: cloneAll(mealPlans, model.MealPlan.Clone),
	}
}

func cloneAll[T any](in []T, clone func(T) T) []T {
	out := make([]T, len(in))
	for i, v := range in {
		out[i] = clone(v)
	}
	return out
}

func find[T any](in []T, kind, id string, key func(T) string) (T, error) {
	for _, v := range in {
		if key(v) == id {
			return v, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%s %q: %w", kind, id, errs.ErrNotFound)
}

func matches(q string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// Doctors returns every doctor.
func (c *Static) Doctors() []model.Doctor { return cloneAll(c.doctors, model.Doctor.Clone) }

// Doctor looks up a doctor by id.
func (c *Static) Doctor(id string) (model.Doctor, error) {
	d, err := find(c.doctors, "doctor", id, func(d model.Doctor) string { return d.ID })
	return d.Clone(), err
}

// SearchDoctors matches q against name and specialty, case-insensitively.
// An empty query returns every doctor.
func (c *Static) SearchDoctors(q string) []model.Doctor {
	q = strings.ToLower(strings.TrimSpace(q))
	var out []model.Doctor
	for _, d := range c.doctors {
		if q == "" || matches(q, d.Name, d.Specialty) {
			out = append(out, d.Clone())
		}
	}
	return out
}

// Medicines returns every medicine.
func (c *Static) Medicines() []model.Medicine { return slices.Clone(c.medicines) }

// Medicine looks up a medicine by id.
func (c *Static) Medicine(id string) (model.Medicine, error) {
	return find(c.medicines, "medicine", id, func(m model.Medicine) string { return m.ID })
}

// SearchMedicines matches q against name and category.
func (c *Static) SearchMedicines(q string) []model.Medicine {
	q = strings.ToLower(strings.TrimSpace(q))
	var out []model.Medicine
	for _, m := range c.medicines {
		if q == "" || matches(q, m.Name, m.Category) {
			out = append(out, m)
		}
	}
	return out
}

// LabTests returns every lab test.
func (c *Static) LabTests() []model.LabTest { return slices.Clone(c.labTests) }

// LabTest looks up a lab test by id.
func (c *Static) LabTest(id string) (model.LabTest, error) {
	return find(c.labTests, "lab test", id, func(t model.LabTest) string { return t.ID })
}

// MealPlans returns every meal plan.
func (c *Static) MealPlans() []model.MealPlan { return cloneAll(c.mealPlans, model.MealPlan.Clone) }

// MealPlan looks up a meal plan by id.
func (c *Static) MealPlan(id string) (model.MealPlan, error) {
	p, err := find(c.mealPlans, "meal plan", id, func(p model.MealPlan) string { return p.ID })
	if err != nil {
		return model.MealPlan{}, err
	}
	return p.Clone(), nil
}
