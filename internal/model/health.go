package model

import (
	"slices"

	"github.com/shopspring/decimal"
)

// MetricType enumerates tracked health readings.
type MetricType string

const (
	MetricWeight        MetricType = "weight"
	MetricBloodPressure MetricType = "blood_pressure"
	MetricHeartRate     MetricType = "heart_rate"
	MetricGlucose       MetricType = "glucose"
	MetricSteps         MetricType = "steps"
)

// HealthMetric is a timestamped reading. Value stays a string so that
// compound readings like "120/80" survive unchanged.
type HealthMetric struct {
	ID    string     `json:"id" validate:"required"`
	Type  MetricType `json:"type" validate:"required,oneof=weight blood_pressure heart_rate glucose steps"`
	Value string     `json:"value" validate:"required"`
	Date  string     `json:"date" validate:"required"`
	Unit  string     `json:"unit" validate:"required"`
}

// MealType is the slot of the day a meal belongs to.
type MealType string

const (
	Breakfast MealType = "breakfast"
	Lunch     MealType = "lunch"
	Dinner    MealType = "dinner"
	Snack     MealType = "snack"
)

// Meal is one entry of a meal plan.
type Meal struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Calories    int      `json:"calories"`
	Image       string   `json:"image,omitempty"`
	MealType    MealType `json:"mealType"`
	Ingredients []string `json:"ingredients"`
}

// MealPlan is a nutrition catalog record.
type MealPlan struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Calories    int             `json:"calories"`
	Protein     int             `json:"protein"`
	Carbs       int             `json:"carbs"`
	Fats        int             `json:"fats"`
	Meals       []Meal          `json:"meals"`
	Duration    int             `json:"duration"` // days
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image,omitempty"`
}

// Clone returns a deep copy of the plan.
func (p MealPlan) Clone() MealPlan {
	out := p
	out.Meals = make([]Meal, len(p.Meals))
	for i, m := range p.Meals {
		m.Ingredients = slices.Clone(m.Ingredients)
		out.Meals[i] = m
	}
	return out
}
