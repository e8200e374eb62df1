package model

import (
	"slices"

	"github.com/shopspring/decimal"
)

// LabTest is a lab catalog record.
type LabTest struct {
	ID                      string          `json:"id" validate:"required"`
	Name                    string          `json:"name" validate:"required"`
	Description             string          `json:"description"`
	Price                   decimal.Decimal `json:"price"`
	PreparationRequired     bool            `json:"preparationRequired"`
	PreparationInstructions string          `json:"preparationInstructions,omitempty"`
	EstimatedTime           string          `json:"estimatedTime"`
	Category                string          `json:"category"`
}

// LabStatus is the lifecycle state of a lab booking.
type LabStatus string

const (
	LabScheduled LabStatus = "scheduled"
	LabCompleted LabStatus = "completed"
	LabCancelled LabStatus = "cancelled"
)

// Terminal reports whether no further transition is allowed.
func (s LabStatus) Terminal() bool {
	return s == LabCompleted || s == LabCancelled
}

// LabAppointment is a lab test booking with a test snapshot.
type LabAppointment struct {
	ID       string    `json:"id" validate:"required"`
	Test     LabTest   `json:"test"`
	Date     string    `json:"date" validate:"required"`
	Time     string    `json:"time" validate:"required"`
	Location string    `json:"location" validate:"required"`
	Status   LabStatus `json:"status" validate:"required,oneof=scheduled completed cancelled"`
}

// ResultStatus flags a parameter against its normal range.
type ResultStatus string

const (
	ResultNormal ResultStatus = "normal"
	ResultHigh   ResultStatus = "high"
	ResultLow    ResultStatus = "low"
)

// ResultEntry is a single measured parameter.
type ResultEntry struct {
	Parameter   string       `json:"parameter" validate:"required"`
	Value       string       `json:"value" validate:"required"`
	NormalRange string       `json:"normalRange"`
	Status      ResultStatus `json:"status" validate:"required,oneof=normal high low"`
}

// LabResult is produced by the lab and never edited by the store.
type LabResult struct {
	ID          string        `json:"id" validate:"required"`
	TestID      string        `json:"testId" validate:"required"`
	TestName    string        `json:"testName"`
	Date        string        `json:"date" validate:"required"`
	Results     []ResultEntry `json:"results" validate:"dive"`
	DoctorNotes string        `json:"doctorNotes,omitempty"`
}

// Clone returns a deep copy of the result.
func (r LabResult) Clone() LabResult {
	out := r
	out.Results = slices.Clone(r.Results)
	return out
}

// Abnormal returns entries outside their normal range.
func (r LabResult) Abnormal() []ResultEntry {
	var out []ResultEntry
	for _, e := range r.Results {
		if e.Status != ResultNormal {
			out = append(out, e)
		}
	}
	return out
}
