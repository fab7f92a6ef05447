package history

import (
	"time"

	"medication-reminder/internal/domain/medications"
)

type Status string

const (
	StatusOnTime Status = "on-time"
	StatusLate   Status = "late"
	StatusMissed Status = "missed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusOnTime, StatusLate, StatusMissed:
		return true
	}
	return false
}

// Entry es inmutable: nunca se edita ni se borra.
type Entry struct {
	ID           string
	MedicationID string
	Status       Status
	RecordedAt   time.Time // asignado por el servidor
}

// DayEntry es una entrada unida a su medicamento (listado por idoso y fecha).
type DayEntry struct {
	Entry

	MedicationName string
	Dosage         string
	Time           medications.TimeOfDay
}
