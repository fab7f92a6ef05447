package medications

import "time"

// Medication es una toma diaria programada para un idoso.
type Medication struct {
	ID      string
	ElderID string

	Name   string
	Dosage string
	Time   TimeOfDay // hora local del día, HH:MM

	PhotoURL string // opcional
	Notes    string // opcional

	CreatedAt time.Time
	UpdatedAt time.Time
}
