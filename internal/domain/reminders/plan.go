package reminders

import (
	"fmt"
	"sort"
	"time"

	"medication-reminder/internal/domain/medications"
)

// Reminder es una toma pendiente de hoy.
type Reminder struct {
	MedicationID string
	Name         string
	Dosage       string
	Time         medications.TimeOfDay
	At           time.Time
	Delay        time.Duration
}

type Notification struct {
	Title string
	Body  string
}

// Plan devuelve las tomas de hoy (en la zona de now) estrictamente posteriores a now,
// ordenadas por hora. Las que ya pasaron no se recuperan.
func Plan(meds []medications.Medication, now time.Time) []Reminder {
	out := make([]Reminder, 0, len(meds))
	for _, m := range meds {
		at := m.Time.On(now)
		if !at.After(now) {
			continue
		}
		out = append(out, Reminder{
			MedicationID: m.ID,
			Name:         m.Name,
			Dosage:       m.Dosage,
			Time:         m.Time,
			At:           at,
			Delay:        at.Sub(now),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].At.Before(out[j].At) })
	return out
}

func Greeting(t time.Time) string {
	switch h := t.Hour(); {
	case h >= 5 && h < 12:
		return "Good morning"
	case h >= 12 && h < 18:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}

// NotificationFor arma el mensaje con el saludo correspondiente a at.
func NotificationFor(elderName string, r Reminder, at time.Time) Notification {
	return Notification{
		Title: fmt.Sprintf("%s, %s!", Greeting(at), elderName),
		Body:  fmt.Sprintf("It's time to take your %s (%s).", r.Name, r.Dosage),
	}
}
