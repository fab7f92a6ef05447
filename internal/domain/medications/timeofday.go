package medications

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidTime = errors.New("time must be HH:MM (24h)")

// TimeOfDay es una hora "HH:MM" normalizada con ceros a la izquierda,
// así el orden lexicográfico (ORDER BY en SQL) coincide con el cronológico.
type TimeOfDay string

// ParseTimeOfDay acepta "H:MM", "HH:MM" y "HH:MM:SS" (los segundos se descartan).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return "", ErrInvalidTime
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 || len(parts[0]) > 2 {
		return "", ErrInvalidTime
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 || len(parts[1]) != 2 {
		return "", ErrInvalidTime
	}
	if len(parts) == 3 {
		if sec, err := strconv.Atoi(parts[2]); err != nil || sec < 0 || sec > 59 {
			return "", ErrInvalidTime
		}
	}

	return TimeOfDay(fmt.Sprintf("%02d:%02d", h, m)), nil
}

// Clock devuelve hora y minuto. Un valor no normalizado devuelve 0,0.
func (t TimeOfDay) Clock() (hour, minute int) {
	n, err := ParseTimeOfDay(string(t))
	if err != nil {
		return 0, 0
	}
	hour, _ = strconv.Atoi(string(n[:2]))
	minute, _ = strconv.Atoi(string(n[3:]))
	return hour, minute
}

// On ubica la hora en la fecha de day, en la zona horaria de day.
func (t TimeOfDay) On(day time.Time) time.Time {
	h, m := t.Clock()
	y, mo, d := day.Date()
	return time.Date(y, mo, d, h, m, 0, 0, day.Location())
}

func (t TimeOfDay) String() string { return string(t) }
