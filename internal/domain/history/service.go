package history

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"medication-reminder/internal/domain/medications"

	"github.com/google/uuid"
)

const DateLayout = "2006-01-02"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrMedicationNotFound = errors.New("medication not found")
)

// Medications resuelve medicamentos; lo implementa medications.Service.
type Medications interface {
	GetByID(ctx context.Context, id string) (medications.Medication, error)
}

type Service struct {
	repo Repository
	meds Medications
	loc  *time.Location
	now  func() time.Time
}

// NewService recibe la zona de referencia con la que se interpreta "un día".
// loc nil equivale a UTC.
func NewService(repo Repository, meds Medications, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		repo: repo,
		meds: meds,
		loc:  loc,
		now:  time.Now,
	}
}

func (s *Service) Location() *time.Location { return s.loc }

func (s *Service) Record(ctx context.Context, medicationID string, status Status) (Entry, error) {
	medicationID = strings.TrimSpace(medicationID)
	status = Status(strings.TrimSpace(string(status)))

	if medicationID == "" {
		return Entry{}, fmt.Errorf("%w: medication_id is required", ErrInvalidInput)
	}
	if status == "" {
		return Entry{}, fmt.Errorf("%w: status is required", ErrInvalidInput)
	}
	if !status.Valid() {
		return Entry{}, fmt.Errorf("%w: status must be one of on-time, late, missed", ErrInvalidInput)
	}

	if s.meds != nil {
		if _, err := s.meds.GetByID(ctx, medicationID); err != nil {
			if errors.Is(err, medications.ErrNotFound) {
				return Entry{}, ErrMedicationNotFound
			}
			return Entry{}, err
		}
	}

	e := Entry{
		ID:           uuid.NewString(),
		MedicationID: medicationID,
		Status:       status,
		RecordedAt:   s.now(),
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// ListByElderAndDate devuelve las entradas cuyo recorded_at cae en date (YYYY-MM-DD)
// según la zona de referencia. date es obligatoria.
func (s *Service) ListByElderAndDate(ctx context.Context, elderID, date string) ([]DayEntry, error) {
	from, to, err := s.DayBounds(date)
	if err != nil {
		return nil, err
	}
	elderID = strings.TrimSpace(elderID)
	if elderID == "" {
		return []DayEntry{}, nil
	}
	return s.repo.ListByElderBetween(ctx, elderID, from, to)
}

func (s *Service) ListByMedication(ctx context.Context, medicationID string) ([]Entry, error) {
	medicationID = strings.TrimSpace(medicationID)
	if medicationID == "" {
		return []Entry{}, nil
	}
	return s.repo.ListByMedication(ctx, medicationID)
}

// DayBounds traduce una fecha de calendario a [medianoche, medianoche siguiente)
// en la zona de referencia. AddDate respeta días de 23 o 25 horas.
func (s *Service) DayBounds(date string) (time.Time, time.Time, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: date is required (YYYY-MM-DD)", ErrInvalidInput)
	}
	day, err := time.ParseInLocation(DateLayout, date, s.loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	return day, day.AddDate(0, 0, 1), nil
}
