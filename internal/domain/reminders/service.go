package reminders

import (
	"context"
	"errors"
	"time"

	"medication-reminder/internal/domain/accounts"
	"medication-reminder/internal/domain/medications"
)

var ErrElderNotFound = errors.New("elder not found")

type Elders interface {
	GetElder(ctx context.Context, id string) (accounts.Elder, error)
}

type Medications interface {
	ListByElder(ctx context.Context, elderID string) ([]medications.Medication, error)
}

// Service calcula el plan de hoy en la zona de referencia.
type Service struct {
	elders Elders
	meds   Medications
	loc    *time.Location
	now    func() time.Time
}

func NewService(elders Elders, meds Medications, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{elders: elders, meds: meds, loc: loc, now: time.Now}
}

func (s *Service) Today(ctx context.Context, elderID string) (accounts.Elder, []Reminder, error) {
	elder, err := s.elders.GetElder(ctx, elderID)
	if err != nil {
		if errors.Is(err, accounts.ErrNotFound) {
			return accounts.Elder{}, nil, ErrElderNotFound
		}
		return accounts.Elder{}, nil, err
	}

	meds, err := s.meds.ListByElder(ctx, elder.ID)
	if err != nil {
		return accounts.Elder{}, nil, err
	}
	return elder, Plan(meds, s.now().In(s.loc)), nil
}
