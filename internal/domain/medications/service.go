package medications

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"medication-reminder/internal/domain/accounts"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("medication not found")
	ErrElderNotFound = errors.New("elder not found")
)

// Elders resuelve idosos; lo implementa accounts.Service.
type Elders interface {
	GetElder(ctx context.Context, id string) (accounts.Elder, error)
}

type Service struct {
	repo   Repository
	elders Elders
	now    func() time.Time
}

func NewService(repo Repository, elders Elders) *Service {
	return &Service{
		repo:   repo,
		elders: elders,
		now:    time.Now,
	}
}

type CreateInput struct {
	ElderID  string
	Name     string
	Dosage   string
	Time     string
	PhotoURL string
	Notes    string
}

// UpdateInput reemplaza todos los campos editables (PUT).
type UpdateInput struct {
	Name     string
	Dosage   string
	Time     string
	PhotoURL string
	Notes    string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Medication, error) {
	elderID := strings.TrimSpace(in.ElderID)
	if elderID == "" {
		return Medication{}, fmt.Errorf("%w: elder_id is required", ErrInvalidInput)
	}

	fields, err := validate(in.Name, in.Dosage, in.Time, in.PhotoURL, in.Notes)
	if err != nil {
		return Medication{}, err
	}

	if s.elders != nil {
		if _, err := s.elders.GetElder(ctx, elderID); err != nil {
			if errors.Is(err, accounts.ErrNotFound) {
				return Medication{}, ErrElderNotFound
			}
			return Medication{}, err
		}
	}

	now := s.now()
	m := fields
	m.ID = uuid.NewString()
	m.ElderID = elderID
	m.CreatedAt = now
	m.UpdatedAt = now

	if err := s.repo.Create(ctx, m); err != nil {
		return Medication{}, err
	}
	return m, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Medication, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Medication{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByElder(ctx context.Context, elderID string) ([]Medication, error) {
	elderID = strings.TrimSpace(elderID)
	if elderID == "" {
		return []Medication{}, nil
	}
	return s.repo.ListByElder(ctx, elderID)
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Medication, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return Medication{}, err
	}

	fields, err := validate(in.Name, in.Dosage, in.Time, in.PhotoURL, in.Notes)
	if err != nil {
		return Medication{}, err
	}

	current.Name = fields.Name
	current.Dosage = fields.Dosage
	current.Time = fields.Time
	current.PhotoURL = fields.PhotoURL
	current.Notes = fields.Notes
	current.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, current); err != nil {
		return Medication{}, err
	}
	return current, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

func validate(name, dosage, tod, photoURL, notes string) (Medication, error) {
	name = strings.TrimSpace(name)
	dosage = strings.TrimSpace(dosage)
	photoURL = strings.TrimSpace(photoURL)

	if name == "" {
		return Medication{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if dosage == "" {
		return Medication{}, fmt.Errorf("%w: dosage is required", ErrInvalidInput)
	}
	if strings.TrimSpace(tod) == "" {
		return Medication{}, fmt.Errorf("%w: time is required", ErrInvalidInput)
	}
	t, err := ParseTimeOfDay(tod)
	if err != nil {
		return Medication{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if photoURL != "" {
		u, err := url.ParseRequestURI(photoURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return Medication{}, fmt.Errorf("%w: photo_url must be an http(s) URL", ErrInvalidInput)
		}
	}

	return Medication{
		Name:     name,
		Dosage:   dosage,
		Time:     t,
		PhotoURL: photoURL,
		Notes:    strings.TrimSpace(notes),
	}, nil
}
