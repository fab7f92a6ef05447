package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"medication-reminder/internal/ports/auth"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("email or elder login code already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Service struct {
	repo   Repository
	tokens auth.TokenIssuer
	now    func() time.Time
	cost   int

	dummyOnce sync.Once
	dummyHash []byte
}

func NewService(repo Repository, tokens auth.TokenIssuer) *Service {
	return &Service{
		repo:   repo,
		tokens: tokens,
		now:    time.Now,
		cost:   bcrypt.DefaultCost,
	}
}

// SetPasswordCost cambia el costo bcrypt de los hashes nuevos.
// Fuera de [bcrypt.MinCost, bcrypt.MaxCost] se mantiene el default.
func (s *Service) SetPasswordCost(cost int) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	s.cost = cost
}

type RegisterInput struct {
	CaregiverName     string
	Email             string
	CaregiverPassword string
	ElderName         string
	ElderLoginCode    string
	ElderPassword     string
}

// Register crea cuidador + idoso en una sola operación del repositorio.
func (s *Service) Register(ctx context.Context, in RegisterInput) (Caregiver, Elder, error) {
	in.CaregiverName = strings.TrimSpace(in.CaregiverName)
	in.Email = normalizeEmail(in.Email)
	in.ElderName = strings.TrimSpace(in.ElderName)
	in.ElderLoginCode = strings.TrimSpace(in.ElderLoginCode)

	switch {
	case in.CaregiverName == "":
		return Caregiver{}, Elder{}, fmt.Errorf("%w: caregiver name is required", ErrInvalidInput)
	case in.Email == "":
		return Caregiver{}, Elder{}, fmt.Errorf("%w: email is required", ErrInvalidInput)
	case !strings.Contains(in.Email, "@"):
		return Caregiver{}, Elder{}, fmt.Errorf("%w: email is malformed", ErrInvalidInput)
	case in.CaregiverPassword == "":
		return Caregiver{}, Elder{}, fmt.Errorf("%w: caregiver password is required", ErrInvalidInput)
	case in.ElderName == "":
		return Caregiver{}, Elder{}, fmt.Errorf("%w: elder name is required", ErrInvalidInput)
	case in.ElderLoginCode == "":
		return Caregiver{}, Elder{}, fmt.Errorf("%w: elder login code is required", ErrInvalidInput)
	case !isNumeric(in.ElderLoginCode):
		return Caregiver{}, Elder{}, fmt.Errorf("%w: elder login code must contain digits only", ErrInvalidInput)
	case in.ElderPassword == "":
		return Caregiver{}, Elder{}, fmt.Errorf("%w: elder password is required", ErrInvalidInput)
	}

	cgHash, err := bcrypt.GenerateFromPassword([]byte(in.CaregiverPassword), s.cost)
	if err != nil {
		return Caregiver{}, Elder{}, fmt.Errorf("hash caregiver password: %w", err)
	}
	elHash, err := bcrypt.GenerateFromPassword([]byte(in.ElderPassword), s.cost)
	if err != nil {
		return Caregiver{}, Elder{}, fmt.Errorf("hash elder password: %w", err)
	}

	now := s.now()
	c := Caregiver{
		ID:           uuid.NewString(),
		Name:         in.CaregiverName,
		Email:        in.Email,
		PasswordHash: string(cgHash),
		CreatedAt:    now,
	}
	e := Elder{
		ID:           uuid.NewString(),
		Name:         in.ElderName,
		LoginCode:    in.ElderLoginCode,
		PasswordHash: string(elHash),
		CaregiverID:  c.ID,
		CreatedAt:    now,
	}

	if err := s.repo.CreateAccount(ctx, c, e); err != nil {
		return Caregiver{}, Elder{}, err
	}
	return c, e, nil
}

// AuthenticateCaregiver devuelve ErrInvalidCredentials tanto si el email no existe
// como si la contraseña no coincide.
func (s *Service) AuthenticateCaregiver(ctx context.Context, email, password string) (CaregiverSession, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return CaregiverSession{}, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	c, err := s.repo.GetCaregiverByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		s.burnCompare(password)
		return CaregiverSession{}, ErrInvalidCredentials
	}
	if err != nil {
		return CaregiverSession{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)) != nil {
		return CaregiverSession{}, ErrInvalidCredentials
	}

	e, err := s.repo.GetElderByCaregiver(ctx, c.ID)
	if err != nil {
		// el registro es atómico: un cuidador sin idoso es un estado roto, no un 404
		return CaregiverSession{}, fmt.Errorf("caregiver %s has no elder: %w", c.ID, err)
	}

	token, err := s.issue(ctx, auth.Identity{
		Subject: c.ID,
		Role:    auth.RoleCaregiver,
		ElderID: e.ID,
		Name:    c.Name,
	})
	if err != nil {
		return CaregiverSession{}, err
	}

	return CaregiverSession{Caregiver: c, Elder: e, Token: token}, nil
}

func (s *Service) AuthenticateElder(ctx context.Context, loginCode, password string) (ElderSession, error) {
	loginCode = strings.TrimSpace(loginCode)
	if loginCode == "" || password == "" {
		return ElderSession{}, fmt.Errorf("%w: login code and password are required", ErrInvalidInput)
	}

	e, err := s.repo.GetElderByLoginCode(ctx, loginCode)
	if errors.Is(err, ErrNotFound) {
		s.burnCompare(password)
		return ElderSession{}, ErrInvalidCredentials
	}
	if err != nil {
		return ElderSession{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(e.PasswordHash), []byte(password)) != nil {
		return ElderSession{}, ErrInvalidCredentials
	}

	token, err := s.issue(ctx, auth.Identity{
		Subject: e.ID,
		Role:    auth.RoleElder,
		ElderID: e.ID,
		Name:    e.Name,
	})
	if err != nil {
		return ElderSession{}, err
	}

	return ElderSession{Elder: e, Token: token}, nil
}

func (s *Service) GetElder(ctx context.Context, id string) (Elder, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Elder{}, ErrNotFound
	}
	return s.repo.GetElderByID(ctx, id)
}

func (s *Service) issue(ctx context.Context, id auth.Identity) (string, error) {
	if s.tokens == nil {
		return "", nil
	}
	token, err := s.tokens.Issue(ctx, id)
	if err != nil {
		return "", fmt.Errorf("issue session token: %w", err)
	}
	return token, nil
}

// burnCompare iguala el tiempo de respuesta de "usuario inexistente" con el de
// "contraseña incorrecta".
func (s *Service) burnCompare(password string) {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), s.cost)
	})
	_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
