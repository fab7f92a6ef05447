package sqlite

import (
	"context"
	"errors"

	"medication-reminder/internal/domain/accounts"

	"gorm.io/gorm"
)

type AccountsRepo struct {
	db *gorm.DB
}

func NewAccountsRepo(db *gorm.DB) *AccountsRepo {
	return &AccountsRepo{db: db}
}

func (r *AccountsRepo) CreateAccount(ctx context.Context, c accounts.Caregiver, e accounts.Elder) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&caregiverRow{
			ID:           c.ID,
			Name:         c.Name,
			Email:        c.Email,
			PasswordHash: c.PasswordHash,
			CreatedAt:    c.CreatedAt,
		}).Error; err != nil {
			return err
		}
		return tx.Create(&elderRow{
			ID:           e.ID,
			Name:         e.Name,
			LoginCode:    e.LoginCode,
			PasswordHash: e.PasswordHash,
			CaregiverID:  e.CaregiverID,
			CreatedAt:    e.CreatedAt,
		}).Error
	})
	if isUniqueViolation(err) {
		return accounts.ErrConflict
	}
	return err
}

func (r *AccountsRepo) GetCaregiverByEmail(ctx context.Context, email string) (accounts.Caregiver, error) {
	var row caregiverRow
	if err := r.db.WithContext(ctx).Where("email = ?", email).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return accounts.Caregiver{}, accounts.ErrNotFound
		}
		return accounts.Caregiver{}, err
	}
	return accounts.Caregiver{
		ID:           row.ID,
		Name:         row.Name,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		CreatedAt:    row.CreatedAt,
	}, nil
}

func (r *AccountsRepo) GetElderByCaregiver(ctx context.Context, caregiverID string) (accounts.Elder, error) {
	return r.getElder(ctx, "caregiver_id = ?", caregiverID)
}

func (r *AccountsRepo) GetElderByLoginCode(ctx context.Context, code string) (accounts.Elder, error) {
	return r.getElder(ctx, "login_code = ?", code)
}

func (r *AccountsRepo) GetElderByID(ctx context.Context, id string) (accounts.Elder, error) {
	return r.getElder(ctx, "id = ?", id)
}

func (r *AccountsRepo) getElder(ctx context.Context, cond string, arg string) (accounts.Elder, error) {
	var row elderRow
	if err := r.db.WithContext(ctx).Where(cond, arg).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return accounts.Elder{}, accounts.ErrNotFound
		}
		return accounts.Elder{}, err
	}
	return accounts.Elder{
		ID:           row.ID,
		Name:         row.Name,
		LoginCode:    row.LoginCode,
		PasswordHash: row.PasswordHash,
		CaregiverID:  row.CaregiverID,
		CreatedAt:    row.CreatedAt,
	}, nil
}
