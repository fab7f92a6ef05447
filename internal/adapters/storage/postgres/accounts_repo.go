package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"medication-reminder/internal/domain/accounts"
)

type AccountsRepo struct {
	db *sql.DB
}

func NewAccountsRepo(db *sql.DB) *AccountsRepo {
	return &AccountsRepo{db: db}
}

// CreateAccount inserta cuidador e idoso en una transacción. Una violación de
// unicidad en cualquiera de los dos hace rollback y devuelve accounts.ErrConflict.
func (r *AccountsRepo) CreateAccount(ctx context.Context, c accounts.Caregiver, e accounts.Elder) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `
		INSERT INTO caregivers (id, name, email, password_hash, created_at)
		VALUES ($1,$2,$3,$4,$5)
	`, c.ID, c.Name, c.Email, c.PasswordHash, c.CreatedAt); err != nil {
		return translate(err)
	}

	if _, err = tx.ExecContext(ctx, `
		INSERT INTO elders (id, name, login_code, password_hash, caregiver_id, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, e.ID, e.Name, e.LoginCode, e.PasswordHash, e.CaregiverID, e.CreatedAt); err != nil {
		return translate(err)
	}

	if err = tx.Commit(); err != nil {
		return translate(err)
	}
	return nil
}

func (r *AccountsRepo) GetCaregiverByEmail(ctx context.Context, email string) (accounts.Caregiver, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, created_at
		FROM caregivers
		WHERE email = $1
	`, email)

	var c accounts.Caregiver
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.PasswordHash, &c.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return accounts.Caregiver{}, accounts.ErrNotFound
		}
		return accounts.Caregiver{}, err
	}
	return c, nil
}

func (r *AccountsRepo) GetElderByCaregiver(ctx context.Context, caregiverID string) (accounts.Elder, error) {
	return r.getElder(ctx, `WHERE caregiver_id = $1`, caregiverID)
}

func (r *AccountsRepo) GetElderByLoginCode(ctx context.Context, code string) (accounts.Elder, error) {
	return r.getElder(ctx, `WHERE login_code = $1`, code)
}

func (r *AccountsRepo) GetElderByID(ctx context.Context, id string) (accounts.Elder, error) {
	return r.getElder(ctx, `WHERE id = $1`, id)
}

func (r *AccountsRepo) getElder(ctx context.Context, where string, arg string) (accounts.Elder, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, login_code, password_hash, caregiver_id, created_at
		FROM elders
		`+where, arg)

	var e accounts.Elder
	if err := row.Scan(&e.ID, &e.Name, &e.LoginCode, &e.PasswordHash, &e.CaregiverID, &e.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return accounts.Elder{}, accounts.ErrNotFound
		}
		return accounts.Elder{}, err
	}
	return e, nil
}

func translate(err error) error {
	if isUniqueViolation(err) {
		return accounts.ErrConflict
	}
	return err
}
