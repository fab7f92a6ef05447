package auth

import "time"

// Role identifica quién abrió la sesión.
type Role string

const (
	RoleCaregiver Role = "caregiver"
	RoleElder     Role = "elder"
)

// Identity es lo que se firma dentro del token al hacer login.
type Identity struct {
	Subject string // id del cuidador o del idoso
	Role    Role
	ElderID string // siempre el idoso gestionado (para el idoso, su propio id)
	Name    string
}

// Claims representa la información extraída del token.
type Claims struct {
	TokenID   string
	Subject   string
	Role      Role
	ElderID   string
	Name      string
	ExpiresAt time.Time
}
