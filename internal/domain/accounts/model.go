package accounts

import "time"

// Caregiver es el familiar que gestiona los medicamentos de un idoso.
type Caregiver struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Elder es el usuario final que toma los medicamentos.
// Entra con un código numérico; relación 1:1 con su cuidador.
type Elder struct {
	ID           string
	Name         string
	LoginCode    string
	PasswordHash string
	CaregiverID  string
	CreatedAt    time.Time
}

// CaregiverSession es el resultado de un login de cuidador.
type CaregiverSession struct {
	Caregiver Caregiver
	Elder     Elder
	Token     string
}

// ElderSession es el resultado de un login de idoso.
type ElderSession struct {
	Elder Elder
	Token string
}
