package sqlite

import "time"

type caregiverRow struct {
	ID           string `gorm:"primaryKey"`
	Name         string `gorm:"not null"`
	Email        string `gorm:"not null;uniqueIndex"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
}

func (caregiverRow) TableName() string { return "caregivers" }

type elderRow struct {
	ID           string `gorm:"primaryKey"`
	Name         string `gorm:"not null"`
	LoginCode    string `gorm:"not null;uniqueIndex"`
	PasswordHash string `gorm:"not null"`
	CaregiverID  string `gorm:"not null;uniqueIndex"`
	CreatedAt    time.Time
}

func (elderRow) TableName() string { return "elders" }

type medicationRow struct {
	ID        string `gorm:"primaryKey"`
	ElderID   string `gorm:"not null;index:idx_medications_elder_time,priority:1"`
	Name      string `gorm:"not null"`
	Dosage    string `gorm:"not null"`
	TimeOfDay string `gorm:"column:time_of_day;not null;index:idx_medications_elder_time,priority:2"`
	PhotoURL  string `gorm:"column:photo_url"`
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (medicationRow) TableName() string { return "medications" }

// historyRow guarda recorded_at en nanosegundos Unix: los rangos del día se
// comparan como enteros, sin depender del formato de texto de SQLite.
type historyRow struct {
	ID           string `gorm:"primaryKey"`
	MedicationID string `gorm:"not null;index"`
	Status       string `gorm:"not null"`
	RecordedAtNs int64  `gorm:"column:recorded_at_ns;not null;index"`
}

func (historyRow) TableName() string { return "history" }
