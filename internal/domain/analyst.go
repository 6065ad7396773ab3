package domain

import "time"

type AnalystLevel string

const (
	LevelJunior AnalystLevel = "junior"
	LevelMid    AnalystLevel = "mid"
	LevelSenior AnalystLevel = "senior"
)

type Analyst struct {
	ID        int64        `json:"id" gorm:"primaryKey"`
	Name      string       `json:"name" validate:"required"`
	Email     string       `json:"email" validate:"required,email"`
	Specialty string       `json:"specialty,omitempty"`
	Level     AnalystLevel `json:"level"`
	Active    bool         `json:"active"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// UnknownAnalyst is rendered when an order has no analyst link.
const UnknownAnalyst = "Unknown Analyst"
