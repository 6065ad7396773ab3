package domain

import "time"

// ServiceType is a catalog entry the order form picks from.
type ServiceType struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ReportTemplate is a catalog entry describing the layout of an inspection
// report document.
type ReportTemplate struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	Sections    int       `json:"sections"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
