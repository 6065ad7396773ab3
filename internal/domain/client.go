package domain

import "time"

// Client is a fleet owner the company inspects vehicles for.
type Client struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" validate:"required"`
	TaxID       string    `json:"tax_id,omitempty"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Address     string    `json:"address,omitempty"`
	ContactName string    `json:"contact_name,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UnknownClient is rendered when an order or damage has no client link.
const UnknownClient = "Unknown Client"
