package domain

import "time"

type DamageSeverity string

const (
	SeverityLow      DamageSeverity = "low"
	SeverityMedium   DamageSeverity = "medium"
	SeverityHigh     DamageSeverity = "high"
	SeverityCritical DamageSeverity = "critical"
)

type DamageStatus string

const (
	DamageOpen        DamageStatus = "open"
	DamageUnderReview DamageStatus = "under_review"
	// DamageClosed marks a damage as billed; the billing-rate report counts
	// rows with exactly this status.
	DamageClosed DamageStatus = "closed"
)

// Damage is a recorded defect or incident, optionally tied to one client and
// one service order. Both links are nullable; a missing link is rendered as a
// placeholder, not an error.
type Damage struct {
	ID          int64          `json:"id" gorm:"primaryKey"`
	Type        string         `json:"type" validate:"required"`
	Description string         `json:"description" validate:"required"`
	Severity    DamageSeverity `json:"severity"`
	Status      DamageStatus   `json:"status"`
	OccurredAt  *time.Time     `json:"occurred_at,omitempty"`
	ClientID    *int64         `json:"client_id,omitempty"`
	OrderID     *int64         `json:"order_id,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// DamageRow joins a damage with its client and order display keys.
type DamageRow struct {
	Damage
	ClientName  string `json:"client_name"`
	OrderNumber string `json:"order_number,omitempty"`
}
