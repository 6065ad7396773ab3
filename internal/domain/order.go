package domain

import "time"

type OrderStatus string

const (
	OrderOpen       OrderStatus = "open"
	OrderInProgress OrderStatus = "in_progress"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
)

type OrderPriority string

const (
	PriorityLow    OrderPriority = "low"
	PriorityMedium OrderPriority = "medium"
	PriorityHigh   OrderPriority = "high"
	PriorityUrgent OrderPriority = "urgent"
)

// ServiceOrder is a unit of inspection work tracked from opening to
// completion. CompletedAt, when set, is never before OpenedAt.
type ServiceOrder struct {
	ID          int64         `json:"id" gorm:"primaryKey"`
	Number      string        `json:"number" gorm:"uniqueIndex" validate:"required"`
	ServiceType string        `json:"service_type" validate:"required"`
	Description string        `json:"description,omitempty"`
	Status      OrderStatus   `json:"status"`
	Priority    OrderPriority `json:"priority"`
	OpenedAt    time.Time     `json:"opened_at"`
	DueAt       *time.Time    `json:"due_at,omitempty"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`
	ClientID    *int64        `json:"client_id,omitempty"`
	AnalystID   *int64        `json:"analyst_id,omitempty"`
	Value       float64       `json:"value"`
	Notes       string        `json:"notes,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// OrderRow is an order joined with the display names of its optional links,
// the shape every listing and report consumes. Missing links carry the
// Unknown* placeholders instead of empty strings.
type OrderRow struct {
	ServiceOrder
	ClientName  string `json:"client_name"`
	AnalystName string `json:"analyst_name"`
}
