package orders

import "time"

type CreateOrderRequest struct {
	Number      string     `json:"number" binding:"required"`
	ServiceType string     `json:"service_type" binding:"required"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	OpenedAt    *time.Time `json:"opened_at"`
	DueAt       *time.Time `json:"due_at"`
	ClientID    *int64     `json:"client_id"`
	AnalystID   *int64     `json:"analyst_id"`
	Value       float64    `json:"value"`
	Notes       string     `json:"notes"`
}

// UpdateOrderRequest carries only the fields the edit form sends; nil means
// leave the stored value alone.
type UpdateOrderRequest struct {
	ServiceType *string    `json:"service_type"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	DueAt       *time.Time `json:"due_at"`
	ClientID    *int64     `json:"client_id"`
	AnalystID   *int64     `json:"analyst_id"`
	Value       *float64   `json:"value"`
	Notes       *string    `json:"notes"`
}

type CompleteOrderRequest struct {
	CompletedAt *time.Time `json:"completed_at"`
}
