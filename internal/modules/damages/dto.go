package damages

import "time"

type CreateDamageRequest struct {
	Type        string     `json:"type" binding:"required"`
	Description string     `json:"description" binding:"required"`
	Severity    string     `json:"severity"`
	OccurredAt  *time.Time `json:"occurred_at"`
	ClientID    *int64     `json:"client_id"`
	OrderID     *int64     `json:"order_id"`
}

// UpdateDamageRequest carries only the fields the edit form sends; nil means
// leave the stored value alone.
type UpdateDamageRequest struct {
	Type        *string    `json:"type"`
	Description *string    `json:"description"`
	Severity    *string    `json:"severity"`
	Status      *string    `json:"status"`
	OccurredAt  *time.Time `json:"occurred_at"`
	ClientID    *int64     `json:"client_id"`
	OrderID     *int64     `json:"order_id"`
}
