package reports

import (
	"context"
	"time"

	"inspectdesk/internal/domain"
)

// OrderReader fetches date-filtered order rows with joined display names.
type OrderReader interface {
	RowsOpenedBetween(ctx context.Context, from, to time.Time, completedOnly bool) ([]domain.OrderRow, error)
}

// DamageReader fetches date-filtered damage rows with joined display names.
type DamageReader interface {
	RowsOccurredBetween(ctx context.Context, from, to time.Time) ([]domain.DamageRow, error)
}
