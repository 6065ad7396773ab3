package repository

import (
	"context"
	"strings"
	"time"

	"inspectdesk/internal/domain"

	"gorm.io/gorm"
)

type OrderRepository struct {
	*Store[domain.ServiceOrder]
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{Store: NewStore[domain.ServiceOrder](db)}
}

// OrderListQuery narrows the order listing screens.
type OrderListQuery struct {
	Status string
	Search string
	From   *time.Time
	To     *time.Time
}

type orderRowModel struct {
	ID          int64      `gorm:"column:id"`
	Number      string     `gorm:"column:number"`
	ServiceType string     `gorm:"column:service_type"`
	Description string     `gorm:"column:description"`
	Status      string     `gorm:"column:status"`
	Priority    string     `gorm:"column:priority"`
	OpenedAt    time.Time  `gorm:"column:opened_at"`
	DueAt       *time.Time `gorm:"column:due_at"`
	CompletedAt *time.Time `gorm:"column:completed_at"`
	ClientID    *int64     `gorm:"column:client_id"`
	AnalystID   *int64     `gorm:"column:analyst_id"`
	Value       float64    `gorm:"column:value"`
	Notes       string     `gorm:"column:notes"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
	ClientName  string     `gorm:"column:client_name"`
	AnalystName string     `gorm:"column:analyst_name"`
}

func toOrderRow(m orderRowModel) domain.OrderRow {
	return domain.OrderRow{
		ServiceOrder: domain.ServiceOrder{
			ID:          m.ID,
			Number:      m.Number,
			ServiceType: m.ServiceType,
			Description: m.Description,
			Status:      domain.OrderStatus(m.Status),
			Priority:    domain.OrderPriority(m.Priority),
			OpenedAt:    m.OpenedAt,
			DueAt:       m.DueAt,
			CompletedAt: m.CompletedAt,
			ClientID:    m.ClientID,
			AnalystID:   m.AnalystID,
			Value:       m.Value,
			Notes:       m.Notes,
			CreatedAt:   m.CreatedAt,
			UpdatedAt:   m.UpdatedAt,
		},
		ClientName:  m.ClientName,
		AnalystName: m.AnalystName,
	}
}

func (r *OrderRepository) rowSelect(ctx context.Context) *gorm.DB {
	return r.DB().WithContext(ctx).
		Table("service_orders").
		Select("service_orders.*, COALESCE(clients.name, ?) AS client_name, COALESCE(analysts.name, ?) AS analyst_name",
			domain.UnknownClient, domain.UnknownAnalyst).
		Joins("LEFT JOIN clients ON clients.id = service_orders.client_id").
		Joins("LEFT JOIN analysts ON analysts.id = service_orders.analyst_id")
}

// ListRows returns orders joined with client and analyst display names.
func (r *OrderRepository) ListRows(ctx context.Context, q OrderListQuery) ([]domain.OrderRow, error) {
	tx := r.rowSelect(ctx)

	if q.Status != "" {
		tx = tx.Where("service_orders.status = ?", q.Status)
	}
	if q.Search != "" {
		pattern := "%" + strings.ToLower(strings.TrimSpace(q.Search)) + "%"
		tx = tx.Where(
			"LOWER(service_orders.number) LIKE ? OR LOWER(service_orders.service_type) LIKE ? OR LOWER(service_orders.description) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	if q.From != nil {
		tx = tx.Where("service_orders.opened_at >= ?", *q.From)
	}
	if q.To != nil {
		tx = tx.Where("service_orders.opened_at < ?", *q.To)
	}

	var models []orderRowModel
	if err := tx.Order("service_orders.opened_at DESC, service_orders.id DESC").Scan(&models).Error; err != nil {
		return nil, err
	}

	rows := make([]domain.OrderRow, 0, len(models))
	for _, m := range models {
		rows = append(rows, toOrderRow(m))
	}
	return rows, nil
}

// RowsOpenedBetween feeds the reports: orders whose open date falls in
// [from, to), optionally restricted to completed ones. Rows come back in
// opened_at order so aggregation output is stable for a given snapshot.
func (r *OrderRepository) RowsOpenedBetween(ctx context.Context, from, to time.Time, completedOnly bool) ([]domain.OrderRow, error) {
	tx := r.rowSelect(ctx).
		Where("service_orders.opened_at >= ? AND service_orders.opened_at < ?", from, to)
	if completedOnly {
		tx = tx.Where("service_orders.completed_at IS NOT NULL")
	}

	var models []orderRowModel
	if err := tx.Order("service_orders.opened_at, service_orders.id").Scan(&models).Error; err != nil {
		return nil, err
	}

	rows := make([]domain.OrderRow, 0, len(models))
	for _, m := range models {
		rows = append(rows, toOrderRow(m))
	}
	return rows, nil
}

// GetRow loads one order with its joined display names.
func (r *OrderRepository) GetRow(ctx context.Context, id int64) (*domain.OrderRow, error) {
	var m orderRowModel
	tx := r.rowSelect(ctx).Where("service_orders.id = ?", id).Limit(1).Scan(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	row := toOrderRow(m)
	return &row, nil
}

func (r *OrderRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	var count int64
	tx := r.DB().WithContext(ctx).Model(&domain.ServiceOrder{}).
		Where("number = ?", strings.TrimSpace(number)).
		Count(&count)
	if tx.Error != nil {
		return false, tx.Error
	}
	return count > 0, nil
}
