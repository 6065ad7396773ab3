package repository

import (
	"context"
	"strings"
	"time"

	"inspectdesk/internal/domain"

	"gorm.io/gorm"
)

type DamageRepository struct {
	*Store[domain.Damage]
}

func NewDamageRepository(db *gorm.DB) *DamageRepository {
	return &DamageRepository{Store: NewStore[domain.Damage](db)}
}

type DamageListQuery struct {
	Status string
	Search string
	From   *time.Time
	To     *time.Time
}

type damageRowModel struct {
	ID          int64      `gorm:"column:id"`
	Type        string     `gorm:"column:type"`
	Description string     `gorm:"column:description"`
	Severity    string     `gorm:"column:severity"`
	Status      string     `gorm:"column:status"`
	OccurredAt  *time.Time `gorm:"column:occurred_at"`
	ClientID    *int64     `gorm:"column:client_id"`
	OrderID     *int64     `gorm:"column:order_id"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
	ClientName  string     `gorm:"column:client_name"`
	OrderNumber string     `gorm:"column:order_number"`
}

func toDamageRow(m damageRowModel) domain.DamageRow {
	return domain.DamageRow{
		Damage: domain.Damage{
			ID:          m.ID,
			Type:        m.Type,
			Description: m.Description,
			Severity:    domain.DamageSeverity(m.Severity),
			Status:      domain.DamageStatus(m.Status),
			OccurredAt:  m.OccurredAt,
			ClientID:    m.ClientID,
			OrderID:     m.OrderID,
			CreatedAt:   m.CreatedAt,
			UpdatedAt:   m.UpdatedAt,
		},
		ClientName:  m.ClientName,
		OrderNumber: m.OrderNumber,
	}
}

func (r *DamageRepository) rowSelect(ctx context.Context) *gorm.DB {
	return r.DB().WithContext(ctx).
		Table("damages").
		Select("damages.*, COALESCE(clients.name, ?) AS client_name, COALESCE(service_orders.number, '') AS order_number",
			domain.UnknownClient).
		Joins("LEFT JOIN clients ON clients.id = damages.client_id").
		Joins("LEFT JOIN service_orders ON service_orders.id = damages.order_id")
}

func (r *DamageRepository) ListRows(ctx context.Context, q DamageListQuery) ([]domain.DamageRow, error) {
	tx := r.rowSelect(ctx)

	if q.Status != "" {
		tx = tx.Where("damages.status = ?", q.Status)
	}
	if q.Search != "" {
		pattern := "%" + strings.ToLower(strings.TrimSpace(q.Search)) + "%"
		tx = tx.Where("LOWER(damages.type) LIKE ? OR LOWER(damages.description) LIKE ?", pattern, pattern)
	}
	if q.From != nil {
		tx = tx.Where("damages.occurred_at >= ?", *q.From)
	}
	if q.To != nil {
		tx = tx.Where("damages.occurred_at < ?", *q.To)
	}

	var models []damageRowModel
	if err := tx.Order("damages.occurred_at DESC, damages.id DESC").Scan(&models).Error; err != nil {
		return nil, err
	}

	rows := make([]domain.DamageRow, 0, len(models))
	for _, m := range models {
		rows = append(rows, toDamageRow(m))
	}
	return rows, nil
}

// GetRow loads one damage with its joined display keys.
func (r *DamageRepository) GetRow(ctx context.Context, id int64) (*domain.DamageRow, error) {
	var m damageRowModel
	tx := r.rowSelect(ctx).Where("damages.id = ?", id).Limit(1).Scan(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	row := toDamageRow(m)
	return &row, nil
}

// RowsOccurredBetween feeds the damage billing report: damages whose
// occurrence date falls in [from, to).
func (r *DamageRepository) RowsOccurredBetween(ctx context.Context, from, to time.Time) ([]domain.DamageRow, error) {
	tx := r.rowSelect(ctx).
		Where("damages.occurred_at >= ? AND damages.occurred_at < ?", from, to)

	var models []damageRowModel
	if err := tx.Order("damages.occurred_at, damages.id").Scan(&models).Error; err != nil {
		return nil, err
	}

	rows := make([]domain.DamageRow, 0, len(models))
	for _, m := range models {
		rows = append(rows, toDamageRow(m))
	}
	return rows, nil
}
