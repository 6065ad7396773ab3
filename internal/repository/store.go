package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

// ListQuery narrows a listing: free-text search over the named columns,
// optional active-flag filter, optional ordering.
type ListQuery struct {
	Search  string
	Columns []string
	Active  *bool
	OrderBy string
}

// Store is the shared CRUD core every entity repository embeds. The catalog
// entities all need the same list/create/update/delete data access; the
// parametrized store keeps that in one implementation.
type Store[T any] struct {
	db *gorm.DB
}

func NewStore[T any](db *gorm.DB) *Store[T] {
	return &Store[T]{db: db}
}

func (s *Store[T]) DB() *gorm.DB { return s.db }

func (s *Store[T]) Create(ctx context.Context, entity *T) error {
	return s.db.WithContext(ctx).Create(entity).Error
}

func (s *Store[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	var entity T
	if err := s.db.WithContext(ctx).First(&entity, id).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

func (s *Store[T]) Update(ctx context.Context, entity *T) error {
	return s.db.WithContext(ctx).Save(entity).Error
}

// Delete is a hard delete; the confirmation gate lives in the client.
func (s *Store[T]) Delete(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Delete(new(T), id).Error
}

func (s *Store[T]) List(ctx context.Context, q ListQuery) ([]T, error) {
	tx := s.db.WithContext(ctx).Model(new(T))

	if q.Search != "" && len(q.Columns) > 0 {
		pattern := "%" + strings.ToLower(strings.TrimSpace(q.Search)) + "%"
		clause := make([]string, 0, len(q.Columns))
		args := make([]any, 0, len(q.Columns))
		for _, col := range q.Columns {
			clause = append(clause, "LOWER("+col+") LIKE ?")
			args = append(args, pattern)
		}
		tx = tx.Where(strings.Join(clause, " OR "), args...)
	}
	if q.Active != nil {
		tx = tx.Where("active = ?", *q.Active)
	}
	if q.OrderBy != "" {
		tx = tx.Order(q.OrderBy)
	} else {
		tx = tx.Order("id")
	}

	var entities []T
	if err := tx.Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}
