package registry

import (
	"context"
	"errors"

	"inspectdesk/internal/repository"

	"gorm.io/gorm"
)

// Descriptor tells the shared resource service how to treat one catalog
// entity: its URL segment, which columns free-text search scans, and how to
// reach the fields generic code cannot name.
type Descriptor[T any] struct {
	Resource      string
	SearchColumns []string
	OrderBy       string
	ID            func(*T) int64
	SetID         func(*T, int64)
	SetActive     func(*T, bool)
}

// Service is one parametrized implementation behind every catalog screen;
// the four catalogs differ only by Descriptor.
type Service[T any] struct {
	store  Store[T]
	desc   Descriptor[T]
	events Publisher
}

func NewService[T any](store Store[T], desc Descriptor[T], events Publisher) *Service[T] {
	return &Service[T]{store: store, desc: desc, events: events}
}

func (s *Service[T]) List(ctx context.Context, search string, active *bool) ([]T, error) {
	return s.store.List(ctx, repository.ListQuery{
		Search:  search,
		Columns: s.desc.SearchColumns,
		Active:  active,
		OrderBy: s.desc.OrderBy,
	})
}

func (s *Service[T]) Get(ctx context.Context, id int64) (*T, error) {
	entity, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return entity, nil
}

func (s *Service[T]) Create(ctx context.Context, entity *T) error {
	s.desc.SetID(entity, 0)
	s.desc.SetActive(entity, true)
	if err := s.store.Create(ctx, entity); err != nil {
		return err
	}
	s.events.Publish(s.desc.Resource, "created", s.desc.ID(entity))
	return nil
}

func (s *Service[T]) Update(ctx context.Context, id int64, entity *T) (*T, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	s.desc.SetID(entity, id)
	if err := s.store.Update(ctx, entity); err != nil {
		return nil, err
	}
	s.events.Publish(s.desc.Resource, "updated", id)
	return entity, nil
}

func (s *Service[T]) SetActive(ctx context.Context, id int64, active bool) (*T, error) {
	entity, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.desc.SetActive(entity, active)
	if err := s.store.Update(ctx, entity); err != nil {
		return nil, err
	}
	s.events.Publish(s.desc.Resource, "updated", id)
	return entity, nil
}

func (s *Service[T]) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.events.Publish(s.desc.Resource, "deleted", id)
	return nil
}
