package orders

import (
	"context"
	"errors"
	"strings"
	"time"

	"inspectdesk/internal/domain"
	"inspectdesk/internal/repository"

	"gorm.io/gorm"
)

const resource = "orders"

// Service owns the service-order lifecycle: opening, edits, completion and
// removal. Every mutation is announced on the events hub so open dashboards
// know their order listings and reports are stale.
type Service struct {
	orders OrderRepository
	events Publisher
	now    func() time.Time
}

func NewService(orders OrderRepository, events Publisher) *Service {
	return &Service{orders: orders, events: events, now: time.Now}
}

func (s *Service) Create(ctx context.Context, req CreateOrderRequest) (*domain.OrderRow, error) {
	number := strings.TrimSpace(req.Number)

	exists, err := s.orders.ExistsByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateNumber
	}

	priority := domain.PriorityMedium
	if req.Priority != "" {
		priority = domain.OrderPriority(req.Priority)
		if !validPriority(priority) {
			return nil, ErrInvalidStatus
		}
	}

	openedAt := s.now()
	if req.OpenedAt != nil {
		openedAt = *req.OpenedAt
	}

	order := &domain.ServiceOrder{
		Number:      number,
		ServiceType: req.ServiceType,
		Description: req.Description,
		Status:      domain.OrderOpen,
		Priority:    priority,
		OpenedAt:    openedAt,
		DueAt:       req.DueAt,
		ClientID:    req.ClientID,
		AnalystID:   req.AnalystID,
		Value:       req.Value,
		Notes:       req.Notes,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		// The existence check above can lose a race; the unique index on
		// number is the final word.
		if repository.IsDuplicateKey(err) {
			return nil, ErrDuplicateNumber
		}
		return nil, err
	}

	s.events.Publish(resource, "created", order.ID)
	return s.orders.GetRow(ctx, order.ID)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.OrderRow, error) {
	row, err := s.orders.GetRow(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return row, nil
}

func (s *Service) List(ctx context.Context, q repository.OrderListQuery) ([]domain.OrderRow, error) {
	return s.orders.ListRows(ctx, q)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateOrderRequest) (*domain.OrderRow, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Status != nil {
		status := domain.OrderStatus(*req.Status)
		// Completion goes through Complete so the timestamp invariant holds.
		if status == domain.OrderCompleted || !validStatus(status) {
			return nil, ErrInvalidStatus
		}
		order.Status = status
	}
	if req.Priority != nil {
		priority := domain.OrderPriority(*req.Priority)
		if !validPriority(priority) {
			return nil, ErrInvalidStatus
		}
		order.Priority = priority
	}
	if req.ServiceType != nil {
		order.ServiceType = *req.ServiceType
	}
	if req.Description != nil {
		order.Description = *req.Description
	}
	if req.DueAt != nil {
		order.DueAt = req.DueAt
	}
	if req.ClientID != nil {
		order.ClientID = req.ClientID
	}
	if req.AnalystID != nil {
		order.AnalystID = req.AnalystID
	}
	if req.Value != nil {
		order.Value = *req.Value
	}
	if req.Notes != nil {
		order.Notes = *req.Notes
	}

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}

	s.events.Publish(resource, "updated", order.ID)
	return s.orders.GetRow(ctx, order.ID)
}

// Complete stamps the completion timestamp and moves the order to its
// terminal status. The timestamp may never precede the opening.
func (s *Service) Complete(ctx context.Context, id int64, req CompleteOrderRequest) (*domain.OrderRow, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if order.Status == domain.OrderCompleted {
		return nil, ErrAlreadyCompleted
	}

	completedAt := s.now()
	if req.CompletedAt != nil {
		completedAt = *req.CompletedAt
	}
	if completedAt.Before(order.OpenedAt) {
		return nil, ErrInvalidCompletion
	}

	order.Status = domain.OrderCompleted
	order.CompletedAt = &completedAt

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}

	s.events.Publish(resource, "updated", order.ID)
	return s.orders.GetRow(ctx, order.ID)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.orders.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.orders.Delete(ctx, id); err != nil {
		return err
	}

	s.events.Publish(resource, "deleted", id)
	return nil
}

func validStatus(status domain.OrderStatus) bool {
	switch status {
	case domain.OrderOpen, domain.OrderInProgress, domain.OrderCompleted, domain.OrderCancelled:
		return true
	}
	return false
}

func validPriority(priority domain.OrderPriority) bool {
	switch priority {
	case domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh, domain.PriorityUrgent:
		return true
	}
	return false
}
