package damages

import (
	"context"
	"errors"
	"time"

	"inspectdesk/internal/domain"
	"inspectdesk/internal/repository"

	"gorm.io/gorm"
)

const resource = "damages"

// Service owns the damage register: recording incidents, reclassifying them
// and closing them once billed. Mutations are announced on the events hub.
type Service struct {
	damages DamageRepository
	events  Publisher
	now     func() time.Time
}

func NewService(damages DamageRepository, events Publisher) *Service {
	return &Service{damages: damages, events: events, now: time.Now}
}

func (s *Service) Create(ctx context.Context, req CreateDamageRequest) (*domain.DamageRow, error) {
	severity := domain.SeverityLow
	if req.Severity != "" {
		severity = domain.DamageSeverity(req.Severity)
		if !validSeverity(severity) {
			return nil, ErrInvalidSeverity
		}
	}

	occurredAt := req.OccurredAt
	if occurredAt == nil {
		now := s.now()
		occurredAt = &now
	}

	damage := &domain.Damage{
		Type:        req.Type,
		Description: req.Description,
		Severity:    severity,
		Status:      domain.DamageOpen,
		OccurredAt:  occurredAt,
		ClientID:    req.ClientID,
		OrderID:     req.OrderID,
	}

	if err := s.damages.Create(ctx, damage); err != nil {
		return nil, err
	}

	s.events.Publish(resource, "created", damage.ID)
	return s.damages.GetRow(ctx, damage.ID)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.DamageRow, error) {
	row, err := s.damages.GetRow(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return row, nil
}

func (s *Service) List(ctx context.Context, q repository.DamageListQuery) ([]domain.DamageRow, error) {
	return s.damages.ListRows(ctx, q)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateDamageRequest) (*domain.DamageRow, error) {
	damage, err := s.damages.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Severity != nil {
		severity := domain.DamageSeverity(*req.Severity)
		if !validSeverity(severity) {
			return nil, ErrInvalidSeverity
		}
		damage.Severity = severity
	}
	if req.Status != nil {
		status := domain.DamageStatus(*req.Status)
		if !validStatus(status) {
			return nil, ErrInvalidStatus
		}
		damage.Status = status
	}
	if req.Type != nil {
		damage.Type = *req.Type
	}
	if req.Description != nil {
		damage.Description = *req.Description
	}
	if req.OccurredAt != nil {
		damage.OccurredAt = req.OccurredAt
	}
	if req.ClientID != nil {
		damage.ClientID = req.ClientID
	}
	if req.OrderID != nil {
		damage.OrderID = req.OrderID
	}

	if err := s.damages.Update(ctx, damage); err != nil {
		return nil, err
	}

	s.events.Publish(resource, "updated", damage.ID)
	return s.damages.GetRow(ctx, damage.ID)
}

// Close marks a damage as billed.
func (s *Service) Close(ctx context.Context, id int64) (*domain.DamageRow, error) {
	status := string(domain.DamageClosed)
	return s.Update(ctx, id, UpdateDamageRequest{Status: &status})
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.damages.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.damages.Delete(ctx, id); err != nil {
		return err
	}

	s.events.Publish(resource, "deleted", id)
	return nil
}

func validSeverity(severity domain.DamageSeverity) bool {
	switch severity {
	case domain.SeverityLow, domain.SeverityMedium, domain.SeverityHigh, domain.SeverityCritical:
		return true
	}
	return false
}

func validStatus(status domain.DamageStatus) bool {
	switch status {
	case domain.DamageOpen, domain.DamageUnderReview, domain.DamageClosed:
		return true
	}
	return false
}
