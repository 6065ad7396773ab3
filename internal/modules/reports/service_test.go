package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"inspectdesk/internal/domain"
)

type mockOrderReader struct {
	mock.Mock
}

func (m *mockOrderReader) RowsOpenedBetween(ctx context.Context, from, to time.Time, completedOnly bool) ([]domain.OrderRow, error) {
	args := m.Called(ctx, from, to, completedOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OrderRow), args.Error(1)
}

type mockDamageReader struct {
	mock.Mock
}

func (m *mockDamageReader) RowsOccurredBetween(ctx context.Context, from, to time.Time) ([]domain.DamageRow, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DamageRow), args.Error(1)
}

func fixedClock(s *Service, now time.Time) *Service {
	s.now = func() time.Time { return now }
	return s
}

func TestService_OrderFlow_RejectsOffMenuPeriods(t *testing.T) {
	service := NewService(new(mockOrderReader), new(mockDamageReader), time.Sunday)

	for _, weeks := range []int{0, 1, 5, 6, 13, -4} {
		_, err := service.OrderFlow(context.Background(), weeks)
		assert.ErrorIs(t, err, ErrInvalidPeriod, "weeks=%d", weeks)
	}
}

func TestService_OrderFlow_FetchesWholeWindow(t *testing.T) {
	orders := new(mockOrderReader)
	now := time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC)
	start := WindowStart(4, time.Sunday, now)

	orders.On("RowsOpenedBetween", mock.Anything, start, now, false).Return([]domain.OrderRow{}, nil)

	service := fixedClock(NewService(orders, new(mockDamageReader), time.Sunday), now)

	report, err := service.OrderFlow(context.Background(), 4)

	require.NoError(t, err)
	assert.Equal(t, 4, report.Weeks)
	assert.Len(t, report.Flow, 4)
	assert.Empty(t, report.Delays)
	assert.Zero(t, report.Summary.Total)
	orders.AssertExpectations(t)
}

func TestService_OrderFlow_FetchFailureAborts(t *testing.T) {
	orders := new(mockOrderReader)
	boom := errors.New("connection reset")

	orders.On("RowsOpenedBetween", mock.Anything, mock.Anything, mock.Anything, false).Return(nil, boom)

	service := NewService(orders, new(mockDamageReader), time.Sunday)

	report, err := service.OrderFlow(context.Background(), 8)

	assert.Nil(t, report)
	assert.ErrorIs(t, err, boom)
	orders.AssertNumberOfCalls(t, "RowsOpenedBetween", 1)
}

func TestService_SLA_UsesCalendarMonthWindow(t *testing.T) {
	orders := new(mockOrderReader)

	from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	orders.On("RowsOpenedBetween", mock.Anything, from, to, true).Return([]domain.OrderRow{}, nil)

	service := NewService(orders, new(mockDamageReader), time.Sunday)

	report, err := service.SLA(context.Background(), 2024, 2, "all")

	require.NoError(t, err)
	assert.Empty(t, report.Rows)
	orders.AssertExpectations(t)
}

func TestService_SLA_InvalidMonth(t *testing.T) {
	service := NewService(new(mockOrderReader), new(mockDamageReader), time.Sunday)

	_, err := service.SLA(context.Background(), 2024, 13, "")
	assert.ErrorIs(t, err, ErrInvalidMonth)

	_, err = service.SLA(context.Background(), 1800, 5, "")
	assert.ErrorIs(t, err, ErrInvalidMonth)
}

func TestService_DamageBilling_FetchFailureAborts(t *testing.T) {
	damages := new(mockDamageReader)
	boom := errors.New("timeout")

	damages.On("RowsOccurredBetween", mock.Anything, mock.Anything, mock.Anything).Return(nil, boom)

	service := NewService(new(mockOrderReader), damages, time.Sunday)

	_, err := service.DamageBilling(context.Background(), 2024, 2)

	assert.ErrorIs(t, err, boom)
	damages.AssertNumberOfCalls(t, "RowsOccurredBetween", 1)
}

func TestService_ServiceMix_DecemberWindowRollsYear(t *testing.T) {
	orders := new(mockOrderReader)

	from := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	orders.On("RowsOpenedBetween", mock.Anything, from, to, false).Return([]domain.OrderRow{}, nil)

	service := NewService(orders, new(mockDamageReader), time.Sunday)

	report, err := service.ServiceMix(context.Background(), 2024, 12)

	require.NoError(t, err)
	assert.Zero(t, report.Total)
	require.Len(t, report.Rows, 5)
	orders.AssertExpectations(t)
}
