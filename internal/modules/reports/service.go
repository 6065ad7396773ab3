package reports

import (
	"context"
	"time"
)

// Service fetches a report's row set in one request, then runs the reduction
// synchronously on the full result. A failed fetch aborts the report: no
// retry, no partial output.
type Service struct {
	orders    OrderReader
	damages   DamageReader
	weekStart time.Weekday
	now       func() time.Time
}

func NewService(orders OrderReader, damages DamageReader, weekStart time.Weekday) *Service {
	return &Service{
		orders:    orders,
		damages:   damages,
		weekStart: weekStart,
		now:       time.Now,
	}
}

// OrderFlowReport bundles the weekly flow chart with the delay table and its
// summary cards, the way the order analysis screen consumes them.
type OrderFlowReport struct {
	Weeks   int           `json:"weeks"`
	Flow    []FlowBucket  `json:"flow"`
	Delays  []DelayRecord `json:"delays"`
	Summary DelaySummary  `json:"summary"`
}

// OrderFlow builds the weekly entries/exits report plus the SLA breach list
// for the requested look-back window (4, 8 or 12 whole weeks).
func (s *Service) OrderFlow(ctx context.Context, weeks int) (*OrderFlowReport, error) {
	if weeks != 4 && weeks != 8 && weeks != 12 {
		return nil, ErrInvalidPeriod
	}

	now := s.now()
	start := WindowStart(weeks, s.weekStart, now)
	rows, err := s.orders.RowsOpenedBetween(ctx, start, now, false)
	if err != nil {
		return nil, err
	}

	delays := Delays(rows)
	return &OrderFlowReport{
		Weeks:   weeks,
		Flow:    WeeklyFlow(rows, weeks, s.weekStart, now),
		Delays:  delays,
		Summary: SummarizeDelays(delays),
	}, nil
}

// SLAReport is the per-analyst/per-client rollup for one calendar month.
type SLAReport struct {
	Rows    []SLAGroup `json:"rows"`
	Clients []string   `json:"clients"`
}

func (s *Service) SLA(ctx context.Context, year, month int, client string) (*SLAReport, error) {
	from, to, err := monthWindow(year, month)
	if err != nil {
		return nil, err
	}

	rows, err := s.orders.RowsOpenedBetween(ctx, from, to, true)
	if err != nil {
		return nil, err
	}

	groups, clients := SLARollup(rows, client)
	return &SLAReport{Rows: groups, Clients: clients}, nil
}

// RankingReport ranks analysts by monthly throughput.
type RankingReport struct {
	Rows    []RankingRow `json:"rows"`
	Clients []string     `json:"clients"`
}

func (s *Service) Ranking(ctx context.Context, year, month int) (*RankingReport, error) {
	from, to, err := monthWindow(year, month)
	if err != nil {
		return nil, err
	}

	rows, err := s.orders.RowsOpenedBetween(ctx, from, to, false)
	if err != nil {
		return nil, err
	}

	ranked, clients := Ranking(rows)
	return &RankingReport{Rows: ranked, Clients: clients}, nil
}

// BillingReport is the monthly damage billing-rate rollup per client.
type BillingReport struct {
	Rows []BillingRow `json:"rows"`
}

func (s *Service) DamageBilling(ctx context.Context, year, month int) (*BillingReport, error) {
	from, to, err := monthWindow(year, month)
	if err != nil {
		return nil, err
	}

	rows, err := s.damages.RowsOccurredBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return &BillingReport{Rows: DamageBilling(rows)}, nil
}

// MixReport is the monthly distribution of orders across report categories.
type MixReport struct {
	Rows  []MixRow `json:"rows"`
	Total int      `json:"total"`
}

func (s *Service) ServiceMix(ctx context.Context, year, month int) (*MixReport, error) {
	from, to, err := monthWindow(year, month)
	if err != nil {
		return nil, err
	}

	rows, err := s.orders.RowsOpenedBetween(ctx, from, to, false)
	if err != nil {
		return nil, err
	}

	mix, total := ServiceMix(rows)
	return &MixReport{Rows: mix, Total: total}, nil
}

func monthWindow(year, month int) (time.Time, time.Time, error) {
	if year < 2000 || year > 2200 || month < 1 || month > 12 {
		return time.Time{}, time.Time{}, ErrInvalidMonth
	}
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0), nil
}
