package reports

import (
	"math"
	"sort"
	"strings"
	"time"

	"inspectdesk/internal/domain"
)

// The report reductions are pure single-pass functions over rows the service
// fetched wholesale. They never touch the database, so re-running one on the
// same snapshot yields identical output.

// FlowBucket is one calendar week of order movement: entries count orders by
// their open date, exits by their completion date.
type FlowBucket struct {
	Week    string `json:"week"`
	Entries int    `json:"entries"`
	Exits   int    `json:"exits"`
}

// startOfWeek returns midnight of the most recent weekStart day at or before t.
func startOfWeek(t time.Time, weekStart time.Weekday) time.Time {
	offset := (int(t.Weekday()) - int(weekStart) + 7) % 7
	y, m, d := t.AddDate(0, 0, -offset).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// WeeklyFlow partitions the look-back window ending in the week containing
// now into exactly `weeks` calendar-week buckets, zero-filled. An order's
// entry and exit land in their own buckets independently of each other; a
// completion outside the window is silently skipped.
func WeeklyFlow(orders []domain.OrderRow, weeks int, weekStart time.Weekday, now time.Time) []FlowBucket {
	last := startOfWeek(now, weekStart)

	buckets := make([]FlowBucket, weeks)
	index := make(map[time.Time]int, weeks)
	for i := 0; i < weeks; i++ {
		start := last.AddDate(0, 0, -7*(weeks-1-i))
		buckets[i].Week = start.Format("02/01")
		index[start] = i
	}

	for _, o := range orders {
		if i, ok := index[startOfWeek(o.OpenedAt, weekStart)]; ok {
			buckets[i].Entries++
		}
		if o.CompletedAt != nil {
			if i, ok := index[startOfWeek(*o.CompletedAt, weekStart)]; ok {
				buckets[i].Exits++
			}
		}
	}

	return buckets
}

// WindowStart is the open-date lower bound matching the WeeklyFlow buckets.
func WindowStart(weeks int, weekStart time.Weekday, now time.Time) time.Time {
	return startOfWeek(now, weekStart).AddDate(0, 0, -7*(weeks-1))
}

const delayThresholdHours = 24

// DelayRecord is one order that took more than 24h from opening to completion.
type DelayRecord struct {
	OrderID    int64   `json:"order_id"`
	Number     string  `json:"number"`
	ClientName string  `json:"client_name"`
	Hours      float64 `json:"hours"`
	Severity   string  `json:"severity"`
	OpenedAt   string  `json:"opened_at"`
}

// DelaySeverity buckets an elapsed time into the fixed SLA breach tiers.
// The tiers are total and mutually exclusive over hours > 24.
func DelaySeverity(hours float64) string {
	switch {
	case hours > 168:
		return "critical"
	case hours > 72:
		return "high"
	case hours > 48:
		return "medium"
	default:
		return "low"
	}
}

// Delays extracts SLA breaches: orders with both timestamps whose elapsed
// time exceeds 24h, worst first.
func Delays(orders []domain.OrderRow) []DelayRecord {
	var records []DelayRecord
	for _, o := range orders {
		if o.CompletedAt == nil {
			continue
		}
		hours := o.CompletedAt.Sub(o.OpenedAt).Hours()
		if hours <= delayThresholdHours {
			continue
		}
		records = append(records, DelayRecord{
			OrderID:    o.ID,
			Number:     o.Number,
			ClientName: o.ClientName,
			Hours:      hours,
			Severity:   DelaySeverity(hours),
			OpenedAt:   o.OpenedAt.Format("02/01/2006"),
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Hours > records[j].Hours
	})

	return records
}

// DelaySummary drives the dashboard cards; every field is derivable from the
// delay records alone.
type DelaySummary struct {
	Total       int     `json:"total"`
	MaxHours    float64 `json:"max_hours"`
	MeanHours   float64 `json:"mean_hours"`
	WorstNumber string  `json:"worst_number,omitempty"`
}

func SummarizeDelays(records []DelayRecord) DelaySummary {
	s := DelaySummary{Total: len(records)}
	if len(records) == 0 {
		return s
	}
	var sum float64
	for _, r := range records {
		sum += r.Hours
	}
	s.MaxHours = records[0].Hours
	s.WorstNumber = records[0].Number
	s.MeanHours = sum / float64(len(records))
	return s
}

// SLAGroup is the rollup of completed orders for one (analyst, client) pair.
type SLAGroup struct {
	Analyst     string  `json:"analyst"`
	Client      string  `json:"client"`
	Inspections int     `json:"inspections"`
	MeanHours   float64 `json:"mean_hours"`
	TotalHours  float64 `json:"total_hours"`
}

// SLARollup groups completed orders by (analyst, client), accumulating count
// and cumulative hours; the mean is recomputed on every increment so it is
// consistent at each step. Rows come back ascending by mean (best SLA first).
// The client filter restricts the emitted rows without altering which groups
// were computed; the returned client list always covers the whole input.
func SLARollup(orders []domain.OrderRow, clientFilter string) ([]SLAGroup, []string) {
	type key struct{ analyst, client string }
	groups := make(map[key]*SLAGroup)
	var order []key
	clientSet := make(map[string]struct{})

	for _, o := range orders {
		clientSet[o.ClientName] = struct{}{}
		if o.CompletedAt == nil {
			continue
		}
		hours := o.CompletedAt.Sub(o.OpenedAt).Hours()

		k := key{o.AnalystName, o.ClientName}
		g, ok := groups[k]
		if !ok {
			g = &SLAGroup{Analyst: o.AnalystName, Client: o.ClientName}
			groups[k] = g
			order = append(order, k)
		}
		g.Inspections++
		g.TotalHours += hours
		g.MeanHours = g.TotalHours / float64(g.Inspections)
	}

	rows := make([]SLAGroup, 0, len(order))
	for _, k := range order {
		g := groups[k]
		if clientFilter != "" && clientFilter != "all" && g.Client != clientFilter {
			continue
		}
		rows = append(rows, *g)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].MeanHours < rows[j].MeanHours
	})

	clients := make([]string, 0, len(clientSet))
	for c := range clientSet {
		clients = append(clients, c)
	}
	sort.Strings(clients)

	return rows, clients
}

// RankingRow exposes, for one analyst, their order count against every
// distinct client seen across the whole dataset, zero-filled.
type RankingRow struct {
	Position  int            `json:"position"`
	Analyst   string         `json:"analyst"`
	PerClient map[string]int `json:"per_client"`
	Total     int            `json:"total"`
}

// Ranking tallies all orders per analyst and per client, then ranks analysts
// by grand total. Ties order alphabetically by analyst name so the output is
// deterministic for a given snapshot.
func Ranking(orders []domain.OrderRow) ([]RankingRow, []string) {
	type tally struct {
		perClient map[string]int
		total     int
	}
	analysts := make(map[string]*tally)
	var order []string
	clientSet := make(map[string]struct{})

	for _, o := range orders {
		clientSet[o.ClientName] = struct{}{}

		t, ok := analysts[o.AnalystName]
		if !ok {
			t = &tally{perClient: make(map[string]int)}
			analysts[o.AnalystName] = t
			order = append(order, o.AnalystName)
		}
		t.perClient[o.ClientName]++
		t.total++
	}

	clients := make([]string, 0, len(clientSet))
	for c := range clientSet {
		clients = append(clients, c)
	}
	sort.Strings(clients)

	rows := make([]RankingRow, 0, len(order))
	for _, name := range order {
		t := analysts[name]
		perClient := make(map[string]int, len(clients))
		for _, c := range clients {
			perClient[c] = t.perClient[c]
		}
		rows = append(rows, RankingRow{
			Analyst:   name,
			PerClient: perClient,
			Total:     t.total,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Total != rows[j].Total {
			return rows[i].Total > rows[j].Total
		}
		return rows[i].Analyst < rows[j].Analyst
	})
	for i := range rows {
		rows[i].Position = i + 1
	}

	return rows, clients
}

// BillingRow is the per-client damage billing rollup.
type BillingRow struct {
	Client string  `json:"client"`
	Total  int     `json:"total"`
	Billed int     `json:"billed"`
	Rate   float64 `json:"rate"`
}

// DamageBilling counts damages per client and how many carry the closed
// (billed) status. Rate is billed/total*100, 0 for an empty group. Rows keep
// first-seen order, which is stable for a given snapshot.
func DamageBilling(damages []domain.DamageRow) []BillingRow {
	index := make(map[string]int)
	var rows []BillingRow

	for _, d := range damages {
		i, ok := index[d.ClientName]
		if !ok {
			i = len(rows)
			index[d.ClientName] = i
			rows = append(rows, BillingRow{Client: d.ClientName})
		}
		rows[i].Total++
		if d.Status == domain.DamageClosed {
			rows[i].Billed++
		}
	}

	for i := range rows {
		if rows[i].Total > 0 {
			rows[i].Rate = float64(rows[i].Billed) / float64(rows[i].Total) * 100
		}
	}

	return rows
}

// Fixed report categories for the service-type distribution. Orders matching
// none of them land in an explicit unclassified bucket, never in a guessed
// category.
var mixCategories = []struct {
	label string
	match string
}{
	{"Demobilization Inspection", "demobilization"},
	{"Claim Inspection", "claim"},
	{"Buyback Inspection", "buyback"},
	{"Maintenance Inspection", "maintenance"},
}

const MixUnclassified = "Unclassified"

// MixRow is one category of the report-type distribution.
type MixRow struct {
	Category string  `json:"category"`
	Count    int     `json:"count"`
	Percent  float64 `json:"percent"`
}

// ServiceMix classifies each order into one of the four fixed report
// categories by case-insensitive substring match on the service type, with an
// unclassified bucket for everything else. Returns the per-category rows and
// the grand total.
func ServiceMix(orders []domain.OrderRow) ([]MixRow, int) {
	rows := make([]MixRow, len(mixCategories)+1)
	for i, cat := range mixCategories {
		rows[i].Category = cat.label
	}
	rows[len(mixCategories)].Category = MixUnclassified

	for _, o := range orders {
		idx := len(mixCategories)
		lowered := strings.ToLower(o.ServiceType)
		for i, cat := range mixCategories {
			if strings.Contains(lowered, cat.match) {
				idx = i
				break
			}
		}
		rows[idx].Count++
	}

	total := len(orders)
	if total > 0 {
		for i := range rows {
			rows[i].Percent = float64(rows[i].Count) / float64(total) * 100
		}
	}

	return rows, total
}

// round2 matches the spreadsheet export precision of the on-screen tables.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
