package reports

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Spreadsheet export is a pure formatting step over already-aggregated rows:
// one workbook per report, human-readable column headers matching the
// on-screen tables, hour and rate values rounded to two decimals.

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]any) error {
	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// BuildOrderFlowWorkbook produces the order analysis export: weekly flow on
// one sheet, the delay table on a second.
func BuildOrderFlowWorkbook(report *OrderFlowReport) (*excelize.File, error) {
	f := excelize.NewFile()

	const flowSheet = "Weekly Flow"
	if err := f.SetSheetName("Sheet1", flowSheet); err != nil {
		return nil, err
	}
	flowRows := make([][]any, 0, len(report.Flow))
	for _, b := range report.Flow {
		flowRows = append(flowRows, []any{b.Week, b.Entries, b.Exits})
	}
	if err := writeSheet(f, flowSheet, []string{"Week", "Entries", "Exits"}, flowRows); err != nil {
		return nil, err
	}

	const delaySheet = "Delays"
	if _, err := f.NewSheet(delaySheet); err != nil {
		return nil, err
	}
	delayRows := make([][]any, 0, len(report.Delays))
	for _, d := range report.Delays {
		delayRows = append(delayRows, []any{d.Number, d.ClientName, round2(d.Hours), d.Severity, d.OpenedAt})
	}
	headers := []string{"Order Number", "Client", "Total Hours", "Severity", "Opened At"}
	if err := writeSheet(f, delaySheet, headers, delayRows); err != nil {
		return nil, err
	}

	return f, nil
}

func BuildSLAWorkbook(report *SLAReport) (*excelize.File, error) {
	f := excelize.NewFile()

	const sheet = "Analyst SLA"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	rows := make([][]any, 0, len(report.Rows))
	for _, g := range report.Rows {
		rows = append(rows, []any{g.Analyst, g.Client, g.Inspections, round2(g.MeanHours), round2(g.TotalHours)})
	}
	headers := []string{"Analyst", "Client", "Inspections", "Mean Hours", "Total Hours"}
	if err := writeSheet(f, sheet, headers, rows); err != nil {
		return nil, err
	}

	return f, nil
}

// BuildRankingWorkbook emits one column per distinct client, zero-filled,
// between the analyst name and the grand total.
func BuildRankingWorkbook(report *RankingReport) (*excelize.File, error) {
	f := excelize.NewFile()

	const sheet = "Analyst Ranking"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headers := make([]string, 0, len(report.Clients)+3)
	headers = append(headers, "Position", "Analyst")
	headers = append(headers, report.Clients...)
	headers = append(headers, "Total")

	rows := make([][]any, 0, len(report.Rows))
	for _, r := range report.Rows {
		row := make([]any, 0, len(headers))
		row = append(row, r.Position, r.Analyst)
		for _, c := range report.Clients {
			row = append(row, r.PerClient[c])
		}
		row = append(row, r.Total)
		rows = append(rows, row)
	}
	if err := writeSheet(f, sheet, headers, rows); err != nil {
		return nil, err
	}

	return f, nil
}

func BuildBillingWorkbook(report *BillingReport) (*excelize.File, error) {
	f := excelize.NewFile()

	const sheet = "Damages by Client"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	rows := make([][]any, 0, len(report.Rows))
	for _, r := range report.Rows {
		rows = append(rows, []any{r.Client, r.Total, r.Billed, round2(r.Rate)})
	}
	headers := []string{"Client", "Total Damages", "Billed Damages", "Billing Rate (%)"}
	if err := writeSheet(f, sheet, headers, rows); err != nil {
		return nil, err
	}

	return f, nil
}

func BuildMixWorkbook(report *MixReport) (*excelize.File, error) {
	f := excelize.NewFile()

	const sheet = "Service Mix"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	rows := make([][]any, 0, len(report.Rows)+1)
	for _, r := range report.Rows {
		rows = append(rows, []any{r.Category, r.Count, round2(r.Percent)})
	}
	rows = append(rows, []any{"Total", report.Total, ""})
	headers := []string{"Category", "Count", "Percent (%)"}
	if err := writeSheet(f, sheet, headers, rows); err != nil {
		return nil, err
	}

	return f, nil
}

// ExportFilename names the downloaded workbook after the report and period.
func ExportFilename(report string, args ...any) string {
	name := report
	for _, a := range args {
		name = fmt.Sprintf("%s_%v", name, a)
	}
	return name + ".xlsx"
}
