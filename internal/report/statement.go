package report

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"fundportal/internal/aggregate"
	"fundportal/internal/models"
)

// Sheet names of a statement workbook.
const (
	SheetSummary       = "Summary"
	SheetContributions = "Contributions"
	SheetFees          = "Fees"
	SheetDistributions = "Distributions"
	SheetNAV           = "NAV"
	SheetNotices       = "Drawdown Notices"
)

// StatementFilename names the workbook of an investor.
func StatementFilename(investorID string) string {
	return fmt.Sprintf("statement_%s.xlsx", investorID)
}

// WriteStatement writes the investor's capital account statement as an xlsx
// workbook with one sheet per record type.
func WriteStatement(w io.Writer, view models.InvestorView, s aggregate.DashboardSummary) error {
	f := excelize.NewFile()
	defer f.Close()

	// NewFile starts with Sheet1; rename it rather than leave it empty.
	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return err
	}

	summaryRows := [][]interface{}{
		{"Investor", s.InvestorName},
		{"Investor ID", s.InvestorID},
		{"Currency", s.Currency},
		{"Unit class", s.UnitClass},
		{"Fee tier", s.FeeTier.Class},
		{"Management fee", s.ManagementFee},
		{"Performance fee", s.PerformanceFee},
		{"Total commitment", number(s.TotalCommitment)},
		{"Total contributed", number(s.TotalContributed)},
		{"Remaining commitment", number(s.RemainingCommitment)},
		{"Contribution %", nullNumber(s.ContributionPercentage)},
		{"Total fees", number(s.TotalFees)},
		{"Total distributed", number(s.TotalDistributed)},
		{"Current NAV", nullNumber(s.CurrentNAV)},
		{"Performance since inception %", nullNumber(s.Performance)},
	}
	if err := writeRows(f, SheetSummary, []string{"Figure", "Value"}, summaryRows); err != nil {
		return err
	}

	var rows [][]interface{}
	for _, c := range view.Contributions {
		ref := ""
		if c.DrawdownID != nil {
			ref = *c.DrawdownID
		}
		rows = append(rows, []interface{}{c.ID, c.Date.Format(dateLayout), number(c.Amount), c.Method, c.Reference, ref})
	}
	if err := addSheet(f, SheetContributions, []string{"ID", "Date", "Amount", "Method", "Reference", "Drawdown"}, rows); err != nil {
		return err
	}

	rows = nil
	for _, fee := range view.Fees {
		rows = append(rows, []interface{}{fee.ID, fee.Date.Format(dateLayout), fee.Type, number(fee.Amount), string(fee.Status), fee.Description})
	}
	if err := addSheet(f, SheetFees, []string{"ID", "Date", "Type", "Amount", "Status", "Description"}, rows); err != nil {
		return err
	}

	rows = nil
	for _, d := range view.Distributions {
		rows = append(rows, []interface{}{d.ID, d.Date.Format(dateLayout), d.Type, number(d.Amount)})
	}
	if err := addSheet(f, SheetDistributions, []string{"ID", "Date", "Type", "Amount"}, rows); err != nil {
		return err
	}

	rows = nil
	for _, n := range aggregate.Chronological(view.NAVStatements) {
		rows = append(rows, []interface{}{n.Period, n.Date.Format(dateLayout), number(n.NAVPerUnit), number(n.TotalUnits), number(n.TotalNAV), number(n.Change)})
	}
	if err := addSheet(f, SheetNAV, []string{"Period", "Date", "NAV per unit", "Units", "Total NAV", "Change %"}, rows); err != nil {
		return err
	}

	rows = nil
	for _, n := range view.DrawdownNotices {
		paid := ""
		if n.PaymentDate != nil {
			paid = n.PaymentDate.Format(dateLayout)
		}
		rows = append(rows, []interface{}{n.ID, n.IssueDate.Format(dateLayout), n.DueDate.Format(dateLayout), number(n.Amount), number(n.Percentage), string(n.Status), paid, n.Purpose})
	}
	if err := addSheet(f, SheetNotices, []string{"ID", "Issued", "Due", "Amount", "% of commitment", "Status", "Paid on", "Purpose"}, rows); err != nil {
		return err
	}

	return f.Write(w)
}

func addSheet(f *excelize.File, name string, header []string, rows [][]interface{}) error {
	if _, err := f.NewSheet(name); err != nil {
		return err
	}
	return writeRows(f, name, header, rows)
}

func writeRows(f *excelize.File, sheet string, header []string, rows [][]interface{}) error {
	for i, h := range header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// number converts an amount for a numeric spreadsheet cell.
func number(d decimal.Decimal) float64 {
	v, _ := d.Float64()
	return v
}

func nullNumber(d decimal.NullDecimal) interface{} {
	if !d.Valid {
		return undefined
	}
	return number(d.Decimal)
}
