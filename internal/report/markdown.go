package report

import (
	"fmt"
	"io"
	"strings"

	"fundportal/internal/aggregate"
	"fundportal/internal/models"
)

const dateLayout = "2006-01-02"

// SummaryMarkdown renders the dashboard figures and the NAV history of an
// investor as Markdown.
func SummaryMarkdown(view models.InvestorView, summary aggregate.DashboardSummary) string {
	var b strings.Builder
	RenderSummary(&b, view, summary)
	return b.String()
}

// RenderSummary writes SummaryMarkdown's output to w.
func RenderSummary(w io.Writer, view models.InvestorView, s aggregate.DashboardSummary) {
	cur := s.Currency

	fmt.Fprintf(w, "# %s\n\n", escape(s.InvestorName))
	fmt.Fprintf(w, "Investor `%s`, %s, fee tier %s.\n\n", s.InvestorID, escape(s.UnitClass), s.FeeTier.Class)

	fmt.Fprintf(w, "## Capital account\n\n")
	table(w, []string{"Figure", "Value"}, [][]string{
		{"Total commitment", FormatAmount(s.TotalCommitment, cur)},
		{"Total contributed", FormatAmount(s.TotalContributed, cur)},
		{"Remaining commitment", FormatAmount(s.RemainingCommitment, cur)},
		{"Contribution", FormatPercent(s.ContributionPercentage)},
		{"Total fees", FormatAmount(s.TotalFees, cur)},
		{"Total distributed", FormatAmount(s.TotalDistributed, cur)},
		{"Current NAV", FormatNullAmount(s.CurrentNAV, cur)},
		{"NAV per unit", FormatNullAmount(s.CurrentNAVPerUnit, cur)},
		{"Performance since inception", FormatPercent(s.Performance)},
	})

	fmt.Fprintf(w, "## Fees\n\n")
	fmt.Fprintf(w, "- Management fee: %s\n- Performance fee: %s\n\n", s.ManagementFee, s.PerformanceFee)

	if navs := aggregate.Chronological(view.NAVStatements); len(navs) > 0 {
		fmt.Fprintf(w, "## NAV history\n\n")
		rows := make([][]string, 0, len(navs))
		for _, n := range navs {
			rows = append(rows, []string{
				escape(n.Period), n.Date.Format(dateLayout),
				FormatAmount(n.NAVPerUnit, cur), FormatAmount(n.TotalNAV, cur),
			})
		}
		table(w, []string{"Period", "Date", "NAV per unit", "Total NAV"}, rows)
	}

	if pending := aggregate.PendingDrawdownNotices(view.DrawdownNotices); len(pending) > 0 {
		fmt.Fprintf(w, "## Overdue drawdown notices\n\n")
		rows := make([][]string, 0, len(pending))
		for _, n := range pending {
			rows = append(rows, []string{n.ID, n.DueDate.Format(dateLayout), FormatAmount(n.Amount, cur), escape(n.Purpose)})
		}
		table(w, []string{"Notice", "Due", "Amount", "Purpose"}, rows)
	}

	fmt.Fprintf(w, "## Fund portfolio\n\n")
	fmt.Fprintf(w, "%d active investments, %s invested, %s current value, %s performance.\n",
		s.Investments.Count,
		FormatAmount(s.Investments.TotalInitial, cur),
		FormatAmount(s.Investments.TotalCurrent, cur),
		FormatPercent(s.Investments.Performance))
}

func table(w io.Writer, header []string, rows [][]string) {
	fmt.Fprintf(w, "| %s |\n", strings.Join(header, " | "))
	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	fmt.Fprintf(w, "| %s |\n", strings.Join(sep, " | "))
	for _, r := range rows {
		fmt.Fprintf(w, "| %s |\n", strings.Join(r, " | "))
	}
	fmt.Fprintln(w)
}

// escape keeps user text from breaking table cells.
func escape(s string) string {
	return strings.NewReplacer("|", `\|`, "\n", " ").Replace(s)
}
