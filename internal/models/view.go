package models

// InvestorView is everything one investor can see: their own scoped records,
// including co-investments offered only to them, plus the fund-wide portfolio.
type InvestorView struct {
	Investor        Investor              `json:"investor"`
	Contributions   []CapitalContribution `json:"contributions"`
	Fees            []FeeCharge           `json:"fees"`
	Distributions   []Distribution        `json:"distributions"`
	NAVStatements   []NAVStatement        `json:"nav_statements"`
	Documents       []Document            `json:"documents"`
	DrawdownNotices []DrawdownNotice      `json:"drawdown_notices"`
	FundInvestments []FundInvestment      `json:"fund_investments"`
	Updates         []InvestorUpdate      `json:"updates"`
	CoInvestments   []CoInvestment        `json:"co_investments"`
}
