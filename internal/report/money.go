// Package report renders investor figures for people: formatted amounts, a
// Markdown summary for the terminal and a spreadsheet statement.
package report

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

const undefined = "n/a"

// FormatAmount renders amount in currency with its symbol and separators,
// e.g. ₹20,000,000.00. Unknown currencies fall back to the plain decimal
// followed by the code.
func FormatAmount(amount decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return amount.StringFixed(2) + " " + currency
	}
	factor, _ := decimal.NewFromInt(10).PowInt32(int32(cur.Fraction))
	minor := amount.Mul(factor).Round(0)
	return money.New(minor.IntPart(), currency).Display()
}

// FormatNullAmount is FormatAmount for values that may be undefined.
func FormatNullAmount(amount decimal.NullDecimal, currency string) string {
	if !amount.Valid {
		return undefined
	}
	return FormatAmount(amount.Decimal, currency)
}

// FormatPercent renders a percentage with two decimals, e.g. 36.50%.
func FormatPercent(pct decimal.NullDecimal) string {
	if !pct.Valid {
		return undefined
	}
	return pct.Decimal.StringFixed(2) + "%"
}
