package portfolio

import (
	"sort"

	"github.com/brfintools/fiitrack/internal/common"
	"github.com/brfintools/fiitrack/internal/models"
)

// trailingMonths is the window of the monthly income view.
const trailingMonths = 12

// AggregateMonthlyIncome buckets dividend receipts by payment month and
// returns chronological totals, keeping only the trailing twelve months with
// income. Months without any receipt are omitted rather than zero-filled.
func AggregateMonthlyIncome(dividends []models.Dividend) []models.MonthlyIncome {
	totals := make(map[string]float64)
	for _, d := range dividends {
		totals[common.MonthLabel(d.PaymentDate)] += d.Total
	}

	income := make([]models.MonthlyIncome, 0, len(totals))
	for label, total := range totals {
		income = append(income, models.MonthlyIncome{Month: label, Total: total})
	}

	sort.Slice(income, func(i, j int) bool {
		return common.ParseMonthLabel(income[i].Month).Before(common.ParseMonthLabel(income[j].Month))
	})

	if len(income) > trailingMonths {
		income = income[len(income)-trailingMonths:]
	}

	return income
}
