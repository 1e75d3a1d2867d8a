package analytics

import (
	"sort"
	"time"

	"github.com/jcleland/cryptofolio/internal/models"
)

// ValuePoint is one point in the portfolio value series implied by the
// transaction cash flows.
type ValuePoint struct {
	Time  time.Time
	Value float64
}

// BuildValueSeries derives the portfolio-value series from the transaction
// cash flows: the cumulative value after each transaction, one point per
// transaction. This is transaction-indexed rather than calendar-indexed -
// a deliberate simplification preserved for compatibility. When
// calendarResampling is set the series is collapsed to the last value per
// UTC day instead, which corrects the sample-size understatement at the
// cost of changing historical numbers.
func BuildValueSeries(transactions []models.Transaction, calendarResampling bool) []ValuePoint {
	ordered := append([]models.Transaction(nil), transactions...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp < ordered[j].Timestamp
	})

	series := make([]ValuePoint, 0, len(ordered))
	value := 0.0
	for _, tx := range ordered {
		gross := tx.TotalValue
		if gross == 0 {
			gross = tx.Amount * tx.Price
		}
		switch tx.Type {
		case models.TransactionBuy, models.TransactionMint, models.TransactionTransferIn:
			value += gross
		case models.TransactionSell, models.TransactionTransferOut:
			value -= gross
		case models.TransactionFee:
			value -= tx.FeeBase
		}
		series = append(series, ValuePoint{Time: tx.Time(), Value: value})
	}

	if calendarResampling {
		return resampleByDay(series)
	}
	return series
}

// resampleByDay keeps the last value point of each UTC day.
func resampleByDay(series []ValuePoint) []ValuePoint {
	if len(series) == 0 {
		return series
	}
	resampled := make([]ValuePoint, 0, len(series))
	for i, p := range series {
		day := p.Time.Truncate(24 * time.Hour)
		if i+1 < len(series) && series[i+1].Time.Truncate(24*time.Hour).Equal(day) {
			continue
		}
		resampled = append(resampled, ValuePoint{Time: day, Value: p.Value})
	}
	return resampled
}

// DailyReturns computes the period-over-period return series from the value
// series. Points with a non-positive base value are skipped.
func DailyReturns(series []ValuePoint) []float64 {
	if len(series) < 2 {
		return nil
	}
	returns := make([]float64, 0, len(series)-1)
	for i := 1; i < len(series); i++ {
		prev := series[i-1].Value
		if prev <= 0 {
			continue
		}
		returns = append(returns, (series[i].Value-prev)/prev)
	}
	return returns
}

// ComputePeriodReturns buckets portfolio value changes into the standard
// lookback windows, measured against the latest point at or before each
// cutoff (or the series start for younger portfolios).
func ComputePeriodReturns(series []ValuePoint, now time.Time) models.PeriodReturns {
	var returns models.PeriodReturns
	if len(series) == 0 {
		return returns
	}

	current := series[len(series)-1].Value
	returns.Day = periodReturn(series, current, now.AddDate(0, 0, -1))
	returns.Week = periodReturn(series, current, now.AddDate(0, 0, -7))
	returns.Month = periodReturn(series, current, now.AddDate(0, -1, 0))
	returns.Year = periodReturn(series, current, now.AddDate(-1, 0, 0))
	returns.AllTime = change(current, series[0].Value)
	return returns
}

func periodReturn(series []ValuePoint, current float64, cutoff time.Time) models.PeriodReturn {
	ref := series[0].Value
	for _, p := range series {
		if p.Time.After(cutoff) {
			break
		}
		ref = p.Value
	}
	return change(current, ref)
}

func change(current, ref float64) models.PeriodReturn {
	pr := models.PeriodReturn{Change: current - ref}
	if ref > 0 {
		pr.ChangePct = pr.Change / ref * 100
	}
	return pr
}
