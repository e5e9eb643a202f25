package utils

import "github.com/shopspring/decimal"

var chartScale = decimal.NewFromInt(1000)

// NormalizeChartValue scales a monetary value to the 0-100 range used by the
// report chart. Values are scaled against 1000 and capped at 100.
func NormalizeChartValue(v decimal.Decimal) int {
	scaled := v.Abs().Div(chartScale).Mul(decimal.NewFromInt(100)).Round(0)
	if scaled.GreaterThan(decimal.NewFromInt(100)) {
		return 100
	}
	return int(scaled.IntPart())
}
