package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeChartValue(t *testing.T) {
	tests := []struct {
		name  string
		value decimal.Decimal
		want  int
	}{
		{"zero", decimal.Zero, 0},
		{"mid scale", decimal.NewFromInt(500), 50},
		{"full scale", decimal.NewFromInt(1000), 100},
		{"capped", decimal.NewFromInt(2500), 100},
		{"negative uses magnitude", decimal.NewFromInt(-300), 30},
		{"rounds", decimal.NewFromFloat(124.9), 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeChartValue(tt.value))
		})
	}
}
