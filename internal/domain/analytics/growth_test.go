package analytics_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/seller-crm/internal/domain/analytics"
)

func TestGrowthPercentInt(t *testing.T) {
	cases := []struct {
		curr, prev int
		want       string
	}{
		{12, 10, "20"},
		{5, 0, "100"},
		{0, 0, "0"},
		{5, 10, "-50"},
		{1, 3, "-66.67"},
	}
	for _, tc := range cases {
		got := analytics.GrowthPercentInt(tc.curr, tc.prev)
		assert.Equal(t, tc.want, got.String(), "curr=%d prev=%d", tc.curr, tc.prev)
	}
}

func TestCompare_Tendencia(t *testing.T) {
	up := analytics.Compare(decimal.NewFromInt(150), decimal.NewFromInt(100))
	assert.Equal(t, analytics.TrendUp, up.Trend)
	assert.Equal(t, "50", up.Growth.String())

	down := analytics.Compare(decimal.NewFromInt(50), decimal.NewFromInt(100))
	assert.Equal(t, analytics.TrendDown, down.Trend)

	flat := analytics.Compare(decimal.Zero, decimal.Zero)
	assert.Equal(t, analytics.TrendStable, flat.Trend)
}

func TestWindows_Contiguas(t *testing.T) {
	now := time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)
	curr, prev := analytics.Windows(now, 30)

	assert.Equal(t, now, curr.End)
	assert.Equal(t, now.AddDate(0, 0, -30), curr.Start)
	assert.Equal(t, curr.Start, prev.End)
	assert.Equal(t, now.AddDate(0, 0, -60), prev.Start)

	assert.True(t, curr.Contains(curr.Start))
	assert.False(t, curr.Contains(curr.End))
	assert.False(t, prev.Contains(curr.Start))
}

func TestSafeDiv(t *testing.T) {
	assert.True(t, analytics.SafeDiv(decimal.NewFromInt(10), decimal.Zero).IsZero())
	assert.Equal(t, "3.33", analytics.SafeDiv(decimal.NewFromInt(10), decimal.NewFromInt(3)).String())
}
