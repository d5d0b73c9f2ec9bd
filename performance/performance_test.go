package performance

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kam-api/models"
)

func on(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return d
}

func orders(t *testing.T, dates ...string) []models.Interaction {
	t.Helper()
	out := make([]models.Interaction, 0, len(dates))
	for i, d := range dates {
		out = append(out, models.Interaction{ID: uint(i + 1), Type: models.InteractionOrder, Date: on(t, d), RestaurantID: 1})
	}
	return out
}

func nOrders(t *testing.T, n int) []models.Interaction {
	t.Helper()
	start := on(t, "2024-01-01")
	out := make([]models.Interaction, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, models.Interaction{Type: models.InteractionOrder, Date: start.AddDate(0, 0, 3*i)})
	}
	return out
}

func TestMetrics_EndToEndScenario(t *testing.T) {
	r := models.Restaurant{ID: 1, Name: "Spice Route"}
	history := orders(t, "2024-12-01", "2024-12-05", "2024-12-10")
	history = append(history, models.Interaction{Type: models.InteractionCall, Date: on(t, "2024-12-02")})

	m := Metrics(r, history)

	assert.Equal(t, 3, m.TotalOrders)
	require.NotNil(t, m.AverageOrderFrequency)
	assert.Equal(t, 5, *m.AverageOrderFrequency)
	assert.Equal(t, StatusAverage, m.PerformanceStatus)
	assert.Empty(t, m.Message)
}

func TestMetrics_NoOrders(t *testing.T) {
	calls := []models.Interaction{{Type: models.InteractionCall, Date: on(t, "2024-12-02")}}
	m := Metrics(models.Restaurant{ID: 7, Name: "Quiet"}, calls)

	assert.Equal(t, 0, m.TotalOrders)
	assert.Nil(t, m.AverageOrderFrequency)
	assert.Equal(t, StatusUnderperforming, m.PerformanceStatus)
	assert.Equal(t, noOrdersMessage, m.Message)
}

func TestMetrics_SingleOrderGapIsNull(t *testing.T) {
	m := Metrics(models.Restaurant{ID: 1}, orders(t, "2024-12-01"))
	assert.Equal(t, 1, m.TotalOrders)
	assert.Nil(t, m.AverageOrderFrequency)
	assert.Equal(t, StatusAverage, m.PerformanceStatus)

	raw, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"averageOrderFrequency":null`)
}

func TestAverageGap_InvariantUnderReordering(t *testing.T) {
	sorted := orders(t, "2024-11-01", "2024-11-04", "2024-11-15", "2024-12-01")
	shuffled := []models.Interaction{sorted[2], sorted[0], sorted[3], sorted[1]}

	a := AverageGapDays(OrderDates(sorted))
	b := AverageGapDays(OrderDates(shuffled))
	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.Equal(t, *a, *b)
	assert.Equal(t, 10, *a)
	assert.Equal(t, uint(3), shuffled[0].ID, "input must not be reordered")
}

func TestClassify_Boundaries(t *testing.T) {
	tests := []struct {
		orders int
		want   Status
	}{
		{0, StatusUnderperforming},
		{1, StatusAverage},
		{9, StatusAverage},
		{10, StatusWellPerforming},
		{42, StatusWellPerforming},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.orders), "orders=%d", tt.orders)
		assert.Equal(t, tt.want, Metrics(models.Restaurant{}, nOrders(t, tt.orders)).PerformanceStatus, "orders=%d", tt.orders)
	}
}

func TestClassifyByThreshold(t *testing.T) {
	tests := []struct {
		orders int
		want   Status
	}{
		{0, StatusUnderperforming},
		{5, StatusUnderperforming},
		{6, StatusWellPerforming},
		{10, StatusWellPerforming},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyByThreshold(tt.orders), "orders=%d", tt.orders)
	}
}

func TestThreshold(t *testing.T) {
	r := models.Restaurant{ID: 4, Name: "Busy"}
	res := Threshold(r, nOrders(t, 6))
	assert.Equal(t, ThresholdResult{RestaurantID: 4, Name: "Busy", OrderFrequency: 6, Status: StatusWellPerforming}, res)
}

func TestFrequency(t *testing.T) {
	f := Frequency(nil)
	assert.Equal(t, 0, f.Frequency)
	assert.Nil(t, f.AverageGap)

	f = Frequency(orders(t, "2024-12-01"))
	assert.Equal(t, 1, f.Frequency)
	assert.Nil(t, f.AverageGap)

	f = Frequency(orders(t, "2024-12-10", "2024-12-01", "2024-12-05"))
	assert.Equal(t, 3, f.Frequency)
	require.NotNil(t, f.AverageGap)
	assert.Equal(t, 5, *f.AverageGap)
}
