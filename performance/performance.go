// Package performance classifies account health from a restaurant's order
// history.
package performance

import (
	"sort"
	"time"

	"kam-api/models"
	"kam-api/timeutil"
)

// Status is the derived account-health bucket
type Status string

const (
	StatusWellPerforming  Status = "well-performing"
	StatusAverage         Status = "average"
	StatusUnderperforming Status = "underperforming"
)

const (
	// WellPerformingOrders is the tiered classifier's lower bound for well-performing.
	WellPerformingOrders = 10
	// ThresholdOrders is the threshold classifier's cut: strictly more orders than this is well-performing.
	ThresholdOrders = 5
)

const noOrdersMessage = "No orders have been placed for this restaurant."

// Metric is one row of the tiered performance report.
type Metric struct {
	ID                    uint   `json:"id"`
	Name                  string `json:"name"`
	TotalOrders           int    `json:"totalOrders"`
	AverageOrderFrequency *int   `json:"averageOrderFrequency"`
	PerformanceStatus     Status `json:"performanceStatus"`
	Message               string `json:"message,omitempty"`
}

// ThresholdResult is one row of the threshold performance report.
type ThresholdResult struct {
	RestaurantID   uint   `json:"restaurantId"`
	Name           string `json:"name"`
	OrderFrequency int    `json:"orderFrequency"`
	Status         Status `json:"status"`
}

// OrderFrequency summarises a single restaurant's ordering cadence.
type OrderFrequency struct {
	Frequency  int  `json:"frequency"`
	AverageGap *int `json:"averageGap"`
}

// OrderDates returns the dates of order interactions, ascending. Input order
// does not matter and the input is not modified.
func OrderDates(interactions []models.Interaction) []time.Time {
	dates := make([]time.Time, 0, len(interactions))
	for _, i := range interactions {
		if i.Type == models.InteractionOrder {
			dates = append(dates, i.Date)
		}
	}
	sort.Slice(dates, func(a, b int) bool { return dates[a].Before(dates[b]) })
	return dates
}

// AverageGapDays is the mean gap between consecutive sorted dates, rounded
// to the nearest whole day. Nil when there is no gap to measure.
func AverageGapDays(sorted []time.Time) *int {
	if len(sorted) < 2 {
		return nil
	}
	var total int64
	for i := 1; i < len(sorted); i++ {
		total += sorted[i].Sub(sorted[i-1]).Milliseconds()
	}
	mean := float64(total) / float64(len(sorted)-1) / timeutil.MillisPerDay
	days := timeutil.RoundDays(mean)
	return &days
}

// Classify is the tiered classifier: >=10 well-performing, 1..9 average,
// 0 underperforming.
func Classify(totalOrders int) Status {
	switch {
	case totalOrders >= WellPerformingOrders:
		return StatusWellPerforming
	case totalOrders >= 1:
		return StatusAverage
	default:
		return StatusUnderperforming
	}
}

// ClassifyByThreshold is the threshold classifier: more than 5 orders is
// well-performing, anything else underperforming.
func ClassifyByThreshold(totalOrders int) Status {
	if totalOrders > ThresholdOrders {
		return StatusWellPerforming
	}
	return StatusUnderperforming
}

// Metrics builds the tiered report row for r.
func Metrics(r models.Restaurant, interactions []models.Interaction) Metric {
	dates := OrderDates(interactions)
	m := Metric{
		ID:                r.ID,
		Name:              r.Name,
		TotalOrders:       len(dates),
		PerformanceStatus: Classify(len(dates)),
	}
	if len(dates) == 0 {
		m.Message = noOrdersMessage
		return m
	}
	m.AverageOrderFrequency = AverageGapDays(dates)
	return m
}

// Threshold builds the threshold report row for r.
func Threshold(r models.Restaurant, interactions []models.Interaction) ThresholdResult {
	count := len(OrderDates(interactions))
	return ThresholdResult{
		RestaurantID:   r.ID,
		Name:           r.Name,
		OrderFrequency: count,
		Status:         ClassifyByThreshold(count),
	}
}

// Frequency summarises the orders among interactions.
func Frequency(interactions []models.Interaction) OrderFrequency {
	dates := OrderDates(interactions)
	return OrderFrequency{
		Frequency:  len(dates),
		AverageGap: AverageGapDays(dates),
	}
}
