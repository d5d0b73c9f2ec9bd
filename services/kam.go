// Package services composes the record store with the scheduling and
// performance engines. Every computation reads one snapshot from the store.
package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"kam-api/models"
	"kam-api/performance"
	"kam-api/scheduling"
	"kam-api/store"
)

// RestaurantReader is the read side of the record store the engines use.
type RestaurantReader interface {
	ListRestaurants(ctx context.Context, filter store.RestaurantFilter) ([]models.Restaurant, error)
	ListRestaurantsWithInteractions(ctx context.Context, types ...models.InteractionType) ([]models.Restaurant, error)
	RestaurantWithInteractions(ctx context.Context, id uint, types ...models.InteractionType) (*models.Restaurant, error)
}

type KAMService struct {
	store RestaurantReader
	now   func() time.Time
	log   *logrus.Entry
}

func NewKAMService(s RestaurantReader, log *logrus.Entry) *KAMService {
	return &KAMService{store: s, now: time.Now, log: log.WithField("component", "kam")}
}

// WithClock pins "now" for deterministic schedules.
func (s *KAMService) WithClock(now func() time.Time) *KAMService {
	s.now = now
	return s
}

// GetLeadsDueForCall lists restaurants whose next call falls on or before
// the start of today in timezone ("" means UTC), ordered by id.
func (s *KAMService) GetLeadsDueForCall(ctx context.Context, timezone string) ([]models.Restaurant, error) {
	ref, err := scheduling.ReferenceNow(s.now(), timezone)
	if err != nil {
		return nil, err
	}
	restaurants, err := s.store.ListRestaurants(ctx, store.RestaurantFilter{})
	if err != nil {
		return nil, err
	}
	due := scheduling.DueForCall(restaurants, ref)
	s.log.WithFields(logrus.Fields{
		"timezone":  timezone,
		"reference": ref.Format(time.RFC3339),
		"due":       len(due),
		"total":     len(restaurants),
	}).Debug("computed due calls")
	return due, nil
}

// GetPerformanceMetrics applies the tiered classifier to every restaurant.
func (s *KAMService) GetPerformanceMetrics(ctx context.Context) ([]performance.Metric, error) {
	restaurants, err := s.store.ListRestaurantsWithInteractions(ctx, models.InteractionOrder)
	if err != nil {
		return nil, err
	}
	metrics := make([]performance.Metric, 0, len(restaurants))
	for _, r := range restaurants {
		metrics = append(metrics, performance.Metrics(r, r.Interactions))
	}
	return metrics, nil
}

// GetPerformanceData applies the threshold classifier to every restaurant.
func (s *KAMService) GetPerformanceData(ctx context.Context) ([]performance.ThresholdResult, error) {
	restaurants, err := s.store.ListRestaurantsWithInteractions(ctx, models.InteractionOrder)
	if err != nil {
		return nil, err
	}
	results := make([]performance.ThresholdResult, 0, len(restaurants))
	for _, r := range restaurants {
		results = append(results, performance.Threshold(r, r.Interactions))
	}
	return results, nil
}

func (s *KAMService) GetOrderFrequency(ctx context.Context, restaurantID uint) (performance.OrderFrequency, error) {
	r, err := s.store.RestaurantWithInteractions(ctx, restaurantID, models.InteractionOrder)
	if err != nil {
		return performance.OrderFrequency{}, err
	}
	return performance.Frequency(r.Interactions), nil
}
