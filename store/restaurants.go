package store

import (
	"context"
	"time"

	"gorm.io/gorm"

	"kam-api/apperrors"
	"kam-api/models"
)

// RestaurantFilter narrows ListRestaurants. Zero values mean "no filter".
type RestaurantFilter struct {
	Status models.RestaurantStatus
	Search string
}

// RestaurantPatch carries the fields of a partial update; nil means unchanged.
type RestaurantPatch struct {
	Name          *string
	Status        *models.RestaurantStatus
	CallFrequency *int
	LastCallDate  *time.Time
	AddressID     *uint
	ClearAddress  bool
}

func (p RestaurantPatch) validate() error {
	if p.Name != nil && *p.Name == "" {
		return apperrors.Validation("name must not be empty")
	}
	if p.Status != nil {
		if _, err := models.ParseRestaurantStatus(string(*p.Status)); err != nil {
			return err
		}
	}
	if p.CallFrequency != nil {
		if err := models.ValidateCallFrequency(*p.CallFrequency); err != nil {
			return err
		}
	}
	return nil
}

func (p RestaurantPatch) updates() map[string]interface{} {
	u := map[string]interface{}{}
	if p.Name != nil {
		u["name"] = *p.Name
	}
	if p.Status != nil {
		u["status"] = *p.Status
	}
	if p.CallFrequency != nil {
		u["call_frequency"] = *p.CallFrequency
	}
	if p.LastCallDate != nil {
		u["last_call_date"] = p.LastCallDate.UTC()
	}
	if p.ClearAddress {
		u["address_id"] = nil
	} else if p.AddressID != nil {
		u["address_id"] = *p.AddressID
	}
	return u
}

func (s *Store) ListRestaurants(ctx context.Context, filter RestaurantFilter) ([]models.Restaurant, error) {
	query := s.db.WithContext(ctx).Model(&models.Restaurant{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}
	var restaurants []models.Restaurant
	if err := query.Order("id asc").Find(&restaurants).Error; err != nil {
		return nil, translate(err, "Restaurant")
	}
	return restaurants, nil
}

// ListRestaurantsWithInteractions returns every restaurant with its
// interactions of the given types (all types when none given) preloaded in
// ascending date order. Both reads share one transaction.
func (s *Store) ListRestaurantsWithInteractions(ctx context.Context, types ...models.InteractionType) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Preload("Interactions", interactionScope(types)).Order("id asc").Find(&restaurants).Error
	})
	if err != nil {
		return nil, translate(err, "Restaurant")
	}
	return restaurants, nil
}

// RestaurantWithInteractions is the single-restaurant form of ListRestaurantsWithInteractions.
func (s *Store) RestaurantWithInteractions(ctx context.Context, id uint, types ...models.InteractionType) (*models.Restaurant, error) {
	var r models.Restaurant
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Preload("Interactions", interactionScope(types)).First(&r, id).Error
	})
	if err != nil {
		return nil, translate(err, "Restaurant")
	}
	return &r, nil
}

func interactionScope(types []models.InteractionType) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if len(types) > 0 {
			db = db.Where("type IN ?", types)
		}
		return db.Order("date asc").Order("id asc")
	}
}

func (s *Store) GetRestaurant(ctx context.Context, id uint) (*models.Restaurant, error) {
	var r models.Restaurant
	if err := s.db.WithContext(ctx).Preload("Address").First(&r, id).Error; err != nil {
		return nil, translate(err, "Restaurant")
	}
	return &r, nil
}

// CreateRestaurant applies the status/call_frequency defaults before insert.
func (s *Store) CreateRestaurant(ctx context.Context, r *models.Restaurant) error {
	if r.Name == "" {
		return apperrors.Validation("name is required")
	}
	if r.Status == "" {
		r.Status = models.StatusActive
	}
	if _, err := models.ParseRestaurantStatus(string(r.Status)); err != nil {
		return err
	}
	if r.CallFrequency == 0 {
		r.CallFrequency = models.DefaultCallFrequency
	}
	if err := models.ValidateCallFrequency(r.CallFrequency); err != nil {
		return err
	}
	if r.LastCallDate != nil {
		utc := r.LastCallDate.UTC()
		r.LastCallDate = &utc
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if r.AddressID != nil {
			if err := tx.Select("id").First(&models.Address{}, *r.AddressID).Error; err != nil {
				return translate(err, "Address")
			}
		}
		return translate(tx.Omit("Address", "Contacts", "Interactions").Create(r).Error, "Restaurant")
	})
}

func (s *Store) UpdateRestaurant(ctx context.Context, id uint, patch RestaurantPatch) (*models.Restaurant, error) {
	if err := patch.validate(); err != nil {
		return nil, err
	}
	var r models.Restaurant
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&r, id).Error; err != nil {
			return translate(err, "Restaurant")
		}
		if patch.AddressID != nil && !patch.ClearAddress {
			if err := tx.Select("id").First(&models.Address{}, *patch.AddressID).Error; err != nil {
				return translate(err, "Address")
			}
		}
		updates := patch.updates()
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&r).Updates(updates).Error; err != nil {
			return translate(err, "Restaurant")
		}
		return translate(tx.First(&r, id).Error, "Restaurant")
	})
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// DeleteRestaurant removes the restaurant together with its contacts and
// interactions, all or nothing.
func (s *Store) DeleteRestaurant(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var r models.Restaurant
		if err := tx.Select("id").First(&r, id).Error; err != nil {
			return translate(err, "Restaurant")
		}
		if err := tx.Where("restaurant_id = ?", id).Delete(&models.Contact{}).Error; err != nil {
			return apperrors.Integrity(err, "delete contacts of restaurant %d", id)
		}
		if err := tx.Where("restaurant_id = ?", id).Delete(&models.Interaction{}).Error; err != nil {
			return apperrors.Integrity(err, "delete interactions of restaurant %d", id)
		}
		if err := tx.Delete(&models.Restaurant{}, id).Error; err != nil {
			return apperrors.Integrity(err, "delete restaurant %d", id)
		}
		return nil
	})
}

// CountRestaurantsByStatus powers the admin dashboard summary.
func (s *Store) CountRestaurantsByStatus(ctx context.Context) (map[models.RestaurantStatus]int64, error) {
	var rows []struct {
		Status models.RestaurantStatus
		Count  int64
	}
	err := s.db.WithContext(ctx).Model(&models.Restaurant{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err, "Restaurant")
	}
	summary := map[models.RestaurantStatus]int64{}
	for _, row := range rows {
		summary[row.Status] = row.Count
	}
	return summary, nil
}
