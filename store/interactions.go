package store

import (
	"context"
	"time"

	"gorm.io/gorm"

	"kam-api/apperrors"
	"kam-api/models"
)

// InteractionFilter narrows ListInteractions.
type InteractionFilter struct {
	RestaurantID *uint
	Type         models.InteractionType
	// Newest lists most recent first; the default is chronological.
	Newest bool
}

// InteractionPatch carries the fields of a partial interaction update.
// Editing an interaction never touches the restaurant's last_call_date.
type InteractionPatch struct {
	Type    *models.InteractionType
	Details *string
	Date    *time.Time
}

func (s *Store) ListInteractions(ctx context.Context, filter InteractionFilter) ([]models.Interaction, error) {
	query := s.db.WithContext(ctx).Model(&models.Interaction{})
	if filter.RestaurantID != nil {
		query = query.Where("restaurant_id = ?", *filter.RestaurantID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Newest {
		query = query.Order("date desc").Order("id desc")
	} else {
		query = query.Order("date asc").Order("id asc")
	}
	var interactions []models.Interaction
	if err := query.Find(&interactions).Error; err != nil {
		return nil, translate(err, "Interaction")
	}
	return interactions, nil
}

func (s *Store) GetInteraction(ctx context.Context, id uint) (*models.Interaction, error) {
	var in models.Interaction
	if err := s.db.WithContext(ctx).First(&in, id).Error; err != nil {
		return nil, translate(err, "Interaction")
	}
	return &in, nil
}

// CreateInteraction inserts in and, for calls, moves the restaurant's
// last_call_date to the interaction date. Both writes commit together or not
// at all; a missing restaurant is NotFound, a failed last_call_date update is
// an Integrity error.
func (s *Store) CreateInteraction(ctx context.Context, in *models.Interaction) error {
	if _, err := models.ParseInteractionType(string(in.Type)); err != nil {
		return err
	}
	if in.Date.IsZero() {
		in.Date = s.now()
	}
	in.Date = in.Date.UTC()

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&models.Restaurant{}, in.RestaurantID).Error; err != nil {
			return translate(err, "Restaurant")
		}
		if err := tx.Create(in).Error; err != nil {
			return translate(err, "Interaction")
		}
		if in.Type != models.InteractionCall {
			return nil
		}
		res := tx.Model(&models.Restaurant{}).
			Where("id = ?", in.RestaurantID).
			Update("last_call_date", in.Date)
		if res.Error != nil {
			return apperrors.Integrity(res.Error, "update last_call_date of restaurant %d", in.RestaurantID)
		}
		if res.RowsAffected != 1 {
			return apperrors.Integrity(nil, "update last_call_date of restaurant %d touched %d rows", in.RestaurantID, res.RowsAffected)
		}
		return nil
	})
}

func (s *Store) UpdateInteraction(ctx context.Context, id uint, patch InteractionPatch) (*models.Interaction, error) {
	updates := map[string]interface{}{}
	if patch.Type != nil {
		if _, err := models.ParseInteractionType(string(*patch.Type)); err != nil {
			return nil, err
		}
		updates["type"] = *patch.Type
	}
	if patch.Details != nil {
		updates["details"] = *patch.Details
	}
	if patch.Date != nil {
		updates["date"] = patch.Date.UTC()
	}

	var in models.Interaction
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&in, id).Error; err != nil {
			return translate(err, "Interaction")
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&in).Updates(updates).Error; err != nil {
			return translate(err, "Interaction")
		}
		return translate(tx.First(&in, id).Error, "Interaction")
	})
	if err != nil {
		return nil, err
	}
	return &in, nil
}

func (s *Store) DeleteInteraction(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Interaction{}, id)
	if res.Error != nil {
		return translate(res.Error, "Interaction")
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("Interaction")
	}
	return nil
}
