package store

import (
	"context"

	"gorm.io/gorm"

	"kam-api/apperrors"
	"kam-api/models"
)

// ContactPatch carries the fields of a partial contact update.
type ContactPatch struct {
	Name  *string
	Role  *string
	Phone *string
	Email *string
}

// ListContacts returns every contact, or only those of restaurantID when set.
func (s *Store) ListContacts(ctx context.Context, restaurantID *uint) ([]models.Contact, error) {
	query := s.db.WithContext(ctx).Model(&models.Contact{})
	if restaurantID != nil {
		query = query.Where("restaurant_id = ?", *restaurantID)
	}
	var contacts []models.Contact
	if err := query.Order("id asc").Find(&contacts).Error; err != nil {
		return nil, translate(err, "Contact")
	}
	return contacts, nil
}

func (s *Store) GetContact(ctx context.Context, id uint) (*models.Contact, error) {
	var c models.Contact
	if err := s.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, translate(err, "Contact")
	}
	return &c, nil
}

func (s *Store) CreateContact(ctx context.Context, c *models.Contact) error {
	if c.Name == "" || c.Role == "" {
		return apperrors.Validation("name and role are required")
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&models.Restaurant{}, c.RestaurantID).Error; err != nil {
			return translate(err, "Restaurant")
		}
		return translate(tx.Create(c).Error, "Contact")
	})
}

func (s *Store) UpdateContact(ctx context.Context, id uint, patch ContactPatch) (*models.Contact, error) {
	if (patch.Name != nil && *patch.Name == "") || (patch.Role != nil && *patch.Role == "") {
		return nil, apperrors.Validation("name and role must not be empty")
	}
	updates := map[string]interface{}{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Role != nil {
		updates["role"] = *patch.Role
	}
	if patch.Phone != nil {
		updates["phone"] = *patch.Phone
	}
	if patch.Email != nil {
		updates["email"] = *patch.Email
	}

	var c models.Contact
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&c, id).Error; err != nil {
			return translate(err, "Contact")
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&c).Updates(updates).Error; err != nil {
			return translate(err, "Contact")
		}
		return translate(tx.First(&c, id).Error, "Contact")
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) DeleteContact(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Contact{}, id)
	if res.Error != nil {
		return translate(res.Error, "Contact")
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("Contact")
	}
	return nil
}
