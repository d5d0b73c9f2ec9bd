package store

import (
	"context"

	"gorm.io/gorm"

	"kam-api/apperrors"
	"kam-api/models"
)

// AddressPatch carries the fields of a partial address update. Timezone is
// set by the caller after a geocode lookup.
type AddressPatch struct {
	Street   *string
	City     *string
	State    *string
	Country  *string
	PinCode  *string
	Timezone *string
}

func (s *Store) ListAddresses(ctx context.Context) ([]models.Address, error) {
	var addresses []models.Address
	if err := s.db.WithContext(ctx).Order("id asc").Find(&addresses).Error; err != nil {
		return nil, translate(err, "Address")
	}
	return addresses, nil
}

func (s *Store) GetAddress(ctx context.Context, id uint) (*models.Address, error) {
	var a models.Address
	if err := s.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, translate(err, "Address")
	}
	return &a, nil
}

func (s *Store) CreateAddress(ctx context.Context, a *models.Address) error {
	if err := a.Validate(); err != nil {
		return err
	}
	return translate(s.db.WithContext(ctx).Create(a).Error, "Address")
}

func (s *Store) UpdateAddress(ctx context.Context, id uint, patch AddressPatch) (*models.Address, error) {
	var a models.Address
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&a, id).Error; err != nil {
			return translate(err, "Address")
		}
		merged := a
		updates := map[string]interface{}{}
		if patch.Street != nil {
			updates["street"] = *patch.Street
		}
		if patch.City != nil {
			merged.City = *patch.City
			updates["city"] = *patch.City
		}
		if patch.State != nil {
			updates["state"] = *patch.State
		}
		if patch.Country != nil {
			merged.Country = *patch.Country
			updates["country"] = *patch.Country
		}
		if patch.PinCode != nil {
			merged.PinCode = *patch.PinCode
			updates["pin_code"] = *patch.PinCode
		}
		if patch.Timezone != nil {
			updates["timezone"] = *patch.Timezone
		}
		if err := merged.Validate(); err != nil {
			return err
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&a).Updates(updates).Error; err != nil {
			return translate(err, "Address")
		}
		return translate(tx.First(&a, id).Error, "Address")
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// DeleteAddress detaches every restaurant pointing at the address, then
// removes it.
func (s *Store) DeleteAddress(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&models.Address{}, id).Error; err != nil {
			return translate(err, "Address")
		}
		err := tx.Model(&models.Restaurant{}).
			Where("address_id = ?", id).
			Update("address_id", nil).Error
		if err != nil {
			return apperrors.Integrity(err, "detach restaurants from address %d", id)
		}
		if err := tx.Delete(&models.Address{}, id).Error; err != nil {
			return apperrors.Integrity(err, "delete address %d", id)
		}
		return nil
	})
}
