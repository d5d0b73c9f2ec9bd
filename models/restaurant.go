package models

import (
	"time"

	"kam-api/apperrors"
)

// RestaurantStatus is the account lifecycle stage of a lead/client
type RestaurantStatus string

const (
	StatusActive    RestaurantStatus = "active"
	StatusInactive  RestaurantStatus = "inactive"
	StatusConverted RestaurantStatus = "converted"
)

// DefaultCallFrequency is the cadence, in days, given to new restaurants
const DefaultCallFrequency = 7

func (s RestaurantStatus) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusConverted:
		return true
	}
	return false
}

// ParseRestaurantStatus rejects anything outside the enumerated statuses
func ParseRestaurantStatus(v string) (RestaurantStatus, error) {
	s := RestaurantStatus(v)
	if !s.Valid() {
		return "", apperrors.Validation("invalid status %q. Must be: active, inactive, or converted", v)
	}
	return s, nil
}

// ValidateCallFrequency enforces call_frequency >= 1
func ValidateCallFrequency(days int) error {
	if days < 1 {
		return apperrors.Validation("call_frequency must be a positive number of days, got %d", days)
	}
	return nil
}

type Restaurant struct {
	ID            uint             `json:"id" gorm:"primaryKey"`
	Name          string           `json:"name" gorm:"not null"`
	Status        RestaurantStatus `json:"status" gorm:"type:varchar(16);not null;default:'active';index"`
	CallFrequency int              `json:"call_frequency" gorm:"not null;default:7"`
	LastCallDate  *time.Time       `json:"last_call_date"`
	AddressID     *uint            `json:"address_id" gorm:"index"`
	Address       *Address         `json:"address,omitempty" gorm:"foreignKey:AddressID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	Contacts      []Contact        `json:"contacts,omitempty" gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"`
	Interactions  []Interaction    `json:"interactions,omitempty" gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// Contact is a person at a restaurant; owned by it and deleted with it
type Contact struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	Role         string    `json:"role" gorm:"not null"`
	Phone        *string   `json:"phone"`
	Email        *string   `json:"email"`
	RestaurantID uint      `json:"restaurant_id" gorm:"not null;index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
