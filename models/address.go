package models

import (
	"strings"
	"time"

	"kam-api/apperrors"
)

// Address can be shared by several restaurants. Timezone is filled from a
// geocode lookup, never from user input.
type Address struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Street    *string   `json:"street"`
	City      string    `json:"city" gorm:"not null"`
	State     *string   `json:"state"`
	Country   string    `json:"country" gorm:"not null"`
	PinCode   string    `json:"pin_code" gorm:"not null"`
	Timezone  *string   `json:"timezone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks the required columns
func (a *Address) Validate() error {
	if strings.TrimSpace(a.City) == "" || strings.TrimSpace(a.Country) == "" || strings.TrimSpace(a.PinCode) == "" {
		return apperrors.Validation("city, country, and pin_code are required")
	}
	return nil
}
