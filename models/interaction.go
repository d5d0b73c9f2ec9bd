package models

import (
	"time"

	"kam-api/apperrors"
)

// InteractionType is the kind of touchpoint recorded against a restaurant
type InteractionType string

const (
	InteractionCall    InteractionType = "call"
	InteractionOrder   InteractionType = "order"
	InteractionVisit   InteractionType = "visit"
	InteractionEmail   InteractionType = "email"
	InteractionMeeting InteractionType = "meeting"
)

func (t InteractionType) Valid() bool {
	switch t {
	case InteractionCall, InteractionOrder, InteractionVisit, InteractionEmail, InteractionMeeting:
		return true
	}
	return false
}

func ParseInteractionType(v string) (InteractionType, error) {
	t := InteractionType(v)
	if !t.Valid() {
		return "", apperrors.Validation("invalid interaction type %q. Must be: call, order, visit, email, or meeting", v)
	}
	return t, nil
}

// Interaction is ordered chronologically by Date, which is always stored in UTC
type Interaction struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	Type         InteractionType `json:"type" gorm:"type:varchar(16);not null;index"`
	Details      string          `json:"details" gorm:"type:text"`
	Date         time.Time       `json:"date" gorm:"not null;index"`
	RestaurantID uint            `json:"restaurant_id" gorm:"not null;index"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
