package store

import (
	"context"

	"kam-api/apperrors"
	"kam-api/models"
)

// CreateUser inserts u; a taken username is a Conflict.
func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	if u.Role == "" {
		u.Role = models.RoleKAM
	}
	if !u.Role.Valid() {
		return apperrors.Validation("invalid role %q. Must be: Admin, KAM, or Viewer", u.Role)
	}
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", u.Username).Count(&count).Error; err != nil {
		return translate(err, "User")
	}
	if count > 0 {
		return apperrors.Conflict("username already taken")
	}
	return translate(s.db.WithContext(ctx).Create(u).Error, "User")
}

func (s *Store) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, translate(err, "User")
	}
	return &u, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, translate(err, "User")
	}
	return &u, nil
}

// ListUsers returns all users, or only those with role when set.
func (s *Store) ListUsers(ctx context.Context, role models.UserRole) ([]models.User, error) {
	query := s.db.WithContext(ctx).Model(&models.User{})
	if role != "" {
		query = query.Where("role = ?", role)
	}
	var users []models.User
	if err := query.Order("id asc").Find(&users).Error; err != nil {
		return nil, translate(err, "User")
	}
	return users, nil
}
