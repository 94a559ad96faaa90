package services

import (
	"context"
	"strings"

	"rental-backend/config"
	"rental-backend/models"

	"gorm.io/gorm"
)

// UserService covers the slice of the identity system the marketplace needs:
// a stable id, a username, and cascading removal.
type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	if db == nil {
		db = config.DB
	}
	return &UserService{DB: db}
}

type CreateUserInput struct {
	Username string `json:"username" validate:"required,max=150"`
}

func (s *UserService) Create(ctx context.Context, in CreateUserInput) (models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	if err := validate(in); err != nil {
		return models.User{}, err
	}

	user := models.User{Username: in.Username}
	if err := s.DB.WithContext(ctx).Create(&user).Error; err != nil {
		return models.User{}, translateDBError(err)
	}
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id uint) (models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return models.User{}, translateDBError(err)
	}
	return user, nil
}

// Delete removes the user together with every listing they host, every
// booking and review they made, and every booking and review on their
// listings. Nothing is removed if any step fails.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteUserCascade(tx, id)
	})
	return translateDBError(err)
}
