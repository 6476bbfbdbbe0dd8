package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"inkpost/models"
)

type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Create(ctx context.Context, user *models.User) error {
	return translateGormError(r.db.WithContext(ctx).Create(user).Error, "create user")
}

func (r *GormUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, "username = ?", username)
}

func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *GormUserRepository) findOne(ctx context.Context, query, arg string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where(query, arg).First(&user).Error; err != nil {
		return nil, translateGormError(err, "find user")
	}
	return &user, nil
}

// Save overwrites every column of an existing user. Select("*") keeps false
// booleans and empty strings in the update.
func (r *GormUserRepository) Save(ctx context.Context, user *models.User) error {
	res := r.db.WithContext(ctx).Model(user).Select("*").Omit("id", "created_at").Updates(user)
	if res.Error != nil {
		return translateGormError(res.Error, "save user")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormUserRepository) ActiveIDs(ctx context.Context) ([]string, error) {
	ids := []string{}
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("profile_is_active = ?", true).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("list active users: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}
