package database

import (
	"context"

	"inkwell/internal/core/user"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// UserRepositoryDatabase implements UserRepository with gorm
type UserRepositoryDatabase struct {
	db *gorm.DB
}

// NewUserRepositoryDatabase builds a UserRepositoryDatabase
func NewUserRepositoryDatabase(db *gorm.DB) *UserRepositoryDatabase {
	return &UserRepositoryDatabase{db: db}
}

func (repo *UserRepositoryDatabase) Create(ctx context.Context, u *user.User) (*user.User, error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.Must(uuid.NewV4())
	}
	if err := repo.db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, translateError(err, "user", u.Username)
	}
	return u, nil
}

func (repo *UserRepositoryDatabase) FindByID(ctx context.Context, id string) (*user.User, error) {
	var u user.User
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, translateError(err, "user", id)
	}
	return &u, nil
}

func (repo *UserRepositoryDatabase) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	var u user.User
	if err := repo.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, translateError(err, "user", username)
	}
	return &u, nil
}

// DeleteByUsername removes the user; posts, comments and follow edges go with it.
func (repo *UserRepositoryDatabase) DeleteByUsername(ctx context.Context, username string) error {
	res := repo.db.WithContext(ctx).Where("username = ?", username).Delete(&user.User{})
	if res.Error != nil {
		return translateError(res.Error, "user", username)
	}
	if res.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound, "user", username)
	}
	return nil
}
