package database

import (
	"context"

	"inkwell/internal/core/follow"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepositoryDatabase implements FollowRepository with gorm
type FollowRepositoryDatabase struct {
	db *gorm.DB
}

// NewFollowRepositoryDatabase builds a FollowRepositoryDatabase
func NewFollowRepositoryDatabase(db *gorm.DB) *FollowRepositoryDatabase {
	return &FollowRepositoryDatabase{db: db}
}

// Create inserts the edge. A second edge for the same pair is rejected by the
// unique_following index and comes back as a conflict.
func (repo *FollowRepositoryDatabase) Create(ctx context.Context, f *follow.Follow) (*follow.Follow, error) {
	if f.ID == uuid.Nil {
		f.ID = uuid.Must(uuid.NewV4())
	}
	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(f).Error; err != nil {
		return nil, translateError(err, "follow", f.UserID.String()+"->"+f.AuthorID.String())
	}
	return f, nil
}

func (repo *FollowRepositoryDatabase) Delete(ctx context.Context, userID, authorID string) error {
	err := repo.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&follow.Follow{}).Error
	return translateError(err, "follow", userID+"->"+authorID)
}

func (repo *FollowRepositoryDatabase) Exists(ctx context.Context, userID, authorID string) (bool, error) {
	var count int64
	if err := repo.db.WithContext(ctx).
		Model(&follow.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error; err != nil {
		return false, translateError(err, "follow", userID+"->"+authorID)
	}
	return count > 0, nil
}
