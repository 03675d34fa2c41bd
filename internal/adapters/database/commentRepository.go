package database

import (
	"context"
	"time"

	"inkwell/internal/core/comment"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommentRepositoryDatabase struct {
	db *gorm.DB
}

func NewCommentRepositoryDatabase(db *gorm.DB) *CommentRepositoryDatabase {
	return &CommentRepositoryDatabase{db: db}
}

func (repo *CommentRepositoryDatabase) Create(ctx context.Context, c *comment.Comment) (*comment.Comment, error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.Must(uuid.NewV4())
	}
	if c.Created.IsZero() {
		c.Created = time.Now()
	}
	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error; err != nil {
		return nil, translateError(err, "comment", c.ID)
	}
	return c, nil
}

// ListByPostID returns the post's comments, oldest first.
func (repo *CommentRepositoryDatabase) ListByPostID(ctx context.Context, postID string) ([]*comment.Comment, error) {
	var comments []*comment.Comment
	if err := repo.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created ASC").
		Order("id ASC").
		Find(&comments).Error; err != nil {
		return nil, translateError(err, "comment", postID)
	}
	return comments, nil
}
