package database

import (
	"context"
	"time"

	"inkwell/internal/core/follow"
	"inkwell/internal/core/post"
	postPort "inkwell/internal/ports/post"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepositoryDatabase implements PostRepository with gorm
type PostRepositoryDatabase struct {
	db *gorm.DB
}

// NewPostRepositoryDatabase builds a PostRepositoryDatabase
func NewPostRepositoryDatabase(db *gorm.DB) *PostRepositoryDatabase {
	return &PostRepositoryDatabase{db: db}
}

func (repo *PostRepositoryDatabase) Create(ctx context.Context, p *post.Post) (*post.Post, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.Must(uuid.NewV4())
	}
	if p.Created.IsZero() {
		p.Created = time.Now()
	}
	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error; err != nil {
		return nil, translateError(err, "post", p.ID)
	}
	return p, nil
}

func (repo *PostRepositoryDatabase) FindByID(ctx context.Context, id string) (*post.Post, error) {
	var p post.Post
	if err := repo.db.WithContext(ctx).
		Preload("Author").
		Preload("Group").
		Where("id = ?", id).
		First(&p).Error; err != nil {
		return nil, translateError(err, "post", id)
	}
	return &p, nil
}

// Update writes the editable columns only; created is never part of an update.
func (repo *PostRepositoryDatabase) Update(ctx context.Context, p *post.Post) error {
	err := repo.db.WithContext(ctx).
		Model(&post.Post{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"text":     p.Text,
			"group_id": p.GroupID,
			"image":    p.Image,
		}).Error
	return translateError(err, "post", p.ID)
}

func (repo *PostRepositoryDatabase) Delete(ctx context.Context, id string) error {
	res := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&post.Post{})
	if res.Error != nil {
		return translateError(res.Error, "post", id)
	}
	if res.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound, "post", id)
	}
	return nil
}

// List returns one window of the filtered posts, newest first.
func (repo *PostRepositoryDatabase) List(ctx context.Context, filter postPort.PostFilter, limit, offset int) ([]*post.Post, error) {
	var posts []*post.Post
	if err := repo.filtered(ctx, filter).
		Preload("Author").
		Preload("Group").
		Order("posts.created DESC").
		Order("posts.id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, translateError(err, "post", "list")
	}
	return posts, nil
}

func (repo *PostRepositoryDatabase) Count(ctx context.Context, filter postPort.PostFilter) (int64, error) {
	var count int64
	if err := repo.filtered(ctx, filter).Count(&count).Error; err != nil {
		return 0, translateError(err, "post", "count")
	}
	return count, nil
}

func (repo *PostRepositoryDatabase) filtered(ctx context.Context, filter postPort.PostFilter) *gorm.DB {
	q := repo.db.WithContext(ctx).Model(&post.Post{})
	if filter.AuthorID != "" {
		q = q.Where("posts.author_id = ?", filter.AuthorID)
	}
	if filter.GroupID != "" {
		q = q.Where("posts.group_id = ?", filter.GroupID)
	}
	if filter.FollowerID != "" {
		followed := repo.db.WithContext(ctx).
			Model(&follow.Follow{}).
			Select("author_id").
			Where("user_id = ?", filter.FollowerID)
		q = q.Where("posts.author_id IN (?)", followed)
	}
	return q
}
