package database

import (
	"context"

	"inkwell/internal/core/group"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type GroupRepositoryDatabase struct {
	db *gorm.DB
}

func NewGroupRepositoryDatabase(db *gorm.DB) *GroupRepositoryDatabase {
	return &GroupRepositoryDatabase{db: db}
}

func (repo *GroupRepositoryDatabase) Create(ctx context.Context, g *group.Group) (*group.Group, error) {
	if g.ID == uuid.Nil {
		g.ID = uuid.Must(uuid.NewV4())
	}
	if err := repo.db.WithContext(ctx).Create(g).Error; err != nil {
		return nil, translateError(err, "group", g.Slug)
	}
	return g, nil
}

func (repo *GroupRepositoryDatabase) FindBySlug(ctx context.Context, slug string) (*group.Group, error) {
	var g group.Group
	if err := repo.db.WithContext(ctx).Where("slug = ?", slug).First(&g).Error; err != nil {
		return nil, translateError(err, "group", slug)
	}
	return &g, nil
}

func (repo *GroupRepositoryDatabase) List(ctx context.Context) ([]*group.Group, error) {
	var groups []*group.Group
	if err := repo.db.WithContext(ctx).Order("title ASC").Find(&groups).Error; err != nil {
		return nil, translateError(err, "group", "list")
	}
	return groups, nil
}

// DeleteBySlug removes the group. Its posts stay, with group_id set to NULL.
func (repo *GroupRepositoryDatabase) DeleteBySlug(ctx context.Context, slug string) error {
	res := repo.db.WithContext(ctx).Where("slug = ?", slug).Delete(&group.Group{})
	if res.Error != nil {
		return translateError(res.Error, "group", slug)
	}
	if res.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound, "group", slug)
	}
	return nil
}
