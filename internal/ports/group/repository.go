package group

import (
	"context"

	"inkwell/internal/core/group"
)

type GroupRepository interface {
	Create(ctx context.Context, group *group.Group) (*group.Group, error)
	FindBySlug(ctx context.Context, slug string) (*group.Group, error)
	List(ctx context.Context) ([]*group.Group, error)
	DeleteBySlug(ctx context.Context, slug string) error
}

type GroupDTO struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

func NewGroupDTO(g *group.Group) *GroupDTO {
	if g == nil {
		return nil
	}
	return &GroupDTO{
		ID:          g.ID.String(),
		Title:       g.Title,
		Slug:        g.Slug,
		Description: g.Description,
	}
}
