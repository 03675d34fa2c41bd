package groupapp

import (
	"context"
	"fmt"
	"strings"

	"inkwell/internal/config"
	"inkwell/internal/core/apperror"
	groupEntity "inkwell/internal/core/group"
	"inkwell/internal/core/validation"
	groupPort "inkwell/internal/ports/group"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

type groupInput struct {
	Title       string `form:"title" validate:"notblank,max=200"`
	Slug        string `form:"slug" validate:"required,max=50,slug"`
	Description string `form:"description" validate:"notblank"`
}

type GroupService struct {
	GroupRepository groupPort.GroupRepository
}

func NewGroupService(repo groupPort.GroupRepository) *GroupService {
	return &GroupService{GroupRepository: repo}
}

func (s *GroupService) CreateGroup(ctx context.Context, title, slug, description string) (*groupPort.GroupDTO, error) {
	in := groupInput{
		Title:       strings.TrimSpace(title),
		Slug:        strings.TrimSpace(slug),
		Description: description,
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	g, err := s.GroupRepository.Create(ctx, &groupEntity.Group{
		ID:          uuid.Must(uuid.NewV4()),
		Title:       in.Title,
		Slug:        in.Slug,
		Description: in.Description,
	})
	if apperror.IsConflict(err) {
		return nil, apperror.NewValidationError("slug", "group with this slug already exists")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}
	config.Logger.Info("Group created", zap.String("slug", g.Slug))
	return groupPort.NewGroupDTO(g), nil
}

func (s *GroupService) GetBySlug(ctx context.Context, slug string) (*groupPort.GroupDTO, error) {
	g, err := s.GroupRepository.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return groupPort.NewGroupDTO(g), nil
}

func (s *GroupService) ListGroups(ctx context.Context) ([]*groupPort.GroupDTO, error) {
	groups, err := s.GroupRepository.List(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]*groupPort.GroupDTO, 0, len(groups))
	for _, g := range groups {
		dtos = append(dtos, groupPort.NewGroupDTO(g))
	}
	return dtos, nil
}

// DeleteGroup removes the group; its posts stay, without a group.
func (s *GroupService) DeleteGroup(ctx context.Context, slug string) error {
	if err := s.GroupRepository.DeleteBySlug(ctx, slug); err != nil {
		return err
	}
	config.Logger.Info("Group deleted", zap.String("slug", slug))
	return nil
}
