package groupapp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"yatube/internal/config"
	"yatube/internal/core/apperror"
	groupEntity "yatube/internal/core/group"
	"yatube/internal/core/pagination"
	"yatube/internal/core/policy"
	"yatube/internal/core/sanitize"
	userEntity "yatube/internal/core/user"
	"yatube/internal/core/validation"
	groupPort "yatube/internal/ports/group"
)

// ListPageSize is the number of groups per group-list page.
const ListPageSize = 10

type GroupService struct {
	GroupRepository groupPort.GroupRepository
}

func NewGroupService(repo groupPort.GroupRepository) *GroupService {
	return &GroupService{GroupRepository: repo}
}

// Create stores a new group owned by actor. New groups are listed
// immediately.
func (s *GroupService) Create(ctx context.Context, actor *userEntity.User, in groupPort.GroupInput) (*groupEntity.Group, error) {
	if actor == nil {
		return nil, apperror.ErrForbidden
	}
	in.Title = sanitize.Plain(strings.TrimSpace(in.Title))
	in.Slug = strings.TrimSpace(in.Slug)
	in.Description = sanitize.Plain(strings.TrimSpace(in.Description))
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	g, err := s.GroupRepository.Create(ctx, &groupEntity.Group{
		Title:       in.Title,
		Slug:        in.Slug,
		Description: in.Description,
		Moderation:  true,
		CreatorID:   actor.ID,
	})
	if errors.Is(err, apperror.ErrConflict) {
		return nil, apperror.NewValidationError("slug", "Group with this slug already exists.")
	}
	if err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}

	config.Logger.Info("👥 Group created", zap.String("slug", g.Slug), zap.String("creator", actor.Username))
	return g, nil
}

// ListModerated pages the groups that passed moderation.
func (s *GroupService) ListModerated(ctx context.Context, page string) (pagination.Page[*groupEntity.Group], error) {
	groups, err := s.GroupRepository.ListModerated(ctx)
	if err != nil {
		return pagination.Page[*groupEntity.Group]{}, fmt.Errorf("list groups: %w", err)
	}
	listed := groups[:0]
	for _, g := range groups {
		if policy.Listed(g) {
			listed = append(listed, g)
		}
	}
	return pagination.Paginate(listed, ListPageSize, page), nil
}

func (s *GroupService) GetBySlug(ctx context.Context, slug string) (*groupEntity.Group, error) {
	return s.GroupRepository.FindBySlug(ctx, slug)
}

// All returns every group, for the post form's group choice.
func (s *GroupService) All(ctx context.Context) ([]*groupEntity.Group, error) {
	return s.GroupRepository.List(ctx)
}
