package groupapp

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yatube/internal/adapters/database"
	"yatube/internal/adapters/database/dbtest"
	"yatube/internal/core/apperror"
	userEntity "yatube/internal/core/user"
	groupPort "yatube/internal/ports/group"
)

func setup(t *testing.T) (*GroupService, *userEntity.User) {
	db := dbtest.Open(t)
	u, err := database.NewUserRepositoryDatabase(db).Create(context.Background(), &userEntity.User{Username: "alice", Password: "x"})
	require.NoError(t, err)
	return NewGroupService(database.NewGroupRepositoryDatabase(db)), u
}

func TestCreateGroup(t *testing.T) {
	s, alice := setup(t)
	ctx := context.Background()

	g, err := s.Create(ctx, alice, groupPort.GroupInput{Title: " Cats ", Slug: "cats", Description: "<b>meow</b>"})
	require.NoError(t, err)
	assert.Equal(t, "Cats", g.Title)
	assert.Equal(t, "meow", g.Description)
	assert.True(t, g.Moderation)
	assert.Equal(t, alice.ID, g.CreatorID)

	got, err := s.GetBySlug(ctx, "cats")
	require.NoError(t, err)
	assert.Equal(t, g.ID, got.ID)

	_, err = s.Create(ctx, alice, groupPort.GroupInput{Title: "Other", Slug: "cats"})
	v, ok := apperror.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, v.Fields, "slug")

	_, err = s.Create(ctx, nil, groupPort.GroupInput{Title: "Dogs", Slug: "dogs"})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	_, err = s.GetBySlug(ctx, "dogs")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestListModeratedPages(t *testing.T) {
	s, alice := setup(t)
	ctx := context.Background()
	for i := 0; i < ListPageSize+2; i++ {
		_, err := s.Create(ctx, alice, groupPort.GroupInput{Title: fmt.Sprintf("G%d", i), Slug: fmt.Sprintf("g%d", i)})
		require.NoError(t, err)
	}

	first, err := s.ListModerated(ctx, "")
	require.NoError(t, err)
	assert.Len(t, first.Items, ListPageSize)
	assert.Equal(t, 2, first.TotalPages)

	second, err := s.ListModerated(ctx, "2")
	require.NoError(t, err)
	assert.Len(t, second.Items, 2)

	all, err := s.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, ListPageSize+2)
}
