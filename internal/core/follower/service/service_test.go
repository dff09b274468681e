package followerapp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yatube/internal/adapters/database"
	"yatube/internal/adapters/database/dbtest"
	"yatube/internal/core/apperror"
	followerEntity "yatube/internal/core/follower"
	groupEntity "yatube/internal/core/group"
	userEntity "yatube/internal/core/user"
)

type env struct {
	svc   *FollowerService
	alice *userEntity.User
	bob   *userEntity.User
	group *groupEntity.Group
}

func setup(t *testing.T) *env {
	db := dbtest.Open(t)
	ctx := context.Background()
	users := database.NewUserRepositoryDatabase(db)
	groups := database.NewGroupRepositoryDatabase(db)

	alice, err := users.Create(ctx, &userEntity.User{Username: "alice", Password: "x"})
	require.NoError(t, err)
	bob, err := users.Create(ctx, &userEntity.User{Username: "bob", Password: "x"})
	require.NoError(t, err)
	g, err := groups.Create(ctx, &groupEntity.Group{Title: "Cats", Slug: "cats", Moderation: true, CreatorID: alice.ID})
	require.NoError(t, err)

	return &env{
		svc:   NewFollowerService(database.NewFollowerRepositoryDatabase(db), users, groups),
		alice: alice,
		bob:   bob,
		group: g,
	}
}

func TestFollowAuthorTwiceKeepsOneEdge(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	require.NoError(t, e.svc.FollowAuthor(ctx, e.bob, "alice"))
	require.NoError(t, e.svc.FollowAuthor(ctx, e.bob, "alice"))

	n, err := e.svc.CountFollowers(ctx, followerEntity.AuthorTarget(e.alice.ID))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	ok, err := e.svc.IsFollowing(ctx, e.bob, followerEntity.AuthorTarget(e.alice.ID))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUnfollow(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	require.NoError(t, e.svc.FollowGroup(ctx, e.bob, "cats"))

	require.NoError(t, e.svc.UnfollowGroup(ctx, e.bob, "cats"))
	ok, err := e.svc.IsFollowing(ctx, e.bob, followerEntity.GroupTarget(e.group.ID))
	require.NoError(t, err)
	assert.False(t, ok)

	err = e.svc.UnfollowGroup(ctx, e.bob, "cats")
	assert.True(t, errors.Is(err, ErrNotFollowing))
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestFollowRejections(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	err := e.svc.FollowAuthor(ctx, e.alice, "alice")
	_, ok := apperror.AsValidation(err)
	assert.True(t, ok, "self-follow")

	assert.ErrorIs(t, e.svc.FollowAuthor(ctx, nil, "alice"), apperror.ErrForbidden)
	assert.ErrorIs(t, e.svc.UnfollowAuthor(ctx, nil, "alice"), apperror.ErrForbidden)
	assert.ErrorIs(t, e.svc.FollowAuthor(ctx, e.bob, "nobody"), apperror.ErrNotFound)
	assert.ErrorIs(t, e.svc.FollowGroup(ctx, e.bob, "dogs"), apperror.ErrNotFound)
}

func TestAnonymousIsNeverFollowing(t *testing.T) {
	e := setup(t)
	ok, err := e.svc.IsFollowing(context.Background(), nil, followerEntity.AuthorTarget(e.alice.ID))
	require.NoError(t, err)
	assert.False(t, ok)
}
