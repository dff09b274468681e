package feedapp

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yatube/internal/adapters/database"
	"yatube/internal/adapters/database/dbtest"
	"yatube/internal/core/apperror"
	feedEntity "yatube/internal/core/feed"
	followerEntity "yatube/internal/core/follower"
	followerapp "yatube/internal/core/follower/service"
	groupEntity "yatube/internal/core/group"
	postEntity "yatube/internal/core/post"
	userEntity "yatube/internal/core/user"
)

type env struct {
	svc     *FeedService
	follows *followerapp.FollowerService
	posts   *database.PostRepositoryDatabase
	users   *database.UserRepositoryDatabase
	groups  *database.GroupRepositoryDatabase
	at      time.Time
}

func setup(t *testing.T) *env {
	db := dbtest.Open(t)
	users := database.NewUserRepositoryDatabase(db)
	groups := database.NewGroupRepositoryDatabase(db)
	posts := database.NewPostRepositoryDatabase(db)
	follows := followerapp.NewFollowerService(database.NewFollowerRepositoryDatabase(db), users, groups)
	return &env{
		svc:     NewFeedService(posts, users, groups, follows),
		follows: follows,
		posts:   posts,
		users:   users,
		groups:  groups,
		at:      time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (e *env) user(t *testing.T, name string) *userEntity.User {
	u, err := e.users.Create(context.Background(), &userEntity.User{Username: name, Password: "x"})
	require.NoError(t, err)
	return u
}

func (e *env) group(t *testing.T, slug string, creator *userEntity.User) *groupEntity.Group {
	g, err := e.groups.Create(context.Background(), &groupEntity.Group{Title: slug, Slug: slug, Moderation: true, CreatorID: creator.ID})
	require.NoError(t, err)
	return g
}

func (e *env) post(t *testing.T, author *userEntity.User, g *groupEntity.Group, slug string) *postEntity.Post {
	e.at = e.at.Add(time.Minute)
	p := &postEntity.Post{AuthorID: author.ID, Title: slug, Text: slug, Slug: slug, Moderation: true, CreatedAt: e.at}
	if g != nil {
		p.GroupID = &g.ID
	}
	p, err := e.posts.Create(context.Background(), p)
	require.NoError(t, err)
	return p
}

func slugs(f *feedEntity.Feed) []string {
	out := make([]string, 0, len(f.Page.Items))
	for _, p := range f.Page.Items {
		out = append(out, p.Slug)
	}
	return out
}

func TestProfileSecondPage(t *testing.T) {
	e := setup(t)
	alice := e.user(t, "alice")
	for i := 0; i < 5; i++ {
		e.post(t, alice, nil, fmt.Sprintf("slug_%d", i))
	}

	f, err := e.svc.Compose(context.Background(), feedEntity.AuthorScope("alice"), nil, "2")
	require.NoError(t, err)
	assert.Equal(t, []string{"slug_1", "slug_0"}, slugs(f))
	assert.Equal(t, 2, f.Page.Number)
	assert.Equal(t, 2, f.Page.TotalPages)
	assert.Equal(t, 5, f.Page.Total)
	assert.Equal(t, "alice", f.Author.Username)

	first, err := e.svc.Compose(context.Background(), feedEntity.AuthorScope("alice"), nil, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"slug_4", "slug_3", "slug_2"}, slugs(first))
}

func TestGroupSecondPage(t *testing.T) {
	e := setup(t)
	alice := e.user(t, "alice")
	g := e.group(t, "g-slug", alice)
	for i := 0; i < 5; i++ {
		e.post(t, alice, g, fmt.Sprintf("slug_%d", i))
	}

	f, err := e.svc.Compose(context.Background(), feedEntity.GroupScope("g-slug"), nil, "2")
	require.NoError(t, err)
	assert.Equal(t, []string{"slug_1", "slug_0"}, slugs(f))
	assert.Len(t, f.Page.Items, 2)
	assert.Equal(t, 2, f.Page.Number)
	assert.Equal(t, 2, f.Page.TotalPages)
	require.NotNil(t, f.Group)
	assert.Equal(t, "g-slug", f.Group.Slug)
}

func TestGroupFeedShowsOnlyGroupPosts(t *testing.T) {
	e := setup(t)
	alice := e.user(t, "alice")
	carol := e.user(t, "carol")
	g := e.group(t, "g", alice)
	e.post(t, alice, g, "first")
	e.post(t, carol, nil, "elsewhere")
	e.post(t, carol, g, "second")

	f, err := e.svc.Compose(context.Background(), feedEntity.GroupScope("g"), nil, "1")
	require.NoError(t, err)
	assert.Equal(t, []string{"second", "first"}, slugs(f))
	assert.Equal(t, "g", f.Group.Slug)
	assert.False(t, f.Following)
}

func TestGlobalFeedOutOfRangePage(t *testing.T) {
	e := setup(t)
	alice := e.user(t, "alice")
	for i := 0; i < 4; i++ {
		e.post(t, alice, nil, fmt.Sprintf("p%d", i))
	}

	f, err := e.svc.Compose(context.Background(), feedEntity.GlobalScope(), nil, "99")
	require.NoError(t, err)
	assert.Equal(t, 2, f.Page.Number)
	assert.Equal(t, []string{"p0"}, slugs(f))

	f, err = e.svc.Compose(context.Background(), feedEntity.GlobalScope(), nil, "abc")
	require.NoError(t, err)
	assert.Equal(t, 1, f.Page.Number)
	assert.Len(t, f.Page.Items, 3)
}

func TestFollowedFeed(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	alice := e.user(t, "alice")
	bob := e.user(t, "bob")
	carol := e.user(t, "carol")
	g := e.group(t, "g", carol)

	e.post(t, alice, g, "both")
	e.post(t, carol, nil, "unrelated")
	e.post(t, carol, g, "via-group")
	e.post(t, alice, nil, "via-author")

	require.NoError(t, e.follows.FollowAuthor(ctx, bob, "alice"))
	require.NoError(t, e.follows.FollowGroup(ctx, bob, "g"))

	f, err := e.svc.Compose(ctx, feedEntity.FollowedScope(), bob, "1")
	require.NoError(t, err)
	assert.Equal(t, []string{"via-author", "via-group", "both"}, slugs(f))
	assert.Equal(t, 1, f.Page.TotalPages)

	require.NoError(t, e.follows.UnfollowAuthor(ctx, bob, "alice"))
	f, err = e.svc.Compose(ctx, feedEntity.FollowedScope(), bob, "1")
	require.NoError(t, err)
	assert.Equal(t, []string{"via-group", "both"}, slugs(f))
}

func TestFollowedFeedAnonymousIsEmpty(t *testing.T) {
	e := setup(t)
	alice := e.user(t, "alice")
	e.post(t, alice, nil, "p")

	f, err := e.svc.Compose(context.Background(), feedEntity.FollowedScope(), nil, "3")
	require.NoError(t, err)
	assert.Empty(t, f.Page.Items)
	assert.Equal(t, 1, f.Page.Number)
	assert.Equal(t, 1, f.Page.TotalPages)
}

func TestFollowingFlag(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	alice := e.user(t, "alice")
	bob := e.user(t, "bob")
	g := e.group(t, "g", alice)

	f, err := e.svc.Compose(ctx, feedEntity.AuthorScope("alice"), bob, "")
	require.NoError(t, err)
	assert.False(t, f.Following)

	require.NoError(t, e.follows.Follow(ctx, bob, followerEntity.AuthorTarget(alice.ID)))
	require.NoError(t, e.follows.Follow(ctx, bob, followerEntity.GroupTarget(g.ID)))

	f, err = e.svc.Compose(ctx, feedEntity.AuthorScope("alice"), bob, "")
	require.NoError(t, err)
	assert.True(t, f.Following)

	f, err = e.svc.Compose(ctx, feedEntity.GroupScope("g"), bob, "")
	require.NoError(t, err)
	assert.True(t, f.Following)

	f, err = e.svc.Compose(ctx, feedEntity.AuthorScope("alice"), alice, "")
	require.NoError(t, err)
	assert.False(t, f.Following, "own profile")

	f, err = e.svc.Compose(ctx, feedEntity.AuthorScope("alice"), nil, "")
	require.NoError(t, err)
	assert.False(t, f.Following)
}

func TestProfileWithoutPosts(t *testing.T) {
	e := setup(t)
	e.user(t, "quiet")

	f, err := e.svc.Compose(context.Background(), feedEntity.AuthorScope("quiet"), nil, "")
	require.NoError(t, err)
	assert.Empty(t, f.Page.Items)
	assert.Equal(t, "quiet", f.Author.Username)
}

func TestUnknownAnchors(t *testing.T) {
	e := setup(t)
	_, err := e.svc.Compose(context.Background(), feedEntity.AuthorScope("nobody"), nil, "")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	_, err = e.svc.Compose(context.Background(), feedEntity.GroupScope("nothing"), nil, "")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
