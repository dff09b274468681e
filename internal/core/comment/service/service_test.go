package commentapp

import (
	"context"
	"strings"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yatube/internal/adapters/database"
	"yatube/internal/adapters/database/dbtest"
	"yatube/internal/core/apperror"
	postEntity "yatube/internal/core/post"
	userEntity "yatube/internal/core/user"
	commentPort "yatube/internal/ports/comment"
)

type env struct {
	svc   *CommentService
	alice *userEntity.User
	bob   *userEntity.User
	post  *postEntity.Post
}

func setup(t *testing.T) *env {
	db := dbtest.Open(t)
	ctx := context.Background()
	users := database.NewUserRepositoryDatabase(db)
	posts := database.NewPostRepositoryDatabase(db)

	alice, err := users.Create(ctx, &userEntity.User{Username: "alice", Password: "x"})
	require.NoError(t, err)
	bob, err := users.Create(ctx, &userEntity.User{Username: "bob", Password: "x"})
	require.NoError(t, err)
	p, err := posts.Create(ctx, &postEntity.Post{AuthorID: alice.ID, Title: "t", Text: "t", Slug: "hello", Moderation: true})
	require.NoError(t, err)

	return &env{
		svc:   NewCommentService(database.NewCommentRepositoryDatabase(db), posts, users),
		alice: alice,
		bob:   bob,
		post:  p,
	}
}

func TestAddComment(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	c, err := e.svc.Add(ctx, e.bob, "alice", "hello", commentPort.CommentInput{Text: "  nice <script>x</script>post "})
	require.NoError(t, err)
	assert.Equal(t, e.bob.ID, c.AuthorID)
	assert.Equal(t, e.post.ID, c.PostID)
	assert.NotContains(t, c.Text, "<script>")

	list, err := e.svc.ListForPost(ctx, e.post.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "bob", list[0].Author.Username)
}

func TestAddCommentRejections(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	_, err := e.svc.Add(ctx, nil, "alice", "hello", commentPort.CommentInput{Text: "hi"})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	_, err = e.svc.Add(ctx, nil, "alice", "missing", commentPort.CommentInput{Text: "hi"})
	assert.ErrorIs(t, err, apperror.ErrNotFound, "unknown posts are reported before auth")

	_, err = e.svc.Add(ctx, e.bob, "alice", "hello", commentPort.CommentInput{Text: "   "})
	v, ok := apperror.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "This field is required.", v.Fields["text"])

	_, err = e.svc.Add(ctx, e.bob, "alice", "hello", commentPort.CommentInput{Text: strings.Repeat("a", 1001)})
	v, ok = apperror.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, v.Fields, "text")
}

func TestDeleteComment(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	c, err := e.svc.Add(ctx, e.bob, "alice", "hello", commentPort.CommentInput{Text: "hi"})
	require.NoError(t, err)

	loaded, err := e.svc.Delete(ctx, e.alice, c.ID.String())
	assert.ErrorIs(t, err, apperror.ErrForbidden)
	require.NotNil(t, loaded)
	assert.Equal(t, "alice", loaded.Post.Author.Username)

	_, err = e.svc.Delete(ctx, nil, c.ID.String())
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	_, err = e.svc.Delete(ctx, e.bob, c.ID.String())
	require.NoError(t, err)

	_, err = e.svc.Delete(ctx, e.bob, c.ID.String())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	_, err = e.svc.Delete(ctx, e.bob, "not-a-uuid")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	_, err = e.svc.Delete(ctx, e.bob, uuid.Must(uuid.NewV4()).String())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
