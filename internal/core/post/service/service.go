package postapp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"

	"yatube/internal/config"
	"yatube/internal/core/apperror"
	"yatube/internal/core/policy"
	postEntity "yatube/internal/core/post"
	"yatube/internal/core/sanitize"
	userEntity "yatube/internal/core/user"
	"yatube/internal/core/validation"
	groupPort "yatube/internal/ports/group"
	mediaPort "yatube/internal/ports/media"
	postPort "yatube/internal/ports/post"
	userPort "yatube/internal/ports/user"
)

// MaxImageSize bounds uploaded post images.
const MaxImageSize = 5 << 20

// reservedSlugs collide with the per-user routes.
var reservedSlugs = map[string]bool{
	"follow": true, "unfollow": true, "follows": true, "group": true,
}

type PostService struct {
	PostRepository  postPort.PostRepository
	UserRepository  userPort.UserRepository
	GroupRepository groupPort.GroupRepository
	Media           mediaPort.Store
	// Now stamps creation times.
	Now func() time.Time
}

func NewPostService(
	postRepo postPort.PostRepository,
	userRepo userPort.UserRepository,
	groupRepo groupPort.GroupRepository,
	media mediaPort.Store,
) *PostService {
	return &PostService{
		PostRepository:  postRepo,
		UserRepository:  userRepo,
		GroupRepository: groupRepo,
		Media:           media,
		Now:             time.Now,
	}
}

// Get loads the post addressed by its author's username and its slug.
func (s *PostService) Get(ctx context.Context, username, slug string) (*postEntity.Post, error) {
	author, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	p, err := s.PostRepository.FindByAuthorAndSlug(ctx, author.ID, slug)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Create stores a post owned by actor. Ownership never comes from input.
func (s *PostService) Create(ctx context.Context, actor *userEntity.User, in postPort.PostInput) (*postEntity.Post, error) {
	if actor == nil {
		return nil, apperror.ErrForbidden
	}
	in.Title = sanitize.Plain(strings.TrimSpace(in.Title))
	in.Text = strings.TrimSpace(in.Text)
	in.Slug = strings.TrimSpace(in.Slug)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if reservedSlugs[strings.ToLower(in.Slug)] {
		return nil, apperror.NewValidationError("slug", "This slug is reserved.")
	}

	groupID, err := s.resolveGroup(ctx, in.Group)
	if err != nil {
		return nil, err
	}
	image, err := s.storeImage(ctx, in.Image)
	if err != nil {
		return nil, err
	}

	p, err := s.PostRepository.Create(ctx, &postEntity.Post{
		AuthorID:   actor.ID,
		GroupID:    groupID,
		Title:      in.Title,
		Text:       in.Text,
		Image:      image,
		Slug:       in.Slug,
		Moderation: true,
		CreatedAt:  s.Now(),
	})
	if err != nil {
		s.dropImage(ctx, image)
		if errors.Is(err, apperror.ErrConflict) {
			return nil, apperror.NewValidationError("slug", "You already have a post with this slug.")
		}
		return nil, fmt.Errorf("create post: %w", err)
	}
	p.Author = *actor

	config.Logger.Info("📝 Post created", zap.String("author", actor.Username), zap.String("slug", p.Slug))
	return p, nil
}

// Edit applies group, title, text and image to the actor's own post.
// Slug, author and creation time never change.
func (s *PostService) Edit(ctx context.Context, actor *userEntity.User, username, slug string, in postPort.PostEditInput) (*postEntity.Post, error) {
	p, err := s.Get(ctx, username, slug)
	if err != nil {
		return nil, err
	}
	if !policy.CanEdit(actor, p) {
		return p, apperror.ErrForbidden
	}

	in.Title = sanitize.Plain(strings.TrimSpace(in.Title))
	in.Text = strings.TrimSpace(in.Text)
	if err := validation.Struct(in); err != nil {
		return p, err
	}
	groupID, err := s.resolveGroup(ctx, in.Group)
	if err != nil {
		return p, err
	}
	image, err := s.storeImage(ctx, in.Image)
	if err != nil {
		return p, err
	}

	previousImage := p.Image
	p.GroupID = groupID
	p.Title = in.Title
	p.Text = in.Text
	if image != "" {
		p.Image = image
	}
	if err := s.PostRepository.UpdateContent(ctx, p); err != nil {
		s.dropImage(ctx, image)
		return p, fmt.Errorf("update post: %w", err)
	}
	if image != "" && previousImage != "" {
		s.dropImage(ctx, previousImage)
	}
	return p, nil
}

// Delete removes the actor's own post. Any other actor gets ErrForbidden
// and nothing changes.
func (s *PostService) Delete(ctx context.Context, actor *userEntity.User, username, slug string) error {
	if actor == nil {
		return apperror.ErrForbidden
	}
	p, err := s.Get(ctx, username, slug)
	if err != nil {
		return err
	}
	if !policy.CanDeletePost(actor, p) {
		config.Logger.Warn("⚠️ Ignored delete of foreign post",
			zap.String("actor", actor.Username), zap.String("post", p.ID.String()))
		return apperror.ErrForbidden
	}
	if err := s.PostRepository.Delete(ctx, p.ID); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	s.dropImage(ctx, p.Image)
	return nil
}

func (s *PostService) resolveGroup(ctx context.Context, slug string) (*uuid.UUID, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, nil
	}
	g, err := s.GroupRepository.FindBySlug(ctx, slug)
	if apperror.IsNotFound(err) {
		return nil, apperror.NewValidationError("group", "Select a valid choice.")
	}
	if err != nil {
		return nil, fmt.Errorf("find group: %w", err)
	}
	return &g.ID, nil
}

// storeImage checks that f really is an image and saves it. It returns the
// stored object name, or "" when nothing was uploaded.
func (s *PostService) storeImage(ctx context.Context, f *mediaPort.File) (string, error) {
	if f == nil || len(f.Data) == 0 {
		return "", nil
	}
	if len(f.Data) > MaxImageSize {
		return "", apperror.NewValidationError("image", "The image is larger than 5 MB.")
	}
	mt := mimetype.Detect(f.Data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", apperror.NewValidationError("image",
			"Upload a valid image. The file you uploaded was either not an image or a corrupted image.")
	}
	if s.Media == nil {
		return "", errors.New("no media store configured")
	}

	name := "posts/" + uuid.Must(uuid.NewV4()).String() + mt.Extension()
	if err := s.Media.Save(ctx, name, f.Data, mt.String()); err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}
	return name, nil
}

func (s *PostService) dropImage(ctx context.Context, name string) {
	if name == "" || s.Media == nil {
		return
	}
	if err := s.Media.Delete(ctx, name); err != nil {
		config.Logger.Warn("⚠️ Could not delete image", zap.String("name", name), zap.Error(err))
	}
}
