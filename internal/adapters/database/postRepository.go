package database

import (
	"context"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"yatube/internal/core/apperror"
	"yatube/internal/core/comment"
	"yatube/internal/core/follower"
	"yatube/internal/core/post"
	postPort "yatube/internal/ports/post"
)

// PostRepositoryDatabase implements PostRepository with gorm.
type PostRepositoryDatabase struct {
	db *gorm.DB
}

func NewPostRepositoryDatabase(db *gorm.DB) *PostRepositoryDatabase {
	return &PostRepositoryDatabase{db: db}
}

func (repo *PostRepositoryDatabase) Create(ctx context.Context, p *post.Post) (*post.Post, error) {
	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error; err != nil {
		return nil, translate(err)
	}
	return p, nil
}

func (repo *PostRepositoryDatabase) FindByAuthorAndSlug(ctx context.Context, authorID uuid.UUID, slug string) (*post.Post, error) {
	var p post.Post
	err := repo.db.WithContext(ctx).
		Preload("Author").
		Preload("Group").
		Where("author_id = ? AND slug = ?", authorID, slug).
		First(&p).Error
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (repo *PostRepositoryDatabase) UpdateContent(ctx context.Context, p *post.Post) error {
	err := repo.db.WithContext(ctx).Model(&post.Post{ID: p.ID}).Updates(map[string]any{
		"group_id": p.GroupID,
		"title":    p.Title,
		"text":     p.Text,
		"image":    p.Image,
	}).Error
	return translate(err)
}

func (repo *PostRepositoryDatabase) Delete(ctx context.Context, id uuid.UUID) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&comment.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&post.Post{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperror.ErrNotFound
		}
		return nil
	})
}

func (repo *PostRepositoryDatabase) CountFeed(ctx context.Context, f postPort.FeedFilter) (int, error) {
	var count int64
	if err := repo.feedQuery(ctx, f).Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

func (repo *PostRepositoryDatabase) ListFeed(ctx context.Context, f postPort.FeedFilter, offset, limit int) ([]*post.Post, error) {
	var posts []*post.Post
	err := repo.feedQuery(ctx, f).
		Preload("Author").
		Preload("Group").
		Order("posts.created_at DESC").
		Order("posts.id DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// feedQuery selects moderated posts matching f. The followed union is two
// IN subqueries joined by OR, so a post reachable through both its author and
// its group still appears once.
func (repo *PostRepositoryDatabase) feedQuery(ctx context.Context, f postPort.FeedFilter) *gorm.DB {
	q := repo.db.WithContext(ctx).Model(&post.Post{}).Where("posts.moderation = ?", true)
	if f.GroupID != nil {
		q = q.Where("posts.group_id = ?", *f.GroupID)
	}
	if f.AuthorID != nil {
		q = q.Where("posts.author_id = ?", *f.AuthorID)
	}
	if f.FollowerID != nil {
		authors := repo.db.Model(&follower.Follow{}).
			Select("author_id").
			Where("user_id = ? AND author_id IS NOT NULL", *f.FollowerID)
		groups := repo.db.Model(&follower.Follow{}).
			Select("group_id").
			Where("user_id = ? AND group_id IS NOT NULL", *f.FollowerID)
		q = q.Where(repo.db.Where("posts.author_id IN (?)", authors).Or("posts.group_id IN (?)", groups))
	}
	return q
}
