package database

import (
	"context"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"yatube/internal/core/follower"
)

// FollowerRepositoryDatabase implements FollowerRepository with gorm.
type FollowerRepositoryDatabase struct {
	db *gorm.DB
}

func NewFollowerRepositoryDatabase(db *gorm.DB) *FollowerRepositoryDatabase {
	return &FollowerRepositoryDatabase{db: db}
}

func targetColumn(t follower.Target) string {
	if t.Kind == follower.GroupKind {
		return "group_id"
	}
	return "author_id"
}

func (repo *FollowerRepositoryDatabase) Follow(ctx context.Context, f *follower.Follow) error {
	t, err := f.Target()
	if err != nil {
		return err
	}
	exists, err := repo.IsFollowing(ctx, f.UserID, t)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	// a concurrent insert of the same edge loses to the unique index
	err = repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Omit(clause.Associations).
		Create(f).Error
	if err != nil && !isDuplicate(err) {
		return err
	}
	return nil
}

func (repo *FollowerRepositoryDatabase) Unfollow(ctx context.Context, userID uuid.UUID, t follower.Target) (bool, error) {
	res := repo.db.WithContext(ctx).
		Where("user_id = ? AND "+targetColumn(t)+" = ?", userID, t.ID).
		Delete(&follower.Follow{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (repo *FollowerRepositoryDatabase) IsFollowing(ctx context.Context, userID uuid.UUID, t follower.Target) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&follower.Follow{}).
		Where("user_id = ? AND "+targetColumn(t)+" = ?", userID, t.ID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (repo *FollowerRepositoryDatabase) CountFollowers(ctx context.Context, t follower.Target) (int, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&follower.Follow{}).
		Where(targetColumn(t)+" = ?", t.ID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}
