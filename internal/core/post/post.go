package post

import (
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"

	"yatube/internal/core/group"
	"yatube/internal/core/user"
)

type Post struct {
	ID         uuid.UUID    `gorm:"primaryKey;type:char(36)"`
	AuthorID   uuid.UUID    `gorm:"type:char(36);not null;uniqueIndex:idx_posts_author_slug,priority:1"`
	Author     user.User    `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	GroupID    *uuid.UUID   `gorm:"type:char(36);index"`
	Group      *group.Group `gorm:"foreignKey:GroupID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	Title      string       `gorm:"size:200;not null"`
	Text       string       `gorm:"type:text;not null"`
	Image      string       `gorm:"size:255"`
	Slug       string       `gorm:"size:30;not null;uniqueIndex:idx_posts_author_slug,priority:2"`
	Moderation bool         `gorm:"not null;index"`
	CreatedAt  time.Time    `gorm:"autoCreateTime;index"`
	UpdatedAt  time.Time    `gorm:"autoUpdateTime"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		id, err := uuid.NewV4()
		if err != nil {
			return err
		}
		p.ID = id
	}
	return nil
}
