package group

import (
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"

	"yatube/internal/core/user"
)

type Group struct {
	ID          uuid.UUID `gorm:"primaryKey;type:char(36)"`
	Title       string    `gorm:"size:70;not null"`
	Slug        string    `gorm:"size:30;uniqueIndex;not null"`
	Description string    `gorm:"size:500"`
	Moderation  bool      `gorm:"not null;index"`
	CreatorID   uuid.UUID `gorm:"type:char(36);not null;index"`
	Creator     user.User `gorm:"foreignKey:CreatorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (g *Group) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		id, err := uuid.NewV4()
		if err != nil {
			return err
		}
		g.ID = id
	}
	return nil
}
