package follower

import (
	"errors"
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"

	"yatube/internal/core/group"
	"yatube/internal/core/user"
)

// ErrInvalidTarget is returned for a follow edge without exactly one target.
var ErrInvalidTarget = errors.New("follow must target exactly one of author or group")

// Follow is an edge from a user to either an author or a group.
// The target keys carry no referential actions: MySQL rejects a CHECK on
// columns that an ON DELETE or ON UPDATE action writes to.
type Follow struct {
	ID        uuid.UUID    `gorm:"primaryKey;type:char(36)"`
	UserID    uuid.UUID    `gorm:"type:char(36);not null;uniqueIndex:idx_follows_author,priority:1;uniqueIndex:idx_follows_group,priority:1"`
	User      user.User    `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	AuthorID  *uuid.UUID   `gorm:"type:char(36);uniqueIndex:idx_follows_author,priority:2;check:chk_follows_target,(author_id IS NULL) <> (group_id IS NULL)"`
	Author    *user.User   `gorm:"foreignKey:AuthorID"`
	GroupID   *uuid.UUID   `gorm:"type:char(36);uniqueIndex:idx_follows_group,priority:2"`
	Group     *group.Group `gorm:"foreignKey:GroupID"`
	CreatedAt time.Time    `gorm:"autoCreateTime"`
}

type TargetKind int

const (
	AuthorKind TargetKind = iota + 1
	GroupKind
)

func (k TargetKind) String() string {
	switch k {
	case AuthorKind:
		return "author"
	case GroupKind:
		return "group"
	default:
		return "unknown"
	}
}

// Target is what a follow edge points at.
type Target struct {
	Kind TargetKind
	ID   uuid.UUID
}

func AuthorTarget(id uuid.UUID) Target { return Target{Kind: AuthorKind, ID: id} }

func GroupTarget(id uuid.UUID) Target { return Target{Kind: GroupKind, ID: id} }

// New builds an edge from userID to t.
func New(userID uuid.UUID, t Target) *Follow {
	f := &Follow{UserID: userID}
	id := t.ID
	switch t.Kind {
	case AuthorKind:
		f.AuthorID = &id
	case GroupKind:
		f.GroupID = &id
	}
	return f
}

// Validate checks that exactly one target is set.
func (f *Follow) Validate() error {
	if (f.AuthorID == nil) == (f.GroupID == nil) {
		return ErrInvalidTarget
	}
	return nil
}

// Target returns the edge's single target.
func (f *Follow) Target() (Target, error) {
	if err := f.Validate(); err != nil {
		return Target{}, err
	}
	if f.AuthorID != nil {
		return AuthorTarget(*f.AuthorID), nil
	}
	return GroupTarget(*f.GroupID), nil
}

func (f *Follow) BeforeCreate(tx *gorm.DB) error {
	if err := f.Validate(); err != nil {
		return err
	}
	if f.ID == uuid.Nil {
		id, err := uuid.NewV4()
		if err != nil {
			return err
		}
		f.ID = id
	}
	return nil
}
