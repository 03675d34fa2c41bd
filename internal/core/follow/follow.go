package follow

import (
	"time"

	"inkwell/internal/core/user"

	"github.com/gofrs/uuid"
)

// Follow is the edge "User follows Author". The pair is unique in storage.
type Follow struct {
	ID        uuid.UUID `gorm:"primaryKey;type:char(36)"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:unique_following,priority:2"`
	User      user.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	AuthorID  uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:unique_following,priority:1"`
	Author    user.User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
