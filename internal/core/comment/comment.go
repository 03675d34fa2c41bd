package comment

import (
	"time"

	"inkwell/internal/core/post"
	"inkwell/internal/core/user"

	"github.com/gofrs/uuid"
)

type Comment struct {
	ID       uuid.UUID `gorm:"primaryKey;type:char(36)"`
	PostID   uuid.UUID `gorm:"type:char(36);not null;index"`
	Post     post.Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	AuthorID uuid.UUID `gorm:"type:char(36);not null;index"`
	Author   user.User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Text     string    `gorm:"type:text;not null"`
	Created  time.Time `gorm:"<-:create;not null"`
}
