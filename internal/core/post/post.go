package post

import (
	"time"

	"inkwell/internal/core/group"
	"inkwell/internal/core/user"

	"github.com/gofrs/uuid"
)

const labelLength = 15

type Post struct {
	ID       uuid.UUID    `gorm:"primaryKey;type:char(36)"`
	Text     string       `gorm:"type:text;not null"`
	Created  time.Time    `gorm:"<-:create;not null;index"`
	AuthorID uuid.UUID    `gorm:"type:char(36);not null;index"`
	Author   user.User    `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	GroupID  *uuid.UUID   `gorm:"type:char(36);index"`
	Group    *group.Group `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL"`
	Image    string       `gorm:"type:varchar(255);not null;default:''"`
}

// Label is the short form of the post used in listings and logs.
func (p Post) Label() string {
	r := []rune(p.Text)
	if len(r) <= labelLength {
		return p.Text
	}
	return string(r[:labelLength])
}

func (p Post) String() string {
	return p.Label()
}
