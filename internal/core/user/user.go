package user

import (
	"time"

	"github.com/gofrs/uuid"
)

// User is the identity that owns posts, comments and follow edges.
type User struct {
	ID        uuid.UUID `gorm:"primaryKey;type:char(36)"`
	Name      string    `gorm:"type:varchar(150);not null;default:''"`
	Username  string    `gorm:"type:varchar(150);uniqueIndex;not null"`
	Password  string    `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
