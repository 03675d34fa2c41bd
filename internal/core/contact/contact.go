package contact

import (
	"time"

	"github.com/gofrs/uuid"
)

// Contact is a support request left through the contact form.
type Contact struct {
	ID         uuid.UUID `gorm:"primaryKey;type:char(36)"`
	Name       string    `gorm:"type:varchar(100);not null"`
	Email      string    `gorm:"type:varchar(254);not null"`
	Subject    string    `gorm:"type:varchar(100);not null"`
	Body       string    `gorm:"type:text;not null"`
	IsAnswered bool      `gorm:"not null;default:false;index"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}
