package group

import "github.com/gofrs/uuid"

// Group is a community posts can be filed under. Posts only reference it, so
// removing a group leaves its posts ungrouped.
type Group struct {
	ID          uuid.UUID `gorm:"primaryKey;type:char(36)"`
	Title       string    `gorm:"type:varchar(200);not null"`
	Slug        string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	Description string    `gorm:"type:text;not null"`
}

func (g Group) String() string {
	return g.Title
}
