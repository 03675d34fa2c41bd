package database

import (
	"inkwell/internal/core/comment"
	"inkwell/internal/core/contact"
	"inkwell/internal/core/follow"
	"inkwell/internal/core/group"
	"inkwell/internal/core/post"
	"inkwell/internal/core/user"

	"gorm.io/gorm"
)

// Migrate creates or updates every table, including the unique indexes and
// the ON DELETE actions declared on the entities. Referenced tables come first.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&user.User{},
		&group.Group{},
		&post.Post{},
		&comment.Comment{},
		&follow.Follow{},
		&contact.Contact{},
	)
}
