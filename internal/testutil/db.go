// Package testutil builds throwaway databases and fixtures for tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"inkwell/internal/adapters/database"
	"inkwell/internal/config"
	"inkwell/internal/core/group"
	"inkwell/internal/core/post"
	"inkwell/internal/core/user"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewTestDB opens a private in-memory sqlite database with foreign keys on
// and the full schema migrated.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.Must(uuid.NewV4()).String() + "?mode=memory&cache=shared"
	db, err := config.InitDB(&config.Config{DBDriver: "sqlite", DBDSN: dsn})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func CreateUser(t *testing.T, db *gorm.DB, username string) *user.User {
	t.Helper()
	u, err := database.NewUserRepositoryDatabase(db).Create(context.Background(), &user.User{
		Username: username,
		Password: "not-a-real-hash",
	})
	require.NoError(t, err)
	return u
}

func CreateGroup(t *testing.T, db *gorm.DB, slug string) *group.Group {
	t.Helper()
	g, err := database.NewGroupRepositoryDatabase(db).Create(context.Background(), &group.Group{
		Title:       "Group " + slug,
		Slug:        slug,
		Description: "about " + slug,
	})
	require.NoError(t, err)
	return g
}

// CreatePost inserts a post created at the given time; g may be nil.
func CreatePost(t *testing.T, db *gorm.DB, author *user.User, g *group.Group, text string, created time.Time) *post.Post {
	t.Helper()
	p := &post.Post{
		Text:     text,
		AuthorID: author.ID,
		Created:  created,
	}
	if g != nil {
		p.GroupID = &g.ID
	}
	p, err := database.NewPostRepositoryDatabase(db).Create(context.Background(), p)
	require.NoError(t, err)
	return p
}
