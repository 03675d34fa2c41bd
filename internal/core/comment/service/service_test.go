package commentapp_test

import (
	"context"
	"testing"
	"time"

	"inkwell/internal/adapters/database"
	"inkwell/internal/core/apperror"
	commentapp "inkwell/internal/core/comment/service"
	"inkwell/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddComment(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	svc := commentapp.NewCommentService(
		database.NewCommentRepositoryDatabase(db),
		database.NewPostRepositoryDatabase(db),
	)
	svc.Now = testutil.NewClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)).Now

	author := testutil.CreateUser(t, db, "leo")
	reader := testutil.CreateUser(t, db, "mia")
	p := testutil.CreatePost(t, db, author, nil, "a post", time.Now())

	first, err := svc.AddComment(ctx, reader.ID.String(), p.ID.String(), "  first!\n")
	require.NoError(t, err)
	assert.Equal(t, "first!", first.Text)
	assert.Equal(t, p.ID.String(), first.PostID)

	_, err = svc.AddComment(ctx, author.ID.String(), p.ID.String(), "thanks")
	require.NoError(t, err)

	comments, err := svc.ListByPost(ctx, p.ID.String())
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first!", comments[0].Text)
	assert.Equal(t, "mia", comments[0].Author.Username)
	assert.Equal(t, "thanks", comments[1].Text)
}

func TestAddComment_Errors(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	svc := commentapp.NewCommentService(
		database.NewCommentRepositoryDatabase(db),
		database.NewPostRepositoryDatabase(db),
	)
	author := testutil.CreateUser(t, db, "leo")
	p := testutil.CreatePost(t, db, author, nil, "a post", time.Now())

	_, err := svc.AddComment(ctx, "", p.ID.String(), "guest")
	assert.True(t, apperror.IsForbidden(err))

	_, err = svc.AddComment(ctx, author.ID.String(), p.ID.String(), "   ")
	assert.True(t, apperror.IsValidation(err))

	_, err = svc.AddComment(ctx, author.ID.String(), "00000000-0000-0000-0000-000000000000", "lost")
	assert.True(t, apperror.IsNotFound(err))

	comments, err := svc.ListByPost(ctx, p.ID.String())
	require.NoError(t, err)
	assert.Empty(t, comments)
}
