package groupapp_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"inkwell/internal/adapters/database"
	"inkwell/internal/core/apperror"
	groupapp "inkwell/internal/core/group/service"
	"inkwell/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateGroup(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := groupapp.NewGroupService(database.NewGroupRepositoryDatabase(db))
	ctx := context.Background()

	g, err := svc.CreateGroup(ctx, "Cats", "cats", "All about cats")
	require.NoError(t, err)
	assert.Equal(t, "cats", g.Slug)

	_, err = svc.CreateGroup(ctx, "Other cats", "cats", "dup")
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
	assert.Equal(t, "slug", appErr.Field)

	found, err := svc.GetBySlug(ctx, "cats")
	require.NoError(t, err)
	assert.Equal(t, "Cats", found.Title)
}

func TestCreateGroup_Validation(t *testing.T) {
	svc := groupapp.NewGroupService(database.NewGroupRepositoryDatabase(testutil.NewTestDB(t)))

	tests := []struct {
		name, title, slug, description, field string
	}{
		{name: "no title", slug: "a", description: "d", field: "title"},
		{name: "long title", title: strings.Repeat("t", 201), slug: "a", description: "d", field: "title"},
		{name: "bad slug", title: "t", slug: "not a slug", description: "d", field: "slug"},
		{name: "no description", title: "t", slug: "a", field: "description"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateGroup(context.Background(), tt.title, tt.slug, tt.description)
			var appErr *apperror.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.field, appErr.Field)
		})
	}
}

func TestDeleteGroup_KeepsPosts(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := groupapp.NewGroupService(database.NewGroupRepositoryDatabase(db))
	ctx := context.Background()
	author := testutil.CreateUser(t, db, "leo")
	g := testutil.CreateGroup(t, db, "cats")
	p := testutil.CreatePost(t, db, author, g, "meow", time.Now())

	require.NoError(t, svc.DeleteGroup(ctx, "cats"))

	loaded, err := database.NewPostRepositoryDatabase(db).FindByID(ctx, p.ID.String())
	require.NoError(t, err)
	assert.Nil(t, loaded.GroupID)

	groups, err := svc.ListGroups(ctx)
	require.NoError(t, err)
	assert.Empty(t, groups)

	assert.True(t, apperror.IsNotFound(svc.DeleteGroup(ctx, "cats")))
}
