package userapp_test

import (
	"context"
	"testing"
	"time"

	"inkwell/internal/adapters/database"
	"inkwell/internal/core/apperror"
	userapp "inkwell/internal/core/user/service"
	"inkwell/internal/testutil"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func TestRegisterAndLogin(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := userapp.NewUserService(database.NewUserRepositoryDatabase(db), []byte(secret))
	ctx := context.Background()

	u, err := svc.RegisterUser(ctx, "Leo Tolstoy", "leo", "war-and-peace")
	require.NoError(t, err)
	assert.Equal(t, "leo", u.Username)

	res, err := svc.LoginUser(ctx, "leo", "war-and-peace")
	require.NoError(t, err)
	assert.Greater(t, res.ExpiresAt, time.Now().Unix())

	claims := &jwt.StandardClaims{}
	token, err := jwt.ParseWithClaims(res.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	assert.True(t, token.Valid)
	assert.Equal(t, u.ID, claims.Subject)

	_, err = svc.LoginUser(ctx, "leo", "wrong-password")
	assert.ErrorIs(t, err, userapp.ErrInvalidCredentials)
	_, err = svc.LoginUser(ctx, "ghost", "war-and-peace")
	assert.ErrorIs(t, err, userapp.ErrInvalidCredentials)
}

func TestRegisterUser_Validation(t *testing.T) {
	svc := userapp.NewUserService(database.NewUserRepositoryDatabase(testutil.NewTestDB(t)), []byte(secret))
	ctx := context.Background()

	_, err := svc.RegisterUser(ctx, "", "leo", "war-and-peace")
	require.NoError(t, err)

	tests := []struct {
		name, username, password, field string
	}{
		{name: "duplicate", username: "leo", password: "long-enough", field: "username"},
		{name: "bad username", username: "leo tolstoy", password: "long-enough", field: "username"},
		{name: "short password", username: "mia", password: "short", field: "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RegisterUser(ctx, "", tt.username, tt.password)
			var appErr *apperror.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, apperror.CodeValidation, appErr.Code)
			assert.Equal(t, tt.field, appErr.Field)
		})
	}
}

func TestDeleteUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := userapp.NewUserService(database.NewUserRepositoryDatabase(db), []byte(secret))
	ctx := context.Background()
	u := testutil.CreateUser(t, db, "leo")

	got, err := svc.GetByID(ctx, u.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "leo", got.Username)

	require.NoError(t, svc.DeleteUser(ctx, "leo"))
	assert.True(t, apperror.IsNotFound(svc.DeleteUser(ctx, "leo")))
}
