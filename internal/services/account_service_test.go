package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopwave/ecommerce-backend/internal/models"
	"github.com/shopwave/ecommerce-backend/internal/utils"
)

func newAuthFixture() (*memStore, *AuthService, *utils.TokenManager) {
	store := newMemStore()
	tokens := utils.NewTokenManager("test-secret", time.Hour, "test")
	return store, NewAuthService(memUsers{Store: store}, tokens), tokens
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	_, svc, tokens := newAuthFixture()
	ctx := context.Background()

	user, err := svc.Register(ctx, &RegisterRequest{UserName: " Alice ", Email: "Alice@Example.com ", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.UserName)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, models.UserRoleUser, user.Role)

	_, err = svc.Register(ctx, &RegisterRequest{UserName: "Other", Email: "alice@example.com", Password: "secret123"})
	assert.True(t, utils.IsKind(err, utils.KindConflict))

	res, err := svc.Login(ctx, &LoginRequest{Email: "ALICE@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, res.User.ID)

	claims, err := tokens.Validate(res.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, "Alice", claims.UserName)
}

func TestAuthService_LoginFailuresAreUnauthorized(t *testing.T) {
	store, svc, _ := newAuthFixture()
	ctx := context.Background()
	store.AddUser("Bob", models.UserRoleUser)

	_, err := svc.Login(ctx, &LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	assert.True(t, utils.IsKind(err, utils.KindUnauthorized))

	_, err = svc.Login(ctx, &LoginRequest{Email: "bob@example.com", Password: "wrong-pass"})
	assert.True(t, utils.IsKind(err, utils.KindUnauthorized))

	_, err = svc.Login(ctx, &LoginRequest{Email: "not-an-email", Password: "x"})
	assert.True(t, utils.IsKind(err, utils.KindValidation))
}

func TestAuthService_RegisterValidation(t *testing.T) {
	_, svc, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), &RegisterRequest{UserName: "A", Email: "a@example.com", Password: "123"})
	require.Error(t, err)

	var appErr *utils.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, utils.KindValidation, appErr.Kind)
	details, ok := appErr.Details.([]utils.ValidationError)
	require.True(t, ok)
	assert.Len(t, details, 2)
}

func TestAuthService_CheckAuth(t *testing.T) {
	store, svc, tokens := newAuthFixture()
	ctx := context.Background()
	bob := store.AddUser("Bob", models.UserRoleAdmin)

	token, err := tokens.Generate(bob.ID.String(), string(bob.Role), bob.Email, bob.UserName)
	require.NoError(t, err)

	user, err := svc.CheckAuth(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleAdmin, user.Role)

	_, err = svc.CheckAuth(ctx, "garbage")
	assert.True(t, utils.IsKind(err, utils.KindUnauthorized))

	require.NoError(t, memUsers{Store: store}.Delete(ctx, bob.ID))
	_, err = svc.CheckAuth(ctx, token)
	assert.True(t, utils.IsKind(err, utils.KindUnauthorized))
}

func TestUserService_ProfileLifecycle(t *testing.T) {
	store := newMemStore()
	files := &stubFileStore{url: "http://cdn.test/profiles/a.png"}
	svc := NewUserService(memUsers{Store: store}, files, UploadOptions{Folder: "profiles", MaxSize: 1024})
	ctx := context.Background()
	alice := store.AddUser("Alice", models.UserRoleUser)

	name := "  Alice B "
	updated, err := svc.UpdateProfile(ctx, alice.ID, &UpdateProfileRequest{UserName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Alice B", updated.UserName)
	assert.Equal(t, alice.Email, updated.Email)

	bad := "not a url"
	_, err = svc.UpdateProfile(ctx, alice.ID, &UpdateProfileRequest{ProfileImage: &bad})
	assert.True(t, utils.IsKind(err, utils.KindValidation))

	uploaded, err := svc.UploadProfileImage(ctx, alice.ID, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, files.url, uploaded.ProfileImage)
	assert.Equal(t, "profiles", files.options[0].Folder)

	_, err = svc.GetProfile(ctx, uuid.New())
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
}

func TestUserService_ChangePasswordAndDelete(t *testing.T) {
	store := newMemStore()
	svc := NewUserService(memUsers{Store: store}, &stubFileStore{}, UploadOptions{})
	ctx := context.Background()
	alice := store.AddUser("Alice", models.UserRoleUser)

	err := svc.ChangePassword(ctx, alice.ID, &ChangePasswordRequest{OldPassword: "wrong", NewPassword: "newsecret"})
	assert.True(t, utils.IsKind(err, utils.KindValidation))

	require.NoError(t, svc.ChangePassword(ctx, alice.ID, &ChangePasswordRequest{OldPassword: "secret123", NewPassword: "newsecret"}))
	stored, err := memUsers{Store: store}.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.NoError(t, stored.CheckPassword("newsecret"))

	require.NoError(t, svc.DeleteAccount(ctx, alice.ID))
	err = svc.DeleteAccount(ctx, alice.ID)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
}
