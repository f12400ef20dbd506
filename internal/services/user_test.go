package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/triptrizz/triptrizz-server/internal/errs"
	"github.com/triptrizz/triptrizz-server/internal/repository"
	"github.com/triptrizz/triptrizz-server/pkg/logger"
	"gorm.io/gorm"
)

func newUserService(t *testing.T, db *gorm.DB) *UserService {
	t.Helper()
	return NewUserService(repository.NewUserRepository(db), &stubPublisher{}, logger.NewLogger())
}

func registerRequest(username string) *RegisterRequest {
	return &RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "s3cret-pass",
		HomeCity: "Berlin",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(t, db)
	ctx := context.Background()

	user, err := svc.Register(ctx, registerRequest("wanderer"))
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	assert.NotEqual(t, "s3cret-pass", user.Password)
	assert.True(t, user.IsActive)

	got, err := svc.Login(ctx, &LoginRequest{Username: "wanderer", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = svc.Login(ctx, &LoginRequest{Username: "wanderer", Password: "wrong"})
	assert.Equal(t, errs.KindUnauthorized, errs.KindOf(err))

	_, err = svc.Login(ctx, &LoginRequest{Username: "nobody", Password: "s3cret-pass"})
	assert.Equal(t, errs.KindUnauthorized, errs.KindOf(err))
}

func TestRegister_Duplicates(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(t, db)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest("wanderer"))
	require.NoError(t, err)

	_, err = svc.Register(ctx, registerRequest("wanderer"))
	assert.Equal(t, errs.KindConflict, errs.KindOf(err))

	dup := registerRequest("othername")
	dup.Email = "wanderer@example.com"
	_, err = svc.Register(ctx, dup)
	assert.Equal(t, errs.KindConflict, errs.KindOf(err))
}

func TestLogin_DeactivatedAccount(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(t, db)
	ctx := context.Background()

	user, err := svc.Register(ctx, registerRequest("wanderer"))
	require.NoError(t, err)
	require.NoError(t, repository.NewUserRepository(db).SetActive(ctx, user.ID, false))

	_, err = svc.Login(ctx, &LoginRequest{Username: "wanderer", Password: "s3cret-pass"})
	assert.Equal(t, errs.KindForbidden, errs.KindOf(err))
}

func TestUpdateProfile(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(t, db)
	ctx := context.Background()

	user, err := svc.Register(ctx, registerRequest("wanderer"))
	require.NoError(t, err)

	bio := "slow travel, fast trains"
	updated, err := svc.Update(ctx, user.ID, &UpdateUserRequest{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, bio, updated.Bio)
	// Untouched fields keep their values.
	assert.Equal(t, "Berlin", updated.HomeCity)
}

func TestDiscover_ExcludesMatchedAndBlocked(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(t, db)
	ctx := context.Background()

	seedUser(t, db, "alice")
	seedUser(t, db, "bob")
	seedUser(t, db, "carol")
	seedUser(t, db, "dave")

	matchUp(t, db, "alice", "bob")

	relSvc, _ := newRelationshipService(t, db)
	require.NoError(t, relSvc.BlockUser(ctx, "carol", "alice", ""))

	candidates, err := svc.Discover(ctx, "alice", 0, 20)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "dave", candidates[0].ID)
}
