package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/triptrizz/triptrizz-server/internal/errs"
	"github.com/triptrizz/triptrizz-server/internal/models"
	"github.com/triptrizz/triptrizz-server/internal/repository"
	"github.com/triptrizz/triptrizz-server/pkg/logger"
	"gorm.io/gorm"
)

func newVerificationService(t *testing.T, db *gorm.DB) *VerificationService {
	t.Helper()
	return NewVerificationService(
		repository.NewVerificationRepository(db),
		repository.NewUserRepository(db),
		logger.NewLogger(),
	)
}

func TestVerificationWorkflow(t *testing.T) {
	db := newTestDB(t)
	svc := newVerificationService(t, db)
	ctx := context.Background()

	seedUser(t, db, "alice")
	admin := seedUser(t, db, "admin")
	require.NoError(t, db.Model(admin).Update("is_admin", true).Error)

	req, err := svc.Submit(ctx, "alice", "https://docs.example.com/passport.jpg")
	require.NoError(t, err)
	assert.Equal(t, models.VerificationPending, req.Status)

	// Only one pending request at a time.
	_, err = svc.Submit(ctx, "alice", "https://docs.example.com/other.jpg")
	assert.Equal(t, errs.KindConflict, errs.KindOf(err))

	pending, err := svc.ListPending(ctx, 0, 20)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	reviewed, err := svc.Review(ctx, "admin", req.ID, true, "looks good")
	require.NoError(t, err)
	assert.Equal(t, models.VerificationApproved, reviewed.Status)
	require.NotNil(t, reviewed.ReviewedBy)
	assert.Equal(t, "admin", *reviewed.ReviewedBy)

	assert.True(t, getUser(t, db, "alice").IsVerified)

	// A verified user cannot submit again.
	_, err = svc.Submit(ctx, "alice", "https://docs.example.com/again.jpg")
	assert.Equal(t, errs.KindConflict, errs.KindOf(err))

	// A resolved request cannot be re-reviewed.
	_, err = svc.Review(ctx, "admin", req.ID, false, "changed my mind")
	assert.Equal(t, errs.KindConflict, errs.KindOf(err))
}

func TestVerification_RejectionLeavesUserUnverified(t *testing.T) {
	db := newTestDB(t)
	svc := newVerificationService(t, db)
	ctx := context.Background()

	seedUser(t, db, "alice")

	req, err := svc.Submit(ctx, "alice", "https://docs.example.com/blurry.jpg")
	require.NoError(t, err)

	reviewed, err := svc.Review(ctx, "admin", req.ID, false, "unreadable document")
	require.NoError(t, err)
	assert.Equal(t, models.VerificationRejected, reviewed.Status)
	assert.False(t, getUser(t, db, "alice").IsVerified)

	// The user may try again after a rejection.
	_, err = svc.Submit(ctx, "alice", "https://docs.example.com/sharp.jpg")
	require.NoError(t, err)
}

func TestVerification_Validation(t *testing.T) {
	db := newTestDB(t)
	svc := newVerificationService(t, db)
	ctx := context.Background()

	seedUser(t, db, "alice")

	_, err := svc.Submit(ctx, "alice", "")
	assert.Equal(t, errs.KindInvalidArgument, errs.KindOf(err))

	_, err = svc.Submit(ctx, "ghost", "https://docs.example.com/doc.jpg")
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))

	_, err = svc.Review(ctx, "admin", "missing", true, "")
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}

func TestModeration(t *testing.T) {
	db := newTestDB(t)
	svc := NewModerationService(
		repository.NewUserRepository(db),
		repository.NewForumRepository(db),
		logger.NewLogger(),
	)
	ctx := context.Background()

	seedUser(t, db, "alice")
	admin := seedUser(t, db, "admin")
	require.NoError(t, db.Model(admin).Update("is_admin", true).Error)

	require.NoError(t, svc.SetUserActive(ctx, "admin", "alice", false))
	assert.False(t, getUser(t, db, "alice").IsActive)

	require.NoError(t, svc.SetUserActive(ctx, "admin", "alice", true))
	assert.True(t, getUser(t, db, "alice").IsActive)

	err := svc.SetUserActive(ctx, "admin", "admin", false)
	assert.Equal(t, errs.KindForbidden, errs.KindOf(err))

	err = svc.SetUserActive(ctx, "admin", "ghost", false)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))

	engSvc, _ := newEngagementService(t, db)
	post, err := engSvc.CreatePost(ctx, "alice", &CreatePostRequest{Title: "spam", Content: "buy now"})
	require.NoError(t, err)

	require.NoError(t, svc.RemovePost(ctx, "admin", post.ID))

	_, err = engSvc.GetPost(ctx, post.ID)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))

	err = svc.RemovePost(ctx, "admin", post.ID)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}
