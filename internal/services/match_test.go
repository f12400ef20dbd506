package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/triptrizz/triptrizz-server/internal/errs"
	"github.com/triptrizz/triptrizz-server/internal/models"
	"github.com/triptrizz/triptrizz-server/pkg/queue"
)

func TestCanonicalPair(t *testing.T) {
	a, b := models.CanonicalPair("bob", "alice")
	assert.Equal(t, "alice", a)
	assert.Equal(t, "bob", b)

	a, b = models.CanonicalPair("alice", "bob")
	assert.Equal(t, "alice", a)
	assert.Equal(t, "bob", b)
}

func TestSwipe_FirstSwipeIsPending(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newMatchService(t, db)
	ctx := context.Background()

	seedUser(t, db, "alice")
	seedUser(t, db, "bob")

	result, err := svc.Swipe(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, models.MatchPending, result.Status)
	assert.False(t, result.IsNewMatch)
	assert.Empty(t, result.ConversationID)

	// Re-swiping by the initiator never completes the match.
	result, err = svc.Swipe(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, models.MatchPending, result.Status)
	assert.False(t, result.IsNewMatch)
}

func TestSwipe_MutualSwipeMatches(t *testing.T) {
	db := newTestDB(t)
	svc, pub := newMatchService(t, db)
	ctx := context.Background()

	seedUser(t, db, "alice")
	seedUser(t, db, "bob")

	_, err := svc.Swipe(ctx, "bob", "alice")
	require.NoError(t, err)

	result, err := svc.Swipe(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, models.MatchAccepted, result.Status)
	assert.True(t, result.IsNewMatch)
	require.NotEmpty(t, result.ConversationID)

	var conv models.Conversation
	require.NoError(t, db.First(&conv, "id = ?", result.ConversationID).Error)
	assert.Equal(t, "alice", conv.UserA)
	assert.Equal(t, "bob", conv.UserB)

	require.Len(t, pub.events, 1)
	assert.Equal(t, queue.EventMatchCreated, pub.events[0].Type)

	// A later swipe by either side echoes the accepted state with the same
	// conversation and without re-announcing the match.
	for _, actor := range []string{"alice", "bob"} {
		result, err = svc.Swipe(ctx, actor, otherOf(actor))
		require.NoError(t, err)
		assert.Equal(t, models.MatchAccepted, result.Status)
		assert.False(t, result.IsNewMatch)
		assert.Equal(t, conv.ID, result.ConversationID)
	}
	assert.Len(t, pub.events, 1)

	matches, err := svc.ListMatches(ctx, "alice", 0, 20)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, models.MatchAccepted, matches[0].Status)
}

func otherOf(actor string) string {
	if actor == "alice" {
		return "bob"
	}
	return "alice"
}

func TestSwipe_Self(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newMatchService(t, db)

	seedUser(t, db, "alice")

	_, err := svc.Swipe(context.Background(), "alice", "alice")
	assert.Equal(t, errs.KindInvalidArgument, errs.KindOf(err))
}

func TestSwipe_TargetMissing(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newMatchService(t, db)

	seedUser(t, db, "alice")

	_, err := svc.Swipe(context.Background(), "alice", "ghost")
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}

func TestSwipe_BlockedFailsClosed(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newMatchService(t, db)
	ctx := context.Background()

	seedUser(t, db, "alice")
	seedUser(t, db, "bob")

	relSvc, _ := newRelationshipService(t, db)
	require.NoError(t, relSvc.BlockUser(ctx, "bob", "alice", models.BlockContextAll))

	_, err := svc.Swipe(ctx, "alice", "bob")
	assert.Equal(t, errs.KindForbidden, errs.KindOf(err))

	_, err = svc.Swipe(ctx, "bob", "alice")
	assert.Equal(t, errs.KindForbidden, errs.KindOf(err))
}

func TestRejectMatch(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newMatchService(t, db)
	ctx := context.Background()

	seedUser(t, db, "alice")
	seedUser(t, db, "bob")

	_, err := svc.Swipe(ctx, "bob", "alice")
	require.NoError(t, err)

	require.NoError(t, svc.RejectMatch(ctx, "alice", "bob"))

	// A swipe after rejection echoes the rejected state; no match, no channel.
	result, err := svc.Swipe(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, models.MatchRejected, result.Status)
	assert.False(t, result.IsNewMatch)
	assert.Empty(t, result.ConversationID)

	var count int64
	require.NoError(t, db.Model(&models.Conversation{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	matches, err := svc.ListMatches(ctx, "alice", 0, 20)
	require.NoError(t, err)
	assert.Len(t, matches, 0)
}

func TestRejectMatch_AbsentPairSucceeds(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newMatchService(t, db)

	seedUser(t, db, "alice")
	seedUser(t, db, "bob")

	// No row for the pair counts as already rejected.
	require.NoError(t, svc.RejectMatch(context.Background(), "alice", "bob"))
}
