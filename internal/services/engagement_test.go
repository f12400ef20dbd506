package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/triptrizz/triptrizz-server/internal/errs"
	"github.com/triptrizz/triptrizz-server/internal/models"
	"github.com/triptrizz/triptrizz-server/internal/repository"
	"gorm.io/gorm"
)

func seedItinerary(t *testing.T, db *gorm.DB, id string) *models.Itinerary {
	t.Helper()
	it := &models.Itinerary{
		ID:     id,
		TripID: "trip-1",
		Day:    1,
		Title:  "Old town walk",
	}
	require.NoError(t, db.Create(it).Error)
	return it
}

func getItinerary(t *testing.T, db *gorm.DB, id string) *models.Itinerary {
	t.Helper()
	var it models.Itinerary
	require.NoError(t, db.First(&it, "id = ?", id).Error)
	return &it
}

func TestToggleLike_Symmetry(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newEngagementService(t, db)
	ctx := context.Background()

	seedUser(t, db, "alice")
	seedItinerary(t, db, "it-1")

	result, err := svc.ToggleLike(ctx, "alice", models.EntityItinerary, "it-1")
	require.NoError(t, err)
	assert.True(t, result.Liked)
	assert.Equal(t, int64(1), result.NewCount)
	assert.Equal(t, int64(1), getItinerary(t, db, "it-1").LikeCount)

	result, err = svc.ToggleLike(ctx, "alice", models.EntityItinerary, "it-1")
	require.NoError(t, err)
	assert.False(t, result.Liked)
	assert.Equal(t, int64(0), result.NewCount)
	assert.Equal(t, int64(0), getItinerary(t, db, "it-1").LikeCount)

	var likes int64
	require.NoError(t, db.Model(&models.Like{}).Where("entity_id = ?", "it-1").Count(&likes).Error)
	assert.Equal(t, int64(0), likes)
}

func TestToggleLike_CounterMatchesRows(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newEngagementService(t, db)
	ctx := context.Background()

	seedItinerary(t, db, "it-1")

	for i := 0; i < 5; i++ {
		uid := fmt.Sprintf("user-%d", i)
		seedUser(t, db, uid)
		result, err := svc.ToggleLike(ctx, uid, models.EntityItinerary, "it-1")
		require.NoError(t, err)
		assert.Equal(t, int64(i+1), result.NewCount)
	}

	var likes int64
	require.NoError(t, db.Model(&models.Like{}).Where("entity_id = ?", "it-1").Count(&likes).Error)
	assert.Equal(t, likes, getItinerary(t, db, "it-1").LikeCount)
}

func TestToggleLike_UnknownKind(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newEngagementService(t, db)

	_, err := svc.ToggleLike(context.Background(), "alice", "trip", "t-1")
	assert.Equal(t, errs.KindInvalidArgument, errs.KindOf(err))
}

func TestToggleLike_EntityGoneRollsBack(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newEngagementService(t, db)
	ctx := context.Background()

	seedUser(t, db, "alice")

	_, err := svc.ToggleLike(ctx, "alice", models.EntityItinerary, "missing")
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))

	// The whole toggle rolled back: no orphaned like row.
	var likes int64
	require.NoError(t, db.Model(&models.Like{}).Where("entity_id = ?", "missing").Count(&likes).Error)
	assert.Equal(t, int64(0), likes)
}

func TestLikeCountFloorsAtZero(t *testing.T) {
	db := newTestDB(t)
	likeRepo := repository.NewLikeRepository(db)
	ctx := context.Background()

	seedItinerary(t, db, "it-1")

	rows, err := likeRepo.UpdateEntityLikeCount(ctx, models.EntityItinerary, "it-1", -1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)
	assert.Equal(t, int64(0), getItinerary(t, db, "it-1").LikeCount)
}

func TestCreatePost_SeedsAuthorVote(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newEngagementService(t, db)
	ctx := context.Background()

	seedUser(t, db, "alice")

	post, err := svc.CreatePost(ctx, "alice", &CreatePostRequest{
		Title:   "Three days in Lisbon",
		Content: "Trams, pasteis, miradouros.",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), post.Score)

	var vote models.Vote
	require.NoError(t, db.First(&vote, "post_id = ? AND user_id = ?", post.ID, "alice").Error)
	assert.Equal(t, 1, vote.Value)

	_, err = svc.CreatePost(ctx, "ghost", &CreatePostRequest{Title: "x", Content: "y"})
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}

func TestVotePost(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newEngagementService(t, db)
	ctx := context.Background()

	seedUser(t, db, "alice")
	seedUser(t, db, "bob")

	post, err := svc.CreatePost(ctx, "alice", &CreatePostRequest{Title: "Kyoto", Content: "Temples."})
	require.NoError(t, err)

	result, err := svc.VotePost(ctx, "bob", post.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Value)
	assert.Equal(t, int64(2), result.NewScore)

	// Same value again removes the vote.
	result, err = svc.VotePost(ctx, "bob", post.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Value)
	assert.Equal(t, int64(1), result.NewScore)

	// Opposite value flips by twice the magnitude.
	result, err = svc.VotePost(ctx, "bob", post.ID, -1)
	require.NoError(t, err)
	assert.Equal(t, -1, result.Value)
	assert.Equal(t, int64(0), result.NewScore)

	result, err = svc.VotePost(ctx, "bob", post.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Value)
	assert.Equal(t, int64(2), result.NewScore)

	_, err = svc.VotePost(ctx, "bob", post.ID, 3)
	assert.Equal(t, errs.KindInvalidArgument, errs.KindOf(err))

	_, err = svc.VotePost(ctx, "bob", "missing", 1)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}

func TestVotePost_ScoreMayGoNegative(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newEngagementService(t, db)
	ctx := context.Background()

	seedUser(t, db, "alice")
	seedUser(t, db, "bob")
	seedUser(t, db, "carol")

	post, err := svc.CreatePost(ctx, "alice", &CreatePostRequest{Title: "Hot take", Content: "Layovers are fun."})
	require.NoError(t, err)

	_, err = svc.VotePost(ctx, "bob", post.ID, -1)
	require.NoError(t, err)
	result, err := svc.VotePost(ctx, "carol", post.ID, -1)
	require.NoError(t, err)
	assert.Equal(t, int64(-1), result.NewScore)
}

func TestCreateComment(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newEngagementService(t, db)
	ctx := context.Background()

	seedUser(t, db, "alice")
	seedUser(t, db, "bob")

	post, err := svc.CreatePost(ctx, "alice", &CreatePostRequest{Title: "Kyoto", Content: "Temples."})
	require.NoError(t, err)

	comment, err := svc.CreateComment(ctx, "bob", post.ID, &CreateCommentRequest{Content: "Go in autumn."})
	require.NoError(t, err)

	reply, err := svc.CreateComment(ctx, "alice", post.ID, &CreateCommentRequest{
		Content:  "Noted, thanks.",
		ParentID: &comment.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, comment.ID, *reply.ParentID)

	got, err := svc.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.CommentCount)
}

func TestCreateComment_ParentValidation(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newEngagementService(t, db)
	ctx := context.Background()

	seedUser(t, db, "alice")

	postA, err := svc.CreatePost(ctx, "alice", &CreatePostRequest{Title: "A", Content: "a"})
	require.NoError(t, err)
	postB, err := svc.CreatePost(ctx, "alice", &CreatePostRequest{Title: "B", Content: "b"})
	require.NoError(t, err)

	commentA, err := svc.CreateComment(ctx, "alice", postA.ID, &CreateCommentRequest{Content: "root"})
	require.NoError(t, err)

	// Parent must belong to the same post.
	_, err = svc.CreateComment(ctx, "alice", postB.ID, &CreateCommentRequest{
		Content:  "cross-post reply",
		ParentID: &commentA.ID,
	})
	assert.Equal(t, errs.KindInvalidArgument, errs.KindOf(err))

	ghost := "missing"
	_, err = svc.CreateComment(ctx, "alice", postA.ID, &CreateCommentRequest{
		Content:  "reply to nothing",
		ParentID: &ghost,
	})
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))

	_, err = svc.CreateComment(ctx, "alice", "missing", &CreateCommentRequest{Content: "orphan"})
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))

	// The failed inserts left no rows and no counter drift.
	got, err := svc.GetPost(ctx, postB.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.CommentCount)
}
