package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/triptrizz/triptrizz-server/internal/models"
)

func rel(follower, following, status string) *models.FollowRelationship {
	return &models.FollowRelationship{
		FollowerID:  follower,
		FollowingID: following,
		Status:      status,
	}
}

func TestDeriveFollowStatus(t *testing.T) {
	tests := []struct {
		name     string
		viewerID string
		targetID string
		outgoing *models.FollowRelationship
		incoming *models.FollowRelationship
		want     FollowStatus
	}{
		{
			name:     "self",
			viewerID: "alice",
			targetID: "alice",
			want:     StatusSelf,
		},
		{
			name:     "no rows",
			viewerID: "alice",
			targetID: "bob",
			want:     StatusNotFollowing,
		},
		{
			name:     "accepted outgoing",
			viewerID: "alice",
			targetID: "bob",
			outgoing: rel("alice", "bob", models.RelationshipAccepted),
			want:     StatusFollowing,
		},
		{
			name:     "pending outgoing",
			viewerID: "alice",
			targetID: "bob",
			outgoing: rel("alice", "bob", models.RelationshipPending),
			want:     StatusPendingOutgoing,
		},
		{
			name:     "pending incoming",
			viewerID: "alice",
			targetID: "bob",
			incoming: rel("bob", "alice", models.RelationshipPending),
			want:     StatusPendingIncoming,
		},
		{
			name:     "accepted incoming means following both ways",
			viewerID: "alice",
			targetID: "bob",
			incoming: rel("bob", "alice", models.RelationshipAccepted),
			want:     StatusFollowing,
		},
		{
			name:     "accepted outgoing wins over pending incoming",
			viewerID: "alice",
			targetID: "bob",
			outgoing: rel("alice", "bob", models.RelationshipAccepted),
			incoming: rel("bob", "alice", models.RelationshipPending),
			want:     StatusFollowing,
		},
		{
			name:     "accepted incoming wins over pending outgoing",
			viewerID: "alice",
			targetID: "bob",
			outgoing: rel("alice", "bob", models.RelationshipPending),
			incoming: rel("bob", "alice", models.RelationshipAccepted),
			want:     StatusFollowing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveFollowStatus(tt.viewerID, tt.targetID, tt.outgoing, tt.incoming)
			assert.Equal(t, tt.want, got)
		})
	}
}
