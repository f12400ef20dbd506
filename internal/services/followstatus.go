package services

import (
	"github.com/triptrizz/triptrizz-server/internal/models"
)

// FollowStatus is what a profile page shows the viewer about the target.
type FollowStatus string

const (
	StatusSelf            FollowStatus = "self"
	StatusFollowing       FollowStatus = "following"
	StatusPendingOutgoing FollowStatus = "pending_outgoing"
	StatusPendingIncoming FollowStatus = "pending_incoming"
	StatusNotFollowing    FollowStatus = "not_following"
)

// DeriveFollowStatus computes the viewer-facing status from the two
// directional rows. It is deliberately a pure function: the status is never
// stored, so there is no second copy to drift from the rows.
//
// Acceptance is symmetric: one accepted row in either direction makes both
// users see following. Only one row is written, so an accepted incoming row
// counts the same as an accepted outgoing one.
func DeriveFollowStatus(viewerID, targetID string, outgoing, incoming *models.FollowRelationship) FollowStatus {
	if viewerID == targetID {
		return StatusSelf
	}
	if outgoing != nil && outgoing.Status == models.RelationshipAccepted {
		return StatusFollowing
	}
	if incoming != nil && incoming.Status == models.RelationshipAccepted {
		return StatusFollowing
	}
	if outgoing != nil && outgoing.Status == models.RelationshipPending {
		return StatusPendingOutgoing
	}
	if incoming != nil && incoming.Status == models.RelationshipPending {
		return StatusPendingIncoming
	}
	return StatusNotFollowing
}
