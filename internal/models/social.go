package models

import (
	"time"
)

const (
	RelationshipPending  = "pending"
	RelationshipAccepted = "accepted"
)

// FollowRelationship is one directional edge. "alice follows bob" and
// "bob follows alice" are two independent rows.
type FollowRelationship struct {
	ID          string    `json:"id" gorm:"type:varchar(36);primary_key"`
	FollowerID  string    `json:"follower_id" gorm:"type:varchar(36);not null;index:idx_follow_pair,unique"`
	FollowingID string    `json:"following_id" gorm:"type:varchar(36);not null;index:idx_follow_pair,unique;index"`
	Status      string    `json:"status" gorm:"type:varchar(16);not null;default:pending"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Follower  User `json:"follower" gorm:"foreignKey:FollowerID"`
	Following User `json:"following" gorm:"foreignKey:FollowingID"`
}

// BlockContextAll suppresses every interaction; narrower contexts (e.g. "dm")
// only suppress that surface.
const (
	BlockContextAll = "all"
	BlockContextDM  = "dm"
)

type Block struct {
	ID        string    `json:"id" gorm:"type:varchar(36);primary_key"`
	BlockerID string    `json:"blocker_id" gorm:"type:varchar(36);not null;index:idx_block_triple,unique"`
	BlockedID string    `json:"blocked_id" gorm:"type:varchar(36);not null;index:idx_block_triple,unique;index"`
	Context   string    `json:"context" gorm:"type:varchar(16);not null;default:all;index:idx_block_triple,unique"`
	CreatedAt time.Time `json:"created_at"`
}

func (FollowRelationship) TableName() string {
	return "follow_relationships"
}

func (Block) TableName() string {
	return "blocks"
}
