package models

import (
	"time"

	"gorm.io/gorm"
)

// Kinds of entities that can be liked. The likes table is shared; the counter
// lives on the entity's own row.
const (
	EntityItinerary = "itinerary"
	EntityActivity  = "activity"
	EntityComment   = "comment"
)

// Like rows are the source of truth; every like_count column is derived.
type Like struct {
	ID         string    `json:"id" gorm:"type:varchar(36);primary_key"`
	UserID     string    `json:"user_id" gorm:"type:varchar(36);not null;index:idx_like_unique,unique"`
	EntityKind string    `json:"entity_kind" gorm:"type:varchar(16);not null;index:idx_like_unique,unique"`
	EntityID   string    `json:"entity_id" gorm:"type:varchar(36);not null;index:idx_like_unique,unique;index"`
	CreatedAt  time.Time `json:"created_at"`
}

// ActivityEvent is a feed entry materialized by the worker from domain events.
type ActivityEvent struct {
	ID         string    `json:"id" gorm:"type:varchar(36);primary_key"`
	ActorID    string    `json:"actor_id" gorm:"type:varchar(36);not null;index"`
	Verb       string    `json:"verb" gorm:"type:varchar(32);not null"`
	ObjectKind string    `json:"object_kind" gorm:"type:varchar(32)"`
	ObjectID   string    `json:"object_id" gorm:"type:varchar(36);index"`
	LikeCount  int64     `json:"like_count" gorm:"default:0"`
	CreatedAt  time.Time `json:"created_at" gorm:"index"`

	Actor User `json:"actor" gorm:"foreignKey:ActorID"`
}

// Post is a forum post. Score starts at 1: the author's own vote is seeded in
// the same transaction as the insert.
type Post struct {
	ID           string         `json:"id" gorm:"type:varchar(36);primary_key"`
	AuthorID     string         `json:"author_id" gorm:"type:varchar(36);not null;index"`
	Title        string         `json:"title" gorm:"not null"`
	Content      string         `json:"content" gorm:"type:text;not null"`
	Score        int64          `json:"score" gorm:"default:0"`
	CommentCount int64          `json:"comment_count" gorm:"default:0"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`

	Author User `json:"author" gorm:"foreignKey:AuthorID"`
}

type Vote struct {
	ID        string    `json:"id" gorm:"type:varchar(36);primary_key"`
	PostID    string    `json:"post_id" gorm:"type:varchar(36);not null;index:idx_vote_unique,unique"`
	UserID    string    `json:"user_id" gorm:"type:varchar(36);not null;index:idx_vote_unique,unique"`
	Value     int       `json:"value" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Comment struct {
	ID        string         `json:"id" gorm:"type:varchar(36);primary_key"`
	PostID    string         `json:"post_id" gorm:"type:varchar(36);not null;index"`
	AuthorID  string         `json:"author_id" gorm:"type:varchar(36);not null"`
	ParentID  *string        `json:"parent_id" gorm:"type:varchar(36)"`
	Content   string         `json:"content" gorm:"type:text;not null"`
	LikeCount int64          `json:"like_count" gorm:"default:0"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Author User `json:"author" gorm:"foreignKey:AuthorID"`
}

func (Like) TableName() string {
	return "likes"
}

func (ActivityEvent) TableName() string {
	return "activity_events"
}

func (Post) TableName() string {
	return "posts"
}

func (Vote) TableName() string {
	return "votes"
}

func (Comment) TableName() string {
	return "comments"
}
