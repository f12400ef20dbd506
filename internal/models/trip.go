package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	TripPublic  = "public"
	TripPrivate = "private"
)

type Trip struct {
	ID          string         `json:"id" gorm:"type:varchar(36);primary_key"`
	OwnerID     string         `json:"owner_id" gorm:"type:varchar(36);not null;index"`
	Title       string         `json:"title" gorm:"not null"`
	Destination string         `json:"destination" gorm:"not null;index"`
	StartDate   time.Time      `json:"start_date"`
	EndDate     time.Time      `json:"end_date"`
	Visibility  string         `json:"visibility" gorm:"type:varchar(16);default:public"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	Owner User `json:"owner" gorm:"foreignKey:OwnerID"`
}

// Itinerary is one day's plan inside a trip. LikeCount is a derived cache of
// the likes table; it is only written co-transactionally with a like row.
type Itinerary struct {
	ID        string    `json:"id" gorm:"type:varchar(36);primary_key"`
	TripID    string    `json:"trip_id" gorm:"type:varchar(36);not null;index"`
	Day       int       `json:"day" gorm:"not null"`
	Title     string    `json:"title" gorm:"not null"`
	Notes     string    `json:"notes" gorm:"type:text"`
	LikeCount int64     `json:"like_count" gorm:"default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Trip) TableName() string {
	return "trips"
}

func (Itinerary) TableName() string {
	return "itineraries"
}
