package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID          string         `json:"id" gorm:"type:varchar(36);primary_key"`
	Username    string         `json:"username" gorm:"uniqueIndex;not null"`
	Email       string         `json:"email" gorm:"uniqueIndex;not null"`
	Password    string         `json:"-" gorm:"not null"`
	DisplayName string         `json:"display_name"`
	Avatar      string         `json:"avatar"`
	Bio         string         `json:"bio"`
	HomeCity    string         `json:"home_city"`
	TravelStyle string         `json:"travel_style"`
	Followers   int64          `json:"followers" gorm:"default:0"`
	Following   int64          `json:"following" gorm:"default:0"`
	IsVerified  bool           `json:"is_verified" gorm:"default:false"`
	IsAdmin     bool           `json:"is_admin" gorm:"default:false"`
	IsActive    bool           `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

const (
	VerificationPending  = "pending"
	VerificationApproved = "approved"
	VerificationRejected = "rejected"
)

type VerificationRequest struct {
	ID          string    `json:"id" gorm:"type:varchar(36);primary_key"`
	UserID      string    `json:"user_id" gorm:"type:varchar(36);not null;index"`
	DocumentURL string    `json:"document_url" gorm:"not null"`
	Status      string    `json:"status" gorm:"type:varchar(16);default:pending;index"`
	ReviewedBy  *string   `json:"reviewed_by" gorm:"type:varchar(36)"`
	ReviewNote  string    `json:"review_note"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	User User `json:"user" gorm:"foreignKey:UserID"`
}

func (User) TableName() string {
	return "users"
}

func (VerificationRequest) TableName() string {
	return "verification_requests"
}
