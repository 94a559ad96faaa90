package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ReviewID uuid.UUID `gorm:"type:char(36);primaryKey" json:"review_id"`

	// one review per (listing, user)
	ListingID uuid.UUID `gorm:"type:char(36);column:listing_id;not null;uniqueIndex:idx_reviews_listing_user" json:"listing_id"`
	Listing   *Listing  `gorm:"constraint:OnDelete:CASCADE" json:"listing,omitempty"`
	UserID    uint      `gorm:"column:user_id;not null;uniqueIndex:idx_reviews_listing_user;index" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"user,omitempty"`

	Rating  int    `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment string `gorm:"type:text;not null" json:"comment"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ReviewID == uuid.Nil {
		id, err := uuid.NewRandom()
		if err != nil {
			return fmt.Errorf("generate review id: %w", err)
		}
		r.ReviewID = id
	}
	return nil
}

// String needs User preloaded to show the username.
func (r Review) String() string {
	username := ""
	if r.User != nil {
		username = r.User.Username
	}
	return fmt.Sprintf("Review by %s - %d stars", username, r.Rating)
}
