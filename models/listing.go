package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Listing struct {
	ListingID uuid.UUID `gorm:"type:char(36);primaryKey" json:"listing_id"`

	HostID uint  `gorm:"column:host_id;not null;index" json:"host_id"`
	Host   *User `gorm:"foreignKey:HostID;references:ID;constraint:OnDelete:CASCADE" json:"host,omitempty"`

	Title         string          `gorm:"size:255;not null" json:"title"`
	Description   string          `gorm:"type:text;not null" json:"description"`
	Location      string          `gorm:"size:255;not null;index" json:"location"`
	PricePerNight decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price_per_night"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// The foreign keys on bookings and reviews are declared here so they point
	// at listings.listing_id; the child side only carries the belongs-to.
	Bookings []Booking `gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE" json:"-"`
	Reviews  []Review  `gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE" json:"-"`
}

func (l *Listing) BeforeCreate(tx *gorm.DB) error {
	if l.ListingID == uuid.Nil {
		id, err := uuid.NewRandom()
		if err != nil {
			return fmt.Errorf("generate listing id: %w", err)
		}
		l.ListingID = id
	}
	return nil
}

func (l Listing) String() string {
	return fmt.Sprintf("%s - %s", l.Title, l.Location)
}
