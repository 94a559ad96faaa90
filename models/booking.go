package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCanceled  BookingStatus = "canceled"
)

// BookingStatuses lists every accepted status. Any status may follow any other.
var BookingStatuses = []BookingStatus{BookingPending, BookingConfirmed, BookingCanceled}

func (s BookingStatus) Valid() bool {
	for _, v := range BookingStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type Booking struct {
	BookingID uuid.UUID `gorm:"type:char(36);primaryKey" json:"booking_id"`

	ListingID uuid.UUID `gorm:"type:char(36);column:listing_id;not null;index" json:"listing_id"`
	Listing   *Listing  `gorm:"constraint:OnDelete:CASCADE" json:"listing,omitempty"`
	UserID    uint      `gorm:"column:user_id;not null;index" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"user,omitempty"`

	StartDate  datatypes.Date  `gorm:"column:start_date;not null" json:"start_date"`
	EndDate    datatypes.Date  `gorm:"column:end_date;not null" json:"end_date"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_price"`
	Status     BookingStatus   `gorm:"size:10;not null;default:pending;index" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.BookingID == uuid.Nil {
		id, err := uuid.NewRandom()
		if err != nil {
			return fmt.Errorf("generate booking id: %w", err)
		}
		b.BookingID = id
	}
	if b.Status == "" {
		b.Status = BookingPending
	}
	return nil
}

// String needs Listing preloaded to show the title.
func (b Booking) String() string {
	title := ""
	if b.Listing != nil {
		title = b.Listing.Title
	}
	return fmt.Sprintf("Booking %s - %s", b.BookingID, title)
}
