package models

import "time"

// User is the identity a listing, booking or review hangs off. Accounts live in
// an external identity system; only the id and display name are kept here.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:150;not null" json:"username"`
	CreatedAt time.Time `json:"created_at"`
}
