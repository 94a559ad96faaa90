package services

import (
	"fmt"

	"rental-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cascades run inside the caller's transaction and delete children before
// parents, so they hold whether or not the database enforces ON DELETE CASCADE.

func deleteListingCascade(tx *gorm.DB, listingID uuid.UUID) error {
	if err := tx.Where("listing_id = ?", listingID).Delete(&models.Booking{}).Error; err != nil {
		return fmt.Errorf("delete bookings of listing %s: %w", listingID, err)
	}
	if err := tx.Where("listing_id = ?", listingID).Delete(&models.Review{}).Error; err != nil {
		return fmt.Errorf("delete reviews of listing %s: %w", listingID, err)
	}
	res := tx.Where("listing_id = ?", listingID).Delete(&models.Listing{})
	if res.Error != nil {
		return fmt.Errorf("delete listing %s: %w", listingID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func deleteUserCascade(tx *gorm.DB, userID uint) error {
	var hosted []uuid.UUID
	if err := tx.Model(&models.Listing{}).Where("host_id = ?", userID).Pluck("listing_id", &hosted).Error; err != nil {
		return fmt.Errorf("find listings of user %d: %w", userID, err)
	}

	bookings := tx.Where("user_id = ?", userID)
	reviews := tx.Where("user_id = ?", userID)
	if len(hosted) > 0 {
		bookings = bookings.Or("listing_id IN ?", hosted)
		reviews = reviews.Or("listing_id IN ?", hosted)
	}
	if err := bookings.Delete(&models.Booking{}).Error; err != nil {
		return fmt.Errorf("delete bookings of user %d: %w", userID, err)
	}
	if err := reviews.Delete(&models.Review{}).Error; err != nil {
		return fmt.Errorf("delete reviews of user %d: %w", userID, err)
	}
	if err := tx.Where("host_id = ?", userID).Delete(&models.Listing{}).Error; err != nil {
		return fmt.Errorf("delete listings of user %d: %w", userID, err)
	}

	res := tx.Where("id = ?", userID).Delete(&models.User{})
	if res.Error != nil {
		return fmt.Errorf("delete user %d: %w", userID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
