package services

import (
	"fmt"
	"strings"

	"rental-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Page selects a window of a newest-first collection. Limit 0 means no limit.
type Page struct {
	Limit  int
	Offset int
}

// newestFirst orders by created_at and breaks ties on the primary key so rows
// written in the same clock tick keep a stable order across pages.
func newestFirst(pk string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at DESC").Order(pk)
	}
}

// likeEscape is the escape character used by containsFold.
const likeEscape = "!"

// containsFold matches column case-insensitively against s as a literal
// substring; % and _ in s carry no wildcard meaning.
func containsFold(db *gorm.DB, column, s string) *gorm.DB {
	r := strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")
	pattern := "%" + r.Replace(strings.ToLower(s)) + "%"
	return db.Where("LOWER("+column+") LIKE ? ESCAPE '"+likeEscape+"'", pattern)
}

func paginate(p Page) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if p.Limit <= 0 {
			return db
		}
		offset := p.Offset
		if offset < 0 {
			offset = 0
		}
		return db.Limit(p.Limit).Offset(offset)
	}
}

func requireUser(tx *gorm.DB, id uint) error {
	var n int64
	if err := tx.Model(&models.User{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return fmt.Errorf("look up user %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: user %d does not exist", ErrConstraintViolation, id)
	}
	return nil
}

func requireListing(tx *gorm.DB, id uuid.UUID) error {
	var n int64
	if err := tx.Model(&models.Listing{}).Where("listing_id = ?", id).Count(&n).Error; err != nil {
		return fmt.Errorf("look up listing %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: listing %s does not exist", ErrConstraintViolation, id)
	}
	return nil
}
