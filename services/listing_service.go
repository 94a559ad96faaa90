package services

import (
	"context"
	"strings"

	"rental-backend/config"
	"rental-backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ListingService struct {
	DB *gorm.DB
}

func NewListingService(db *gorm.DB) *ListingService {
	if db == nil {
		db = config.DB
	}
	return &ListingService{DB: db}
}

type CreateListingInput struct {
	HostID        uint             `json:"host_id" validate:"required"`
	Title         string           `json:"title" validate:"required,max=255"`
	Description   string           `json:"description" validate:"required"`
	Location      string           `json:"location" validate:"required,max=255"`
	PricePerNight *decimal.Decimal `json:"price_per_night" validate:"required,money"`
}

// ListingUpdate is a partial update; nil fields are left alone. The id, host
// and created_at of a listing never change.
type ListingUpdate struct {
	Title         *string          `json:"title"`
	Description   *string          `json:"description"`
	Location      *string          `json:"location"`
	PricePerNight *decimal.Decimal `json:"price_per_night"`
}

type ListingFilter struct {
	HostID uint
	// Location matches case-insensitively anywhere in the listing's location.
	Location string
	Page
}

// listingFields holds the editable columns so create and update share rules.
type listingFields struct {
	Title         string          `json:"title" validate:"required,max=255"`
	Description   string          `json:"description" validate:"required"`
	Location      string          `json:"location" validate:"required,max=255"`
	PricePerNight decimal.Decimal `json:"price_per_night" validate:"money"`
}

func (u ListingUpdate) apply(l *models.Listing) map[string]interface{} {
	changes := map[string]interface{}{}
	if u.Title != nil {
		l.Title = strings.TrimSpace(*u.Title)
		changes["title"] = l.Title
	}
	if u.Description != nil {
		l.Description = *u.Description
		changes["description"] = l.Description
	}
	if u.Location != nil {
		l.Location = strings.TrimSpace(*u.Location)
		changes["location"] = l.Location
	}
	if u.PricePerNight != nil {
		l.PricePerNight = *u.PricePerNight
		changes["price_per_night"] = l.PricePerNight
	}
	return changes
}

func (s *ListingService) Create(ctx context.Context, in CreateListingInput) (models.Listing, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Location = strings.TrimSpace(in.Location)
	if err := validate(in); err != nil {
		return models.Listing{}, err
	}

	listing := models.Listing{
		HostID:        in.HostID,
		Title:         in.Title,
		Description:   in.Description,
		Location:      in.Location,
		PricePerNight: *in.PricePerNight,
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireUser(tx, in.HostID); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Create(&listing).Error
	})
	if err != nil {
		return models.Listing{}, translateDBError(err)
	}
	return listing, nil
}

func (s *ListingService) Get(ctx context.Context, id uuid.UUID) (models.Listing, error) {
	var listing models.Listing
	err := s.DB.WithContext(ctx).Preload("Host").First(&listing, "listing_id = ?", id).Error
	if err != nil {
		return models.Listing{}, translateDBError(err)
	}
	return listing, nil
}

// List returns listings newest first.
func (s *ListingService) List(ctx context.Context, f ListingFilter) ([]models.Listing, error) {
	q := s.DB.WithContext(ctx).Model(&models.Listing{})
	if f.HostID != 0 {
		q = q.Where("host_id = ?", f.HostID)
	}
	if loc := strings.TrimSpace(f.Location); loc != "" {
		q = containsFold(q, "location", loc)
	}

	listings := []models.Listing{}
	if err := q.Scopes(newestFirst("listing_id"), paginate(f.Page)).Preload("Host").Find(&listings).Error; err != nil {
		return nil, translateDBError(err)
	}
	return listings, nil
}

// Update applies u and refreshes updated_at in the same statement, even when u
// changes nothing. The merged record is validated before anything is written.
func (s *ListingService) Update(ctx context.Context, id uuid.UUID, u ListingUpdate) (models.Listing, error) {
	var out models.Listing
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var listing models.Listing
		if err := tx.First(&listing, "listing_id = ?", id).Error; err != nil {
			return err
		}

		changes := u.apply(&listing)
		if err := validate(listingFields{
			Title:         listing.Title,
			Description:   listing.Description,
			Location:      listing.Location,
			PricePerNight: listing.PricePerNight,
		}); err != nil {
			return err
		}

		// An empty update still counts as a save and moves updated_at.
		changes["updated_at"] = tx.NowFunc()
		if err := tx.Model(&models.Listing{}).Where("listing_id = ?", id).Updates(changes).Error; err != nil {
			return err
		}
		return tx.Preload("Host").First(&out, "listing_id = ?", id).Error
	})
	if err != nil {
		return models.Listing{}, translateDBError(err)
	}
	return out, nil
}

// Delete removes the listing and all of its bookings and reviews atomically.
func (s *ListingService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteListingCascade(tx, id)
	})
	return translateDBError(err)
}
