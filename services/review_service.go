package services

import (
	"context"
	"math"

	"rental-backend/config"
	"rental-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReviewService struct {
	DB *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	if db == nil {
		db = config.DB
	}
	return &ReviewService{DB: db}
}

type CreateReviewInput struct {
	ListingID uuid.UUID `json:"listing_id" validate:"required"`
	UserID    uint      `json:"user_id" validate:"required"`
	Rating    int       `json:"rating" validate:"oneof=1 2 3 4 5"`
	Comment   string    `json:"comment" validate:"required"`
}

type ReviewFilter struct {
	ListingID uuid.UUID
	UserID    uint
	Page
}

// ReviewSummary aggregates the ratings of one listing.
type ReviewSummary struct {
	ListingID uuid.UUID `json:"listing_id"`
	Count     int64     `json:"count"`
	Average   float64   `json:"average"`
}

// Create fails with ErrConstraintViolation when the user already reviewed the
// listing. The unique index decides races between concurrent writers.
func (s *ReviewService) Create(ctx context.Context, in CreateReviewInput) (models.Review, error) {
	if err := validate(in); err != nil {
		return models.Review{}, err
	}

	review := models.Review{
		ListingID: in.ListingID,
		UserID:    in.UserID,
		Rating:    in.Rating,
		Comment:   in.Comment,
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireListing(tx, in.ListingID); err != nil {
			return err
		}
		if err := requireUser(tx, in.UserID); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Create(&review).Error
	})
	if err != nil {
		return models.Review{}, translateDBError(err)
	}
	return review, nil
}

func (s *ReviewService) Get(ctx context.Context, id uuid.UUID) (models.Review, error) {
	var review models.Review
	err := s.DB.WithContext(ctx).Preload("User").First(&review, "review_id = ?", id).Error
	if err != nil {
		return models.Review{}, translateDBError(err)
	}
	return review, nil
}

// List returns reviews newest first.
func (s *ReviewService) List(ctx context.Context, f ReviewFilter) ([]models.Review, error) {
	q := s.DB.WithContext(ctx).Model(&models.Review{})
	if f.ListingID != uuid.Nil {
		q = q.Where("listing_id = ?", f.ListingID)
	}
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}

	reviews := []models.Review{}
	if err := q.Scopes(newestFirst("review_id"), paginate(f.Page)).Preload("User").Find(&reviews).Error; err != nil {
		return nil, translateDBError(err)
	}
	return reviews, nil
}

// Summary returns the review count and the mean rating rounded to two places.
// A listing without reviews has an average of 0.
func (s *ReviewService) Summary(ctx context.Context, listingID uuid.UUID) (ReviewSummary, error) {
	db := s.DB.WithContext(ctx)

	var n int64
	if err := db.Model(&models.Listing{}).Where("listing_id = ?", listingID).Count(&n).Error; err != nil {
		return ReviewSummary{}, translateDBError(err)
	}
	if n == 0 {
		return ReviewSummary{}, ErrNotFound
	}

	var agg struct {
		Count   int64
		Average float64
	}
	err := db.Model(&models.Review{}).
		Select("COUNT(*) AS count, COALESCE(AVG(rating), 0) AS average").
		Where("listing_id = ?", listingID).
		Scan(&agg).Error
	if err != nil {
		return ReviewSummary{}, translateDBError(err)
	}

	return ReviewSummary{
		ListingID: listingID,
		Count:     agg.Count,
		Average:   math.Round(agg.Average*100) / 100,
	}, nil
}
