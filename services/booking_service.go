package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"rental-backend/config"
	"rental-backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingService wraps *gorm.DB for booking reads and writes. Bookings are
// only removed through their listing's or user's cascade.
type BookingService struct {
	DB *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	if db == nil {
		db = config.DB
	}
	return &BookingService{DB: db}
}

type CreateBookingInput struct {
	ListingID  uuid.UUID        `json:"listing_id" validate:"required"`
	UserID     uint             `json:"user_id" validate:"required"`
	StartDate  time.Time        `json:"start_date"`
	EndDate    time.Time        `json:"end_date"`
	TotalPrice *decimal.Decimal `json:"total_price" validate:"required,money"`
}

type BookingFilter struct {
	ListingID uuid.UUID
	UserID    uint
	Status    models.BookingStatus
	Page
}

func invalidStatus(status models.BookingStatus) error {
	allowed := make([]string, len(models.BookingStatuses))
	for i, s := range models.BookingStatuses {
		allowed[i] = string(s)
	}
	return invalid("status", fmt.Sprintf("%q is not one of [%s]", status, strings.Join(allowed, " ")))
}

// Create books a listing for a user. The booking starts out pending.
func (s *BookingService) Create(ctx context.Context, in CreateBookingInput) (models.Booking, error) {
	if err := validate(in); err != nil {
		return models.Booking{}, err
	}
	if in.StartDate.IsZero() {
		return models.Booking{}, invalid("start_date", "is required")
	}
	if in.EndDate.IsZero() {
		return models.Booking{}, invalid("end_date", "is required")
	}

	booking := models.Booking{
		ListingID:  in.ListingID,
		UserID:     in.UserID,
		StartDate:  datatypes.Date(in.StartDate),
		EndDate:    datatypes.Date(in.EndDate),
		TotalPrice: *in.TotalPrice,
		Status:     models.BookingPending,
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireListing(tx, in.ListingID); err != nil {
			return err
		}
		if err := requireUser(tx, in.UserID); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Create(&booking).Error
	})
	if err != nil {
		return models.Booking{}, translateDBError(err)
	}
	return booking, nil
}

func (s *BookingService) Get(ctx context.Context, id uuid.UUID) (models.Booking, error) {
	var booking models.Booking
	err := s.DB.WithContext(ctx).Preload("Listing").First(&booking, "booking_id = ?", id).Error
	if err != nil {
		return models.Booking{}, translateDBError(err)
	}
	return booking, nil
}

// List returns bookings newest first.
func (s *BookingService) List(ctx context.Context, f BookingFilter) ([]models.Booking, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, invalidStatus(f.Status)
	}

	q := s.DB.WithContext(ctx).Model(&models.Booking{})
	if f.ListingID != uuid.Nil {
		q = q.Where("listing_id = ?", f.ListingID)
	}
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	bookings := []models.Booking{}
	if err := q.Scopes(newestFirst("booking_id"), paginate(f.Page)).Preload("Listing").Find(&bookings).Error; err != nil {
		return nil, translateDBError(err)
	}
	return bookings, nil
}

// UpdateStatus sets any of the known statuses regardless of the current one.
func (s *BookingService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.BookingStatus) (models.Booking, error) {
	if !status.Valid() {
		return models.Booking{}, invalidStatus(status)
	}

	var out models.Booking
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Booking{}).Where("booking_id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		if err := tx.Model(&models.Booking{}).Where("booking_id = ?", id).Update("status", status).Error; err != nil {
			return err
		}
		return tx.Preload("Listing").First(&out, "booking_id = ?", id).Error
	})
	if err != nil {
		return models.Booking{}, translateDBError(err)
	}
	return out, nil
}
