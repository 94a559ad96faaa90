package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"rental-backend/config"
	"rental-backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// tickingClock advances one second per call so created_at values are strictly
// increasing in creation order.
type tickingClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTickingClock() *tickingClock {
	return &tickingClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *tickingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

type fixture struct {
	db       *gorm.DB
	users    *UserService
	listings *ListingService
	bookings *BookingService
	reviews  *ReviewService
}

// setupTestDB opens a private in-memory SQLite database with the schema applied.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	clock := newTickingClock()
	db, err := config.Open(config.DatabaseConfig{
		Driver:   config.DriverSQLite,
		DSN:      "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		LogLevel: logger.Silent,
		NowFunc:  clock.Now,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func newFixture(t *testing.T) *fixture {
	db := setupTestDB(t)
	return &fixture{
		db:       db,
		users:    NewUserService(db),
		listings: NewListingService(db),
		bookings: NewBookingService(db),
		reviews:  NewReviewService(db),
	}
}

func (f *fixture) user(t *testing.T, name string) models.User {
	t.Helper()
	u, err := f.users.Create(context.Background(), CreateUserInput{Username: name})
	if err != nil {
		t.Fatalf("create user %q: %v", name, err)
	}
	return u
}

func (f *fixture) listing(t *testing.T, host models.User, title string) models.Listing {
	t.Helper()
	l, err := f.listings.Create(context.Background(), CreateListingInput{
		HostID:        host.ID,
		Title:         title,
		Description:   "A quiet place to stay.",
		Location:      "Porto",
		PricePerNight: price("150.00"),
	})
	if err != nil {
		t.Fatalf("create listing %q: %v", title, err)
	}
	return l
}

func (f *fixture) booking(t *testing.T, l models.Listing, u models.User) models.Booking {
	t.Helper()
	b, err := f.bookings.Create(context.Background(), CreateBookingInput{
		ListingID:  l.ListingID,
		UserID:     u.ID,
		StartDate:  date("2024-06-01"),
		EndDate:    date("2024-06-04"),
		TotalPrice: price("450.00"),
	})
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	return b
}

func (f *fixture) review(t *testing.T, l models.Listing, u models.User, rating int) models.Review {
	t.Helper()
	r, err := f.reviews.Create(context.Background(), CreateReviewInput{
		ListingID: l.ListingID,
		UserID:    u.ID,
		Rating:    rating,
		Comment:   "Lovely stay.",
	})
	if err != nil {
		t.Fatalf("create review: %v", err)
	}
	return r
}

func (f *fixture) count(t *testing.T, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	q := f.db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func price(s string) *decimal.Decimal {
	d := money(s)
	return &d
}

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func ptr[T any](v T) *T {
	return &v
}
