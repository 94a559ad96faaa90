package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"rental-backend/models"

	"github.com/google/uuid"
)

func TestReviewService_RatingBounds(t *testing.T) {
	f := newFixture(t)
	l := f.listing(t, f.user(t, "host"), "Villa")
	ctx := context.Background()

	for _, rating := range []int{0, 6, -1, 10} {
		u := f.user(t, fmt.Sprintf("bad-%d", rating))
		_, err := f.reviews.Create(ctx, CreateReviewInput{ListingID: l.ListingID, UserID: u.ID, Rating: rating, Comment: "meh"})
		var verr *ValidationError
		if !errors.As(err, &verr) || verr.Field != "rating" {
			t.Errorf("rating %d: error = %v, want rating validation error", rating, err)
		}
	}

	for rating := models.MinRating; rating <= models.MaxRating; rating++ {
		u := f.user(t, fmt.Sprintf("good-%d", rating))
		if _, err := f.reviews.Create(ctx, CreateReviewInput{ListingID: l.ListingID, UserID: u.ID, Rating: rating, Comment: "ok"}); err != nil {
			t.Errorf("rating %d: unexpected error %v", rating, err)
		}
	}
}

func TestReviewService_CommentRequired(t *testing.T) {
	f := newFixture(t)
	l := f.listing(t, f.user(t, "host"), "Villa")
	u := f.user(t, "guest")

	_, err := f.reviews.Create(context.Background(), CreateReviewInput{ListingID: l.ListingID, UserID: u.ID, Rating: 3})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("error = %v, want validation error", err)
	}
}

func TestReviewService_OnePerListingAndUser(t *testing.T) {
	f := newFixture(t)
	l := f.listing(t, f.user(t, "host"), "Villa")
	u := f.user(t, "guest")
	ctx := context.Background()

	first := f.review(t, l, u, 5)

	_, err := f.reviews.Create(ctx, CreateReviewInput{ListingID: l.ListingID, UserID: u.ID, Rating: 1, Comment: "changed my mind"})
	if !errors.Is(err, ErrConstraintViolation) {
		t.Fatalf("second review: error = %v, want ErrConstraintViolation", err)
	}

	reviews, err := f.reviews.List(ctx, ReviewFilter{ListingID: l.ListingID, UserID: u.ID})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(reviews) != 1 || reviews[0].ReviewID != first.ReviewID || reviews[0].Rating != 5 {
		t.Fatalf("reviews for pair = %+v, want only the first", reviews)
	}

	// the same user may still review a different listing
	other := f.listing(t, f.user(t, "host2"), "Other")
	f.review(t, other, u, 2)
}

func TestReviewService_ConcurrentDuplicates(t *testing.T) {
	f := newFixture(t)
	l := f.listing(t, f.user(t, "host"), "Villa")
	u := f.user(t, "guest")

	const writers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		failures  []error
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := f.reviews.Create(context.Background(), CreateReviewInput{
				ListingID: l.ListingID,
				UserID:    u.ID,
				Rating:    i%5 + 1,
				Comment:   fmt.Sprintf("writer %d", i),
			})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
			} else {
				failures = append(failures, err)
			}
		}(i)
	}
	wg.Wait()

	if successes != 1 {
		t.Fatalf("%d writers succeeded, want exactly 1", successes)
	}
	for _, err := range failures {
		if !errors.Is(err, ErrConstraintViolation) {
			t.Errorf("losing writer error = %v, want ErrConstraintViolation", err)
		}
	}
	if n := f.count(t, &models.Review{}, "listing_id = ? AND user_id = ?", l.ListingID, u.ID); n != 1 {
		t.Errorf("%d reviews stored for pair, want 1", n)
	}
}

func TestReviewService_MissingParents(t *testing.T) {
	f := newFixture(t)
	l := f.listing(t, f.user(t, "host"), "Villa")
	u := f.user(t, "guest")
	ctx := context.Background()

	if _, err := f.reviews.Create(ctx, CreateReviewInput{ListingID: uuid.New(), UserID: u.ID, Rating: 4, Comment: "?"}); !errors.Is(err, ErrConstraintViolation) {
		t.Errorf("unknown listing: error = %v, want ErrConstraintViolation", err)
	}
	if _, err := f.reviews.Create(ctx, CreateReviewInput{ListingID: l.ListingID, UserID: 1234, Rating: 4, Comment: "?"}); !errors.Is(err, ErrConstraintViolation) {
		t.Errorf("unknown user: error = %v, want ErrConstraintViolation", err)
	}
}

func TestReviewService_GetAndString(t *testing.T) {
	f := newFixture(t)
	l := f.listing(t, f.user(t, "host"), "Villa")
	r := f.review(t, l, f.user(t, "marta"), 4)

	got, err := f.reviews.Get(context.Background(), r.ReviewID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if want := "Review by marta - 4 stars"; got.String() != want {
		t.Errorf("String() = %q, want %q", got.String(), want)
	}

	if _, err := f.reviews.Get(context.Background(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing review: error = %v, want ErrNotFound", err)
	}
}

func TestReviewService_ListNewestFirst(t *testing.T) {
	f := newFixture(t)
	l := f.listing(t, f.user(t, "host"), "Villa")
	r1 := f.review(t, l, f.user(t, "a"), 3)
	r2 := f.review(t, l, f.user(t, "b"), 4)
	r3 := f.review(t, l, f.user(t, "c"), 5)

	got, err := f.reviews.List(context.Background(), ReviewFilter{ListingID: l.ListingID})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []uuid.UUID{r3.ReviewID, r2.ReviewID, r1.ReviewID}
	if len(got) != len(want) {
		t.Fatalf("got %d reviews, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].ReviewID != want[i] {
			t.Errorf("position %d: got %s, want %s", i, got[i].ReviewID, want[i])
		}
		if got[i].User == nil {
			t.Errorf("position %d: user not preloaded", i)
		}
	}
}

func TestReviewService_Summary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	l := f.listing(t, f.user(t, "host"), "Villa")

	empty, err := f.reviews.Summary(ctx, l.ListingID)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if empty.Count != 0 || empty.Average != 0 {
		t.Errorf("empty summary = %+v", empty)
	}

	f.review(t, l, f.user(t, "a"), 5)
	f.review(t, l, f.user(t, "b"), 4)
	f.review(t, l, f.user(t, "c"), 4)

	s, err := f.reviews.Summary(ctx, l.ListingID)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if s.Count != 3 || s.Average != 4.33 {
		t.Errorf("summary = %+v, want 3 reviews averaging 4.33", s)
	}

	if _, err := f.reviews.Summary(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown listing: error = %v, want ErrNotFound", err)
	}
}
