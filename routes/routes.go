package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"rental-backend/controllers"
	"rental-backend/middleware"
)

type Controllers struct {
	Users    *controllers.UserController
	Listings *controllers.ListingController
	Bookings *controllers.BookingController
	Reviews  *controllers.ReviewController
}

// SetupRouter wires the controllers under /api.
func SetupRouter(ctrl Controllers, origins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())

	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		users := api.Group("/users")
		{
			users.POST("", ctrl.Users.CreateUser)
			users.GET("/:id", ctrl.Users.GetUser)
			users.DELETE("/:id", ctrl.Users.DeleteUser)
		}

		listings := api.Group("/listings")
		{
			listings.GET("", ctrl.Listings.GetListings)
			listings.POST("", ctrl.Listings.CreateListing)
			listings.GET("/:id", ctrl.Listings.GetListing)
			listings.PATCH("/:id", ctrl.Listings.UpdateListing)
			listings.DELETE("/:id", ctrl.Listings.DeleteListing)
			listings.GET("/:id/bookings", ctrl.Listings.GetListingBookings)
			listings.GET("/:id/reviews", ctrl.Listings.GetListingReviews)
			listings.GET("/:id/reviews/summary", ctrl.Listings.GetListingReviewSummary)
		}

		bookings := api.Group("/bookings")
		{
			bookings.GET("", ctrl.Bookings.GetBookings)
			bookings.POST("", ctrl.Bookings.CreateBooking)
			bookings.GET("/:id", ctrl.Bookings.GetBookingDetails)
			bookings.PATCH("/:id/status", ctrl.Bookings.UpdateBookingStatus)
		}

		reviews := api.Group("/reviews")
		{
			reviews.GET("", ctrl.Reviews.GetReviews)
			reviews.POST("", ctrl.Reviews.CreateReview)
			reviews.GET("/:id", ctrl.Reviews.GetReview)
		}
	}

	return r
}
