package controllers

import (
	"net/http"
	"time"

	"rental-backend/models"
	"rental-backend/services"
	"rental-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateBookingRequest struct {
	ListingID  uuid.UUID        `json:"listing_id" binding:"required"`
	UserID     uint             `json:"user_id" binding:"required"`
	StartDate  string           `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate    string           `json:"end_date" binding:"required,datetime=2006-01-02"`
	TotalPrice *decimal.Decimal `json:"total_price"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type BookingController struct {
	BookingSvc *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{BookingSvc: svc}
}

type bookingView struct {
	models.Booking
	Summary string `json:"summary"`
}

func viewBookings(bookings []models.Booking) []bookingView {
	out := make([]bookingView, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, bookingView{Booking: b, Summary: b.String()})
	}
	return out
}

// GetBookings (GET /api/bookings?listing_id=&user_id=&status=)
func (ctrl *BookingController) GetBookings(c *gin.Context) {
	listingID, ok := optionalUUIDQuery(c, "listing_id")
	if !ok {
		return
	}
	userID, ok := optionalUintQuery(c, "user_id")
	if !ok {
		return
	}
	p := utils.GetPagination(c)

	bookings, err := ctrl.BookingSvc.List(c.Request.Context(), services.BookingFilter{
		ListingID: listingID,
		UserID:    userID,
		Status:    models.BookingStatus(c.Query("status")),
		Page:      page(p),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONPage(c, http.StatusOK, viewBookings(bookings), p)
}

// CreateBooking (POST /api/bookings)
func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid booking payload: "+err.Error())
		return
	}

	// both already passed the datetime binding rule
	start, _ := time.Parse(dateLayout, req.StartDate)
	end, _ := time.Parse(dateLayout, req.EndDate)

	booking, err := ctrl.BookingSvc.Create(c.Request.Context(), services.CreateBookingInput{
		ListingID:  req.ListingID,
		UserID:     req.UserID,
		StartDate:  start,
		EndDate:    end,
		TotalPrice: req.TotalPrice,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, booking)
}

// GetBookingDetails (GET /api/bookings/:id)
func (ctrl *BookingController) GetBookingDetails(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	booking, err := ctrl.BookingSvc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookingView{Booking: booking, Summary: booking.String()})
}

// UpdateBookingStatus (PATCH /api/bookings/:id/status)
func (ctrl *BookingController) UpdateBookingStatus(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid status payload: "+err.Error())
		return
	}

	booking, err := ctrl.BookingSvc.UpdateStatus(c.Request.Context(), id, models.BookingStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookingView{Booking: booking, Summary: booking.String()})
}
