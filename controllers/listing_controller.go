package controllers

import (
	"net/http"

	"rental-backend/models"
	"rental-backend/services"
	"rental-backend/utils"

	"github.com/gin-gonic/gin"
)

type ListingController struct {
	ListingSvc *services.ListingService
	BookingSvc *services.BookingService
	ReviewSvc  *services.ReviewService
}

func NewListingController(ls *services.ListingService, bs *services.BookingService, rs *services.ReviewService) *ListingController {
	return &ListingController{ListingSvc: ls, BookingSvc: bs, ReviewSvc: rs}
}

type listingView struct {
	models.Listing
	Summary string `json:"summary"`
}

func viewListing(l models.Listing) listingView {
	return listingView{Listing: l, Summary: l.String()}
}

// GetListings (GET /api/listings?host_id=&location=&page=&limit=)
func (ctrl *ListingController) GetListings(c *gin.Context) {
	hostID, ok := optionalUintQuery(c, "host_id")
	if !ok {
		return
	}
	p := utils.GetPagination(c)

	listings, err := ctrl.ListingSvc.List(c.Request.Context(), services.ListingFilter{
		HostID:   hostID,
		Location: c.Query("location"),
		Page:     page(p),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]listingView, 0, len(listings))
	for _, l := range listings {
		out = append(out, viewListing(l))
	}
	utils.JSONPage(c, http.StatusOK, out, p)
}

// CreateListing (POST /api/listings)
func (ctrl *ListingController) CreateListing(c *gin.Context) {
	var in services.CreateListingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid listing payload: "+err.Error())
		return
	}

	listing, err := ctrl.ListingSvc.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, viewListing(listing))
}

// GetListing (GET /api/listings/:id)
func (ctrl *ListingController) GetListing(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	listing, err := ctrl.ListingSvc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, viewListing(listing))
}

// UpdateListing (PATCH /api/listings/:id)
func (ctrl *ListingController) UpdateListing(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var u services.ListingUpdate
	if err := c.ShouldBindJSON(&u); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid listing payload: "+err.Error())
		return
	}

	listing, err := ctrl.ListingSvc.Update(c.Request.Context(), id, u)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, viewListing(listing))
}

// DeleteListing (DELETE /api/listings/:id) also removes its bookings and reviews.
func (ctrl *ListingController) DeleteListing(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.ListingSvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetListingBookings (GET /api/listings/:id/bookings)
func (ctrl *ListingController) GetListingBookings(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if _, err := ctrl.ListingSvc.Get(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	p := utils.GetPagination(c)

	bookings, err := ctrl.BookingSvc.List(c.Request.Context(), services.BookingFilter{
		ListingID: id,
		Status:    models.BookingStatus(c.Query("status")),
		Page:      page(p),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONPage(c, http.StatusOK, viewBookings(bookings), p)
}

// GetListingReviews (GET /api/listings/:id/reviews)
func (ctrl *ListingController) GetListingReviews(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if _, err := ctrl.ListingSvc.Get(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	p := utils.GetPagination(c)

	reviews, err := ctrl.ReviewSvc.List(c.Request.Context(), services.ReviewFilter{
		ListingID: id,
		Page:      page(p),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONPage(c, http.StatusOK, viewReviews(reviews), p)
}

// GetListingReviewSummary (GET /api/listings/:id/reviews/summary)
func (ctrl *ListingController) GetListingReviewSummary(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	summary, err := ctrl.ReviewSvc.Summary(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, summary)
}
