package controllers

import (
	"net/http"

	"rental-backend/models"
	"rental-backend/services"
	"rental-backend/utils"

	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	ReviewSvc *services.ReviewService
}

func NewReviewController(svc *services.ReviewService) *ReviewController {
	return &ReviewController{ReviewSvc: svc}
}

type reviewView struct {
	models.Review
	Summary string `json:"summary"`
}

func viewReviews(reviews []models.Review) []reviewView {
	out := make([]reviewView, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, reviewView{Review: r, Summary: r.String()})
	}
	return out
}

// GetReviews (GET /api/reviews?listing_id=&user_id=)
func (ctrl *ReviewController) GetReviews(c *gin.Context) {
	listingID, ok := optionalUUIDQuery(c, "listing_id")
	if !ok {
		return
	}
	userID, ok := optionalUintQuery(c, "user_id")
	if !ok {
		return
	}
	p := utils.GetPagination(c)

	reviews, err := ctrl.ReviewSvc.List(c.Request.Context(), services.ReviewFilter{
		ListingID: listingID,
		UserID:    userID,
		Page:      page(p),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONPage(c, http.StatusOK, viewReviews(reviews), p)
}

// CreateReview (POST /api/reviews)
func (ctrl *ReviewController) CreateReview(c *gin.Context) {
	var in services.CreateReviewInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid review payload: "+err.Error())
		return
	}

	review, err := ctrl.ReviewSvc.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, review)
}

// GetReview (GET /api/reviews/:id)
func (ctrl *ReviewController) GetReview(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	review, err := ctrl.ReviewSvc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reviewView{Review: review, Summary: review.String()})
}
