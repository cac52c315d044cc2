package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/trailhead-dev/trailhead/db"
	"github.com/trailhead-dev/trailhead/internal/httperr"
	"github.com/trailhead-dev/trailhead/internal/models"
	"github.com/trailhead-dev/trailhead/internal/session"
	"github.com/trailhead-dev/trailhead/internal/store"
	"github.com/trailhead-dev/trailhead/internal/utils"
	"gorm.io/gorm"
)

type ReviewResponse struct {
	ID        uint           `json:"id"`
	Rating    int            `json:"rating"`
	Body      string         `json:"body"`
	Author    AuthorResponse `json:"author"`
	CreatedAt time.Time      `json:"created_at"`
}

func CreateReview(ctx *gin.Context) {
	input, err := utils.GetReviewInput(ctx)

	if err != nil {
		httperr.Abort(ctx, httperr.Store("Missing validated input", err))
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	campgroundID, err := utils.GetCampgroundID(ctx)

	if err != nil {
		httperr.Abort(ctx, httperr.Validation("Invalid campground ID"))
		return
	}

	// The review only exists in the context of a live parent.
	var campground models.Campground

	if err := db.DB.First(&campground, "id = ?", campgroundID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Abort(ctx, httperr.NotFound("Cannot find that campground"))
		} else {
			httperr.Abort(ctx, httperr.Store("Failed to retrieve campground", err))
		}
		return
	}

	review := models.Review{
		CampgroundID: campground.ID,
		AuthorID:     userID,
		Rating:       input.Rating,
		Body:         input.Body,
	}

	if err := db.DB.Create(&review).Error; err != nil {
		httperr.Abort(ctx, httperr.Store("Failed to create review", err))
		return
	}

	session.SetFlash(ctx, "success", "Created new review!")
	ctx.Redirect(http.StatusFound, fmt.Sprintf("/campgrounds/%d", campground.ID))
}

func DeleteReview(ctx *gin.Context) {
	campgroundID, err := utils.GetCampgroundID(ctx)

	if err != nil {
		httperr.Abort(ctx, httperr.Validation("Invalid campground ID"))
		return
	}

	reviewID, err := utils.GetReviewID(ctx)

	if err != nil {
		httperr.Abort(ctx, httperr.Validation("Invalid review ID"))
		return
	}

	if err := store.DeleteReview(db.DB, campgroundID, reviewID); err != nil {
		switch {
		case errors.Is(err, store.ErrCampgroundNotFound):
			httperr.Abort(ctx, httperr.NotFound("Cannot find that campground"))
		case errors.Is(err, store.ErrReviewNotFound):
			httperr.Abort(ctx, httperr.NotFound("Cannot find that review"))
		default:
			httperr.Abort(ctx, httperr.Store("Failed to delete review", err))
		}
		return
	}

	session.SetFlash(ctx, "success", "Successfully deleted review")
	ctx.Redirect(http.StatusFound, fmt.Sprintf("/campgrounds/%d", campgroundID))
}

func reviewResponse(review models.Review) ReviewResponse {
	return ReviewResponse{
		ID:     review.ID,
		Rating: review.Rating,
		Body:   review.Body,
		Author: AuthorResponse{
			ID:       review.Author.ID,
			Username: review.Author.Username,
		},
		CreatedAt: review.CreatedAt,
	}
}
