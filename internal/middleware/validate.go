package middleware

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/trailhead-dev/trailhead/internal/httperr"
	"github.com/trailhead-dev/trailhead/internal/types"
	"github.com/trailhead-dev/trailhead/internal/validation"
)

// ValidateCampgroundInput binds and validates the campground payload before
// the handler runs. A failed validation ends the chain with every field error
// in one message and no store writes.
func ValidateCampgroundInput() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var input validation.CampgroundInput

		priceInvalid, err := bindCampgroundInput(ctx, &input)
		if err != nil {
			httperr.Abort(ctx, httperr.Validation("Invalid request body"))
			return
		}

		result := validation.ValidateCampground(&input)

		if priceInvalid {
			result = result.WithFieldError("price", "price must be a number")
		}

		if !result.OK {
			httperr.Abort(ctx, httperr.Validation(result.Message))
			return
		}

		ctx.Set(types.ContextCampgroundInputKey, &input)
		ctx.Next()
	}
}

// ValidateReviewInput is the review counterpart.
func ValidateReviewInput() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var input validation.ReviewInput

		if err := ctx.ShouldBindJSON(&input); err != nil {
			httperr.Abort(ctx, httperr.Validation("Invalid request body"))
			return
		}

		result := validation.ValidateReview(&input)

		if !result.OK {
			httperr.Abort(ctx, httperr.Validation(result.Message))
			return
		}

		ctx.Set(types.ContextReviewInputKey, &input)
		ctx.Next()
	}
}

// bindCampgroundInput accepts either a JSON body or a multipart form (the
// create route carries image files alongside the fields). A missing or
// non-numeric price is not a bind failure; it is reported through the
// validation result so both content types surface the same field errors.
func bindCampgroundInput(ctx *gin.Context, input *validation.CampgroundInput) (priceInvalid bool, err error) {
	contentType := ctx.ContentType()

	if strings.HasPrefix(contentType, "multipart/form-data") {
		input.Title = ctx.PostForm("title")
		input.Description = ctx.PostForm("description")
		input.Location = ctx.PostForm("location")
		input.DeleteImages = ctx.PostFormArray("deleteImages")

		if raw := ctx.PostForm("price"); raw != "" {
			price, parseErr := strconv.ParseFloat(raw, 64)
			if parseErr != nil {
				return true, nil
			}
			input.Price = &price
		}

		return false, nil
	}

	return false, ctx.ShouldBindJSON(input)
}
