package utils

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/trailhead-dev/trailhead/internal/middleware"
	"github.com/trailhead-dev/trailhead/internal/types"
	"github.com/trailhead-dev/trailhead/internal/validation"
)

func GetCurrentUser(ctx *gin.Context) (middleware.AuthenticatedUser, error) {
	user, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return middleware.AuthenticatedUser{}, fmt.Errorf("user not authenticated")
	}

	authenticatedUser, ok := user.(middleware.AuthenticatedUser)

	if !ok {
		return middleware.AuthenticatedUser{}, fmt.Errorf("invalid user type in context")
	}

	return authenticatedUser, nil
}

func GetCurrentUserID(ctx *gin.Context) (uint, error) {
	user, err := GetCurrentUser(ctx)

	if err != nil {
		return 0, err
	}

	return user.ID, nil
}

func GetCampgroundID(ctx *gin.Context) (uint, error) {
	return parseIDParam(ctx, "id")
}

func GetReviewID(ctx *gin.Context) (uint, error) {
	return parseIDParam(ctx, "reviewId")
}

// GetCampgroundInput returns the normalized input stashed by the validation
// middleware.
func GetCampgroundInput(ctx *gin.Context) (*validation.CampgroundInput, error) {
	value, exists := ctx.Get(types.ContextCampgroundInputKey)
	if !exists {
		return nil, fmt.Errorf("campground input missing from context")
	}

	input, ok := value.(*validation.CampgroundInput)
	if !ok {
		return nil, fmt.Errorf("invalid campground input type in context")
	}

	return input, nil
}

func GetReviewInput(ctx *gin.Context) (*validation.ReviewInput, error) {
	value, exists := ctx.Get(types.ContextReviewInputKey)
	if !exists {
		return nil, fmt.Errorf("review input missing from context")
	}

	input, ok := value.(*validation.ReviewInput)
	if !ok {
		return nil, fmt.Errorf("invalid review input type in context")
	}

	return input, nil
}

func parseIDParam(ctx *gin.Context, name string) (uint, error) {
	raw := ctx.Param(name)

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s parameter", name)
	}

	return uint(id), nil
}
