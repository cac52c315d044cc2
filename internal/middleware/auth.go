package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/trailhead-dev/trailhead/db"
	"github.com/trailhead-dev/trailhead/internal/auth"
	"github.com/trailhead-dev/trailhead/internal/httperr"
	"github.com/trailhead-dev/trailhead/internal/models"
	"github.com/trailhead-dev/trailhead/internal/session"
	"github.com/trailhead-dev/trailhead/internal/types"
	"gorm.io/gorm"
)

type AuthenticatedUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// RequireAuth authenticates the request from the session cookie (or a Bearer
// header) and stashes the current user in the context. Unauthenticated
// requests are redirected to the login page with the original path remembered
// so login can resume there.
func RequireAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString := tokenFromRequest(ctx)

		if tokenString == "" {
			redirectToLogin(ctx)
			return
		}

		token, err := auth.VerifyJWT(tokenString)

		if err != nil || !token.Valid {
			redirectToLogin(ctx)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)

		if !ok {
			redirectToLogin(ctx)
			return
		}

		userIDFloat, ok := claims["user_id"].(float64)

		if !ok {
			redirectToLogin(ctx)
			return
		}

		userID := uint(userIDFloat)

		var user models.User

		if err := db.DB.Where("id = ?", userID).First(&user).Error; err != nil {
			redirectToLogin(ctx)
			return
		}

		ctx.Set(types.ContextUserKey, AuthenticatedUser{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		})
		ctx.Next()
	}
}

// RequireCampgroundAuthor loads the campground named by the :id parameter and
// lets the chain continue only when the current user is its author. A missing
// campground is a NotFound, never an authorization failure; a wrong author is
// bounced back to the campground's own page.
func RequireCampgroundAuthor() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		currentUser, ok := currentUser(ctx)

		if !ok {
			redirectToLogin(ctx)
			return
		}

		campgroundID := ctx.Param("id")

		var campground models.Campground

		if err := db.DB.First(&campground, "id = ?", campgroundID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httperr.Abort(ctx, httperr.NotFound("Cannot find that campground"))
			} else {
				httperr.Abort(ctx, httperr.Store("Failed to retrieve campground", err))
			}
			return
		}

		if campground.AuthorID != currentUser.ID {
			denyToCampground(ctx, campground.ID)
			return
		}

		ctx.Next()
	}
}

// RequireReviewAuthor is the ownership guard for the nested review routes,
// keyed by the :reviewId parameter.
func RequireReviewAuthor() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		currentUser, ok := currentUser(ctx)

		if !ok {
			redirectToLogin(ctx)
			return
		}

		reviewID := ctx.Param("reviewId")

		var review models.Review

		if err := db.DB.First(&review, "id = ?", reviewID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httperr.Abort(ctx, httperr.NotFound("Cannot find that review"))
			} else {
				httperr.Abort(ctx, httperr.Store("Failed to retrieve review", err))
			}
			return
		}

		if review.AuthorID != currentUser.ID {
			denyToCampground(ctx, review.CampgroundID)
			return
		}

		ctx.Next()
	}
}

func currentUser(ctx *gin.Context) (AuthenticatedUser, bool) {
	value, exists := ctx.Get(types.ContextUserKey)
	if !exists {
		return AuthenticatedUser{}, false
	}

	user, ok := value.(AuthenticatedUser)
	return user, ok
}

func tokenFromRequest(ctx *gin.Context) string {
	if cookie, err := ctx.Cookie(types.SessionCookieName); err == nil && cookie != "" {
		return cookie
	}

	authHeader := ctx.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}

	return ""
}

func redirectToLogin(ctx *gin.Context) {
	session.SetReturnTo(ctx, ctx.Request.URL.RequestURI())
	session.SetFlash(ctx, "error", "You must be signed in")
	ctx.Redirect(http.StatusFound, "/login")
	ctx.Abort()
}

func denyToCampground(ctx *gin.Context, campgroundID uint) {
	session.SetFlash(ctx, "error", "You do not have permission to do that!")
	ctx.Redirect(http.StatusFound, fmt.Sprintf("/campgrounds/%d", campgroundID))
	ctx.Abort()
}
