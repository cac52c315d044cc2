package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/trailhead-dev/trailhead/db"
	"github.com/trailhead-dev/trailhead/internal/auth"
	"github.com/trailhead-dev/trailhead/internal/models"
	"github.com/trailhead-dev/trailhead/internal/session"
	"github.com/trailhead-dev/trailhead/internal/types"
	"github.com/trailhead-dev/trailhead/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func RenderRegister(ctx *gin.Context) {
	renderView(ctx, gin.H{"view": "users/register"})
}

func RenderLogin(ctx *gin.Context) {
	renderView(ctx, gin.H{"view": "users/login"})
}

func Register(ctx *gin.Context) {
	var req RegisterRequest

	if err := ctx.BindJSON(&req); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var existingUser models.User

	err := db.DB.Where("username = ? OR email = ?", req.Username, req.Email).First(&existingUser).Error

	if err == nil {
		session.SetFlash(ctx, "error", "A user with that username or email already exists")
		ctx.Redirect(http.StatusFound, "/register")
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Database error when checking existing user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)

	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	newUser := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(passwordHash),
	}

	if err := db.DB.Create(&newUser).Error; err != nil {
		log.Printf("Failed to create user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := setSessionCookie(ctx, newUser); err != nil {
		log.Printf("Failed to generate JWT: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	session.SetFlash(ctx, "success", "Welcome to Trailhead!")
	ctx.Redirect(http.StatusFound, "/campgrounds")
}

func Login(ctx *gin.Context) {
	var req LoginRequest

	if err := ctx.BindJSON(&req); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var existingUser models.User

	err := db.DB.Where("username = ?", req.Username).First(&existingUser).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			session.SetFlash(ctx, "error", "Invalid username or password")
			ctx.Redirect(http.StatusFound, "/login")
			return
		}
		log.Printf("Database error when fetching user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	err = bcrypt.CompareHashAndPassword([]byte(existingUser.PasswordHash), []byte(req.Password))

	if err != nil {
		session.SetFlash(ctx, "error", "Invalid username or password")
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	if err := setSessionCookie(ctx, existingUser); err != nil {
		log.Printf("Failed to generate JWT: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	session.SetFlash(ctx, "success", "Welcome back!")
	ctx.Redirect(http.StatusFound, session.ConsumeReturnTo(ctx))
}

func Logout(ctx *gin.Context) {
	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     types.SessionCookieName,
		Value:    "",
		Path:     "/",
		Domain:   session.CookieDomain(),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	session.SetFlash(ctx, "success", "Goodbye")
	ctx.Redirect(http.StatusFound, "/")
}

func Me(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"user": types.UserResponse{
			ID:       currentUser.ID,
			Username: currentUser.Username,
			Email:    currentUser.Email,
		},
	})
}

func setSessionCookie(ctx *gin.Context, user models.User) error {
	token, err := auth.GenerateJWT(user.ID, user.Username)
	if err != nil {
		return err
	}

	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     types.SessionCookieName,
		Value:    token,
		Path:     "/",
		Domain:   session.CookieDomain(),
		MaxAge:   60 * 60 * 24 * 7,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

// renderView returns the view payload for a GET page, folding in any pending
// flash message.
func renderView(ctx *gin.Context, data gin.H) {
	if flash, ok := session.GetFlash(ctx); ok {
		data["flash"] = flash
	}

	ctx.JSON(http.StatusOK, data)
}
