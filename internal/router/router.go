package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/trailhead-dev/trailhead/internal/handlers"
	"github.com/trailhead-dev/trailhead/internal/httperr"
	"github.com/trailhead-dev/trailhead/internal/middleware"
	"github.com/trailhead-dev/trailhead/internal/session"
	"github.com/trailhead-dev/trailhead/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(httperr.Reporter())
	r.Use(session.LoadFlash())

	r.NoRoute(httperr.NoRoute)

	r.GET("/", func(ctx *gin.Context) {
		ctx.Redirect(http.StatusFound, "/campgrounds")
	})
	r.GET("/health", handlers.HealthCheck)

	r.GET("/register", handlers.RenderRegister)
	r.POST("/register", handlers.Register)
	r.GET("/login", handlers.RenderLogin)
	r.POST("/login", handlers.Login)
	r.GET("/logout", handlers.Logout)
	r.GET("/me", middleware.RequireAuth(), handlers.Me)

	campgrounds := r.Group("/campgrounds")
	{
		campgrounds.GET("", handlers.ListCampgrounds)
		campgrounds.GET("/new", middleware.RequireAuth(), handlers.NewCampgroundForm)
		campgrounds.POST("",
			middleware.RequireAuth(),
			middleware.ValidateCampgroundInput(),
			handlers.CreateCampground)

		campgrounds.GET("/:id", handlers.ShowCampground)
		campgrounds.GET("/:id/edit",
			middleware.RequireAuth(),
			middleware.RequireCampgroundAuthor(),
			handlers.EditCampgroundForm)
		campgrounds.PUT("/:id",
			middleware.RequireAuth(),
			middleware.RequireCampgroundAuthor(),
			middleware.ValidateCampgroundInput(),
			handlers.UpdateCampground)
		campgrounds.DELETE("/:id",
			middleware.RequireAuth(),
			middleware.RequireCampgroundAuthor(),
			handlers.DeleteCampground)

		campgrounds.POST("/:id/reviews",
			middleware.RequireAuth(),
			middleware.ValidateReviewInput(),
			handlers.CreateReview)
		campgrounds.DELETE("/:id/reviews/:reviewId",
			middleware.RequireAuth(),
			middleware.RequireReviewAuthor(),
			handlers.DeleteReview)
	}

	return r
}
