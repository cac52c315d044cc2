package httperr

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Reporter renders the first error attached to the context as the response.
// Every failure that is not recovered by a guard funnels through here so the
// status and message come from exactly one place.
func Reporter() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Next()

		if len(ctx.Errors) == 0 {
			return
		}

		err := ctx.Errors[0].Err

		var appErr *Error
		if !errors.As(err, &appErr) {
			appErr = &Error{
				Status:  http.StatusInternalServerError,
				Message: "Something went wrong",
				Err:     err,
			}
		}

		if appErr.Err != nil {
			log.Printf("%s %s: %v", ctx.Request.Method, ctx.Request.URL.Path, appErr.Err)
		}

		if appErr.Message == "" {
			appErr.Message = "Something went wrong"
		}

		if appErr.Status == 0 {
			appErr.Status = http.StatusInternalServerError
		}

		if !ctx.Writer.Written() {
			ctx.JSON(appErr.Status, gin.H{"error": appErr.Message})
		}
	}
}

// NoRoute handles requests that match no registered route.
func NoRoute(ctx *gin.Context) {
	Abort(ctx, NotFound("Page not found"))
}
