package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildFlashApp() *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(LoadFlash())

	r.GET("/set", func(ctx *gin.Context) {
		SetFlash(ctx, "success", "it worked")
		ctx.Status(http.StatusOK)
	})

	r.GET("/read", func(ctx *gin.Context) {
		flash, ok := GetFlash(ctx)
		if !ok {
			ctx.JSON(http.StatusOK, gin.H{"flash": nil})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"kind": flash.Kind, "message": flash.Message})
	})

	return r
}

func TestFlashShownExactlyOnce(t *testing.T) {
	app := buildFlashApp()

	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/set", nil))

	var flashCookie *http.Cookie
	for _, cookie := range resp.Result().Cookies() {
		if cookie.Name == "flash" {
			flashCookie = cookie
		}
	}
	require.NotNil(t, flashCookie)

	// First read carries the message and clears the cookie.
	req := httptest.NewRequest(http.MethodGet, "/read", nil)
	req.AddCookie(flashCookie)
	resp = httptest.NewRecorder()
	app.ServeHTTP(resp, req)

	assert.Contains(t, resp.Body.String(), "it worked")

	cleared := false
	for _, cookie := range resp.Result().Cookies() {
		if cookie.Name == "flash" && cookie.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "flash cookie must be cleared after one read")

	// A request without the cookie sees nothing.
	resp = httptest.NewRecorder()
	app.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/read", nil))
	assert.Contains(t, resp.Body.String(), "null")
}

func TestReturnToSingleSlotLastWriteWins(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/bounce", func(ctx *gin.Context) {
		SetReturnTo(ctx, "/first")
		SetReturnTo(ctx, "/second")
		ctx.Status(http.StatusOK)
	})
	r.GET("/resume", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, ConsumeReturnTo(ctx))
	})

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/bounce", nil))

	var returnTo *http.Cookie
	for _, cookie := range resp.Result().Cookies() {
		if cookie.Name == "return_to" && cookie.MaxAge > 0 {
			returnTo = cookie
		}
	}
	require.NotNil(t, returnTo)

	req := httptest.NewRequest(http.MethodGet, "/resume", nil)
	req.AddCookie(returnTo)
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, "/second", resp.Body.String())
}

func TestConsumeReturnToDefaults(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/resume", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, ConsumeReturnTo(ctx))
	})

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/resume", nil))

	assert.Equal(t, "/campgrounds", resp.Body.String())
}

func TestConfiguredCookieDomainIsStamped(t *testing.T) {
	gin.SetMode(gin.TestMode)

	SetCookieDomain("trailhead.example.com")
	t.Cleanup(func() { SetCookieDomain("") })

	require.Equal(t, "trailhead.example.com", CookieDomain())

	r := gin.New()
	r.GET("/set", func(ctx *gin.Context) {
		SetFlash(ctx, "success", "hello")
		SetReturnTo(ctx, "/campgrounds/new")
		ctx.Status(http.StatusOK)
	})

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/set", nil))

	cookies := resp.Result().Cookies()
	require.NotEmpty(t, cookies)
	for _, cookie := range cookies {
		assert.Equal(t, "trailhead.example.com", cookie.Domain, "cookie %q", cookie.Name)
	}
}

func TestSetReturnToRejectsExternalTargets(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/bounce", func(ctx *gin.Context) {
		SetReturnTo(ctx, "https://evil.example.com/phish")
		ctx.Status(http.StatusOK)
	})

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/bounce", nil))

	for _, cookie := range resp.Result().Cookies() {
		assert.NotEqual(t, "return_to", cookie.Name)
	}
}
