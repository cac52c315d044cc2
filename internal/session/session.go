// Package session holds the request-scoped cookie state: the transient flash
// message shown after a redirect and the single-slot return-to path captured
// when an unauthenticated request is bounced to the login page. Nothing here
// is process-global; each request reads and clears its own cookies.
package session

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/trailhead-dev/trailhead/internal/types"
)

var cookieDomain string

// SetCookieDomain sets the domain stamped on every cookie this package and
// the auth handlers issue. Empty means host-only cookies.
func SetCookieDomain(domain string) {
	cookieDomain = domain
}

// CookieDomain returns the configured cookie domain.
func CookieDomain() string {
	return cookieDomain
}

type Flash struct {
	Kind    string `json:"kind"` // "success" or "error"
	Message string `json:"message"`
}

const contextFlashKey = "flash"

// SetFlash queues a one-shot message for the next request.
func SetFlash(ctx *gin.Context, kind, message string) {
	payload, err := json.Marshal(Flash{Kind: kind, Message: message})
	if err != nil {
		return
	}

	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     types.FlashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(payload),
		Path:     "/",
		Domain:   cookieDomain,
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// LoadFlash is middleware that moves a pending flash cookie into the request
// context and clears it, so a message is shown at most once.
func LoadFlash() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		raw, err := ctx.Cookie(types.FlashCookieName)
		if err == nil && raw != "" {
			decoded, err := base64.RawURLEncoding.DecodeString(raw)
			if err == nil {
				var flash Flash
				if err := json.Unmarshal(decoded, &flash); err == nil {
					ctx.Set(contextFlashKey, flash)
				}
			}
			clearCookie(ctx, types.FlashCookieName)
		}
		ctx.Next()
	}
}

// GetFlash returns the flash loaded for this request, if any.
func GetFlash(ctx *gin.Context) (Flash, bool) {
	value, exists := ctx.Get(contextFlashKey)
	if !exists {
		return Flash{}, false
	}

	flash, ok := value.(Flash)
	return flash, ok
}

// SetReturnTo remembers the originally requested path so login can resume
// there. Single slot: a later write overwrites an earlier one.
func SetReturnTo(ctx *gin.Context, path string) {
	if !strings.HasPrefix(path, "/") {
		return
	}

	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     types.ReturnToCookieName,
		Value:    base64.RawURLEncoding.EncodeToString([]byte(path)),
		Path:     "/",
		Domain:   cookieDomain,
		MaxAge:   60 * 10,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ConsumeReturnTo returns the stored path and clears the slot. Defaults to
// /campgrounds when nothing was stored.
func ConsumeReturnTo(ctx *gin.Context) string {
	raw, err := ctx.Cookie(types.ReturnToCookieName)
	if err != nil || raw == "" {
		return "/campgrounds"
	}

	clearCookie(ctx, types.ReturnToCookieName)

	decoded, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil || !strings.HasPrefix(string(decoded), "/") {
		return "/campgrounds"
	}

	return string(decoded)
}

func clearCookie(ctx *gin.Context, name string) {
	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   cookieDomain,
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
