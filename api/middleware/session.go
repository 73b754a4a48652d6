package middleware

import (
	"net/http"
	"regexp"

	"github.com/angelmondragon/kitcart/pkg/config"
	"github.com/angelmondragon/kitcart/pkg/logger"
	"github.com/google/uuid"
)

// SessionHeader lets non-browser clients pin a cart session without cookies.
const SessionHeader = "X-Cart-Session"

var sessionPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{8,128}$`)

// Session resolves the cart session from the header or cookie, issuing a new one when
// neither carries a usable id. The id is echoed back on both channels.
func Session(cfg config.SessionConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	cookieName := cfg.CookieName
	if cookieName == "" {
		cookieName = "kitcart_session"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := r.Header.Get(SessionHeader)
			if sessionID == "" {
				if cookie, err := r.Cookie(cookieName); err == nil {
					sessionID = cookie.Value
				}
			}
			if !sessionPattern.MatchString(sessionID) {
				sessionID = uuid.NewString()
			}

			http.SetCookie(w, &http.Cookie{
				Name:     cookieName,
				Value:    sessionID,
				Path:     "/",
				MaxAge:   int(cfg.CookieMaxAge.Seconds()),
				HttpOnly: true,
				Secure:   cfg.CookieSecure,
				SameSite: http.SameSiteLaxMode,
			})
			w.Header().Set(SessionHeader, sessionID)

			ctx := WithSessionID(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
