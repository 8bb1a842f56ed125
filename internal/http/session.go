package http

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/babyshop/storefront/internal/cart"
)

const sessionCookieName = "storefront_session"

type ctxKey int

const sessionIDKey ctxKey = iota

// withSession resolves the browser's session cookie, minting a new session
// id on first contact, and touches the session so it stays alive. The cart
// itself is looked up by handlers via the manager.
func withSession(sessions *cart.SessionManager, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sid string
		if c, err := r.Cookie(sessionCookieName); err == nil && c.Value != "" {
			sid = c.Value
		} else {
			sid = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookieName,
				Value:    sid,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		sessions.GetOrCreate(sid)

		ctx := context.WithValue(r.Context(), sessionIDKey, sid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionID(r *http.Request) string {
	sid, _ := r.Context().Value(sessionIDKey).(string)
	return sid
}
