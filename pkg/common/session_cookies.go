package common

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shreeji-electro/catalog-finder/pkg/types"
)

const SessionCookieName = "sid"

func generateSessionId() string {
	return uuid.NewString()
}

func setSessionCookie(w http.ResponseWriter, sessionId string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sessionId,
		SameSite: http.SameSiteLaxMode,
		HttpOnly: true,
		Path:     "/", // session cookie, storage ends with the browser session
	})
}

// HandleSessionCookie returns the session id from the sid cookie, issuing a new
// one when the cookie is missing or not a valid id.
func HandleSessionCookie(tracking types.Tracking, w http.ResponseWriter, r *http.Request) string {
	c, err := r.Cookie(SessionCookieName)
	if err == nil {
		if _, parseErr := uuid.Parse(c.Value); parseErr == nil {
			return c.Value
		}
	}
	sessionId := generateSessionId()
	if tracking != nil {
		go tracking.TrackSession(sessionId, r)
	}
	setSessionCookie(w, sessionId)
	return sessionId
}
