package common

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shreeji-electro/catalog-finder/pkg/common/jsoncompat"
	"github.com/shreeji-electro/catalog-finder/pkg/types"
)

type HandlerFunc func(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error

// StatusError carries the HTTP status a handler wants reported to the client.
type StatusError struct {
	Status  int
	Message string
	Err     error
}

func (e *StatusError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

func NewStatusError(status int, message string, err error) error {
	return &StatusError{Status: status, Message: message, Err: err}
}

type errorBody struct {
	Error string `json:"error"`
}

func JsonHandler(trk types.Tracking, fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			RespondToOptions(w, r)
			return
		}
		sessionId := HandleSessionCookie(trk, w, r)
		w.Header().Set("Content-Type", "application/json")
		setCorsHeaders(w, r)

		err := fn(w, r, sessionId, jsoncompat.NewEncoder(w))
		if err != nil {
			status := http.StatusInternalServerError
			message := "internal error"
			var se *StatusError
			if errors.As(err, &se) {
				status = se.Status
				message = se.Message
			}
			if status >= http.StatusInternalServerError {
				log.Error().Err(err).Str("path", r.URL.Path).Msg("error handling request")
			} else {
				log.Debug().Err(err).Str("path", r.URL.Path).Int("status", status).Msg("request rejected")
			}
			WriteError(w, status, message)
		}
	}
}

// WriteError writes a JSON error body. It is a no-op on the body when the
// handler already started writing.
func WriteError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = jsoncompat.NewEncoder(w).Encode(errorBody{Error: message})
}

var allowedOrigins = []string{"*"}

// AllowOrigins limits the origins echoed in CORS responses. "*" allows any
// origin. Call it before serving.
func AllowOrigins(origins ...string) {
	allowedOrigins = origins
}

func corsOrigin(r *http.Request) string {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return origin
		}
	}
	return ""
}

func setCorsHeaders(w http.ResponseWriter, r *http.Request) {
	if origin := corsOrigin(r); origin != "" {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
	}
}

func RespondToOptions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if origin := corsOrigin(r); origin != "" {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Max-Age", "86400")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
	}
	w.Header().Set("Age", "0")
	w.WriteHeader(http.StatusAccepted)
}
