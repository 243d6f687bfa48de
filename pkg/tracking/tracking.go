package tracking

import (
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/shreeji-electro/catalog-finder/pkg/types"
)

// LogTracking writes events to the debug log when no broker is configured.
type LogTracking struct{}

func (LogTracking) TrackSession(sessionId string, r *http.Request) {
	log.Debug().Str("session", sessionId).Str("agent", r.UserAgent()).Msg("new session")
}

func (LogTracking) TrackSearch(sessionId string, query *types.ListingRequest, resultLen int, r *http.Request) {
	log.Debug().Str("session", sessionId).Str("query", query.Query).Strs("brands", query.Brands).Int("results", resultLen).Msg("search")
}

func (LogTracking) TrackProductView(sessionId string, key types.ProductKey, r *http.Request) {
	log.Debug().Str("session", sessionId).Str("product", key.String()).Msg("product view")
}

func (LogTracking) TrackAction(sessionId string, value types.TrackingAction) error {
	log.Debug().Str("session", sessionId).Str("action", value.Action).Str("reason", value.Reason).Msg("action")
	return nil
}

func (LogTracking) Close() error {
	return nil
}
