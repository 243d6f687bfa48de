package tracking

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shreeji-electro/catalog-finder/pkg/common"
	"github.com/shreeji-electro/catalog-finder/pkg/messaging"
	"github.com/shreeji-electro/catalog-finder/pkg/types"
)

const (
	EventSession uint16 = iota
	EventSearch
	EventProductView
	EventAction
)

type RabbitTracking struct {
	country   string
	publisher messaging.Publisher
	queue     *common.QueueHandler[any]
}

// NewRabbitTracking queues events and publishes them in batches off the
// request path. The publisher is owned by the caller.
func NewRabbitTracking(publisher messaging.Publisher, country string) *RabbitTracking {
	rt := &RabbitTracking{
		country:   country,
		publisher: publisher,
	}
	rt.queue = common.NewQueueHandler(rt.flush, 50, time.Second)
	return rt
}

func (rt *RabbitTracking) flush(items []any) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, item := range items {
		if err := rt.publisher.Publish(ctx, messaging.TrackingTopic, item); err != nil {
			log.Error().Err(err).Msg("error sending tracking event")
		}
	}
}

func (rt *RabbitTracking) Close() error {
	rt.queue.Close()
	return nil
}

func (rt *RabbitTracking) base(event uint16, sessionId string) *BaseEvent {
	return &BaseEvent{
		Event:     event,
		SessionId: sessionId,
		Country:   rt.country,
		Context:   "web",
		Timestamp: time.Now().Unix(),
	}
}

type BaseEvent struct {
	SessionId string `json:"session_id"`
	Country   string `json:"country,omitempty"`
	Context   string `json:"context,omitempty"`
	Event     uint16 `json:"event"`
	Timestamp int64  `json:"ts"`
}

type Session struct {
	*BaseEvent
	UserAgent    string `json:"user_agent,omitempty"`
	Ip           string `json:"ip,omitempty"`
	Language     string `json:"language,omitempty"`
	PragmaHeader string `json:"pragma,omitempty"`
}

func (rt *RabbitTracking) TrackSession(sessionId string, r *http.Request) {
	rt.queue.Add(&Session{
		BaseEvent:    rt.base(EventSession, sessionId),
		Language:     r.Header.Get("Accept-Language"),
		UserAgent:    r.UserAgent(),
		Ip:           common.ClientIp(r),
		PragmaHeader: r.Header.Get("Pragma"),
	})
}

type SearchEventData struct {
	*BaseEvent
	Query           string   `json:"query,omitempty"`
	Brands          []string `json:"brands,omitempty"`
	Categories      []string `json:"categories,omitempty"`
	Subcategories   []string `json:"subcategories,omitempty"`
	NumberOfResults int      `json:"noi"`
	Page            int      `json:"page"`
	Referer         string   `json:"referer,omitempty"`
}

func (rt *RabbitTracking) TrackSearch(sessionId string, query *types.ListingRequest, resultLen int, r *http.Request) {
	rt.queue.Add(&SearchEventData{
		BaseEvent:       rt.base(EventSearch, sessionId),
		Query:           query.Query,
		Brands:          query.Brands,
		Categories:      query.Categories,
		Subcategories:   query.Subcategories,
		NumberOfResults: resultLen,
		Page:            query.Page,
		Referer:         r.Header.Get("Referer"),
	})
}

type ProductViewEvent struct {
	*BaseEvent
	Brand string `json:"brand"`
	Name  string `json:"name"`
}

func (rt *RabbitTracking) TrackProductView(sessionId string, key types.ProductKey, r *http.Request) {
	rt.queue.Add(&ProductViewEvent{
		BaseEvent: rt.base(EventProductView, sessionId),
		Brand:     key.Brand,
		Name:      key.Name,
	})
}

type ActionEvent struct {
	*BaseEvent
	Action string `json:"action"`
	Reason string `json:"reason"`
}

// TrackAction publishes right away so the caller sees broker errors.
func (rt *RabbitTracking) TrackAction(sessionId string, value types.TrackingAction) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return rt.publisher.Publish(ctx, messaging.TrackingTopic, &ActionEvent{
		BaseEvent: rt.base(EventAction, sessionId),
		Action:    value.Action,
		Reason:    value.Reason,
	})
}
