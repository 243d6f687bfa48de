package tracking

import (
	"context"
	"errors"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/shreeji-electro/catalog-finder/pkg/messaging"
	"github.com/shreeji-electro/catalog-finder/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	mu     sync.Mutex
	topics []messaging.ChangeTopic
	sent   []any
	err    error
}

func (f *fakePublisher) Publish(ctx context.Context, topic messaging.ChangeTopic, data any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.topics = append(f.topics, topic)
	f.sent = append(f.sent, data)
	return f.err
}

func (f *fakePublisher) Close() error { return nil }

func TestRabbitTrackingFlushesOnClose(t *testing.T) {
	pub := &fakePublisher{}
	rt := NewRabbitTracking(pub, "in")
	r := httptest.NewRequest("GET", "/api/listing", nil)
	r.Header.Set("X-Real-Ip", "1.2.3.4")

	rt.TrackSession("sid", r)
	rt.TrackSearch("sid", &types.ListingRequest{Query: "cable", Brands: []string{"POLYCAB"}, Page: 2}, 7, r)
	rt.TrackProductView("sid", types.ProductKey{Brand: "POLYCAB", Name: "Elanza"}, r)
	require.NoError(t, rt.Close())

	require.Len(t, pub.sent, 3)
	session, ok := pub.sent[0].(*Session)
	require.True(t, ok)
	assert.Equal(t, "1.2.3.4", session.Ip)
	assert.Equal(t, "in", session.Country)
	search, ok := pub.sent[1].(*SearchEventData)
	require.True(t, ok)
	assert.Equal(t, EventSearch, search.Event)
	assert.Equal(t, 7, search.NumberOfResults)
	assert.Equal(t, 2, search.Page)
	view, ok := pub.sent[2].(*ProductViewEvent)
	require.True(t, ok)
	assert.Equal(t, "Elanza", view.Name)
	for _, topic := range pub.topics {
		assert.Equal(t, messaging.TrackingTopic, topic)
	}
}

func TestTrackActionReturnsPublishError(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker down")}
	rt := NewRabbitTracking(pub, "in")
	defer rt.Close()
	err := rt.TrackAction("sid", types.TrackingAction{Action: "enquiry", Reason: "sent"})
	assert.Error(t, err)
	require.Len(t, pub.sent, 1)
	assert.Equal(t, "enquiry", pub.sent[0].(*ActionEvent).Action)
}

func TestLogTracking(t *testing.T) {
	var trk types.Tracking = LogTracking{}
	assert.NoError(t, trk.TrackAction("sid", types.TrackingAction{Action: "x"}))
	assert.NoError(t, trk.Close())
}
