package server

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/rs/zerolog/log"
	"github.com/shreeji-electro/catalog-finder/pkg/common"
	"github.com/shreeji-electro/catalog-finder/pkg/common/jsoncompat"
	"github.com/shreeji-electro/catalog-finder/pkg/listing"
)

const (
	liveIdleTimeout  = 10 * time.Minute
	liveWriteTimeout = 10 * time.Second
)

type liveMessage struct {
	Type  string        `json:"type"`
	View  *listing.View `json:"view,omitempty"`
	Error string        `json:"error,omitempty"`
}

// liveSession serves one websocket. Search events wait for the debounce
// period and a newer keystroke replaces the pending one; any other event
// first applies a pending search and then runs at once.
type liveSession struct {
	ws        *WebServer
	r         *http.Request
	sessionId string
	conn      net.Conn
	debouncer *common.Debouncer

	writeMu sync.Mutex
	applyMu sync.Mutex
	mu      sync.Mutex
	pending *listing.Event
}

func (ws *WebServer) Live(w http.ResponseWriter, r *http.Request) {
	sessionId := common.HandleSessionCookie(ws.Tracking, w, r)
	upgrader := newUpgrader(w.Header())
	conn, _, _, err := upgrader.Upgrade(r, w)
	if err != nil {
		log.Debug().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()
	// drop the deadlines the http server set for the upgrade request
	conn.SetDeadline(time.Time{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := &liveSession{
		ws:        ws,
		r:         r,
		sessionId: sessionId,
		conn:      conn,
		debouncer: common.NewDebouncer(ws.Debounce),
	}
	defer l.debouncer.Cancel()

	view, err := ws.Listing.Open(ctx, sessionId, r.URL.Query().Get("brand"))
	if err != nil {
		l.writeError(err)
		return
	}
	if err = l.write(liveMessage{Type: "view", View: &view}); err != nil {
		return
	}
	l.serve(ctx)
}

// newUpgrader copies the response headers, including the session cookie,
// into the handshake response.
func newUpgrader(header http.Header) ws.HTTPUpgrader {
	return ws.HTTPUpgrader{Header: header}
}

func (l *liveSession) serve(ctx context.Context) {
	for {
		l.conn.SetReadDeadline(time.Now().Add(liveIdleTimeout))
		data, op, err := wsutil.ReadClientData(l.conn)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				var closed wsutil.ClosedError
				if !errors.As(err, &closed) {
					log.Debug().Err(err).Str("session", l.sessionId).Msg("live connection closed")
				}
			}
			return
		}
		if op != ws.OpText {
			continue
		}
		var ev listing.Event
		if err = jsoncompat.Unmarshal(data, &ev); err != nil {
			l.writeError(badRequest(err))
			continue
		}
		l.handle(ctx, ev)
	}
}

func (l *liveSession) handle(ctx context.Context, ev listing.Event) {
	if ev.Kind == listing.EventSearch {
		l.mu.Lock()
		l.pending = &ev
		l.mu.Unlock()
		l.debouncer.Trigger(func() { l.flushPending(ctx) })
		return
	}
	l.debouncer.Cancel()
	l.applyMu.Lock()
	defer l.applyMu.Unlock()
	l.takeAndApply(ctx)
	l.apply(ctx, ev)
}

func (l *liveSession) flushPending(ctx context.Context) {
	l.applyMu.Lock()
	defer l.applyMu.Unlock()
	l.takeAndApply(ctx)
}

// takeAndApply runs the pending search, if any. Callers hold applyMu.
func (l *liveSession) takeAndApply(ctx context.Context) {
	l.mu.Lock()
	ev := l.pending
	l.pending = nil
	l.mu.Unlock()
	if ev != nil {
		l.apply(ctx, *ev)
	}
}

// apply runs one event and writes the resulting view. Callers hold applyMu.
func (l *liveSession) apply(ctx context.Context, ev listing.Event) {
	if ctx.Err() != nil {
		return
	}
	view, err := l.ws.applyEvent(l.r, l.sessionId, ev)
	if err != nil {
		l.writeError(err)
		return
	}
	l.write(liveMessage{Type: "view", View: &view})
}

func (l *liveSession) writeError(err error) {
	message := "internal error"
	var se *common.StatusError
	if errors.As(err, &se) {
		message = se.Message
	} else {
		log.Error().Err(err).Str("session", l.sessionId).Msg("live listing failed")
	}
	l.write(liveMessage{Type: "error", Error: message})
}

func (l *liveSession) write(msg liveMessage) error {
	data, err := jsoncompat.Marshal(msg)
	if err != nil {
		return err
	}
	l.writeMu.Lock()
	defer l.writeMu.Unlock()
	l.conn.SetWriteDeadline(time.Now().Add(liveWriteTimeout))
	return wsutil.WriteServerMessage(l.conn, ws.OpText, data)
}
