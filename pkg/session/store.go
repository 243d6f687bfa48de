package session

import (
	"context"
	"errors"
	"time"

	"github.com/shreeji-electro/catalog-finder/pkg/query"
	"github.com/shreeji-electro/catalog-finder/pkg/types"
)

const DefaultTTL = 30 * time.Minute

var ErrNoSession = errors.New("missing session id")

// Store keeps the per-session listing state and the product slot used to
// hand a clicked product over to the detail view. A missing entry is
// reported with ok=false, never as an error.
type Store interface {
	LoadListing(ctx context.Context, sessionId string) (*query.Selection, bool, error)
	SaveListing(ctx context.Context, sessionId string, state *query.Selection) error
	LoadSelected(ctx context.Context, sessionId string) (types.ProductKey, bool, error)
	SaveSelected(ctx context.Context, sessionId string, key types.ProductKey) error
	Clear(ctx context.Context, sessionId string) error
	Close() error
}

func listingKey(prefix, sessionId string) string {
	return prefix + "listing:" + sessionId
}

func selectedKey(prefix, sessionId string) string {
	return prefix + "selected:" + sessionId
}
