package listing

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shreeji-electro/catalog-finder/pkg/query"
	"github.com/shreeji-electro/catalog-finder/pkg/session"
	"github.com/shreeji-electro/catalog-finder/pkg/types"
)

var (
	ErrUnknownEvent    = errors.New("unknown listing event")
	ErrProductNotFound = errors.New("product not found")
)

type ProductSource interface {
	GetAllProducts() []*types.Product
	GetProduct(key types.ProductKey) (*types.Product, bool)
	GetProductByName(name string) (*types.Product, bool)
}

type EventKind string

const (
	EventBrand       EventKind = "brand"
	EventCategory    EventKind = "category"
	EventSubcategory EventKind = "subcategory"
	EventSearch      EventKind = "search"
	EventPage        EventKind = "page"
	EventRemoveChip  EventKind = "removeChip"
	EventClear       EventKind = "clear"
	EventReset       EventKind = "reset"
)

// Event is one user interaction with the listing. Value holds the brand,
// category, subcategory label or search text; Category is set for
// subcategory events.
type Event struct {
	Kind     EventKind   `json:"type"`
	Value    string      `json:"value,omitempty"`
	Category string      `json:"category,omitempty"`
	Page     int         `json:"page,omitempty"`
	Chip     *query.Chip `json:"chip,omitempty"`
}

type View struct {
	query.Result
	Selection *query.Selection `json:"selection"`
}

type Controller struct {
	source ProductSource
	engine *query.Engine
	store  session.Store
}

func NewController(source ProductSource, engine *query.Engine, store session.Store) *Controller {
	return &Controller{source: source, engine: engine, store: store}
}

func (c *Controller) Engine() *query.Engine {
	return c.engine
}

func (c *Controller) evaluate(sel *query.Selection) View {
	return View{
		Result:    c.engine.Search(c.source.GetAllProducts(), sel),
		Selection: sel,
	}
}

// Query evaluates a stateless request without touching any session.
func (c *Controller) Query(req *types.ListingRequest) View {
	return c.evaluate(query.SelectionFromRequest(c.engine.Taxonomy(), req))
}

func (c *Controller) load(ctx context.Context, sessionId string) (*query.Selection, error) {
	sel, found, err := c.store.LoadListing(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if !found {
		return query.NewSelection(), nil
	}
	if sel.Prune(c.engine.Taxonomy()) {
		log.Info().Str("session", sessionId).Msg("dropped stale filters from stored listing")
	}
	return sel, nil
}

// Open restores the listing of a session. A brand given in the url replaces
// whatever was stored.
func (c *Controller) Open(ctx context.Context, sessionId string, urlBrand string) (View, error) {
	var sel *query.Selection
	if urlBrand != "" {
		sel = query.NewSelection()
		sel.SetBrands(c.engine.Taxonomy(), []string{urlBrand})
	} else {
		var err error
		if sel, err = c.load(ctx, sessionId); err != nil {
			return View{}, err
		}
	}
	if err := c.store.SaveListing(ctx, sessionId, sel); err != nil {
		return View{}, err
	}
	return c.evaluate(sel), nil
}

func (c *Controller) apply(sel *query.Selection, ev Event) error {
	tax := c.engine.Taxonomy()
	switch ev.Kind {
	case EventBrand:
		sel.ToggleBrand(tax, ev.Value)
	case EventCategory:
		sel.ToggleCategory(tax, ev.Value)
	case EventSubcategory:
		sel.ToggleSubcategory(tax, ev.Category, ev.Value)
	case EventSearch:
		sel.SetSearch(ev.Value)
	case EventPage:
		sel.SetPage(ev.Page)
	case EventRemoveChip:
		if ev.Chip == nil {
			return fmt.Errorf("%w: removeChip without chip", ErrUnknownEvent)
		}
		sel.RemoveChip(tax, *ev.Chip)
	case EventClear:
		sel.ClearFilters()
	case EventReset:
		sel.Reset()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Kind)
	}
	return nil
}

// Apply runs one event against the stored selection, persists the result
// and evaluates it. The last writer wins when a session sends concurrently.
func (c *Controller) Apply(ctx context.Context, sessionId string, ev Event) (View, error) {
	sel, err := c.load(ctx, sessionId)
	if err != nil {
		return View{}, err
	}
	if err = c.apply(sel, ev); err != nil {
		return View{}, err
	}
	if err = c.store.SaveListing(ctx, sessionId, sel); err != nil {
		return View{}, err
	}
	return c.evaluate(sel), nil
}

// Select remembers the product a session clicked on in the listing.
func (c *Controller) Select(ctx context.Context, sessionId string, key types.ProductKey) (*types.Product, error) {
	p, ok := c.source.GetProduct(key)
	if !ok {
		return nil, ErrProductNotFound
	}
	return p, c.store.SaveSelected(ctx, sessionId, p.Key())
}

type ResolveRequest struct {
	Key  types.ProductKey
	Name string
}

// Resolve finds the product for the detail view. A stable key always wins;
// a bare name first checks the remembered product of the session and then
// falls back to the catalog name lookup.
func (c *Controller) Resolve(ctx context.Context, sessionId string, req ResolveRequest) (*types.Product, error) {
	if !req.Key.IsZero() {
		if p, ok := c.source.GetProduct(req.Key); ok {
			return p, nil
		}
		return nil, ErrProductNotFound
	}
	if req.Name == "" {
		return nil, ErrProductNotFound
	}
	slot, found, err := c.store.LoadSelected(ctx, sessionId)
	if err != nil {
		log.Warn().Err(err).Str("session", sessionId).Msg("could not read selected product")
	} else if found && types.EqualFold(slot.Name, req.Name) {
		if p, ok := c.source.GetProduct(slot); ok {
			return p, nil
		}
	}
	if p, ok := c.source.GetProductByName(req.Name); ok {
		return p, nil
	}
	return nil, ErrProductNotFound
}
