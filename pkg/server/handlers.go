package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/shreeji-electro/catalog-finder/pkg/catalog"
	"github.com/shreeji-electro/catalog-finder/pkg/common"
	"github.com/shreeji-electro/catalog-finder/pkg/common/jsoncompat"
	"github.com/shreeji-electro/catalog-finder/pkg/enquiry"
	"github.com/shreeji-electro/catalog-finder/pkg/family"
	"github.com/shreeji-electro/catalog-finder/pkg/listing"
	"github.com/shreeji-electro/catalog-finder/pkg/specs"
	"github.com/shreeji-electro/catalog-finder/pkg/types"
)

const (
	defaultSimilarLimit = 4
	maxSimilarLimit     = 24
	suggestLimit        = 10
)

func badRequest(err error) error {
	return common.NewStatusError(http.StatusBadRequest, "bad request", err)
}

func notFound(what string) error {
	return common.NewStatusError(http.StatusNotFound, what+" not found", nil)
}

func intParam(r *http.Request, name string, fallback int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return fallback
	}
	return v
}

func (ws *WebServer) Products(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	req, err := types.GetListingRequest(r)
	if err != nil {
		return badRequest(err)
	}
	view := ws.Listing.Query(req)
	if !req.SkipTracking && ws.Tracking != nil {
		go ws.Tracking.TrackSearch(sessionId, req, view.Total, r)
	}
	w.Header().Set("Cache-Control", "public, stale-while-revalidate=120")
	return enc.Encode(view)
}

func (ws *WebServer) OpenListing(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	view, err := ws.Listing.Open(r.Context(), sessionId, r.URL.Query().Get("brand"))
	if err != nil {
		return err
	}
	return enc.Encode(view)
}

func (ws *WebServer) applyEvent(r *http.Request, sessionId string, ev listing.Event) (listing.View, error) {
	view, err := ws.Listing.Apply(r.Context(), sessionId, ev)
	if errors.Is(err, listing.ErrUnknownEvent) {
		return view, badRequest(err)
	}
	if err == nil && ev.Kind == listing.EventSearch && ws.Tracking != nil {
		go ws.Tracking.TrackSearch(sessionId, view.Selection.Request(), view.Total, r)
	}
	return view, err
}

func (ws *WebServer) ListingEvent(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	if r.Method != http.MethodPost {
		return common.NewStatusError(http.StatusMethodNotAllowed, "method not allowed", nil)
	}
	var ev listing.Event
	if err := jsoncompat.NewDecoder(r.Body).Decode(&ev); err != nil {
		return badRequest(err)
	}
	view, err := ws.applyEvent(r, sessionId, ev)
	if err != nil {
		return err
	}
	return enc.Encode(view)
}

type ProductDetail struct {
	*types.Product
	Attributes     []types.Attribute   `json:"attributeList"`
	Features       []string            `json:"features"`
	Images         []string            `json:"images"`
	Certifications []string            `json:"certificationList"`
	Standards      []string            `json:"standardList"`
	Specification  specs.Specification `json:"specification"`
	Similar        []types.ProductKey  `json:"similar"`
}

func (ws *WebServer) detail(p *types.Product) ProductDetail {
	similar := ws.Catalog.GetSimilarProducts(p, defaultSimilarLimit)
	keys := make([]types.ProductKey, 0, len(similar))
	for _, s := range similar {
		keys = append(keys, s.Key())
	}
	return ProductDetail{
		Product:        p,
		Attributes:     p.Attributes(),
		Features:       p.Features(),
		Images:         p.Images(),
		Certifications: p.CertificationList(),
		Standards:      p.StandardList(),
		Specification:  specs.Parse(p.Specifications),
		Similar:        keys,
	}
}

func (ws *WebServer) resolve(r *http.Request, sessionId string, req listing.ResolveRequest) (*types.Product, error) {
	p, err := ws.Listing.Resolve(r.Context(), sessionId, req)
	if errors.Is(err, listing.ErrProductNotFound) {
		productLookups.WithLabelValues("miss").Inc()
		return nil, notFound("product")
	}
	if err != nil {
		return nil, err
	}
	productLookups.WithLabelValues("hit").Inc()
	if ws.Tracking != nil {
		go ws.Tracking.TrackProductView(sessionId, p.Key(), r)
	}
	return p, nil
}

func pathKey(r *http.Request) types.ProductKey {
	return types.ProductKey{Brand: r.PathValue("brand"), Name: r.PathValue("name")}
}

func (ws *WebServer) ProductByKey(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	p, err := ws.resolve(r, sessionId, listing.ResolveRequest{Key: pathKey(r)})
	if err != nil {
		return err
	}
	return enc.Encode(ws.detail(p))
}

func (ws *WebServer) ProductByName(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	name := r.URL.Query().Get("name")
	if name == "" {
		return common.NewStatusError(http.StatusBadRequest, "name is required", nil)
	}
	p, err := ws.resolve(r, sessionId, listing.ResolveRequest{Name: name})
	if err != nil {
		return err
	}
	return enc.Encode(ws.detail(p))
}

func (ws *WebServer) SelectProduct(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	if r.Method != http.MethodPost {
		return common.NewStatusError(http.StatusMethodNotAllowed, "method not allowed", nil)
	}
	var key types.ProductKey
	if err := jsoncompat.NewDecoder(r.Body).Decode(&key); err != nil {
		return badRequest(err)
	}
	p, err := ws.Listing.Select(r.Context(), sessionId, key)
	if errors.Is(err, listing.ErrProductNotFound) {
		return notFound("product")
	}
	if err != nil {
		return err
	}
	return enc.Encode(p.Key())
}

func (ws *WebServer) Similar(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	p, ok := ws.Catalog.GetProduct(pathKey(r))
	if !ok {
		return notFound("product")
	}
	limit := min(max(intParam(r, "limit", defaultSimilarLimit), 1), maxSimilarLimit)
	return enc.Encode(ws.Catalog.GetSimilarProducts(p, limit))
}

func (ws *WebServer) Specifications(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	p, ok := ws.Catalog.GetProduct(pathKey(r))
	if !ok {
		return notFound("product")
	}
	return enc.Encode(specs.Parse(p.Specifications))
}

type FamilyInfo struct {
	Id    types.FamilyId `json:"id"`
	Total int            `json:"total"`
}

func (ws *WebServer) Families(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	stats := ws.Catalog.Stats()
	ret := make([]FamilyInfo, 0)
	for _, id := range ws.Catalog.Families() {
		ret = append(ret, FamilyInfo{Id: id, Total: stats.ByFamily[id]})
	}
	return enc.Encode(ret)
}

func (ws *WebServer) strategy(r *http.Request) (family.Strategy, error) {
	s, ok := ws.Catalog.Strategy(types.FamilyId(r.PathValue("family")))
	if !ok {
		return nil, notFound("family")
	}
	return s, nil
}

func (ws *WebServer) FamilyProducts(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	s, err := ws.strategy(r)
	if err != nil {
		return err
	}
	filters, err := family.FiltersFromQuery(r.URL.Query())
	if err != nil {
		return badRequest(err)
	}
	page := types.ClampPage(intParam(r, "page", 1))
	size := min(max(intParam(r, "size", ws.PageSize), 1), types.MaxPageSize)
	return enc.Encode(s.SearchProducts(filters, page, size))
}

// FamilyItems lists every product of a family tagged with its family id.
func (ws *WebServer) FamilyItems(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	s, err := ws.strategy(r)
	if err != nil {
		return err
	}
	return enc.Encode(ws.Catalog.GetProductsByFamily(s.Id()))
}

func (ws *WebServer) FamilyFilters(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	s, err := ws.strategy(r)
	if err != nil {
		return err
	}
	return enc.Encode(s.GetFilterOptions(s.GetAllProducts()))
}

func (ws *WebServer) FamilyStats(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	s, err := ws.strategy(r)
	if err != nil {
		return err
	}
	return enc.Encode(s.Stats())
}

func (ws *WebServer) Taxonomy(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	w.Header().Set("Cache-Control", "public, max-age=300")
	return enc.Encode(ws.Listing.Engine().Taxonomy())
}

type StatsResponse struct {
	catalog.Stats
	Priority   []types.FamilyId    `json:"priority"`
	Collisions []catalog.Collision `json:"collisions"`
}

func (ws *WebServer) Stats(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	return enc.Encode(StatsResponse{
		Stats:      ws.Catalog.Stats(),
		Priority:   ws.Catalog.Priority(),
		Collisions: ws.Catalog.Collisions(),
	})
}

func (ws *WebServer) Suggest(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	noSuggests.Inc()
	return enc.Encode(ws.Suggester.Suggest(r.URL.Query().Get("q"), suggestLimit))
}

type enquiryResponse struct {
	Id     string            `json:"id,omitempty"`
	Error  string            `json:"error,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

func (ws *WebServer) Enquiry(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	if r.Method != http.MethodPost {
		return common.NewStatusError(http.StatusMethodNotAllowed, "method not allowed", nil)
	}
	var e enquiry.Enquiry
	if err := jsoncompat.NewDecoder(r.Body).Decode(&e); err != nil {
		return badRequest(err)
	}
	saved, err := ws.Enquiries.Submit(r.Context(), common.ClientIp(r), &e)
	var invalid *enquiry.ValidationError
	switch {
	case errors.As(err, &invalid):
		w.WriteHeader(http.StatusBadRequest)
		return enc.Encode(enquiryResponse{Error: "invalid enquiry", Fields: invalid.Fields})
	case errors.Is(err, enquiry.ErrRateLimited):
		return common.NewStatusError(http.StatusTooManyRequests, err.Error(), nil)
	case errors.Is(err, enquiry.ErrDelivery):
		return common.NewStatusError(http.StatusBadGateway, enquiry.ErrDelivery.Error(), err)
	case err != nil:
		return err
	}
	if ws.Tracking != nil {
		if err := ws.Tracking.TrackAction(sessionId, types.TrackingAction{Action: "enquiry", Reason: saved.ProductName}); err != nil {
			log.Warn().Err(err).Msg("could not track enquiry")
		}
	}
	w.WriteHeader(http.StatusCreated)
	return enc.Encode(enquiryResponse{Id: saved.Id})
}
