package server

import (
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shreeji-electro/catalog-finder/pkg/catalog"
	"github.com/shreeji-electro/catalog-finder/pkg/common"
	"github.com/shreeji-electro/catalog-finder/pkg/enquiry"
	"github.com/shreeji-electro/catalog-finder/pkg/listing"
	"github.com/shreeji-electro/catalog-finder/pkg/search"
	"github.com/shreeji-electro/catalog-finder/pkg/types"
)

var (
	noSuggests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_suggest_total",
		Help: "The total number of processed suggestions",
	})
	productLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_product_lookups_total",
		Help: "Product detail lookups by outcome",
	}, []string{"outcome"})
)

type WebServer struct {
	Catalog   *catalog.Catalog
	Listing   *listing.Controller
	Suggester *search.Suggester
	Enquiries *enquiry.Service
	Tracking  types.Tracking
	// Debounce is the quiet period before a live search is evaluated.
	Debounce time.Duration
	PageSize int
}

func (ws *WebServer) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("GET /api/products", common.JsonHandler(ws.Tracking, ws.Products))
	mux.HandleFunc("GET /api/listing", common.JsonHandler(ws.Tracking, ws.OpenListing))
	mux.HandleFunc("/api/listing/events", common.JsonHandler(ws.Tracking, ws.ListingEvent))
	mux.HandleFunc("GET /api/listing/live", ws.Live)

	mux.HandleFunc("GET /api/product", common.JsonHandler(ws.Tracking, ws.ProductByName))
	mux.HandleFunc("GET /api/product/{brand}/{name}", common.JsonHandler(ws.Tracking, ws.ProductByKey))
	mux.HandleFunc("GET /api/product/{brand}/{name}/similar", common.JsonHandler(ws.Tracking, ws.Similar))
	mux.HandleFunc("GET /api/product/{brand}/{name}/specifications", common.JsonHandler(ws.Tracking, ws.Specifications))
	mux.HandleFunc("/api/selected", common.JsonHandler(ws.Tracking, ws.SelectProduct))

	mux.HandleFunc("GET /api/families", common.JsonHandler(ws.Tracking, ws.Families))
	mux.HandleFunc("GET /api/families/{family}/products", common.JsonHandler(ws.Tracking, ws.FamilyProducts))
	mux.HandleFunc("GET /api/families/{family}/items", common.JsonHandler(ws.Tracking, ws.FamilyItems))
	mux.HandleFunc("GET /api/families/{family}/filters", common.JsonHandler(ws.Tracking, ws.FamilyFilters))
	mux.HandleFunc("GET /api/families/{family}/stats", common.JsonHandler(ws.Tracking, ws.FamilyStats))

	mux.HandleFunc("GET /api/taxonomy", common.JsonHandler(ws.Tracking, ws.Taxonomy))
	mux.HandleFunc("GET /api/stats", common.JsonHandler(ws.Tracking, ws.Stats))
	mux.HandleFunc("GET /api/suggest", common.JsonHandler(ws.Tracking, ws.Suggest))
	mux.HandleFunc("/api/enquiry", common.JsonHandler(ws.Tracking, ws.Enquiry))
}

// DebugMux serves metrics and, when enabled, the pprof endpoints.
func DebugMux(enableProfiling bool) *http.ServeMux {
	srv := http.NewServeMux()
	srv.Handle("/metrics", promhttp.Handler())
	if enableProfiling {
		srv.HandleFunc("/debug/pprof/", pprof.Index)
		srv.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		srv.HandleFunc("/debug/pprof/profile", pprof.Profile)
		srv.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		srv.HandleFunc("/debug/pprof/trace", pprof.Trace)
	}
	return srv
}
