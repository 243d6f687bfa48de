package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shreeji-electro/catalog-finder/pkg/catalog"
	"github.com/shreeji-electro/catalog-finder/pkg/common"
	"github.com/shreeji-electro/catalog-finder/pkg/config"
	"github.com/shreeji-electro/catalog-finder/pkg/enquiry"
	"github.com/shreeji-electro/catalog-finder/pkg/listing"
	"github.com/shreeji-electro/catalog-finder/pkg/messaging"
	"github.com/shreeji-electro/catalog-finder/pkg/query"
	"github.com/shreeji-electro/catalog-finder/pkg/search"
	"github.com/shreeji-electro/catalog-finder/pkg/server"
	"github.com/shreeji-electro/catalog-finder/pkg/session"
	"github.com/shreeji-electro/catalog-finder/pkg/storage"
	"github.com/shreeji-electro/catalog-finder/pkg/tracking"
	"github.com/shreeji-electro/catalog-finder/pkg/types"
)

const sweepInterval = 5 * time.Minute

type app struct {
	cfg       *config.Config
	storage   *storage.DiskStorage
	publisher *messaging.RabbitPublisher
	store     session.Store
	tracker   types.Tracking
}

func setupLogging(cfg config.LogConfig, environment string) {
	zerolog.SetGlobalLevel(cfg.ZerologLevel())
	if cfg.Pretty || environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

// loadTaxonomy prefers a taxonomy file in the data folder and falls back to
// the built in one.
func (a *app) loadTaxonomy() (*query.Taxonomy, error) {
	tax := &query.Taxonomy{}
	err := a.storage.LoadJson(tax, a.cfg.Catalog.TaxonomyFile)
	if errors.Is(err, storage.ErrNotFound) {
		log.Info().Str("file", a.cfg.Catalog.TaxonomyFile).Msg("no taxonomy file, using built in taxonomy")
		return query.DefaultTaxonomy(), nil
	}
	if err != nil {
		return nil, err
	}
	if err = tax.Validate(); err != nil {
		return nil, err
	}
	return tax, nil
}

func (a *app) connectSessions(ctx context.Context) {
	if a.cfg.Session.Addr == "" {
		a.store = session.NewMemoryStore(a.cfg.Session.TTL)
		log.Info().Msg("using in memory session store")
		return
	}
	redisStore := session.NewRedisStore(a.cfg.Session)
	if err := redisStore.Ping(ctx); err != nil {
		log.Fatal().Err(err).Str("addr", a.cfg.Session.Addr).Msg("could not reach redis")
	}
	a.store = redisStore
	log.Info().Str("addr", a.cfg.Session.Addr).Msg("using redis session store")
}

// sweep drops expired in memory sessions and idle enquiry rate limiters.
func (a *app) sweep(enquiries *enquiry.Service) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for range ticker.C {
		if memory, ok := a.store.(*session.MemoryStore); ok {
			if removed := memory.Sweep(); removed > 0 {
				log.Debug().Int("removed", removed).Msg("swept expired sessions")
			}
		}
		if removed := enquiries.Sweep(sweepInterval); removed > 0 {
			log.Debug().Int("removed", removed).Msg("forgot idle enquiry clients")
		}
	}
}

func (a *app) connectAmqp() {
	if !a.cfg.Rabbit.Enabled() {
		a.tracker = tracking.LogTracking{}
		return
	}
	publisher, err := messaging.Dial(a.cfg.Rabbit.Url, a.cfg.Rabbit.Prefix, messaging.TrackingTopic, messaging.EnquiryTopic)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
	}
	a.publisher = publisher
	a.tracker = tracking.NewRabbitTracking(publisher, a.cfg.Server.Country)
	log.Info().Str("prefix", a.cfg.Rabbit.Prefix).Msg("publishing tracking and enquiries to RabbitMQ")
}

// enquirySink queues enquiries when a broker is present so a relay can mail
// them, otherwise mails directly when SendGrid is configured.
func (a *app) enquirySink() enquiry.Sink {
	sinks := enquiry.MultiSink{enquiry.LogSink{}}
	switch {
	case a.publisher != nil:
		sinks = append(sinks, enquiry.NewAmqpSink(a.publisher))
	case a.cfg.Enquiry.EmailEnabled():
		sinks = append(sinks, enquiry.NewEmailSink(a.cfg.Enquiry.Email()))
	default:
		log.Warn().Msg("enquiries are only logged, configure rabbit.url or enquiry.sendgrid_key")
	}
	return sinks
}

func (a *app) startRelay() {
	if !a.cfg.Enquiry.Relay {
		return
	}
	ch, err := a.publisher.Connection().Channel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open a channel")
	}
	if err = enquiry.Relay(ch, a.publisher.Prefix(), enquiry.NewEmailSink(a.cfg.Enquiry.Email())); err != nil {
		log.Fatal().Err(err).Msg("failed to start enquiry relay")
	}
	log.Info().Msg("relaying queued enquiries to SendGrid")
}

func (a *app) shutdownHooks() []common.ShutdownHook {
	hooks := []common.ShutdownHook{
		func(ctx context.Context) error { return a.tracker.Close() },
		func(ctx context.Context) error { return a.store.Close() },
	}
	if a.publisher != nil {
		hooks = append(hooks, func(ctx context.Context) error { return a.publisher.Close() })
	}
	return hooks
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	setupLogging(cfg.Log, cfg.Server.Environment)
	common.AllowOrigins(cfg.Server.AllowedOrigins...)
	log.Info().Str("environment", cfg.Server.Environment).Str("country", cfg.Server.Country).Msg("starting catalog finder")

	ctx := context.Background()
	a := &app{
		cfg:     cfg,
		storage: storage.NewDiskStorage(cfg.Catalog.DataDir),
	}

	start := time.Now()
	products, reports, err := catalog.Load(ctx, a.storage, cfg.Catalog.Sources, cfg.Catalog.PriorityOrDefault(nil))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load catalog")
	}
	for _, report := range reports {
		log.Info().Str("file", report.Source.File).Int("loaded", report.Loaded).Int("dropped", report.Dropped).Msg("dataset loaded")
	}
	log.Info().Int("products", len(products.GetAllProducts())).Dur("took", time.Since(start)).Msg("catalog ready")

	taxonomy, err := a.loadTaxonomy()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid taxonomy")
	}
	engine := query.NewEngine(taxonomy, cfg.Catalog.PageSize)

	a.connectSessions(ctx)
	a.connectAmqp()
	a.startRelay()

	enquiries := enquiry.NewService(a.enquirySink(), cfg.Enquiry.Limit())
	go a.sweep(enquiries)

	ws := &server.WebServer{
		Catalog:   products,
		Listing:   listing.NewController(products, engine, a.store),
		Suggester: search.NewSuggester(products.GetAllProducts()),
		Enquiries: enquiries,
		Tracking:  a.tracker,
		Debounce:  cfg.Live.Debounce,
		PageSize:  cfg.Catalog.PageSize,
	}

	mux := http.NewServeMux()
	ws.Routes(mux)

	servers := []*http.Server{
		common.NewServerWithTimeouts(&http.Server{Addr: cfg.Server.Listen, Handler: mux}, cfg.Server.Timeouts),
	}
	if cfg.Server.DebugListen != "" {
		servers = append(servers, &http.Server{Addr: cfg.Server.DebugListen, Handler: server.DebugMux(cfg.Server.Profiling)})
	}
	common.RunServerWithShutdown(servers, "catalog finder", cfg.Server.Timeouts.Shutdown, cfg.Server.Timeouts.Hook, a.shutdownHooks()...)
}
