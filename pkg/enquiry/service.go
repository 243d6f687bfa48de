package enquiry

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

var (
	ErrRateLimited = errors.New("too many enquiries, try again later")
	ErrDelivery    = errors.New("enquiry could not be delivered")

	enquiriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_enquiries_total",
		Help: "Enquiries by outcome",
	}, []string{"outcome"})
)

type LimitConfig struct {
	PerMinute float64 `mapstructure:"per_minute"`
	Burst     int     `mapstructure:"burst"`
}

type Service struct {
	sink     Sink
	limit    rate.Limit
	burst    int
	mu       sync.Mutex
	limiters map[string]*clientLimiter
	now      func() time.Time
}

type clientLimiter struct {
	*rate.Limiter
	seen time.Time
}

func NewService(sink Sink, cfg LimitConfig) *Service {
	if cfg.PerMinute <= 0 {
		cfg.PerMinute = 3
	}
	if cfg.Burst < 1 {
		cfg.Burst = 3
	}
	return &Service{
		sink:     sink,
		limit:    rate.Limit(cfg.PerMinute / 60),
		burst:    cfg.Burst,
		limiters: make(map[string]*clientLimiter),
		now:      time.Now,
	}
}

func (s *Service) allow(client string) bool {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.limiters[client]
	if !ok {
		l = &clientLimiter{Limiter: rate.NewLimiter(s.limit, s.burst)}
		s.limiters[client] = l
	}
	l.seen = now
	return l.AllowN(now, 1)
}

// Sweep forgets clients that have been quiet for idle and whose budget has
// refilled, so dropping them grants nothing extra. Returns the number removed.
func (s *Service) Sweep(idle time.Duration) int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for client, l := range s.limiters {
		if now.Sub(l.seen) >= idle && l.TokensAt(now) >= float64(s.burst) {
			delete(s.limiters, client)
			removed++
		}
	}
	return removed
}

// Submit validates, rate limits per client and delivers the enquiry.
// Delivery is attempted once; failures are returned wrapped in ErrDelivery.
func (s *Service) Submit(ctx context.Context, client string, e *Enquiry) (*Enquiry, error) {
	e.Normalize()
	if err := e.Validate(); err != nil {
		enquiriesTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}
	if !s.allow(client) {
		enquiriesTotal.WithLabelValues("limited").Inc()
		return nil, ErrRateLimited
	}
	e.Id = uuid.NewString()
	e.CreatedAt = s.now().UTC()
	if err := s.sink.Deliver(ctx, e); err != nil {
		enquiriesTotal.WithLabelValues("failed").Inc()
		log.Error().Err(err).Str("id", e.Id).Msg("enquiry delivery failed")
		return nil, errors.Join(ErrDelivery, err)
	}
	enquiriesTotal.WithLabelValues("delivered").Inc()
	return e, nil
}
