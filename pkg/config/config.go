package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/shreeji-electro/catalog-finder/pkg/common"
	"github.com/shreeji-electro/catalog-finder/pkg/enquiry"
	"github.com/shreeji-electro/catalog-finder/pkg/session"
	"github.com/shreeji-electro/catalog-finder/pkg/storage"
	"github.com/shreeji-electro/catalog-finder/pkg/types"
	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig        `mapstructure:"server"`
	Catalog CatalogConfig       `mapstructure:"catalog"`
	Session session.RedisConfig `mapstructure:"session"`
	Rabbit  RabbitConfig        `mapstructure:"rabbit"`
	Enquiry EnquiryConfig       `mapstructure:"enquiry"`
	Live    LiveConfig          `mapstructure:"live"`
	Log     LogConfig           `mapstructure:"log"`
}

type ServerConfig struct {
	Listen         string               `mapstructure:"listen"`
	DebugListen    string               `mapstructure:"debug_listen"`
	Environment    string               `mapstructure:"environment"`
	Profiling      bool                 `mapstructure:"profiling"`
	AllowedOrigins []string             `mapstructure:"allowed_origins"`
	Country        string               `mapstructure:"country"`
	Timeouts       common.TimeoutConfig `mapstructure:"timeouts"`
}

type CatalogConfig struct {
	DataDir      string                `mapstructure:"data_dir"`
	TaxonomyFile string                `mapstructure:"taxonomy_file"`
	PageSize     int                   `mapstructure:"page_size"`
	Priority     []types.FamilyId      `mapstructure:"priority"`
	Sources      []types.DatasetSource `mapstructure:"sources"`
}

type RabbitConfig struct {
	Url    string `mapstructure:"url"`
	Prefix string `mapstructure:"prefix"`
}

func (r RabbitConfig) Enabled() bool {
	return r.Url != ""
}

type EnquiryConfig struct {
	SendgridKey   string  `mapstructure:"sendgrid_key"`
	From          string  `mapstructure:"from"`
	FromName      string  `mapstructure:"from_name"`
	To            string  `mapstructure:"to"`
	RatePerMinute float64 `mapstructure:"rate_per_minute"`
	Burst         int     `mapstructure:"burst"`
	// Relay consumes queued enquiries and mails them from this process.
	Relay bool `mapstructure:"relay"`
}

func (e EnquiryConfig) EmailEnabled() bool {
	return e.SendgridKey != "" && e.To != ""
}

func (e EnquiryConfig) Email() enquiry.EmailConfig {
	return enquiry.EmailConfig{ApiKey: e.SendgridKey, From: e.From, FromName: e.FromName, To: e.To}
}

func (e EnquiryConfig) Limit() enquiry.LimitConfig {
	return enquiry.LimitConfig{PerMinute: e.RatePerMinute, Burst: e.Burst}
}

type LiveConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

func (l LogConfig) ZerologLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(l.Level)
	if err != nil || l.Level == "" {
		return zerolog.InfoLevel
	}
	return level
}

func (c *CatalogConfig) PriorityOrDefault(fallback []types.FamilyId) []types.FamilyId {
	if len(c.Priority) == 0 {
		return fallback
	}
	return c.Priority
}

// Load reads .env, an optional config.yaml and CATALOG_ prefixed
// environment variables, in increasing precedence.
func Load(paths ...string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env: %w", err)
	}
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/catalog-finder/")

	v.SetEnvPrefix("CATALOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.Server.Timeouts = cfg.Server.Timeouts.WithDefaults()
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func DefaultSources() []map[string]any {
	source := func(family types.FamilyId, brand, file string, swap bool) map[string]any {
		return map[string]any{"family": string(family), "brand": brand, "file": file, "swap_types": swap}
	}
	return []map[string]any{
		source(types.FamilyCable, "POLYCAB", "polycab_cables.json", false),
		source(types.FamilyWire, "POLYCAB", "polycab_wires.json", false),
		source(types.FamilyFan, "POLYCAB", "polycab_fans.json", false),
		source(types.FamilyLighting, "POLYCAB", "polycab_lighting.json", false),
		source(types.FamilySwitchgear, "POLYCAB", "polycab_switchgear.json", false),
		source(types.FamilySwitchgear, "LAURITZ KNUDSEN", "lk_products.json", true),
		source(types.FamilySwitchgear, "NEPTUNE", "neptune_products.json", false),
		source(types.FamilyCable, "DOWELL'S", "dowells_products.json", false),
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.listen", ":8080")
	v.SetDefault("server.debug_listen", ":8081")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.profiling", false)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.country", "in")

	v.SetDefault("catalog.data_dir", "data")
	v.SetDefault("catalog.taxonomy_file", storage.TaxonomyFile)
	v.SetDefault("catalog.page_size", types.DefaultPageSize)
	v.SetDefault("catalog.priority", []string{"cable", "fan", "lighting", "switchgear", "wire"})
	v.SetDefault("catalog.sources", DefaultSources())

	v.SetDefault("session.redis_addr", "")
	v.SetDefault("session.redis_password", "")
	v.SetDefault("session.redis_db", 0)
	v.SetDefault("session.ttl", session.DefaultTTL.String())
	v.SetDefault("session.prefix", "catalog:")

	v.SetDefault("rabbit.url", "")
	v.SetDefault("rabbit.prefix", "catalog")

	v.SetDefault("enquiry.sendgrid_key", "")
	v.SetDefault("enquiry.from", "noreply@shreejielectropower.com")
	v.SetDefault("enquiry.from_name", "Shreeji Electro Power")
	v.SetDefault("enquiry.to", "inquiry@shreejielectropower.com")
	v.SetDefault("enquiry.rate_per_minute", 3)
	v.SetDefault("enquiry.burst", 3)
	v.SetDefault("enquiry.relay", false)

	v.SetDefault("live.debounce", "300ms")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
}

func validate(cfg *Config) error {
	if cfg.Server.Listen == "" {
		return errors.New("server.listen is required")
	}
	if cfg.Catalog.PageSize < 1 {
		return fmt.Errorf("catalog.page_size must be positive, got %d", cfg.Catalog.PageSize)
	}
	if len(cfg.Catalog.Sources) == 0 {
		return errors.New("catalog.sources is empty")
	}
	for i, src := range cfg.Catalog.Sources {
		if src.File == "" || src.Family == "" {
			return fmt.Errorf("catalog.sources[%d] needs family and file", i)
		}
	}
	if cfg.Enquiry.Relay && (!cfg.Rabbit.Enabled() || !cfg.Enquiry.EmailEnabled()) {
		return errors.New("enquiry.relay needs rabbit.url and enquiry.sendgrid_key")
	}
	if cfg.Live.Debounce <= 0 {
		return fmt.Errorf("live.debounce must be positive, got %s", cfg.Live.Debounce)
	}
	return nil
}
