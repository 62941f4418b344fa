package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App         AppConfig         `mapstructure:"app"`
	Server      ServerConfig      `mapstructure:"server"`
	Log         LogConfig         `mapstructure:"log"`
	DB          DBConfig          `mapstructure:"db"`
	Cron        CronConfig        `mapstructure:"cron"`
	MarketData  MarketDataConfig  `mapstructure:"market_data"`
	Cache       CacheConfig       `mapstructure:"cache"`
	BondCatalog BondCatalogConfig `mapstructure:"bond_catalog"`
	Analytics   AnalyticsConfig   `mapstructure:"analytics"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type ServerConfig struct {
	HTTPAddr string `mapstructure:"http_addr"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	Sampling          bool   `mapstructure:"sampling"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
	Output            string `mapstructure:"output"`
}

// DBConfig selects the trade store. Driver "memory" keeps everything in
// process and ignores the connection settings.
type DBConfig struct {
	Driver          string        `mapstructure:"driver"`
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	Timezone        string        `mapstructure:"timezone"`
	SlowQuery       time.Duration `mapstructure:"slow_query"`
}

type CronConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	QuoteRefresh string `mapstructure:"quote_refresh"`
	BondCatalog  string `mapstructure:"bond_catalog"`
}

type MarketDataConfig struct {
	Provider string        `mapstructure:"provider"`
	BaseURL  string        `mapstructure:"base_url"`
	APIKey   string        `mapstructure:"api_key"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type CacheConfig struct {
	Backend    string        `mapstructure:"backend"`
	QuoteTTL   time.Duration `mapstructure:"quote_ttl"`
	MaxEntries int           `mapstructure:"max_entries"`
	Redis      RedisConfig   `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

type BondCatalogConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type AnalyticsConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Token   string        `mapstructure:"token"`
	Timeout time.Duration `mapstructure:"timeout"`
}

func Load(path string, envOnly bool) (Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("PF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetDefault("app.env", "dev")
	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", true)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", false)
	v.SetDefault("log.output", "stdout")
	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.dsn", "")
	v.SetDefault("db.max_open_conns", 10)
	v.SetDefault("db.max_idle_conns", 2)
	v.SetDefault("db.conn_max_lifetime", "30m")
	v.SetDefault("db.conn_max_idle_time", "5m")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("db.slow_query", "500ms")
	v.SetDefault("cron.enabled", true)
	v.SetDefault("cron.quote_refresh", "@every 30m")
	v.SetDefault("cron.bond_catalog", "0 0 18 * * *")
	v.SetDefault("market_data.provider", "fmp")
	v.SetDefault("market_data.base_url", "https://financialmodelingprep.com/api/v3")
	v.SetDefault("market_data.api_key", "")
	v.SetDefault("market_data.timeout", "15s")
	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.quote_ttl", "60s")
	v.SetDefault("cache.max_entries", 10000)
	v.SetDefault("cache.redis.addr", "127.0.0.1:6379")
	v.SetDefault("cache.redis.password", "")
	v.SetDefault("cache.redis.db", 0)
	v.SetDefault("cache.redis.key_prefix", "portfolio:")
	v.SetDefault("bond_catalog.enabled", false)
	v.SetDefault("bond_catalog.url", "https://www.mas.gov.sg/bonds-and-bills/singapore-government-securities-bonds")
	v.SetDefault("bond_catalog.timeout", "20s")
	v.SetDefault("analytics.base_url", "https://api.quiverquant.com")
	v.SetDefault("analytics.token", "")
	v.SetDefault("analytics.timeout", "15s")

	// Keys used by the original deployment's .env.
	_ = v.BindEnv("market_data.api_key", "PF_MARKET_DATA_API_KEY", "FMP_TOKEN")
	_ = v.BindEnv("analytics.token", "PF_ANALYTICS_TOKEN", "QUIVER_TOKEN")
	_ = v.BindEnv("server.http_addr", "PF_SERVER_HTTP_ADDR")

	if !envOnly {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.DB.Driver)) {
	case "postgres":
		if strings.TrimSpace(c.DB.DSN) == "" {
			return fmt.Errorf("db.dsn is required for driver postgres")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown db.driver %q", c.DB.Driver)
	}
	switch strings.ToLower(strings.TrimSpace(c.MarketData.Provider)) {
	case "fmp", "yahoo":
	default:
		return fmt.Errorf("unknown market_data.provider %q", c.MarketData.Provider)
	}
	switch strings.ToLower(strings.TrimSpace(c.Cache.Backend)) {
	case "memory", "redis", "none":
	default:
		return fmt.Errorf("unknown cache.backend %q", c.Cache.Backend)
	}
	return nil
}
