package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server         ServerConfig         `mapstructure:"server"`
	Database       DatabaseConfig       `mapstructure:"database"`
	Redis          RedisConfig          `mapstructure:"redis"`
	JWT            JWTConfig            `mapstructure:"jwt"`
	Log            LogConfig            `mapstructure:"log"`
	Directory      DirectoryConfig      `mapstructure:"directory"`
	Recommendation RecommendationConfig `mapstructure:"recommendation"`
	Worker         WorkerConfig         `mapstructure:"worker"`
	Report         ReportConfig         `mapstructure:"report"`
	Metrics        MetricsConfig        `mapstructure:"metrics"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"name"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// DirectoryConfig controls the space/booking snapshot cache.
type DirectoryConfig struct {
	TTL          time.Duration `mapstructure:"ttl"`
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
	AllowStale   bool          `mapstructure:"allow_stale"`
	MaxDates     int           `mapstructure:"max_dates"`
	SnapshotTTL  time.Duration `mapstructure:"snapshot_ttl"`
}

type RecommendationConfig struct {
	FillDefaults bool   `mapstructure:"fill_defaults"`
	DefaultStart string `mapstructure:"default_start"`
	DefaultEnd   string `mapstructure:"default_end"`
	DayStart     string `mapstructure:"day_start"`
	DayEnd       string `mapstructure:"day_end"`
	StepMinutes  int    `mapstructure:"step_minutes"`
	Workers      int    `mapstructure:"workers"`
}

type WorkerConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	RefreshEvery time.Duration `mapstructure:"refresh_every"`
	Concurrency  int           `mapstructure:"concurrency"`
}

type ReportConfig struct {
	S3Bucket    string `mapstructure:"s3_bucket"`
	S3Region    string `mapstructure:"s3_region"`
	S3Endpoint  string `mapstructure:"s3_endpoint"`
	S3AccessKey string `mapstructure:"s3_access_key"`
	S3SecretKey string `mapstructure:"s3_secret_key"`
	Prefix      string `mapstructure:"prefix"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

var (
	mu       sync.RWMutex
	instance *Config
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 7070)
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "rooms")
	v.SetDefault("database.ssl_mode", "disable")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "room-booking-api")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	v.SetDefault("directory.ttl", "5m")
	v.SetDefault("directory.fetch_timeout", "5s")
	v.SetDefault("directory.allow_stale", false)
	v.SetDefault("directory.max_dates", 32)
	v.SetDefault("directory.snapshot_ttl", "24h")

	v.SetDefault("recommendation.fill_defaults", false)
	v.SetDefault("recommendation.default_start", "09:00")
	v.SetDefault("recommendation.default_end", "10:00")
	v.SetDefault("recommendation.day_start", "08:00")
	v.SetDefault("recommendation.day_end", "20:00")
	v.SetDefault("recommendation.step_minutes", 30)
	v.SetDefault("recommendation.workers", 4)

	v.SetDefault("worker.enabled", false)
	v.SetDefault("worker.refresh_every", "5m")
	v.SetDefault("worker.concurrency", 2)

	v.SetDefault("report.s3_bucket", "")
	v.SetDefault("report.s3_region", "us-east-1")
	v.SetDefault("report.s3_endpoint", "")
	v.SetDefault("report.s3_access_key", "")
	v.SetDefault("report.s3_secret_key", "")
	v.SetDefault("report.prefix", "malformed-bookings")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}

// Load reads .env (if any), then config.yaml from the given directories
// (if any), then environment variables such as DIRECTORY_TTL or SERVER_PORT.
func Load(paths ...string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	mu.Lock()
	instance = &cfg
	mu.Unlock()

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be positive, got %d", c.Server.Port)
	}
	if c.Directory.TTL <= 0 {
		return fmt.Errorf("directory.ttl must be positive, got %s", c.Directory.TTL)
	}
	if c.Directory.MaxDates <= 0 {
		return fmt.Errorf("directory.max_dates must be positive, got %d", c.Directory.MaxDates)
	}
	if c.Recommendation.StepMinutes <= 0 {
		return fmt.Errorf("recommendation.step_minutes must be positive, got %d", c.Recommendation.StepMinutes)
	}
	return nil
}

// Get returns the loaded configuration and panics if Load was never called.
func Get() *Config {
	cfg, ok := GetSafe()
	if !ok {
		panic("config: Get called before Load")
	}
	return cfg
}

func GetSafe() (*Config, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return instance, instance != nil
}
