package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"

	"eventstaff_backend/internal/logger"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
		// Requests per second allowed on /auth per client IP.
		AuthRateLimit float64 `yaml:"auth_rate_limit"`
		AuthBurst     int     `yaml:"auth_burst"`
	} `yaml:"server"`

	Database struct {
		DSN             string `yaml:"url"`
		MaxOpenConns    int    `yaml:"max_open_conns"`
		MaxIdleConns    int    `yaml:"max_idle_conns"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime_minutes"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // minutes
	} `yaml:"jwt"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	NATS struct {
		URL       string `yaml:"url"`
		ClusterID string `yaml:"cluster_id"`
		ClientID  string `yaml:"client_id"`
	} `yaml:"nats"`

	Elasticsearch struct {
		URL   string `yaml:"url"`
		Index string `yaml:"index"`
	} `yaml:"elasticsearch"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
	} `yaml:"email"`

	Marketplace struct {
		FreeMonthlyPosts int `yaml:"free_monthly_posts"`
		PremiumDays      int `yaml:"premium_days"`
		PremiumPriceINR  int `yaml:"premium_price_inr"`
		PaymentDueHours  int `yaml:"payment_due_hours"`
	} `yaml:"marketplace"`

	Workers struct {
		SubscriptionInterval int `yaml:"subscription_interval_minutes"`
		PaymentDueInterval   int `yaml:"payment_due_interval_minutes"`
	} `yaml:"workers"`
}

var AppConfig *Config

// Load reads the yaml file at path, applies environment overrides and fills
// defaults. A missing file is fine when DATABASE_URL is set.
func Load(path string) (*Config, error) {
	var cfg Config

	f, err := os.Open(path)
	switch {
	case err == nil:
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err) && os.Getenv("DATABASE_URL") != "":
		logger.Info("config file not found, using environment", "path", path)
	default:
		return nil, fmt.Errorf("open config %s: %w", path, err)
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt.secret is required")
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("SERVER_ENV"); v != "" {
		cfg.Server.Env = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("ELASTICSEARCH_URL"); v != "" {
		cfg.Elasticsearch.URL = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.Server.AuthRateLimit == 0 {
		cfg.Server.AuthRateLimit = 5
	}
	if cfg.Server.AuthBurst == 0 {
		cfg.Server.AuthBurst = 10
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 30
	}
	if cfg.JWT.TTL == 0 {
		cfg.JWT.TTL = 60 * 24
	}
	if cfg.NATS.ClusterID == "" {
		cfg.NATS.ClusterID = "test-cluster"
	}
	if cfg.NATS.ClientID == "" {
		cfg.NATS.ClientID = "eventstaff-api"
	}
	if cfg.Elasticsearch.Index == "" {
		cfg.Elasticsearch.Index = "events"
	}
	if cfg.Email.SMTPPort == 0 {
		cfg.Email.SMTPPort = 587
	}
	if cfg.Email.FromName == "" {
		cfg.Email.FromName = "EventStaff"
	}
	if cfg.Marketplace.FreeMonthlyPosts == 0 {
		cfg.Marketplace.FreeMonthlyPosts = 2
	}
	if cfg.Marketplace.PremiumDays == 0 {
		cfg.Marketplace.PremiumDays = 30
	}
	if cfg.Marketplace.PremiumPriceINR == 0 {
		cfg.Marketplace.PremiumPriceINR = 150
	}
	if cfg.Marketplace.PaymentDueHours == 0 {
		cfg.Marketplace.PaymentDueHours = 48
	}
	if cfg.Workers.SubscriptionInterval == 0 {
		cfg.Workers.SubscriptionInterval = 60
	}
	if cfg.Workers.PaymentDueInterval == 0 {
		cfg.Workers.PaymentDueInterval = 15
	}
}

// LoadConfig loads from CONFIG_PATH into AppConfig and exits on failure.
func LoadConfig() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := Load(configPath)
	if err != nil {
		logger.Fatal("failed to load config", "error", err)
	}
	AppConfig = cfg
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWT.TTL) * time.Minute
}

func (c *Config) PremiumPeriod() time.Duration {
	return time.Duration(c.Marketplace.PremiumDays) * 24 * time.Hour
}

func (c *Config) PaymentDue() time.Duration {
	return time.Duration(c.Marketplace.PaymentDueHours) * time.Hour
}
