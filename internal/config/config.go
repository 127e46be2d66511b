package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

type AppConf struct {
	Env                 string `mapstructure:"env"`
	Port                int    `mapstructure:"port"`
	ReadTimeoutSeconds  int    `mapstructure:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `mapstructure:"write_timeout_seconds"`
	IdleTimeoutSeconds  int    `mapstructure:"idle_timeout_seconds"`
	ShutdownSeconds     int    `mapstructure:"shutdown_seconds"`
}

type MongoConf struct {
	URI                string `mapstructure:"uri"`
	Database           string `mapstructure:"database"`
	UsersCollection    string `mapstructure:"users_collection"`
	ProfilesCollection string `mapstructure:"profiles_collection"`
}

type RedisConf struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type JWTConf struct {
	Secret     string `mapstructure:"secret"`
	TTLSeconds int    `mapstructure:"ttl_seconds"`
}

type GithubConf struct {
	BaseURL      string `mapstructure:"base_url"`
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	UserAgent    string `mapstructure:"user_agent"`
}

type RateLimitConf struct {
	PerMinute int `mapstructure:"per_minute"`
}

type Config struct {
	App       AppConf       `mapstructure:"app"`
	Mongo     MongoConf     `mapstructure:"mongodb"`
	Redis     RedisConf     `mapstructure:"redis"`
	JWT       JWTConf       `mapstructure:"jwt"`
	Github    GithubConf    `mapstructure:"github"`
	RateLimit RateLimitConf `mapstructure:"ratelimit"`

	// derived
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	TokenTTL        time.Duration
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	override := func(env string, apply func(string)) {
		if val := os.Getenv(env); val != "" {
			apply(val)
		}
	}
	override("APP_ENV", func(val string) { cfg.App.Env = val })
	override("PORT", func(val string) {
		if n, err := strconv.Atoi(val); err == nil {
			cfg.App.Port = n
		}
	})
	override("MONGO_URI", func(val string) { cfg.Mongo.URI = val })
	override("MONGO_DB", func(val string) { cfg.Mongo.Database = val })
	override("REDIS_ADDR", func(val string) { cfg.Redis.Addr = val })
	override("REDIS_PASSWORD", func(val string) { cfg.Redis.Password = val })
	override("JWT_SECRET", func(val string) { cfg.JWT.Secret = val })
	override("GITHUB_CLIENT_ID", func(val string) { cfg.Github.ClientID = val })
	override("GITHUB_CLIENT_SECRET", func(val string) { cfg.Github.ClientSecret = val })

	if cfg.App.Port == 0 {
		cfg.App.Port = 5000
	}
	if cfg.App.ReadTimeoutSeconds == 0 {
		cfg.App.ReadTimeoutSeconds = 15
	}
	if cfg.App.WriteTimeoutSeconds == 0 {
		cfg.App.WriteTimeoutSeconds = 15
	}
	if cfg.App.IdleTimeoutSeconds == 0 {
		cfg.App.IdleTimeoutSeconds = 60
	}
	if cfg.App.ShutdownSeconds == 0 {
		cfg.App.ShutdownSeconds = 10
	}
	if cfg.Mongo.Database == "" {
		cfg.Mongo.Database = "devconnect"
	}
	if cfg.Mongo.UsersCollection == "" {
		cfg.Mongo.UsersCollection = "users"
	}
	if cfg.Mongo.ProfilesCollection == "" {
		cfg.Mongo.ProfilesCollection = "profiles"
	}
	if cfg.JWT.TTLSeconds == 0 {
		cfg.JWT.TTLSeconds = 36000
	}
	if cfg.Github.BaseURL == "" {
		cfg.Github.BaseURL = "https://api.github.com"
	}
	if cfg.Github.UserAgent == "" {
		cfg.Github.UserAgent = "profile-service"
	}
	if cfg.RateLimit.PerMinute == 0 {
		cfg.RateLimit.PerMinute = 30
	}

	if cfg.Mongo.URI == "" {
		return nil, errors.New("MONGO_URI is required")
	}
	if cfg.JWT.Secret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	cfg.ReadTimeout = time.Duration(cfg.App.ReadTimeoutSeconds) * time.Second
	cfg.WriteTimeout = time.Duration(cfg.App.WriteTimeoutSeconds) * time.Second
	cfg.IdleTimeout = time.Duration(cfg.App.IdleTimeoutSeconds) * time.Second
	cfg.ShutdownTimeout = time.Duration(cfg.App.ShutdownSeconds) * time.Second
	cfg.TokenTTL = time.Duration(cfg.JWT.TTLSeconds) * time.Second

	return &cfg, nil
}
