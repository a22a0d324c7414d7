package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Log         Logger            `mapstructure:"logger"`
	DB          Database          `mapstructure:"database"`
	API         API               `mapstructure:"api"`
	Cache       Cache             `mapstructure:"cache"`
	Gemini      Gemini            `mapstructure:"gemini"`
	Simulation  Simulation        `mapstructure:"simulation"`
	Hub         Hub               `mapstructure:"hub"`
	Maintenance MaintenanceConfig `mapstructure:"maintenance"`
}

type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type Database struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"name"`
	SSLMode         string `mapstructure:"ssl_mode"`
	TimeZone        string `mapstructure:"time_zone"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime string `mapstructure:"conn_max_lifetime"`
	LogLevel        string `mapstructure:"log_level"`
}

type API struct {
	Port int `mapstructure:"port"`
}

type Cache struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
}

type Gemini struct {
	APIKey              string        `mapstructure:"api_key"`
	BaseURL             string        `mapstructure:"base_url"`
	BaseModel           string        `mapstructure:"base_model"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	MaxTokenPerMinute   int           `mapstructure:"max_token_per_minute"`
}

type Simulation struct {
	TickInterval time.Duration `mapstructure:"tick_interval"`
	// Price deltas are drawn uniformly from [-MaxDelta, MaxDelta].
	MaxDelta float64 `mapstructure:"max_delta"`
}

type Hub struct {
	ClientBufferSize int           `mapstructure:"client_buffer_size"`
	PingInterval     time.Duration `mapstructure:"ping_interval"`
	PongWait         time.Duration `mapstructure:"pong_wait"`
}

type MaintenanceConfig struct {
	HeatRefreshSchedule    string `mapstructure:"heat_refresh_schedule"`
	DanmakuCleanupSchedule string `mapstructure:"danmaku_cleanup_schedule"`
	DanmakuRetentionDays   int    `mapstructure:"danmaku_retention_days"`
}

func Load() (*Config, error) {
	// Best effort, the env file is optional in deployed environments.
	_ = godotenv.Load()

	viper.SetConfigType("yaml")
	viper.SetConfigName("config")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.encoding", "json")
	viper.SetDefault("api.port", 3000)
	viper.SetDefault("database.ssl_mode", "disable")
	viper.SetDefault("cache.default_expiration", 5*time.Minute)
	viper.SetDefault("cache.cleanup_interval", 10*time.Minute)
	viper.SetDefault("gemini.base_url", "https://generativelanguage.googleapis.com/v1beta/models")
	viper.SetDefault("gemini.base_model", "gemini-2.0-flash")
	viper.SetDefault("gemini.timeout", 15*time.Second)
	viper.SetDefault("gemini.max_request_per_minute", 15)
	viper.SetDefault("gemini.max_token_per_minute", 1000000)
	viper.SetDefault("simulation.tick_interval", 5*time.Second)
	viper.SetDefault("simulation.max_delta", 1.0)
	viper.SetDefault("hub.client_buffer_size", 256)
	viper.SetDefault("hub.ping_interval", 45*time.Second)
	viper.SetDefault("hub.pong_wait", 90*time.Second)
	viper.SetDefault("maintenance.heat_refresh_schedule", "@every 10m")
	viper.SetDefault("maintenance.danmaku_cleanup_schedule", "@daily")
	viper.SetDefault("maintenance.danmaku_retention_days", 7)
}
