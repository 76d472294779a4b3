package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/classward/classward-api/internal/latepolicy"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName           string
	AppEnv            string
	AppPort           string
	DatabaseURL       string
	RedisURL          string
	NATSURL           string
	JWTSecret         string
	DashboardCacheTTL time.Duration
	StrictDeadlines   bool
	LatePolicy        latepolicy.Config
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and an optional
// .env file. Late-policy knobs are tunable without a code change; the loaded
// values are passed explicitly to the services that need them.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("CLASSWARD")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Classward API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("dashboard.cache_ttl", "5m")
	v.SetDefault("late.grace_minutes", 10)
	v.SetDefault("late.penalty_per_day", 0.10)
	v.SetDefault("late.penalty_cap", 0.50)
	v.SetDefault("submissions.strict_deadlines", false)

	ttlString := v.GetString("dashboard.cache_ttl")
	if ttlString == "" {
		ttlString = "5m"
	}

	ttl, err := time.ParseDuration(ttlString)
	if err != nil {
		return Config{}, fmt.Errorf("invalid dashboard cache ttl: %w", err)
	}

	policy := latepolicy.Config{
		GraceMinutes:  v.GetInt("late.grace_minutes"),
		PenaltyPerDay: v.GetFloat64("late.penalty_per_day"),
		PenaltyCap:    v.GetFloat64("late.penalty_cap"),
	}

	if policy.GraceMinutes < 0 {
		return Config{}, fmt.Errorf("late grace minutes must not be negative")
	}
	if policy.PenaltyPerDay < 0 || policy.PenaltyPerDay > 1 {
		return Config{}, fmt.Errorf("late penalty per day must be within [0, 1]")
	}
	if policy.PenaltyCap < 0 || policy.PenaltyCap > 1 {
		return Config{}, fmt.Errorf("late penalty cap must be within [0, 1]")
	}

	cfg := Config{
		AppName:           v.GetString("app.name"),
		AppEnv:            v.GetString("app.env"),
		AppPort:           v.GetString("app.port"),
		DatabaseURL:       v.GetString("database.url"),
		RedisURL:          v.GetString("redis.url"),
		NATSURL:           v.GetString("nats.url"),
		JWTSecret:         v.GetString("jwt.secret"),
		DashboardCacheTTL: ttl,
		StrictDeadlines:   v.GetBool("submissions.strict_deadlines"),
		LatePolicy:        policy,
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	return cfg, nil
}
