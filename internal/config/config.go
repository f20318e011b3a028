package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Simplici0/cleanbid/internal/pricing"
	"github.com/Simplici0/cleanbid/internal/workload"
)

const envPrefix = "CLEANBID"

// Config holds application configuration sourced from config.yaml, .env and
// CLEANBID_* environment variables, in increasing precedence.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Engine   EngineConfig   `mapstructure:"engine"`
	Preview  PreviewConfig  `mapstructure:"preview"`
}

type AppConfig struct {
	Environment string `mapstructure:"environment"`
}

type HTTPConfig struct {
	Port string `mapstructure:"port"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
	// Migrate runs embedded migrations on startup. Always on in development.
	Migrate bool `mapstructure:"migrate"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// EngineConfig tunes the workload and pricing calculators.
type EngineConfig struct {
	LeadCrewThreshold  int     `mapstructure:"lead_crew_threshold"`
	MinSqftPerCleaner  float64 `mapstructure:"min_sqft_per_cleaner"`
	DefaultShiftHours  float64 `mapstructure:"default_shift_hours"`
	HybridMarketWeight float64 `mapstructure:"hybrid_market_weight"`
}

type PreviewConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

var defaults = map[string]any{
	"app.environment":             "development",
	"http.port":                   "8080",
	"database.path":               "./dev.db",
	"database.migrate":            false,
	"logging.level":               "info",
	"logging.format":              "console",
	"engine.lead_crew_threshold":  workload.DefaultPolicy().LeadCrewThreshold,
	"engine.min_sqft_per_cleaner": workload.DefaultPolicy().MinSqftPerCleaner,
	"engine.default_shift_hours":  workload.DefaultPolicy().DefaultShiftHours,
	"engine.hybrid_market_weight": pricing.DefaultPolicy().HybridMarketWeight,
	"preview.debounce":            "300ms",
}

// Load reads configuration. configFile may name an explicit YAML file;
// otherwise config.yaml is looked up in ./configs and the working directory.
func Load(configFile string) (Config, error) {
	// Best-effort: production injects real environment variables.
	_ = godotenv.Load(".env")

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.HTTP),
		validation.Field(&c.Database),
		validation.Field(&c.Logging),
		validation.Field(&c.Engine),
	)
}

func (h HTTPConfig) Validate() error {
	return validation.ValidateStruct(&h, validation.Field(&h.Port, validation.Required))
}

func (d DatabaseConfig) Validate() error {
	return validation.ValidateStruct(&d, validation.Field(&d.Path, validation.Required))
}

func (l LoggingConfig) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Level, validation.In("debug", "info", "warn", "error")),
		validation.Field(&l.Format, validation.In("json", "console")),
	)
}

func (e EngineConfig) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.LeadCrewThreshold, validation.Min(1)),
		validation.Field(&e.MinSqftPerCleaner, validation.Min(0.0)),
		validation.Field(&e.DefaultShiftHours, validation.Min(0.0), validation.Max(24.0)),
		validation.Field(&e.HybridMarketWeight, validation.Min(0.0), validation.Max(1.0)),
	)
}

func (c Config) IsDev() bool {
	return strings.EqualFold(c.App.Environment, "development")
}

// WorkloadPolicy returns the workload thresholds from the engine section.
func (c Config) WorkloadPolicy() workload.Policy {
	return workload.Policy{
		LeadCrewThreshold: c.Engine.LeadCrewThreshold,
		MinSqftPerCleaner: c.Engine.MinSqftPerCleaner,
		DefaultShiftHours: c.Engine.DefaultShiftHours,
	}
}

func (c Config) PricingPolicy() pricing.Policy {
	return pricing.Policy{HybridMarketWeight: c.Engine.HybridMarketWeight}
}
