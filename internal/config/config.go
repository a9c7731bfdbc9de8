package config

import (
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"pricing-simulator/internal/data"
	"pricing-simulator/internal/model"
)

// EnvPrefix prefixes every environment override, e.g. PRICING_DATASET_PATH.
const EnvPrefix = "PRICING"

// Config is the on-disk configuration shape (YAML), overridable from the environment.
type Config struct {
	Dataset    DatasetConfig    `yaml:"dataset"`
	Simulation SimulationConfig `yaml:"simulation"`
	Server     ServerConfig     `yaml:"server"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type DatasetConfig struct {
	Path        string   `yaml:"path" split_words:"true" validate:"required"`
	Encoding    string   `yaml:"encoding" split_words:"true"`
	Delimiter   string   `yaml:"delimiter" split_words:"true"`
	DateLayouts []string `yaml:"date_layouts" split_words:"true"`
}

// SimulationConfig holds the initial slider values and the monthly allocation mode.
type SimulationConfig struct {
	ProfitMarginPct float64 `yaml:"profit_margin_pct" split_words:"true" validate:"gte=0,lte=100"`
	Elasticity      float64 `yaml:"elasticity" split_words:"true" validate:"gte=0,lte=1"`
	Allocation      string  `yaml:"allocation" split_words:"true" validate:"omitempty,oneof=per_transaction quantity_share"`
}

type ServerConfig struct {
	Port           string   `yaml:"port" split_words:"true" validate:"required,numeric"`
	Env            string   `yaml:"env" split_words:"true"` // "production" switches gin to release mode
	StaticDir      string   `yaml:"static_dir" split_words:"true"`
	AllowedOrigins []string `yaml:"allowed_origins" split_words:"true"`

	// RateLimit caps /api/v1 requests per second across all clients; 0 disables it.
	RateLimit float64 `yaml:"rate_limit" split_words:"true" validate:"gte=0"`
	RateBurst int     `yaml:"rate_burst" split_words:"true" validate:"gte=0"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" split_words:"true" validate:"omitempty,oneof=trace debug info warn warning error fatal panic"`
	Format string `yaml:"format" split_words:"true" validate:"omitempty,oneof=text json"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Path:     "online_retail.csv",
			Encoding: data.DefaultEncoding,
		},
		Simulation: SimulationConfig{
			ProfitMarginPct: model.DefaultProfitMarginPct,
			Elasticity:      model.DefaultElasticity,
			Allocation:      string(model.DefaultAllocation),
		},
		Server: ServerConfig{
			Port:           "8080",
			StaticDir:      "./web/dist",
			AllowedOrigins: []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads path (optional), applies environment overrides and validates.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked merges defaults, the YAML file (when path is non-empty) and
// the environment, without validating.
func LoadUnchecked(path string) (*Config, error) {
	c := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "read config")
		}
		if err := yaml.Unmarshal(raw, c); err != nil {
			return nil, errors.Wrapf(err, "parse config %s", path)
		}
	}
	if err := envconfig.Process(EnvPrefix, c); err != nil {
		return nil, errors.Wrap(err, "read environment overrides")
	}
	return c, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report YAML key names so errors point at the config file.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	return nil
}

// Params converts the configured defaults to SimulationParams.
func (s SimulationConfig) Params() model.SimulationParams {
	return model.ParamsFromPercent(s.ProfitMarginPct, s.Elasticity)
}

// AllocationMode returns the parsed allocation; invalid values fall back to the default.
func (s SimulationConfig) AllocationMode() model.Allocation {
	a, err := model.ParseAllocation(s.Allocation)
	if err != nil {
		return model.DefaultAllocation
	}
	return a
}

// LoaderOptions maps the dataset section onto the loader.
func (d DatasetConfig) LoaderOptions() data.LoaderOptions {
	return data.LoaderOptions{
		Encoding:    d.Encoding,
		Delimiter:   d.Delimiter,
		DateLayouts: d.DateLayouts,
	}
}
