// Package config manages application configuration from files and environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/klytics/coursegrid/internal/estimate"
	"github.com/klytics/coursegrid/internal/formats/xlsx"
	"github.com/klytics/coursegrid/internal/layout"
	"github.com/klytics/coursegrid/internal/stepik"
)

// EnvPrefix is prepended to every environment override, e.g. COURSEGRID_API_URL.
const EnvPrefix = "COURSEGRID"

// Config holds the application configuration.
type Config struct {
	APIURL  string                 `mapstructure:"api_url" validate:"required,http_url"`
	Session estimate.SessionLimits `mapstructure:"session"`
	Layout  struct {
		AnchorRow   int     `mapstructure:"anchor_row" validate:"gte=0"`
		AnchorCol   int     `mapstructure:"anchor_col" validate:"gte=0"`
		ColumnScale float64 `mapstructure:"column_scale" validate:"gt=0"`
	} `mapstructure:"layout"`
	Palette xlsx.Palette `mapstructure:"palette"`
}

// Load reads ./.env, ~/.coursegrid/config.yaml and COURSEGRID_* environment
// variables, in increasing order of precedence.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("could not read .env: %w", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir())

	setDefaults()

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file (non-fatal if missing)
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("could not read %s: %w", ConfigPath(), err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults() {
	opts := layout.DefaultOptions()
	limits := estimate.DefaultLimits()
	palette := xlsx.DefaultPalette()

	viper.SetDefault("api_url", stepik.DefaultBaseURL)
	viper.SetDefault("session.min", limits.Min)
	viper.SetDefault("session.max", limits.Max)
	viper.SetDefault("layout.anchor_row", opts.AnchorRow)
	viper.SetDefault("layout.anchor_col", opts.AnchorCol)
	viper.SetDefault("layout.column_scale", opts.ColumnScale)
	viper.SetDefault("palette.course", palette.Course)
	viper.SetDefault("palette.section", palette.Section)
	viper.SetDefault("palette.lesson", palette.Lesson)
	viper.SetDefault("palette.unused", palette.Unused)
}

// Validate checks that the configuration can drive a run.
func (c *Config) Validate() error {
	if err := c.Session.Validate(); err != nil {
		return err
	}

	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fieldError(verrs[0])
		}
		return err
	}

	return c.Palette.Validate()
}

var validate = newValidator()

// newValidator reports fields by their config key rather than the Go name.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func fieldError(fe validator.FieldError) error {
	key := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s must be set", key)
	case "http_url":
		return fmt.Errorf("%s %q is not a valid http(s) URL", key, fe.Value())
	case "gte":
		return fmt.Errorf("%s must not be negative, got %v", key, fe.Value())
	case "gt":
		return fmt.Errorf("%s must be positive, got %v", key, fe.Value())
	default:
		return fmt.Errorf("%s failed %q check", key, fe.Tag())
	}
}

// LayoutOptions returns the layout settings as engine options.
func (c *Config) LayoutOptions() layout.Options {
	return layout.Options{
		AnchorRow:   c.Layout.AnchorRow,
		AnchorCol:   c.Layout.AnchorCol,
		ColumnScale: c.Layout.ColumnScale,
	}
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".coursegrid"
	}
	return filepath.Join(home, ".coursegrid")
}
