package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aerissecure/tableresize"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// TABLERESIZE_LAYOUT_VIEWPORT_WIDTH.
const EnvPrefix = "TABLERESIZE"

// Measurer names accepted by layout.measurer.
const (
	MeasurerStatic = "static"
	MeasurerChrome = "chrome"
)

var ErrUnknownMeasurer = errors.New("unknown measurer")

// Config is the root configuration for the tableresize command.
type Config struct {
	Logger LoggerConfig `mapstructure:"logger" yaml:"logger"`
	Layout LayoutConfig `mapstructure:"layout" yaml:"layout"`
	Resize ResizeConfig `mapstructure:"resize" yaml:"resize"`
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig defines the color names for different log levels.
type ColorConfig struct {
	Debug string `mapstructure:"debug" yaml:"debug"`
	Info  string `mapstructure:"info" yaml:"info"`
	Warn  string `mapstructure:"warn" yaml:"warn"`
	Error string `mapstructure:"error" yaml:"error"`
}

// LayoutConfig selects how rendered widths are measured.
type LayoutConfig struct {
	Measurer       string       `mapstructure:"measurer" yaml:"measurer"`
	ViewportWidth  int          `mapstructure:"viewport_width" yaml:"viewport_width"`
	ViewportHeight int          `mapstructure:"viewport_height" yaml:"viewport_height"`
	Chrome         ChromeConfig `mapstructure:"chrome" yaml:"chrome"`
}

// ChromeConfig configures the headless browser measurer.
type ChromeConfig struct {
	Headless bool          `mapstructure:"headless" yaml:"headless"`
	ExecPath string        `mapstructure:"exec_path" yaml:"exec_path"`
	Timeout  time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// ResizeConfig holds the defaults for resize requests. Flags override them.
type ResizeConfig struct {
	Mode      string `mapstructure:"mode" yaml:"mode"`
	Direction string `mapstructure:"direction" yaml:"direction"`
}

// NewDefaultConfig returns a Config populated with every default.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// This should not happen with defaults.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// SetDefaults initializes default values for every configuration parameter.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "tableresize")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")

	// -- Layout --
	v.SetDefault("layout.measurer", MeasurerStatic)
	v.SetDefault("layout.viewport_width", 1024)
	v.SetDefault("layout.viewport_height", 768)
	v.SetDefault("layout.chrome.headless", true)
	v.SetDefault("layout.chrome.exec_path", "")
	v.SetDefault("layout.chrome.timeout", "30s")

	// -- Resize --
	v.SetDefault("resize.mode", tableresize.Default.String())
	v.SetDefault("resize.direction", tableresize.LTR.String())
}

// Bind wires environment overrides into v: TABLERESIZE_ prefix, with dots
// in keys replaced by underscores.
func Bind(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load unmarshals v into a Config and validates it. Defaults are applied
// first, so v only needs to carry overrides.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for sane values.
func (c *Config) Validate() error {
	switch c.Layout.Measurer {
	case MeasurerStatic, MeasurerChrome:
	default:
		return fmt.Errorf("layout.measurer %q: %w", c.Layout.Measurer, ErrUnknownMeasurer)
	}
	if c.Layout.ViewportWidth <= 0 {
		return fmt.Errorf("layout.viewport_width must be a positive integer")
	}
	if c.Layout.ViewportHeight <= 0 {
		return fmt.Errorf("layout.viewport_height must be a positive integer")
	}
	if c.Layout.Chrome.Timeout < 0 {
		return fmt.Errorf("layout.chrome.timeout must not be negative")
	}
	if _, err := c.Resize.ColumnResizing(); err != nil {
		return fmt.Errorf("resize.mode: %w", err)
	}
	if _, err := c.Resize.Dir(); err != nil {
		return fmt.Errorf("resize.direction: %w", err)
	}
	return nil
}

// ColumnResizing parses Mode.
func (r ResizeConfig) ColumnResizing() (tableresize.ColumnResizing, error) {
	return tableresize.ParseColumnResizing(r.Mode)
}

// Dir parses Direction.
func (r ResizeConfig) Dir() (tableresize.Direction, error) {
	return tableresize.ParseDirection(r.Direction)
}
