package engineconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"rigid2d/internal/logger"
	"rigid2d/internal/physics"
)

// DefaultPath is the sandbox config file, relative to the process working directory.
const DefaultPath = "config/sandbox.yaml"

// EnvPrefix namespaces environment overrides, e.g. RIGID2D_PHYSICS_GRAVITY.
const EnvPrefix = "RIGID2D"

// ErrInvalid wraps every sandbox setting validation failure.
var ErrInvalid = errors.New("engineconfig: invalid setting")

// Sandbox holds window and loop preferences. Persisted across runs.
type Sandbox struct {
	Width     int    `mapstructure:"width" yaml:"width"`
	Height    int    `mapstructure:"height" yaml:"height"`
	FPS       int    `mapstructure:"fps" yaml:"fps"`
	TickRate  int    `mapstructure:"tick_rate" yaml:"tick_rate"` // physics ticks per second
	ShowFPS   bool   `mapstructure:"show_fps" yaml:"show_fps"`
	ShowStats bool   `mapstructure:"show_stats" yaml:"show_stats"`
	Scene     string `mapstructure:"scene" yaml:"scene,omitempty"` // empty = built-in demo
}

// TickSeconds is the fixed physics timestep.
func (s Sandbox) TickSeconds() float32 {
	return 1 / float32(s.TickRate)
}

// Config is everything the sandbox reads at startup.
type Config struct {
	Physics physics.Config `mapstructure:"physics" yaml:"physics"`
	Sandbox Sandbox        `mapstructure:"sandbox" yaml:"sandbox"`
	Logger  logger.Config  `mapstructure:"logger" yaml:"logger"`
}

// Default returns the settings used when no file or environment overrides exist.
func Default() Config {
	return Config{
		Physics: physics.DefaultConfig(),
		Sandbox: Sandbox{
			Width:     800,
			Height:    450,
			FPS:       60,
			TickRate:  60,
			ShowFPS:   true,
			ShowStats: true,
		},
		Logger: logger.DefaultConfig(),
	}
}

// SetDefaults registers every key with its default so that environment
// variables are picked up by Unmarshal even when no file sets the key.
func SetDefaults(v *viper.Viper) {
	d := Default()

	p := d.Physics
	v.SetDefault("physics.gravity", p.Gravity)
	v.SetDefault("physics.drag", p.Drag)
	v.SetDefault("physics.elasticity", p.Elasticity)
	v.SetDefault("physics.velocity_sleep_threshold", p.VelocitySleepThreshold)
	v.SetDefault("physics.angular_sleep_threshold", p.AngularSleepThreshold)
	v.SetDefault("physics.slop", p.Slop)
	v.SetDefault("physics.impulse_floor", p.ImpulseFloor)
	v.SetDefault("physics.restitution_threshold", p.RestitutionThreshold)
	v.SetDefault("physics.separation_tolerance", p.SeparationTolerance)
	v.SetDefault("physics.workers", p.Workers)

	s := d.Sandbox
	v.SetDefault("sandbox.width", s.Width)
	v.SetDefault("sandbox.height", s.Height)
	v.SetDefault("sandbox.fps", s.FPS)
	v.SetDefault("sandbox.tick_rate", s.TickRate)
	v.SetDefault("sandbox.show_fps", s.ShowFPS)
	v.SetDefault("sandbox.show_stats", s.ShowStats)
	v.SetDefault("sandbox.scene", s.Scene)

	l := d.Logger
	v.SetDefault("logger.level", l.Level)
	v.SetDefault("logger.format", l.Format)
	v.SetDefault("logger.log_file", l.LogFile)
	v.SetDefault("logger.max_size", l.MaxSize)
	v.SetDefault("logger.max_backups", l.MaxBackups)
	v.SetDefault("logger.max_age", l.MaxAge)
	v.SetDefault("logger.compress", l.Compress)
}

// NewViper returns a viper instance with defaults and RIGID2D_* environment binding.
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads path on top of the defaults and environment. A missing file is
// not an error: the defaults are used, as on a first run.
func Load(path string) (Config, error) {
	v := NewViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	return FromViper(v)
}

// FromViper decodes and validates the settings held by v.
func FromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks physics constants and sandbox settings.
func (c Config) Validate() error {
	if err := c.Physics.Validate(); err != nil {
		return err
	}
	s := c.Sandbox
	switch {
	case s.Width <= 0 || s.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, s.Width, s.Height)
	case s.TickRate <= 0:
		return fmt.Errorf("%w: tick_rate must be positive, got %d", ErrInvalid, s.TickRate)
	case s.FPS < 0:
		return fmt.Errorf("%w: fps must not be negative, got %d", ErrInvalid, s.FPS)
	}
	return nil
}

// Save writes c as YAML to path, creating the directory if needed.
func Save(path string, c Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
