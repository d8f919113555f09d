package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. VISIONHERO_GAME_DURATION.
const EnvPrefix = "VISIONHERO"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// GameConfig holds session settings.
type GameConfig struct {
	Duration time.Duration `mapstructure:"duration"`
	Seed     int64         `mapstructure:"seed"` // 0 seeds from the clock
	Width    int           `mapstructure:"width"`
	Height   int           `mapstructure:"height"`
}

// InputConfig describes the command coordinate space.
type InputConfig struct {
	Width         int           `mapstructure:"width"`
	Height        int           `mapstructure:"height"`
	Sensitivity   float64       `mapstructure:"sensitivity"`
	ShootCooldown time.Duration `mapstructure:"shootCooldown"`
}

type AssetsConfig struct {
	Dir string `mapstructure:"dir"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type AudioConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	Volume  float64 `mapstructure:"volume"`
}

// ScoreboardConfig selects where finished sessions are recorded.
type ScoreboardConfig struct {
	Driver string `mapstructure:"driver"` // sqlite, postgres or none
	DSN    string `mapstructure:"dsn"`
	Top    int    `mapstructure:"top"`
}

type TelemetryConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type WindowConfig struct {
	Scale float64 `mapstructure:"scale"`
}

// Config is the full application configuration.
type Config struct {
	Game       GameConfig       `mapstructure:"game"`
	Input      InputConfig      `mapstructure:"input"`
	Assets     AssetsConfig     `mapstructure:"assets"`
	Log        LogConfig        `mapstructure:"log"`
	Audio      AudioConfig      `mapstructure:"audio"`
	Scoreboard ScoreboardConfig `mapstructure:"scoreboard"`
	Telemetry  TelemetryConfig  `mapstructure:"telemetry"`
	Window     WindowConfig     `mapstructure:"window"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("game.duration", "90s")
	v.SetDefault("game.seed", 0)
	v.SetDefault("game.width", 1280)
	v.SetDefault("game.height", 720)

	v.SetDefault("input.width", 640)
	v.SetDefault("input.height", 480)
	v.SetDefault("input.sensitivity", 0.5)
	v.SetDefault("input.shootCooldown", "500ms")

	v.SetDefault("assets.dir", "assets")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	v.SetDefault("audio.enabled", true)
	v.SetDefault("audio.volume", 0.5)

	v.SetDefault("scoreboard.driver", "sqlite")
	v.SetDefault("scoreboard.dsn", "vision_hero.db")
	v.SetDefault("scoreboard.top", 5)

	v.SetDefault("telemetry.enabled", false)

	v.SetDefault("window.scale", 1.0)
}

// Load builds the configuration from defaults, an optional file at path
// (JSON, YAML or TOML by extension) and VISIONHERO_* environment variables,
// in increasing priority. An empty path skips the file.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the built-in configuration, ignoring the environment.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return cfg
}

// Validate checks ranges that the engine and drivers rely on.
func (c Config) Validate() error {
	switch {
	case c.Game.Duration <= 0:
		return fmt.Errorf("%w: game.duration must be positive", ErrInvalid)
	case c.Game.Width <= 0 || c.Game.Height <= 0:
		return fmt.Errorf("%w: field size must be positive", ErrInvalid)
	case c.Input.Width <= 0 || c.Input.Height <= 0:
		return fmt.Errorf("%w: input size must be positive", ErrInvalid)
	case c.Input.Sensitivity <= 0 || c.Input.Sensitivity > 1:
		return fmt.Errorf("%w: input.sensitivity must be in (0, 1]", ErrInvalid)
	case c.Input.ShootCooldown < 0:
		return fmt.Errorf("%w: input.shootCooldown must not be negative", ErrInvalid)
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return fmt.Errorf("%w: audio.volume must be in [0, 1]", ErrInvalid)
	case c.Window.Scale <= 0:
		return fmt.Errorf("%w: window.scale must be positive", ErrInvalid)
	}
	switch c.Scoreboard.Driver {
	case "sqlite", "postgres", "none":
	default:
		return fmt.Errorf("%w: unknown scoreboard.driver %q", ErrInvalid, c.Scoreboard.Driver)
	}
	return nil
}
