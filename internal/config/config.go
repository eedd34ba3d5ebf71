// Package config loads the installation settings.
//
// Values are layered: Default, then the YAML file, then IORACLE_* environment
// variables. Numeric tunables may be written as strings in the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/dkuanyshbaev/ioracle-core/pkg/adapters/file"
	"github.com/dkuanyshbaev/ioracle-core/pkg/adapters/redis"
	"github.com/dkuanyshbaev/ioracle-core/pkg/adapters/serial"
	"github.com/dkuanyshbaev/ioracle-core/pkg/classifier"
	"github.com/dkuanyshbaev/ioracle-core/pkg/control"
	"github.com/dkuanyshbaev/ioracle-core/pkg/session"
	"github.com/dkuanyshbaev/ioracle-core/pkg/symbol"
	"github.com/dkuanyshbaev/ioracle-core/pkg/throttle"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Store kinds for the usage counter.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

// Drivers for the sensor and the actuator.
const (
	DriverMemory  = "memory"
	DriverSerial  = "serial"
	DriverProcess = "process"
)

// Config is the complete installation configuration.
type Config struct {
	Control    Control    `yaml:"control" mapstructure:"control"`
	Classifier Classifier `yaml:"classifier" mapstructure:"classifier"`
	Timing     Timing     `yaml:"timing" mapstructure:"timing"`
	Throttle   Throttle   `yaml:"throttle" mapstructure:"throttle"`
	Sensor     Sensor     `yaml:"sensor" mapstructure:"sensor"`
	Actuator   Actuator   `yaml:"actuator" mapstructure:"actuator"`
	Metrics    Metrics    `yaml:"metrics" mapstructure:"metrics"`
	Log        Log        `yaml:"log" mapstructure:"log"`
}

// Control configures the command gate and the result endpoint.
type Control struct {
	Gate         string        `yaml:"gate" mapstructure:"gate" env:"IORACLE_GATE"`
	Out          string        `yaml:"out" mapstructure:"out" env:"IORACLE_OUT"`
	PollInterval time.Duration `yaml:"poll_interval" mapstructure:"poll_interval" env:"IORACLE_POLL_INTERVAL"`
	ReadTimeout  time.Duration `yaml:"read_timeout" mapstructure:"read_timeout" env:"IORACLE_READ_TIMEOUT"`
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout" env:"IORACLE_WRITE_TIMEOUT"`
}

// Classifier holds the line classification parameters.
type Classifier struct {
	Multiplier float64 `yaml:"multiplier" mapstructure:"multiplier" env:"IORACLE_MULTIPLIER"`
	Bias       float64 `yaml:"bias" mapstructure:"bias" env:"IORACLE_BIAS"`
	Threshold  float64 `yaml:"threshold" mapstructure:"threshold" env:"IORACLE_THRESHOLD"`
}

// Timing holds sampling windows and dwells.
type Timing struct {
	PrimaryWindow time.Duration `yaml:"primary_window" mapstructure:"primary_window" env:"IORACLE_PRIMARY_WINDOW"`
	RelatedWindow time.Duration `yaml:"related_window" mapstructure:"related_window" env:"IORACLE_RELATED_WINDOW"`
	LineDwell     time.Duration `yaml:"line_dwell" mapstructure:"line_dwell" env:"IORACLE_LINE_DWELL"`
	PresentDwell  time.Duration `yaml:"present_dwell" mapstructure:"present_dwell" env:"IORACLE_PRESENT_DWELL"`
}

// Throttle configures the pump usage counter.
type Throttle struct {
	Limit   int           `yaml:"limit" mapstructure:"limit" env:"IORACLE_THROTTLE_LIMIT"`
	Store   string        `yaml:"store" mapstructure:"store" env:"IORACLE_THROTTLE_STORE"`
	Path    string        `yaml:"path" mapstructure:"path" env:"IORACLE_THROTTLE_PATH"`
	Redis   Redis         `yaml:"redis" mapstructure:"redis"`
	Lock    bool          `yaml:"lock" mapstructure:"lock" env:"IORACLE_THROTTLE_LOCK"`
	LockTTL time.Duration `yaml:"lock_ttl" mapstructure:"lock_ttl" env:"IORACLE_THROTTLE_LOCK_TTL"`
}

// Redis locates the shared counter.
type Redis struct {
	Addr     string `yaml:"addr" mapstructure:"addr" env:"IORACLE_REDIS_ADDR"`
	Password string `yaml:"password" mapstructure:"password" env:"IORACLE_REDIS_PASSWORD"`
	DB       int    `yaml:"db" mapstructure:"db" env:"IORACLE_REDIS_DB"`
	Key      string `yaml:"key" mapstructure:"key" env:"IORACLE_REDIS_KEY"`
}

// Sensor selects the sample source.
type Sensor struct {
	Driver string `yaml:"driver" mapstructure:"driver" env:"IORACLE_SENSOR_DRIVER"`
	Device string `yaml:"device" mapstructure:"device" env:"IORACLE_SENSOR_DEVICE"`
	Tag    string `yaml:"tag" mapstructure:"tag" env:"IORACLE_SENSOR_TAG"`
}

// Actuator selects the hardware driver.
type Actuator struct {
	Driver string `yaml:"driver" mapstructure:"driver" env:"IORACLE_ACTUATOR_DRIVER"`
	Tools  string `yaml:"tools" mapstructure:"tools" env:"IORACLE_TOOLS"`
	Colour string `yaml:"colour" mapstructure:"colour" env:"IORACLE_COLOUR"`
}

// Metrics configures the optional HTTP server. An empty Listen disables it.
type Metrics struct {
	Listen string `yaml:"listen" mapstructure:"listen" env:"IORACLE_METRICS_LISTEN"`
}

// Log configures the slog handler.
type Log struct {
	Level  string `yaml:"level" mapstructure:"level" env:"IORACLE_LOG_LEVEL"`
	Format string `yaml:"format" mapstructure:"format" env:"IORACLE_LOG_FORMAT"`
}

// Default returns the installation defaults.
func Default() Config {
	params := classifier.DefaultParams()
	timing := symbol.DefaultTiming()
	return Config{
		Control: Control{
			Gate:         control.DefaultGatePath,
			Out:          control.DefaultOutPath,
			PollInterval: control.DefaultPollInterval,
			ReadTimeout:  control.DefaultReadTimeout,
			WriteTimeout: control.DefaultWriteTimeout,
		},
		Classifier: Classifier{
			Multiplier: params.Multiplier,
			Bias:       params.Bias,
			Threshold:  params.Threshold,
		},
		Timing: Timing{
			PrimaryWindow: timing.PrimaryWindow,
			RelatedWindow: timing.RelatedWindow,
			LineDwell:     timing.LineDwell,
			PresentDwell:  session.DefaultPresentDwell,
		},
		Throttle: Throttle{
			Limit:   throttle.DefaultLimit,
			Store:   StoreFile,
			Path:    file.DefaultPath,
			Redis:   Redis{Addr: "localhost:6379", Key: redis.DefaultKey},
			LockTTL: 5 * time.Second,
		},
		Sensor: Sensor{
			Driver: DriverSerial,
			Device: serial.DefaultDevice,
			Tag:    serial.DefaultTag,
		},
		Actuator: Actuator{
			Driver: DriverProcess,
			Tools:  "/etc/ioracle/tools.yaml",
			Colour: symbol.DefaultColour,
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads path (if not empty) over the defaults, applies environment
// overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return fmt.Errorf("failed to create config decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

// Validate rejects settings the installation cannot run with.
func (c Config) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...)))
	}

	if c.Control.Gate == "" {
		invalid("control.gate is empty")
	}
	if c.Control.Out == "" {
		invalid("control.out is empty")
	}
	if c.Control.PollInterval <= 0 {
		invalid("control.poll_interval must be positive")
	}
	if c.Timing.PrimaryWindow <= 0 {
		invalid("timing.primary_window must be positive")
	}
	if c.Timing.RelatedWindow <= 0 {
		invalid("timing.related_window must be positive")
	}
	if c.Timing.LineDwell < 0 {
		invalid("timing.line_dwell must not be negative")
	}
	if c.Timing.PresentDwell < 0 {
		invalid("timing.present_dwell must not be negative")
	}
	if c.Throttle.Limit <= 0 {
		invalid("throttle.limit must be positive")
	}

	switch c.Throttle.Store {
	case StoreMemory:
	case StoreFile:
		if c.Throttle.Path == "" {
			invalid("throttle.path is required for the file store")
		}
	case StoreRedis:
		if c.Throttle.Redis.Addr == "" {
			invalid("throttle.redis.addr is required for the redis store")
		}
	default:
		invalid("unknown throttle.store %q", c.Throttle.Store)
	}
	if c.Throttle.Lock && c.Throttle.Store != StoreRedis {
		invalid("throttle.lock requires the redis store")
	}

	switch c.Sensor.Driver {
	case DriverMemory:
	case DriverSerial:
		if c.Sensor.Device == "" {
			invalid("sensor.device is required for the serial driver")
		}
	default:
		invalid("unknown sensor.driver %q", c.Sensor.Driver)
	}

	switch c.Actuator.Driver {
	case DriverMemory, DriverProcess:
	default:
		invalid("unknown actuator.driver %q", c.Actuator.Driver)
	}

	return errors.Join(errs...)
}

// ClassifierParams converts the classifier section.
func (c Config) ClassifierParams() classifier.Params {
	return classifier.Params{
		Multiplier: c.Classifier.Multiplier,
		Bias:       c.Classifier.Bias,
		Threshold:  c.Classifier.Threshold,
	}
}

// SymbolTiming converts the acquisition part of the timing section.
func (c Config) SymbolTiming() symbol.Timing {
	return symbol.Timing{
		PrimaryWindow: c.Timing.PrimaryWindow,
		RelatedWindow: c.Timing.RelatedWindow,
		LineDwell:     c.Timing.LineDwell,
	}
}
