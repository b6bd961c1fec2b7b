// Package config loads and saves studio settings as YAML or TOML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/coreman2200/funtimes-ledstudio/internal/clock"
	"github.com/coreman2200/funtimes-ledstudio/internal/pattern"
)

// ErrUnsupportedFormat is returned for file extensions other than
// .yaml, .yml and .toml.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Strip holds the user-facing animation settings.
type Strip struct {
	LEDCount   int    `yaml:"led_count" toml:"led_count" json:"led_count"`
	Pattern    string `yaml:"pattern" toml:"pattern" json:"pattern"`
	Speed      int    `yaml:"speed" toml:"speed" json:"speed"`
	Brightness int    `yaml:"brightness" toml:"brightness" json:"brightness"`
}

// Firmware describes the target board wiring written into generated code.
type Firmware struct {
	Pin        int    `yaml:"pin" toml:"pin"`
	LEDType    string `yaml:"led_type" toml:"led_type"`
	ColorOrder string `yaml:"color_order" toml:"color_order"`
}

type Server struct {
	Addr string `yaml:"addr" toml:"addr"`
}

type Log struct {
	Level string `yaml:"level" toml:"level"`
}

type Config struct {
	Strip    Strip    `yaml:"strip" toml:"strip"`
	Firmware Firmware `yaml:"firmware" toml:"firmware"`
	Server   Server   `yaml:"server" toml:"server"`
	Log      Log      `yaml:"log" toml:"log"`

	// Seed fixes the random source of fire and sparkle; 0 seeds from time.
	Seed int64 `yaml:"seed,omitempty" toml:"seed,omitempty"`
}

func DefaultStrip() Strip {
	return Strip{LEDCount: 20, Pattern: string(pattern.Rainbow), Speed: 50, Brightness: 100}
}

func Default() *Config {
	return &Config{
		Strip:    DefaultStrip(),
		Firmware: Firmware{Pin: 6, LEDType: "WS2812B", ColorOrder: "GRB"},
		Server:   Server{Addr: ":8080"},
		Log:      Log{Level: "info"},
	}
}

// Normalize clamps every strip field into its valid range and fills empty
// strings from Default.
func (s Strip) Normalize() Strip {
	if s.LEDCount < 1 {
		s.LEDCount = 1
	}
	s.Pattern = string(pattern.Parse(s.Pattern))
	if s.Pattern == "" {
		s.Pattern = string(pattern.Rainbow)
	}
	s.Speed = clock.ClampSpeed(s.Speed)
	s.Brightness = pattern.ClampBrightness(s.Brightness)
	return s
}

func (c *Config) Normalize() {
	d := Default()
	c.Strip = c.Strip.Normalize()
	if c.Firmware.LEDType == "" {
		c.Firmware.LEDType = d.Firmware.LEDType
	}
	if c.Firmware.ColorOrder == "" {
		c.Firmware.ColorOrder = d.Firmware.ColorOrder
	}
	if c.Server.Addr == "" {
		c.Server.Addr = d.Server.Addr
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}

type format int

const (
	formatYAML format = iota
	formatTOML
)

func formatOf(path string) (format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML, nil
	case ".toml":
		return formatTOML, nil
	default:
		return 0, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}

// Load reads path on top of Default, so omitted keys keep their defaults.
func Load(path string) (*Config, error) {
	f, err := formatOf(path)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	c := Default()
	switch f {
	case formatTOML:
		err = toml.Unmarshal(b, c)
	default:
		err = yaml.Unmarshal(b, c)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	c.Normalize()
	return c, nil
}

func Save(path string, c *Config) error {
	f, err := formatOf(path)
	if err != nil {
		return err
	}
	var b []byte
	switch f {
	case formatTOML:
		b, err = toml.Marshal(c)
	default:
		b, err = yaml.Marshal(c)
	}
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
