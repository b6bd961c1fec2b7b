package config

import (
	"github.com/spf13/pflag"
)

// Flag names shared by the CLI and ApplyFlags.
const (
	FlagLEDs       = "leds"
	FlagPattern    = "pattern"
	FlagSpeed      = "speed"
	FlagBrightness = "brightness"
	FlagPin        = "pin"
	FlagLEDType    = "led-type"
	FlagColorOrder = "color-order"
	FlagAddr       = "addr"
	FlagLogLevel   = "log-level"
	FlagSeed       = "seed"
)

// RegisterFlags adds the settings flags to fs with Default values.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.IntP(FlagLEDs, "n", d.Strip.LEDCount, "number of LEDs on the strip")
	fs.StringP(FlagPattern, "p", d.Strip.Pattern, "pattern id")
	fs.IntP(FlagSpeed, "s", d.Strip.Speed, "animation speed 0-100")
	fs.IntP(FlagBrightness, "b", d.Strip.Brightness, "brightness percent 10-100")
	fs.Int(FlagPin, d.Firmware.Pin, "data pin written into firmware")
	fs.String(FlagLEDType, d.Firmware.LEDType, "FastLED chipset")
	fs.String(FlagColorOrder, d.Firmware.ColorOrder, "FastLED color order")
	fs.String(FlagAddr, d.Server.Addr, "HTTP listen address")
	fs.String(FlagLogLevel, d.Log.Level, "log level (debug, info, warn, error)")
	fs.Int64(FlagSeed, 0, "random seed for fire and sparkle, 0 for time based")
}

// ApplyFlags copies every flag the user set explicitly onto c, giving
// command line values precedence over the file. Unregistered flags are
// skipped.
func ApplyFlags(c *Config, fs *pflag.FlagSet) {
	fs.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case FlagLEDs:
			c.Strip.LEDCount, _ = fs.GetInt(f.Name)
		case FlagPattern:
			c.Strip.Pattern, _ = fs.GetString(f.Name)
		case FlagSpeed:
			c.Strip.Speed, _ = fs.GetInt(f.Name)
		case FlagBrightness:
			c.Strip.Brightness, _ = fs.GetInt(f.Name)
		case FlagPin:
			c.Firmware.Pin, _ = fs.GetInt(f.Name)
		case FlagLEDType:
			c.Firmware.LEDType, _ = fs.GetString(f.Name)
		case FlagColorOrder:
			c.Firmware.ColorOrder, _ = fs.GetString(f.Name)
		case FlagAddr:
			c.Server.Addr, _ = fs.GetString(f.Name)
		case FlagLogLevel:
			c.Log.Level, _ = fs.GetString(f.Name)
		case FlagSeed:
			c.Seed, _ = fs.GetInt64(f.Name)
		}
	})
	c.Normalize()
}

// Resolve builds the effective config: defaults, then path (if any), then
// explicitly set flags.
func Resolve(path string, fs *pflag.FlagSet) (*Config, error) {
	c := Default()
	if path != "" {
		var err error
		if c, err = Load(path); err != nil {
			return nil, err
		}
	}
	if fs != nil {
		ApplyFlags(c, fs)
	}
	return c, nil
}
