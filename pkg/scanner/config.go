package scanner

import (
	"flag"
	"os"
	"strconv"
	"time"

	"github.com/robotalks/padscan/pkg/display"
	"github.com/robotalks/padscan/pkg/gamepad"
)

// Config defines the configurations of the scanner.
type Config struct {
	// AutoScan starts scanning without waiting for the toggle.
	AutoScan bool
	// FrameRate is the number of frames per second.
	FrameRate int
}

var defaultConfig = Config{
	FrameRate: 60,
}

func init() {
	if val, err := strconv.ParseBool(os.Getenv("PADSCAN_AUTOSCAN")); err == nil {
		defaultConfig.AutoScan = val
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.BoolVar(&defaultConfig.AutoScan, "scan", defaultConfig.AutoScan, "Start scanning on launch.")
	flag.IntVar(&defaultConfig.FrameRate, "fps", defaultConfig.FrameRate, "Frames per second.")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a config with defaults.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// Interval is the period of a frame.
func (c *Config) Interval() time.Duration {
	if c.FrameRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.FrameRate)
}

// NewScanner creates a scanner using the config.
func (c *Config) NewScanner(src gamepad.Source, surface display.Surface) *Scanner {
	s := New(src, surface)
	s.AutoScan = c.AutoScan
	return s
}
