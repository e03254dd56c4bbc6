package device

import (
	"flag"
	"os"
	"time"
)

// Config defines the configurations of the device pool.
type Config struct {
	InputDir       string
	RescanInterval time.Duration
}

var defaultConfig = Config{
	InputDir:       "/dev/input",
	RescanInterval: time.Second,
}

func init() {
	if val := os.Getenv("PADSCAN_INPUT_DIR"); val != "" {
		defaultConfig.InputDir = val
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.InputDir, "input-dir", defaultConfig.InputDir, "Directory of joystick devices (jsN).")
	flag.DurationVar(&defaultConfig.RescanInterval, "rescan", defaultConfig.RescanInterval, "Interval of looking for new devices.")
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

// NewPool creates a device pool using the config.
func (c *Config) NewPool() *Pool {
	p := NewPool()
	p.Dir = c.InputDir
	p.RescanInterval = c.RescanInterval
	return p
}
