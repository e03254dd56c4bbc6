package web

import (
	"flag"
	"os"
)

// Config defines the configurations of the web viewer.
type Config struct {
	// Addr is the listen address, empty disables the viewer.
	Addr string
}

var defaultConfig = Config{
	Addr: "localhost:8470",
}

func init() {
	if val, ok := os.LookupEnv("PADSCAN_HTTP"); ok {
		defaultConfig.Addr = val
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Addr, "http", defaultConfig.Addr, "Listen address of the web viewer, empty to disable.")
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

// Enabled indicates the viewer should be served.
func (c *Config) Enabled() bool {
	return c.Addr != ""
}

// NewServer creates the server.
func (c *Config) NewServer() *Server {
	return NewServer(c.Addr)
}
