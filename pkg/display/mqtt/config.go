package mqtt

import (
	"flag"
	"fmt"
	"os"

	"github.com/robotalks/padscan/pkg/env"
	"github.com/robotalks/padscan/pkg/msgs"
)

// Config defines the configurations of the MQTT surface.
type Config struct {
	// BrokerURL is like mqtt://host:port/topic-prefix/,
	// empty disables the surface.
	BrokerURL string
	// Session is the topic level under the prefix,
	// defaults to an ID derived from the machine ID.
	Session string
	QoS     int
}

var defaultConfig Config

func init() {
	if val := os.Getenv("PADSCAN_MQTT_URL"); val != "" {
		defaultConfig.BrokerURL = val
	}
	if val := os.Getenv("PADSCAN_SESSION"); val != "" {
		defaultConfig.Session = val
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.BrokerURL, "mqtt", defaultConfig.BrokerURL, "MQTT broker URL, e.g. mqtt://localhost:1883/padscan/")
	flag.StringVar(&defaultConfig.Session, "session", defaultConfig.Session, "Session name under the MQTT topic prefix.")
	flag.IntVar(&defaultConfig.QoS, "mqtt-qos", defaultConfig.QoS, "MQTT QoS for publishing.")
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

// Enabled indicates a broker is configured.
func (c *Config) Enabled() bool {
	return c.BrokerURL != ""
}

// NewSurface creates the surface and its queue.
func (c *Config) NewSurface() (*Surface, error) {
	if c.QoS < 0 || c.QoS > 2 {
		return nil, fmt.Errorf("invalid MQTT QoS %d", c.QoS)
	}
	opts, topicPrefix, err := ClientOptionsFromURL(c.BrokerURL)
	if err != nil {
		return nil, fmt.Errorf("invalid MQTT broker URL: %w", err)
	}
	session := c.Session
	if session == "" {
		session = env.SessionID()
	}
	opts.SetBinaryWill(topicPrefix+msgs.MetaTopic(session), nil, 1, true)
	if opts.ClientID == "" {
		opts.SetClientID("padscan:" + session)
	}
	s := NewSurfaceWithQueue(NewQueue(opts, topicPrefix), session)
	s.QoS = byte(c.QoS)
	s.Meta = msgs.NewSessionMeta(session)
	return s, nil
}
