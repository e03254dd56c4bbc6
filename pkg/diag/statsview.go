// Package diag serves the runtime statistics dashboard.
package diag

import (
	"context"
	"flag"
	"net/http"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/golang/glog"

	fx "github.com/robotalks/padscan/pkg/framework"
)

// Path is where the dashboard is served.
const Path = "/debug/statsview"

// Config defines the configurations of the dashboard.
type Config struct {
	// Addr is the listen address, empty disables the dashboard.
	Addr string
}

var defaultConfig Config

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Addr, "statsview", defaultConfig.Addr, "Listen address of runtime stats dashboard, empty to disable.")
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

// AddToLoop implements LoopAdder, nothing is added when disabled.
func (c *Config) AddToLoop(l *fx.Loop) {
	if c.Addr != "" {
		l.AddRunnable(fx.NamedRun("statsview", fx.RunFunc(c.Run)))
	}
}

// Run serves the dashboard until ctx is done.
func (c *Config) Run(ctx context.Context) error {
	viewer.SetConfiguration(viewer.WithAddr(c.Addr))
	mgr := statsview.New()
	errCh := make(chan error, 1)
	go func() {
		errCh <- mgr.Start()
	}()
	glog.Infof("Runtime stats available at http://%s%s", c.Addr, Path)
	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		mgr.Stop()
		return nil
	}
}
