package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"os"

	"github.com/golang/glog"

	"github.com/robotalks/padscan/pkg/cli/sh"
	"github.com/robotalks/padscan/pkg/diag"
	"github.com/robotalks/padscan/pkg/display"
	"github.com/robotalks/padscan/pkg/display/mqtt"
	"github.com/robotalks/padscan/pkg/display/web"
	fx "github.com/robotalks/padscan/pkg/framework"
	"github.com/robotalks/padscan/pkg/gamepad/device"
	"github.com/robotalks/padscan/pkg/scanner"
)

var (
	noShell  bool
	terminal = true
)

func init() {
	scanner.SetupFlags()
	device.SetupFlags()
	web.SetupFlags()
	mqtt.SetupFlags()
	diag.SetupFlags()
	sh.SetupFlags()
	flag.BoolVar(&noShell, "no-shell", noShell, "Run without the interactive shell.")
	flag.BoolVar(&terminal, "term", terminal, "Print display changes to stdout.")
}

func main() {
	flag.Parse()
	defer glog.Flush()

	pool := device.NewConfig().NewPool()
	loop := fx.NewLoop()
	loop.Add(pool, diag.NewConfig())

	var surfaces display.Mux
	if terminal {
		surfaces.Add(display.NewTerminal(os.Stdout))
	}
	var srv *web.Server
	if conf := web.NewConfig(); conf.Enabled() {
		srv = conf.NewServer()
		surfaces.Add(srv)
		loop.Add(srv)
	}
	if conf := mqtt.NewConfig(); conf.Enabled() {
		ms, err := conf.NewSurface()
		if err != nil {
			glog.Fatal(err)
		}
		surfaces.Add(ms)
		loop.Add(ms)
	}

	scanConf := scanner.NewConfig()
	loop.Interval = scanConf.Interval()
	sc := scanConf.NewScanner(pool, &surfaces)
	loop.Add(sc)
	if srv != nil {
		srv.OnToggle = func() { sc.Toggle() }
	}

	runner := fx.NewRunner().HandleSignals()
	runner.Go(fx.NamedRun("loop", loop))

	if !noShell {
		shell := sh.New(sc, pool)
		go func() {
			args := flag.Args()
			if err := shell.Run(args...); err != nil {
				glog.Error(err)
			}
			if shell.KeepRunning(args) {
				glog.Info("Scanning until interrupted")
				return
			}
			runner.Stop()
		}()
	}

	if err := runner.Wait(); err != nil {
		glog.Fatal(err)
	}
}
