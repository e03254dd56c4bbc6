package sh

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/padscan/pkg/display"
	fx "github.com/robotalks/padscan/pkg/framework"
	"github.com/robotalks/padscan/pkg/gamepad"
	"github.com/robotalks/padscan/pkg/gamepad/device"
	"github.com/robotalks/padscan/pkg/scanner"
)

func newPad(id string) *gamepad.Snapshot {
	return &gamepad.Snapshot{
		ID:      id,
		Mapping: gamepad.MappingStandard,
		Buttons: make([]gamepad.ButtonState, gamepad.StandardButtons),
		Axes:    make([]float64, gamepad.StandardAxes),
	}
}

func TestToggleWithLoop(t *testing.T) {
	pad := newPad("pad (js0)")
	pad.Buttons[gamepad.ButtonY] = gamepad.ButtonState{Pressed: true, Value: 1}
	src := gamepad.SourceFunc(func() ([]*gamepad.Snapshot, error) {
		return []*gamepad.Snapshot{pad}, nil
	})
	surface := display.NewMemory()
	s := &Shell{Scanner: scanner.New(src, surface), Source: src, Timeout: 5 * time.Second}
	s.Scanner.AutoScan = false

	loop := fx.NewLoop()
	loop.Interval = time.Millisecond
	loop.Add(s.Scanner)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		loop.Run(ctx)
		close(done)
	}()
	defer func() {
		cancel()
		<-done
	}()

	label, err := s.Toggle()
	require.NoError(t, err)
	require.Equal(t, display.LabelScanning, label)

	deadline := time.Now().Add(5 * time.Second)
	for len(s.Scanner.Status().Devices) == 0 {
		require.True(t, time.Now().Before(deadline), "block not displayed")
		time.Sleep(time.Millisecond)
	}
	require.Equal(t, "scanning [Scanning...]: pad (js0)", FormatStatus(s.Scanner.Status()))

	label, err = s.Stop()
	require.NoError(t, err)
	require.Equal(t, display.LabelIdle, label)
	label, err = s.Start()
	require.NoError(t, err)
	require.Equal(t, display.LabelScanning, label)
}

func TestTimeout(t *testing.T) {
	s := &Shell{Timeout: time.Millisecond}
	_, err := s.wait(make(chan string))
	require.Equal(t, ErrTimeout, err)
}

func TestDevices(t *testing.T) {
	pad := newPad("pad (js2)")
	pad.Axes[gamepad.AxisLeftY] = -0.9
	raw := &gamepad.Snapshot{ID: "wheel (js3)", Buttons: make([]gamepad.ButtonState, 4), Axes: make([]float64, 6)}
	s := &Shell{Source: gamepad.SourceFunc(func() ([]*gamepad.Snapshot, error) {
		return []*gamepad.Snapshot{nil, nil, pad, raw}, nil
	})}
	devices, err := s.Devices()
	require.NoError(t, err)
	require.Equal(t, []DeviceInfo{
		{Slot: 2, ID: "pad (js2)", Mapping: "standard", Buttons: 17, Axes: 4, Actuated: "Left Vertically"},
		{Slot: 3, ID: "wheel (js3)", Mapping: "-", Buttons: 4, Axes: 6},
	}, devices)
	require.Equal(t, "2: pad (js2) (standard, 17 buttons, 4 axes) Left Vertically", FormatDevice(devices[0]))
	require.Equal(t, "3: wheel (js3) (-, 4 buttons, 6 axes)", FormatDevice(devices[1]))

	s.Source = gamepad.SourceFunc(func() ([]*gamepad.Snapshot, error) { return nil, errors.New("boom") })
	_, err = s.Devices()
	require.Error(t, err)
}

func TestFormatStatus(t *testing.T) {
	require.Equal(t, "idle [Detect]", FormatStatus(scanner.Status{Label: display.LabelIdle}))
}

type idleDevice struct {
	index     int
	name      string
	closed    chan struct{}
	closeOnce sync.Once
}

func (d *idleDevice) Close() error {
	d.closeOnce.Do(func() { close(d.closed) })
	return nil
}

func (d *idleDevice) Index() int       { return d.index }
func (d *idleDevice) Name() string     { return d.name }
func (d *idleDevice) AxisCount() int   { return 8 }
func (d *idleDevice) ButtonCount() int { return 11 }

func (d *idleDevice) ReadEvent() (device.Event, error) {
	<-d.closed
	return nil, os.ErrClosed
}

func TestEvalAtStartup(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "js1"), nil, 0644))
	pool := device.NewPool()
	pool.Dir = dir
	pool.Open = func(path string, index int) (device.Device, error) {
		return &idleDevice{index: index, name: "Generic X-Box pad", closed: make(chan struct{})}, nil
	}

	// wired the same way as cmd/padscan.
	loop := fx.NewLoop()
	loop.Add(pool)
	sc := scanner.New(pool, display.NewMemory())
	sc.AutoScan = false
	loop.Add(sc)
	runner := fx.NewRunner()
	runner.Go(fx.NamedRun("loop", loop))
	defer func() {
		runner.Stop()
		runner.Wait()
	}()
	s := &Shell{Scanner: sc, Source: pool, Timeout: 5 * time.Second}

	devices, err := s.Devices()
	require.NoError(t, err)
	require.Equal(t, []DeviceInfo{
		{Slot: 1, ID: "Generic X-Box pad (js1)", Mapping: "standard", Buttons: 17, Axes: 4},
	}, devices)

	require.False(t, s.KeepRunning([]string{"devices"}))
	label, err := s.Start()
	require.NoError(t, err)
	require.Equal(t, display.LabelScanning, label)
	require.True(t, s.KeepRunning([]string{"start"}))
	require.False(t, s.KeepRunning(nil))
}
