package scanner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/padscan/pkg/display"
	fx "github.com/robotalks/padscan/pkg/framework"
	"github.com/robotalks/padscan/pkg/gamepad"
)

type testSource struct {
	slots []*gamepad.Snapshot
	err   error
	calls int
}

func (s *testSource) Gamepads() ([]*gamepad.Snapshot, error) {
	s.calls++
	return s.slots, s.err
}

type countingSurface struct {
	*display.Memory
	puts    int
	removes int
	clears  int
	putErr  error
}

func (s *countingSurface) Put(b *display.Block) error {
	s.puts++
	if s.putErr != nil {
		return s.putErr
	}
	return s.Memory.Put(b)
}

func (s *countingSurface) Remove(id string) error {
	s.removes++
	return s.Memory.Remove(id)
}

func (s *countingSurface) Clear() error {
	s.clears++
	return s.Memory.Clear()
}

func pad(id string) *gamepad.Snapshot {
	return &gamepad.Snapshot{
		ID:      id,
		Mapping: gamepad.MappingStandard,
		Buttons: make([]gamepad.ButtonState, gamepad.StandardButtons),
		Axes:    make([]float64, gamepad.StandardAxes),
	}
}

type scannerTestCtx struct {
	t       *testing.T
	loop    *fx.Loop
	source  *testSource
	surface *countingSurface
	scanner *Scanner
}

func newScannerTestCtx(t *testing.T, autoScan bool) *scannerTestCtx {
	c := &scannerTestCtx{
		t:       t,
		loop:    fx.NewLoop(),
		source:  &testSource{},
		surface: &countingSurface{Memory: display.NewMemory()},
	}
	c.scanner = New(c.source, c.surface)
	c.scanner.AutoScan = autoScan
	c.loop.Add(c.scanner)
	c.frame()
	return c
}

func (c *scannerTestCtx) frame() *scannerTestCtx {
	c.loop.RunFrame(context.TODO(), time.Now())
	return c
}

func (c *scannerTestCtx) toggle(expected string) *scannerTestCtx {
	ch := c.scanner.Toggle()
	c.frame()
	select {
	case label := <-ch:
		require.Equal(c.t, expected, label)
	default:
		c.t.Fatal("toggle not processed")
	}
	require.Equal(c.t, expected, c.surface.ToggleLabel())
	return c
}

func (c *scannerTestCtx) blockIDs() []string {
	var ids []string
	for _, b := range c.surface.Blocks() {
		ids = append(ids, b.ID)
	}
	return ids
}

func TestToggleOnOff(t *testing.T) {
	c := newScannerTestCtx(t, false)
	require.Equal(t, display.LabelIdle, c.surface.ToggleLabel())
	c.frame()
	require.Equal(t, 0, c.source.calls, "not scanning before toggle")

	p := pad("pad-1")
	p.Buttons[gamepad.ButtonA] = gamepad.ButtonState{Pressed: true, Value: 1}
	c.source.slots = []*gamepad.Snapshot{p}

	c.toggle(display.LabelScanning)
	c.frame()
	require.Equal(t, []string{"pad-1"}, c.blockIDs())
	require.True(t, c.scanner.Status().Scanning)

	c.toggle(display.LabelIdle)
	calls := c.source.calls
	c.frame()
	require.Empty(t, c.surface.Blocks())
	require.Equal(t, 1, c.surface.clears)
	c.frame().frame()
	require.Equal(t, calls, c.source.calls, "no more scanning after toggle off")
	st := c.scanner.Status()
	require.False(t, st.Scanning)
	require.Equal(t, display.LabelIdle, st.Label)
	require.Empty(t, st.Devices)
}

func TestBlockLifecycle(t *testing.T) {
	c := newScannerTestCtx(t, true)
	require.Equal(t, display.LabelScanning, c.surface.ToggleLabel())

	p := pad("pad-1")
	c.source.slots = []*gamepad.Snapshot{p}
	c.frame()
	require.Empty(t, c.surface.Blocks())

	p.Buttons[gamepad.ButtonA] = gamepad.ButtonState{Pressed: true, Value: 1}
	c.frame()
	b := c.surface.Block("pad-1")
	require.NotNil(t, b)
	require.Equal(t, "pad-1", b.Label())
	require.Equal(t, []gamepad.Input{{Kind: gamepad.KindButton, Name: "A", Value: 1}}, b.Inputs)
	require.Contains(t, b.Text, `"A"`)

	// same content isn't pushed again.
	c.frame().frame()
	require.Equal(t, 1, c.surface.puts)

	p.Buttons[gamepad.ButtonA] = gamepad.ButtonState{}
	p.Axes[gamepad.AxisLeftX] = 0.25
	c.frame()
	require.Equal(t, 2, c.surface.puts)
	b = c.surface.Block("pad-1")
	require.Equal(t, []gamepad.Input{{Kind: gamepad.KindAxis, Name: "Left Horizontally", Value: 0.25}}, b.Inputs)

	p.Axes[gamepad.AxisLeftX] = 0.2
	c.frame()
	require.Empty(t, c.surface.Blocks())
	require.Equal(t, 1, c.surface.removes)

	// nothing to remove.
	c.frame()
	require.Equal(t, 1, c.surface.removes)
}

func TestMultipleDevicesAndEmptySlots(t *testing.T) {
	c := newScannerTestCtx(t, true)
	p1, p2 := pad("pad-1"), pad("pad-2")
	p1.Axes[gamepad.AxisRightY] = -1
	p2.Buttons[gamepad.ButtonStart] = gamepad.ButtonState{Pressed: true, Value: 1}
	p2.Buttons[gamepad.ButtonLT] = gamepad.ButtonState{Pressed: true, Value: 0.5}
	c.source.slots = []*gamepad.Snapshot{nil, p2, nil, p1}
	c.frame()
	require.Equal(t, []string{"pad-2", "pad-1"}, c.blockIDs())
	require.Equal(t, []string{"pad-1", "pad-2"}, c.scanner.Status().Devices)
	require.Len(t, c.surface.Block("pad-2").Inputs, 2)
	require.Equal(t, "LT", c.surface.Block("pad-2").Inputs[0].Name)
}

func TestDisconnectRemovesBlock(t *testing.T) {
	c := newScannerTestCtx(t, true)
	p1, p2 := pad("pad-1"), pad("pad-2")
	p1.Buttons[gamepad.ButtonX] = gamepad.ButtonState{Pressed: true, Value: 1}
	p2.Buttons[gamepad.ButtonY] = gamepad.ButtonState{Pressed: true, Value: 1}
	c.source.slots = []*gamepad.Snapshot{p1, p2}
	c.frame()
	require.Len(t, c.surface.Blocks(), 2)

	c.source.slots = []*gamepad.Snapshot{nil, p2}
	c.frame()
	require.Equal(t, []string{"pad-2"}, c.blockIDs())

	c.source.slots = nil
	c.frame()
	require.Empty(t, c.surface.Blocks())
}

func TestSourceErrorKeepsBlocks(t *testing.T) {
	c := newScannerTestCtx(t, true)
	p := pad("pad-1")
	p.Buttons[gamepad.ButtonB] = gamepad.ButtonState{Pressed: true, Value: 1}
	c.source.slots = []*gamepad.Snapshot{p}
	c.frame()

	c.source.slots, c.source.err = nil, errors.New("unavailable")
	c.frame()
	require.Equal(t, []string{"pad-1"}, c.blockIDs())

	c.source.err = nil
	c.frame()
	require.Empty(t, c.surface.Blocks())
}

func TestFailedPutRetried(t *testing.T) {
	c := newScannerTestCtx(t, true)
	p := pad("pad-1")
	p.Buttons[gamepad.ButtonA] = gamepad.ButtonState{Pressed: true, Value: 1}
	c.source.slots = []*gamepad.Snapshot{p}
	c.surface.putErr = errors.New("unavailable")
	c.frame()
	require.Equal(t, 1, c.surface.puts)
	require.Empty(t, c.surface.Blocks())
	require.Empty(t, c.scanner.Status().Devices)

	c.surface.putErr = nil
	c.frame()
	require.Equal(t, 2, c.surface.puts)
	require.Equal(t, []string{"pad-1"}, c.blockIDs())
	require.Equal(t, []string{"pad-1"}, c.scanner.Status().Devices)

	// a failed update keeps the last shown block and is retried.
	p.Buttons[gamepad.ButtonB] = gamepad.ButtonState{Pressed: true, Value: 1}
	c.surface.putErr = errors.New("unavailable")
	c.frame()
	require.Len(t, c.surface.Block("pad-1").Inputs, 1)
	c.surface.putErr = nil
	c.frame()
	require.Equal(t, 4, c.surface.puts)
	require.Len(t, c.surface.Block("pad-1").Inputs, 2)
	c.frame()
	require.Equal(t, 4, c.surface.puts)
}

func TestStartStopIdempotent(t *testing.T) {
	c := newScannerTestCtx(t, false)
	first, second := c.scanner.Start(), c.scanner.Start()
	c.frame()
	require.Equal(t, display.LabelScanning, <-first)
	require.Equal(t, display.LabelScanning, <-second)

	c.frame()
	require.Equal(t, 1, c.source.calls, "only one scanning task")

	first, second = c.scanner.Stop(), c.scanner.Stop()
	c.frame()
	require.Equal(t, display.LabelIdle, <-first)
	require.Equal(t, display.LabelIdle, <-second)
	c.frame()
	require.Equal(t, 1, c.surface.clears)
}

func TestRestartBeforeClear(t *testing.T) {
	c := newScannerTestCtx(t, true)
	p := pad("pad-1")
	p.Buttons[gamepad.ButtonA] = gamepad.ButtonState{Pressed: true, Value: 1}
	c.source.slots = []*gamepad.Snapshot{p}
	c.frame()

	c.scanner.Toggle()
	c.scanner.Toggle()
	c.frame()
	require.Equal(t, display.LabelScanning, c.surface.ToggleLabel())
	// clear runs first on the next frame, then the block is rebuilt.
	c.frame()
	require.Equal(t, 1, c.surface.clears)
	require.Equal(t, []string{"pad-1"}, c.blockIDs())
}

func TestConfigInterval(t *testing.T) {
	conf := NewConfig()
	conf.FrameRate = 50
	require.Equal(t, 20*time.Millisecond, conf.Interval())
	conf.FrameRate = 0
	require.Equal(t, time.Second/60, conf.Interval())
	require.True(t, conf.NewScanner(&testSource{}, display.NewMemory()) != nil)
}
