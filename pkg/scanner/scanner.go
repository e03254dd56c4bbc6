// Package scanner samples gamepads on every frame while scanning is
// enabled and keeps one display block per actuated device.
package scanner

import (
	"fmt"
	"sort"
	"sync"

	"github.com/golang/glog"

	"github.com/robotalks/padscan/pkg/display"
	fx "github.com/robotalks/padscan/pkg/framework"
	"github.com/robotalks/padscan/pkg/gamepad"
)

// Scanner owns the scanning state. Except Status, its methods
// post the work to the loop and must not be used before
// the scanner is added to a loop.
type Scanner struct {
	Source   gamepad.Source
	Surface  display.Surface
	AutoScan bool

	loop fx.LoopControl

	// only accessed from the loop.
	task      *fx.Task
	blocks    map[string]*display.Block
	summaries map[string]string

	lock   sync.RWMutex
	status Status
}

// Status is a copy of the scanner state, refreshed every frame.
type Status struct {
	Scanning bool
	Label    string
	// Devices are the IDs of displayed blocks, sorted.
	Devices []string
}

// New creates a Scanner.
func New(src gamepad.Source, surface display.Surface) *Scanner {
	return &Scanner{
		Source:    src,
		Surface:   surface,
		AutoScan:  defaultConfig.AutoScan,
		blocks:    make(map[string]*display.Block),
		summaries: make(map[string]string),
		status:    Status{Label: display.LabelIdle},
	}
}

// AddToLoop implements LoopAdder.
func (s *Scanner) AddToLoop(l *fx.Loop) {
	s.loop = l
	l.RequestFrame(fx.ControlFunc(s.init))
}

// Toggle flips scanning. The channel receives the new label
// once the loop processed the request.
func (s *Scanner) Toggle() <-chan string {
	return s.post(s.toggle)
}

// Start enables scanning.
func (s *Scanner) Start() <-chan string {
	return s.post(s.start)
}

// Stop disables scanning.
func (s *Scanner) Stop() <-chan string {
	return s.post(s.stop)
}

// Status gets the state as of the last processed frame.
func (s *Scanner) Status() Status {
	s.lock.RLock()
	defer s.lock.RUnlock()
	st := s.status
	st.Devices = append([]string(nil), s.status.Devices...)
	return st
}

func (s *Scanner) post(fn func(fx.FrameContext) error) <-chan string {
	ch := make(chan string, 1)
	s.loop.Post(fx.ControlFunc(func(fc fx.FrameContext) error {
		err := fn(fc)
		ch <- s.Status().Label
		return err
	}))
	return ch
}

func (s *Scanner) init(fc fx.FrameContext) error {
	if s.AutoScan {
		return s.start(fc)
	}
	return s.Surface.SetToggleLabel(display.LabelIdle)
}

func (s *Scanner) toggle(fc fx.FrameContext) error {
	if s.task != nil {
		return s.stop(fc)
	}
	return s.start(fc)
}

func (s *Scanner) start(fc fx.FrameContext) error {
	if s.task != nil {
		return nil
	}
	s.task = fc.Schedule(fx.ControlFunc(s.scanFrame))
	glog.Info("Scanning started")
	s.updateStatus()
	return s.Surface.SetToggleLabel(display.LabelScanning)
}

func (s *Scanner) stop(fc fx.FrameContext) error {
	if s.task == nil {
		return nil
	}
	s.task.Stop()
	s.task = nil
	fc.RequestFrame(fx.ControlFunc(s.clear))
	glog.Info("Scanning stopped")
	s.updateStatus()
	return s.Surface.SetToggleLabel(display.LabelIdle)
}

func (s *Scanner) clear(fc fx.FrameContext) error {
	s.blocks = make(map[string]*display.Block)
	s.summaries = make(map[string]string)
	s.updateStatus()
	return s.Surface.Clear()
}

func (s *Scanner) scanFrame(fc fx.FrameContext) error {
	slots, err := s.Source.Gamepads()
	if err != nil {
		return fmt.Errorf("list gamepads: %w", err)
	}
	var errs fx.AggregatedError
	seen := make(map[string]bool)
	for _, pad := range gamepad.Connected(slots) {
		seen[pad.ID] = true
		errs.Add(s.reconcile(pad))
	}
	for id := range s.blocks {
		if !seen[id] {
			glog.Infof("Controller %s disconnected", id)
			errs.Add(s.remove(id))
		}
	}
	s.updateStatus()
	return errs.Aggregate()
}

func (s *Scanner) reconcile(pad *gamepad.Snapshot) error {
	a := gamepad.Actuated(pad)
	if a.Empty() {
		if _, exists := s.blocks[pad.ID]; exists {
			return s.remove(pad.ID)
		}
		return nil
	}

	names := a.Names()
	if s.summaries[pad.ID] != names {
		s.summaries[pad.ID] = names
		glog.Infof("Controller %s has %d pressed buttons and %d used axes. (%s)",
			pad.ID, len(a.Buttons), len(a.Axes), names)
	} else if glog.V(2) {
		glog.Infof("Controller %s has %d pressed buttons and %d used axes. (%s)",
			pad.ID, len(a.Buttons), len(a.Axes), names)
	}

	block := display.NewBlock(pad.ID, a.Inputs())
	prev, exists := s.blocks[pad.ID]
	if exists && prev.Equal(block) {
		return nil
	}
	// only recorded once shown, so a failed Put is retried next frame.
	if err := s.Surface.Put(block); err != nil {
		return err
	}
	if !exists {
		glog.Infof("Found new controller: %s", pad.ID)
	}
	s.blocks[pad.ID] = block
	return nil
}

func (s *Scanner) remove(id string) error {
	delete(s.blocks, id)
	delete(s.summaries, id)
	return s.Surface.Remove(id)
}

func (s *Scanner) updateStatus() {
	devices := make([]string, 0, len(s.blocks))
	for id := range s.blocks {
		devices = append(devices, id)
	}
	sort.Strings(devices)
	st := Status{Scanning: s.task != nil, Label: display.LabelIdle, Devices: devices}
	if st.Scanning {
		st.Label = display.LabelScanning
	}
	s.lock.Lock()
	s.status = st
	s.lock.Unlock()
}
