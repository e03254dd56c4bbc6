package device

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/golang/glog"

	fx "github.com/robotalks/padscan/pkg/framework"
	"github.com/robotalks/padscan/pkg/gamepad"
)

var jsNamePattern = regexp.MustCompile(`^js([0-9]+)$`)

// Pool keeps every joystick device in a directory open and
// tracks their state. It implements gamepad.Source.
type Pool struct {
	Dir            string
	RescanInterval time.Duration
	Open           OpenFunc

	lock   sync.RWMutex
	slots  map[int]*slot
	failed map[int]bool
	closed bool

	// only accessed before Run starts and from Run.
	lastScanErr string
}

type slot struct {
	index int
	id    string
	dev   Device
	state *State
}

// NewPool creates a Pool with defaults.
func NewPool() *Pool {
	return &Pool{
		Dir:            defaultConfig.InputDir,
		RescanInterval: defaultConfig.RescanInterval,
		Open:           Open,
	}
}

// DeviceID names the device in a slot.
func DeviceID(name string, index int) string {
	return fmt.Sprintf("%s (js%d)", name, index)
}

// AddToLoop implements LoopAdder. The first scan happens here so
// devices present at startup are listed before the loop runs.
func (p *Pool) AddToLoop(l *fx.Loop) {
	p.scan()
	l.AddRunnable(fx.NamedRun("device-pool", p))
}

// Run implements Runnable. It rescans the directory periodically
// and closes all devices when ctx is done.
func (p *Pool) Run(ctx context.Context) error {
	defer p.Close()
	interval := p.RescanInterval
	if interval <= 0 {
		interval = time.Second
	}
	for {
		p.scan()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
}

// scan rescans and warns once per distinct error.
func (p *Pool) scan() {
	err := p.Rescan()
	if err == nil {
		p.lastScanErr = ""
		return
	}
	if msg := err.Error(); msg != p.lastScanErr {
		glog.Warningf("Scan %s error: %v", p.Dir, err)
		p.lastScanErr = msg
	}
}

// Rescan opens devices which appeared since the last scan.
func (p *Pool) Rescan() error {
	entries, err := os.ReadDir(p.Dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		m := jsNamePattern.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		index, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		p.lock.RLock()
		_, opened := p.slots[index]
		closed := p.closed
		p.lock.RUnlock()
		if opened || closed {
			continue
		}
		p.open(filepath.Join(p.Dir, entry.Name()), index)
	}
	return nil
}

func (p *Pool) open(path string, index int) {
	dev, err := p.Open(path, index)
	p.lock.Lock()
	if p.failed == nil {
		p.failed = make(map[int]bool)
	}
	if err != nil {
		if !p.failed[index] {
			glog.Warningf("Open joystick %s error: %v", path, err)
		}
		p.failed[index] = true
		p.lock.Unlock()
		return
	}
	delete(p.failed, index)
	if p.slots == nil {
		p.slots = make(map[int]*slot)
	}
	s := &slot{
		index: index,
		id:    DeviceID(dev.Name(), index),
		dev:   dev,
		state: NewState(dev.Name(), dev.ButtonCount(), dev.AxisCount()),
	}
	p.slots[index] = s
	p.lock.Unlock()

	glog.Infof("Joystick %d %q opened: %d buttons, %d axes", index, dev.Name(), dev.ButtonCount(), dev.AxisCount())
	go p.poll(s)
}

func (p *Pool) poll(s *slot) {
	for {
		ev, err := s.dev.ReadEvent()
		if err != nil {
			p.drop(s, err)
			return
		}
		if glog.V(3) {
			switch e := ev.(type) {
			case AxisEvent:
				glog.Infof("%s: axis %d: %d", s.id, e.Index(), e.Value())
			case ButtonEvent:
				glog.Infof("%s: button %d: %v", s.id, e.Index(), e.Pressed())
			}
		}
		p.lock.Lock()
		s.state.Apply(ev)
		p.lock.Unlock()
	}
}

func (p *Pool) drop(s *slot, err error) {
	p.lock.Lock()
	current := p.slots[s.index] == s
	if current {
		delete(p.slots, s.index)
	}
	closed := p.closed
	p.lock.Unlock()
	if current {
		s.dev.Close()
		if !closed {
			glog.Infof("Joystick %s removed: %v", s.id, err)
		}
	}
}

// Gamepads implements gamepad.Source. The slice is indexed by
// joystick number, with nil for the numbers not present.
func (p *Pool) Gamepads() ([]*gamepad.Snapshot, error) {
	p.lock.RLock()
	defer p.lock.RUnlock()
	size := 0
	for index := range p.slots {
		if index >= size {
			size = index + 1
		}
	}
	pads := make([]*gamepad.Snapshot, size)
	for index, s := range p.slots {
		pads[index] = s.state.Snapshot(s.id)
	}
	return pads, nil
}

// Close closes all devices. The pool doesn't open devices afterwards.
func (p *Pool) Close() error {
	p.lock.Lock()
	p.closed = true
	slots := p.slots
	p.slots = nil
	p.lock.Unlock()
	var errs fx.AggregatedError
	for _, s := range slots {
		errs.Add(s.dev.Close())
	}
	return errs.Aggregate()
}
