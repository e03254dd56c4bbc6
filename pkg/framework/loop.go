package framework

import (
	"context"
	"sync"
	"time"

	"github.com/golang/glog"
)

// DefaultInterval is the frame period used when Loop.Interval is zero.
const DefaultInterval = time.Second / 60

// Loop runs frames on a single goroutine. All controllers, one-shot
// or scheduled, are invoked serially from that goroutine.
type Loop struct {
	Interval time.Duration

	runners []Runnable

	lock     sync.Mutex
	pending  callbackList
	tasks    []*Task
	newTasks []*Task
	frame    uint64

	wakeUpCh chan struct{}
}

// LoopAdder provides specific logic to add components to loop.
type LoopAdder interface {
	AddToLoop(*Loop)
}

// Task is the handle of a scheduled controller.
type Task struct {
	ctl  Controller
	lock sync.Mutex
	stop bool
}

// Stop prevents the task from running on any later frame.
// It is safe to call more than once.
func (t *Task) Stop() {
	t.lock.Lock()
	t.stop = true
	t.lock.Unlock()
}

// Stopped indicates Stop has been called.
func (t *Task) Stopped() bool {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.stop
}

type frameCtx struct {
	*Loop
	ctx   context.Context
	time  time.Time
	frame uint64
}

type callbackList struct {
	head *callbackItem
	tail *callbackItem
}

type callbackItem struct {
	ctl  Controller
	next *callbackItem
}

func (l *callbackList) append(item *callbackItem) {
	if l.head == nil {
		l.head = item
	} else {
		l.tail.next = item
	}
	l.tail = item
}

func (l *callbackList) splice(src *callbackList) {
	l.head, l.tail = src.head, src.tail
	src.head, src.tail = nil, nil
}

var loopCtxKey = &Loop{}

// LoopCtlFrom gets LoopControl from context of a Runnable started by Loop.
func LoopCtlFrom(ctx context.Context) LoopControl {
	return ctx.Value(loopCtxKey).(LoopControl)
}

// NewLoop creates a Loop.
func NewLoop() *Loop {
	return &Loop{Interval: DefaultInterval, wakeUpCh: make(chan struct{}, 1)}
}

// Add adds LoopAdders.
func (l *Loop) Add(adders ...LoopAdder) *Loop {
	for _, adder := range adders {
		if adder != nil {
			adder.AddToLoop(l)
		}
	}
	return l
}

// AddRunnable adds Runnables which are started with the loop.
func (l *Loop) AddRunnable(runnables ...Runnable) *Loop {
	l.runners = append(l.runners, runnables...)
	return l
}

// Runnables lists the Runnables added.
func (l *Loop) Runnables() []Runnable {
	return append([]Runnable(nil), l.runners...)
}

// Schedule implements LoopControl.
func (l *Loop) Schedule(ctl Controller) *Task {
	task := &Task{ctl: ctl}
	l.lock.Lock()
	l.newTasks = append(l.newTasks, task)
	l.lock.Unlock()
	return task
}

// RequestFrame implements LoopControl.
func (l *Loop) RequestFrame(ctl Controller) {
	l.lock.Lock()
	l.pending.append(&callbackItem{ctl: ctl})
	l.lock.Unlock()
}

// Post implements LoopControl.
func (l *Loop) Post(ctl Controller) {
	l.RequestFrame(ctl)
	l.TriggerNext()
}

// TriggerNext implements LoopControl.
func (l *Loop) TriggerNext() {
	select {
	case l.wakeUpCh <- struct{}{}:
	default:
	}
}

// Run implements Runnable.
func (l *Loop) Run(ctx context.Context) error {
	l.lock.Lock()
	if l.wakeUpCh == nil {
		l.wakeUpCh = make(chan struct{}, 1)
	}
	l.lock.Unlock()

	runner := NewRunnerWith(context.WithValue(ctx, loopCtxKey, LoopControl(l)))
	runner.Go(l.runners...)
	defer func() {
		if err := runner.Wait(); err != nil {
			glog.Errorf("loop runnables: %v", err)
		}
	}()

	interval := l.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			l.RunFrame(ctx, now)
		case <-l.wakeUpCh:
			l.RunFrame(ctx, time.Now())
		}
	}
}

// RunFrame executes one frame: one-shot controllers queued before
// the frame started, then every task which is not stopped.
func (l *Loop) RunFrame(ctx context.Context, now time.Time) {
	var callbacks callbackList
	l.lock.Lock()
	l.frame++
	callbacks.splice(&l.pending)
	if len(l.newTasks) > 0 {
		l.tasks = append(l.tasks, l.newTasks...)
		l.newTasks = nil
	}
	tasks := l.tasks
	fc := &frameCtx{Loop: l, ctx: ctx, time: now, frame: l.frame}
	l.lock.Unlock()

	for item := callbacks.head; item != nil; item = item.next {
		runController(fc, item.ctl)
	}

	active := tasks[:0:0]
	for _, task := range tasks {
		if task.Stopped() {
			continue
		}
		runController(fc, task.ctl)
		active = append(active, task)
	}

	l.lock.Lock()
	// tasks may be stopped by themselves during the frame.
	l.tasks = l.tasks[:0]
	for _, task := range active {
		if !task.Stopped() {
			l.tasks = append(l.tasks, task)
		}
	}
	l.lock.Unlock()
}

func (c *frameCtx) Context() context.Context { return c.ctx }
func (c *frameCtx) Time() time.Time          { return c.time }
func (c *frameCtx) Frame() uint64            { return c.frame }

func runController(fc FrameContext, ctl Controller) {
	if err := ctl.Control(fc); err != nil {
		glog.Errorf("frame %d: controller error: %v", fc.Frame(), err)
	}
}
