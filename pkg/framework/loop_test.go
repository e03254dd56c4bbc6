package framework

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type recorder struct {
	calls []string
}

func (r *recorder) ctl(name string) Controller {
	return ControlFunc(func(fc FrameContext) error {
		r.calls = append(r.calls, name)
		return nil
	})
}

func (r *recorder) take() []string {
	calls := r.calls
	r.calls = nil
	return calls
}

func TestOneShotRunsBeforeTasks(t *testing.T) {
	var rec recorder
	l := NewLoop()
	l.Schedule(rec.ctl("task"))
	l.RequestFrame(rec.ctl("once-1"))
	l.RequestFrame(rec.ctl("once-2"))

	l.RunFrame(context.TODO(), time.Now())
	require.Equal(t, []string{"once-1", "once-2", "task"}, rec.take())

	l.RunFrame(context.TODO(), time.Now())
	require.Equal(t, []string{"task"}, rec.take())
}

func TestRequestFrameDuringFrameRunsNextFrame(t *testing.T) {
	var rec recorder
	l := NewLoop()
	l.RequestFrame(ControlFunc(func(fc FrameContext) error {
		rec.calls = append(rec.calls, "first")
		fc.RequestFrame(rec.ctl("second"))
		fc.Schedule(rec.ctl("task"))
		return nil
	}))

	l.RunFrame(context.TODO(), time.Now())
	require.Equal(t, []string{"first"}, rec.take())

	l.RunFrame(context.TODO(), time.Now())
	require.Equal(t, []string{"second", "task"}, rec.take())
}

func TestTaskStop(t *testing.T) {
	var rec recorder
	l := NewLoop()
	task := l.Schedule(rec.ctl("task"))
	l.RunFrame(context.TODO(), time.Now())
	require.Equal(t, []string{"task"}, rec.take())

	// stopped by a one-shot in the same frame, before its turn.
	l.RequestFrame(ControlFunc(func(FrameContext) error {
		task.Stop()
		return nil
	}))
	l.RunFrame(context.TODO(), time.Now())
	require.Empty(t, rec.take())
	require.True(t, task.Stopped())

	l.RunFrame(context.TODO(), time.Now())
	require.Empty(t, rec.take())
}

func TestTaskStopsItself(t *testing.T) {
	count := 0
	l := NewLoop()
	var task *Task
	task = l.Schedule(ControlFunc(func(FrameContext) error {
		count++
		if count == 2 {
			task.Stop()
		}
		return nil
	}))
	for i := 0; i < 5; i++ {
		l.RunFrame(context.TODO(), time.Now())
	}
	require.Equal(t, 2, count)
}

func TestControllerErrorKeepsLoopGoing(t *testing.T) {
	count := 0
	l := NewLoop()
	l.Schedule(ControlFunc(func(FrameContext) error {
		count++
		return errors.New("boom")
	}))
	l.RunFrame(context.TODO(), time.Now())
	l.RunFrame(context.TODO(), time.Now())
	require.Equal(t, 2, count)
}

func TestFrameNumbers(t *testing.T) {
	var frames []uint64
	l := NewLoop()
	l.Schedule(ControlFunc(func(fc FrameContext) error {
		frames = append(frames, fc.Frame())
		return nil
	}))
	now := time.Now()
	l.RunFrame(context.TODO(), now)
	l.RunFrame(context.TODO(), now)
	require.Equal(t, []uint64{1, 2}, frames)
}

func TestRunPostAndRunnables(t *testing.T) {
	l := NewLoop()
	l.Interval = time.Hour
	started := make(chan LoopControl, 1)
	l.AddRunnable(RunFunc(func(ctx context.Context) error {
		started <- LoopCtlFrom(ctx)
		<-ctx.Done()
		return ctx.Err()
	}))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- l.Run(ctx) }()

	var ctl LoopControl
	select {
	case ctl = <-started:
	case <-time.After(time.Second):
		t.Fatal("runnable not started")
	}

	done := make(chan uint64, 1)
	ctl.Post(ControlFunc(func(fc FrameContext) error {
		done <- fc.Frame()
		return nil
	}))
	select {
	case frame := <-done:
		require.Equal(t, uint64(1), frame)
	case <-time.After(time.Second):
		t.Fatal("posted controller not executed")
	}

	cancel()
	select {
	case err := <-errCh:
		require.Equal(t, context.Canceled, err)
	case <-time.After(time.Second):
		t.Fatal("loop not stopped")
	}
}
