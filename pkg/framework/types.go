package framework

import (
	"context"
	"time"
)

// Named is an abstraction for things with a name.
type Named interface {
	Name() string
}

// Runnable defines a generic interface for background runners.
type Runnable interface {
	Run(context.Context) error
}

// Controller defines the logic executed on a frame.
type Controller interface {
	Control(FrameContext) error
}

// ControlFunc defines the func form of Controller.
type ControlFunc func(FrameContext) error

// Control implements Controller.
func (f ControlFunc) Control(fc FrameContext) error {
	return f(fc)
}

// TimeSource provides the time for controlling logic.
type TimeSource interface {
	Time() time.Time
}

// FrameContext provides the context of the current frame.
type FrameContext interface {
	TimeSource
	// Context retrieves context.Context.
	Context() context.Context
	// Frame is the sequence number of the current frame, starting from 1.
	Frame() uint64

	LoopControl
}

// LoopControl exposes access to the frame loop.
type LoopControl interface {
	// Schedule registers a controller to run on every frame
	// until the returned Task is stopped. A task scheduled
	// during a frame first runs on the next frame.
	Schedule(Controller) *Task
	// RequestFrame queues a one-shot controller for the next frame.
	// One-shot controllers run before scheduled tasks.
	RequestFrame(Controller)
	// Post queues a one-shot controller and wakes the loop up.
	// It is safe to call from any goroutine.
	Post(Controller)
	// TriggerNext schedules the next frame to be executed
	// immediately after the current one.
	TriggerNext()
}
