// Package mqtt mirrors the display to an MQTT broker as retained
// messages, so late subscribers see the current state.
package mqtt

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"
	"github.com/golang/protobuf/proto"

	"github.com/robotalks/padscan/pkg/display"
	fx "github.com/robotalks/padscan/pkg/framework"
	"github.com/robotalks/padscan/pkg/msgs"
)

// RetryInterval is the delay between initial connection attempts.
var RetryInterval = 5 * time.Second

// Publisher publishes to topics relative to a prefix.
type Publisher interface {
	PubWith(topic string, payload []byte, qos byte, retain bool) paho.Token
}

// Surface publishes display changes of a session.
type Surface struct {
	Session string
	QoS     byte
	// Meta is published on connect when set.
	Meta *msgs.SessionMeta

	pub   Publisher
	queue *Queue

	lock   sync.Mutex
	status *msgs.ScanStatus
	blocks map[string]*msgs.DisplayBlock

	// failures counts publishes failed since the last success,
	// only the first one is warned.
	failLock sync.Mutex
	failures int
	warnings int
}

// NewSurface creates a Surface.
func NewSurface(pub Publisher, session string) *Surface {
	return &Surface{
		Session: session,
		pub:     pub,
		blocks:  make(map[string]*msgs.DisplayBlock),
	}
}

// NewSurfaceWithQueue creates a Surface which owns the queue
// and republishes everything when (re)connected.
func NewSurfaceWithQueue(q *Queue, session string) *Surface {
	s := NewSurface(q, session)
	s.queue = q
	q.OnConnect = func(*Queue) { s.Republish() }
	return s
}

// SetToggleLabel implements display.Surface.
func (s *Surface) SetToggleLabel(label string) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.status = &msgs.ScanStatus{
		Session:  s.Session,
		Scanning: label == display.LabelScanning,
		Label:    label,
	}
	return s.publish(msgs.LabelTopic(s.Session), s.status)
}

// Put implements display.Surface.
func (s *Surface) Put(b *display.Block) error {
	msg := msgs.NewDisplayBlock(b.ID, b.Label(), b.Text, b.Inputs)
	s.lock.Lock()
	defer s.lock.Unlock()
	s.blocks[b.ID] = msg
	return s.publish(msgs.BlockTopic(s.Session, b.ID), msg)
}

// Remove implements display.Surface.
func (s *Surface) Remove(id string) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	if _, ok := s.blocks[id]; !ok {
		return nil
	}
	delete(s.blocks, id)
	return s.publish(msgs.BlockTopic(s.Session, id), nil)
}

// Clear implements display.Surface.
func (s *Surface) Clear() error {
	s.lock.Lock()
	defer s.lock.Unlock()
	var errs fx.AggregatedError
	for _, id := range s.deviceIDs() {
		errs.Add(s.publish(msgs.BlockTopic(s.Session, id), nil))
	}
	s.blocks = make(map[string]*msgs.DisplayBlock)
	return errs.Aggregate()
}

// Republish publishes the current state again.
func (s *Surface) Republish() {
	s.lock.Lock()
	defer s.lock.Unlock()
	var errs fx.AggregatedError
	if s.Meta != nil {
		s.watch(msgs.MetaTopic(s.Session), s.pub.PubWith(msgs.MetaTopic(s.Session), s.Meta.Encode(), 1, true))
	}
	if s.status != nil {
		errs.Add(s.publish(msgs.LabelTopic(s.Session), s.status))
	}
	for _, id := range s.deviceIDs() {
		errs.Add(s.publish(msgs.BlockTopic(s.Session, id), s.blocks[id]))
	}
	if err := errs.Aggregate(); err != nil {
		glog.Warningf("MQTT republish: %v", err)
	}
}

// AddToLoop implements LoopAdder.
func (s *Surface) AddToLoop(l *fx.Loop) {
	l.AddRunnable(fx.NamedRun("mqtt", s))
}

// Run implements Runnable. It connects the owned queue and
// withdraws the retained messages on exit.
func (s *Surface) Run(ctx context.Context) error {
	if s.queue == nil {
		<-ctx.Done()
		return nil
	}
	for {
		token := s.queue.Connect()
		if token.Wait() && token.Error() == nil {
			break
		}
		glog.Warningf("connect MQTT broker: %v, retry in %v", token.Error(), RetryInterval)
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(RetryInterval):
		}
	}
	glog.Infof("MQTT session %s under %q", s.Session, s.queue.TopicPrefix)
	<-ctx.Done()
	s.withdraw(time.Second)
	return s.queue.Close()
}

func (s *Surface) withdraw(timeout time.Duration) {
	s.lock.Lock()
	defer s.lock.Unlock()
	var tokens []paho.Token
	for _, id := range s.deviceIDs() {
		tokens = append(tokens, s.pub.PubWith(msgs.BlockTopic(s.Session, id), nil, s.QoS, true))
	}
	tokens = append(tokens, s.pub.PubWith(msgs.LabelTopic(s.Session), nil, s.QoS, true))
	if s.Meta != nil {
		tokens = append(tokens, s.pub.PubWith(msgs.MetaTopic(s.Session), nil, 1, true))
	}
	for _, token := range tokens {
		token.WaitTimeout(timeout)
	}
}

func (s *Surface) deviceIDs() []string {
	ids := make([]string, 0, len(s.blocks))
	for id := range s.blocks {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// publish sends a retained message, nil msg clears the topic.
// Delivery failures are only logged as the state is republished
// on reconnect.
func (s *Surface) publish(topic string, msg proto.Message) error {
	var payload []byte
	if msg != nil {
		encoded, err := proto.Marshal(msg)
		if err != nil {
			return fmt.Errorf("encode %s: %w", topic, err)
		}
		payload = encoded
	}
	s.watch(topic, s.pub.PubWith(topic, payload, s.QoS, true))
	return nil
}

func (s *Surface) watch(topic string, token paho.Token) {
	go func() {
		if token.Wait() {
			s.delivered(topic, token.Error())
		}
	}()
}

func (s *Surface) delivered(topic string, err error) {
	s.failLock.Lock()
	defer s.failLock.Unlock()
	if err == nil {
		if s.failures > 0 {
			glog.Infof("MQTT publish recovered after %d failures", s.failures)
			s.failures = 0
		}
		return
	}
	s.failures++
	if s.failures == 1 {
		s.warnings++
		glog.Warningf("MQTT publish %s: %v", topic, err)
	} else if glog.V(2) {
		glog.Infof("MQTT publish %s: %v", topic, err)
	}
}
