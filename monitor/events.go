// monitor/events.go
package monitor

import (
	"sync"

	"faultcore-go/types"
)

// Topics published by the monitor.
const (
	TopicFault     = "fault/report"
	TopicPortState = "port/state"
	TopicRawLine   = "port/line"
)

// Message is one published event.
type Message struct {
	Topic    string
	Payload  any
	Retained bool
}

// -----------------------------------------------------------------------------
// Subscription
// -----------------------------------------------------------------------------

type Subscription struct {
	topic string
	ch    chan *Message
	ev    *Events
}

func (s *Subscription) Topic() string            { return s.topic }
func (s *Subscription) Channel() <-chan *Message { return s.ch }
func (s *Subscription) Unsubscribe()             { s.ev.unsubscribe(s) }

// -----------------------------------------------------------------------------
// Events
// -----------------------------------------------------------------------------

// Events is the monitor's in-process pub/sub fabric plus a bounded fault
// history. A slow subscriber loses its oldest queued message; publishers
// never block.
type Events struct {
	mu       sync.Mutex
	subs     map[string][]*Subscription
	retained map[string]*Message
	qLen     int

	hist     []types.FaultEvent
	histNext int
	histFull bool
}

// NewEvents creates the fabric with the given subscriber queue length and
// fault history depth.
func NewEvents(queueLen, historyLen int) *Events {
	if queueLen <= 0 {
		queueLen = 8
	}
	if historyLen <= 0 {
		historyLen = 64
	}
	return &Events{
		subs:     make(map[string][]*Subscription),
		retained: make(map[string]*Message),
		qLen:     queueLen,
		hist:     make([]types.FaultEvent, historyLen),
	}
}

// Subscribe registers for one topic. A retained message on that topic is
// delivered immediately.
func (e *Events) Subscribe(topic string) *Subscription {
	sub := &Subscription{topic: topic, ch: make(chan *Message, e.qLen), ev: e}
	e.mu.Lock()
	e.subs[topic] = append(e.subs[topic], sub)
	if ret := e.retained[topic]; ret != nil {
		select {
		case sub.ch <- ret:
		default:
		}
	}
	e.mu.Unlock()
	return sub
}

func (e *Events) unsubscribe(sub *Subscription) {
	e.mu.Lock()
	defer e.mu.Unlock()
	list := e.subs[sub.topic]
	for i, s := range list {
		if s == sub {
			e.subs[sub.topic] = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(e.subs[sub.topic]) == 0 {
		delete(e.subs, sub.topic)
	}
}

// Publish delivers msg to every subscriber of its topic.
func (e *Events) Publish(msg *Message) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, sub := range e.subs[msg.Topic] {
		select {
		case sub.ch <- msg:
		default:
			// drop oldest if queue full
			select {
			case <-sub.ch:
			default:
			}
			select {
			case sub.ch <- msg:
			default:
			}
		}
	}

	// Store or clear retained message.
	if msg.Retained {
		if msg.Payload == nil {
			delete(e.retained, msg.Topic)
		} else {
			e.retained[msg.Topic] = msg
		}
	}

	if msg.Topic == TopicFault {
		if ev, ok := msg.Payload.(types.FaultEvent); ok {
			e.record(ev)
		}
	}
}

func (e *Events) record(ev types.FaultEvent) {
	e.hist[e.histNext] = ev
	e.histNext++
	if e.histNext == len(e.hist) {
		e.histNext = 0
		e.histFull = true
	}
}

// History returns the recorded fault events, oldest first.
func (e *Events) History() []types.FaultEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.histFull {
		return append([]types.FaultEvent(nil), e.hist[:e.histNext]...)
	}
	out := make([]types.FaultEvent, 0, len(e.hist))
	out = append(out, e.hist[e.histNext:]...)
	out = append(out, e.hist[:e.histNext]...)
	return out
}

// Last returns the most recent fault event, if any.
func (e *Events) Last() (types.FaultEvent, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.histFull && e.histNext == 0 {
		return types.FaultEvent{}, false
	}
	i := e.histNext - 1
	if i < 0 {
		i = len(e.hist) - 1
	}
	return e.hist[i], true
}
