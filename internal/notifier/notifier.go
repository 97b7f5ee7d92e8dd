// Package notifier fans sync outcomes out to whatever UI surfaces are live.
// Delivery is best effort: a failing subscriber is logged and skipped, and
// the publisher never sees the error.
package notifier

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/MrSnakeDoc/navsync/internal/logger"
)

type Kind string

const (
	// KindRefresh asks consumers to reload and re-render the whole document.
	KindRefresh Kind = "refresh"
	// KindToast carries a transient message only.
	KindToast Kind = "toast"
)

type Event struct {
	Kind    Kind      `json:"kind"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

type Subscriber interface {
	Name() string
	Deliver(ctx context.Context, ev Event) error
}

type Publisher interface {
	Publish(ctx context.Context, ev Event)
}

// SubscriberFunc adapts a function to a Subscriber.
type SubscriberFunc struct {
	ID string
	Fn func(ctx context.Context, ev Event) error
}

func (f SubscriberFunc) Name() string { return f.ID }

func (f SubscriberFunc) Deliver(ctx context.Context, ev Event) error { return f.Fn(ctx, ev) }

type Bus struct {
	mu   sync.RWMutex
	subs map[string]Subscriber
}

func NewBus() *Bus {
	return &Bus{subs: map[string]Subscriber{}}
}

// Subscribe registers s under its name, replacing any previous subscriber
// with the same name. The returned func unregisters it.
func (b *Bus) Subscribe(s Subscriber) func() {
	b.mu.Lock()
	b.subs[s.Name()] = s
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if cur, ok := b.subs[s.Name()]; ok && cur == s {
			delete(b.subs, s.Name())
		}
	}
}

func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Publish delivers ev to a snapshot of the current subscribers, in name order.
func (b *Bus) Publish(ctx context.Context, ev Event) {
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}

	b.mu.RLock()
	names := make([]string, 0, len(b.subs))
	for name := range b.subs {
		names = append(names, name)
	}
	snapshot := make(map[string]Subscriber, len(b.subs))
	for k, v := range b.subs {
		snapshot[k] = v
	}
	b.mu.RUnlock()
	sort.Strings(names)

	delivered := 0
	for _, name := range names {
		if err := deliver(ctx, snapshot[name], ev); err != nil {
			logger.Debug("notify: %s to %s failed: %v", ev.Kind, name, err)
			continue
		}
		delivered++
	}
	logger.Debug("notify: %s delivered to %d/%d subscribers", ev.Kind, delivered, len(names))
}

func deliver(ctx context.Context, s Subscriber, ev Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("subscriber panicked: %v", r)
		}
	}()
	return s.Deliver(ctx, ev)
}
