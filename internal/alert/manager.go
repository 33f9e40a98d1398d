package alert

import (
	"context"
	"log"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

type Notifier interface {
	Notify(ctx context.Context, msg string) error
}

type Alerter interface {
	Important(event string, fields map[string]string)
}

const defaultQueueSize = 64

// Manager fans alert events out to a notifier from a bounded queue.
// Enqueueing never blocks the trading path; overflow is counted and
// logged instead.
type Manager struct {
	exchange string
	symbol   string
	notifier Notifier
	queue    chan event
	stop     chan struct{}
	done     chan struct{}
	dropped  uint64

	mu     sync.Mutex
	closed bool
}

type event struct {
	name   string
	fields map[string]string
}

func NewManager(exchange, symbol string, notifier Notifier) *Manager {
	if notifier == nil {
		return nil
	}
	m := &Manager{
		exchange: exchange,
		symbol:   symbol,
		notifier: notifier,
		queue:    make(chan event, defaultQueueSize),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go m.loop()
	return m
}

func (m *Manager) Important(name string, fields map[string]string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	closed := m.closed
	m.mu.Unlock()
	if closed {
		return
	}
	select {
	case m.queue <- event{name: name, fields: cloneFields(fields)}:
	default:
		dropped := atomic.AddUint64(&m.dropped, 1)
		log.Printf("level=WARN event=alert_queue_dropped target_event=%q dropped_total=%d queue_cap=%d", name, dropped, cap(m.queue))
	}
}

// Close drains the queue, then waits for the worker up to ctx's
// deadline.
func (m *Manager) Close(ctx context.Context) error {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	close(m.stop)
	m.mu.Unlock()

	select {
	case <-m.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Manager) loop() {
	defer close(m.done)
	for {
		select {
		case ev := <-m.queue:
			m.send(ev)
		case <-m.stop:
			for {
				select {
				case ev := <-m.queue:
					m.send(ev)
				default:
					return
				}
			}
		}
	}
}

func (m *Manager) send(ev event) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()
	if err := m.notifier.Notify(ctx, m.buildMessage(ev.name, ev.fields)); err != nil {
		log.Printf("level=ERROR event=alert_notify_failed target_event=%q err=%q", ev.name, err.Error())
	}
}

func (m *Manager) buildMessage(name string, fields map[string]string) string {
	lines := []string{
		"[coinbot] important",
		"time: " + time.Now().UTC().Format(time.RFC3339),
		"exchange: " + m.exchange,
		"symbol: " + m.symbol,
		"event: " + name,
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		lines = append(lines, k+": "+fields[k])
	}
	return strings.Join(lines, "\n")
}

func cloneFields(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
