// Package analytics sends optional, best-effort usage events to the Google
// Analytics 4 Measurement Protocol. It never surfaces failures to the user:
// events are dropped when the queue is full and network errors are logged
// and forgotten.
//
// Maintenance notes:
//   - Track must never block the UI. Enqueueing is a non-blocking send; the
//     single worker goroutine owns all network I/O.
//   - Without both credentials the factory returns the disabled tracker, so
//     callers never need to check whether analytics is on.
package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// DefaultEndpoint is the GA4 Measurement Protocol collection URL.
const DefaultEndpoint = "https://www.google-analytics.com/mp/collect"

// Event names reported by the application.
const (
	EventAppOpened    = "app_opened"
	EventAppClosed    = "app_closed"
	EventCtrlLocked   = "ctrl_locked"
	EventCtrlReleased = "ctrl_released"
)

const (
	queueCapacity = 100
	sendTimeout   = 5 * time.Second
)

// Tracker is what the rest of the application sees. Both the live manager
// and the disabled stub satisfy it.
type Tracker interface {
	Track(name string, params map[string]any)
	Shutdown(timeout time.Duration)
}

// New returns a live Manager when both credentials are present, otherwise
// the disabled tracker. clientID is the persistent anonymous identifier from
// the preference file.
func New(measurementID, apiSecret, clientID string) Tracker {
	if measurementID == "" || apiSecret == "" {
		return Disabled{}
	}
	return newManager(DefaultEndpoint, measurementID, apiSecret, clientID, nil)
}

type event struct {
	name   string
	params map[string]any
}

// Manager queues events and posts them from a background worker.
type Manager struct {
	endpoint      string
	measurementID string
	apiSecret     string
	clientID      string
	client        *http.Client

	mu     sync.Mutex
	closed bool
	queue  chan event
	done   chan struct{}
}

func newManager(endpoint, measurementID, apiSecret, clientID string, client *http.Client) *Manager {
	if client == nil {
		client = &http.Client{Timeout: sendTimeout}
	}
	m := &Manager{
		endpoint:      endpoint,
		measurementID: measurementID,
		apiSecret:     apiSecret,
		clientID:      clientID,
		client:        client,
		queue:         make(chan event, queueCapacity),
		done:          make(chan struct{}),
	}
	go m.worker()
	return m
}

// Track enqueues an event without blocking. Events posted after Shutdown or
// while the queue is full are silently dropped.
func (m *Manager) Track(name string, params map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	select {
	case m.queue <- event{name: name, params: params}:
	default:
	}
}

func (m *Manager) worker() {
	defer close(m.done)
	for ev := range m.queue {
		m.send(ev)
	}
}

func (m *Manager) send(ev event) {
	params := map[string]any{
		"engagement_time_msec": 100,
		"session_id":           time.Now().UTC().Unix(),
	}
	for k, v := range ev.params {
		params[k] = v
	}

	body := map[string]any{
		"client_id": m.clientID,
		"events": []map[string]any{{
			"name":   ev.name,
			"params": params,
		}},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		log.Printf("analytics: encode %s: %v", ev.name, err)
		return
	}

	q := url.Values{}
	q.Set("measurement_id", m.measurementID)
	q.Set("api_secret", m.apiSecret)

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint+"?"+q.Encode(), bytes.NewReader(payload))
	if err != nil {
		log.Printf("analytics: build request for %s: %v", ev.name, err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		log.Printf("analytics: send %s: %v", ev.name, err)
		return
	}
	defer resp.Body.Close()

	// The Measurement Protocol answers 204 on success.
	if resp.StatusCode != http.StatusNoContent {
		log.Printf("analytics: %s returned status %d", ev.name, resp.StatusCode)
	}
}

// Shutdown stops accepting events and waits up to timeout for the worker to
// drain what is already queued.
func (m *Manager) Shutdown(timeout time.Duration) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	close(m.queue)
	m.mu.Unlock()

	select {
	case <-m.done:
	case <-time.After(timeout):
		log.Printf("analytics: shutdown timed out, remaining events lost")
	}
}

// Disabled is the no-op tracker used when GA4 is not configured.
type Disabled struct{}

// Track does nothing.
func (Disabled) Track(string, map[string]any) {}

// Shutdown does nothing.
func (Disabled) Shutdown(time.Duration) {}
