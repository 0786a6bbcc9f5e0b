// Package session holds the process-wide authentication state and lets
// components observe sign-in and sign-out transitions.
package session

import "sync"

// Session identifies an authenticated user
type Session struct {
	UserID string
	Email  string
}

// Provider exposes the current session to components that only need to
// read identity, not manage it.
type Provider interface {
	Current() *Session
}

// Static wraps a fixed session, typically derived from verified request
// credentials.
type Static struct {
	session *Session
}

// NewStatic creates a provider that always returns the given session
func NewStatic(s *Session) *Static {
	return &Static{session: s}
}

// Current returns the wrapped session
func (s *Static) Current() *Session {
	return s.session
}

// Listener receives the new session (nil on sign-out) after each change
type Listener func(*Session)

// Manager is a mutable session holder with change notification.
// Subscribers must unsubscribe on teardown to avoid leaks.
type Manager struct {
	mu        sync.Mutex
	current   *Session
	nextID    int
	listeners map[int]Listener
}

// NewManager creates an empty session manager
func NewManager() *Manager {
	return &Manager{
		listeners: make(map[int]Listener),
	}
}

// Current returns the active session, or nil when signed out
func (m *Manager) Current() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Set replaces the active session and notifies subscribers
func (m *Manager) Set(s *Session) {
	m.mu.Lock()
	m.current = s
	listeners := make([]Listener, 0, len(m.listeners))
	for _, l := range m.listeners {
		listeners = append(listeners, l)
	}
	m.mu.Unlock()

	for _, l := range listeners {
		l(s)
	}
}

// Clear signs out and notifies subscribers
func (m *Manager) Clear() {
	m.Set(nil)
}

// Subscribe registers a change listener and returns its subscription id
func (m *Manager) Subscribe(l Listener) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = l
	return id
}

// Unsubscribe removes a previously registered listener
func (m *Manager) Unsubscribe(id int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.listeners, id)
}
