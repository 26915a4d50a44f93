package session

import (
	"crypto/subtle"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mamadbah2/horsefeed/internal/domain/models"
)

var (
	// ErrInvalidPassword indicates the password gate rejected the caller.
	ErrInvalidPassword = errors.New("invalid password")
	// ErrSessionNotFound indicates an unknown, closed or expired session id.
	ErrSessionNotFound = errors.New("session not found")
	// ErrRowOutOfRange indicates a diet row index outside the diet.
	ErrRowOutOfRange = errors.New("diet row index out of range")
	// ErrNegativeQuantity indicates a diet row with a negative quantity.
	ErrNegativeQuantity = errors.New("quantity must not be negative")
	// ErrInvalidQuantity indicates a NaN or infinite quantity.
	ErrInvalidQuantity = errors.New("quantity must be a finite number")
)

type state struct {
	diet     models.DietSelection
	lastSeen time.Time
}

// Manager handles password-gated sessions and the diet each one assembles.
// Sessions idle for longer than the idle TTL are treated as closed and are
// dropped by Sweep. A zero TTL keeps sessions until Close.
type Manager struct {
	password string
	idleTTL  time.Duration
	sessions map[string]*state
	mu       sync.Mutex
	newID    func() string
	now      func() time.Time
}

// NewManager creates a new session manager guarded by password.
func NewManager(password string, idleTTL time.Duration) *Manager {
	return &Manager{
		password: password,
		idleTTL:  idleTTL,
		sessions: make(map[string]*state),
		newID:    uuid.NewString,
		now:      time.Now,
	}
}

// Open checks the password and starts a session with one placeholder diet row.
func (m *Manager) Open(password string) (string, error) {
	if subtle.ConstantTimeCompare([]byte(password), []byte(m.password)) != 1 {
		return "", ErrInvalidPassword
	}

	id := m.newID()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = &state{
		diet:     models.DietSelection{{Feed: models.UnselectedFeed}},
		lastSeen: m.now(),
	}
	return id, nil
}

// Session reports the gate state for id and marks the session as active.
func (m *Manager) Session(id string) models.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.lookup(id)
	return models.Session{Authenticated: ok}
}

// Close removes a session.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.lookup(id); !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, id)
	return nil
}

// Sweep drops sessions idle for longer than the idle TTL and reports how
// many were removed.
func (m *Manager) Sweep() int {
	if m.idleTTL <= 0 {
		return 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	removed := 0
	for id, s := range m.sessions {
		if m.expired(s, now) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// Len reports the number of tracked sessions, expired ones included until swept.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Diet returns a copy of the session's diet rows.
func (m *Manager) Diet(id string) (models.DietSelection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.lookup(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return append(models.DietSelection(nil), s.diet...), nil
}

// AddRow appends a diet row.
func (m *Manager) AddRow(id string, row models.DietRow) (models.DietSelection, error) {
	if err := checkRow(&row); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.lookup(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.diet = append(s.diet, row)
	return append(models.DietSelection(nil), s.diet...), nil
}

// UpdateRow replaces the diet row at index.
func (m *Manager) UpdateRow(id string, index int, row models.DietRow) (models.DietSelection, error) {
	if err := checkRow(&row); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.lookup(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	if index < 0 || index >= len(s.diet) {
		return nil, ErrRowOutOfRange
	}
	s.diet[index] = row
	return append(models.DietSelection(nil), s.diet...), nil
}

// RemoveRow deletes the diet row at index.
func (m *Manager) RemoveRow(id string, index int) (models.DietSelection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.lookup(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	if index < 0 || index >= len(s.diet) {
		return nil, ErrRowOutOfRange
	}
	s.diet = append(s.diet[:index], s.diet[index+1:]...)
	return append(models.DietSelection(nil), s.diet...), nil
}

// lookup returns a live session and refreshes its idle clock. Callers hold mu.
func (m *Manager) lookup(id string) (*state, bool) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	now := m.now()
	if m.expired(s, now) {
		delete(m.sessions, id)
		return nil, false
	}
	s.lastSeen = now
	return s, true
}

func (m *Manager) expired(s *state, now time.Time) bool {
	return m.idleTTL > 0 && now.Sub(s.lastSeen) > m.idleTTL
}

func checkRow(row *models.DietRow) error {
	if !models.Finite(row.Kg) {
		return ErrInvalidQuantity
	}
	if row.Kg < 0 {
		return ErrNegativeQuantity
	}
	if row.Feed == "" {
		row.Feed = models.UnselectedFeed
	}
	return nil
}
