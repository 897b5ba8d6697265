package services

import (
	"context"
	"sync"
	"time"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habits/internal/logger"
	"github.com/comitanigiacomo/kanso-habits/internal/metrics"
)

const defaultCapabilityTimeout = 10 * time.Second

// CapabilitySource tells whether a user is on the paid tier.
type CapabilitySource interface {
	IsPro(ctx context.Context, userID string) (bool, error)
}

type LoginRecorder interface {
	RecordLogin(ctx context.Context, userID string, today domain.Date) (*domain.LoginStreak, int, error)
}

// Session is the explicit "current user": created when the user signs in and
// invalidated when they sign out. It owns the user's month cache.
type Session struct {
	UserID    string
	Location  *time.Location
	StartedAt time.Time

	store *CompletionStore

	capMu    sync.RWMutex
	capKnown bool
	isPro    bool
	capReady chan struct{}

	cancel context.CancelFunc
}

func newSession(userID string, loc *time.Location, repo domain.CompletionRepository) *Session {
	return &Session{
		UserID:    userID,
		Location:  loc,
		StartedAt: time.Now().UTC(),
		store:     NewCompletionStore(userID, repo),
		capReady:  make(chan struct{}),
	}
}

func (s *Session) Completions() *CompletionStore {
	return s.store
}

// Today is the user's current calendar day in their own time zone.
func (s *Session) Today(now time.Time) domain.Date {
	return domain.Today(now, s.Location)
}

// Capability returns the paid-tier flag and whether it is known yet.
func (s *Session) Capability() (isPro bool, known bool) {
	s.capMu.RLock()
	defer s.capMu.RUnlock()
	return s.isPro, s.capKnown
}

// WaitCapability blocks until the capability fetch finished or ctx is done.
func (s *Session) WaitCapability(ctx context.Context) (bool, error) {
	select {
	case <-s.capReady:
		isPro, _ := s.Capability()
		return isPro, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

func (s *Session) setCapability(isPro bool) {
	s.capMu.Lock()
	defer s.capMu.Unlock()

	if s.capKnown {
		return
	}
	s.isPro = isPro
	s.capKnown = true
	close(s.capReady)
}

func (s *Session) end() {
	if s.cancel != nil {
		s.cancel()
	}
	s.store.Close()
}

type StartResult struct {
	Session     *Session
	LoginStreak *domain.LoginStreak
	Milestone   int
}

type SessionManager struct {
	completions domain.CompletionRepository
	capability  CapabilitySource
	logins      LoginRecorder
	defaultLoc  *time.Location

	capabilityTimeout time.Duration
	now               func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewSessionManager(completions domain.CompletionRepository, capability CapabilitySource, logins LoginRecorder, defaultLoc *time.Location) *SessionManager {
	if defaultLoc == nil {
		defaultLoc = time.UTC
	}
	return &SessionManager{
		completions:       completions,
		capability:        capability,
		logins:            logins,
		defaultLoc:        defaultLoc,
		capabilityTimeout: defaultCapabilityTimeout,
		now:               time.Now,
		sessions:          make(map[string]*Session),
	}
}

func (m *SessionManager) WithClock(now func() time.Time) *SessionManager {
	m.now = now
	return m
}

// Start opens a fresh session for the user, replacing any previous one, and records
// the login. A failing login-streak write is logged, not returned.
func (m *SessionManager) Start(ctx context.Context, userID string, loc *time.Location) (*StartResult, error) {
	sess := m.open(userID, loc, true)
	res := &StartResult{Session: sess}

	if m.logins == nil {
		return res, nil
	}

	streak, milestone, err := m.logins.RecordLogin(ctx, userID, sess.Today(m.now()))
	if err != nil {
		logger.WarnContext(ctx, "failed to record login streak", "user_id", userID, "error", err)
		return res, nil
	}
	res.LoginStreak = streak
	res.Milestone = milestone
	return res, nil
}

// Acquire returns the user's session, opening one without login side effects
// when none exists.
func (m *SessionManager) Acquire(userID string, loc *time.Location) *Session {
	return m.open(userID, loc, false)
}

func (m *SessionManager) Get(userID string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[userID]
	return sess, ok
}

// End invalidates the user's session. It reports whether one was open.
func (m *SessionManager) End(userID string) bool {
	m.mu.Lock()
	sess, ok := m.sessions[userID]
	delete(m.sessions, userID)
	m.mu.Unlock()

	if !ok {
		return false
	}
	sess.end()
	metrics.SessionEnded()
	return true
}

// Shutdown ends every open session.
func (m *SessionManager) Shutdown() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, sess := range sessions {
		sess.end()
		metrics.SessionEnded()
	}
}

// open installs a new session for the user. Without replace an existing session is
// returned as is.
func (m *SessionManager) open(userID string, loc *time.Location, replace bool) *Session {
	if loc == nil {
		loc = m.defaultLoc
	}

	m.mu.Lock()
	prev, replaced := m.sessions[userID]
	if replaced && !replace {
		m.mu.Unlock()
		return prev
	}
	sess := newSession(userID, loc, m.completions)
	fetchCtx, cancel := context.WithTimeout(context.Background(), m.capabilityTimeout)
	sess.cancel = cancel
	m.sessions[userID] = sess
	m.mu.Unlock()

	if replaced {
		prev.end()
	} else {
		metrics.SessionStarted()
	}

	go m.fetchCapability(fetchCtx, sess)
	return sess
}

// fetchCapability runs once per session. Any failure leaves the user on the free tier.
func (m *SessionManager) fetchCapability(ctx context.Context, sess *Session) {
	defer sess.cancel()

	if m.capability == nil {
		sess.setCapability(false)
		return
	}

	isPro, err := m.capability.IsPro(ctx, sess.UserID)
	if err != nil {
		logger.Warn("capability fetch failed, assuming free tier", "user_id", sess.UserID, "error", err)
		isPro = false
	}
	sess.setCapability(isPro)
}
