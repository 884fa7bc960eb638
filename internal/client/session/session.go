// Package session owns the client's authenticated identity: the bearer
// token, the user it belongs to and the timer that logs out when the
// token expires.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cinema-ticket/internal/client/ui"
	"cinema-ticket/internal/data/entity"
	"cinema-ticket/internal/dto/request"
	"cinema-ticket/internal/dto/response"

	"go.uber.org/zap"
)

type State int

const (
	StateLoading State = iota
	StateLoggedOut
	StateLoggedIn
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateLoggedOut:
		return "logged_out"
	case StateLoggedIn:
		return "logged_in"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// AuthAPI is the subset of the REST client the session needs.
type AuthAPI interface {
	Login(ctx context.Context, req *request.LoginRequest) (*response.LoginResponse, error)
	Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error)
	Me(ctx context.Context) (*response.UserResponse, error)
	UpdateProfile(ctx context.Context, req *request.UpdateProfileRequest) (*response.UserResponse, error)
	ChangePassword(ctx context.Context, req *request.ChangePasswordRequest) error
}

// Manager is the single writer of the session token. Login, Logout and
// the expiry timer change it; Token is safe to call from any goroutine.
type Manager struct {
	api   AuthAPI
	store TokenStore
	clock Clock
	nav   ui.Navigator
	log   *zap.Logger

	mu    sync.RWMutex
	state State
	token string
	user  *response.UserResponse
	timer Timer
	// timerGen identifies the armed timer so a stale fire is ignored
	timerGen uint64

	onChange func()
}

// NewManager starts in StateLoading; call Restore next. A nil clock uses
// the system clock.
func NewManager(api AuthAPI, store TokenStore, clock Clock, nav ui.Navigator, log *zap.Logger) *Manager {
	if clock == nil {
		clock = SystemClock()
	}
	return &Manager{
		api:   api,
		store: store,
		clock: clock,
		nav:   nav,
		log:   log.With(zap.String("component", "session")),
		state: StateLoading,
	}
}

// OnIdentityChange registers fn to run whenever the token is installed
// or cleared. The REST client uses it to drop per-user cached reads.
func (m *Manager) OnIdentityChange(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = fn
}

func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Token returns the current bearer token, or "" when logged out.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// User returns a copy of the current user, or nil when logged out.
func (m *Manager) User() *response.UserResponse {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// Restore validates the stored token. A usable token logs the user in
// with the identity from its claims; anything else is discarded.
func (m *Manager) Restore(ctx context.Context) State {
	token, err := m.store.Load()
	if err != nil {
		m.log.Warn("Failed to load stored token", zap.Error(err))
	}
	if token == "" {
		m.setLoggedOut()
		return StateLoggedOut
	}

	claims, exp, err := decodeClaims(token)
	if err != nil || !exp.After(m.clock.Now()) {
		m.log.Info("Discarding stored token", zap.Error(err))
		if err := m.store.Clear(); err != nil {
			m.log.Warn("Failed to clear stored token", zap.Error(err))
		}
		m.setLoggedOut()
		return StateLoggedOut
	}

	m.mu.Lock()
	m.applyToken(token, userFromClaims(claims), exp)
	m.mu.Unlock()
	m.identityChanged()

	m.log.Info("Session restored", zap.Int64("user_id", claims.UserID))
	return StateLoggedIn
}

// Login authenticates, persists the token and sends admins to the admin
// dashboard and everyone else home.
func (m *Manager) Login(ctx context.Context, username, password string) (*response.UserResponse, error) {
	resp, err := m.api.Login(ctx, &request.LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, err
	}

	_, exp, err := decodeClaims(resp.Token)
	if err != nil {
		return nil, fmt.Errorf("login response: %w", err)
	}

	if err := m.store.Save(resp.Token); err != nil {
		m.log.Warn("Failed to persist token", zap.Error(err))
	}

	user := resp.User
	m.mu.Lock()
	m.applyToken(resp.Token, &user, exp)
	m.mu.Unlock()
	m.identityChanged()

	m.log.Info("Logged in", zap.Int64("user_id", user.ID), zap.String("role", string(user.Role)))

	if user.Role == entity.RoleAdmin {
		m.nav.Navigate(ui.RouteAdmin)
	} else {
		m.nav.Navigate(ui.RouteHome)
	}

	u := user
	return &u, nil
}

// Logout clears the token and cancels the expiry timer.
func (m *Manager) Logout() {
	if err := m.store.Clear(); err != nil {
		m.log.Warn("Failed to clear stored token", zap.Error(err))
	}
	m.setLoggedOut()
}

// HandleUnauthorized is the REST client's 401 hook.
func (m *Manager) HandleUnauthorized() {
	if m.State() == StateLoggedIn {
		m.log.Info("Session rejected by server, logging out")
	}
	m.Logout()
	m.nav.Navigate(ui.RouteLogin)
}

func (m *Manager) Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error) {
	return m.api.Register(ctx, req)
}

// Profile fetches the full profile and replaces the claim-derived user.
func (m *Manager) Profile(ctx context.Context) (*response.UserResponse, error) {
	user, err := m.api.Me(ctx)
	if err != nil {
		return nil, err
	}
	m.replaceUser(user)
	return user, nil
}

func (m *Manager) UpdateProfile(ctx context.Context, req *request.UpdateProfileRequest) (*response.UserResponse, error) {
	user, err := m.api.UpdateProfile(ctx, req)
	if err != nil {
		return nil, err
	}
	m.replaceUser(user)
	return user, nil
}

func (m *Manager) ChangePassword(ctx context.Context, req *request.ChangePasswordRequest) error {
	return m.api.ChangePassword(ctx, req)
}

func (m *Manager) replaceUser(user *response.UserResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateLoggedIn {
		u := *user
		m.user = &u
	}
}

func (m *Manager) setLoggedOut() {
	m.mu.Lock()
	m.cancelTimer()
	m.token = ""
	m.user = nil
	m.state = StateLoggedOut
	m.mu.Unlock()

	m.identityChanged()
}

// identityChanged runs the registered hook. Callers must not hold m.mu.
func (m *Manager) identityChanged() {
	m.mu.RLock()
	fn := m.onChange
	m.mu.RUnlock()

	if fn != nil {
		fn()
	}
}

// applyToken installs a new token and re-arms the expiry timer. The
// previous timer is always cancelled first. Caller holds m.mu.
func (m *Manager) applyToken(token string, user *response.UserResponse, exp time.Time) {
	m.cancelTimer()

	m.token = token
	m.user = user
	m.state = StateLoggedIn

	m.timerGen++
	gen := m.timerGen
	delay := ExpiryDelay(exp, m.clock.Now())
	m.timer = m.clock.AfterFunc(delay, func() { m.expire(gen) })

	m.log.Debug("Expiry timer armed", zap.Duration("delay", delay))
}

// cancelTimer stops the pending timer. Caller holds m.mu.
func (m *Manager) cancelTimer() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.timerGen++
}

func (m *Manager) expire(gen uint64) {
	m.mu.Lock()
	if gen != m.timerGen || m.state != StateLoggedIn {
		m.mu.Unlock()
		return
	}
	m.timer = nil
	m.token = ""
	m.user = nil
	m.state = StateLoggedOut
	m.timerGen++
	if err := m.store.Clear(); err != nil {
		m.log.Warn("Failed to clear stored token", zap.Error(err))
	}
	m.mu.Unlock()
	m.identityChanged()

	m.log.Info("Token expired, logged out")
	m.nav.Navigate(ui.RouteLogin)
}
