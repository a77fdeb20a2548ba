package ftp

import (
	"errors"
	"net"
	"sync"
	"sync/atomic"
)

// DataSockType identifies how a session's data connection is established.
type DataSockType int

const (
	// DataSockNone means no data connection mode has been negotiated yet.
	DataSockNone DataSockType = iota

	// DataSockActive means the server connects out to the client (PORT).
	DataSockActive

	// DataSockPassive means the client connects in to the server (PASV).
	DataSockPassive
)

// Sentinel errors for the session layer.
var (
	// ErrSessionMissing indicates no session is registered for a control ID.
	ErrSessionMissing = errors.New("ftp: session not found")

	// ErrDataConnClosed indicates a handler needing a data connection found
	// none open.
	ErrDataConnClosed = errors.New("ftp: data connection closed")
)

// Session holds the per-client state that in the original implementation
// lived in a single struct keyed by raw file descriptors: the control
// connection, the negotiated data connection (if any), and the client's
// working-directory cursor. Go has no raw fd to key on, so the registry
// keys sessions by a synthetic, monotonically increasing ControlID instead.
//
// Session is a plain value handed out and replaced wholesale by
// SessionRegistry; callers never mutate a *Session obtained from a lookup
// in place. To change a session's state, look it up, copy it, mutate the
// copy, and call Replace.
type Session struct {
	// ControlID uniquely identifies this session for the lifetime of the
	// registry it lives in.
	ControlID uint64

	// Control is the control connection.
	Control net.Conn

	// Data is the established data connection, or nil if none is open.
	Data net.Conn

	// Listener is the passive-mode listening socket awaiting an inbound
	// data connection, or nil outside PASSIVE mode.
	Listener net.Listener

	// DataSockType records whether PORT or PASV last negotiated the data
	// channel.
	DataSockType DataSockType

	// LoggedIn mirrors the original protocol's session.context.logged_in;
	// this implementation has no authentication step (Non-goal), so it is
	// set true when a session is registered and cleared only by QUIT.
	LoggedIn bool

	// CurrDir is the client's current directory, relative to RootDir.
	// Empty means the root itself.
	CurrDir string

	// RemoteAddr is the control connection's remote address, cached for
	// logging after Control may have been closed.
	RemoteAddr string
}

// SessionRegistry is the concurrency-safe store of live sessions, keyed by
// ControlID. It follows the snapshot-and-replace discipline: Lookup
// returns a copy of the stored Session so callers can read and reason
// about it without holding a lock, and Replace atomically swaps in an
// updated copy.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[uint64]*Session
	nextID   atomic.Uint64
}

// NewSessionRegistry creates an empty SessionRegistry.
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[uint64]*Session),
	}
}

// Register allocates a fresh ControlID for conn, stores an initial Session
// for it, and returns the assigned ID.
func (r *SessionRegistry) Register(conn net.Conn) uint64 {
	id := r.nextID.Add(1)

	s := &Session{
		ControlID:  id,
		Control:    conn,
		LoggedIn:   true,
		RemoteAddr: conn.RemoteAddr().String(),
	}

	r.mu.Lock()
	r.sessions[id] = s
	r.mu.Unlock()

	return id
}

// Lookup returns a copy of the session registered under id.
func (r *SessionRegistry) Lookup(id uint64) (Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return Session{}, ErrSessionMissing
	}
	return *s, nil
}

// Replace overwrites the stored session for s.ControlID with s. It is an
// error to Replace a session that was never Registered.
func (r *SessionRegistry) Replace(s Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[s.ControlID]; !ok {
		return ErrSessionMissing
	}
	stored := s
	r.sessions[s.ControlID] = &stored
	return nil
}

// Remove deletes the session registered under id, returning it so the
// caller can close its connections.
func (r *SessionRegistry) Remove(id uint64) (Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return Session{}, ErrSessionMissing
	}
	delete(r.sessions, id)
	return *s, nil
}

// Snapshot returns copies of every currently registered session.
func (r *SessionRegistry) Snapshot() []Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, *s)
	}
	return out
}

// Len returns the number of currently registered sessions.
func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
