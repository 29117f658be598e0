package authstate

import (
	"context"
	"sync"
)

// Client is the auth backend surface the Store consumes
type Client interface {
	// GetSession returns the current session, or nil when anonymous.
	GetSession(ctx context.Context) (*Session, error)
	// IsAdmin reports whether the current user holds the admin role.
	IsAdmin(ctx context.Context) (bool, error)
	// OnAuthStateChange registers a listener for auth events and returns its
	// unsubscribe function.
	OnAuthStateChange(fn func(event AuthEvent, session *Session)) (unsubscribe func())
}

// Store tracks the auth state of one client. All fields behind the mutex are
// written only by the Store itself; readers get copies via Snapshot.
type Store struct {
	client Client

	mu          sync.Mutex
	state       State
	unsubscribe func()
	watchers    []chan State
}

// NewStore creates a Store in the loading state. Call Start to populate it.
func NewStore(client Client) *Store {
	return &Store{
		client: client,
		state:  State{Loading: true},
	}
}

// Start performs the initial session fetch, resolves the admin role when a
// user exists, and only then registers the change listener. Events emitted
// before Start finishes are never observed, so the initial fetch cannot be
// overwritten by a stale event.
func (s *Store) Start(ctx context.Context) {
	session, err := s.client.GetSession(ctx)
	if err != nil {
		// An unreachable or failing backend reads as anonymous.
		session = nil
	}

	isAdmin := false
	if session != nil && session.User != nil {
		isAdmin = s.roleCheck(ctx)
	}

	s.mu.Lock()
	s.setStateLocked(State{
		User:    sessionUser(session),
		Session: session,
		IsAdmin: isAdmin,
		Loading: false,
	})
	s.mu.Unlock()

	unsubscribe := s.client.OnAuthStateChange(func(event AuthEvent, session *Session) {
		s.handleEvent(ctx, event, session)
	})

	s.mu.Lock()
	s.unsubscribe = unsubscribe
	s.mu.Unlock()
}

// handleEvent applies one auth event to the state. Each event type moves
// exactly the fields it owns.
func (s *Store) handleEvent(ctx context.Context, event AuthEvent, session *Session) {
	switch event {
	case EventSignedIn:
		// Resolve the role before publishing so user and isAdmin never
		// appear in a mixed state.
		isAdmin := false
		if session != nil && session.User != nil {
			isAdmin = s.roleCheck(ctx)
		}

		s.mu.Lock()
		s.setStateLocked(State{
			User:    sessionUser(session),
			Session: session,
			IsAdmin: isAdmin,
			Loading: false,
		})
		s.mu.Unlock()

	case EventSignedOut:
		s.mu.Lock()
		s.setStateLocked(State{Loading: false})
		s.mu.Unlock()

	case EventTokenRefreshed:
		// Tokens only; the admin answer is not re-derived here.
		s.mu.Lock()
		next := s.state
		next.Session = session
		next.User = sessionUser(session)
		s.setStateLocked(next)
		s.mu.Unlock()

	case EventUserUpdated:
		s.mu.Lock()
		next := s.state
		next.User = sessionUser(session)
		if next.Session != nil && session != nil {
			next.Session = session
		}
		s.setStateLocked(next)
		s.mu.Unlock()

	case EventInitialSession:
		// Covered by the gated initial fetch in Start.
	}
}

// roleCheck resolves the admin role; failures read as non-admin
func (s *Store) roleCheck(ctx context.Context) bool {
	isAdmin, err := s.client.IsAdmin(ctx)
	if err != nil {
		return false
	}
	return isAdmin
}

// Snapshot returns a copy of the current state
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Watch returns a channel that receives every state published after the
// call. The channel is buffered; a slow consumer drops intermediate states,
// never blocks the Store.
func (s *Store) Watch() <-chan State {
	ch := make(chan State, 16)
	s.mu.Lock()
	s.watchers = append(s.watchers, ch)
	s.mu.Unlock()
	return ch
}

// Close releases the event subscription
func (s *Store) Close() {
	s.mu.Lock()
	unsubscribe := s.unsubscribe
	s.unsubscribe = nil
	watchers := s.watchers
	s.watchers = nil
	s.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	for _, ch := range watchers {
		close(ch)
	}
}

func (s *Store) setStateLocked(next State) {
	s.state = next
	for _, ch := range s.watchers {
		select {
		case ch <- next:
		default:
		}
	}
}

func sessionUser(session *Session) *User {
	if session == nil {
		return nil
	}
	return session.User
}
