package authstate

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeClient scripts backend answers and records listener registration
type fakeClient struct {
	mu sync.Mutex

	session    *Session
	sessionErr error

	isAdmin    bool
	isAdminErr error

	roleChecks int

	listener     func(event AuthEvent, session *Session)
	unsubscribed bool
}

func (f *fakeClient) GetSession(ctx context.Context) (*Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.session, f.sessionErr
}

func (f *fakeClient) IsAdmin(ctx context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.roleChecks++
	return f.isAdmin, f.isAdminErr
}

func (f *fakeClient) OnAuthStateChange(fn func(event AuthEvent, session *Session)) func() {
	f.mu.Lock()
	f.listener = fn
	f.mu.Unlock()
	return func() {
		f.mu.Lock()
		f.unsubscribed = true
		f.mu.Unlock()
	}
}

func (f *fakeClient) emit(event AuthEvent, session *Session) {
	f.mu.Lock()
	fn := f.listener
	f.mu.Unlock()
	if fn != nil {
		fn(event, session)
	}
}

func (f *fakeClient) roleCheckCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.roleChecks
}

func adminSession(email string) *Session {
	return &Session{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		ExpiresIn:    3600,
		User:         &User{ID: 1, Email: email, CreatedAt: time.Now()},
	}
}

func TestStoreStartAnonymous(t *testing.T) {
	client := &fakeClient{}
	store := NewStore(client)
	defer store.Close()

	if !store.Snapshot().Loading {
		t.Fatal("expected loading before Start")
	}

	store.Start(context.Background())

	state := store.Snapshot()
	if state.Loading {
		t.Error("expected loading to be false after Start")
	}
	if state.User != nil || state.Session != nil || state.IsAdmin {
		t.Errorf("expected anonymous state, got %+v", state)
	}
	if client.roleCheckCount() != 0 {
		t.Error("anonymous start must not run the role check")
	}
}

func TestStoreStartWithAdminSession(t *testing.T) {
	client := &fakeClient{session: adminSession("cadet@nccairwing.in"), isAdmin: true}
	store := NewStore(client)
	defer store.Close()

	store.Start(context.Background())

	state := store.Snapshot()
	if state.Loading {
		t.Error("expected loading to be false after Start")
	}
	if state.User == nil || state.User.Email != "cadet@nccairwing.in" {
		t.Fatalf("expected user to be set, got %+v", state.User)
	}
	if !state.IsAdmin {
		t.Error("expected admin role to be resolved during Start")
	}
}

func TestStoreInitialFetchErrorReadsAnonymous(t *testing.T) {
	client := &fakeClient{sessionErr: errors.New("backend down")}
	store := NewStore(client)
	defer store.Close()

	store.Start(context.Background())

	state := store.Snapshot()
	if state.Loading {
		t.Error("expected loading to be false even after a failed fetch")
	}
	if state.User != nil || state.Session != nil || state.IsAdmin {
		t.Errorf("expected anonymous state, got %+v", state)
	}
}

func TestStoreRoleCheckErrorReadsNonAdmin(t *testing.T) {
	client := &fakeClient{session: adminSession("cadet@nccairwing.in"), isAdminErr: errors.New("boom")}
	store := NewStore(client)
	defer store.Close()

	store.Start(context.Background())

	state := store.Snapshot()
	if state.IsAdmin {
		t.Error("role check failure must read as non-admin")
	}
	if state.User == nil {
		t.Error("role check failure must not drop the user")
	}
}

func TestStoreSubscribesOnlyAfterInitialFetch(t *testing.T) {
	client := &fakeClient{}
	store := NewStore(client)
	defer store.Close()

	if client.listener != nil {
		t.Fatal("listener must not be registered before Start")
	}

	store.Start(context.Background())

	if client.listener == nil {
		t.Fatal("listener must be registered after Start")
	}
}

func TestStoreSignedInResolvesRole(t *testing.T) {
	client := &fakeClient{}
	store := NewStore(client)
	defer store.Close()
	store.Start(context.Background())

	client.mu.Lock()
	client.isAdmin = true
	client.mu.Unlock()

	client.emit(EventSignedIn, adminSession("cadet@nccairwing.in"))

	state := store.Snapshot()
	if state.User == nil || state.Session == nil {
		t.Fatal("expected user and session after SIGNED_IN")
	}
	if !state.IsAdmin {
		t.Error("SIGNED_IN must re-run the role check")
	}
}

func TestStoreSignedOutClearsEverythingAtomically(t *testing.T) {
	client := &fakeClient{session: adminSession("cadet@nccairwing.in"), isAdmin: true}
	store := NewStore(client)
	defer store.Close()
	store.Start(context.Background())

	client.emit(EventSignedOut, nil)

	state := store.Snapshot()
	if state.User != nil || state.Session != nil || state.IsAdmin {
		t.Errorf("SIGNED_OUT must clear user, session and admin flag together, got %+v", state)
	}
	if state.Loading {
		t.Error("SIGNED_OUT must not re-enter the loading state")
	}
}

func TestStoreTokenRefreshNeverMovesAdminFlag(t *testing.T) {
	client := &fakeClient{session: adminSession("cadet@nccairwing.in"), isAdmin: true}
	store := NewStore(client)
	defer store.Close()
	store.Start(context.Background())

	checksBefore := client.roleCheckCount()

	// Flip the backend answer; a refresh must not pick it up.
	client.mu.Lock()
	client.isAdmin = false
	client.mu.Unlock()

	refreshed := adminSession("cadet@nccairwing.in")
	refreshed.AccessToken = "rotated-access-token"
	client.emit(EventTokenRefreshed, refreshed)

	state := store.Snapshot()
	if !state.IsAdmin {
		t.Error("TOKEN_REFRESHED must not move the admin flag")
	}
	if state.Session == nil || state.Session.AccessToken != "rotated-access-token" {
		t.Error("TOKEN_REFRESHED must replace the session")
	}
	if client.roleCheckCount() != checksBefore {
		t.Error("TOKEN_REFRESHED must not re-run the role check")
	}
}

func TestStoreUserUpdatedKeepsAdminFlag(t *testing.T) {
	client := &fakeClient{session: adminSession("cadet@nccairwing.in"), isAdmin: true}
	store := NewStore(client)
	defer store.Close()
	store.Start(context.Background())

	updated := adminSession("newmail@nccairwing.in")
	client.emit(EventUserUpdated, updated)

	state := store.Snapshot()
	if state.User == nil || state.User.Email != "newmail@nccairwing.in" {
		t.Error("USER_UPDATED must replace the identity fields")
	}
	if !state.IsAdmin {
		t.Error("USER_UPDATED must not move the admin flag")
	}
}

func TestStoreIgnoresInitialSessionEvent(t *testing.T) {
	client := &fakeClient{}
	store := NewStore(client)
	defer store.Close()
	store.Start(context.Background())

	client.emit(EventInitialSession, adminSession("cadet@nccairwing.in"))

	state := store.Snapshot()
	if state.User != nil || state.Session != nil {
		t.Error("INITIAL_SESSION must be ignored; the gated fetch already ran")
	}
}

func TestStoreCloseUnsubscribes(t *testing.T) {
	client := &fakeClient{}
	store := NewStore(client)
	store.Start(context.Background())

	store.Close()

	if !client.unsubscribed {
		t.Error("Close must release the subscription")
	}
}

func TestStoreWatchPublishesStates(t *testing.T) {
	client := &fakeClient{}
	store := NewStore(client)
	defer store.Close()
	store.Start(context.Background())

	ch := store.Watch()

	client.emit(EventSignedIn, adminSession("cadet@nccairwing.in"))

	select {
	case state := <-ch:
		if state.User == nil {
			t.Error("expected published state to carry the user")
		}
	case <-time.After(time.Second):
		t.Fatal("expected a state on the watch channel")
	}
}
