package authstate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// APIError is an error envelope returned by the portal backend
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements error interface
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// APIClient implements Client against the portal's HTTP API. Auth events
// originate client-side: every successful auth call emits the matching event
// to registered listeners.
type APIClient struct {
	baseURL    string
	httpClient *http.Client

	mu             sync.Mutex
	session        *Session
	listeners      map[int]func(event AuthEvent, session *Session)
	nextListenerID int
}

// NewAPIClient creates a client for the given base URL, e.g.
// "http://localhost:8080/api/v1".
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		listeners:  map[int]func(AuthEvent, *Session){},
	}
}

type apiEnvelope struct {
	Data  json.RawMessage `json:"data"`
	Error *APIError       `json:"error"`
}

type tokenPayload struct {
	AccessToken           string `json:"accessToken"`
	TokenType             string `json:"tokenType"`
	ExpiresIn             int    `json:"expiresIn"`
	RefreshToken          string `json:"refreshToken"`
	RefreshTokenExpiresIn int    `json:"refreshTokenExpiresIn"`
}

type sessionPayload struct {
	User User `json:"user"`
}

type isAdminPayload struct {
	IsAdmin bool `json:"isAdmin"`
}

// SignUp registers a new account. No session is created; the account must
// verify its email first.
func (c *APIClient) SignUp(ctx context.Context, email, password string) error {
	body := map[string]string{
		"email":           email,
		"password":        password,
		"confirmPassword": password,
	}
	return c.call(ctx, http.MethodPost, "/auth/register", body, "", nil)
}

// SignInWithPassword authenticates with email and password and emits
// SIGNED_IN on success.
func (c *APIClient) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}
	return c.signIn(ctx, "/auth/login", body)
}

// SignInWithGoogle authenticates with a Google ID token and emits SIGNED_IN
// on success.
func (c *APIClient) SignInWithGoogle(ctx context.Context, idToken string) (*Session, error) {
	body := map[string]string{"idToken": idToken}
	return c.signIn(ctx, "/auth/google", body)
}

func (c *APIClient) signIn(ctx context.Context, path string, body interface{}) (*Session, error) {
	var tokens tokenPayload
	if err := c.call(ctx, http.MethodPost, path, body, "", &tokens); err != nil {
		return nil, err
	}

	session, err := c.buildSession(ctx, &tokens)
	if err != nil {
		return nil, err
	}

	c.setSession(session)
	c.emit(EventSignedIn, session)
	return session, nil
}

// SignOut revokes the refresh token, clears the local session and emits
// SIGNED_OUT. The local session is cleared even when revocation fails.
func (c *APIClient) SignOut(ctx context.Context) error {
	session := c.currentSession()

	var err error
	if session != nil && session.RefreshToken != "" {
		body := map[string]string{"refreshToken": session.RefreshToken}
		err = c.call(ctx, http.MethodPost, "/auth/logout", body, "", nil)
	}

	c.setSession(nil)
	c.emit(EventSignedOut, nil)
	return err
}

// RefreshSession rotates the refresh token and emits TOKEN_REFRESHED on
// success.
func (c *APIClient) RefreshSession(ctx context.Context) (*Session, error) {
	session := c.currentSession()
	if session == nil || session.RefreshToken == "" {
		return nil, &APIError{Message: "no session to refresh"}
	}

	body := map[string]string{"refreshToken": session.RefreshToken}
	var tokens tokenPayload
	if err := c.call(ctx, http.MethodPost, "/auth/refresh", body, "", &tokens); err != nil {
		return nil, err
	}

	next := &Session{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
		User:         session.User,
	}

	c.setSession(next)
	c.emit(EventTokenRefreshed, next)
	return next, nil
}

// UpdateUser changes the email and/or password of the signed-in user and
// emits USER_UPDATED on success. Nil fields are left untouched.
func (c *APIClient) UpdateUser(ctx context.Context, email, password *string) (*User, error) {
	session := c.currentSession()
	if session == nil {
		return nil, &APIError{Message: "not signed in"}
	}

	body := map[string]interface{}{}
	if email != nil {
		body["email"] = *email
	}
	if password != nil {
		body["password"] = *password
	}

	var user User
	if err := c.call(ctx, http.MethodPatch, "/auth/user", body, session.AccessToken, &user); err != nil {
		return nil, err
	}

	next := *session
	next.User = &user
	c.setSession(&next)
	c.emit(EventUserUpdated, &next)
	return &user, nil
}

// ResetPasswordForEmail requests a password reset mail
func (c *APIClient) ResetPasswordForEmail(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.call(ctx, http.MethodPost, "/auth/forgot-password", body, "", nil)
}

// GetSession returns the locally held session after confirming it against
// the backend. Anonymous clients get nil without error.
func (c *APIClient) GetSession(ctx context.Context) (*Session, error) {
	session := c.currentSession()
	if session == nil {
		return nil, nil
	}

	var payload sessionPayload
	if err := c.call(ctx, http.MethodGet, "/auth/session", nil, session.AccessToken, &payload); err != nil {
		return nil, err
	}

	next := *session
	next.User = &payload.User
	c.setSession(&next)
	return &next, nil
}

// IsAdmin asks the backend whether the signed-in user holds the admin role
func (c *APIClient) IsAdmin(ctx context.Context) (bool, error) {
	session := c.currentSession()
	if session == nil {
		return false, nil
	}

	var payload isAdminPayload
	if err := c.call(ctx, http.MethodGet, "/auth/is-admin", nil, session.AccessToken, &payload); err != nil {
		return false, err
	}
	return payload.IsAdmin, nil
}

// OnAuthStateChange registers a listener and returns its unsubscribe
// function.
func (c *APIClient) OnAuthStateChange(fn func(event AuthEvent, session *Session)) func() {
	c.mu.Lock()
	id := c.nextListenerID
	c.nextListenerID++
	c.listeners[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

// buildSession resolves the user behind a fresh token pair
func (c *APIClient) buildSession(ctx context.Context, tokens *tokenPayload) (*Session, error) {
	var payload sessionPayload
	if err := c.call(ctx, http.MethodGet, "/auth/session", nil, tokens.AccessToken, &payload); err != nil {
		return nil, err
	}

	return &Session{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
		User:         &payload.User,
	}, nil
}

func (c *APIClient) currentSession() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

func (c *APIClient) setSession(session *Session) {
	c.mu.Lock()
	c.session = session
	c.mu.Unlock()
}

func (c *APIClient) emit(event AuthEvent, session *Session) {
	c.mu.Lock()
	listeners := make([]func(AuthEvent, *Session), 0, len(c.listeners))
	for _, fn := range c.listeners {
		listeners = append(listeners, fn)
	}
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(event, session)
	}
}

// call performs one API request and decodes the data part of the envelope
// into out when out is non-nil.
func (c *APIClient) call(ctx context.Context, method, path string, body interface{}, accessToken string, out interface{}) error {
	var reqBody *bytes.Buffer
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewBuffer(encoded)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var envelope apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode >= 400 {
		if envelope.Error != nil {
			return envelope.Error
		}
		return &APIError{Message: fmt.Sprintf("request failed with status %d", resp.StatusCode)}
	}

	if out != nil && envelope.Data != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}

	return nil
}
