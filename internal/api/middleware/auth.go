package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/sessions"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Context keys for storing user information
type contextKey string

const UserIDKey contextKey = "user_id"

const (
	sessionName      = "hearth_session"
	sessionUserIDKey = "userId"
	tokenTTL         = 24 * time.Hour
)

// AuthMiddleware authenticates requests from either a session cookie or
// a Bearer token. Browser clients carry the cookie; API clients carry
// an HS256 JWT minted at login. Either one resolves to a user id in the
// request context.
type AuthMiddleware struct {
	store  *sessions.CookieStore
	secret []byte
}

// NewAuthMiddleware creates an auth middleware sharing the session
// store and signing secret with the login handler.
func NewAuthMiddleware(store *sessions.CookieStore, secret []byte) *AuthMiddleware {
	return &AuthMiddleware{store: store, secret: secret}
}

// RequireAuth ensures the request is authenticated. Unauthenticated
// requests get a 401; authenticated ones continue with the user id in
// context.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := m.resolveUser(r)
		if userID == "" {
			writeAuthError(w, "Authentication required")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth loads the user id if the request is authenticated but
// lets anonymous requests through.
func (m *AuthMiddleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID := m.resolveUser(r); userID != "" {
			r = r.WithContext(context.WithValue(r.Context(), UserIDKey, userID))
		}
		next.ServeHTTP(w, r)
	})
}

// resolveUser checks the Bearer token first, then the session cookie.
// Returns empty string when neither authenticates the request.
func (m *AuthMiddleware) resolveUser(r *http.Request) string {
	if userID := m.userFromBearer(r); userID != "" {
		return userID
	}
	return m.userFromSession(r)
}

func (m *AuthMiddleware) userFromBearer(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	raw := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

	token, err := jwt.Parse([]byte(raw),
		jwt.WithKey(jwa.HS256, m.secret),
		jwt.WithValidate(true),
	)
	if err != nil {
		log.Printf("[AUTH_FAILURE] type=token_invalid ip=%s method=%s path=%s error=%v",
			r.RemoteAddr, r.Method, r.URL.Path, err)
		return ""
	}
	return token.Subject()
}

func (m *AuthMiddleware) userFromSession(r *http.Request) string {
	session, err := m.store.Get(r, sessionName)
	if err != nil {
		return ""
	}
	userID, _ := session.Values[sessionUserIDKey].(string)
	return userID
}

// EstablishSession writes the session cookie after a successful login.
func (m *AuthMiddleware) EstablishSession(w http.ResponseWriter, r *http.Request, userID string) error {
	session, err := m.store.Get(r, sessionName)
	if err != nil {
		// A stale or re-keyed cookie decodes with an error but still
		// yields a usable new session.
		session, _ = m.store.New(r, sessionName)
	}
	session.Values[sessionUserIDKey] = userID
	return session.Save(r, w)
}

// ClearSession expires the session cookie.
func (m *AuthMiddleware) ClearSession(w http.ResponseWriter, r *http.Request) error {
	session, err := m.store.Get(r, sessionName)
	if err != nil {
		return nil
	}
	session.Options.MaxAge = -1
	return session.Save(r, w)
}

// MintToken signs a Bearer token for API clients.
func (m *AuthMiddleware) MintToken(userID string) (string, error) {
	now := time.Now().UTC()
	token, err := jwt.NewBuilder().
		Subject(userID).
		IssuedAt(now).
		Expiration(now.Add(tokenTTL)).
		Build()
	if err != nil {
		return "", err
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256, m.secret))
	if err != nil {
		return "", err
	}
	return string(signed), nil
}

// GetUserID extracts the authenticated user's id from the request
// context. Returns empty string if not authenticated.
func GetUserID(r *http.Request) string {
	userID, _ := r.Context().Value(UserIDKey).(string)
	return userID
}

// SetTestUserID sets the user id in the context for testing purposes
func SetTestUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// writeAuthError writes a JSON error response for authentication failures
func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	response := `{"error":"AuthenticationRequired","message":"` + message + `"}`
	if _, err := w.Write([]byte(response)); err != nil {
		log.Printf("Failed to write auth error response: %v", err)
	}
}
