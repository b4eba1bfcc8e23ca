package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/sessions"
)

func newTestAuth() *AuthMiddleware {
	secret := []byte("test-secret")
	return NewAuthMiddleware(sessions.NewCookieStore(secret), secret)
}

func echoUserHandler(t *testing.T, wantUser string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := GetUserID(r); got != wantUser {
			t.Errorf("GetUserID() = %q, want %q", got, wantUser)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuthRejectsAnonymous(t *testing.T) {
	auth := newTestAuth()
	handler := auth.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached without credentials")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestRequireAuthAcceptsBearerToken(t *testing.T) {
	auth := newTestAuth()

	token, err := auth.MintToken("user-1")
	if err != nil {
		t.Fatalf("MintToken() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	auth.RequireAuth(echoUserHandler(t, "user-1")).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestRequireAuthRejectsForgedToken(t *testing.T) {
	auth := newTestAuth()

	otherSecret := []byte("other-secret")
	forger := NewAuthMiddleware(sessions.NewCookieStore(otherSecret), otherSecret)
	token, err := forger.MintToken("user-1")
	if err != nil {
		t.Fatalf("MintToken() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	auth.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached with a token signed by another key")
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestRequireAuthAcceptsSessionCookie(t *testing.T) {
	auth := newTestAuth()

	// Log in: establish the session and capture the cookie.
	loginRec := httptest.NewRecorder()
	loginReq := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	if err := auth.EstablishSession(loginRec, loginReq, "user-2"); err != nil {
		t.Fatalf("EstablishSession() error = %v", err)
	}
	cookies := loginRec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("no session cookie written")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	auth.RequireAuth(echoUserHandler(t, "user-2")).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestOptionalAuthPassesAnonymous(t *testing.T) {
	auth := newTestAuth()

	rec := httptest.NewRecorder()
	auth.OptionalAuth(echoUserHandler(t, "")).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
