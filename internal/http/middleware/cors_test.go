package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestCORSAllowsListedOrigin(t *testing.T) {
	called := false
	mw := CORS([]string{"https://doors.example/"})
	req := httptest.NewRequest(http.MethodPost, "/api/lead", nil)
	req.Header.Set("Origin", "https://doors.example")
	rec := httptest.NewRecorder()

	mw(okHandler(&called)).ServeHTTP(rec, req)

	if !called {
		t.Fatalf("expected handler to be called")
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://doors.example" {
		t.Fatalf("expected allow origin header, got %q", got)
	}
	if got := rec.Header().Get("Vary"); got != "Origin" {
		t.Fatalf("expected Vary: Origin, got %q", got)
	}
}

func TestCORSUnknownOriginGetsNoHeaders(t *testing.T) {
	called := false
	mw := CORS([]string{"https://doors.example"})
	req := httptest.NewRequest(http.MethodPost, "/api/lead", nil)
	req.Header.Set("Origin", "https://unknown.example")
	rec := httptest.NewRecorder()

	mw(okHandler(&called)).ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no allow origin header, got %q", got)
	}
	if !called {
		t.Fatalf("simple requests still reach the handler")
	}
}

func TestCORSEmptyListAllowsAnyOrigin(t *testing.T) {
	for _, origins := range [][]string{nil, {"*"}} {
		called := false
		req := httptest.NewRequest(http.MethodGet, "/api/lead/options", nil)
		req.Header.Set("Origin", "https://random.example")
		rec := httptest.NewRecorder()

		CORS(origins)(okHandler(&called)).ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://random.example" {
			t.Fatalf("origins %v: expected allow origin header, got %q", origins, got)
		}
	}
}

func TestCORSHandlesPreflight(t *testing.T) {
	called := false
	mw := CORS([]string{"https://doors.example"})
	req := httptest.NewRequest(http.MethodOptions, "/api/lead", nil)
	req.Header.Set("Origin", "https://doors.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()

	mw(okHandler(&called)).ServeHTTP(rec, req)

	if called {
		t.Fatalf("expected handler to not be called on preflight")
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status %d, got %d", http.StatusNoContent, rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); got != corsAllowedMethods {
		t.Fatalf("unexpected allow methods %q", got)
	}
}

func TestCORSRefusesForeignPreflight(t *testing.T) {
	called := false
	mw := CORS([]string{"https://doors.example"})
	req := httptest.NewRequest(http.MethodOptions, "/api/lead", nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()

	mw(okHandler(&called)).ServeHTTP(rec, req)

	if called || rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without reaching handler, got %d (called=%v)", rec.Code, called)
	}
}
