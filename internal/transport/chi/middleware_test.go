package chi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func TestRequestLogger_PassesThrough(t *testing.T) {
	handler := RequestLogger(zap.NewNop())(okHandler())

	req := httptest.NewRequest("GET", "/stats", http.NoBody)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rr.Code)
	}
}

func TestRecoverer_PanicBecomesJSON500(t *testing.T) {
	handler := Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest("GET", "/search", http.NoBody)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
	var errResp errorResponse
	if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if errResp.Code != "internal_error" {
		t.Errorf("code = %q, want internal_error", errResp.Code)
	}
}

func TestRecoverer_NoPanicPassesThrough(t *testing.T) {
	handler := Recoverer(okHandler())

	req := httptest.NewRequest("GET", "/stats", http.NoBody)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rr.Code)
	}
}
