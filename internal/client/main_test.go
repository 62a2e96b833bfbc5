package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"murmur/internal/sns"
)

// newRPCServer starts a fake RPC endpoint. Procedures without an explicit
// handler answer 404; GetMe always succeeds unless overridden.
func newRPCServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	if _, ok := handlers[sns.ProcGetMe]; !ok {
		mux.HandleFunc("/"+sns.ProcGetMe, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, sns.GetMeResponse{UserID: 1, DisplayName: "u_alice"})
		})
	}
	for proc, handler := range handlers {
		mux.HandleFunc("/"+proc, handler)
	}

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("encode response: %v", err)
	}
}

func jsonDecode(r *http.Request, dest any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dest)
}

func testIdentity() Identity {
	return ResolveIdentity("", "")
}
