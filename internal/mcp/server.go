package mcp

import (
	"encoding/json"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/rldelgado/dalgebra/internal/logging"
)

const maxBodyBytes = 1 << 20 // 1 MiB

// Handler routes the tool endpoints:
//
//	POST /tool   - execute a tool call
//	GET  /schema - tool schema for agent registration
//	GET  /health - liveness check
func Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/tool", handleTool)
	mux.HandleFunc("/schema", handleSchema)
	mux.HandleFunc("/health", handleHealth)
	return mux
}

func handleTool(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			logging.New("mcp").Error("panic in /tool", "panic", rec, "stack", string(debug.Stack()))
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
	}()

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req ToolRequest
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	// Ensure there's no trailing junk.
	if dec.More() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: trailing data"})
		return
	}

	writeJSON(w, http.StatusOK, HandleToolCall(req))
}

func handleSchema(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(ToolSpec()))
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
