// Package artifacts serves stored screenshot bytes and the artifact
// directory health probe.
package artifacts

import (
	"encoding/json"
	"net/http"
	"strings"

	"decisionscan/pkg/core/artifact"
)

var store *artifact.Store

// InitHandler wires the artifact store into the handler.
func InitHandler(s *artifact.Store) {
	store = s
}

// HandleArtifact processes GET /api/artifacts/{filename} and the
// GET /api/artifacts/_health probe.
func HandleArtifact(w http.ResponseWriter, r *http.Request) {
	// Set CORS headers
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if store == nil {
		http.Error(w, "Artifact store not initialized", http.StatusServiceUnavailable)
		return
	}

	filename := strings.TrimPrefix(r.URL.Path, "/api/artifacts/")
	if filename == "_health" {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(store.CheckHealth())
		return
	}

	data, err := store.Get(filename)
	if err != nil {
		http.Error(w, "Artifact not found", http.StatusNotFound)
		return
	}

	// Filenames are epoch-unique, so the bytes behind a URL never change.
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	w.Write(data)
}
