// Package scan exposes the decision-scan endpoint. It accepts JSON for
// url and text mode and multipart/form-data for image mode, runs the
// analysis pipeline, and returns the full report envelope.
package scan

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"decisionscan/pkg/core/pipeline"
	"decisionscan/pkg/models"
)

// maxImageBytes bounds the uploaded screenshot size.
const maxImageBytes = 10 << 20

var orchestrator *pipeline.Orchestrator

// InitHandler wires the pipeline into the handler.
func InitHandler(o *pipeline.Orchestrator) {
	orchestrator = o
}

// HandleDecisionScan processes POST /api/decision-scan.
func HandleDecisionScan(w http.ResponseWriter, r *http.Request) {
	// Set CORS headers
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if orchestrator == nil {
		http.Error(w, "Service not initialized", http.StatusServiceUnavailable)
		return
	}

	req, err := decodeRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	reqID := uuid.NewString()[:8]
	w.Header().Set("X-Request-ID", reqID)
	fmt.Printf("[SCAN] %s mode=%s goal=%s locale=%s\n", reqID, req.Mode, req.Goal, req.Locale)

	started := time.Now()
	resp, err := orchestrator.Run(r.Context(), req, requestBase(r))
	if err != nil {
		fmt.Printf("[SCAN] %s rejected: %v\n", reqID, err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	fmt.Printf("[SCAN] %s done status=%s in %s\n", reqID, resp.AnalysisStatus, time.Since(started).Round(time.Millisecond))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// decodeRequest reads either a JSON body or a multipart form with an
// image file part.
func decodeRequest(r *http.Request) (*models.AnalysisRequest, error) {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		return decodeMultipart(r)
	}

	var req models.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, fmt.Errorf("validation_error: invalid JSON body: %v", err)
	}
	return &req, nil
}

// decodeMultipart handles image mode: an "image" file part plus the
// usual request fields as form values.
func decodeMultipart(r *http.Request) (*models.AnalysisRequest, error) {
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		return nil, fmt.Errorf("validation_error: invalid multipart body: %v", err)
	}

	req := &models.AnalysisRequest{
		Mode:        models.ModeImage,
		Goal:        models.Goal(r.FormValue("goal")),
		Locale:      models.Locale(r.FormValue("locale")),
		Refresh:     r.FormValue("refresh") == "true",
		AdText:      r.FormValue("ad_text"),
		PricingHTML: r.FormValue("pricing_html"),
	}
	if mode := r.FormValue("mode"); mode != "" {
		req.Mode = models.Mode(mode)
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		return nil, fmt.Errorf("validation_error: missing image file part: %v", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("validation_error: failed to read image: %v", err)
	}
	if len(data) > maxImageBytes {
		return nil, fmt.Errorf("validation_error: image exceeds %d bytes", maxImageBytes)
	}
	req.Image = data
	return req, nil
}

// requestBase reconstructs the externally visible base URL for artifact
// minting when no public base is configured.
func requestBase(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	if r.Host == "" {
		return ""
	}
	return scheme + "://" + r.Host
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{
		"status": "error",
		"error":  msg,
	})
}
