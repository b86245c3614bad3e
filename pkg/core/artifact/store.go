// Package artifact persists screenshot bytes and mints stable URLs for them.
// Filenames are epoch-unique and immutable, so artifacts are disposable and
// need no schema migration: one flat directory is the whole persisted state.
package artifact

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"decisionscan/pkg/models"
)

// Store owns a writable directory of screenshot files. Consumers hold only
// ArtifactRef handles; the store exclusively owns the bytes on disk.
type Store struct {
	dir        string
	publicBase string

	mu        sync.Mutex
	lastStamp int64
}

// Health describes the state of the backing directory.
type Health struct {
	Exists      bool     `json:"exists"`
	IsDir       bool     `json:"is_dir"`
	Path        string   `json:"path"`
	SampleFiles []string `json:"sample_files"`
}

// New acquires the artifact directory. dir defaults to <os temp>/artifacts.
// The directory is created and probed for writability; failure here is fatal
// for the process, so an error is returned rather than degraded state.
func New(dir string, publicBase string) (*Store, error) {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "artifacts")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("artifact dir %s: %w", dir, err)
	}

	// Probe writability up front rather than on the first capture.
	probe := filepath.Join(dir, ".write_probe")
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		return nil, fmt.Errorf("artifact dir %s not writable: %w", dir, err)
	}
	_ = os.Remove(probe)

	return &Store{dir: dir, publicBase: strings.TrimRight(publicBase, "/")}, nil
}

// Dir returns the backing directory path.
func (s *Store) Dir() string { return s.dir }

// Put writes PNG bytes atomically (temp file + rename) and returns the
// handle. base is the URL base to mint against when the store has no
// configured public base (typically derived from the inbound request).
// On write failure the returned handle carries the filename but no URL and
// no data URI; the error is for logging, it never crosses as a panic.
func (s *Store) Put(data []byte, kind string, viewport models.Viewport, base string, inline bool) (models.ArtifactRef, error) {
	filename := fmt.Sprintf("%s_%s_%d.png", kind, viewport, s.nextStamp())
	ref := models.ArtifactRef{Filename: filename}

	if cfg, err := png.DecodeConfig(bytes.NewReader(data)); err == nil {
		ref.Width = cfg.Width
		ref.Height = cfg.Height
	}

	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return ref, fmt.Errorf("artifact_write_failed: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = os.Remove(tmpName)
		return ref, fmt.Errorf("artifact_write_failed: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return ref, fmt.Errorf("artifact_write_failed: %w", err)
	}
	if err := os.Rename(tmpName, filepath.Join(s.dir, filename)); err != nil {
		_ = os.Remove(tmpName)
		return ref, fmt.Errorf("artifact_write_failed: %w", err)
	}

	ref.URL = s.mintURL(base, filename)
	if inline {
		ref.DataURI = "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)
	}
	return ref, nil
}

// nextStamp returns a strictly increasing epoch-ms value so two writes in
// the same millisecond still get distinct filenames.
func (s *Store) nextStamp() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UnixMilli()
	if now <= s.lastStamp {
		now = s.lastStamp + 1
	}
	s.lastStamp = now
	return now
}

func (s *Store) mintURL(base, filename string) string {
	b := s.publicBase
	if b == "" {
		b = strings.TrimRight(base, "/")
	}
	if b == "" {
		return ""
	}
	return b + "/api/artifacts/" + filename
}

// Get returns the stored bytes for a filename. Lookups are read-only and
// reject anything that is not a bare filename.
func (s *Store) Get(filename string) ([]byte, error) {
	if filename == "" || filename != filepath.Base(filename) || strings.HasPrefix(filename, ".") {
		return nil, fmt.Errorf("artifact not found: %q", filename)
	}
	data, err := os.ReadFile(filepath.Join(s.dir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("artifact not found: %q", filename)
		}
		return nil, fmt.Errorf("artifact read failed: %w", err)
	}
	return data, nil
}

// CheckHealth lists up to five sample files. It walks the directory, so it
// is only invoked by explicit probes, never on the request path.
func (s *Store) CheckHealth() Health {
	h := Health{Path: s.dir, SampleFiles: []string{}}
	info, err := os.Stat(s.dir)
	if err != nil {
		return h
	}
	h.Exists = true
	h.IsDir = info.IsDir()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return h
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	if len(names) > 5 {
		names = names[:5]
	}
	h.SampleFiles = names
	return h
}
