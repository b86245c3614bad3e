package artifact

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"decisionscan/pkg/models"
)

// tinyPNG encodes a small solid PNG so width/height decoding is exercised.
func tinyPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 200, B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestStore_PutGetRoundTrip(t *testing.T) {
	store, err := New(t.TempDir(), "https://scan.example.com")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	data := tinyPNG(t, 12, 7)
	ref, err := store.Put(data, "screenshot", models.ViewportDesktop, "", false)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	if ref.Width != 12 || ref.Height != 7 {
		t.Errorf("dimensions = %dx%d, want 12x7", ref.Width, ref.Height)
	}
	if !strings.HasPrefix(ref.Filename, "screenshot_desktop_") || !strings.HasSuffix(ref.Filename, ".png") {
		t.Errorf("unexpected filename %q", ref.Filename)
	}
	if ref.URL != "https://scan.example.com/api/artifacts/"+ref.Filename {
		t.Errorf("unexpected url %q", ref.URL)
	}
	if ref.DataURI != "" {
		t.Errorf("data uri should be empty when inline=false")
	}

	got, err := store.Get(ref.Filename)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("round trip mismatch: got %d bytes, want %d", len(got), len(data))
	}
}

func TestStore_InlineDataURI(t *testing.T) {
	store, err := New(t.TempDir(), "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ref, err := store.Put(tinyPNG(t, 4, 4), "screenshot", models.ViewportMobile, "http://localhost:8080", true)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if !strings.HasPrefix(ref.DataURI, "data:image/png;base64,") {
		t.Errorf("missing data uri prefix: %q", ref.DataURI[:min(len(ref.DataURI), 30)])
	}
	// With no configured public base the request base is used.
	if ref.URL != "http://localhost:8080/api/artifacts/"+ref.Filename {
		t.Errorf("unexpected url %q", ref.URL)
	}
}

func TestStore_GetRejectsTraversal(t *testing.T) {
	store, err := New(t.TempDir(), "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, name := range []string{"", "../secret.png", "a/b.png", ".hidden"} {
		if _, err := store.Get(name); err == nil {
			t.Errorf("Get(%q) should fail", name)
		}
	}
}

func TestStore_Health(t *testing.T) {
	store, err := New(t.TempDir(), "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i := 0; i < 7; i++ {
		if _, err := store.Put(tinyPNG(t, 2, 2), "screenshot", models.ViewportDesktop, "", false); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}

	h := store.CheckHealth()
	if !h.Exists || !h.IsDir {
		t.Errorf("health = %+v, want existing directory", h)
	}
	if len(h.SampleFiles) != 5 {
		t.Errorf("sample files = %d, want capped at 5", len(h.SampleFiles))
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
