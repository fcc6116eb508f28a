package agent

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCameraWebUIServesPictures(t *testing.T) {
	dir := t.TempDir()
	content := []byte("not really a jpeg")
	if err := os.WriteFile(filepath.Join(dir, "image_1.jpg"), content, 0644); err != nil {
		t.Fatalf("writing test image: %v", err)
	}
	ui := NewCameraWebUI("127.0.0.1:0", dir)

	rr := httptest.NewRecorder()
	ui.router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/camera/image_1.jpg", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("GET /camera/image_1.jpg = %d, want 200", rr.Code)
	}
	body, err := io.ReadAll(rr.Result().Body)
	if err != nil {
		t.Fatalf("reading response body: %v", err)
	}
	if !bytes.Equal(body, content) {
		t.Errorf("served %d bytes, want the %d byte image", len(body), len(content))
	}
}

func TestCameraWebUIMissingPicture(t *testing.T) {
	ui := NewCameraWebUI("127.0.0.1:0", t.TempDir())

	rr := httptest.NewRecorder()
	ui.router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/camera/no-such.jpg", nil))
	if rr.Code != http.StatusNotFound {
		t.Errorf("GET of a missing picture = %d, want 404", rr.Code)
	}
}

func TestCameraWebUIRejectsNonGet(t *testing.T) {
	ui := NewCameraWebUI("127.0.0.1:0", t.TempDir())

	rr := httptest.NewRecorder()
	ui.router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/camera/image_1.jpg", nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST /camera/... = %d, want 405", rr.Code)
	}
}

func TestCameraWebUIServesMetrics(t *testing.T) {
	ui := NewCameraWebUI("127.0.0.1:0", t.TempDir())

	rr := httptest.NewRecorder()
	ui.router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("GET /metrics = %d, want 200", rr.Code)
	}
	body, err := io.ReadAll(rr.Result().Body)
	if err != nil {
		t.Fatalf("reading response body: %v", err)
	}
	for _, name := range []string{"number_of_usp_get_msgs", "number_of_usp_notify_msgs"} {
		if !strings.Contains(string(body), name) {
			t.Errorf("/metrics output misses the %s counter", name)
		}
	}
}
