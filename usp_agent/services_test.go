package agent

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/kylelemons/godebug/pretty"

	agentdb "github.com/johnblackford/agent/agent_db"
)

type fakeCapturer struct {
	files []string
	data  []byte
}

func (c *fakeCapturer) Capture(filename string) error {
	c.files = append(c.files, filename)
	return os.WriteFile(filename, c.data, 0644)
}

type failingCapturer struct{}

func (failingCapturer) Capture(string) error {
	return errors.New("no camera attached")
}

func TestCameraServiceTakePicture(t *testing.T) {
	db := newTestDB(t, map[string]interface{}{
		"Device.LocalAgent.X_ARRIS-COM_IPAddr": "192.168.1.40",
	})
	dir := t.TempDir()
	svc := NewCameraService(db, dir, "8080")
	capturer := &fakeCapturer{data: []byte("not really a jpeg")}
	svc.SetCapturer(capturer)
	svc.pause = 0

	out, err := svc.Invoke()
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("Invoke returned %d output args, want 2: %v", len(out), out)
	}

	// The fixture's Pic table holds rows 9 and 10 with 11 next in line.
	tds := []struct {
		urlPath string
		suffix  string
	}{
		{picTablePath + "11.URL", "_1.jpg"},
		{picTablePath + "12.URL", "_2.jpg"},
	}
	for _, td := range tds {
		url, ok := out[td.urlPath]
		if !ok {
			t.Fatalf("Invoke output has no %s: %v", td.urlPath, out)
		}
		if !strings.HasPrefix(url, "http://192.168.1.40:8080/camera/image_") ||
			!strings.HasSuffix(url, td.suffix) {
			t.Errorf("URL for %s = %q, want http://192.168.1.40:8080/camera/image_*%s",
				td.urlPath, url, td.suffix)
		}
		stored, err := db.GetStr(td.urlPath)
		if err != nil {
			t.Errorf("the new Pic row %s is unreadable: %v", td.urlPath, err)
		} else if stored != url {
			t.Errorf("stored URL = %q, want %q", stored, url)
		}
	}

	if len(capturer.files) != 2 {
		t.Fatalf("capturer ran %d times, want 2", len(capturer.files))
	}
	nameRE := regexp.MustCompile(`^image_\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}-06:00_1\.jpg$`)
	if name := filepath.Base(capturer.files[0]); !nameRE.MatchString(name) {
		t.Errorf("first image name = %q, want image_<local timestamp>_1.jpg", name)
	}
	for _, f := range capturer.files {
		if filepath.Dir(f) != dir {
			t.Errorf("image %s captured outside the image dir %s", f, dir)
		}
		if _, err := os.Stat(f); err != nil {
			t.Errorf("captured image missing on disk: %v", err)
		}
	}

	insts, err := db.FindInstances(picTablePath)
	if err != nil {
		t.Fatalf("FindInstances failed: %v", err)
	}
	want := []string{
		picTablePath + "9.",
		picTablePath + "10.",
		picTablePath + "11.",
		picTablePath + "12.",
	}
	if diff := pretty.Compare(want, insts); diff != "" {
		t.Errorf("Pic rows diff (-want +got):\n%s", diff)
	}
}

func TestCameraServiceCaptureFailure(t *testing.T) {
	db := newTestDB(t, nil)
	svc := NewCameraService(db, t.TempDir(), "8080")
	svc.SetCapturer(failingCapturer{})
	svc.pause = 0

	if _, err := svc.Invoke(); err == nil {
		t.Fatal("Invoke succeeded with a broken capturer")
	}

	// No rows appear for pictures that were never taken.
	insts, err := db.FindInstances(picTablePath)
	if err != nil {
		t.Fatalf("FindInstances failed: %v", err)
	}
	if len(insts) != 2 {
		t.Errorf("Pic table has %d rows after a failed capture, want the original 2", len(insts))
	}
}

func newMotionDB(t *testing.T) *agentdb.Database {
	t.Helper()

	return newTempDB(t,
		map[string]string{
			"Device.Time.LocalTimeZone":                                     "readWrite",
			"Device.Services.HomeAutomation.{i}.Sensor.{i}.MinTriggerFreq":  "readWrite",
			"Device.Services.HomeAutomation.{i}.Sensor.{i}.LastTriggerTime": "readWrite",
		},
		map[string]interface{}{
			"Device.Time.LocalTimeZone": "CST6CDT,M3.2.0/2,M11.1.0",
			minTriggerFreqPath:          300,
			lastTriggerTimePath:         zeroTime,
		})
}

func TestMotionServiceThrottlesTriggers(t *testing.T) {
	db := newMotionDB(t)
	svc := NewMotionService(db, nil)
	base := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	svc.recordMotion(base)
	got, err := db.GetStr(lastTriggerTimePath)
	if err != nil {
		t.Fatalf("GetStr failed: %v", err)
	}
	if want := "2026-03-14T09:30:00-06:00"; got != want {
		t.Fatalf("first trigger recorded %q, want %q", got, want)
	}

	// Inside MinTriggerFreq, including the exact boundary: dropped.
	svc.recordMotion(base.Add(100 * time.Second))
	svc.recordMotion(base.Add(300 * time.Second))
	if got, _ = db.GetStr(lastTriggerTimePath); got != "2026-03-14T09:30:00-06:00" {
		t.Fatalf("throttled trigger overwrote the record: %q", got)
	}

	svc.recordMotion(base.Add(301 * time.Second))
	if got, _ = db.GetStr(lastTriggerTimePath); got != "2026-03-14T09:35:01-06:00" {
		t.Errorf("trigger past MinTriggerFreq recorded %q, want 2026-03-14T09:35:01-06:00", got)
	}
}

type fakeMotionSource struct {
	events chan bool
	closed bool
}

func newFakeMotionSource() *fakeMotionSource {
	return &fakeMotionSource{events: make(chan bool, 4)}
}

func (s *fakeMotionSource) Events() <-chan bool { return s.events }

func (s *fakeMotionSource) Close() error {
	s.closed = true
	return nil
}

func TestMotionServiceRun(t *testing.T) {
	db := newMotionDB(t)
	src := newFakeMotionSource()
	svc := NewMotionService(db, src)
	fixed := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	shutdown := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		svc.Run(shutdown)
	}()

	src.events <- false // clearing edge, ignored
	src.events <- true

	deadline := time.Now().Add(2 * time.Second)
	for {
		got, err := db.GetStr(lastTriggerTimePath)
		if err != nil {
			t.Fatalf("GetStr failed: %v", err)
		}
		if got != zeroTime {
			if want := "2026-03-14T09:30:00-06:00"; got != want {
				t.Errorf("recorded trigger time %q, want %q", got, want)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("motion trigger never recorded")
		}
		time.Sleep(5 * time.Millisecond)
	}

	close(shutdown)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("motion service did not stop on shutdown")
	}
	if !src.closed {
		t.Error("motion source left open on shutdown")
	}
}

func TestMotionServiceStopsWhenSourceCloses(t *testing.T) {
	db := newMotionDB(t)
	src := newFakeMotionSource()
	svc := NewMotionService(db, src)

	done := make(chan struct{})
	go func() {
		defer close(done)
		svc.Run(make(chan struct{}))
	}()

	close(src.events)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("motion service kept running after its source closed")
	}
}

func TestSysfsMotionSourceRequiresPin(t *testing.T) {
	if _, err := newSysfsMotionSource("no-such-pin"); err == nil {
		t.Error("newSysfsMotionSource succeeded without an exported GPIO pin")
	}
}

func TestLoadServicesCamera(t *testing.T) {
	db := newTestDB(t, nil) // fixture product class is RPi_Camera
	a := &Agent{cfg: &Config{UIAddr: "127.0.0.1:0"}, db: db}

	services, err := a.loadServices()
	if err != nil {
		t.Fatalf("loadServices failed: %v", err)
	}
	svc, ok := services["RPi_Camera"][takePictureCommand]
	if !ok {
		t.Fatalf("no TakePicture service registered: %v", services)
	}
	if _, ok = svc.(*CameraService); !ok {
		t.Errorf("TakePicture service has type %T, want *CameraService", svc)
	}
	if a.ui == nil {
		t.Error("camera product class built no web UI")
	}
}

func TestLoadServicesMotionWithoutGPIO(t *testing.T) {
	db := newTempDB(t,
		map[string]string{"Device.DeviceInfo.ProductClass": "readOnly"},
		map[string]interface{}{"Device.DeviceInfo.ProductClass": "RPi_Motion"})

	cfgFile := filepath.Join(t.TempDir(), "agent.json")
	writeJSON(t, cfgFile, map[string]string{gpioPinKey: "no-such-pin"})

	a := &Agent{cfg: &Config{CfgFile: cfgFile, UIAddr: defaultUIAddr}, db: db}
	services, err := a.loadServices()
	if err != nil {
		t.Fatalf("loadServices failed: %v", err)
	}
	// Without the exported pin the motion service is skipped, not fatal.
	if len(services) != 0 {
		t.Errorf("services = %v, want none", services)
	}
	if a.motion != nil {
		t.Error("motion service built without a GPIO pin")
	}
}

func TestLoadServicesUnknownProductClass(t *testing.T) {
	db := newTempDB(t,
		map[string]string{"Device.DeviceInfo.ProductClass": "readOnly"},
		map[string]interface{}{"Device.DeviceInfo.ProductClass": "Widget"})

	a := &Agent{cfg: &Config{UIAddr: defaultUIAddr}, db: db}
	services, err := a.loadServices()
	if err != nil {
		t.Fatalf("loadServices failed: %v", err)
	}
	if len(services) != 0 || a.ui != nil || a.motion != nil {
		t.Errorf("unknown product class still built services: %v", services)
	}
}

func TestUIPortOf(t *testing.T) {
	tds := []struct {
		addr string
		want string
	}{
		{"0.0.0.0:8080", "8080"},
		{"127.0.0.1:9090", "9090"},
		{":8081", "8081"},
		{"badaddr", "8080"},
		{"", "8080"},
	}
	for _, td := range tds {
		if got := uiPortOf(td.addr); got != td.want {
			t.Errorf("uiPortOf(%q) = %q, want %q", td.addr, got, td.want)
		}
	}
}
