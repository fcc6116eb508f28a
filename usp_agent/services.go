package agent

import (
	"bytes"
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	log "github.com/golang/glog"

	agentdb "github.com/johnblackford/agent/agent_db"
	"github.com/johnblackford/agent/common_utils"
	handler "github.com/johnblackford/agent/usp_handler"
)

const (
	gpioPinKey        = "gpio.pin"
	cameraImageDirKey = "camera.image.dir"

	picTablePath       = "Device.Services.HomeAutomation.1.Camera.1.Pic."
	takePictureCommand = "Device.Services.HomeAutomation.1.Camera.1.TakePicture()"

	minTriggerFreqPath  = "Device.Services.HomeAutomation.1.Sensor.1.MinTriggerFreq"
	lastTriggerTimePath = "Device.Services.HomeAutomation.1.Sensor.1.LastTriggerTime"

	zeroTime = "0001-01-01T00:00:00Z"
)

// loadServices builds the Operate service map and the background
// services for the agent's product class.
func (a *Agent) loadServices() (handler.ServiceMap, error) {
	services := handler.ServiceMap{}
	productClass, err := a.db.GetStr(productClassPath)
	if err != nil {
		return nil, fmt.Errorf("read product class: %w", err)
	}
	log.Infof("Loading services for product class [%s]", productClass)

	switch productClass {
	case "RPi_Camera", "RPiZero_Camera":
		cfgMgr := common_utils.NewConfigMgr(a.cfg.CfgFile,
			map[string]string{cameraImageDirKey: "pictures"})
		dir, err := cfgMgr.GetItem(cameraImageDirKey)
		if err != nil {
			return nil, err
		}
		camera := NewCameraService(a.db, dir, uiPortOf(a.cfg.UIAddr))
		services[productClass] = map[string]handler.Service{takePictureCommand: camera}
		a.ui = NewCameraWebUI(a.cfg.UIAddr, dir)
	case "RPi_Motion":
		cfgMgr := common_utils.NewConfigMgr(a.cfg.CfgFile,
			map[string]string{gpioPinKey: "4"})
		pin, err := cfgMgr.GetItem(gpioPinKey)
		if err != nil {
			return nil, err
		}
		source, err := newSysfsMotionSource(pin)
		if err != nil {
			log.Warningf("Motion detection disabled, GPIO pin %s is unavailable: %v", pin, err)
			break
		}
		a.motion = NewMotionService(a.db, source)
	default:
		log.Warningf("No services to load for product class [%s]", productClass)
	}
	return services, nil
}

func uiPortOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil && port != "" {
		return port
	}
	return "8080"
}

// Capturer records one image to the named file.
type Capturer interface {
	Capture(filename string) error
}

// raspistillCapturer shells out to the stock Raspberry Pi still tool.
type raspistillCapturer struct{}

func (raspistillCapturer) Capture(filename string) error {
	out, err := exec.Command("raspistill", "-n", "-t", "1", "-o", filename).CombinedOutput()
	if err != nil {
		return fmt.Errorf("raspistill: %v: %s", err, bytes.TrimSpace(out))
	}
	return nil
}

// CameraService answers the TakePicture() command: it captures two
// images, inserts a Pic row per image, and reports the row URLs as the
// command's output arguments.
type CameraService struct {
	db       *agentdb.Database
	dir      string
	prefix   string
	port     string
	capturer Capturer
	pause    time.Duration
}

func NewCameraService(db *agentdb.Database, dir, port string) *CameraService {
	return &CameraService{
		db:       db,
		dir:      dir,
		prefix:   "image",
		port:     port,
		capturer: raspistillCapturer{},
		pause:    500 * time.Millisecond,
	}
}

// SetCapturer replaces the stock raspistill pipeline.
func (s *CameraService) SetCapturer(c Capturer) {
	s.capturer = c
}

func (s *CameraService) Invoke() (map[string]string, error) {
	timestamp := s.timeString(time.Now())
	names := []string{
		s.prefix + "_" + timestamp + "_1.jpg",
		s.prefix + "_" + timestamp + "_2.jpg",
	}
	for i, name := range names {
		if i > 0 {
			time.Sleep(s.pause)
		}
		full := filepath.Join(s.dir, name)
		if err := s.capturer.Capture(full); err != nil {
			return nil, fmt.Errorf("capture %s: %w", name, err)
		}
		log.V(1).Infof("Captured picture [%s]", full)
	}

	agentIP, err := s.db.GetStr(agentIPPath)
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(names))
	for _, name := range names {
		instNum, err := s.db.Insert(picTablePath)
		if err != nil {
			return nil, err
		}
		url := fmt.Sprintf("http://%s:%s/camera/%s", agentIP, s.port, name)
		urlPath := fmt.Sprintf("%s%d.URL", picTablePath, instNum)
		if err := s.db.Update(urlPath, url); err != nil {
			return nil, err
		}
		log.V(1).Infof("Stored picture [%s] at [%s]", url, urlPath)
		out[urlPath] = url
	}
	return out, nil
}

func (s *CameraService) timeString(t time.Time) string {
	tz, err := s.db.GetStr(localTimeZonePath)
	if err != nil {
		tz = ""
	}
	return common_utils.GetTimeAsStr(t, tz)
}

// MotionSource reports motion sensor level transitions; true marks
// asserted motion.
type MotionSource interface {
	Events() <-chan bool
	Close() error
}

// MotionService records accepted motion triggers in the store. Triggers
// within MinTriggerFreq seconds of the last recorded one are dropped.
type MotionService struct {
	db     *agentdb.Database
	source MotionSource
	now    func() time.Time
}

func NewMotionService(db *agentdb.Database, source MotionSource) *MotionService {
	return &MotionService{db: db, source: source, now: time.Now}
}

// Run consumes sensor events until shutdown or until the source closes.
func (m *MotionService) Run(shutdown <-chan struct{}) {
	defer m.source.Close()
	for {
		select {
		case <-shutdown:
			return
		case motion, ok := <-m.source.Events():
			if !ok {
				return
			}
			if !motion {
				log.V(2).Infof("Motion cleared")
				continue
			}
			m.recordMotion(m.now())
		}
	}
}

func (m *MotionService) recordMotion(now time.Time) {
	minFreq, err := m.db.GetInt(minTriggerFreqPath)
	if err != nil {
		log.Errorf("Motion detected but %s is unreadable: %v", minTriggerFreqPath, err)
		return
	}
	last, err := m.db.GetStr(lastTriggerTimePath)
	if err != nil {
		log.Errorf("Motion detected but %s is unreadable: %v", lastTriggerTimePath, err)
		return
	}

	var lastAt time.Time
	if last != "" && last != zeroTime {
		lastAt, err = common_utils.ParseTimeStr(last)
		if err != nil {
			log.Warningf("Ignoring unparseable last trigger time %q: %v", last, err)
			lastAt = time.Time{}
		}
	}
	if now.Sub(lastAt) <= time.Duration(minFreq)*time.Second {
		log.V(1).Infof("Motion detected, but too soon to record")
		return
	}

	tz, err := m.db.GetStr(localTimeZonePath)
	if err != nil {
		tz = ""
	}
	if err := m.db.Update(lastTriggerTimePath, common_utils.GetTimeAsStr(now, tz)); err != nil {
		log.Errorf("Failed to record the motion trigger: %v", err)
		return
	}
	log.V(1).Infof("Motion detected, trigger time recorded")
}

// sysfsMotionSource polls an exported GPIO pin's value file and emits
// level transitions. The pin must already be exported and configured as
// an input.
type sysfsMotionSource struct {
	valuePath string
	interval  time.Duration
	events    chan bool
	done      chan struct{}
	closeOnce sync.Once
}

func newSysfsMotionSource(pin string) (*sysfsMotionSource, error) {
	valuePath := fmt.Sprintf("/sys/class/gpio/gpio%s/value", pin)
	if _, err := os.Stat(valuePath); err != nil {
		return nil, err
	}
	s := &sysfsMotionSource{
		valuePath: valuePath,
		interval:  50 * time.Millisecond,
		events:    make(chan bool, 8),
		done:      make(chan struct{}),
	}
	go s.watch()
	return s, nil
}

func (s *sysfsMotionSource) watch() {
	defer close(s.events)
	last := false
	for {
		select {
		case <-s.done:
			return
		case <-time.After(s.interval):
		}
		raw, err := os.ReadFile(s.valuePath)
		if err != nil {
			log.Errorf("GPIO read failed: %v", err)
			return
		}
		level := strings.TrimSpace(string(raw)) == "1"
		if level == last {
			continue
		}
		last = level
		select {
		case s.events <- level:
		default:
			log.Warningf("Dropped a motion event, consumer is behind")
		}
	}
}

func (s *sysfsMotionSource) Events() <-chan bool {
	return s.events
}

func (s *sysfsMotionSource) Close() error {
	s.closeOnce.Do(func() { close(s.done) })
	return nil
}
