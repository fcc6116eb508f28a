package agent

import (
	"net/http"
	"path/filepath"

	log "github.com/golang/glog"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// CameraWebUI serves the captured images over HTTP so the URLs the
// camera service stores in Pic rows resolve, plus the agent's
// Prometheus counters under /metrics.
type CameraWebUI struct {
	dir    string
	router *mux.Router
	srv    *http.Server
}

func NewCameraWebUI(addr, dir string) *CameraWebUI {
	ui := &CameraWebUI{dir: dir}
	r := mux.NewRouter()
	r.HandleFunc("/camera/{file}", ui.servePicture).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler())
	ui.router = r
	ui.srv = &http.Server{Addr: addr, Handler: r}
	return ui
}

// Start serves in the background until Close.
func (ui *CameraWebUI) Start() {
	go func() {
		log.V(1).Infof("Camera web UI listening on %s", ui.srv.Addr)
		if err := ui.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorf("Camera web UI failed: %v", err)
		}
	}()
}

// Close stops the HTTP server without waiting for open requests.
func (ui *CameraWebUI) Close() error {
	return ui.srv.Close()
}

func (ui *CameraWebUI) servePicture(w http.ResponseWriter, r *http.Request) {
	name := filepath.Base(mux.Vars(r)["file"])
	log.V(2).Infof("Serving picture [%s]", name)
	http.ServeFile(w, r, filepath.Join(ui.dir, name))
}
