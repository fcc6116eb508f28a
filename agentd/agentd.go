package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/golang/glog"

	agent "github.com/johnblackford/agent/usp_agent"
	binding "github.com/johnblackford/agent/usp_binding"
)

var (
	useCoap  = flag.Bool("coap", false, "listen for USP Records over CoAP instead of STOMP")
	coapPort = flag.Int("coap-port", binding.DefaultCoapPort, "CoAP listen port, used with -coap")
	intf     = flag.String("intf", "eth0", "network interface for local IP discovery")
	cfgFile  = flag.String("cfg", "cfg/agent.json", "service configuration file")

	clientType string
)

func init() {
	const usage = "type of client (test, camera, motion); selects the data model and database files"
	flag.StringVar(&clientType, "client-type", "test", usage)
	flag.StringVar(&clientType, "t", "test", usage+" (shorthand)")
}

func main() {
	flag.Parse()

	switch {
	case clientType == "":
		log.Errorf("client-type must be set.")
		return
	case *coapPort <= 0:
		log.Errorf("coap-port must be > 0.")
		return
	}

	cfg := &agent.Config{
		DmFile:   fmt.Sprintf("database/%s-dm.json", clientType),
		DbFile:   fmt.Sprintf("database/%s.db", clientType),
		CfgFile:  *cfgFile,
		UseCoap:  *useCoap,
		CoapPort: *coapPort,
		Intf:     *intf,
	}

	a, err := agent.NewAgent(cfg)
	if err != nil {
		log.Exitf("Failed to create USP agent: %v", err)
	}

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- a.Serve() // blocks until close
	}()

	select {
	case err := <-errChan:
		if err != nil {
			log.Exitf("Agent error: %v", err)
		}
	case sig := <-signalChan:
		log.Infof("Received signal: %v", sig)
		a.Close()
		<-errChan
	}
}
