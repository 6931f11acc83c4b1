// Command suntd is the SNMPv2c agent entrypoint (spec.md §6 CLI).
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mzg/suntd/internal/agent"
	"github.com/mzg/suntd/internal/config"
	"github.com/mzg/suntd/internal/logging"
	"github.com/mzg/suntd/internal/metrics"
	"github.com/mzg/suntd/internal/probe"
)

func main() {
	port := flag.Int("port", 161, "UDP port to bind on [::] (dual-stack)")
	flag.IntVar(port, "p", 161, "alias of --port")
	community := flag.String("community", "sunt", "community string echoed in responses")
	flag.StringVar(community, "c", "sunt", "alias of --community")
	extendPath := flag.String("extend", "", "path to a YAML extend configuration file")
	flag.StringVar(extendPath, "e", "", "alias of --extend")
	contact := flag.String("contact", "sunt v0.0.1", "sysContact literal")
	location := flag.String("location", "the cloud, probably", "sysLocation literal")
	refreshInterval := flag.Duration("refresh-interval", 15*time.Second, "probe refresh cadence")
	metricsAddr := flag.String("metrics-addr", "", "if set, serve Prometheus metrics on this address")
	logLevel := flag.String("log-level", "info", "debug|info|warn|error")
	flag.Parse()

	log := logging.New(logging.ParseLevel(*logLevel))

	if *refreshInterval < time.Second {
		*refreshInterval = time.Second
	}

	var extendDoc *config.Document
	if *extendPath != "" {
		doc, err := config.Load(*extendPath)
		if err != nil {
			log.Fatalf("load extend config: %v", err)
		}
		extendDoc = doc
	}

	m := metrics.New()
	if *metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", m.Handler())
		go func() {
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				log.Errorf("metrics server on %s: %v", *metricsAddr, err)
			}
		}()
		log.Infof("serving metrics on %s/metrics", *metricsAddr)
	}

	registry := probe.NewRegistry(
		probe.Descriptor{Name: "system", Run: probe.System(probe.SystemConfig{Contact: *contact, Location: *location})},
		probe.Descriptor{Name: "disks", Run: probe.Disks()},
		probe.Descriptor{Name: "filesystems", Run: probe.Filesystems()},
		probe.Descriptor{Name: "network", Run: probe.Network()},
		probe.Descriptor{Name: "processes", Run: probe.Processes()},
		probe.Descriptor{Name: "extend", Run: probe.Extend(extendDoc)},
	)

	a, err := agent.New(agent.Config{
		Port:            *port,
		Community:       *community,
		RefreshInterval: *refreshInterval,
	}, registry, m, log)
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Infof("received signal %v, shutting down", sig)
		cancel()
	}()

	log.Infof("suntd listening on [::]:%d (community=%q)", *port, *community)
	if err := a.Run(ctx); err != nil {
		log.Fatalf("agent loop: %v", err)
	}
	a.Close()
}
