// Command oramd runs the oblivious block storage server.
//
// The server hosts one Path ORAM store behind an HTTP API with four
// operations: POST /oram/setup, /oram/read, /oram/write and GET
// /oram/print. Bucket contents are sealed with AES-256-GCM before they
// reach tree storage; pass a pinned key with --bucket-key or let the
// server generate one at startup.
//
// # Usage
//
//	go run ./cmd/oramd --addr=:8080 --metrics-addr=:9090
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tumichaels/oramd/api/httpserver"
	"github.com/tumichaels/oramd/cmd/common"
	"github.com/tumichaels/oramd/crypto"
	"github.com/tumichaels/oramd/oram"
	"github.com/tumichaels/oramd/server"
)

func main() {
	var (
		addr         = flag.String("addr", ":8080", "HTTP listen address")
		metricsAddr  = flag.String("metrics-addr", "", "metrics listen address (empty disables)")
		enablePprof  = flag.Bool("pprof", false, "enable pprof debug API")
		bucketKeyHex = flag.String("bucket-key", "", "32-byte bucket sealing key (hex, generates if empty)")
		logJSON      = flag.Bool("log-json", false, "log in JSON format")
		logDebug     = flag.Bool("log-debug", false, "enable debug logging")
	)
	flag.Parse()

	log := common.SetupLogger(*logJSON, *logDebug)

	key, err := common.LoadOrGenerateBucketKey(*bucketKeyHex)
	if err != nil {
		fmt.Printf("Bucket key error: %v\n", err)
		os.Exit(1)
	}
	sealer, err := crypto.NewBucketSealer(key)
	if err != nil {
		fmt.Printf("Sealer error: %v\n", err)
		os.Exit(1)
	}

	impl := server.NewServer(log, sealer, oram.CryptoLeafSource{})
	handler := server.NewHandler(impl, log)

	srv, err := httpserver.New(&httpserver.HTTPServerConfig{
		ListenAddr:               *addr,
		MetricsAddr:              *metricsAddr,
		EnablePprof:              *enablePprof,
		Log:                      log,
		DrainDuration:            5 * time.Second,
		GracefulShutdownDuration: 10 * time.Second,
		ReadTimeout:              15 * time.Second,
		WriteTimeout:             15 * time.Second,
	}, handler)
	if err != nil {
		fmt.Printf("Create server error: %v\n", err)
		os.Exit(1)
	}

	srv.RunInBackground()
	log.Info("Path ORAM server started", "addr", *addr)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down server")
	srv.Shutdown()
}
