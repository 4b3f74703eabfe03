// Package profiling starts an optional pprof server for the job-importer.
package profiling

import (
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
)

// StartPprofServer starts the pprof endpoints in a goroutine when
// ENABLE_PROFILING=true. PPROF_PORT overrides the default 6060. The server
// binds to localhost only so profiles are never reachable externally.
//
// Runs before the structured logger exists, so it logs with the stdlib
// logger.
func StartPprofServer() {
	if os.Getenv("ENABLE_PROFILING") != "true" {
		return
	}

	port := os.Getenv("PPROF_PORT")
	if port == "" {
		port = "6060"
	}
	addr := "localhost:" + port

	go func() {
		log.Printf("Starting pprof server on %s", addr)
		log.Printf("Access profiles at http://%s/debug/pprof/", addr)
		if err := http.ListenAndServe(addr, nil); err != nil {
			log.Printf("pprof server error: %v", err)
		}
	}()
}
