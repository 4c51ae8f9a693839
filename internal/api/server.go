package api

import (
	"fmt"
	"net/http"
	"time"
)

// NewServer creates and returns a configured *http.Server for the economy API.
func NewServer(port uint16, d Deps) *http.Server {
	mux := NewRouter(d)

	addr := fmt.Sprintf(":%d", port)

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
