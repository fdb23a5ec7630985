package main

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ericogr/technonomicon/internal/constants"
)

// healthURL targets the version endpoint on the configured listen port.
func healthURL() string {
	addr := os.Getenv(constants.EnvAddress)
	if addr == "" {
		addr = ":8080"
	}
	if strings.HasPrefix(addr, ":") {
		addr = "127.0.0.1" + addr
	}
	return "http://" + addr + constants.RouteAPIPrefix + constants.RouteVersion
}

func main() {
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(healthURL())
	if err != nil {
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		os.Exit(1)
	}
	os.Exit(0)
}
