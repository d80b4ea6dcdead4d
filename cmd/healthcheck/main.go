package main

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Rukaro/HeartBreaker/internal/constants"
)

// probeURL targets the local server's health route. HEARTBREAKER_ADDR
// (":8080" or "host:port") selects the port.
func probeURL() string {
	addr := os.Getenv(constants.EnvAddress)
	if addr == "" {
		addr = constants.DefaultAddress
	}
	if strings.HasPrefix(addr, ":") {
		addr = "127.0.0.1" + addr
	}
	return "http://" + addr + constants.RouteHealth
}

func main() {
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(probeURL())
	if err != nil {
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		os.Exit(1)
	}
	os.Exit(0)
}
