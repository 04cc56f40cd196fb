// Command healthcheck checks a running "quickdynalist serve" and exits 0
// when it is healthy. With -require-auth it also requires a stored token.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"
)

const defaultAddr = "127.0.0.1:8080"

func main() {
	requireAuth := flag.Bool("require-auth", false, "fail unless a Dynalist token is stored")
	flag.Parse()

	addr := normalizeAddr(os.Getenv("QUICKDYNALIST_LISTEN_ADDR"))
	if err := check(addr, *requireAuth); err != nil {
		fmt.Fprintln(os.Stderr, "unhealthy:", err)
		os.Exit(1)
	}
}

func check(addr string, requireAuth bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	client := &http.Client{Timeout: 2 * time.Second}
	base := "http://" + addr

	var health struct {
		Status string `json:"status"`
	}
	if err := getJSON(ctx, client, base+"/api/v1/health", &health); err != nil {
		return err
	}
	if health.Status != "ok" {
		return fmt.Errorf("health status %q", health.Status)
	}

	if !requireAuth {
		return nil
	}

	var auth struct {
		Authenticated bool `json:"authenticated"`
	}
	if err := getJSON(ctx, client, base+"/api/v1/auth", &auth); err != nil {
		return err
	}
	if !auth.Authenticated {
		return fmt.Errorf("no dynalist token stored")
	}
	return nil
}

func getJSON(ctx context.Context, client *http.Client, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("get %s: status %d", url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}

// normalizeAddr points the check at loopback when the server binds every
// interface, since the check runs on the same host.
func normalizeAddr(raw string) string {
	if raw == "" {
		return defaultAddr
	}

	host, port, err := net.SplitHostPort(raw)
	if err != nil {
		return defaultAddr
	}

	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}

	return net.JoinHostPort(host, port)
}
