// Command smoke exercises a running instance against the seeded demo
// dataset: it logs in, walks the read endpoints, and exits non-zero when
// any critical check fails. Intended for deploy pipelines.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

type check struct {
	Method   string
	Path     string
	Status   int
	Critical bool
}

type result struct {
	Check    check
	Status   int
	Duration time.Duration
	Error    error
}

var checks = []check{
	{Method: http.MethodGet, Path: "/health", Status: http.StatusOK, Critical: true},
	{Method: http.MethodGet, Path: "/ready", Status: http.StatusOK, Critical: true},
	{Method: http.MethodGet, Path: "/metrics", Status: http.StatusOK, Critical: false},
	{Method: http.MethodGet, Path: "/api/v1/auth/me", Status: http.StatusOK, Critical: true},
	{Method: http.MethodGet, Path: "/api/v1/institutions", Status: http.StatusOK, Critical: true},
	{Method: http.MethodGet, Path: "/api/v1/faculties", Status: http.StatusOK, Critical: false},
	{Method: http.MethodGet, Path: "/api/v1/departments", Status: http.StatusOK, Critical: false},
	{Method: http.MethodGet, Path: "/api/v1/programs", Status: http.StatusOK, Critical: false},
	{Method: http.MethodGet, Path: "/api/v1/courses", Status: http.StatusOK, Critical: true},
	{Method: http.MethodGet, Path: "/api/v1/terms", Status: http.StatusOK, Critical: false},
	{Method: http.MethodGet, Path: "/api/v1/students", Status: http.StatusOK, Critical: true},
	{Method: http.MethodGet, Path: "/api/v1/sections", Status: http.StatusOK, Critical: true},
	{Method: http.MethodGet, Path: "/api/v1/registrations", Status: http.StatusOK, Critical: false},
	{Method: http.MethodGet, Path: "/api/v1/employees", Status: http.StatusOK, Critical: false},
	{Method: http.MethodGet, Path: "/api/v1/users", Status: http.StatusOK, Critical: false},
}

func main() {
	var (
		base     string
		email    string
		password string
		timeout  time.Duration
	)

	flag.StringVar(&base, "base", "http://localhost:8080", "API base URL")
	flag.StringVar(&email, "email", "admin@northgate.edu", "Login email")
	flag.StringVar(&password, "password", "ChangeMe1!", "Login password")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	client := &http.Client{Timeout: timeout}

	token, err := login(client, base, email, password)
	if err != nil {
		log.Fatalf("login failed: %v", err)
	}

	var failures int
	results := make([]result, 0, len(checks))
	for _, chk := range checks {
		res := run(client, base, token, chk)
		if res.Error != nil || res.Status != chk.Status {
			if chk.Critical {
				failures++
			}
		}
		results = append(results, res)
	}

	printReport(results)

	fmt.Printf("Critical failures: %d\n", failures)
	if failures > 0 {
		os.Exit(1)
	}
}

func login(client *http.Client, base, email, password string) (string, error) {
	payload, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return "", err
	}

	resp, err := client.Post(strings.TrimRight(base, "/")+"/api/v1/auth/login", "application/json", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected login status %d", resp.StatusCode)
	}

	var envelope struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return "", err
	}
	if envelope.Data.AccessToken == "" {
		return "", fmt.Errorf("login response carried no access token")
	}
	return envelope.Data.AccessToken, nil
}

func run(client *http.Client, base, token string, chk check) result {
	res := result{Check: chk}

	url := strings.TrimRight(base, "/") + chk.Path
	req, err := http.NewRequest(chk.Method, url, nil)
	if err != nil {
		res.Error = err
		return res
	}
	req.Header.Set("Authorization", "Bearer "+token)

	start := time.Now()
	resp, err := client.Do(req)
	res.Duration = time.Since(start)
	if err != nil {
		res.Error = err
		return res
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	res.Status = resp.StatusCode
	return res
}

func printReport(results []result) {
	for _, res := range results {
		mark := "ok"
		switch {
		case res.Error != nil:
			mark = "error: " + res.Error.Error()
		case res.Status != res.Check.Status:
			mark = fmt.Sprintf("got %d want %d", res.Status, res.Check.Status)
		}
		fmt.Printf("%-6s %-40s %8s  %s\n", res.Check.Method, res.Check.Path, res.Duration.Round(time.Millisecond), mark)
	}
}
