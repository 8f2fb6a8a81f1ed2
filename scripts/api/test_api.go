// End-to-end check against a running portfolio chat server.
//
// Run from repo root:
//
//	go run ./scripts/api/test_api.go
//
// Environment:
//
//	API_URL   – base URL (default http://localhost:8080)
//	REDIS_URL – when set, also asserts that rate-limit counters were written
//
// Flow:
//
//  1. GET  /healthz          → status ok
//  2. GET  /tools            → built-in tools listed
//  3. POST /chat (json)      → resume tool answer
//  4. POST /chat (sse)       → stream ends with [DONE]
//  5. POST /chat {}          → 400 validation error
//  6. GET  /chat             → 405
package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	baseURL  = strings.TrimRight(getenv("API_URL", "http://localhost:8080"), "/")
	redisURL = os.Getenv("REDIS_URL")
)

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func main() {
	checkHealth()
	checkTools()
	checkResumeJSON()
	checkStream()
	checkValidation()
	checkMethod()

	if redisURL != "" {
		checkRateLimitKeys(context.Background())
	}

	fmt.Println("✓ all endpoints passed")
}

// ----------------------------- read-only routes

func checkHealth() {
	var resp struct{ Status, Provider, Model string }
	doJSON("GET", "/healthz", nil, &resp, http.StatusOK)
	if resp.Status != "ok" {
		log.Fatalf("healthz: status %q", resp.Status)
	}
	log.Printf("provider %s, model %s", resp.Provider, resp.Model)
}

func checkTools() {
	var resp struct {
		Tools []struct{ Name string }
	}
	doJSON("GET", "/tools", nil, &resp, http.StatusOK)
	for _, tool := range resp.Tools {
		if tool.Name == "resume" {
			return
		}
	}
	log.Fatal("tools: resume not listed")
}

// ----------------------------- chat

func checkResumeJSON() {
	var resp struct{ Content string }
	doJSON("POST", "/chat", map[string]any{
		"messages": []map[string]string{{"role": "user", "content": "Can I see your resume?"}},
		"stream":   false,
	}, &resp, http.StatusOK)
	if !strings.Contains(resp.Content, "resume") {
		log.Fatalf("chat json: unexpected content %q", resp.Content)
	}
}

func checkStream() {
	res := doReq("POST", "/chat", map[string]any{
		"messages": []map[string]string{{"role": "user", "content": "What are your skills?"}},
		"stream":   true,
	}, http.StatusOK)
	defer res.Body.Close()

	last := ""
	scanner := bufio.NewScanner(res.Body)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			last = line
		}
	}
	if last != "data: [DONE]" {
		log.Fatalf("chat sse: last line %q", last)
	}
}

func checkValidation() {
	var resp struct{ Error string }
	doJSON("POST", "/chat", map[string]any{"messages": "not-an-array"}, &resp, http.StatusBadRequest)
	if resp.Error == "" {
		log.Fatal("validation: empty error")
	}
}

func checkMethod() {
	res := doReq("GET", "/chat", nil, http.StatusMethodNotAllowed)
	res.Body.Close()
}

// ----------------------------- redis

func checkRateLimitKeys(ctx context.Context) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatalf("redis url: %v", err)
	}
	rdb := redis.NewClient(opt)
	defer rdb.Close()

	keys, _, err := rdb.Scan(ctx, 0, "portfolio-chat:ratelimit:*", 100).Result()
	if err != nil {
		log.Fatalf("redis scan: %v", err)
	}
	if len(keys) == 0 {
		log.Fatal("redis: no rate-limit counters found")
	}
}

// ----------------------------- helpers

func doJSON(method, path string, body, out any, want int) {
	res := doReq(method, path, body, want)
	defer res.Body.Close()
	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			log.Fatalf("%s %s decode: %v", method, path, err)
		}
	}
}

func doReq(method, path string, body any, want int) *http.Response {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			log.Fatalf("%s %s encode: %v", method, path, err)
		}
	}
	req, _ := http.NewRequest(method, baseURL+path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("%s %s: %v", method, path, err)
	}
	if res.StatusCode != want {
		b, _ := io.ReadAll(res.Body)
		res.Body.Close()
		log.Fatalf("%s %s: want %d got %d: %s", method, path, want, res.StatusCode, b)
	}
	return res
}
