package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/stake-plus/portfolio-chat/src/ai/core"
	"github.com/stake-plus/portfolio-chat/src/ai/prompt"
	_ "github.com/stake-plus/portfolio-chat/src/ai/providers"
	"github.com/stake-plus/portfolio-chat/src/api/config"
)

var (
	providersFlag = flag.String("providers", "openrouter", "Comma-separated provider list or 'all'")
	modeFlag      = flag.String("mode", "complete", "complete|stream|both")
	modelFlag     = flag.String("model", "", "Override model name")
	baseURLFlag   = flag.String("base-url", "", "Override provider base URL")
	promptFlag    = flag.String("prompt", defaultPrompt, "User message to send")
	timeoutFlag   = flag.Duration("timeout", 45*time.Second, "Per-provider timeout")
	tempFlag      = flag.Float64("temp", 0.2, "Completion temperature")
	maxLenFlag    = flag.Int("max-bytes", 1200, "Maximum bytes of output to print per response (0=unlimited)")
)

func main() {
	log.SetFlags(0)
	flag.Parse()

	providers := resolveProviders(*providersFlag)
	if len(providers) == 0 {
		log.Fatal("no providers specified")
	}

	mode, err := parseMode(*modeFlag)
	if err != nil {
		log.Fatalf("invalid mode: %v", err)
	}

	assembler := prompt.New("")
	messages := assembler.Assemble([]core.Message{{Role: core.RoleUser, Content: *promptFlag}})

	for _, provider := range providers {
		if err := runProvider(provider, mode, messages); err != nil {
			log.Printf("[%s] ERROR: %v", provider, err)
		}
	}
}

func runProvider(provider string, mode runMode, messages []core.Message) error {
	key := pickFirst(os.Getenv("LLM_API_KEY"), os.Getenv(config.APIKeyEnv(provider)))
	client, err := core.NewClient(core.FactoryConfig{
		Provider:    provider,
		APIKey:      key,
		BaseURL:     *baseURLFlag,
		Model:       *modelFlag,
		Temperature: *tempFlag,
		Timeout:     *timeoutFlag,
	})
	if err != nil {
		return fmt.Errorf("client init: %w", err)
	}

	fmt.Printf("=== %s (%s) ===\n", provider, core.ResolveModelName(provider, *modelFlag))
	if mode == modeComplete || mode == modeBoth {
		if err := executeCompleteTest(client, messages); err != nil {
			fmt.Printf("complete ❌ %v\n", err)
		}
	}
	if mode == modeStream || mode == modeBoth {
		if err := executeStreamTest(client, messages); err != nil {
			fmt.Printf("stream ❌ %v\n", err)
		}
	}
	return nil
}

func executeCompleteTest(client core.Client, messages []core.Message) error {
	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	defer cancel()

	start := time.Now()
	reply, err := client.Complete(ctx, messages, core.Options{Temperature: *tempFlag})
	if err != nil {
		return err
	}
	fmt.Printf("complete ✅ (%.1fs)\n%s\n", time.Since(start).Seconds(), truncate(reply, *maxLenFlag))
	return nil
}

func executeStreamTest(client core.Client, messages []core.Message) error {
	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	defer cancel()

	start := time.Now()
	stream, err := client.Stream(ctx, messages, core.Options{Temperature: *tempFlag})
	if err != nil {
		return err
	}
	defer stream.Close()

	var sb strings.Builder
	deltas := 0
	var firstDelta time.Duration
	for stream.Next() {
		if deltas == 0 {
			firstDelta = time.Since(start)
		}
		deltas++
		sb.WriteString(stream.Text())
	}
	if err := stream.Err(); err != nil {
		return err
	}
	fmt.Printf("stream ✅ (%d deltas, first after %.1fs, total %.1fs)\n%s\n",
		deltas, firstDelta.Seconds(), time.Since(start).Seconds(), truncate(sb.String(), *maxLenFlag))
	return nil
}

func resolveProviders(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if strings.EqualFold(raw, "all") {
		return core.RegisteredProviders()
	}
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == ';'
	})
	var out []string
	seen := map[string]struct{}{}
	for _, p := range parts {
		key := strings.ToLower(strings.TrimSpace(p))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}

func pickFirst(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func parseMode(input string) (runMode, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "complete":
		return modeComplete, nil
	case "stream":
		return modeStream, nil
	case "both":
		return modeBoth, nil
	default:
		return modeComplete, errors.New("expected complete, stream, or both")
	}
}

func truncate(text string, limit int) string {
	if limit <= 0 || len(text) <= limit {
		return strings.TrimSpace(text)
	}
	return strings.TrimSpace(text[:limit]) + "...(truncated)"
}

type runMode int

const (
	modeComplete runMode = iota
	modeStream
	modeBoth
)

const defaultPrompt = "Tell me a short joke about compilers."
