// Package api wires configuration, providers, tools and the HTTP server.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/stake-plus/portfolio-chat/src/ai/core"
	"github.com/stake-plus/portfolio-chat/src/ai/prompt"
	_ "github.com/stake-plus/portfolio-chat/src/ai/providers"
	"github.com/stake-plus/portfolio-chat/src/api/config"
	"github.com/stake-plus/portfolio-chat/src/api/data"
	"github.com/stake-plus/portfolio-chat/src/api/webserver"
	"github.com/stake-plus/portfolio-chat/src/chat"
	"github.com/stake-plus/portfolio-chat/src/intent"
	"github.com/stake-plus/portfolio-chat/src/tools"
	"github.com/stake-plus/portfolio-chat/src/transport"
)

const shutdownTimeout = 10 * time.Second

// NewCompletionClient builds the configured provider client.
func NewCompletionClient(cfg config.Config) (core.Client, error) {
	return core.NewClient(core.FactoryConfig{
		Provider:            cfg.Provider,
		APIKey:              cfg.APIKey,
		BaseURL:             cfg.BaseURL,
		Model:               cfg.Model,
		Temperature:         cfg.Temperature,
		MaxCompletionTokens: cfg.MaxTokens,
		Timeout:             cfg.LLMTimeout,
		Extra: map[string]string{
			"http_referer": cfg.Referer,
			"app_title":    cfg.AppTitle,
		},
	})
}

// NewChatHandler assembles the request handler from configuration.
func NewChatHandler(cfg config.Config, client core.Client, logger *slog.Logger) (*chat.Handler, error) {
	content, err := tools.LoadContent(cfg.ToolsFile)
	if err != nil {
		return nil, err
	}
	registry, err := tools.NewBuiltinRegistry(content)
	if err != nil {
		return nil, err
	}
	persona, err := prompt.LoadPersona(cfg.PersonaFile)
	if err != nil {
		return nil, err
	}
	format, err := transport.ParseFormat(cfg.DefaultFormat)
	if err != nil {
		return nil, fmt.Errorf("DEFAULT_FORMAT: %w", err)
	}

	return chat.NewHandler(chat.Deps{
		Tools:      registry,
		Classifier: intent.Default(),
		Assembler:  prompt.New(persona),
		Client:     client,
		Logger:     logger,
	}, chat.Config{
		DefaultFormat: format,
		ChunkSize:     cfg.ChunkSize,
		Timeout:       cfg.RequestTimeout,
	}), nil
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	client, err := NewCompletionClient(cfg)
	if err != nil {
		return err
	}
	handler, err := NewChatHandler(cfg, client, logger)
	if err != nil {
		return err
	}

	var limiter webserver.Limiter
	if cfg.RateLimit > 0 {
		if cfg.RedisURL != "" {
			rdb, err := data.ConnectRedis(ctx, cfg.RedisURL)
			if err != nil {
				return err
			}
			defer rdb.Close()
			limiter = webserver.NewRedisLimiter(rdb, cfg.RateLimit, cfg.RateWindow)
		} else {
			mem := webserver.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
			defer mem.Close()
			limiter = mem
		}
	}

	model := core.ResolveModelName(cfg.Provider, cfg.Model)
	router := webserver.New(handler, webserver.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		MaxBodyBytes:   cfg.MaxBodyBytes,
		Limiter:        limiter,
		Provider:       cfg.Provider,
		Model:          model,
	}, logger)

	httpSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	useTLS := cfg.TLSCertFile != "" && cfg.TLSKeyFile != ""
	if useTLS {
		reloader, err := webserver.NewTLSReloader(cfg.TLSCertFile, cfg.TLSKeyFile, logger)
		if err != nil {
			return fmt.Errorf("tls: %w", err)
		}
		defer reloader.Close()
		httpSrv.TLSConfig = reloader.GetConfig()
	}

	errCh := make(chan error, 1)
	go func() {
		var err error
		if useTLS {
			err = httpSrv.ListenAndServeTLS("", "")
		} else {
			err = httpSrv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	logger.Info("portfolio chat listening", "port", cfg.Port, "provider", cfg.Provider, "model", model, "tls", useTLS)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutCtx, cancelShut := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShut()
	return httpSrv.Shutdown(shutCtx)
}
