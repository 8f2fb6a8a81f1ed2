package webserver

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/stake-plus/portfolio-chat/src/chat"
)

// Options configures the HTTP surface around the chat handler.
type Options struct {
	AllowedOrigins []string
	MaxBodyBytes   int64
	Limiter        Limiter // nil disables rate limiting
	Provider       string
	Model          string
}

// New builds the gin engine serving the chat API.
func New(h *chat.Handler, opts Options, logger *slog.Logger) *gin.Engine {
	g := gin.New()
	g.Use(RequestID(), RequestLogger(logger), Recovery(logger))
	attachRoutes(g, h, opts, logger)
	return g
}

func attachRoutes(r *gin.Engine, h *chat.Handler, opts Options, logger *slog.Logger) {
	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID", "X-Vercel-AI-Data-Stream"},
	}
	if len(opts.AllowedOrigins) == 0 || slices.Contains(opts.AllowedOrigins, "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = opts.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	chatMiddleware := []gin.HandlerFunc{BodyLimit(opts.MaxBodyBytes)}
	if opts.Limiter != nil {
		chatMiddleware = append(chatMiddleware, RateLimitMiddleware(opts.Limiter, logger))
	}

	chatHandlers := append(slices.Clone(chatMiddleware), h.Chat)
	for _, path := range []string{"/chat", "/api/chat"} {
		r.POST(path, chatHandlers...)
		r.GET(path, h.MethodNotAllowed)
	}

	r.GET("/tools", h.ListTools)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "provider": opts.Provider, "model": opts.Model})
	})
}
