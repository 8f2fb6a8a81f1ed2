// Package chat answers POST /chat: it validates the conversation, routes the
// latest user message to a canned tool or to the completion provider, and
// writes the answer in the encoding the caller asked for.
package chat

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"

	"github.com/stake-plus/portfolio-chat/src/ai/core"
	"github.com/stake-plus/portfolio-chat/src/ai/prompt"
	"github.com/stake-plus/portfolio-chat/src/intent"
	"github.com/stake-plus/portfolio-chat/src/logging"
	"github.com/stake-plus/portfolio-chat/src/tools"
	"github.com/stake-plus/portfolio-chat/src/transport"
)

const (
	DefaultTimeout   = 30 * time.Second
	DefaultChunkSize = 24
)

// Config holds per-deployment handler policy.
type Config struct {
	DefaultFormat transport.Format
	ChunkSize     int
	Timeout       time.Duration
	Model         core.Options
}

// Deps are the collaborators the handler composes. All of them are
// read-only after startup.
type Deps struct {
	Tools      *tools.Registry
	Classifier *intent.Classifier
	Assembler  *prompt.Assembler
	Client     core.Client
	Logger     *slog.Logger
}

// Handler serves the chat route.
type Handler struct {
	tools      *tools.Registry
	classifier *intent.Classifier
	assembler  *prompt.Assembler
	client     core.Client
	logger     *slog.Logger
	sanitizer  *bluemonday.Policy
	cfg        Config
}

// NewHandler fills unset config with defaults.
func NewHandler(deps Deps, cfg Config) *Handler {
	if cfg.DefaultFormat == "" {
		cfg.DefaultFormat = transport.FormatJSON
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultChunkSize
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	logger := deps.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	classifier := deps.Classifier
	if classifier == nil {
		classifier = intent.Default()
	}
	assembler := deps.Assembler
	if assembler == nil {
		assembler = prompt.New("")
	}
	return &Handler{
		tools:      deps.Tools,
		classifier: classifier,
		assembler:  assembler,
		client:     deps.Client,
		logger:     logger,
		sanitizer:  bluemonday.StrictPolicy(),
		cfg:        cfg,
	}
}

// Chat handles POST /chat.
func (h *Handler) Chat(c *gin.Context) {
	clientCtx := c.Request.Context()
	ctx, cancel := context.WithTimeoutCause(clientCtx, h.cfg.Timeout, ErrRequestTimedOut)
	defer cancel()

	log := h.logger.With(logging.RequestIDKey, c.GetString(logging.RequestIDKey))

	req, err := decodeEnvelope(c.Request.Body)
	if err != nil {
		h.fail(ctx, clientCtx, transport.New(transport.FormatJSON, c.Writer), err, log)
		return
	}
	format, err := transport.Resolve(req.Format, req.Stream, h.cfg.DefaultFormat)
	if err != nil {
		h.fail(ctx, clientCtx, transport.New(transport.FormatJSON, c.Writer), validationError(err.Error()), log)
		return
	}
	out := transport.New(format, c.Writer)

	messages, err := parseMessages(req.Messages, h.sanitizer)
	if err != nil {
		h.fail(ctx, clientCtx, out, err, log)
		return
	}

	if name, ok := h.route(lastUserMessage(messages)); ok {
		log.Debug("chat routed to tool", "tool", name, "format", format)
		h.answerWithTool(out, name, log)
		return
	}
	log.Debug("chat routed to model", "format", format, "messages", len(messages))
	h.answerWithModel(ctx, clientCtx, out, format, messages, log)
}

// MethodNotAllowed handles GET /chat.
func (h *Handler) MethodNotAllowed(c *gin.Context) {
	c.Header("Allow", http.MethodPost)
	c.String(http.StatusMethodNotAllowed, "Use POST")
}

// ListTools handles GET /tools.
func (h *Handler) ListTools(c *gin.Context) {
	type toolInfo struct {
		Name        string         `json:"name"`
		Description string         `json:"description"`
		Parameters  map[string]any `json:"parameters"`
	}
	list := []toolInfo{}
	if h.tools != nil {
		for _, name := range h.tools.Names() {
			d, _ := h.tools.Get(name)
			list = append(list, toolInfo{Name: d.Name, Description: d.Description, Parameters: d.Parameters})
		}
	}
	c.JSON(http.StatusOK, gin.H{"tools": list})
}

func (h *Handler) route(text string) (string, bool) {
	if h.tools == nil {
		return "", false
	}
	name, ok := h.classifier.Classify(text)
	if !ok || !h.tools.Has(name) {
		return "", false
	}
	return name, true
}

// answerWithTool never fails the request: a broken tool becomes a
// conversational apology and an error log line.
func (h *Handler) answerWithTool(out transport.Writer, name string, log *slog.Logger) {
	result, err := h.tools.Execute(name)
	var text string
	if err == nil {
		text, err = tools.Text(result)
	}
	if err != nil {
		log.Error("tool execution failed", "tool", name, "err", err)
		text = toolFailureReply(name)
	}

	if err := transport.WriteChunked(out, text, h.cfg.ChunkSize); err != nil {
		log.Debug("client stopped reading", "err", err)
		return
	}
	if err := out.Finish(); err != nil {
		log.Debug("client stopped reading", "err", err)
	}
}

func (h *Handler) answerWithModel(ctx, clientCtx context.Context, out transport.Writer, format transport.Format, history []core.Message, log *slog.Logger) {
	if h.client == nil {
		h.fail(ctx, clientCtx, out, fmt.Errorf("no completion client configured"), log)
		return
	}
	conversation := h.assembler.Assemble(history)

	if !format.Streaming() {
		text, err := h.client.Complete(ctx, conversation, h.cfg.Model)
		if err != nil {
			h.fail(ctx, clientCtx, out, err, log)
			return
		}
		if err := out.Write(text); err != nil {
			log.Debug("client stopped reading", "err", err)
			return
		}
		if err := out.Finish(); err != nil {
			log.Debug("client stopped reading", "err", err)
		}
		return
	}

	stream, err := h.client.Stream(ctx, conversation, h.cfg.Model)
	if err != nil {
		h.fail(ctx, clientCtx, out, err, log)
		return
	}
	defer stream.Close()

	for stream.Next() {
		if err := out.Write(stream.Text()); err != nil {
			log.Debug("client stopped reading", "err", err)
			return
		}
	}
	if err := stream.Err(); err != nil {
		h.fail(ctx, clientCtx, out, err, log)
		return
	}
	if ctx.Err() != nil {
		h.fail(ctx, clientCtx, out, context.Cause(ctx), log)
		return
	}
	if err := out.Finish(); err != nil {
		log.Debug("client stopped reading", "err", err)
	}
}

// fail writes err in the active encoding unless the client already left.
func (h *Handler) fail(ctx, clientCtx context.Context, out transport.Writer, err error, log *slog.Logger) {
	if clientCtx.Err() != nil {
		log.Info("client disconnected", "err", err)
		return
	}
	env := classifyError(ctx, err)
	level := slog.LevelWarn
	if env.Status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	log.Log(ctx, level, "chat request failed", "status", env.Status, "streaming", out.Started(), "err", err)
	if werr := out.Fail(env); werr != nil {
		log.Debug("write error response", "err", werr)
	}
}

func toolFailureReply(name string) string {
	return fmt.Sprintf("Oops, my %s card tripped over its own shoelaces 🙈 Ask me again in a moment, or try something else!", name)
}
