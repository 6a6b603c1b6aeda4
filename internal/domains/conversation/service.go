package conversation

import (
	"context"
	"strings"
	"time"

	"github.com/xpanvictor/rehearse/internal/config"
	"github.com/xpanvictor/rehearse/internal/constants/prompts"
	"github.com/xpanvictor/rehearse/internal/domains/scenario"
	"github.com/xpanvictor/rehearse/internal/types"
	"github.com/xpanvictor/rehearse/pkg/Logger"
	"github.com/xpanvictor/rehearse/pkg/assistant"
)

// Op names a model stage, used to pick the fallback text.
type Op string

const (
	OpReply    Op = "reply"
	OpFeedback Op = "feedback"
)

// Reply is a successful model answer.
type Reply struct {
	Text     string
	Model    string
	Provider string
	Latency  time.Duration
}

// ConversationService drives the role-play model. It holds no per-session
// state; the caller supplies the full history on every call.
type ConversationService interface {
	Respond(ctx context.Context, userText string, id scenario.ID, history types.ConversationHistory) (Reply, error)
	Feedback(ctx context.Context, id scenario.ID, history types.ConversationHistory) (Reply, error)
	Fallback(op Op) string
}

type Options struct {
	Model        string
	Conversation config.GenerationConfig
	Feedback     config.GenerationConfig
	Timeout      time.Duration
}

func OptionsFromSettings(cfg *config.Settings) Options {
	return Options{
		Model:        cfg.Assistant.Model,
		Conversation: cfg.Conversation,
		Feedback:     cfg.Feedback,
		Timeout:      cfg.Assistant.RequestTimeout,
	}
}

type conversationService struct {
	scenarios scenario.Registry
	llm       assistant.Assistant
	opts      Options
	logger    *Logger.Logger
}

func New(scenarios scenario.Registry, llm assistant.Assistant, opts Options, logger *Logger.Logger) ConversationService {
	return &conversationService{
		scenarios: scenarios,
		llm:       llm,
		opts:      opts,
		logger:    logger.Named("conversation"),
	}
}

// Respond implements ConversationService.
func (c *conversationService) Respond(ctx context.Context, userText string, id scenario.ID, history types.ConversationHistory) (Reply, error) {
	sc, err := c.scenarios.Get(id)
	if err != nil {
		return Reply{}, err
	}
	msgs := buildMessages(sc.SystemPrompt, history, userText)
	return c.call(ctx, msgs, c.opts.Conversation, OpReply, id)
}

// Feedback implements ConversationService.
func (c *conversationService) Feedback(ctx context.Context, id scenario.ID, history types.ConversationHistory) (Reply, error) {
	sc, err := c.scenarios.Get(id)
	if err != nil {
		return Reply{}, err
	}
	instruction := prompts.FEEDBACK_REQUEST.GetCurrentPrompt().Render(id.Label())
	msgs := buildMessages(sc.SystemPrompt, history, instruction)
	return c.call(ctx, msgs, c.opts.Feedback, OpFeedback, id)
}

// Fallback implements ConversationService.
func (c *conversationService) Fallback(op Op) string {
	if op == OpFeedback {
		return prompts.FEEDBACK_FALLBACK
	}
	return prompts.REPLY_FALLBACK
}

func (c *conversationService) call(
	ctx context.Context,
	msgs []assistant.AssistantMessage,
	gen config.GenerationConfig,
	op Op,
	id scenario.ID,
) (Reply, error) {
	if c.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.Timeout)
		defer cancel()
	}

	start := time.Now()
	input := assistant.NewAssistantInput(msgs, c.opts.Model, gen.MaxTokens, gen.Temperature)
	out, err := c.llm.ProcessPrompt(ctx, input)
	latency := time.Since(start)
	if err == nil && (out == nil || strings.TrimSpace(out.Response.Content) == "") {
		err = assistant.ErrEmptyResponse
	}
	if err != nil {
		ue := classify(err)
		c.logger.Warnw("model call failed",
			"op", op, "scenario", id, "provider", c.llm.Name(), "kind", ue.Kind, "latency", latency, "error", err)
		return Reply{}, ue
	}

	c.logger.Debugw("model call done", "op", op, "scenario", id, "provider", c.llm.Name(), "latency", latency)
	model := out.Model
	if model == "" {
		model = c.opts.Model
	}
	return Reply{
		Text:     out.Response.Content,
		Model:    model,
		Provider: c.llm.Name(),
		Latency:  latency,
	}, nil
}

// buildMessages lays out system prompt, prior turns verbatim, then the new
// user content.
func buildMessages(system string, history types.ConversationHistory, user string) []assistant.AssistantMessage {
	msgs := make([]assistant.AssistantMessage, 0, len(history)+2)
	msgs = append(msgs, assistant.NewMessage(assistant.SYSTEM, system))
	for _, turn := range history {
		msgs = append(msgs, assistant.NewMessage(turn.Role, turn.Content))
	}
	msgs = append(msgs, assistant.NewMessage(assistant.USER, user))
	return msgs
}
