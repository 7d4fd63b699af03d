package deepagent

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/shopspring/decimal"

	"github.com/armatrix/deep-agent-go/internal/budget"
	"github.com/armatrix/deep-agent-go/internal/engine"
)

// Agent is a stateless execution engine holding configuration and a tool
// catalog. It carries no workspace: every Run owns a fresh Workspace, so
// the same Agent can be shared across concurrent invocations, including its
// use as an eagerly built sub-agent inside a registry.
type Agent struct {
	apiClient *anthropic.Client
	tools     *ToolRegistry
	opts      agentOptions
}

// NewAgent creates a new Agent with the given options.
func NewAgent(opts ...AgentOption) *Agent {
	client := anthropic.NewClient()
	return &Agent{
		apiClient: &client,
		tools:     NewToolRegistry(),
		opts:      resolveOptions(opts),
	}
}

// Tools returns the agent's tool registry for registering tools.
// By convention the registry is populated before the first Run and treated
// as read-only afterwards.
func (a *Agent) Tools() *ToolRegistry {
	return a.tools
}

// Model returns the configured model.
func (a *Agent) Model() anthropic.Model {
	return a.opts.model
}

// MaxTurns returns the configured turn limit (0 = unlimited).
func (a *Agent) MaxTurns() int {
	return a.opts.maxTurns
}

// Logger returns the agent's structured logger.
func (a *Agent) Logger() *slog.Logger {
	return a.opts.logger
}

// Run starts a single-shot execution with a fresh, empty workspace.
func (a *Agent) Run(ctx context.Context, prompt string) *AgentStream {
	return a.RunWithWorkspace(ctx, NewWorkspace(), prompt)
}

// RunWithWorkspace starts an execution against an existing workspace. The
// prompt is appended to the transcript through the messages reducer, then
// the run loop drives model calls and tool execution until completion.
// The workspace is the run's single source of truth: every tool delta is
// folded into it sequentially in call order.
func (a *Agent) RunWithWorkspace(ctx context.Context, ws *Workspace, prompt string) *AgentStream {
	ws.ApplyDelta(&StateDelta{
		MessagesAdd: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})

	eventCh := make(chan Event, a.opts.streamBufferSize)
	stream := newStream(eventCh, ws)

	cfg := engine.LoopConfig{
		Streamer:   engine.NewMessageStreamer(&a.apiClient.Messages),
		Tools:      &toolExecutorAdapter{registry: a.tools, workspace: ws},
		Transcript: ws,
		Model:      a.opts.model,
		MaxTokens:  a.opts.maxOutputTokens,
		MaxTurns:   a.opts.maxTurns,
		RunID:      GenerateID(PrefixRun),
	}

	sink := &channelSink{ch: eventCh, stream: stream}
	cfg.Sink = sink

	if a.opts.systemPrompt != "" {
		cfg.SystemPrompt = []anthropic.TextBlockParam{
			{Text: a.opts.systemPrompt},
		}
	}

	if !a.opts.maxBudget.IsZero() {
		tracker := budget.NewTracker(a.opts.maxBudget, budget.DefaultPricing)
		cfg.Budget = &budgetAdapter{tracker: tracker}
		sink.tracker = tracker
	}

	go func() {
		engine.RunLoop(ctx, cfg)
		close(eventCh)
	}()

	return stream
}

// toolExecutorAdapter wraps ToolRegistry to implement engine.ToolExecutor.
// It is the reducer-folding seam: before each call it snapshots the
// workspace into the context, and after a successful call it folds the
// tool's delta back. Tools therefore see the state as of their position in
// the call order while never holding a reference to mutable memory.
type toolExecutorAdapter struct {
	registry  *ToolRegistry
	workspace *Workspace
}

func (t *toolExecutorAdapter) Execute(ctx context.Context, name, callID string, input json.RawMessage) (string, bool, error) {
	ctx = WithContextWorkspace(ctx, t.workspace.Snapshot())
	ctx = WithContextToolCallID(ctx, callID)

	result, err := t.registry.Execute(ctx, name, input)
	if err != nil {
		return "", false, err
	}
	if result.Delta != nil && !result.IsError {
		t.workspace.ApplyDelta(result.Delta)
	}
	return extractTextFromBlocks(result.Content), result.IsError, nil
}

func (t *toolExecutorAdapter) ListForAPI() []anthropic.ToolUnionParam {
	return t.registry.ListForAPI()
}

// extractTextFromBlocks extracts text from content block param unions.
func extractTextFromBlocks(blocks []anthropic.ContentBlockParamUnion) string {
	for _, b := range blocks {
		if b.OfText != nil {
			return b.OfText.Text
		}
	}
	return ""
}

// channelSink implements engine.EventSink by sending events to a channel.
// Limit failures are additionally recorded on the stream so callers can
// match them with errors.Is after iteration ends.
type channelSink struct {
	ch      chan Event
	stream  *AgentStream
	tracker *budget.Tracker
}

func (s *channelSink) OnSystem(runID string, model anthropic.Model) {
	s.ch <- &SystemEvent{RunID: runID, Model: model}
}

func (s *channelSink) OnStream(delta string) {
	s.ch <- &StreamEvent{Delta: delta}
}

func (s *channelSink) OnAssistant(msg anthropic.Message) {
	s.ch <- &AssistantEvent{Message: msg}
}

func (s *channelSink) OnResult(info engine.ResultInfo) {
	result := info.FinalText
	if info.IsError && len(info.Errors) > 0 {
		result = "error: " + info.Errors[0]
	}
	var cost decimal.Decimal
	if s.tracker != nil {
		cost = s.tracker.TotalCost()
	}
	switch info.Subtype {
	case "error_max_turns":
		s.stream.err = ErrMaxTurns
	case "error_max_budget_usd":
		s.stream.err = ErrBudgetExhausted
	}
	s.ch <- &ResultEvent{
		TotalCost:  cost,
		Subtype:    info.Subtype,
		RunID:      info.RunID,
		IsError:    info.IsError,
		NumTurns:   info.NumTurns,
		DurationMs: info.DurationMs,
		Usage: Usage{
			InputTokens:              info.InputTokens,
			OutputTokens:             info.OutputTokens,
			CacheReadInputTokens:     info.CacheReadInputTokens,
			CacheCreationInputTokens: info.CacheCreationInputTokens,
		},
		Result: result,
		Errors: info.Errors,
	}
}

// budgetAdapter wraps budget.Tracker to implement engine.BudgetChecker.
type budgetAdapter struct {
	tracker *budget.Tracker
}

func (b *budgetAdapter) RecordUsage(model anthropic.Model, usage engine.BudgetUsage) {
	b.tracker.RecordUsage(model, budget.Usage{
		InputTokens:              usage.InputTokens,
		OutputTokens:             usage.OutputTokens,
		CacheReadInputTokens:     usage.CacheRead,
		CacheCreationInputTokens: usage.CacheCreation,
	})
}

func (b *budgetAdapter) Exhausted() bool {
	return b.tracker.Exhausted()
}
