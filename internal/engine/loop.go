// Package engine implements the agent runtime loop: it streams model
// responses, executes tool_use blocks in call order, and hands every tool
// result back to the caller's executor, which folds workspace deltas before
// the next step. The loop itself holds no workspace knowledge; it sees the
// transcript through a narrow interface so the reducer folding stays in the
// root package where the state types live.
package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/packages/ssestream"
)

// MessageStreamer abstracts the Anthropic Messages API so the loop can be
// tested with a mock. Production code passes the real client.Messages.
type MessageStreamer interface {
	NewStreaming(ctx context.Context, params anthropic.MessageNewParams) *ssestream.Stream[anthropic.MessageStreamEventUnion]
}

// messageServiceAdapter wraps the real anthropic.MessageService to implement MessageStreamer.
type messageServiceAdapter struct {
	svc *anthropic.MessageService
}

func (a *messageServiceAdapter) NewStreaming(ctx context.Context, params anthropic.MessageNewParams) *ssestream.Stream[anthropic.MessageStreamEventUnion] {
	return a.svc.NewStreaming(ctx, params)
}

// NewMessageStreamer wraps a real anthropic.MessageService as a MessageStreamer.
func NewMessageStreamer(svc *anthropic.MessageService) MessageStreamer {
	return &messageServiceAdapter{svc: svc}
}

// ToolExecutor executes a tool by name with raw JSON input. callID is the
// opaque identifier of the tool_use block, made available to the tool.
// The executor is responsible for folding any state delta the tool returns
// into the workspace before it returns. The loop relies on that ordering
// to make same-turn tool calls see each other's writes.
type ToolExecutor interface {
	Execute(ctx context.Context, name, callID string, input json.RawMessage) (content string, isError bool, err error)
	ListForAPI() []anthropic.ToolUnionParam
}

// Transcript is the loop's view of the message history. Append must route
// through the messages reducer so the transcript stays append-only.
type Transcript interface {
	History() []anthropic.MessageParam
	Append(msgs ...anthropic.MessageParam)
}

// EventSink receives events from the loop.
type EventSink interface {
	OnSystem(runID string, model anthropic.Model)
	OnStream(delta string)
	OnAssistant(msg anthropic.Message)
	OnResult(info ResultInfo)
}

// BudgetUsage holds token counts for a single API call.
type BudgetUsage struct {
	InputTokens   int
	OutputTokens  int
	CacheRead     int
	CacheCreation int
}

// BudgetChecker tracks and enforces budget limits. Nil means no enforcement.
type BudgetChecker interface {
	RecordUsage(model anthropic.Model, usage BudgetUsage)
	Exhausted() bool
}

// ResultInfo contains the data for a result event.
type ResultInfo struct {
	Subtype                  string
	RunID                    string
	IsError                  bool
	NumTurns                 int
	DurationMs               int64
	InputTokens              int64
	OutputTokens             int64
	CacheReadInputTokens     int64
	CacheCreationInputTokens int64

	// FinalText is the last text the assistant produced before stopping.
	FinalText string

	Errors []string
}

// LoopConfig holds everything the run loop needs to execute.
type LoopConfig struct {
	Streamer   MessageStreamer
	Tools      ToolExecutor
	Transcript Transcript
	Model      anthropic.Model
	MaxTokens  int
	MaxTurns   int

	// SystemPrompt is prepended to every API call as a system message.
	SystemPrompt []anthropic.TextBlockParam

	RunID string
	Sink  EventSink

	// Budget tracks token/cost usage and enforces limits. Nil = no limit.
	Budget BudgetChecker
}

// RunLoop is the core execution loop. It runs in the calling goroutine and
// calls Sink methods to emit events; the caller owns channel management.
func RunLoop(ctx context.Context, cfg LoopConfig) {
	startTime := time.Now()
	var inputTokens, outputTokens, cacheRead, cacheCreation int64
	turns := 0
	finalText := ""

	cfg.Sink.OnSystem(cfg.RunID, cfg.Model)

	fail := func(subtype string, errs ...string) {
		cfg.Sink.OnResult(ResultInfo{
			Subtype:                  subtype,
			RunID:                    cfg.RunID,
			IsError:                  true,
			NumTurns:                 turns,
			DurationMs:               time.Since(startTime).Milliseconds(),
			InputTokens:              inputTokens,
			OutputTokens:             outputTokens,
			CacheReadInputTokens:     cacheRead,
			CacheCreationInputTokens: cacheCreation,
			FinalText:                finalText,
			Errors:                   errs,
		})
	}

	succeed := func() {
		cfg.Sink.OnResult(ResultInfo{
			Subtype:                  "success",
			RunID:                    cfg.RunID,
			NumTurns:                 turns,
			DurationMs:               time.Since(startTime).Milliseconds(),
			InputTokens:              inputTokens,
			OutputTokens:             outputTokens,
			CacheReadInputTokens:     cacheRead,
			CacheCreationInputTokens: cacheCreation,
			FinalText:                finalText,
		})
	}

	for {
		if ctx.Err() != nil {
			fail("error_during_execution", ctx.Err().Error())
			return
		}

		params := anthropic.MessageNewParams{
			Model:     cfg.Model,
			MaxTokens: int64(cfg.MaxTokens),
			Messages:  cfg.Transcript.History(),
		}
		if len(cfg.SystemPrompt) > 0 {
			params.System = cfg.SystemPrompt
		}
		if tools := cfg.Tools.ListForAPI(); len(tools) > 0 {
			params.Tools = tools
		}

		stream := cfg.Streamer.NewStreaming(ctx, params)
		msg := anthropic.Message{}

		for stream.Next() {
			event := stream.Current()
			if err := msg.Accumulate(event); err != nil {
				stream.Close()
				fail("error_during_execution", fmt.Sprintf("accumulate error: %s", err.Error()))
				return
			}
			if event.Type == "content_block_delta" && event.Delta.Type == "text_delta" && event.Delta.Text != "" {
				cfg.Sink.OnStream(event.Delta.Text)
			}
		}
		if err := stream.Err(); err != nil {
			stream.Close()
			fail("error_during_execution", fmt.Sprintf("stream error: %s", err.Error()))
			return
		}
		stream.Close()

		inputTokens += msg.Usage.InputTokens
		outputTokens += msg.Usage.OutputTokens
		cacheRead += msg.Usage.CacheReadInputTokens
		cacheCreation += msg.Usage.CacheCreationInputTokens

		turns++
		cfg.Sink.OnAssistant(msg)
		cfg.Transcript.Append(msg.ToParam())
		if t := lastText(msg.Content); t != "" {
			finalText = t
		}

		if cfg.Budget != nil {
			cfg.Budget.RecordUsage(cfg.Model, BudgetUsage{
				InputTokens:   int(msg.Usage.InputTokens),
				OutputTokens:  int(msg.Usage.OutputTokens),
				CacheRead:     int(msg.Usage.CacheReadInputTokens),
				CacheCreation: int(msg.Usage.CacheCreationInputTokens),
			})
			if cfg.Budget.Exhausted() {
				fail("error_max_budget_usd", "budget exhausted")
				return
			}
		}

		switch msg.StopReason {
		case anthropic.StopReasonEndTurn:
			succeed()
			return

		case anthropic.StopReasonMaxTokens:
			fail("error_during_execution", "max_tokens reached")
			return

		case anthropic.StopReasonToolUse:
			// Execute blocks strictly in call order; the executor folds each
			// delta before returning, so folding is deterministic for a
			// fixed order even when tools themselves are pure.
			results := runTools(ctx, cfg, msg.Content)
			cfg.Transcript.Append(anthropic.NewUserMessage(results...))

		default:
			// Unknown stop reason, treat as end.
			succeed()
			return
		}

		if cfg.MaxTurns > 0 && turns >= cfg.MaxTurns {
			fail("error_max_turns", "max turns reached")
			return
		}
	}
}

// runTools executes each tool_use block and collects the result blocks.
func runTools(ctx context.Context, cfg LoopConfig, content []anthropic.ContentBlockUnion) []anthropic.ContentBlockParamUnion {
	var results []anthropic.ContentBlockParamUnion

	for _, block := range content {
		if block.Type != "tool_use" {
			continue
		}
		toolUse := block.AsToolUse()

		text, isError, err := cfg.Tools.Execute(ctx, toolUse.Name, toolUse.ID, json.RawMessage(toolUse.Input))
		if err != nil {
			// Tool not found or other registry error, reported as data;
			// the turn keeps going.
			results = append(results,
				anthropic.NewToolResultBlock(toolUse.ID, fmt.Sprintf("error: %s", err.Error()), true))
			continue
		}
		results = append(results,
			anthropic.NewToolResultBlock(toolUse.ID, text, isError))
	}

	return results
}

// lastText returns the text of the last text block in content, if any.
func lastText(content []anthropic.ContentBlockUnion) string {
	text := ""
	for _, block := range content {
		if block.Type == "text" && block.Text != "" {
			text = block.Text
		}
	}
	return text
}
