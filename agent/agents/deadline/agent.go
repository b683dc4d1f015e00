package deadline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog"
	contractx "github.com/tanpawarit/vessel-deadline-agent/agent/contract"
	promptx "github.com/tanpawarit/vessel-deadline-agent/agent/prompt"
	toolx "github.com/tanpawarit/vessel-deadline-agent/agent/tool"
)

const DefaultMaxSteps = 6

var _ contractx.Agent = (*Agent)(nil)

type Option func(*Agent)

// WithMaxSteps bounds the number of model turns per question.
func WithMaxSteps(n int) Option {
	return func(a *Agent) {
		if n > 0 {
			a.maxSteps = n
		}
	}
}

// Agent answers vessel deadline questions by letting the model pick tools
// from the catalog. Nothing is kept between Ask calls.
type Agent struct {
	card         promptx.AgentCard
	runner       compose.Runnable[map[string]any, *schema.Message]
	execute      toolx.Executor
	allowedTools map[string]struct{}
	maxSteps     int
}

func New(
	ctx context.Context,
	chatModel einomodel.ToolCallingChatModel,
	card promptx.AgentCard,
	tools []*schema.ToolInfo,
	execute toolx.Executor,
	opts ...Option,
) (*Agent, error) {
	if chatModel == nil {
		return nil, fmt.Errorf("%w: chat model is required", contractx.ErrValidation)
	}
	if execute == nil {
		return nil, fmt.Errorf("%w: tool executor is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(card.Instruction) == "" {
		return nil, fmt.Errorf("%w: agent instruction", contractx.ErrPromptMissing)
	}

	toolModel, err := chatModel.WithTools(tools)
	if err != nil {
		return nil, fmt.Errorf("%w: bind tools for agent=%s: %v", contractx.ErrModelInvoke, card.Name, err)
	}
	runner, err := compileTurnGraph(ctx, toolModel, card.Instruction, card.Name+".turn_graph")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contractx.ErrModelInvoke, err)
	}

	allowedTools := make(map[string]struct{}, len(tools))
	for _, t := range tools {
		if t == nil || strings.TrimSpace(t.Name) == "" {
			continue
		}
		allowedTools[t.Name] = struct{}{}
	}

	a := &Agent{
		card:         card,
		runner:       runner,
		execute:      execute,
		allowedTools: allowedTools,
		maxSteps:     DefaultMaxSteps,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a, nil
}

func (a *Agent) Card() promptx.AgentCard {
	return a.card
}

// Ask runs model turns until the model answers without requesting tools.
func (a *Agent) Ask(ctx context.Context, question string) (contractx.Reply, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return contractx.Reply{}, fmt.Errorf("%w: question is required", contractx.ErrValidation)
	}

	logger := zerolog.Ctx(ctx).With().Str("agent", a.card.Name).Logger()
	history := []*schema.Message{schema.UserMessage(question)}
	var results []contractx.ToolResult

	for step := 1; step <= a.maxSteps; step++ {
		start := time.Now()
		msg, err := a.runner.Invoke(ctx, map[string]any{historyKey: history})
		if err != nil {
			return contractx.Reply{}, fmt.Errorf("%w: turn %d: %v", contractx.ErrModelInvoke, step, err)
		}
		if msg == nil {
			return contractx.Reply{}, fmt.Errorf("%w: empty model response", contractx.ErrSchemaViolation)
		}
		logger.Debug().
			Int("step", step).
			Int("tool_calls", len(msg.ToolCalls)).
			Dur("took", time.Since(start)).
			Msg("model turn completed")

		if len(msg.ToolCalls) == 0 {
			content := strings.TrimSpace(msg.Content)
			if content == "" {
				return contractx.Reply{}, fmt.Errorf("%w: model returned neither content nor tool calls", contractx.ErrSchemaViolation)
			}
			return contractx.Reply{
				Message:     content,
				ToolResults: results,
				Steps:       step,
			}, nil
		}

		requests, err := toToolRequests(msg.ToolCalls)
		if err != nil {
			return contractx.Reply{}, err
		}
		for _, tr := range requests {
			if _, ok := a.allowedTools[tr.Tool]; !ok {
				return contractx.Reply{}, fmt.Errorf("%w: tool=%s is not allowed for agent=%s", contractx.ErrSchemaViolation, tr.Tool, a.card.Name)
			}
		}

		history = append(history, msg)
		for _, tr := range requests {
			result, err := a.execute(ctx, tr.Tool, tr.Args)
			if err != nil {
				return contractx.Reply{}, fmt.Errorf("tool=%s: %w", tr.Tool, err)
			}
			if result.Tool == "" {
				result.Tool = tr.Tool
			}
			logger.Info().
				Str("tool", tr.Tool).
				Bool("tool_error", result.Error != "").
				Msg("tool executed")

			payload, err := json.Marshal(result)
			if err != nil {
				return contractx.Reply{}, fmt.Errorf("%w: marshal tool result for tool=%s: %v", contractx.ErrValidation, tr.Tool, err)
			}
			results = append(results, result)
			history = append(history, schema.ToolMessage(string(payload), tr.CallID))
		}
	}

	return contractx.Reply{}, fmt.Errorf("%w: max_steps=%d", contractx.ErrStepLimit, a.maxSteps)
}

func toToolRequests(calls []schema.ToolCall) ([]contractx.ToolRequest, error) {
	reqs := make([]contractx.ToolRequest, 0, len(calls))
	for _, call := range calls {
		tool := strings.TrimSpace(call.Function.Name)
		if tool == "" {
			return nil, fmt.Errorf("%w: tool call name is empty", contractx.ErrSchemaViolation)
		}

		args := map[string]any{}
		rawArgs := strings.TrimSpace(call.Function.Arguments)
		if rawArgs != "" {
			if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
				return nil, fmt.Errorf("%w: invalid tool args for tool=%s: %v", contractx.ErrSchemaViolation, tool, err)
			}
		}

		reqs = append(reqs, contractx.ToolRequest{
			CallID: call.ID,
			Tool:   tool,
			Args:   args,
		})
	}
	return reqs, nil
}
