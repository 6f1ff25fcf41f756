package bedrock

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"

	"github.com/victhorio/cachebench/bench/core"
	"github.com/victhorio/cachebench/bench/pricing"
)

// Exchange is one completed question/answer pair carried forward as history.
type Exchange struct {
	Question string
	Answer   string
}

// Reply is the distilled response to a single question.
type Reply struct {
	Text  string
	Usage core.Usage
}

// Ask sends one question with the full prior history attached. When the model
// was built with shouldCache, a cache point block follows the system text so
// the whole prefix above it is eligible for reuse on the next call.
func (m *Model) Ask(
	ctx context.Context,
	client ConverseAPI,
	history []Exchange,
	question string,
) (*Reply, error) {
	system := []types.SystemContentBlock{
		&types.SystemContentBlockMemberText{Value: m.system},
	}
	if m.shouldCache {
		system = append(system, &types.SystemContentBlockMemberCachePoint{
			Value: types.CachePointBlock{Type: types.CachePointTypeDefault},
		})
	}

	msgs := make([]types.Message, 0, 2*len(history)+1)
	for _, ex := range history {
		msgs = append(msgs, types.Message{
			Role:    types.ConversationRoleUser,
			Content: []types.ContentBlock{&types.ContentBlockMemberText{Value: ex.Question}},
		})
		msgs = append(msgs, types.Message{
			Role:    types.ConversationRoleAssistant,
			Content: []types.ContentBlock{&types.ContentBlockMemberText{Value: ex.Answer}},
		})
	}
	msgs = append(msgs, types.Message{
		Role:    types.ConversationRoleUser,
		Content: []types.ContentBlock{&types.ContentBlockMemberText{Value: question}},
	})

	out, err := client.Converse(ctx, &bedrockruntime.ConverseInput{
		ModelId:  aws.String(string(m.model)),
		System:   system,
		Messages: msgs,
		InferenceConfig: &types.InferenceConfiguration{
			MaxTokens:   aws.Int32(m.maxTok),
			Temperature: aws.Float32(m.temperature),
		},
	})
	if err != nil {
		m.dumpRequestInfo(len(msgs), err)
		return nil, fmt.Errorf("bedrock.Ask: converse call failed: %w", err)
	}

	if out.Usage == nil {
		return nil, fmt.Errorf("bedrock.Ask: response carries no usage block")
	}

	reply := &Reply{
		Text: extractText(out.Output),
		Usage: core.Usage{
			Input:      int64(aws.ToInt32(out.Usage.InputTokens)),
			CacheRead:  int64(aws.ToInt32(out.Usage.CacheReadInputTokens)),
			CacheWrite: int64(aws.ToInt32(out.Usage.CacheWriteInputTokens)),
			Output:     int64(aws.ToInt32(out.Usage.OutputTokens)),
		},
	}
	reply.Usage.Total = reply.Usage.Input + reply.Usage.CacheRead + reply.Usage.CacheWrite + reply.Usage.Output
	reply.Usage.Cost = pricing.FromUsage(m.ID(), reply.Usage)

	return reply, nil
}

// extractText flattens all text blocks of the assistant message. Non-text
// blocks are ignored; the benchmark never requests tool use or images.
func extractText(out types.ConverseOutput) string {
	msg, ok := out.(*types.ConverseOutputMemberMessage)
	if !ok {
		return ""
	}

	var sb strings.Builder
	for _, block := range msg.Value.Content {
		if text, ok := block.(*types.ContentBlockMemberText); ok {
			sb.WriteString(text.Value)
		}
	}
	return sb.String()
}

func (m *Model) dumpRequestInfo(msgCount int, callErr error) {
	info, err := json.MarshalIndent(map[string]any{
		"model":    m.model,
		"cached":   m.shouldCache,
		"messages": msgCount,
		"error":    callErr.Error(),
	}, "", "  ")
	if err == nil {
		core.DumpErrorLog("bedrock-converse", string(info))
	}
}
