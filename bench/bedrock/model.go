// Package bedrock wraps the Bedrock Runtime Converse API for benchmark use:
// one fixed system prefix, an optional cache point, and a growing two-role
// conversation history.
package bedrock

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

type ModelID string

const (
	NovaPro   ModelID = "amazon.nova-pro-v1:0"
	NovaLite  ModelID = "amazon.nova-lite-v1:0"
	NovaMicro ModelID = "amazon.nova-micro-v1:0"
)

// Tiers lists the models a full comparison sweeps, largest first.
func Tiers() []ModelID {
	return []ModelID{NovaPro, NovaLite, NovaMicro}
}

// ConverseAPI is the slice of the Bedrock Runtime client the benchmark needs.
// Tests substitute a canned implementation.
type ConverseAPI interface {
	Converse(ctx context.Context, params *bedrockruntime.ConverseInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error)
}

// Model holds the request configuration shared by every turn of a run.
type Model struct {
	model       ModelID
	system      string
	maxTok      int32
	temperature float32
	shouldCache bool
}

func NewModel(model ModelID, system string, maxTok int32, temperature float32, shouldCache bool) *Model {
	return &Model{
		model:       model,
		system:      system,
		maxTok:      maxTok,
		temperature: temperature,
		shouldCache: shouldCache,
	}
}

func (m *Model) ID() string { return string(m.model) }

func (m *Model) Cached() bool { return m.shouldCache }
