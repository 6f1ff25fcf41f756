package prompts

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/victhorio/cachebench/bench/core"
)

//go:embed system.txt
var SupportSystemPrompt string

//go:embed product_docs.txt
var ProductDocs string

//go:embed workloads/*.yaml
var workloads embed.FS

// FullSystem combines the support persona with the product documentation.
// This is the large, stable prefix that prompt caching is meant to pay for.
func FullSystem() string {
	return strings.TrimSpace(SupportSystemPrompt) +
		"\n\n--- PRODUCT DOCUMENTATION ---\n\n" +
		ProductDocs
}

// LoadWorkload loads one of the embedded workloads by name (e.g. "support").
// Embedded workloads leave the system field empty and get FullSystem.
func LoadWorkload(name string) (core.Workload, error) {
	filename := fmt.Sprintf("workloads/%s.yaml", name)
	data, err := workloads.ReadFile(filename)
	if err != nil {
		return core.Workload{}, fmt.Errorf("failed to read workload %s: %w", filename, err)
	}
	return parseWorkload(data)
}

// ReadWorkloadFile loads a user-supplied workload. The file may carry its own
// system prompt; if it doesn't, the embedded support prefix is used so the
// cacheable portion stays large enough to matter.
func ReadWorkloadFile(path string) (core.Workload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return core.Workload{}, fmt.Errorf("failed to read workload file %s: %w", path, err)
	}
	return parseWorkload(data)
}

func parseWorkload(data []byte) (core.Workload, error) {
	var w core.Workload
	if err := yaml.Unmarshal(data, &w); err != nil {
		return core.Workload{}, fmt.Errorf("failed to unmarshal workload: %w", err)
	}

	if w.System == "" {
		w.System = FullSystem()
	}

	if err := w.Validate(); err != nil {
		return core.Workload{}, err
	}
	return w, nil
}
