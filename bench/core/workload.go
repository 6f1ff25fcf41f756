package core

import "fmt"

// Workload is the fixed conversation a benchmark replays: a system prompt
// (the cacheable prefix) and an ordered list of user questions.
type Workload struct {
	Name      string   `yaml:"name" json:"name"`
	System    string   `yaml:"system" json:"system"`
	Questions []string `yaml:"questions" json:"questions"`
}

func (w Workload) Validate() error {
	if w.Name == "" {
		return fmt.Errorf("workload has no name")
	}
	if w.System == "" {
		return fmt.Errorf("workload %q has no system prompt", w.Name)
	}
	if len(w.Questions) == 0 {
		return fmt.Errorf("workload %q has no questions", w.Name)
	}
	for i, q := range w.Questions {
		if q == "" {
			return fmt.Errorf("workload %q has an empty question at index %d", w.Name, i)
		}
	}
	return nil
}
