package plan

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/musicmovie/internal/sequence"
)

// Plan is the YAML form of a computed slideshow sequence. Saving a plan lets
// a run be inspected or re-encoded later without rebuilding the sequence.
type Plan struct {
	Version string  `yaml:"version"`
	Audio   string  `yaml:"audio,omitempty"`
	Entries []Entry `yaml:"entries"`
}

type Entry struct {
	Input    string  `yaml:"input"`
	Duration float64 `yaml:"duration"`
}

// FromSequence converts a built sequence into its serializable plan.
func FromSequence(entries []sequence.Entry, audioPath string) *Plan {
	p := &Plan{
		Version: "1.0",
		Audio:   audioPath,
		Entries: make([]Entry, len(entries)),
	}
	for i, e := range entries {
		p.Entries[i] = Entry{Input: e.File, Duration: e.Duration}
	}
	return p
}

// Sequence converts a loaded plan back into builder entries, rejecting
// non-positive durations so a hand-edited plan cannot break the encoder.
func (p *Plan) Sequence() ([]sequence.Entry, error) {
	entries := make([]sequence.Entry, len(p.Entries))
	for i, e := range p.Entries {
		if e.Duration <= 0 {
			return nil, fmt.Errorf("plan entry %d (%s): duration must be positive, got %f", i, e.Input, e.Duration)
		}
		entries[i] = sequence.Entry{File: e.Input, Duration: e.Duration}
	}
	return entries, nil
}

// Write saves the plan as YAML, creating parent directories as needed.
func Write(p *Plan, path string) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

// Read loads a plan from a YAML file.
func Read(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse plan %s: %w", path, err)
	}
	if len(p.Entries) == 0 {
		return nil, fmt.Errorf("plan %s contains no entries", path)
	}
	return &p, nil
}
