// Package prompts holds the interviewer prompt templates and the static
// question bank that backs them when generation is unavailable.
package prompts

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed bank.yaml
var bankYAML []byte

// BankQuestion is one entry of the static question bank.
type BankQuestion struct {
	Question string `yaml:"question"`
	Type     string `yaml:"type"`
	Topic    string `yaml:"topic"`
}

type bankFile struct {
	Questions []BankQuestion `yaml:"questions"`
}

var defaultBank = mustParseBank(bankYAML)

func mustParseBank(data []byte) []BankQuestion {
	var f bankFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		panic(fmt.Sprintf("prompts: embedded bank is invalid: %v", err))
	}
	if len(f.Questions) == 0 {
		panic("prompts: embedded bank is empty")
	}
	return f.Questions
}

// DefaultBank returns the embedded question bank.
func DefaultBank() []BankQuestion {
	out := make([]BankQuestion, len(defaultBank))
	copy(out, defaultBank)
	return out
}

// LoadBank reads a question bank override from path. An empty path returns
// the embedded bank.
func LoadBank(path string) ([]BankQuestion, error) {
	if path == "" {
		return DefaultBank(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}
	var f bankFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse question bank: %w", err)
	}
	if len(f.Questions) == 0 {
		return nil, fmt.Errorf("question bank %s has no questions", path)
	}
	for i, q := range f.Questions {
		if q.Question == "" {
			return nil, fmt.Errorf("question bank %s: entry %d has no question text", path, i)
		}
	}
	return f.Questions, nil
}
