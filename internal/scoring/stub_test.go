package scoring

import (
	"context"
	"strings"
	"sync"
)

// stubCompleter отвечает по первому правилу, чья подстрока есть в промпте
type stubCompleter struct {
	mu      sync.Mutex
	rules   []stubRule
	prompts []string
}

type stubRule struct {
	contains string
	reply    string
	err      error
}

func (s *stubCompleter) Complete(_ context.Context, prompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, prompt)
	for _, r := range s.rules {
		if strings.Contains(prompt, r.contains) {
			return r.reply, r.err
		}
	}
	return "", nil
}

func (s *stubCompleter) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.prompts)
}
