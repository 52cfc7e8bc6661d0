package service

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
)

var ErrPromptUnavailable = errors.New("could not load system prompt")

var modeDirectives = map[Mode]string{
	ModeReview: "Mode: review. Assess the attached CV as instructed above and fill in every required section of the response.",
	ModeFix: "Mode: fix. Concentrate on improvements: for every section scoring below 80 give the exact replacement wording " +
		"the candidate should use, and order the action plan by expected impact.",
}

type PromptLoader struct {
	path string
}

func NewPromptLoader(path string) *PromptLoader {
	return &PromptLoader{path: path}
}

// Load reads the instruction file on every call and appends the directive for mode.
func (l *PromptLoader) Load(mode Mode) (string, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		log.Printf("Error reading prompt file %s: %v", l.path, err)
		return "", fmt.Errorf("%w: %v", ErrPromptUnavailable, err)
	}
	if strings.TrimSpace(string(data)) == "" {
		log.Printf("Error: prompt file %s is empty", l.path)
		return "", ErrPromptUnavailable
	}

	directive, ok := modeDirectives[mode]
	if !ok {
		return "", fmt.Errorf("unknown analysis mode %q", mode)
	}
	return string(data) + "\n\n" + directive, nil
}
