package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fadilmartias/cv-reviewer/internal/config"
	"github.com/fadilmartias/cv-reviewer/internal/schema"
	"github.com/fadilmartias/cv-reviewer/internal/util"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// OpenRouterService analyzes CVs through OpenRouter's chat completions endpoint.
// Documents always travel inline as data URLs.
type OpenRouterService struct {
	client *resty.Client
	Model  string
}

func NewOpenRouterService(cfg *config.OpenRouterConfig) (*OpenRouterService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OPENROUTER_API_KEY not set")
	}
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json")
	return &OpenRouterService{client: client, Model: cfg.Model}, nil
}

func (s *OpenRouterService) Analyze(ctx context.Context, req AnalysisRequest) (string, error) {
	mimeType, err := util.ResolveMIMEType(req.FilePath)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(req.Instruction) == "" {
		return "", ErrPromptUnavailable
	}

	payload, err := readInlinePayload(req.FilePath, mimeType)
	if err != nil {
		return "", err
	}

	document, err := documentPart(filepath.Base(req.FilePath), payload)
	if err != nil {
		return "", err
	}
	content := []map[string]any{
		{"type": "text", "text": req.Instruction},
		document,
	}
	if req.Context != "" {
		content = append(content, map[string]any{"type": "text", "text": req.Context})
	}

	body := map[string]any{
		"model": s.Model,
		"messages": []map[string]any{
			{"role": "system", "content": "You are an experienced recruiter reviewing CVs."},
			{"role": "user", "content": content},
		},
	}
	if req.Structured {
		body["response_format"] = map[string]any{
			"type": "json_schema",
			"json_schema": map[string]any{
				"name":   "cv_review",
				"schema": schema.CVReviewJSONSchema(),
			},
		}
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(body).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("openrouter request failed: %w", err)
	}
	if resp.IsError() {
		msg := gjson.Get(resp.String(), "error.message").String()
		if msg == "" {
			msg = resp.Status()
		}
		return "", fmt.Errorf("openrouter returned %d: %s", resp.StatusCode(), msg)
	}

	text := gjson.Get(resp.String(), "choices.0.message.content").String()
	if text == "" {
		return "", fmt.Errorf("no response from LLM")
	}
	return text, nil
}

func documentPart(filename string, payload Payload) (map[string]any, error) {
	if payload.Kind == PayloadReference {
		return nil, ErrReferenceUnsupported
	}
	if payload.MIMEType == "text/plain" {
		return map[string]any{"type": "text", "text": string(payload.Data)}, nil
	}

	dataURL := fmt.Sprintf("data:%s;base64,%s", payload.MIMEType, base64.StdEncoding.EncodeToString(payload.Data))
	if strings.HasPrefix(payload.MIMEType, "image/") {
		return map[string]any{
			"type":      "image_url",
			"image_url": map[string]any{"url": dataURL},
		}, nil
	}
	return map[string]any{
		"type": "file",
		"file": map[string]any{"filename": filename, "file_data": dataURL},
	}, nil
}
