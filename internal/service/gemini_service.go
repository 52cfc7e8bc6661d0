package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/fadilmartias/cv-reviewer/internal/config"
	"github.com/fadilmartias/cv-reviewer/internal/schema"
	"github.com/fadilmartias/cv-reviewer/internal/util"
	"google.golang.org/genai"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type fileUploader interface {
	UploadFromPath(ctx context.Context, path string, config *genai.UploadFileConfig) (*genai.File, error)
	Delete(ctx context.Context, name string, config *genai.DeleteFileConfig) (*genai.DeleteFileResponse, error)
}

type GeminiService struct {
	models         contentGenerator
	files          fileUploader
	Model          string
	Transport      string
	MaxRetries     int
	BaseDelay      time.Duration
	MaxDelay       time.Duration
	RequestTimeout time.Duration
}

func NewGeminiService(ctx context.Context, cfg *config.GeminiConfig) (*GeminiService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiService{
		models:         client.Models,
		files:          client.Files,
		Model:          cfg.Model,
		Transport:      cfg.Transport,
		MaxRetries:     cfg.MaxRetries,
		BaseDelay:      time.Second,
		MaxDelay:       30 * time.Second,
		RequestTimeout: cfg.RequestTimeout,
	}, nil
}

// Analyze sends the document and instruction to the model and returns the response
// text. With Structured set, the text is JSON shaped by the CV review schema.
func (s *GeminiService) Analyze(ctx context.Context, req AnalysisRequest) (string, error) {
	mimeType, err := util.ResolveMIMEType(req.FilePath)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(req.Instruction) == "" {
		return "", ErrPromptUnavailable
	}

	payload, err := s.preparePayload(ctx, req.FilePath, mimeType)
	if err != nil {
		return "", err
	}
	if payload.Kind == PayloadReference {
		defer s.deleteUpload(payload.Name)
	}

	genConfig := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0.2)),
	}
	if req.Structured {
		genConfig.ResponseMIMEType = "application/json"
		genConfig.ResponseSchema = schema.CVReviewGenAI()
	}

	result, err := s.generate(ctx, buildContents(req, payload), genConfig)
	if err != nil {
		return "", err
	}
	return result.Text(), nil
}

func (s *GeminiService) preparePayload(ctx context.Context, path, mimeType string) (Payload, error) {
	// Word documents are always converted to text, which only travels inline.
	if s.Transport != config.TransportUpload || mimeType == util.MIMETypeDOCX {
		return readInlinePayload(path, mimeType)
	}

	file, err := s.files.UploadFromPath(ctx, path, &genai.UploadFileConfig{MIMEType: mimeType})
	if err != nil {
		return Payload{}, util.FileError("upload", path, err)
	}
	log.Printf("Uploaded %s as %s", filepath.Base(path), file.Name)

	uploadedType := file.MIMEType
	if uploadedType == "" {
		uploadedType = mimeType
	}
	return ReferencePayload(file.Name, file.URI, uploadedType), nil
}

// deleteUpload removes a provider-side copy once the response is in. Each review
// or fix uploads afresh, so the handle is never needed again.
func (s *GeminiService) deleteUpload(name string) {
	if name == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := s.files.Delete(ctx, name, nil); err != nil {
		log.Printf("Failed to delete uploaded file %s: %v", name, err)
	}
}

func buildContents(req AnalysisRequest, payload Payload) []*genai.Content {
	parts := []*genai.Part{genai.NewPartFromText(req.Instruction)}

	switch payload.Kind {
	case PayloadReference:
		parts = append(parts, genai.NewPartFromURI(payload.URI, payload.MIMEType))
	default:
		parts = append(parts, genai.NewPartFromBytes(payload.Data, payload.MIMEType))
	}

	if req.Context != "" {
		parts = append(parts, genai.NewPartFromText(req.Context))
	}

	return []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
}

func (s *GeminiService) generate(ctx context.Context, contents []*genai.Content, genConfig *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	if s.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.RequestTimeout)
		defer cancel()
	}

	var lastErr error
	for attempt := 0; attempt <= s.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := s.calculateBackoff(attempt)
			log.Printf("Retry attempt %d/%d for GenerateContent after %v", attempt, s.MaxRetries, delay)

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, fmt.Errorf("context done during retry: %w", ctx.Err())
			}
		}

		result, err := s.models.GenerateContent(ctx, s.Model, contents, genConfig)
		if err == nil {
			if err := validateGenerateResponse(result); err != nil {
				return nil, fmt.Errorf("invalid response: %w", err)
			}
			return result, nil
		}

		lastErr = err
		if !isRetryableError(err) {
			return nil, fmt.Errorf("generate content failed: %w", err)
		}
		log.Printf("Retryable error on attempt %d: %v", attempt+1, err)
	}

	return nil, fmt.Errorf("max retries (%d) exceeded for GenerateContent: %w", s.MaxRetries, lastErr)
}

func (s *GeminiService) calculateBackoff(attempt int) time.Duration {
	delay := s.BaseDelay * time.Duration(math.Pow(2, float64(attempt-1)))
	if delay > s.MaxDelay {
		delay = s.MaxDelay
	}
	return delay
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		return retryableStatus(apiErr.Code)
	}

	errMsg := err.Error()
	return strings.Contains(errMsg, "RESOURCE_EXHAUSTED") ||
		strings.Contains(errMsg, "UNAVAILABLE") ||
		strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "connection reset") ||
		strings.Contains(errMsg, "temporary failure") ||
		strings.Contains(errMsg, "EOF")
}

func retryableStatus(code int) bool {
	switch code {
	case 429, 500, 502, 503, 504:
		return true
	}
	return false
}

func validateGenerateResponse(resp *genai.GenerateContentResponse) error {
	if resp == nil {
		return fmt.Errorf("response is nil")
	}
	if len(resp.Candidates) == 0 {
		return fmt.Errorf("no candidates in response")
	}
	if resp.Candidates[0].Content == nil {
		return fmt.Errorf("candidate content is nil")
	}
	if len(resp.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("no parts in content")
	}
	return nil
}
