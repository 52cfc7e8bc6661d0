package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fadilmartias/cv-reviewer/internal/config"
	"github.com/fadilmartias/cv-reviewer/internal/util"
	"google.golang.org/genai"
)

type fakeGenerator struct {
	calls    int
	contents []*genai.Content
	config   *genai.GenerateContentConfig
	reply    string
	errs     []error
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.calls++
	f.contents = contents
	f.config = cfg
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		if err != nil {
			return nil, err
		}
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: genai.NewContentFromText(f.reply, genai.RoleModel),
		}},
	}, nil
}

type fakeUploader struct {
	paths     []string
	deleted   []string
	uploadErr error
	deleteErr error
}

func (f *fakeUploader) UploadFromPath(ctx context.Context, path string, cfg *genai.UploadFileConfig) (*genai.File, error) {
	f.paths = append(f.paths, path)
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	return &genai.File{Name: "files/abc", URI: "https://files.example/abc", MIMEType: cfg.MIMEType}, nil
}

func (f *fakeUploader) Delete(ctx context.Context, name string, cfg *genai.DeleteFileConfig) (*genai.DeleteFileResponse, error) {
	f.deleted = append(f.deleted, name)
	return &genai.DeleteFileResponse{}, f.deleteErr
}

func newTestGemini(gen *fakeGenerator, up *fakeUploader) *GeminiService {
	return &GeminiService{
		models:    gen,
		files:     up,
		Model:     "test-model",
		Transport: config.TransportInline,
	}
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestGeminiUnknownTypeMakesNoCall(t *testing.T) {
	gen := &fakeGenerator{reply: "ok"}
	svc := newTestGemini(gen, &fakeUploader{})

	for _, name := range []string{"cv.zzunknown", "cv.txt", "cv.gif", "cv.html", "cv.webp"} {
		_, err := svc.Analyze(context.Background(), AnalysisRequest{
			FilePath:    writeFile(t, name, []byte("x")),
			Instruction: "review",
		})
		if !errors.Is(err, util.ErrUnknownFileType) {
			t.Fatalf("%s: expected ErrUnknownFileType, got %v", name, err)
		}
	}
	if gen.calls != 0 {
		t.Fatalf("expected no model call, got %d", gen.calls)
	}
}

func TestGeminiInlineParts(t *testing.T) {
	gen := &fakeGenerator{reply: "Great CV"}
	svc := newTestGemini(gen, &fakeUploader{})

	text, err := svc.Analyze(context.Background(), AnalysisRequest{
		FilePath:    writeFile(t, "cv.png", []byte{0x89, 'P', 'N', 'G'}),
		Instruction: "Review this CV.",
		Context:     "previous review",
	})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if text != "Great CV" {
		t.Fatalf("unexpected text %q", text)
	}

	parts := gen.contents[0].Parts
	if len(parts) != 3 {
		t.Fatalf("expected instruction, document and context parts, got %d", len(parts))
	}
	if parts[0].Text != "Review this CV." {
		t.Fatalf("instruction must come first, got %q", parts[0].Text)
	}
	if parts[1].InlineData == nil || parts[1].InlineData.MIMEType != util.MIMETypePNG {
		t.Fatalf("expected inline png part, got %+v", parts[1])
	}
	if parts[2].Text != "previous review" {
		t.Fatalf("context must come last, got %q", parts[2].Text)
	}
	if gen.config.ResponseSchema != nil {
		t.Fatal("unstructured request should not carry a schema")
	}
}

func TestGeminiStructuredConfig(t *testing.T) {
	gen := &fakeGenerator{reply: "{}"}
	svc := newTestGemini(gen, &fakeUploader{})

	_, err := svc.Analyze(context.Background(), AnalysisRequest{
		FilePath:    writeFile(t, "cv.pdf", []byte("%PDF-1.4")),
		Instruction: "Review",
		Structured:  true,
	})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if gen.config.ResponseMIMEType != "application/json" || gen.config.ResponseSchema == nil {
		t.Fatalf("expected JSON schema config, got %+v", gen.config)
	}
}

func TestGeminiUploadTransportSendsReference(t *testing.T) {
	gen := &fakeGenerator{reply: "ok"}
	up := &fakeUploader{}
	svc := newTestGemini(gen, up)
	svc.Transport = config.TransportUpload

	path := writeFile(t, "cv.pdf", []byte("%PDF-1.4"))
	if _, err := svc.Analyze(context.Background(), AnalysisRequest{FilePath: path, Instruction: "Review"}); err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if len(up.paths) != 1 || up.paths[0] != path {
		t.Fatalf("expected one upload of %s, got %v", path, up.paths)
	}
	doc := gen.contents[0].Parts[1]
	if doc.FileData == nil || doc.FileData.FileURI != "https://files.example/abc" {
		t.Fatalf("expected file reference part, got %+v", doc)
	}
	if len(up.deleted) != 1 || up.deleted[0] != "files/abc" {
		t.Fatalf("expected uploaded file to be deleted once, got %v", up.deleted)
	}
}

func TestGeminiUploadDeletedEachCall(t *testing.T) {
	gen := &fakeGenerator{reply: "ok", errs: []error{nil, errors.New("permission denied")}}
	up := &fakeUploader{deleteErr: errors.New("not found")}
	svc := newTestGemini(gen, up)
	svc.Transport = config.TransportUpload

	path := writeFile(t, "cv.png", []byte("png"))
	if _, err := svc.Analyze(context.Background(), AnalysisRequest{FilePath: path, Instruction: "Review"}); err != nil {
		t.Fatalf("first analyze: %v", err)
	}
	if _, err := svc.Analyze(context.Background(), AnalysisRequest{FilePath: path, Instruction: "Fix"}); err == nil {
		t.Fatal("expected second analyze to fail")
	}
	if len(up.paths) != 2 || len(up.deleted) != 2 {
		t.Fatalf("expected 2 uploads and 2 deletes, got %d and %d", len(up.paths), len(up.deleted))
	}
}

func TestGeminiInlineTransportDeletesNothing(t *testing.T) {
	gen := &fakeGenerator{reply: "ok"}
	up := &fakeUploader{}
	svc := newTestGemini(gen, up)

	path := writeFile(t, "cv.pdf", []byte("%PDF-1.4"))
	if _, err := svc.Analyze(context.Background(), AnalysisRequest{FilePath: path, Instruction: "Review"}); err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if len(up.paths) != 0 || len(up.deleted) != 0 {
		t.Fatalf("expected no upload or delete, got %v / %v", up.paths, up.deleted)
	}
}

func TestGeminiMissingFileErrorHidesDirectory(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "gone.pdf")

	for _, transport := range []string{config.TransportInline, config.TransportUpload} {
		gen := &fakeGenerator{reply: "ok"}
		up := &fakeUploader{uploadErr: &os.PathError{Op: "open", Path: missing, Err: os.ErrNotExist}}
		svc := newTestGemini(gen, up)
		svc.Transport = transport

		_, err := svc.Analyze(context.Background(), AnalysisRequest{FilePath: missing, Instruction: "Review"})
		if err == nil {
			t.Fatalf("%s: expected error", transport)
		}
		if strings.Contains(err.Error(), dir) {
			t.Fatalf("%s: error leaks directory: %v", transport, err)
		}
		if !strings.Contains(err.Error(), "gone.pdf") || !errors.Is(err, os.ErrNotExist) {
			t.Fatalf("%s: expected bare filename and not-exist cause, got %v", transport, err)
		}
		if gen.calls != 0 {
			t.Fatalf("%s: expected no model call", transport)
		}
	}
}

func TestGeminiErrorsPropagate(t *testing.T) {
	gen := &fakeGenerator{errs: []error{errors.New("permission denied")}}
	svc := newTestGemini(gen, &fakeUploader{})

	_, err := svc.Analyze(context.Background(), AnalysisRequest{
		FilePath:    writeFile(t, "cv.jpg", []byte{0xff, 0xd8}),
		Instruction: "Review",
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if gen.calls != 1 {
		t.Fatalf("non-retryable error should not be retried, got %d calls", gen.calls)
	}
}

func TestGeminiRetriesWhenConfigured(t *testing.T) {
	gen := &fakeGenerator{
		reply: "ok",
		errs:  []error{&genai.APIError{Code: 503, Message: "overloaded"}},
	}
	svc := newTestGemini(gen, &fakeUploader{})
	svc.MaxRetries = 1

	text, err := svc.Analyze(context.Background(), AnalysisRequest{
		FilePath:    writeFile(t, "cv.jpg", []byte{0xff, 0xd8}),
		Instruction: "Review",
	})
	if err != nil || text != "ok" {
		t.Fatalf("expected success after retry, got %q, %v", text, err)
	}
	if gen.calls != 2 {
		t.Fatalf("expected 2 calls, got %d", gen.calls)
	}
}

func TestGeminiEmptyFileFails(t *testing.T) {
	gen := &fakeGenerator{reply: "ok"}
	svc := newTestGemini(gen, &fakeUploader{})

	if _, err := svc.Analyze(context.Background(), AnalysisRequest{
		FilePath:    writeFile(t, "cv.pdf", nil),
		Instruction: "Review",
	}); err == nil {
		t.Fatal("expected error for empty file")
	}
	if gen.calls != 0 {
		t.Fatalf("expected no model call, got %d", gen.calls)
	}
}
