package handler

import (
	"bytes"
	"context"
	"errors"
	"html"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fadilmartias/cv-reviewer/internal/config"
	"github.com/fadilmartias/cv-reviewer/internal/middleware"
	"github.com/fadilmartias/cv-reviewer/internal/service"
	"github.com/fadilmartias/cv-reviewer/internal/usecase"
	"github.com/fadilmartias/cv-reviewer/internal/util"
	"github.com/fadilmartias/cv-reviewer/internal/web"
	"github.com/gofiber/fiber/v2"
)

const stubReview = `{"completeness":{"personal_info":90,"objective":70,"experience":85,"skills":80,"education":100},` +
	`"presentation":{"tidiness":75,"professionalism":88},` +
	`"content":{"personal_info_score":90,"experience_score":60,"skills_score":70,"education_score":95},` +
	`"action_plan":{"priorities":["Quantify achievements"]}}`

type stubAnalyzer struct {
	text string
	err  error
}

// Analyze runs the same pre-flight type check as the real providers.
func (s *stubAnalyzer) Analyze(ctx context.Context, req service.AnalysisRequest) (string, error) {
	if _, err := util.ResolveMIMEType(req.FilePath); err != nil {
		return "", err
	}
	return s.text, s.err
}

type testServer struct {
	app       *fiber.App
	uploadDir string
	analyzer  *stubAnalyzer
	rasterErr error
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	dir := t.TempDir()
	ts := &testServer{uploadDir: filepath.Join(dir, "uploads"), analyzer: &stubAnalyzer{text: stubReview}}

	promptPath := filepath.Join(dir, "prompt.txt")
	if err := os.WriteFile(promptPath, []byte("Review the CV."), 0644); err != nil {
		t.Fatalf("write prompt: %v", err)
	}

	intake := service.NewIntakeService(ts.uploadDir)
	if err := intake.EnsureUploadDir(); err != nil {
		t.Fatalf("upload dir: %v", err)
	}
	normalizer := service.NewNormalizerService(intake, func(src, dst string) error {
		if ts.rasterErr != nil {
			return ts.rasterErr
		}
		return os.WriteFile(dst, []byte("png"), 0644)
	})
	reviews := usecase.NewReviewUsecase(intake, normalizer, service.NewPromptLoader(promptPath), ts.analyzer, nil, true)

	ts.app = fiber.New(fiber.Config{Views: web.NewEngine(), BodyLimit: int(config.DefaultMaxUploadBytes)})
	sessions := middleware.NewFlowSessions(&config.SessionConfig{}, nil)
	NewReviewHandler(reviews, sessions).RegisterRoutes(ts.app)
	NewAPIHandler(reviews).RegisterRoutes(ts.app)
	NewSkillHandler(usecase.NewSkillUsecase(nil)).RegisterRoutes(ts.app)
	return ts
}

func multipartBody(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("image", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	part.Write(content)
	w.Close()
	return body, w.FormDataContentType()
}

func (ts *testServer) do(t *testing.T, req *http.Request, cookies []*http.Cookie) (*http.Response, string) {
	t.Helper()
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err := ts.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	return resp, html.UnescapeString(string(raw))
}

func (ts *testServer) upload(t *testing.T, filename string, content []byte, cookies ...*http.Cookie) []*http.Cookie {
	t.Helper()
	body, contentType := multipartBody(t, filename, content)
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)

	resp, _ := ts.do(t, req, cookies)
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/review" {
		t.Fatalf("upload: expected redirect to /review, got %d %s", resp.StatusCode, resp.Header.Get("Location"))
	}
	return resp.Cookies()
}

func TestUploadPDFThenReviewAndFix(t *testing.T) {
	ts := newTestServer(t)
	cookies := ts.upload(t, "cv.pdf", []byte("%PDF-1.4 three pages"))

	if _, err := os.Stat(filepath.Join(ts.uploadDir, "cv.pdf")); err != nil {
		t.Fatalf("original not stored: %v", err)
	}

	resp, body := ts.do(t, httptest.NewRequest(http.MethodGet, "/review", nil), cookies)
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, `src="/uploads/cv.png"`) {
		t.Fatalf("review page should show cv.png, got %d: %s", resp.StatusCode, body)
	}

	resp, body = ts.do(t, httptest.NewRequest(http.MethodPost, "/review-action", nil), cookies)
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, stubReview) {
		t.Fatalf("review action should render the stub JSON, got %d: %s", resp.StatusCode, body)
	}

	ts.analyzer.text = "Add measurable results to each role."
	resp, body = ts.do(t, httptest.NewRequest(http.MethodPost, "/fix-action", nil), cookies)
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, "Add measurable results to each role.") {
		t.Fatalf("fix action should render the new text, got %d: %s", resp.StatusCode, body)
	}
	if strings.Contains(body, stubReview) {
		t.Fatal("fix result should replace the review text")
	}
}

func TestUploadPDFConversionFailureShowsPDF(t *testing.T) {
	ts := newTestServer(t)
	ts.rasterErr = errors.New("no pages")
	cookies := ts.upload(t, "cv.pdf", []byte("%PDF-1.4"))

	_, body := ts.do(t, httptest.NewRequest(http.MethodGet, "/review", nil), cookies)
	if !strings.Contains(body, `<embed src="/uploads/cv.pdf"`) {
		t.Fatalf("expected the PDF to be embedded, got %s", body)
	}
}

func TestUploadWithoutFileRedirectsHome(t *testing.T) {
	ts := newTestServer(t)

	body, contentType := multipartBody(t, "", nil)
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	resp, _ := ts.do(t, req, nil)
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/" {
		t.Fatalf("expected redirect to /, got %d %s", resp.StatusCode, resp.Header.Get("Location"))
	}

	// No session was created, so the review page is still unreachable.
	resp, _ = ts.do(t, httptest.NewRequest(http.MethodGet, "/review", nil), resp.Cookies())
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/" {
		t.Fatalf("expected redirect to /, got %d", resp.StatusCode)
	}
}

func TestFlowPagesRequireUpload(t *testing.T) {
	ts := newTestServer(t)

	for _, r := range []struct{ method, path string }{
		{http.MethodGet, "/review"},
		{http.MethodPost, "/review-action"},
		{http.MethodPost, "/fix-action"},
	} {
		resp, _ := ts.do(t, httptest.NewRequest(r.method, r.path, nil), nil)
		if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/" {
			t.Fatalf("%s %s: expected redirect to /, got %d", r.method, r.path, resp.StatusCode)
		}
	}
}

func TestAnalyzerErrorStillRenders(t *testing.T) {
	ts := newTestServer(t)
	ts.analyzer.err = errors.New("provider unreachable")
	cookies := ts.upload(t, "cv.png", []byte{0x89, 'P', 'N', 'G'})

	for _, path := range []string{"/review-action", "/fix-action"} {
		resp, body := ts.do(t, httptest.NewRequest(http.MethodPost, path, nil), cookies)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, resp.StatusCode)
		}
		if !strings.Contains(body, "Error analyzing CV: provider unreachable") {
			t.Fatalf("%s: expected error text, got %s", path, body)
		}
	}
}

func TestSessionStableAcrossReviewVisits(t *testing.T) {
	ts := newTestServer(t)
	cookies := ts.upload(t, "photo.jpg", []byte{0xff, 0xd8})

	for i := 0; i < 3; i++ {
		_, body := ts.do(t, httptest.NewRequest(http.MethodGet, "/review", nil), cookies)
		if !strings.Contains(body, `src="/uploads/photo.jpg"`) {
			t.Fatalf("visit %d: display file changed: %s", i, body)
		}
	}

	ts.upload(t, "cv.pdf", []byte("%PDF-1.4"), cookies...)
	_, body := ts.do(t, httptest.NewRequest(http.MethodGet, "/review", nil), cookies)
	if !strings.Contains(body, `src="/uploads/cv.png"`) {
		t.Fatalf("new upload should replace the session state: %s", body)
	}
}

func TestUnknownTypeAcceptedAtUploadFailsAtAnalysis(t *testing.T) {
	ts := newTestServer(t)
	cookies := ts.upload(t, "cv.txt", []byte("plain"))

	resp, body := ts.do(t, httptest.NewRequest(http.MethodGet, "/review", nil), cookies)
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, "No preview for this format") {
		t.Fatalf("unexpected review page %d: %s", resp.StatusCode, body)
	}

	resp, body = ts.do(t, httptest.NewRequest(http.MethodPost, "/review-action", nil), cookies)
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, "Error analyzing CV: unknown file type") {
		t.Fatalf("expected unknown file type message, got %d: %s", resp.StatusCode, body)
	}
}
