package handler

import (
	"time"

	"github.com/fadilmartias/cv-reviewer/internal/middleware"
	"github.com/fadilmartias/cv-reviewer/internal/service"
	"github.com/fadilmartias/cv-reviewer/internal/usecase"
	"github.com/fadilmartias/cv-reviewer/internal/util"
	"github.com/gofiber/fiber/v2"
)

const reviewPlaceholder = `Choose "Review CV" for an assessment or "Suggest fixes" for concrete improvements.`

// ReviewHandler serves the browser flow: upload form, review page, and the two
// analysis actions.
type ReviewHandler struct {
	uc       *usecase.ReviewUsecase
	sessions *middleware.FlowSessions
}

func NewReviewHandler(uc *usecase.ReviewUsecase, sessions *middleware.FlowSessions) *ReviewHandler {
	return &ReviewHandler{uc: uc, sessions: sessions}
}

func (h *ReviewHandler) RegisterRoutes(app *fiber.App) {
	requireUpload := h.sessions.RequireUpload()

	app.Get("/", h.Index)
	app.Post("/upload", middleware.RateLimiter(20, time.Minute), h.Upload)
	app.Get("/review", requireUpload, h.Review)
	app.Post("/review-action", requireUpload, middleware.RateLimiter(10, time.Minute), h.ReviewAction)
	app.Post("/fix-action", requireUpload, middleware.RateLimiter(10, time.Minute), h.FixAction)
}

func (h *ReviewHandler) Index(c *fiber.Ctx) error {
	return c.Render("upload", fiber.Map{"Title": "Upload your CV"}, "layout")
}

// Upload stores the file, records it in the session and moves on to the review
// page. A request without a file changes nothing.
func (h *ReviewHandler) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil || file.Filename == "" || file.Size == 0 {
		return c.Redirect("/")
	}

	asset, err := h.uc.Upload(file)
	if err != nil {
		return err
	}

	if err := h.sessions.Save(c, middleware.FlowState{
		DisplayFile:  asset.DisplayFile,
		OriginalFile: asset.OriginalFile,
	}); err != nil {
		return err
	}
	return c.Redirect("/review")
}

func (h *ReviewHandler) Review(c *fiber.Ctx) error {
	return h.render(c, middleware.FlowStateFrom(c), "", reviewPlaceholder)
}

func (h *ReviewHandler) ReviewAction(c *fiber.Ctx) error {
	return h.analyze(c, service.ModeReview)
}

func (h *ReviewHandler) FixAction(c *fiber.Ctx) error {
	return h.analyze(c, service.ModeFix)
}

func (h *ReviewHandler) analyze(c *fiber.Ctx, mode service.Mode) error {
	state := middleware.FlowStateFrom(c)
	text := h.uc.Analyze(c.UserContext(), service.DisplayAsset{
		DisplayFile:  state.DisplayFile,
		OriginalFile: state.OriginalFile,
	}, mode)
	return h.render(c, state, mode, text)
}

func (h *ReviewHandler) render(c *fiber.Ctx, state middleware.FlowState, mode service.Mode, text string) error {
	return c.Render("review", fiber.Map{
		"Title":       "Review your CV",
		"Image":       state.DisplayFile,
		"Preview":     util.PreviewKind(state.DisplayFile),
		"Mode":        string(mode),
		"TextContent": text,
	}, "layout")
}
