package handler

import (
	"strings"
	"time"

	"github.com/fadilmartias/cv-reviewer/internal/dto"
	"github.com/fadilmartias/cv-reviewer/internal/middleware"
	"github.com/fadilmartias/cv-reviewer/internal/service"
	"github.com/fadilmartias/cv-reviewer/internal/usecase"
	"github.com/fadilmartias/cv-reviewer/internal/util"
	"github.com/gofiber/fiber/v2"
)

type APIHandler struct {
	uc *usecase.ReviewUsecase
}

func NewAPIHandler(uc *usecase.ReviewUsecase) *APIHandler {
	return &APIHandler{uc: uc}
}

func (h *APIHandler) RegisterRoutes(app *fiber.App) {
	api := app.Group("/api")
	api.Post("/upload", middleware.RateLimiter(20, time.Minute), h.Upload)
	api.Post("/review", middleware.RateLimiter(10, time.Minute), h.analyze(service.ModeReview))
	api.Post("/fix", middleware.RateLimiter(10, time.Minute), h.analyze(service.ModeFix))
}

func (h *APIHandler) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil || file.Filename == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "No file uploaded",
		}, err)
	}

	asset, err := h.uc.Upload(file)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "Failed to store file",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "File uploaded",
		Data: dto.UploadResultDTO{
			DisplayImage: "/uploads/" + asset.DisplayFile,
			OriginalFile: asset.OriginalFile,
		},
	})
}

// analyze answers 200 with the analysis text even when the provider failed; the
// text then carries the error message, as on the HTML pages.
func (h *APIHandler) analyze(mode service.Mode) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req dto.AnalyzeRequestDTO
		if err := c.BodyParser(&req); err != nil {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusBadRequest,
				Message: "Invalid request body",
			}, err)
		}
		if strings.TrimSpace(req.OriginalFile) == "" {
			return util.ErrorResponse(c, util.ErrorResponseFormat{}, util.NewFormError("originalFile is required", map[string]string{
				"originalFile": "required",
			}))
		}

		text := h.uc.Analyze(c.UserContext(), service.DisplayAsset{OriginalFile: req.OriginalFile}, mode)
		return util.SuccessResponse(c, util.SuccessResponseFormat{
			Message: "CV analyzed",
			Data:    dto.AnalyzeResultDTO{Mode: string(mode), Text: text},
		})
	}
}
