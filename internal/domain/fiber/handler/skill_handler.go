package handler

import (
	"errors"

	"github.com/fadilmartias/cv-reviewer/internal/dto"
	"github.com/fadilmartias/cv-reviewer/internal/usecase"
	"github.com/fadilmartias/cv-reviewer/internal/util"
	"github.com/gofiber/fiber/v2"
)

type SkillHandler struct {
	uc *usecase.SkillUsecase
}

func NewSkillHandler(uc *usecase.SkillUsecase) *SkillHandler {
	return &SkillHandler{uc: uc}
}

func (h *SkillHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/api/analyze-skills", h.AnalyzeSkills)
	app.Get("/api/skills", h.ListSkills)
}

func (h *SkillHandler) AnalyzeSkills(c *fiber.Ctx) error {
	var req dto.AnalyzeSkillsRequestDTO
	if err := c.BodyParser(&req); err != nil || req.CurrentSkills == nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{}, util.NewFormError("Missing or invalid currentSkills", map[string]string{
			"currentSkills": "must be an array of strings",
		}))
	}

	result, err := h.uc.AnalyzeSkills(*req.CurrentSkills)
	if err != nil {
		return skillError(c, "Failed to analyze skills", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Skills analyzed",
		Data:    result,
	})
}

func (h *SkillHandler) ListSkills(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", usecase.DefaultPageSize)

	skills, pagination, err := h.uc.ListSkills(page, pageSize)
	if err != nil {
		return skillError(c, "Failed to list skills", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success get skills",
		Data:       skills,
		Pagination: pagination,
	})
}

func skillError(c *fiber.Ctx, message string, err error) error {
	if errors.Is(err, usecase.ErrSkillsUnavailable) {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusServiceUnavailable,
			Message: "Skills catalog is not available",
		}, err)
	}
	return util.ErrorResponse(c, util.ErrorResponseFormat{Message: message}, err)
}
