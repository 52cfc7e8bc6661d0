package usecase

import (
	"errors"
	"strings"

	"github.com/fadilmartias/cv-reviewer/internal/dto"
	"github.com/fadilmartias/cv-reviewer/internal/model"
	"github.com/fadilmartias/cv-reviewer/internal/repository"
	"github.com/fadilmartias/cv-reviewer/internal/response"
)

var ErrSkillsUnavailable = errors.New("skills catalog is not configured")

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type SkillUsecase struct {
	skillRepo repository.SkillRepositoryInterface
}

// NewSkillUsecase accepts a nil repository; every call then fails with
// ErrSkillsUnavailable.
func NewSkillUsecase(skillRepo repository.SkillRepositoryInterface) *SkillUsecase {
	return &SkillUsecase{skillRepo: skillRepo}
}

// AnalyzeSkills lists catalog skills absent from currentSkills, compared without
// regard to case or surrounding space, highest priority first.
func (uc *SkillUsecase) AnalyzeSkills(currentSkills []string) (*dto.AnalyzeSkillsResultDTO, error) {
	if uc.skillRepo == nil {
		return nil, ErrSkillsUnavailable
	}

	catalog, err := uc.skillRepo.GetSkills()
	if err != nil {
		return nil, err
	}

	have := make(map[string]struct{}, len(currentSkills))
	for _, s := range currentSkills {
		have[normalizeSkill(s)] = struct{}{}
	}

	missing := []dto.SkillDTO{}
	for _, s := range catalog {
		if _, ok := have[normalizeSkill(s.Name)]; ok {
			continue
		}
		missing = append(missing, toSkillDTO(s))
	}

	if currentSkills == nil {
		currentSkills = []string{}
	}
	return &dto.AnalyzeSkillsResultDTO{
		CurrentSkills: currentSkills,
		MissingSkills: missing,
		TotalMissing:  len(missing),
	}, nil
}

func (uc *SkillUsecase) ListSkills(page, pageSize int) ([]dto.SkillDTO, *response.Pagination, error) {
	if uc.skillRepo == nil {
		return nil, nil, ErrSkillsUnavailable
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	skills, total, err := uc.skillRepo.GetSkillsPage(page, pageSize)
	if err != nil {
		return nil, nil, err
	}

	data := make([]dto.SkillDTO, 0, len(skills))
	for _, s := range skills {
		data = append(data, toSkillDTO(s))
	}
	return data, response.NewPagination(page, pageSize, total), nil
}

func normalizeSkill(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func toSkillDTO(s model.Skill) dto.SkillDTO {
	return dto.SkillDTO{
		Name:        s.Name,
		Category:    s.Category,
		SkillURL:    s.SkillURL,
		Description: s.Description,
		Priority:    s.Priority,
	}
}
