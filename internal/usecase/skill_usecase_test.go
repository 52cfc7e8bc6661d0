package usecase

import (
	"errors"
	"testing"

	"github.com/fadilmartias/cv-reviewer/internal/model"
)

type memorySkillRepo struct {
	skills []model.Skill
}

func (r *memorySkillRepo) GetSkills() ([]model.Skill, error) {
	return r.skills, nil
}

func (r *memorySkillRepo) GetSkillsPage(page, pageSize int) ([]model.Skill, int64, error) {
	start := (page - 1) * pageSize
	if start >= len(r.skills) {
		return nil, int64(len(r.skills)), nil
	}
	end := min(start+pageSize, len(r.skills))
	return r.skills[start:end], int64(len(r.skills)), nil
}

func (r *memorySkillRepo) CreateSkill(skill *model.Skill) error {
	r.skills = append(r.skills, *skill)
	return nil
}

func (r *memorySkillRepo) FindSkillByName(name string) (*model.Skill, error) {
	return nil, errors.New("not implemented")
}

func catalog() *memorySkillRepo {
	return &memorySkillRepo{skills: []model.Skill{
		{Name: "Docker", Priority: 9},
		{Name: "Kubernetes", Priority: 8},
		{Name: "Go", Priority: 7},
		{Name: "GraphQL", Priority: 3},
	}}
}

func TestAnalyzeSkillsIsCaseInsensitive(t *testing.T) {
	uc := NewSkillUsecase(catalog())

	result, err := uc.AnalyzeSkills([]string{"docker", " GO "})
	if err != nil {
		t.Fatalf("analyze skills: %v", err)
	}
	if result.TotalMissing != 2 {
		t.Fatalf("expected 2 missing skills, got %+v", result.MissingSkills)
	}
	if result.MissingSkills[0].Name != "Kubernetes" || result.MissingSkills[1].Name != "GraphQL" {
		t.Fatalf("missing skills should keep priority order, got %+v", result.MissingSkills)
	}
}

func TestSkillsUnavailableWithoutRepository(t *testing.T) {
	uc := NewSkillUsecase(nil)
	if _, err := uc.AnalyzeSkills([]string{"Go"}); !errors.Is(err, ErrSkillsUnavailable) {
		t.Fatalf("expected ErrSkillsUnavailable, got %v", err)
	}
	if _, _, err := uc.ListSkills(1, 10); !errors.Is(err, ErrSkillsUnavailable) {
		t.Fatalf("expected ErrSkillsUnavailable, got %v", err)
	}
}

func TestListSkillsPaginates(t *testing.T) {
	uc := NewSkillUsecase(catalog())

	skills, page, err := uc.ListSkills(2, 3)
	if err != nil {
		t.Fatalf("list skills: %v", err)
	}
	if len(skills) != 1 || skills[0].Name != "GraphQL" {
		t.Fatalf("unexpected page %+v", skills)
	}
	if page.TotalItems != 4 || page.TotalPages != 2 || page.HasMore || page.From != 4 || page.To != 4 {
		t.Fatalf("unexpected pagination %+v", page)
	}
}
