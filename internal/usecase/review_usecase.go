package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"time"

	"github.com/fadilmartias/cv-reviewer/internal/model"
	"github.com/fadilmartias/cv-reviewer/internal/repository"
	"github.com/fadilmartias/cv-reviewer/internal/schema"
	"github.com/fadilmartias/cv-reviewer/internal/service"
	"github.com/tidwall/gjson"
)

const (
	promptErrorText   = "Error: Could not load system prompt"
	analyzeErrorText  = "Error analyzing CV: %v"
	fixContextHeading = "Previous review of this CV (improve on it, do not repeat it):"
)

type ReviewUsecase struct {
	intake     *service.IntakeService
	normalizer *service.NormalizerService
	prompts    *service.PromptLoader
	analyzer   service.AnalyzerInterface
	reviewRepo repository.ReviewRepositoryInterface
	structured bool
}

// NewReviewUsecase wires the upload-and-analyze pipeline. reviewRepo may be nil, in
// which case results are not stored and fix mode runs without earlier context.
func NewReviewUsecase(
	intake *service.IntakeService,
	normalizer *service.NormalizerService,
	prompts *service.PromptLoader,
	analyzer service.AnalyzerInterface,
	reviewRepo repository.ReviewRepositoryInterface,
	structured bool,
) *ReviewUsecase {
	return &ReviewUsecase{
		intake:     intake,
		normalizer: normalizer,
		prompts:    prompts,
		analyzer:   analyzer,
		reviewRepo: reviewRepo,
		structured: structured,
	}
}

// Upload stores the file and derives its display asset.
func (uc *ReviewUsecase) Upload(file *multipart.FileHeader) (service.DisplayAsset, error) {
	filename, err := uc.intake.Save(file)
	if err != nil {
		return service.DisplayAsset{}, err
	}
	log.Printf("Stored upload %s", filename)
	return uc.normalizer.Normalize(filename), nil
}

// Analyze always yields text for the page to render. Failures are logged and
// returned as a readable message in place of the result.
func (uc *ReviewUsecase) Analyze(ctx context.Context, asset service.DisplayAsset, mode service.Mode) string {
	instruction, err := uc.prompts.Load(mode)
	if err != nil {
		log.Printf("Prompt unavailable for %s: %v", mode, err)
		return promptErrorText
	}

	req := service.AnalysisRequest{
		FilePath:    uc.intake.Path(asset.OriginalFile),
		Mode:        mode,
		Instruction: instruction,
		Structured:  uc.structured,
	}
	if mode == service.ModeFix {
		req.Context = uc.fixContext(asset.OriginalFile)
	}

	text, err := uc.analyzer.Analyze(ctx, req)
	if err != nil {
		log.Printf("Analysis of %s (%s) failed: %v", asset.OriginalFile, mode, err)
		if errors.Is(err, service.ErrPromptUnavailable) {
			return promptErrorText
		}
		return fmt.Sprintf(analyzeErrorText, err)
	}

	uc.store(asset, mode, text)
	return text
}

func (uc *ReviewUsecase) fixContext(originalFile string) string {
	if uc.reviewRepo == nil {
		return ""
	}
	previous, err := uc.reviewRepo.FindLatestReview(originalFile, string(service.ModeReview))
	if err != nil {
		log.Printf("Could not load previous review for %s: %v", originalFile, err)
		return ""
	}
	if previous == nil {
		return ""
	}
	return fixContextHeading + "\n" + previous.Result
}

func (uc *ReviewUsecase) store(asset service.DisplayAsset, mode service.Mode, text string) {
	if uc.reviewRepo == nil {
		return
	}

	review := &model.Review{
		OriginalFile: asset.OriginalFile,
		DisplayFile:  asset.DisplayFile,
		Mode:         string(mode),
		Result:       text,
		Skills:       extractSkills(text),
		CreatedAt:    time.Now(),
	}
	if uc.structured {
		parsed, err := schema.Parse([]byte(text))
		if err != nil {
			log.Printf("Structured result for %s does not match schema: %v", asset.OriginalFile, err)
		} else {
			review.SchemaValid = true
			log.Printf("Review of %s has %d priority actions", asset.OriginalFile, len(parsed.ActionPlan.Priorities))
		}
	}

	if err := uc.reviewRepo.CreateReview(review); err != nil {
		log.Printf("Could not store review for %s: %v", asset.OriginalFile, err)
	}
}

// extractSkills returns the raw JSON array of skills named in a structured result,
// or an empty array for free text.
func extractSkills(text string) string {
	skills := gjson.Get(text, "skills")
	if !skills.IsArray() {
		return "[]"
	}
	return skills.Raw
}
