package service

import (
	"log"

	"github.com/fadilmartias/cv-reviewer/internal/util"
)

// Rasterizer renders the first page of the document at src as a PNG at dst.
type Rasterizer func(src, dst string) error

// DisplayAsset pairs the file shown in the browser with the file sent for analysis.
type DisplayAsset struct {
	DisplayFile  string
	OriginalFile string
	Converted    bool
}

type NormalizerService struct {
	intake    *IntakeService
	rasterize Rasterizer
}

func NewNormalizerService(intake *IntakeService, rasterize Rasterizer) *NormalizerService {
	if rasterize == nil {
		rasterize = util.RenderFirstPagePNG
	}
	return &NormalizerService{intake: intake, rasterize: rasterize}
}

// Normalize classifies by extension only. PDFs get a PNG of their first page; when
// that fails the PDF itself is displayed.
func (s *NormalizerService) Normalize(filename string) DisplayAsset {
	asset := DisplayAsset{DisplayFile: filename, OriginalFile: filename}
	if !util.IsPDF(filename) {
		return asset
	}

	pngName := util.ReplaceExt(filename, ".png")
	if err := s.rasterize(s.intake.Path(filename), s.intake.Path(pngName)); err != nil {
		log.Printf("PDF conversion error for %s: %v", filename, err)
		return asset
	}

	asset.DisplayFile = pngName
	asset.Converted = true
	return asset
}
