package service

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/fadilmartias/cv-reviewer/internal/util"
)

type IntakeService struct {
	uploadDir string
}

func NewIntakeService(uploadDir string) *IntakeService {
	return &IntakeService{uploadDir: uploadDir}
}

func (s *IntakeService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadDir, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}
	return nil
}

// Save writes the upload under its client-supplied name. An existing file with the
// same name is overwritten.
func (s *IntakeService) Save(file *multipart.FileHeader) (string, error) {
	filename := filepath.Base(file.Filename)
	if filename == "." || filename == string(filepath.Separator) {
		return "", fmt.Errorf("invalid filename %q", file.Filename)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(s.Path(filename))
	if err != nil {
		return "", util.FileError("create", filename, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return filename, nil
}

// Path resolves a stored filename inside the upload directory.
func (s *IntakeService) Path(filename string) string {
	return filepath.Join(s.uploadDir, filepath.Base(filename))
}
