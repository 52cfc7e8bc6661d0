package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fadilmartias/cv-reviewer/internal/util"
)

// Mode selects what the model is asked to do with a CV.
type Mode string

const (
	ModeReview Mode = "review"
	ModeFix    Mode = "fix"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeReview, ModeFix:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown analysis mode %q", s)
}

type PayloadKind int

const (
	PayloadInline PayloadKind = iota
	PayloadReference
)

// Payload is the document as sent to a provider: either raw bytes or a handle to
// a file the provider already stores.
type Payload struct {
	Kind     PayloadKind
	Data     []byte
	Name     string
	URI      string
	MIMEType string
}

func InlinePayload(data []byte, mimeType string) Payload {
	return Payload{Kind: PayloadInline, Data: data, MIMEType: mimeType}
}

func ReferencePayload(name, uri, mimeType string) Payload {
	return Payload{Kind: PayloadReference, Name: name, URI: uri, MIMEType: mimeType}
}

var ErrReferenceUnsupported = errors.New("provider does not accept file references")

type AnalysisRequest struct {
	FilePath string
	Mode     Mode
	// Instruction leads the request verbatim.
	Instruction string
	// Context is optional material appended after the document, such as an earlier review.
	Context    string
	Structured bool
}

type AnalyzerInterface interface {
	Analyze(ctx context.Context, req AnalysisRequest) (string, error)
}

// readInlinePayload loads a stored file into memory. Word documents are sent as
// their extracted text because model endpoints do not take them as inline data.
func readInlinePayload(path, mimeType string) (Payload, error) {
	if mimeType == util.MIMETypeDOCX {
		text, err := util.ExtractDocxText(path)
		if err != nil {
			return Payload{}, err
		}
		return InlinePayload([]byte(text), "text/plain"), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Payload{}, util.FileError("read", path, err)
	}
	if len(data) == 0 {
		return Payload{}, fmt.Errorf("file %s is empty", filepath.Base(path))
	}
	return InlinePayload(data, mimeType), nil
}

