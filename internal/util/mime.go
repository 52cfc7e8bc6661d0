package util

import (
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
)

const (
	MIMETypePDF  = "application/pdf"
	MIMETypeJPEG = "image/jpeg"
	MIMETypePNG  = "image/png"
	MIMETypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var ErrUnknownFileType = errors.New("unknown file type")

// fallbackMIMETypes lists the accepted extensions and covers hosts whose mime
// tables do not know them.
var fallbackMIMETypes = map[string]string{
	".pdf":  MIMETypePDF,
	".jpg":  MIMETypeJPEG,
	".jpeg": MIMETypeJPEG,
	".png":  MIMETypePNG,
	".docx": MIMETypeDOCX,
}

// ResolveMIMEType maps a filename to a MIME type by extension only. Extensions
// outside the fallback table are unknown even when the host knows them; for the
// rest the standard lookup is tried first, then the table.
func ResolveMIMEType(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return "", fmt.Errorf("%w: %s", ErrUnknownFileType, filepath.Base(filename))
	}
	fallback, ok := fallbackMIMETypes[ext]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownFileType, ext)
	}

	if guessed := mime.TypeByExtension(ext); guessed != "" {
		if mediaType, _, err := mime.ParseMediaType(guessed); err == nil {
			return mediaType, nil
		}
	}

	return fallback, nil
}

func IsPDF(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".pdf")
}

// ReplaceExt swaps the extension of name for ext (which includes the dot).
func ReplaceExt(name, ext string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ext
}

// PreviewKind tells the review page how a display file can be shown: "image",
// "pdf", or "file" for anything a browser cannot render inline.
func PreviewKind(filename string) string {
	mimeType, err := ResolveMIMEType(filename)
	switch {
	case err != nil:
		return "file"
	case mimeType == MIMETypePDF:
		return "pdf"
	case strings.HasPrefix(mimeType, "image/"):
		return "image"
	}
	return "file"
}
