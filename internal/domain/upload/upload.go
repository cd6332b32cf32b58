// Package upload validates image and CV files before they leave the server.
package upload

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/domain/shared"
)

// MaxFileSize is the upload limit for images and CVs (5MB)
const MaxFileSize int64 = 5 << 20

// Kind identifies what an upload is for
type Kind string

// Upload kinds
const (
	KindImage Kind = "image"
	KindCV    Kind = "cv"
)

var cvTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

var (
	errNotImage = shared.NewDomainError("INVALID_FILE_TYPE", "Only image files are allowed")
	errNotCV    = shared.NewDomainError("INVALID_FILE_TYPE", "Only PDF, DOC, and DOCX files are allowed")
)

// File is an upload candidate. Body is rewound after sniffing.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.ReadSeeker
}

// Ext returns the lower-case file extension including the dot
func (f File) Ext() string {
	return strings.ToLower(filepath.Ext(f.Name))
}

// Validate checks f for the given kind and returns the sniffed MIME type.
// Size and declared type are checked before any content is read.
func Validate(kind Kind, f File) (string, error) {
	if f.Size <= 0 || f.Body == nil {
		return "", shared.ErrEmptyFile
	}
	if f.Size > MaxFileSize {
		return "", shared.ErrFileTooLarge
	}

	switch kind {
	case KindImage:
		if !strings.HasPrefix(strings.ToLower(f.ContentType), "image/") {
			return "", errNotImage
		}
	case KindCV:
		if !isCVType(f.ContentType) {
			return "", errNotCV
		}
	default:
		return "", fmt.Errorf("unknown upload kind %q", kind)
	}

	detected, err := mimetype.DetectReader(f.Body)
	if err != nil {
		return "", fmt.Errorf("sniff %s: %w", f.Name, err)
	}
	if _, err := f.Body.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind %s: %w", f.Name, err)
	}

	switch kind {
	case KindImage:
		if !strings.HasPrefix(detected.String(), "image/") {
			return "", errNotImage
		}
	case KindCV:
		if !detected.Is(cvTypes[0]) && !detected.Is(cvTypes[1]) && !detected.Is(cvTypes[2]) {
			return "", errNotCV
		}
	}
	return detected.String(), nil
}

func isCVType(contentType string) bool {
	ct := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	for _, t := range cvTypes {
		if ct == t {
			return true
		}
	}
	return false
}
