package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/domain/shared"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/domain/upload"
)

// UploadedFile describes a file stored by the backend
type UploadedFile struct {
	URL          string `json:"url"`
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	Size         int64  `json:"size"`
	ContentType  string `json:"contentType"`
}

// UploadService wraps /upload
type UploadService struct {
	client *Client
}

// UploadImage validates and uploads an image. The returned URL is absolute.
func (s *UploadService) UploadImage(ctx context.Context, f upload.File) Result[UploadedFile] {
	return s.upload(ctx, upload.KindImage, f, s.client.endpoints.Upload.Image, "url")
}

// UploadCV validates and uploads a PDF or Word CV
func (s *UploadService) UploadCV(ctx context.Context, f upload.File) Result[UploadedFile] {
	return s.upload(ctx, upload.KindCV, f, s.client.endpoints.Upload.CV, "fileUrl")
}

func (s *UploadService) upload(ctx context.Context, kind upload.Kind, f upload.File, url, urlField string) Result[UploadedFile] {
	mime, err := upload.Validate(kind, f)
	if err != nil {
		return Fail[UploadedFile](Validation(rejectionMessage(err), nil, err))
	}

	payload, apiErr := s.client.execute(ctx, call{
		op:      "upload." + string(kind),
		method:  http.MethodPost,
		url:     url,
		auth:    true,
		file:    &filePart{field: "file", filename: f.Name, contentType: mime, reader: f.Body},
		failMsg: "Upload failed",
	})
	if apiErr != nil {
		return Fail[UploadedFile](apiErr)
	}

	out := UploadedFile{
		URL:          s.absolute(payload.Get(urlField).String()),
		Filename:     payload.Get("filename").String(),
		OriginalName: payload.Get("originalName").String(),
		Size:         payload.Get("size").Int(),
		ContentType:  mime,
	}
	if out.URL == "" {
		return Fail[UploadedFile](&Error{Kind: KindDecode, Message: "Upload failed: no file URL returned"})
	}
	if out.OriginalName == "" {
		out.OriginalName = f.Name
	}
	return Ok(out)
}

// absolute prefixes backend-relative paths with the backend URL
func (s *UploadService) absolute(u string) string {
	if u == "" || strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	if !strings.HasPrefix(u, "/") {
		u = "/" + u
	}
	return s.client.backendURL + u
}

// rejectionMessage returns the text of the domain rule err breaks
func rejectionMessage(err error) string {
	var de *shared.DomainError
	if errors.As(err, &de) && de.Message != "" {
		return de.Message
	}
	return "Upload failed"
}
