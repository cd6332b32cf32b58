package handler

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/domain/shared"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/domain/upload"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/infrastructure/api"
)

type stubUploader struct {
	result api.Result[api.UploadedFile]
	got    []upload.File
}

func (s *stubUploader) UploadImage(_ context.Context, f upload.File) api.Result[api.UploadedFile] {
	s.got = append(s.got, f)
	return s.result
}

func (s *stubUploader) UploadCV(ctx context.Context, f upload.File) api.Result[api.UploadedFile] {
	return s.UploadImage(ctx, f)
}

type recordingMirror struct {
	kinds []upload.Kind
	err   error
}

func (m *recordingMirror) Mirror(_ context.Context, kind upload.Kind, _ upload.File, _ string) (string, error) {
	m.kinds = append(m.kinds, kind)
	return "images/key.png", m.err
}

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func serveUpload(h *UploadHandler, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	r := gin.New()
	r.POST("/upload/image", h.Image)
	r.POST("/upload/cv", h.CV)

	req := httptest.NewRequest(http.MethodPost, "/upload/image", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUploadHandler(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		up := &stubUploader{}
		body, ct := multipartBody(t, "other", "a.png", []byte("x"))

		w := serveUpload(NewUploadHandler(up, nil, nil), body, ct)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "No file provided", gjson.Get(w.Body.String(), "error.message").String())
		assert.Empty(t, up.got)
	})

	t.Run("success is mirrored", func(t *testing.T) {
		up := &stubUploader{result: api.Ok(api.UploadedFile{URL: "http://backend/files/a.png", ContentType: "image/png"})}
		mirror := &recordingMirror{}
		body, ct := multipartBody(t, "file", "a.png", []byte("png"))

		w := serveUpload(NewUploadHandler(up, mirror, nil), body, ct)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "http://backend/files/a.png", gjson.Get(w.Body.String(), "data.url").String())
		require.Len(t, up.got, 1)
		assert.Equal(t, "a.png", up.got[0].Name)
		assert.Equal(t, int64(3), up.got[0].Size)
		assert.Equal(t, []upload.Kind{upload.KindImage}, mirror.kinds)
	})

	t.Run("mirror failure does not fail the upload", func(t *testing.T) {
		up := &stubUploader{result: api.Ok(api.UploadedFile{URL: "http://backend/files/a.png"})}
		body, ct := multipartBody(t, "file", "a.png", []byte("png"))

		w := serveUpload(NewUploadHandler(up, &recordingMirror{err: errors.New("bucket gone")}, nil), body, ct)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("too large maps to 413", func(t *testing.T) {
		up := &stubUploader{result: api.Fail[api.UploadedFile](api.Validation("File too large", nil, shared.ErrFileTooLarge))}
		body, ct := multipartBody(t, "file", "a.png", []byte("png"))

		w := serveUpload(NewUploadHandler(up, nil, nil), body, ct)
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Equal(t, "ERR_VALIDATION_FILE_TOO_LARGE", gjson.Get(w.Body.String(), "error.code").String())
	})

	t.Run("backend down maps to 502", func(t *testing.T) {
		up := &stubUploader{result: api.Fail[api.UploadedFile](&api.Error{Kind: api.KindNetwork, Message: "Upload failed"})}
		body, ct := multipartBody(t, "file", "a.png", []byte("png"))

		w := serveUpload(NewUploadHandler(up, nil, nil), body, ct)
		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Equal(t, "ERR_BACKEND_UNAVAILABLE", gjson.Get(w.Body.String(), "error.code").String())
	})
}
