package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/application/auth"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/domain/upload"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/infrastructure/api"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/infrastructure/storage"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/interfaces/http/middleware"
)

// Uploader sends files to the backend
type Uploader interface {
	UploadImage(ctx context.Context, f upload.File) api.Result[api.UploadedFile]
	UploadCV(ctx context.Context, f upload.File) api.Result[api.UploadedFile]
}

// UploadHandler accepts image and CV uploads from the admin forms
type UploadHandler struct {
	BaseHandler
	uploads Uploader
	mirror  storage.Mirror
	auth    *auth.Service
}

// NewUploadHandler creates the upload handler. mirror may be nil.
func NewUploadHandler(uploads Uploader, mirror storage.Mirror, svc *auth.Service) *UploadHandler {
	if mirror == nil {
		mirror = storage.NopMirror{}
	}
	return &UploadHandler{uploads: uploads, mirror: mirror, auth: svc}
}

// Image uploads a profile, achievement or project image
func (h *UploadHandler) Image(c *gin.Context) {
	h.handle(c, upload.KindImage, h.uploads.UploadImage)
}

// CV uploads a PDF or Word CV
func (h *UploadHandler) CV(c *gin.Context) {
	h.handle(c, upload.KindCV, h.uploads.UploadCV)
}

func (h *UploadHandler) handle(c *gin.Context, kind upload.Kind, send func(context.Context, upload.File) api.Result[api.UploadedFile]) {
	header, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "No file provided")
		return
	}
	body, err := header.Open()
	if err != nil {
		h.BadRequest(c, "Cannot read the uploaded file")
		return
	}
	defer body.Close()

	f := upload.File{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        body,
	}

	ctx := c.Request.Context()
	sess := middleware.GetSession(c)
	if sess != nil {
		ctx = api.WithToken(ctx, sess.Token())
	}

	res := send(ctx, f)
	if res.Unauthorized() {
		if sess != nil {
			if err := h.auth.Expire(ctx, sess); err != nil {
				log(c).Warn("Failed to expire session", zap.Error(err))
			}
		}
		h.HandleAPIError(c, res.Err)
		return
	}
	if !res.OK() {
		h.HandleAPIError(c, res.Err)
		return
	}

	if key, err := h.mirror.Mirror(ctx, kind, f, res.Data.ContentType); err != nil {
		log(c).Warn("Upload mirror failed", zap.String("file", f.Name), zap.Error(err))
	} else if key != "" {
		log(c).Debug("Upload mirrored", zap.String("key", key))
	}

	h.Success(c, res.Data)
}
