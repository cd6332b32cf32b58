package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/interfaces/http/dto"
)

// HealthHandler reports liveness
type HealthHandler struct {
	BaseHandler
	version string
	streams func() int
}

// NewHealthHandler creates the health handler. streams reports the open
// carousel streams and may be nil.
func NewHealthHandler(version string, streams func() int) *HealthHandler {
	return &HealthHandler{version: version, streams: streams}
}

// Health returns the service status
func (h *HealthHandler) Health(c *gin.Context) {
	data := dto.HealthData{Status: "ok", Version: h.version}
	if h.streams != nil {
		data.AutoplayStreams = h.streams()
	}
	h.Success(c, data)
}
