package media

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/cmsbase/internal/domain"
	"github.com/simp-lee/cmsbase/internal/pkg"
)

// MediaHandler handles HTTP requests for media.
type MediaHandler struct {
	svc Service
}

// NewHandler creates a new media handler.
func NewHandler(svc Service) *MediaHandler {
	return &MediaHandler{svc: svc}
}

// Upload handles POST /media. The file arrives as the multipart form
// field "file".
func (h *MediaHandler) Upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, "multipart form field 'file' is required", err))
		return
	}

	file, err := header.Open()
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeInternal, "failed to read uploaded file", err))
		return
	}
	defer file.Close()

	media, err := h.svc.Upload(c.Request.Context(), UploadInput{
		Filename: header.Filename,
		MimeType: header.Header.Get("Content-Type"),
		Size:     header.Size,
		Reader:   file,
	})
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Created(c, media)
}

// Get handles GET /media/:id.
func (h *MediaHandler) Get(c *gin.Context) {
	id, err := pkg.ParseIDParam(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	media, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, media)
}

// List handles GET /media.
func (h *MediaHandler) List(c *gin.Context) {
	req, err := pkg.ParsePageRequest(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	result, err := h.svc.List(c.Request.Context(), req)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.List(c, result)
}

// Delete handles DELETE /media/:id.
func (h *MediaHandler) Delete(c *gin.Context) {
	id, err := pkg.ParseIDParam(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, gin.H{"deleted": true})
}
