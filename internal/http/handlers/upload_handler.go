// Upload HTTP handlers.
//
// This file exposes the gift image upload endpoint:
//   - POST /uploads (multipart form, field "file")
//
// The handler streams the file into asset storage and returns the opaque
// locator the client then submits as image_url on gift creation.
package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Uploader stores an uploaded file and returns an opaque public locator.
type Uploader interface {
	Store(ctx context.Context, r io.Reader, suggestedName string) (string, error)
}

// UploadResponse reports the stored file's public locator.
type UploadResponse struct {
	URL string `json:"url" example:"http://localhost:8080/uploads/9f1c2a.jpg"`
}

// UploadImage godoc
// @ID          uploadImage
// @Summary     Upload a gift image
// @Description Stores a multipart file upload and returns its public locator.
// @Description Submit the locator as image_url when creating a gift.
// @Tags        Uploads
// @Accept      multipart/form-data
// @Produce     json
//
// @Param       file  formData  file  true  "Image file"
//
// @Success     201  {object}  handlers.UploadResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Missing or oversized file"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /uploads [post]
func (h *Handlers) UploadImage(c *gin.Context) {
	if h.storage == nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "upload storage not configured")
		return
	}

	// Cap the whole multipart body; oversized uploads error on read.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	fh, err := c.FormFile("file")
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "multipart field 'file' required")
		return
	}
	if fh.Size > h.maxUploadBytes {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "file exceeds the upload size limit")
		return
	}

	f, err := fh.Open()
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeUploadFailed, err.Error())
		return
	}
	defer f.Close()

	url, err := h.storage.Store(c.Request.Context(), f, fh.Filename)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeUploadFailed, err.Error())
		return
	}
	ok(c, http.StatusCreated, UploadResponse{URL: url})
}
