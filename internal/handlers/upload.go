// internal/handlers/upload.go
package handlers

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/catalog-admin/internal/i18n"
	"github.com/javajoker/catalog-admin/internal/services"
	"github.com/javajoker/catalog-admin/internal/upload"
	"github.com/javajoker/catalog-admin/internal/utils"
)

type UploadHandler struct {
	workspaces     *services.WorkspaceService
	storageService *services.StorageService
}

func NewUploadHandler(workspaces *services.WorkspaceService, storageService *services.StorageService) *UploadHandler {
	return &UploadHandler{
		workspaces:     workspaces,
		storageService: storageService,
	}
}

// POST /admin/uploads
func (h *UploadHandler) UploadImage(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "file"), err.Error())
		return
	}
	defer file.Close()

	options := h.storageService.ImageUploadOptions()
	if err := h.storageService.ValidateUpload(file, header, options); err != nil {
		switch {
		case errors.Is(err, services.ErrFileTooLarge):
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileTooLarge), err.Error())
		case errors.Is(err, services.ErrFileTypeNotAllowed), errors.Is(err, services.ErrInvalidImage):
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileInvalidType), err.Error())
		default:
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed), err.Error())
		}
		return
	}

	tracker := workspace(c, h.workspaces).Uploads
	result, err := tracker.Upload(c.Request.Context(), header.Filename, file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		if errors.Is(err, upload.ErrUploadInFlight) {
			respondError(c, err, "")
			return
		}
		utils.InternalErrorResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed))
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyFileUploadSuccess),
		"upload":  result,
	})
}

// GET /admin/uploads/progress
// Streams the tracker state as server-sent events until the client leaves.
func (h *UploadHandler) StreamProgress(c *gin.Context) {
	tracker := workspace(c, h.workspaces).Uploads
	sub := tracker.Subscribe()
	defer sub.Close()

	c.SSEvent(upload.Topic, tracker.Progress())
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case ev, ok := <-sub.C:
			if !ok {
				return false
			}
			c.SSEvent(ev.Topic, ev.Data)
			return true
		}
	})
}
